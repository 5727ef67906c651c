package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Kamesh-the-hacker/CTF/dto"
	"github.com/Kamesh-the-hacker/CTF/models"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	leaderboardCacheTTL    = 30 * time.Second
	leaderboardKeyPattern  = "leaderboard:*"
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
)

// LeaderboardService 排行榜只读投影。Redis 缓存是尽力而为：
// 未配置 Redis 或缓存读写失败时静默回退到数据库查询。
type LeaderboardService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewLeaderboardService(db *gorm.DB, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{db: db, rdb: rdb}
}

// Top 前 n 名。分数降序；同分按注册先后（ID 升序）给出确定性顺序
func (s *LeaderboardService) Top(ctx context.Context, limit int) ([]dto.LeaderboardEntryResp, error) {
	if limit <= 0 || limit > maxLeaderboardSize {
		limit = defaultLeaderboardSize
	}

	cacheKey := fmt.Sprintf("leaderboard:%d", limit)
	if s.rdb != nil {
		if val, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached []dto.LeaderboardEntryResp
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	var users []models.User
	if err := s.db.WithContext(ctx).
		Select("username", "score").
		Order("score desc, id asc").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "query leaderboard")
	}

	entries := make([]dto.LeaderboardEntryResp, 0, len(users))
	for _, u := range users {
		entries = append(entries, dto.LeaderboardEntryResp{Username: u.Username, Score: u.Score})
	}

	if s.rdb != nil {
		if data, err := json.Marshal(entries); err == nil {
			s.rdb.Set(ctx, cacheKey, data, leaderboardCacheTTL)
		}
	}
	return entries, nil
}

// Invalidate 解题成功或用户被删除后清空排行榜缓存
func (s *LeaderboardService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	keys, err := s.rdb.Keys(ctx, leaderboardKeyPattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		log.WithError(err).Warn("failed to clear leaderboard cache")
	}
}
