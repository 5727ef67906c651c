package database

import (
	"context"
	"time"

	"github.com/Kamesh-the-hacker/CTF/config"
	"github.com/redis/go-redis/v9"
)

// NewRedis 建立 Redis 连接，用于会话存储和排行榜缓存
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 100,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return rdb, nil
}
