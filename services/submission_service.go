package services

import (
	"context"
	stderrors "errors"

	"github.com/Kamesh-the-hacker/CTF/models"
	"github.com/Kamesh-the-hacker/CTF/session"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SubmitStatus 提交的三种正常结局。错误的 Flag 不是 error，是负向结果
type SubmitStatus string

const (
	StatusSolved        SubmitStatus = "solved"
	StatusAlreadySolved SubmitStatus = "already_solved"
	StatusIncorrectFlag SubmitStatus = "incorrect_flag"
)

type SubmitResult struct {
	Status   SubmitStatus
	NewScore uint // 仅 StatusSolved 时有意义
}

// SubmissionService 提交判定引擎。依赖三张表（用户、题目、台账）和会话存储，
// 全部通过构造函数显式注入，不碰任何包级全局。
type SubmissionService struct {
	db       *gorm.DB
	sessions session.Store
}

func NewSubmissionService(db *gorm.DB, sessions session.Store) *SubmissionService {
	return &SubmissionService{db: db, sessions: sessions}
}

// Submit 核心状态机：
//  1. 必须有用户登录态；
//  2. 题目不存在（含 ID 格式问题，边界层已归一）→ ErrChallengeNotFound；
//  3. Flag 精确比对，大小写敏感、不裁剪；
//  4. 不匹配 → IncorrectFlag，零写入；
//  5. 匹配 → 台账查重；已有记录 → AlreadySolved；
//     无记录 → 单事务内写台账 + 加分。台账上 (user_id, challenge_id) 的唯一索引
//     是并发重复提交的串行化点：并发插入撞唯一键时整个事务回滚，
//     降级为 AlreadySolved，绝不重复加分。
//
// 成功后刷新会话里缓存的分数，使同一会话的后续读取立即看到新总分。
func (s *SubmissionService) Submit(ctx context.Context, sess *session.Session, challengeID uint32, flag string) (*SubmitResult, error) {
	if sess == nil || sess.User == nil {
		return nil, ErrUnauthenticated
	}
	userID := sess.User.ID

	var challenge models.Challenge
	if err := s.db.WithContext(ctx).First(&challenge, challengeID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, errors.Wrap(err, "lookup challenge")
	}

	if challenge.Flag != flag {
		return &SubmitResult{Status: StatusIncorrectFlag}, nil
	}

	// 快路径查重，省掉绝大多数重复提交的事务开销
	var existing models.Solve
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&existing).Error
	if err == nil {
		return &SubmitResult{Status: StatusAlreadySolved}, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(err, "lookup solve")
	}

	var newScore uint
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		solve := models.Solve{UserID: userID, ChallengeID: challengeID}
		if err := tx.Create(&solve).Error; err != nil {
			return err
		}
		// UpdateColumn + 表达式自增：不经过 Hook，加分在数据库端原子完成
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			UpdateColumn("score", gorm.Expr("score + ?", challenge.Points)).Error; err != nil {
			return err
		}
		var user models.User
		if err := tx.Select("score").First(&user, userID).Error; err != nil {
			return err
		}
		newScore = user.Score
		return nil
	})
	if txErr != nil {
		if stderrors.Is(txErr, gorm.ErrDuplicatedKey) {
			// 并发提交竞争失败的一方：事务已整体回滚，没有加分
			return &SubmitResult{Status: StatusAlreadySolved}, nil
		}
		return nil, errors.Wrap(txErr, "credit solve")
	}

	sess.User.Score = newScore
	if err := s.sessions.Save(ctx, sess); err != nil {
		// 会话缓存刷新失败不影响已落库的判定结果，下次登录会重新读库
		log.WithError(err).Warn("failed to refresh session score cache")
	}

	log.WithFields(log.Fields{
		"user":      sess.User.Username,
		"challenge": challenge.Title,
		"points":    challenge.Points,
	}).Info("challenge solved")

	return &SubmitResult{Status: StatusSolved, NewScore: newScore}, nil
}
