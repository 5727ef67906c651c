package services

import (
	"context"
	stderrors "errors"

	"github.com/Kamesh-the-hacker/CTF/dto"
	"github.com/Kamesh-the-hacker/CTF/mappers"
	"github.com/Kamesh-the-hacker/CTF/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ChallengeService 题目目录的读写。写操作只有管理员路由会触达，
// 权限在中间件层保证，这里只负责数据语义。
type ChallengeService struct {
	db *gorm.DB
}

func NewChallengeService(db *gorm.DB) *ChallengeService {
	return &ChallengeService{db: db}
}

// ListForUser 用户视角列表：全部题目 + 该用户的 solved 标记，Flag 字段不出现
func (s *ChallengeService) ListForUser(ctx context.Context, userID uint32) ([]dto.ChallengeItemResp, error) {
	var challenges []models.Challenge
	if err := s.db.WithContext(ctx).Order("id asc").Find(&challenges).Error; err != nil {
		return nil, errors.Wrap(err, "list challenges")
	}

	solvedIDs, err := s.SolvedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	solvedSet := make(map[uint32]struct{}, len(solvedIDs))
	for _, id := range solvedIDs {
		solvedSet[id] = struct{}{}
	}

	items := make([]dto.ChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		_, solved := solvedSet[ch.ID]
		items = append(items, mappers.MapChallengeToUserItem(ch, solved))
	}
	return items, nil
}

// ListForAdmin 管理员视角：完整记录含 Flag，不带 solved 标记
func (s *ChallengeService) ListForAdmin(ctx context.Context) ([]dto.AdminChallengeItemResp, error) {
	var challenges []models.Challenge
	if err := s.db.WithContext(ctx).Order("id asc").Find(&challenges).Error; err != nil {
		return nil, errors.Wrap(err, "list challenges")
	}
	items := make([]dto.AdminChallengeItemResp, 0, len(challenges))
	for _, ch := range challenges {
		items = append(items, mappers.MapChallengeToAdminItem(ch))
	}
	return items, nil
}

// SolvedIDs 某用户已解出的题目 ID 集合
func (s *ChallengeService) SolvedIDs(ctx context.Context, userID uint32) ([]uint32, error) {
	var ids []uint32
	if err := s.db.WithContext(ctx).Model(&models.Solve{}).
		Where("user_id = ?", userID).
		Order("challenge_id asc").
		Pluck("challenge_id", &ids).Error; err != nil {
		return nil, errors.Wrap(err, "list solves")
	}
	return ids, nil
}

// Create 新建题目，返回分配的 ID
func (s *ChallengeService) Create(ctx context.Context, ch *models.Challenge) error {
	if err := s.db.WithContext(ctx).Create(ch).Error; err != nil {
		return errors.Wrap(err, "create challenge")
	}
	return nil
}

// Update 覆盖题目字段。storedFile 为空表示保留原有附件引用
func (s *ChallengeService) Update(ctx context.Context, id uint32, fields *dto.UpdateChallengeReq, storedFile string) error {
	var ch models.Challenge
	if err := s.db.WithContext(ctx).First(&ch, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChallengeNotFound
		}
		return errors.Wrap(err, "lookup challenge")
	}

	updates := map[string]interface{}{
		"title":       fields.Title,
		"category":    fields.Category,
		"description": fields.Description,
		"flag":        fields.Flag,
		"points":      fields.Points,
		"link":        fields.Link,
	}
	if storedFile != "" {
		updates["file"] = storedFile
	}
	if err := s.db.WithContext(ctx).Model(&ch).Updates(updates).Error; err != nil {
		return errors.Wrap(err, "update challenge")
	}
	return nil
}

// Delete 按 ID 删除题目
func (s *ChallengeService) Delete(ctx context.Context, id uint32) error {
	res := s.db.WithContext(ctx).Delete(&models.Challenge{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete challenge")
	}
	if res.RowsAffected == 0 {
		return ErrChallengeNotFound
	}
	return nil
}
