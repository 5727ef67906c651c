package models

import (
	"time"
)

// Solve 解题台账：每个 (user, challenge) 至多一条记录。
// 复合唯一索引是并发重复提交时的串行化点，提交引擎依赖它保证只加一次分。
type Solve struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint32    `gorm:"not null;uniqueIndex:idx_user_challenge" json:"user_id"`
	ChallengeID uint32    `gorm:"not null;uniqueIndex:idx_user_challenge" json:"challenge_id"`
	SolvedAt    time.Time `gorm:"autoCreateTime" json:"solved_at"`
}

func (Solve) TableName() string {
	return "vhpctf_solved"
}
