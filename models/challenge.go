package models

import (
	"time"
)

type Challenge struct {
	ID          uint32    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Flag        string    `gorm:"size:255;not null" json:"-"` // 绝不通过普通序列化泄露
	Points      uint      `gorm:"not null" json:"points"`
	File        string    `gorm:"size:255" json:"file,omitempty"` // 附件存储名（不透明引用）
	Link        string    `gorm:"size:2048" json:"link,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Challenge) TableName() string {
	return "vhpctf_challenge"
}
