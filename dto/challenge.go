package dto

import "strings"

// ========== 请求 DTO ==========

// CreateChallengeReq 创建题目。multipart 表单提交，附件在 "file" 字段单独处理
type CreateChallengeReq struct {
	Title       string `form:"title" binding:"required"`
	Category    string `form:"category" binding:"required"`
	Description string `form:"description" binding:"required"`
	Flag        string `form:"flag" binding:"required"`
	Points      uint   `form:"points" binding:"required,gt=0"`
	Link        string `form:"link"`
}

func (r *CreateChallengeReq) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Link = strings.TrimSpace(r.Link)
	// Flag 不做任何裁剪：判定采用精确匹配，存什么就比什么
}

// UpdateChallengeReq 编辑题目。未提供新附件时保留旧的存储引用
type UpdateChallengeReq struct {
	Title       string `form:"title" binding:"required"`
	Category    string `form:"category" binding:"required"`
	Description string `form:"description" binding:"required"`
	Flag        string `form:"flag" binding:"required"`
	Points      uint   `form:"points" binding:"required,gt=0"`
	Link        string `form:"link"`
}

func (r *UpdateChallengeReq) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	r.Link = strings.TrimSpace(r.Link)
}

// ========== 响应 DTO ==========

// ChallengeItemResp 普通用户视角的题目，带 solved 标记，绝不包含 Flag
type ChallengeItemResp struct {
	ID          uint32 `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Points      uint   `json:"points"`
	File        string `json:"file,omitempty"`
	Link        string `json:"link,omitempty"`
	Solved      bool   `json:"solved"`
}

// AdminChallengeItemResp 管理员视角的完整题目记录，包含 Flag，不带 solved 标记
type AdminChallengeItemResp struct {
	ID          uint32 `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Flag        string `json:"flag"`
	Points      uint   `json:"points"`
	File        string `json:"file,omitempty"`
	Link        string `json:"link,omitempty"`
}
