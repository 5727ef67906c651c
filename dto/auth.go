package dto

// ========== 请求 DTO ==========

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordReq struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ========== 响应 DTO ==========

type SessionUserResp struct {
	ID       uint32 `json:"id"`
	Username string `json:"username"`
	Score    uint   `json:"score"`
}

type UserItemResp struct {
	ID       uint32 `json:"id"`
	Username string `json:"username"`
	Score    uint   `json:"score"`
}

type LeaderboardEntryResp struct {
	Username string `json:"username"`
	Score    uint   `json:"score"`
}
