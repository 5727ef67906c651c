package controllers

import (
	"strconv"

	"github.com/Kamesh-the-hacker/CTF/services"
	"github.com/Kamesh-the-hacker/CTF/utils"
	"github.com/gin-gonic/gin"
)

// LeaderboardController 排行榜查询，无需登录
type LeaderboardController struct {
	leaderboard *services.LeaderboardService
}

func NewLeaderboardController(leaderboard *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboard: leaderboard}
}

func (ctl *LeaderboardController) Get(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	entries, err := ctl.leaderboard.Top(c.Request.Context(), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "success", gin.H{"leaderboard": entries})
}
