package controllers

import (
	"github.com/Kamesh-the-hacker/CTF/dto"
	"github.com/Kamesh-the-hacker/CTF/middlewares"
	"github.com/Kamesh-the-hacker/CTF/services"
	"github.com/Kamesh-the-hacker/CTF/utils"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// SubmissionController Flag 提交入口。判定全部在 SubmissionService 里，
// 这里只做边界校验和结果映射
type SubmissionController struct {
	submissions *services.SubmissionService
	challenges  *services.ChallengeService
	leaderboard *services.LeaderboardService
}

func NewSubmissionController(submissions *services.SubmissionService, challenges *services.ChallengeService,
	leaderboard *services.LeaderboardService) *SubmissionController {
	return &SubmissionController{submissions: submissions, challenges: challenges, leaderboard: leaderboard}
}

// Submit 提交 Flag。
// 三种正常结局：答对（返回新总分和刷新后的题目列表）、重复提交、答错。
// challengeId 非法或不存在统一按"题目不存在"处理，不区分两种情况
func (ctl *SubmissionController) Submit(c *gin.Context) {
	var req dto.SubmitFlagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeNotFound, "题目不存在")
		return
	}

	sess := middlewares.GetSession(c)
	result, err := ctl.submissions.Submit(c.Request.Context(), sess, req.ChallengeID, req.Flag)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	switch result.Status {
	case services.StatusIncorrectFlag:
		utils.Error(c, utils.CodeWrongFlag, "Wrong flag")
	case services.StatusAlreadySolved:
		utils.Error(c, utils.CodeAlreadySolved, "Already solved")
	case services.StatusSolved:
		ctl.leaderboard.Invalidate(c.Request.Context())

		// 原前端依赖提交响应直接刷新题目列表
		updated, listErr := ctl.challenges.ListForUser(c.Request.Context(), sess.User.ID)
		if listErr != nil {
			log.WithError(listErr).Warn("刷新题目列表失败，提交结果照常返回")
			updated = nil
		}
		utils.Success(c, "Correct flag!", dto.SubmitFlagResp{
			NewScore:   result.NewScore,
			Challenges: updated,
		})
	}
}
