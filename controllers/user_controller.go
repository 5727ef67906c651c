package controllers

import (
	"strconv"

	"github.com/Kamesh-the-hacker/CTF/dto"
	"github.com/Kamesh-the-hacker/CTF/middlewares"
	"github.com/Kamesh-the-hacker/CTF/services"
	"github.com/Kamesh-the-hacker/CTF/session"
	"github.com/Kamesh-the-hacker/CTF/utils"
	"github.com/gin-gonic/gin"
)

// UserController 注册、登录和管理员侧的用户管理。
// 依赖全部显式注入，便于 httptest 环境下直接构造
type UserController struct {
	auth        *services.AuthService
	challenges  *services.ChallengeService
	leaderboard *services.LeaderboardService
	sessions    session.Store
	tokens      *utils.TokenManager
}

func NewUserController(auth *services.AuthService, challenges *services.ChallengeService,
	leaderboard *services.LeaderboardService, sessions session.Store, tokens *utils.TokenManager) *UserController {
	return &UserController{auth: auth, challenges: challenges, leaderboard: leaderboard, sessions: sessions, tokens: tokens}
}

// establishSession 复用当前会话（同一浏览器可同时持有用户和管理员登录态），
// 没有会话时新建一个，返回对应的令牌
func (ctl *UserController) establishSession(c *gin.Context, apply func(*session.Session)) (string, *session.Session, error) {
	sess := middlewares.GetSession(c)
	if sess == nil {
		sess = session.New()
	}
	apply(sess)
	if err := ctl.sessions.Save(c.Request.Context(), sess); err != nil {
		return "", nil, err
	}
	token, err := ctl.tokens.Generate(sess.ID)
	if err != nil {
		return "", nil, err
	}
	return token, sess, nil
}

// --- 公开接口 ---

// Register 注册成功即建立登录态（与前端行为一致，注册后直接进入答题页）
func (ctl *UserController) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "用户名和密码不能为空")
		return
	}

	user, err := ctl.auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, _, err := ctl.establishSession(c, func(s *session.Session) {
		s.User = &session.UserFacet{ID: user.ID, Username: user.Username, Score: user.Score}
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "User registered successfully", gin.H{
		"token": token,
		"user":  dto.SessionUserResp{ID: user.ID, Username: user.Username, Score: user.Score},
	})
}

func (ctl *UserController) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "用户名和密码不能为空")
		return
	}

	user, err := ctl.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, _, err := ctl.establishSession(c, func(s *session.Session) {
		s.User = &session.UserFacet{ID: user.ID, Username: user.Username, Score: user.Score}
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Login success", gin.H{
		"token": token,
		"user":  dto.SessionUserResp{ID: user.ID, Username: user.Username, Score: user.Score},
	})
}

// --- 需要登录的接口 ---

// Logout 只清除用户登录态，管理员登录态不受影响
func (ctl *UserController) Logout(c *gin.Context) {
	sess := middlewares.GetSession(c)
	sess.User = nil
	ctx := c.Request.Context()
	var err error
	if sess.Admin == nil {
		err = ctl.sessions.Delete(ctx, sess.ID)
	} else {
		err = ctl.sessions.Save(ctx, sess)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Logout success", nil)
}

// CurrentUser 返回会话里缓存的用户信息（解题后分数已在会话内刷新）
func (ctl *UserController) CurrentUser(c *gin.Context) {
	sess := middlewares.GetSession(c)
	u := sess.User
	utils.Success(c, "success", dto.SessionUserResp{ID: u.ID, Username: u.Username, Score: u.Score})
}

// GetSolved 查询某用户已解出的题目 ID 列表
func (ctl *UserController) GetSolved(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil || userID <= 0 {
		utils.Error(c, utils.CodeInvalidParam, "无效的用户ID")
		return
	}
	ids, err := ctl.challenges.SolvedIDs(c.Request.Context(), uint32(userID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "success", gin.H{"challenge_ids": ids})
}

// --- 仅管理员可访问的接口 ---

func (ctl *UserController) GetUserList(c *gin.Context) {
	users, err := ctl.auth.ListUsers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	items := make([]dto.UserItemResp, 0, len(users))
	for _, u := range users {
		items = append(items, dto.UserItemResp{ID: u.ID, Username: u.Username, Score: u.Score})
	}
	utils.Success(c, "success", gin.H{"total": len(items), "users": items})
}

func (ctl *UserController) DeleteUser(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || userID <= 0 {
		utils.Error(c, utils.CodeInvalidParam, "无效的用户ID")
		return
	}
	if err := ctl.auth.DeleteUser(c.Request.Context(), uint32(userID)); err != nil {
		respondServiceError(c, err)
		return
	}
	// 用户没了，榜单缓存作废
	ctl.leaderboard.Invalidate(c.Request.Context())
	utils.Success(c, "User deleted successfully", nil)
}
