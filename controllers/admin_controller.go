package controllers

import (
	"errors"

	"github.com/Kamesh-the-hacker/CTF/dto"
	"github.com/Kamesh-the-hacker/CTF/middlewares"
	"github.com/Kamesh-the-hacker/CTF/services"
	"github.com/Kamesh-the-hacker/CTF/session"
	"github.com/Kamesh-the-hacker/CTF/utils"
	"github.com/gin-gonic/gin"
)

// AdminController 管理员会话与改密。
// 管理员登录态是会话上与用户态独立的一面，统一只用这一个标记
type AdminController struct {
	auth     *services.AuthService
	sessions session.Store
	tokens   *utils.TokenManager
}

func NewAdminController(auth *services.AuthService, sessions session.Store, tokens *utils.TokenManager) *AdminController {
	return &AdminController{auth: auth, sessions: sessions, tokens: tokens}
}

func (ctl *AdminController) Login(c *gin.Context) {
	var req dto.AdminLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "用户名和密码不能为空")
		return
	}

	admin, err := ctl.auth.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sess := middlewares.GetSession(c)
	if sess == nil {
		sess = session.New()
	}
	sess.Admin = &session.AdminFacet{ID: admin.ID, Username: admin.Username}
	if err := ctl.sessions.Save(c.Request.Context(), sess); err != nil {
		respondServiceError(c, err)
		return
	}
	token, err := ctl.tokens.Generate(sess.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.Success(c, "Admin login success", gin.H{"token": token})
}

// Logout 只清除管理员登录态，同会话的用户登录态保持不变
func (ctl *AdminController) Logout(c *gin.Context) {
	sess := middlewares.GetSession(c)
	sess.Admin = nil
	ctx := c.Request.Context()
	var err error
	if sess.User == nil {
		err = ctl.sessions.Delete(ctx, sess.ID)
	} else {
		err = ctl.sessions.Save(ctx, sess)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Admin logout success", nil)
}

// CheckSession 前端轮询用：报告当前会话是否持有管理员登录态
func (ctl *AdminController) CheckSession(c *gin.Context) {
	sess := middlewares.GetSession(c)
	loggedIn := sess != nil && sess.Admin != nil
	utils.Success(c, "success", gin.H{"admin_logged_in": loggedIn})
}

// ChangePassword 修改当前登录管理员的密码，必须先提供旧密码
func (ctl *AdminController) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "新旧密码不能为空")
		return
	}

	sess := middlewares.GetSession(c)
	if err := ctl.auth.ChangeAdminPassword(c.Request.Context(), sess.Admin.ID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.Error(c, utils.CodeInvalidCred, "旧密码不正确")
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Password changed successfully", nil)
}
