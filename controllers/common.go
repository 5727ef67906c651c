package controllers

import (
	"errors"

	"github.com/Kamesh-the-hacker/CTF/services"
	"github.com/Kamesh-the-hacker/CTF/utils"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// respondServiceError 把服务层的结构化负向结果映射成统一业务码。
// 未识别的错误一律按存储故障处理：对外只给笼统提示，细节进日志
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.Error(c, utils.CodeInvalidCred, "用户名或密码错误")
	case errors.Is(err, services.ErrUsernameTaken):
		utils.Error(c, utils.CodeUsernameTaken, "用户名已存在")
	case errors.Is(err, services.ErrChallengeNotFound):
		utils.Error(c, utils.CodeNotFound, "题目不存在")
	case errors.Is(err, services.ErrUserNotFound):
		utils.Error(c, utils.CodeNotFound, "用户不存在")
	case errors.Is(err, services.ErrAdminNotFound):
		utils.Error(c, utils.CodeNotFound, "管理员不存在")
	case errors.Is(err, services.ErrUnauthenticated):
		utils.Error(c, utils.CodeUnauthenticated, "请先登录")
	default:
		log.WithError(err).Error("storage failure")
		utils.Error(c, utils.CodeStorage, "服务内部错误")
	}
}
