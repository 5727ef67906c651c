package utils

import (
	"github.com/gin-gonic/gin"
	"net/http"
)

// 统一业务码。0 成功；1xxx 参数；2xxx 认证/冲突；4xxx 权限/不存在；5xxx 存储
const (
	CodeOK              = 0
	CodeInvalidParam    = 1001
	CodeUsernameTaken   = 2001
	CodeInvalidCred     = 2002
	CodeWrongFlag       = 3001
	CodeAlreadySolved   = 3002
	CodeUnauthenticated = 4001
	CodeUnauthorized    = 4003
	CodeNotFound        = 4004
	CodeStorage         = 5000
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Msg: msg, Data: data})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, Response{Code: code, Msg: msg})
}

// AbortError 在中间件中返回错误并终止后续处理
func AbortError(c *gin.Context, code int, msg string) {
	Error(c, code, msg)
	c.Abort()
}
