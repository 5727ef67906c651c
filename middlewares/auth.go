package middlewares

import (
	"strings"

	"github.com/Kamesh-the-hacker/CTF/session"
	"github.com/Kamesh-the-hacker/CTF/utils"
	"github.com/gin-gonic/gin"
)

const ContextSessionKey = "session"

// SessionMiddleware 尝试解析 Bearer 令牌并加载会话放入上下文。
// 这里不做拦截：没有令牌或令牌无效时当作匿名请求继续，
// 是否必须登录由 RequireUser / RequireAdmin 决定。
func SessionMiddleware(tokens *utils.TokenManager, store session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			c.Next()
			return
		}

		sessionID, err := tokens.Parse(parts[1])
		if err != nil {
			c.Next()
			return
		}
		sess, err := store.Get(c.Request.Context(), sessionID)
		if err != nil {
			// 已注销或过期的会话，按匿名处理
			c.Next()
			return
		}
		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// GetSession 从上下文取会话，没有则返回 nil
func GetSession(c *gin.Context) *session.Session {
	v, ok := c.Get(ContextSessionKey)
	if !ok {
		return nil
	}
	sess, ok := v.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

// RequireUser 校验用户登录态。管理员登录态不能替代用户登录态
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || sess.User == nil {
			utils.AbortError(c, utils.CodeUnauthenticated, "请先登录")
			return
		}
		c.Next()
	}
}

// RequireAdmin 校验管理员登录态，与用户登录态相互独立
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || sess.Admin == nil {
			utils.AbortError(c, utils.CodeUnauthorized, "需要管理员登录")
			return
		}
		c.Next()
	}
}

// RequireUserOrAdmin 任一登录态即可（题目列表供两种角色读取）
func RequireUserOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || (sess.User == nil && sess.Admin == nil) {
			utils.AbortError(c, utils.CodeUnauthenticated, "请先登录")
			return
		}
		c.Next()
	}
}
