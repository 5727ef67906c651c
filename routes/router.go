package routes

import (
	"github.com/Kamesh-the-hacker/CTF/config"
	"github.com/Kamesh-the-hacker/CTF/controllers"
	"github.com/Kamesh-the-hacker/CTF/middlewares"
	"github.com/Kamesh-the-hacker/CTF/services"
	"github.com/Kamesh-the-hacker/CTF/session"
	"github.com/Kamesh-the-hacker/CTF/utils"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps 路由装配需要的全部依赖，由 main 构造后传入
type Deps struct {
	Cfg      *config.Config
	DB       *gorm.DB
	RDB      *redis.Client // 可以为 nil，排行榜缓存自动退化
	Sessions session.Store
	Tokens   *utils.TokenManager
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	authSvc := services.NewAuthService(d.DB)
	challengeSvc := services.NewChallengeService(d.DB)
	submissionSvc := services.NewSubmissionService(d.DB, d.Sessions)
	leaderboardSvc := services.NewLeaderboardService(d.DB, d.RDB)

	userCtl := controllers.NewUserController(authSvc, challengeSvc, leaderboardSvc, d.Sessions, d.Tokens)
	adminCtl := controllers.NewAdminController(authSvc, d.Sessions, d.Tokens)
	challengeCtl := controllers.NewChallengeController(challengeSvc, d.Cfg.Server.UploadDir)
	submissionCtl := controllers.NewSubmissionController(submissionSvc, challengeSvc, leaderboardSvc)
	leaderboardCtl := controllers.NewLeaderboardController(leaderboardSvc)

	// 附件静态下载
	r.Static("/uploads", d.Cfg.Server.UploadDir)

	api := r.Group("/api")
	api.Use(middlewares.SessionMiddleware(d.Tokens, d.Sessions))
	{
		// 公开接口
		api.POST("/register", userCtl.Register)
		api.POST("/login", userCtl.Login)
		api.GET("/leaderboard", leaderboardCtl.Get)

		// 用户接口
		api.POST("/logout", middlewares.RequireUser(), userCtl.Logout)
		api.GET("/user", middlewares.RequireUser(), userCtl.CurrentUser)
		api.POST("/submit", middlewares.RequireUser(), submissionCtl.Submit)
		api.GET("/solved/:userId", middlewares.RequireUser(), userCtl.GetSolved)

		// 题目列表：用户和管理员都可读，响应按角色分流
		api.GET("/challenges", middlewares.RequireUserOrAdmin(), challengeCtl.List)

		// 管理员题目管理
		api.POST("/challenges", middlewares.RequireAdmin(), challengeCtl.Create)
		api.PUT("/challenges/:id", middlewares.RequireAdmin(), challengeCtl.Update)
		api.DELETE("/challenges/:id", middlewares.RequireAdmin(), challengeCtl.Delete)

		// 管理员会话
		adminRoutes := api.Group("/admin")
		{
			adminRoutes.POST("/login", adminCtl.Login)
			adminRoutes.GET("/check-session", adminCtl.CheckSession)
			adminRoutes.POST("/logout", middlewares.RequireAdmin(), adminCtl.Logout)
			adminRoutes.POST("/change-password", middlewares.RequireAdmin(), adminCtl.ChangePassword)
		}

		// 管理员用户管理
		api.GET("/users", middlewares.RequireAdmin(), userCtl.GetUserList)
		api.DELETE("/users/:id", middlewares.RequireAdmin(), userCtl.DeleteUser)
	}

	return r
}
