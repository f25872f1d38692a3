package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"workmate/backend/config"
	"workmate/backend/internal/api/handler"
	"workmate/backend/internal/api/middleware"
	"workmate/backend/internal/model"
	"workmate/backend/pkg/jwt"
	"workmate/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentWorker)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 员工模块
			workers := authorized.Group("/workers")
			{
				workers.GET("", middleware.RoleAuth(model.RoleManager), h.Worker.ListWorkers)
				workers.POST("", middleware.RoleAuth(model.RoleManager), h.Worker.CreateWorker)
				workers.GET("/:id", middleware.RoleAuth(model.RoleManager), h.Worker.GetWorker)
				workers.PUT("/:id", middleware.RoleAuth(model.RoleManager), h.Worker.UpdateWorker)
			}

			// 班次模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("/my", h.Shift.ListMyShifts)
				shifts.GET("", middleware.RoleAuth(model.RoleManager), h.Shift.ListShifts)
				shifts.GET("/:id", h.Shift.GetShift)
				shifts.GET("/:id/transfers", h.Shift.GetTransferHistory)
			}

			// 换班市场模块
			swaps := authorized.Group("/swaps")
			{
				swaps.POST("", h.Swap.CreateSwap)
				swaps.GET("/open", h.Swap.ListOpenSwaps)
				swaps.GET("/my", h.Swap.ListMySwaps)
				swaps.GET("/pending", middleware.RoleAuth(model.RoleManager), h.Swap.ListPendingSwaps)
				swaps.GET("/:id", h.Swap.GetSwap)
				swaps.POST("/:id/claim", h.Swap.ClaimSwap)
				swaps.POST("/:id/approve", middleware.RoleAuth(model.RoleManager), h.Swap.ApproveSwap)
				swaps.POST("/:id/reject", middleware.RoleAuth(model.RoleManager), h.Swap.RejectSwap)
			}

			// 自动排班模块（仅经理）
			scheduler := authorized.Group("/scheduler", middleware.RoleAuth(model.RoleManager))
			{
				scheduler.POST("/run", h.Scheduler.GenerateWeek)
				scheduler.GET("/config", h.Scheduler.GetConfig)
				scheduler.PUT("/config", h.Scheduler.UpdateConfig)
			}

			// 通知模块
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.ListMyNotifications)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/week", middleware.RoleAuth(model.RoleManager), h.Export.ExportWeek)
				export.GET("/calendar", h.Export.ExportMyCalendar)
			}
		}
	}

	return r
}
