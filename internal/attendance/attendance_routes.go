package attendance

import (
	"go-erp/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	viewers middleware.ViewerResolver,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	attendance := r.Group("/attendance")
	attendance.Use(auth)
	attendance.Use(middleware.ResolveViewer(viewers))
	attendance.Use(middleware.ContextLogger(logger))
	{
		attendance.GET("/today", middleware.RateLimitByUser(3, 10), handler.Today)
		attendance.GET("/employees/:employee_id", middleware.RateLimitByUser(3, 10), handler.History)
		attendance.GET("/qr", middleware.RateLimitByUser(1, 5), handler.QR)
		attendance.GET("/last-scan", middleware.RateLimitByUser(5, 20), handler.LastScan)

		attendance.POST("/sessions", middleware.RateLimitByUser(1, 5), handler.OpenSession)
		attendance.DELETE("/sessions/:id", handler.StopSession)

		attendance.POST("/scan",
			middleware.RateLimitByUser(2, 5),
			middleware.Idempotency(rdb, logger),
			handler.Scan,
		)
	}
}
