package course

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
	courses := r.Group("/courses")
	courses.Use(auth)
	courses.Use(middleware.ResolveViewer(viewers))
	courses.Use(middleware.ContextLogger(logger))
	{
		courses.GET("", middleware.RateLimitByUser(3, 10), handler.List)
		courses.GET("/registrations", middleware.RateLimitByUser(3, 10), handler.ListRegistered)

		courses.POST("/:id/registrations",
			middleware.RateLimitByUser(1, 5),
			middleware.Idempotency(rdb, logger),
			handler.Register,
		)
		courses.DELETE("/:id/registrations",
			middleware.RateLimitByUser(1, 5),
			handler.Cancel,
		)
	}
}
