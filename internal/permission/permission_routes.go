package permission

import (
	"go-erp/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	viewers middleware.ViewerResolver,
	logger *zap.Logger,
) {
	permissions := r.Group("/permissions")
	permissions.Use(auth)
	permissions.Use(middleware.ResolveViewer(viewers))
	permissions.Use(middleware.ContextLogger(logger))
	{
		permissions.GET("", middleware.RateLimitByUser(3, 10), handler.List)
		permissions.GET("/stats", middleware.RateLimitByUser(3, 10), handler.Stats)
		permissions.GET("/:employee_id", middleware.RateLimitByUser(3, 10), handler.Get)

		permissions.PUT("/:employee_id/role",
			middleware.RateLimitByUser(1, 5),
			handler.ReassignRole,
		)
		permissions.PUT("/:employee_id/capabilities/:capability",
			middleware.RateLimitByUser(1, 5),
			handler.SetCapability,
		)
	}
}
