package rbac

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
	group := r.Group("/rbac")
	group.Use(auth)
	group.Use(middleware.ResolveViewer(viewers))
	group.Use(middleware.ContextLogger(logger))
	{
		group.GET("/check", middleware.RateLimitByUser(5, 20), handler.Check)
	}
}
