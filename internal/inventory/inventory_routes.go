package inventory

import (
	"go-erp/internal/middleware"
	"go-erp/internal/permission"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	enforcer middleware.Enforcer,
	logger *zap.Logger,
) {
	inventory := r.Group("/inventory")
	inventory.Use(auth)
	inventory.Use(middleware.ContextLogger(logger))
	{
		inventory.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(enforcer, string(permission.InventoryView)),
			handler.List,
		)
		inventory.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(enforcer, string(permission.InventoryEdit)),
			handler.Register,
		)
	}
}
