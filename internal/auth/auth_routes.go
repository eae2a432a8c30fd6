package auth

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
	group := r.Group("/auth")
	{
		group.POST("/login", middleware.RateLimitByIP(0.08, 5), handler.Login)
		group.POST("/register", middleware.RateLimitByIP(0.1, 1), handler.Register)
		group.POST("/logout", handler.Logout)
		group.GET("/me",
			auth,
			middleware.ResolveViewer(viewers),
			middleware.ContextLogger(logger),
			middleware.RateLimitByUser(2, 5),
			handler.Me,
		)
	}
}
