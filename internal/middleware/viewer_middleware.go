package middleware

import (
	"context"

	autherrors "go-erp/internal/auth/errors"
	"go-erp/internal/domain"
	"go-erp/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

type ViewerResolver interface {
	ResolveViewer(ctx context.Context, employeeID int64) (domain.Viewer, error)
}

// ResolveViewer turns the authenticated employee id into a Viewer with its
// current role. It must run after AuthMiddleware.
func ResolveViewer(resolver ViewerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetInt64(CtxEmployeeID)
		if employeeID == 0 {
			abortWithError(c, autherrors.ErrNotAuthenticated)
			return
		}

		viewer, err := resolver.ResolveViewer(c.Request.Context(), employeeID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(CtxViewer, viewer)
		c.Request = c.Request.WithContext(contextutil.WithViewer(c.Request.Context(), viewer))
		c.Next()
	}
}

// ViewerFrom returns the viewer resolved for this request, or nil.
func ViewerFrom(c *gin.Context) *domain.Viewer {
	v, ok := contextutil.GetViewer(c.Request.Context())
	if !ok {
		return nil
	}
	return &v
}
