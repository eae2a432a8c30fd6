package middleware

import (
	"net/http"

	"go-erp/internal/domain"
	"go-erp/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

// Enforcer answers capability checks. The permission enforcer satisfies it.
type Enforcer interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

func RBACAuthorize(enforcer Enforcer, capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetInt64(CtxEmployeeID)
		if employeeID == 0 {
			abortWithError(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := enforcer.Enforce(domain.EnforceRequest{
			EmployeeID: employeeID,
			Capability: capability,
		})
		if err != nil {
			abortWithError(c, apperror.Wrap(err, apperror.CodeInternalError, "Permission check failed", http.StatusInternalServerError))
			return
		}

		if !allowed {
			abortWithError(c, apperror.ErrForbidden.WithDetails(gin.H{"required": capability}))
			return
		}
		c.Next()
	}
}
