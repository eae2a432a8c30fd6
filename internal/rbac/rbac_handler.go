package rbac

import (
	"net/http"
	"strings"

	"go-erp/internal/domain"
	"go-erp/internal/shared/contextutil"
	"go-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

// Check answers whether the current viewer holds ?capability=.
func (h *Handler) Check(c *gin.Context) {
	viewer, ok := contextutil.GetViewer(c.Request.Context())
	if !ok {
		response.FromError(c, ErrNoViewer)
		return
	}

	capability := strings.TrimSpace(c.Query("capability"))
	if capability == "" {
		response.FromError(c, ErrCapabilityRequired)
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{EmployeeID: viewer.ID, Capability: capability})
	if err != nil {
		h.logger.Error("rbac check failed", zap.Int64("employee_id", viewer.ID), zap.Error(err))
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, CheckResponse{
		EmployeeID: viewer.ID,
		Capability: capability,
		Allowed:    allowed,
	}, nil)
}
