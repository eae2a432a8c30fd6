package permission

import (
	"net/http"
	"strconv"

	autherrors "go-erp/internal/auth/errors"
	"go-erp/internal/domain"
	employeeerrors "go-erp/internal/employee/errors"
	"go-erp/internal/middleware"
	permissionerrors "go-erp/internal/permission/errors"
	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("permission.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("permission.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	h.logger.Warn("permission request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
}

func (h *Handler) viewer(c *gin.Context) (domain.Viewer, bool) {
	v := middleware.ViewerFrom(c)
	if v == nil {
		h.writeServiceError(c, autherrors.ErrNotAuthenticated)
		return domain.Viewer{}, false
	}
	return *v, true
}

func (h *Handler) employeeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("employee_id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeServiceError(c, employeeerrors.ErrInvalidEmployeeID)
		return 0, false
	}
	return id, true
}

func (h *Handler) List(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	resp, err := h.service.List(c.Request.Context(), viewer)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) Stats(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	resp, err := h.service.Stats(c.Request.Context(), viewer)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Get(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	resp, err := h.service.Get(c.Request.Context(), viewer, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ReassignRole(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	var req ReassignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		h.writeServiceError(c, permissionerrors.ErrInvalidRole)
		return
	}

	resp, err := h.service.ReassignRole(c.Request.Context(), viewer, id, role)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetCapability(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, ok := h.employeeID(c)
	if !ok {
		return
	}

	name, err := ParseCapability(c.Param("capability"))
	if err != nil {
		h.writeServiceError(c, permissionerrors.ErrUnknownCapability.WithDetails(gin.H{"capability": c.Param("capability")}))
		return
	}

	var req SetCapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.SetCapability(c.Request.Context(), viewer, id, name, *req.Value)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
