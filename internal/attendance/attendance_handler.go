package attendance

import (
	"net/http"
	"strconv"

	attendanceerrors "go-erp/internal/attendance/errors"
	autherrors "go-erp/internal/auth/errors"
	"go-erp/internal/domain"
	employeeerrors "go-erp/internal/employee/errors"
	"go-erp/internal/middleware"
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
	l := zap.L().Named("attendance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	h.logger.Warn("attendance request failed",
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

func (h *Handler) Today(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	resp, err := h.service.Today(c.Request.Context(), viewer)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) History(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("employee_id"), 10, 64)
	if err != nil || id <= 0 {
		h.writeServiceError(c, employeeerrors.ErrInvalidEmployeeID)
		return
	}

	resp, err := h.service.History(c.Request.Context(), viewer, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, meta := response.Paginate(c, resp)
	response.Success(c, http.StatusOK, page, &meta)
}

func (h *Handler) QR(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	resp, err := h.service.IssueQR(c.Request.Context(), viewer)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) OpenSession(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	var req OpenSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
	}

	resp, err := h.service.OpenSession(c.Request.Context(), viewer, req.Device)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) StopSession(c *gin.Context) {
	viewer, ok := h.viewer(c)
	if !ok {
		return
	}

	if err := h.service.StopSession(c.Request.Context(), viewer, c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Scan(c.Request.Context(), middleware.ViewerFrom(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if !resp.Persisted {
		status = http.StatusAccepted
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) LastScan(c *gin.Context) {
	resp, ok := h.service.LastScan(c.Request.Context())
	if !ok {
		h.writeServiceError(c, attendanceerrors.ErrNoLastScan)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
