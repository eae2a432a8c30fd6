package course

import (
	"net/http"

	autherrors "go-erp/internal/auth/errors"
	courseerrors "go-erp/internal/course/errors"
	"go-erp/internal/middleware"
	"go-erp/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("course.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("course.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.FromError(c, err)
	h.logger.Warn("course request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
}

func (h *Handler) List(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, courses, nil)
}

func (h *Handler) ListRegistered(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)
	if viewer == nil {
		h.writeServiceError(c, autherrors.ErrNotAuthenticated)
		return
	}

	res, err := h.service.ListRegistered(c.Request.Context(), viewer.ID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) Register(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)
	if viewer == nil {
		h.writeServiceError(c, autherrors.ErrNotAuthenticated)
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, courseerrors.ErrInvalidCourseID)
		return
	}

	res, err := h.service.Register(c.Request.Context(), viewer.ID, courseID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	viewer := middleware.ViewerFrom(c)
	if viewer == nil {
		h.writeServiceError(c, autherrors.ErrNotAuthenticated)
		return
	}
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, courseerrors.ErrInvalidCourseID)
		return
	}

	if err := h.service.Cancel(c.Request.Context(), viewer.ID, courseID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
