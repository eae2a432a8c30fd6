package course_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-erp/internal/course"
	courseerrors "go-erp/internal/course/errors"
	courseMock "go-erp/internal/course/mock"
	"go-erp/internal/domain"
	"go-erp/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupHandlerTest(t *testing.T) (*gin.Engine, *courseMock.MockService) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	svc := courseMock.NewMockService(ctrl)
	h := course.NewHandler(svc)

	withViewer := func(c *gin.Context) {
		if c.GetHeader("X-Anonymous") == "" {
			ctx := contextutil.WithViewer(c.Request.Context(), domain.Viewer{ID: student, Role: domain.RoleStaff})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}

	r := gin.New()
	r.Use(withViewer)
	r.GET("/courses", h.List)
	r.GET("/courses/registrations", h.ListRegistered)
	r.POST("/courses/:id/registrations", h.Register)
	r.DELETE("/courses/:id/registrations", h.Cancel)
	return r, svc
}

func TestCourseHandler_List(t *testing.T) {
	r, svc := setupHandlerTest(t)
	svc.EXPECT().ListCourses(gomock.Any()).Return([]course.CourseResponse{{Name: "알고리즘"}}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "알고리즘")
}

func TestCourseHandler_ListRegistered(t *testing.T) {
	r, svc := setupHandlerTest(t)
	svc.EXPECT().ListRegistered(gomock.Any(), student).Return(course.RegisteredResponse{Count: 1, TotalCredits: 3}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/courses/registrations", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_credits":3`)

	req := httptest.NewRequest(http.MethodGet, "/courses/registrations", nil)
	req.Header.Set("X-Anonymous", "1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCourseHandler_Register(t *testing.T) {
	r, svc := setupHandlerTest(t)
	id := uuid.New()

	svc.EXPECT().Register(gomock.Any(), student, id).Return(course.CourseResponse{ID: id.String(), Enrolled: 1}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/courses/"+id.String()+"/registrations", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	svc.EXPECT().Register(gomock.Any(), student, id).Return(course.CourseResponse{}, courseerrors.ErrCourseFull)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/courses/"+id.String()+"/registrations", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "수강인원이 초과되었습니다.")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/courses/not-a-uuid/registrations", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCourseHandler_Cancel(t *testing.T) {
	r, svc := setupHandlerTest(t)
	id := uuid.New()

	svc.EXPECT().Cancel(gomock.Any(), student, id).Return(nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/courses/"+id.String()+"/registrations", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	svc.EXPECT().Cancel(gomock.Any(), student, id).Return(courseerrors.ErrNotRegistered)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/courses/"+id.String()+"/registrations", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
