package auth_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-erp/internal/auth"
	autherrors "go-erp/internal/auth/errors"
	authMock "go-erp/internal/auth/mock"
	"go-erp/internal/domain"
	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupHandlerTest(t *testing.T) (*gin.Engine, *authMock.MockService) {
	gin.SetMode(gin.TestMode)
	apperror.Init()

	ctrl := gomock.NewController(t)
	svc := authMock.NewMockService(ctrl)
	h := auth.NewHandler(svc)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/register", h.Register)
	r.POST("/auth/logout", h.Logout)
	r.GET("/auth/me", func(c *gin.Context) {
		if c.GetHeader("X-Test-Viewer") != "" {
			ctx := contextutil.WithViewer(c.Request.Context(), domain.Viewer{ID: 3, Role: domain.RoleStaff})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}, h.Me)
	return r, svc
}

func TestAuthHandler_Login(t *testing.T) {
	r, svc := setupHandlerTest(t)

	t.Run("sets cookie", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), "park@erp.kr", "secret1").
			Return("signed-token", auth.AuthResponse{EmployeeID: 3, Role: domain.RoleStaff}, nil)

		body := `{"email":"park@erp.kr","password":"secret1"}`
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "signed-token")
		assert.Contains(t, w.Header().Get("Set-Cookie"), "access_token=signed-token")
	})

	t.Run("mobile client gets no cookie", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), "park@erp.kr", "secret1").
			Return("signed-token", auth.AuthResponse{EmployeeID: 3}, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			bytes.NewBufferString(`{"email":"park@erp.kr","password":"secret1"}`))
		req.Header.Set("X-Client-Type", "mobile")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})

	t.Run("invalid credentials", func(t *testing.T) {
		svc.EXPECT().Login(gomock.Any(), "park@erp.kr", "nope").
			Return("", auth.AuthResponse{}, autherrors.ErrInvalidCredentials)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login",
			bytes.NewBufferString(`{"email":"park@erp.kr","password":"nope"}`)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/login",
			bytes.NewBufferString(`{"email":"not-an-email"}`)))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Register(t *testing.T) {
	r, svc := setupHandlerTest(t)

	svc.EXPECT().Register(gomock.Any(), auth.RegisterRequest{EmployeeID: 3, Email: "park@erp.kr", Password: "secret1"}).
		Return(auth.AuthResponse{EmployeeID: 3}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/register",
		bytes.NewBufferString(`{"employee_id":3,"email":"park@erp.kr","password":"secret1"}`)))
	assert.Equal(t, http.StatusCreated, w.Code)

	svc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(auth.AuthResponse{}, autherrors.ErrEmailAlreadyRegistered)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/register",
		bytes.NewBufferString(`{"employee_id":3,"email":"park@erp.kr","password":"secret1"}`)))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/register",
		bytes.NewBufferString(`{"employee_id":3,"email":"park@erp.kr","password":"123"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Me(t *testing.T) {
	r, svc := setupHandlerTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	svc.EXPECT().Me(gomock.Any(), domain.Viewer{ID: 3, Role: domain.RoleStaff}).
		Return(auth.AuthResponse{EmployeeID: 3, Name: "박영업"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("X-Test-Viewer", "1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "박영업")
}

func TestAuthHandler_Logout(t *testing.T) {
	r, _ := setupHandlerTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}
