package permission_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-erp/internal/domain"
	"go-erp/internal/permission"
	permissionerrors "go-erp/internal/permission/errors"
	"go-erp/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePermissionService struct {
	permission.Service
	ListFn          func(ctx context.Context, viewer domain.Viewer) ([]permission.PermissionResponse, error)
	ReassignRoleFn  func(ctx context.Context, viewer domain.Viewer, id int64, role domain.Role) (permission.PermissionResponse, error)
	SetCapabilityFn func(ctx context.Context, viewer domain.Viewer, id int64, name permission.Capability, value bool) (permission.PermissionResponse, error)
}

func (f *fakePermissionService) List(ctx context.Context, viewer domain.Viewer) ([]permission.PermissionResponse, error) {
	return f.ListFn(ctx, viewer)
}

func (f *fakePermissionService) ReassignRole(ctx context.Context, viewer domain.Viewer, id int64, role domain.Role) (permission.PermissionResponse, error) {
	return f.ReassignRoleFn(ctx, viewer, id, role)
}

func (f *fakePermissionService) SetCapability(ctx context.Context, viewer domain.Viewer, id int64, name permission.Capability, value bool) (permission.PermissionResponse, error) {
	return f.SetCapabilityFn(ctx, viewer, id, name, value)
}

func setupRouter(h *permission.Handler, viewer *domain.Viewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if viewer != nil {
			c.Request = c.Request.WithContext(contextutil.WithViewer(c.Request.Context(), *viewer))
		}
		c.Next()
	})
	r.GET("/permissions", h.List)
	r.PUT("/permissions/:employee_id/role", h.ReassignRole)
	r.PUT("/permissions/:employee_id/capabilities/:capability", h.SetCapability)
	return r
}

type errorEnvelope struct {
	OK    bool `json:"ok"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func TestPermissionHandler_List(t *testing.T) {
	svc := &fakePermissionService{
		ListFn: func(_ context.Context, v domain.Viewer) ([]permission.PermissionResponse, error) {
			assert.Equal(t, int64(2), v.ID)
			return []permission.PermissionResponse{{EmployeeID: 2}, {EmployeeID: 3}}, nil
		},
	}

	t.Run("ok", func(t *testing.T) {
		r := setupRouter(permission.NewHandler(svc), &manager)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/permissions", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data []permission.PermissionResponse `json:"data"`
			Meta struct {
				Total int64 `json:"total"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Data, 2)
		assert.EqualValues(t, 2, body.Meta.Total)
	})

	t.Run("no viewer", func(t *testing.T) {
		r := setupRouter(permission.NewHandler(svc), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/permissions", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestPermissionHandler_ReassignRole(t *testing.T) {
	svc := &fakePermissionService{
		ReassignRoleFn: func(_ context.Context, _ domain.Viewer, id int64, role domain.Role) (permission.PermissionResponse, error) {
			if role == domain.RoleAdmin {
				return permission.PermissionResponse{}, permissionerrors.ErrAdminEscalation
			}
			return permission.PermissionResponse{EmployeeID: id, Role: role}, nil
		},
	}
	r := setupRouter(permission.NewHandler(svc), &manager)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"ok", "/permissions/3/role", `{"role":"viewer"}`, http.StatusOK, ""},
		{"escalation", "/permissions/3/role", `{"role":"admin"}`, http.StatusForbidden, "FORBIDDEN"},
		{"unknown role", "/permissions/3/role", `{"role":"owner"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"missing role", "/permissions/3/role", `{}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad id", "/permissions/abc/role", `{"role":"viewer"}`, http.StatusBadRequest, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				var env errorEnvelope
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
				assert.Equal(t, tt.code, env.Error.Code)
			}
		})
	}
}

func TestPermissionHandler_SetCapability(t *testing.T) {
	var gotName permission.Capability
	var gotValue bool
	svc := &fakePermissionService{
		SetCapabilityFn: func(_ context.Context, _ domain.Viewer, id int64, name permission.Capability, value bool) (permission.PermissionResponse, error) {
			gotName, gotValue = name, value
			return permission.PermissionResponse{EmployeeID: id, Customized: true}, nil
		},
	}
	r := setupRouter(permission.NewHandler(svc), &manager)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/permissions/3/capabilities/reports_view", strings.NewReader(`{"value":false}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, permission.ReportsView, gotName)
	assert.False(t, gotValue)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/permissions/3/capabilities/launch_rockets", strings.NewReader(`{"value":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/permissions/3/capabilities/stock_in", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
