package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-erp/internal/employee"
	employeeerrors "go-erp/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	employee.Service
	GetAllFn  func(ctx context.Context) ([]employee.EmployeeResponse, error)
	GetByIDFn func(ctx context.Context, id int64) (employee.EmployeeResponse, error)
}

func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, id int64) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}

func setupRouter(h *employee.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/employees", h.GetAll)
	r.GET("/employees/:id", h.GetByID)
	return r
}

type listEnvelope struct {
	OK   bool                        `json:"ok"`
	Data []employee.EmployeeResponse `json:"data"`
	Meta struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	svc := &fakeEmployeeService{
		GetAllFn: func(context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{ID: 1, Name: "김관리", Department: "관리자", Email: "admin@erp.kr"},
				{ID: 2, Name: "이영업", Department: "영업", Email: "lee@erp.kr"},
				{ID: 3, Name: "박영업", Department: "영업", Email: "park@erp.kr"},
			}, nil
		},
	}
	r := setupRouter(employee.NewHandler(svc))

	t.Run("department filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?department=%EC%98%81%EC%97%85", nil))

		var env listEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, env.Data, 2)
		assert.EqualValues(t, 2, env.Meta.Total)
	})

	t.Run("search by email", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?q=PARK", nil))

		var env listEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		require.Len(t, env.Data, 1)
		assert.EqualValues(t, 3, env.Data[0].ID)
	})

	t.Run("pagination", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?page=2&page_size=2", nil))

		var env listEnvelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		require.Len(t, env.Data, 1)
		assert.EqualValues(t, 3, env.Meta.Total)
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	svc := &fakeEmployeeService{
		GetByIDFn: func(_ context.Context, id int64) (employee.EmployeeResponse, error) {
			if id == 2 {
				return employee.EmployeeResponse{ID: 2, Name: "이영업"}, nil
			}
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		},
	}
	r := setupRouter(employee.NewHandler(svc))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/2", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "이영업")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/5", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
