package attendance_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-erp/internal/attendance"
	attendanceerrors "go-erp/internal/attendance/errors"
	"go-erp/internal/domain"
	"go-erp/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceService struct {
	attendance.Service
	TodayFn       func(ctx context.Context, viewer domain.Viewer) ([]attendance.RecordResponse, error)
	OpenSessionFn func(ctx context.Context, viewer domain.Viewer, device *attendance.DeviceReport) (attendance.Session, error)
	ScanFn        func(ctx context.Context, viewer *domain.Viewer, req attendance.ScanRequest) (attendance.ScanResult, error)
	LastScanFn    func(ctx context.Context) (attendance.ScanResult, bool)
}

func (f *fakeAttendanceService) Today(ctx context.Context, viewer domain.Viewer) ([]attendance.RecordResponse, error) {
	return f.TodayFn(ctx, viewer)
}

func (f *fakeAttendanceService) OpenSession(ctx context.Context, viewer domain.Viewer, device *attendance.DeviceReport) (attendance.Session, error) {
	return f.OpenSessionFn(ctx, viewer, device)
}

func (f *fakeAttendanceService) Scan(ctx context.Context, viewer *domain.Viewer, req attendance.ScanRequest) (attendance.ScanResult, error) {
	return f.ScanFn(ctx, viewer, req)
}

func (f *fakeAttendanceService) LastScan(ctx context.Context) (attendance.ScanResult, bool) {
	return f.LastScanFn(ctx)
}

func setupRouter(h *attendance.Handler, viewer *domain.Viewer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if viewer != nil {
			c.Request = c.Request.WithContext(contextutil.WithViewer(c.Request.Context(), *viewer))
		}
		c.Next()
	})
	r.GET("/attendance/today", h.Today)
	r.POST("/attendance/sessions", h.OpenSession)
	r.POST("/attendance/scan", h.Scan)
	r.GET("/attendance/last-scan", h.LastScan)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAttendanceHandler_Today(t *testing.T) {
	svc := &fakeAttendanceService{
		TodayFn: func(_ context.Context, v domain.Viewer) ([]attendance.RecordResponse, error) {
			return []attendance.RecordResponse{{EmployeeID: v.ID, Status: attendance.StatusCheckedIn}}, nil
		},
	}

	r := setupRouter(attendance.NewHandler(svc), scanner)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/today", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"출근"`)

	r = setupRouter(attendance.NewHandler(svc), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/today", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAttendanceHandler_OpenSession(t *testing.T) {
	svc := &fakeAttendanceService{
		OpenSessionFn: func(_ context.Context, _ domain.Viewer, device *attendance.DeviceReport) (attendance.Session, error) {
			if device != nil && device.Name != "" {
				return attendance.Session{}, attendance.ClassifyDeviceError(device.Name, device.Message)
			}
			return attendance.Session{ID: "s-1", OwnerID: 7}, nil
		},
	}
	r := setupRouter(attendance.NewHandler(svc), scanner)

	w := postJSON(r, "/attendance/sessions", "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(r, "/attendance/sessions", `{"device":{"name":"NotAllowedError","message":"denied"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var env struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "DEVICE_ACCESS", env.Error.Code)
	assert.Equal(t, "permission_denied", env.Error.Details["reason"])
}

func TestAttendanceHandler_Scan(t *testing.T) {
	svc := &fakeAttendanceService{
		ScanFn: func(_ context.Context, v *domain.Viewer, req attendance.ScanRequest) (attendance.ScanResult, error) {
			require.NotNil(t, v)
			if req.QRToken == "expired" {
				return attendance.ScanResult{}, attendanceerrors.ErrQRCodeExpired
			}
			return attendance.ScanResult{Persisted: req.QRToken != "offline"}, nil
		},
	}
	r := setupRouter(attendance.NewHandler(svc), scanner)

	assert.Equal(t, http.StatusOK, postJSON(r, "/attendance/scan", `{"session_id":"s","qr_token":"t"}`).Code)
	assert.Equal(t, http.StatusAccepted, postJSON(r, "/attendance/scan", `{"session_id":"s","qr_token":"offline"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/attendance/scan", `{"session_id":"s","qr_token":"expired"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postJSON(r, "/attendance/scan", `{"session_id":"s"}`).Code)
}

func TestAttendanceHandler_LastScan(t *testing.T) {
	var current *attendance.ScanResult
	svc := &fakeAttendanceService{
		LastScanFn: func(context.Context) (attendance.ScanResult, bool) {
			if current == nil {
				return attendance.ScanResult{}, false
			}
			return *current, true
		},
	}
	r := setupRouter(attendance.NewHandler(svc), scanner)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/last-scan", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	current = &attendance.ScanResult{Message: "김영업님 퇴근 처리 완료! (18:00:00)"}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/attendance/last-scan", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "퇴근")
}
