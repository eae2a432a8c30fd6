package contextutil

import (
	"context"

	"go-erp/internal/domain"

	"go.uber.org/zap"
)

// private key type so other libraries cannot collide with our keys
type contextKey string

const (
	requestIDKey contextKey = "request_id"
	viewerKey    contextKey = "viewer"
	loggerKey    contextKey = "logger"
)

// --- Request ID Helpers ---

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// GetKey exposes the raw request id key for middleware that needs it.
func GetKey() string {
	return string(requestIDKey)
}

// --- Viewer Helpers ---

// WithViewer stores the authenticated viewer resolved for this request.
func WithViewer(ctx context.Context, v domain.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// GetViewer returns the viewer and whether one was resolved. Callers must
// treat a missing viewer as unauthenticated; there is no default identity.
func GetViewer(ctx context.Context) (domain.Viewer, bool) {
	v, ok := ctx.Value(viewerKey).(domain.Viewer)
	return v, ok
}

// --- Logger Helpers ---

// WithLogger stores a request-scoped (already decorated) zap logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request logger, falling back to defaultLogger and
// finally to a no-op logger so it never returns nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

// Metadata holds basic tracing info for manual logging.
type Metadata struct {
	RequestID  string
	EmployeeID int64
}

func ExtractMetadata(ctx context.Context) Metadata {
	md := Metadata{RequestID: GetRequestID(ctx)}
	if v, ok := GetViewer(ctx); ok {
		md.EmployeeID = v.ID
	}
	return md
}
