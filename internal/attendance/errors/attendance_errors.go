package attendanceerrors

import (
	"go-erp/internal/shared/apperror"
	"net/http"
)

const (
	ReasonPermissionDenied = "permission_denied"
	ReasonNotFound         = "not_found"
	ReasonUnsupported      = "unsupported"
	ReasonUnknown          = "unknown"
)

var (
	ErrCameraPermissionDenied = apperror.New(
		apperror.CodeDeviceAccess,
		"카메라 접근이 거부되었습니다. 브라우저 설정에서 카메라 권한을 허용해주세요.",
		http.StatusUnprocessableEntity,
	)
	ErrCameraNotFound = apperror.New(
		apperror.CodeDeviceAccess,
		"카메라를 찾을 수 없습니다. 카메라가 연결되어 있는지 확인해주세요.",
		http.StatusUnprocessableEntity,
	)
	ErrCameraUnsupported = apperror.New(
		apperror.CodeDeviceAccess,
		"이 브라우저는 카메라 접근을 지원하지 않습니다.",
		http.StatusUnprocessableEntity,
	)
	ErrCameraUnknown = apperror.New(
		apperror.CodeDeviceAccess,
		"카메라 접근 중 오류가 발생했습니다.",
		http.StatusUnprocessableEntity,
	)

	ErrSessionNotFound = apperror.New(
		apperror.CodeInvalidState,
		"Scan session is not active",
		http.StatusConflict,
	)
	ErrSessionNotOwned = apperror.New(
		apperror.CodeForbidden,
		"Scan session belongs to another employee",
		http.StatusForbidden,
	)
	ErrInvalidQRCode = apperror.New(
		apperror.CodeInvalidInput,
		"QR code is not a valid attendance code",
		http.StatusBadRequest,
	)
	ErrQRCodeExpired = apperror.New(
		apperror.CodeInvalidInput,
		"QR code has expired",
		http.StatusBadRequest,
	)
	ErrNoLastScan = apperror.New(
		apperror.CodeNotFound,
		"No recent scan",
		http.StatusNotFound,
	)
)
