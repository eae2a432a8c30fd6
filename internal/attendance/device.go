package attendance

import (
	attendanceerrors "go-erp/internal/attendance/errors"
	"go-erp/internal/shared/apperror"
)

// DeviceReport is what the client saw when it tried to open the camera.
type DeviceReport struct {
	Name             string `json:"name"`
	Message          string `json:"message"`
	MediaUnavailable bool   `json:"media_unavailable"`
}

func (r *DeviceReport) failed() bool {
	return r != nil && (r.Name != "" || r.MediaUnavailable)
}

// ClassifyDeviceError maps a browser media error name onto a DEVICE_ACCESS
// error with a reason detail.
func ClassifyDeviceError(name, detail string) *apperror.AppError {
	var (
		base   *apperror.AppError
		reason string
	)
	switch name {
	case "NotAllowedError", "PermissionDeniedError", "SecurityError":
		base, reason = attendanceerrors.ErrCameraPermissionDenied, attendanceerrors.ReasonPermissionDenied
	case "NotFoundError", "DevicesNotFoundError", "OverconstrainedError":
		base, reason = attendanceerrors.ErrCameraNotFound, attendanceerrors.ReasonNotFound
	case "NotSupportedError":
		base, reason = attendanceerrors.ErrCameraUnsupported, attendanceerrors.ReasonUnsupported
	default:
		base, reason = attendanceerrors.ErrCameraUnknown, attendanceerrors.ReasonUnknown
	}

	details := map[string]string{"reason": reason}
	if detail != "" {
		details["detail"] = detail
	}
	return base.WithDetails(details)
}

func classifyReport(r *DeviceReport) *apperror.AppError {
	if r.MediaUnavailable {
		return ClassifyDeviceError("NotSupportedError", r.Message)
	}
	return ClassifyDeviceError(r.Name, r.Message)
}
