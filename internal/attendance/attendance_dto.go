package attendance

import "time"

type RecordResponse struct {
	AttendanceID   int64   `json:"attendance_id"`
	EmployeeID     int64   `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	Department     string  `json:"employee_department"`
	AttendanceDate string  `json:"attendance_date"`
	CheckInTime    *string `json:"check_in_time"`
	CheckOutTime   *string `json:"check_out_time"`
	Status         Status  `json:"status"`
	Note           string  `json:"note"`
	CreatedAt      string  `json:"created_at"`
	Persisted      bool    `json:"persisted"`
}

type OpenSessionRequest struct {
	Device *DeviceReport `json:"device"`
}

type ScanRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	QRToken   string `json:"qr_token" binding:"required"`
}

func mapToResponse(r Record) RecordResponse {
	resp := RecordResponse{
		AttendanceID:   r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		Department:     r.Department,
		AttendanceDate: r.AttendanceDate,
		CheckInTime:    r.CheckInTime,
		CheckOutTime:   r.CheckOutTime,
		Status:         r.Status,
		Note:           r.Note,
		Persisted:      r.Persisted,
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
