package events

import "time"

const AttendanceScannedTopic = "erp.attendance.scanned.v1"

type AttendanceScannedEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     int64     `json:"employee_id"`
	AttendanceDate string    `json:"attendance_date"`
	Status         string    `json:"status"`
	ScannedBy      int64     `json:"scanned_by"`
	Persisted      bool      `json:"persisted"`
	OccurredAt     time.Time `json:"occurred_at"`
}
