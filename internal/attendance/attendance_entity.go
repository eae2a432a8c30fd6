package attendance

import "time"

type Status string

const (
	StatusCheckedIn  Status = "출근"
	StatusCheckedOut Status = "퇴근"
	StatusLeave      Status = "휴가"
	StatusSickLeave  Status = "병가"
	StatusOut        Status = "외출"
	StatusLate       Status = "지각"
	StatusEarlyLeave Status = "조퇴"
)

func (s Status) Valid() bool {
	switch s {
	case StatusCheckedIn, StatusCheckedOut, StatusLeave, StatusSickLeave, StatusOut, StatusLate, StatusEarlyLeave:
		return true
	}
	return false
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
	scanNote   = "QR 코드 스캔"
)

// Record is one row per (employee_id, attendance_date). Times are wall-clock
// strings in the configured zone.
type Record struct {
	ID             int64     `gorm:"column:attendance_id;primaryKey"`
	EmployeeID     int64     `gorm:"column:employee_id;uniqueIndex:uq_attendance_employee_date"`
	EmployeeName   string    `gorm:"column:employee_name"`
	Department     string    `gorm:"column:employee_department"`
	AttendanceDate string    `gorm:"column:attendance_date;uniqueIndex:uq_attendance_employee_date"`
	CheckInTime    *string   `gorm:"column:check_in_time"`
	CheckOutTime   *string   `gorm:"column:check_out_time"`
	Status         Status    `gorm:"column:status"`
	Note           string    `gorm:"column:note"`
	CreatedAt      time.Time `gorm:"column:created_at"`

	// Persisted is false for rows that exist only in this process.
	Persisted bool `gorm:"-"`
}

func (Record) TableName() string {
	return "attendance"
}

// placeholder reports whether r was synthesized for the roster and never scanned.
func (r Record) placeholder() bool {
	return !r.Persisted && r.CheckInTime == nil && r.CheckOutTime == nil
}
