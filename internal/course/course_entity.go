package course

import (
	"time"

	"github.com/google/uuid"
)

// MaxCourses is how many courses one student may hold at once.
const MaxCourses = 8

type Course struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name"`
	Professor string    `gorm:"column:professor"`
	Credits   int       `gorm:"column:credits"`
	Time      string    `gorm:"column:time"`
	Capacity  int       `gorm:"column:capacity"`
	Enrolled  int       `gorm:"column:enrolled"`
}

func (Course) TableName() string {
	return "courses"
}

func (c Course) Full() bool {
	return c.Enrolled >= c.Capacity
}

type Registration struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	StudentID int64     `gorm:"column:student_id;uniqueIndex:idx_registration_student_course"`
	CourseID  uuid.UUID `gorm:"column:course_id;type:uuid;uniqueIndex:idx_registration_student_course"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Registration) TableName() string {
	return "registrations"
}
