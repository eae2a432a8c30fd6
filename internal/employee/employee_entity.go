package employee

import "time"

// AdminDepartment is the department whose members default to the admin role.
const AdminDepartment = "관리자"

type Employee struct {
	ID         int64     `gorm:"column:employee_id;primaryKey"`
	Name       string    `gorm:"column:employee_name"`
	Department string    `gorm:"column:employee_department"`
	Email      string    `gorm:"column:employee_email"`
	CreatedAt  time.Time `gorm:"column:employee_created_at"`
	RenewedAt  time.Time `gorm:"column:employee_renewed_at"`
}

func (Employee) TableName() string {
	return "employee"
}

// Directory is a point-in-time department lookup built from the roster.
type Directory map[int64]string

func NewDirectory(employees []Employee) Directory {
	d := make(Directory, len(employees))
	for _, e := range employees {
		d[e.ID] = e.Department
	}
	return d
}

func (d Directory) DepartmentOf(employeeID int64) (string, bool) {
	dept, ok := d[employeeID]
	return dept, ok
}
