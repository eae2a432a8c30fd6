package auth

import (
	"time"

	"github.com/google/uuid"
)

// Account holds the sign-in credentials of one employee.
type Account struct {
	ID           uuid.UUID `gorm:"column:account_id;type:uuid;primaryKey"`
	EmployeeID   int64     `gorm:"column:employee_id;uniqueIndex"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (Account) TableName() string {
	return "accounts"
}
