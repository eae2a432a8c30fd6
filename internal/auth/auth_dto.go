package auth

import "go-erp/internal/domain"

type RegisterRequest struct {
	EmployeeID int64  `json:"employee_id" binding:"required,gt=0"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccountID  string      `json:"account_id,omitempty"`
	EmployeeID int64       `json:"employee_id"`
	Name       string      `json:"employee_name"`
	Department string      `json:"employee_department"`
	Email      string      `json:"email"`
	Role       domain.Role `json:"role"`
	RoleLabel  string      `json:"role_label"`
}
