package employee

type EmployeeResponse struct {
	ID         int64  `json:"employee_id"`
	Name       string `json:"employee_name"`
	Department string `json:"employee_department"`
	Email      string `json:"employee_email"`
	CreatedAt  string `json:"employee_created_at,omitempty"`
	RenewedAt  string `json:"employee_renewed_at,omitempty"`
}
