package domain

// EnforceRequest asks whether an employee holds a capability.
type EnforceRequest struct {
	EmployeeID int64  `json:"employee_id" binding:"required"`
	Capability string `json:"capability" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
