package rbac

import "go-erp/internal/domain"

// RoleGrant gives every holder of Role the Capability.
type RoleGrant struct {
	Role       domain.Role
	Capability string
}

// EmployeeGrant assigns a role and per-capability overrides. A true override
// allows a capability the role lacks; a false one denies one it has.
type EmployeeGrant struct {
	EmployeeID int64
	Role       domain.Role
	Overrides  map[string]bool
}

type Policy struct {
	Roles     []RoleGrant
	Employees []EmployeeGrant
}

type CheckResponse struct {
	EmployeeID int64  `json:"employee_id"`
	Capability string `json:"capability"`
	Allowed    bool   `json:"allowed"`
}
