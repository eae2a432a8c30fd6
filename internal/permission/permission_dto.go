package permission

import "go-erp/internal/domain"

type PermissionResponse struct {
	EmployeeID      int64         `json:"employee_id"`
	EmployeeName    string        `json:"employee_name"`
	Department      string        `json:"employee_department"`
	Role            domain.Role   `json:"role"`
	RoleLabel       string        `json:"role_label"`
	Capabilities    Capabilities  `json:"capabilities"`
	Customized      bool          `json:"customized"`
	Persisted       bool          `json:"persisted"`
	Editable        bool          `json:"editable"`
	AssignableRoles []domain.Role `json:"assignable_roles,omitempty"`
}

type ReassignRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type SetCapabilityRequest struct {
	Value *bool `json:"value" binding:"required"`
}

type StatsResponse struct {
	Total      int                 `json:"total"`
	ByRole     map[domain.Role]int `json:"by_role"`
	Customized int                 `json:"customized"`
}
