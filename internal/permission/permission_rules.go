package permission

import (
	"go-erp/internal/domain"
	"go-erp/internal/employee"
	permissionerrors "go-erp/internal/permission/errors"
)

var capabilityTable = map[domain.Role]Capabilities{
	domain.RoleAdmin: {
		InventoryView: true, InventoryEdit: true,
		OrderView: true, OrderCreate: true, OrderApprove: true,
		StockIn: true, StockOut: true,
		ReportsView: true, UserManage: true,
	},
	domain.RoleManager: {
		InventoryView: true, InventoryEdit: true,
		OrderView: true, OrderCreate: true, OrderApprove: true,
		StockIn: true, StockOut: true,
		ReportsView: true,
	},
	domain.RoleStaff: {
		InventoryView: true,
		OrderView:     true, OrderCreate: true,
		StockIn: true, StockOut: true,
	},
	domain.RoleViewer: {
		InventoryView: true,
		OrderView:     true,
	},
}

// ResolveDefaultRole derives the starting role from the department.
func ResolveDefaultRole(emp employee.Employee) domain.Role {
	if emp.Department == employee.AdminDepartment {
		return domain.RoleAdmin
	}
	return domain.RoleStaff
}

func CapabilitiesFor(role domain.Role) Capabilities {
	return capabilityTable[role]
}

func DefaultPermission(emp employee.Employee) Permission {
	role := ResolveDefaultRole(emp)
	return Permission{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Department:   emp.Department,
		Role:         role,
		Capabilities: CapabilitiesFor(role),
	}
}

func sameDepartment(viewer domain.Viewer, target Permission, dir domain.Directory) bool {
	dept, ok := dir.DepartmentOf(viewer.ID)
	return ok && dept == target.Department
}

func CanView(viewer domain.Viewer, target Permission, dir domain.Directory) bool {
	switch viewer.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleManager:
		return sameDepartment(viewer, target, dir)
	default:
		return target.EmployeeID == viewer.ID
	}
}

func CanEdit(viewer domain.Viewer, target Permission, dir domain.Directory) bool {
	switch viewer.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleManager:
		return target.Role != domain.RoleAdmin && sameDepartment(viewer, target, dir)
	default:
		return false
	}
}

// CanViewRole reports whether role is offered to the viewer as a choice.
func CanViewRole(viewer domain.Viewer, role domain.Role) bool {
	switch viewer.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleManager:
		return role != domain.RoleAdmin
	default:
		return false
	}
}

func AssignableRoles(viewer domain.Viewer) []domain.Role {
	out := make([]domain.Role, 0, len(domain.Roles))
	for _, r := range domain.Roles {
		if CanViewRole(viewer, r) {
			out = append(out, r)
		}
	}
	return out
}

// ReassignRole sets the role and resets every flag to the role's template.
func ReassignRole(viewer domain.Viewer, target Permission, newRole domain.Role, dir domain.Directory) (Permission, error) {
	if !newRole.Valid() {
		return Permission{}, permissionerrors.ErrInvalidRole
	}
	if !CanEdit(viewer, target, dir) {
		return Permission{}, permissionerrors.ErrCannotEdit
	}
	if viewer.Role == domain.RoleManager && newRole == domain.RoleAdmin {
		return Permission{}, permissionerrors.ErrAdminEscalation
	}

	target.Role = newRole
	target.Capabilities = CapabilitiesFor(newRole)
	return target, nil
}

// SetCapability changes exactly one flag and leaves the role untouched.
func SetCapability(viewer domain.Viewer, target Permission, name Capability, value bool, dir domain.Directory) (Permission, error) {
	if _, err := ParseCapability(string(name)); err != nil {
		return Permission{}, permissionerrors.ErrUnknownCapability.WithDetails(map[string]any{"capability": string(name)})
	}
	if !CanEdit(viewer, target, dir) {
		return Permission{}, permissionerrors.ErrCannotEdit
	}

	target.Capabilities = target.Capabilities.With(name, value)
	return target, nil
}
