package domain

import (
	"fmt"
	"strings"
)

// Role is one of four privilege tiers: admin > manager > staff/viewer.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleViewer  Role = "viewer"
)

// Roles lists every role from most to least privileged.
var Roles = []Role{RoleAdmin, RoleManager, RoleStaff, RoleViewer}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleViewer:
		return true
	}
	return false
}

// Label is the Korean display name used by the dashboard.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "시스템 관리자"
	case RoleManager:
		return "부서 관리자"
	case RoleStaff:
		return "일반 직원"
	case RoleViewer:
		return "조회 전용"
	default:
		return "미설정"
	}
}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Viewer is the authenticated identity acting on a request. It is resolved
// from the session and passed explicitly into every authorization decision.
type Viewer struct {
	ID   int64 `json:"employee_id"`
	Role Role  `json:"role"`
}

// Directory maps employees to their department. Authorization rules use it to
// compare the viewer's department with a target's.
type Directory interface {
	DepartmentOf(employeeID int64) (string, bool)
}
