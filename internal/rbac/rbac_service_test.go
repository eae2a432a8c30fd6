package rbac

import (
	"testing"

	"go-erp/internal/domain"
	"go-erp/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	require.NoError(t, err)
	return NewService(e, zap.NewNop())
}

func testPolicy() Policy {
	return Policy{
		Roles: []RoleGrant{
			{Role: domain.RoleStaff, Capability: "inventory_view"},
			{Role: domain.RoleStaff, Capability: "stock_in"},
			{Role: domain.RoleManager, Capability: "inventory_edit"},
		},
		Employees: []EmployeeGrant{
			{EmployeeID: 1, Role: domain.RoleStaff},
			{EmployeeID: 2, Role: domain.RoleStaff, Overrides: map[string]bool{"inventory_edit": true, "stock_in": false}},
			{EmployeeID: 3, Role: domain.RoleManager},
		},
	}
}

func TestRBACService_EnforceBeforeLoad(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Enforce(domain.EnforceRequest{EmployeeID: 1, Capability: "inventory_view"})
	assert.ErrorIs(t, err, ErrPolicyNotLoaded)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Load(testPolicy()))

	cases := []struct {
		name       string
		employeeID int64
		capability string
		want       bool
	}{
		{"role grant", 1, "inventory_view", true},
		{"not in role", 1, "inventory_edit", false},
		{"override allows", 2, "inventory_edit", true},
		{"override denies", 2, "stock_in", false},
		{"untouched role grant", 2, "inventory_view", true},
		{"other role", 3, "inventory_edit", true},
		{"unknown employee", 99, "inventory_view", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Enforce(domain.EnforceRequest{EmployeeID: tc.employeeID, Capability: tc.capability})
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRBACService_LoadReplacesPolicy(t *testing.T) {
	svc := newTestService(t)
	require.NoError(t, svc.Load(testPolicy()))
	require.NoError(t, svc.Load(Policy{
		Roles:     []RoleGrant{{Role: domain.RoleViewer, Capability: "inventory_view"}},
		Employees: []EmployeeGrant{{EmployeeID: 1, Role: domain.RoleViewer}},
	}))

	allowed, err := svc.Enforce(domain.EnforceRequest{EmployeeID: 3, Capability: "inventory_edit"})
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.Enforce(domain.EnforceRequest{EmployeeID: 1, Capability: "inventory_view"})
	require.NoError(t, err)
	assert.True(t, allowed)
}
