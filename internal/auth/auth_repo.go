package auth

import (
	"context"
	"strings"

	"go-erp/internal/gateway"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByEmployeeID(ctx context.Context, employeeID int64) (*Account, error)
}

type repository struct {
	gw gateway.Gateway
}

func NewRepository(gw gateway.Gateway) Repository {
	return &repository{gw: gw}
}

func (r *repository) Create(ctx context.Context, account *Account) error {
	return r.gw.Insert(ctx, gateway.TableAccounts, account)
}

// FindByEmail returns nil without error when no account matches.
func (r *repository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return r.findOne(ctx, gateway.Eq("email", strings.ToLower(strings.TrimSpace(email))))
}

func (r *repository) FindByEmployeeID(ctx context.Context, employeeID int64) (*Account, error) {
	return r.findOne(ctx, gateway.Eq("employee_id", employeeID))
}

func (r *repository) findOne(ctx context.Context, f gateway.Filter) (*Account, error) {
	var rows []Account
	err := r.gw.Select(ctx, gateway.TableAccounts, &rows, gateway.Query{
		Filters: []gateway.Filter{f},
		Limit:   1,
	})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}
