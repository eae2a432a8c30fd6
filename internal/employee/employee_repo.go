package employee

import (
	"context"

	"go-erp/internal/gateway"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
}

type repository struct {
	gw gateway.Gateway
}

func NewRepository(gw gateway.Gateway) Repository {
	return &repository{gw: gw}
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var emps []Employee
	err := r.gw.Select(ctx, gateway.TableEmployee, &emps, gateway.Query{
		Order: []gateway.Order{{Column: "employee_name"}},
	})
	return emps, err
}

// FindByID returns nil without error when the employee does not exist.
func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var emps []Employee
	err := r.gw.Select(ctx, gateway.TableEmployee, &emps, gateway.Query{
		Filters: []gateway.Filter{gateway.Eq("employee_id", id)},
		Limit:   1,
	})
	if err != nil || len(emps) == 0 {
		return nil, err
	}
	return &emps[0], nil
}
