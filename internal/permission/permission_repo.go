package permission

import (
	"context"

	"go-erp/internal/gateway"
)

//go:generate mockgen -source=permission_repo.go -destination=mock/permission_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Record, error)
	Upsert(ctx context.Context, rec Record) error
}

type repository struct {
	gw gateway.Gateway
}

func NewRepository(gw gateway.Gateway) Repository {
	return &repository{gw: gw}
}

func (r *repository) FindAll(ctx context.Context) ([]Record, error) {
	var recs []Record
	err := r.gw.Select(ctx, gateway.TablePermissions, &recs, gateway.Query{
		Order: []gateway.Order{{Column: "employee_id"}},
	})
	return recs, err
}

func (r *repository) Upsert(ctx context.Context, rec Record) error {
	return r.gw.Upsert(ctx, gateway.TablePermissions, &rec, "employee_id")
}
