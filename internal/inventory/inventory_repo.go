package inventory

import (
	"context"

	"go-erp/internal/gateway"
)

//go:generate mockgen -source=inventory_repo.go -destination=mock/inventory_repo_mock.go -package=mock
type Repository interface {
	FindAll(ctx context.Context) ([]Item, error)
	Create(ctx context.Context, item *Item) error
}

type repository struct {
	gw gateway.Gateway
}

func NewRepository(gw gateway.Gateway) Repository {
	return &repository{gw: gw}
}

func (r *repository) FindAll(ctx context.Context) ([]Item, error) {
	var items []Item
	err := r.gw.Select(ctx, gateway.TableInventory, &items, gateway.Query{
		Order: []gateway.Order{{Column: "inventory_id"}},
	})
	return items, err
}

func (r *repository) Create(ctx context.Context, item *Item) error {
	return r.gw.Insert(ctx, gateway.TableInventory, item)
}
