package inventory

import (
	"context"
	"strings"
	"time"

	"go-erp/internal/cache"
	"go-erp/internal/gateway"
	inventoryerrors "go-erp/internal/inventory/errors"
	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=inventory_service.go -destination=mock/inventory_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context) ([]ItemResponse, error)
	Register(ctx context.Context, req RegisterRequest) (ItemResponse, error)
	Watch(ctx context.Context, gw gateway.Gateway) (gateway.Subscription, error)
}

type service struct {
	repo   Repository
	table  *cache.Table[Item]
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("inventory.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("inventory.service")
	}
	return &service{
		repo:   repo,
		table:  cache.NewTable(gateway.TableInventory, repo.FindAll, l),
		now:    time.Now,
		logger: l,
	}
}

func (s *service) List(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.table.Get(ctx)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("load inventory failed", zap.Error(err))
		return nil, err
	}

	res := make([]ItemResponse, len(items))
	for i, it := range items {
		res[i] = mapToResponse(it)
	}
	return res, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (ItemResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	item := &Item{
		Name:     strings.TrimSpace(req.Name),
		Category: strings.TrimSpace(req.Category),
		Numbers:  strings.TrimSpace(req.Numbers),
		BuyPrice: strings.TrimSpace(req.BuyPrice),
	}
	if item.Name == "" || item.Category == "" || item.Numbers == "" || item.BuyPrice == "" {
		return ItemResponse{}, inventoryerrors.ErrMissingFields
	}

	now := s.now()
	item.CreatedAt = now
	item.RenewedAt = now

	if err := s.repo.Create(ctx, item); err != nil {
		log.Error("register inventory item failed", zap.String("name", item.Name), zap.Error(err))
		if _, ok := apperror.As(err); ok {
			return ItemResponse{}, err
		}
		return ItemResponse{}, inventoryerrors.ErrRegisterFailed
	}

	if _, err := s.table.Refresh(ctx); err != nil {
		log.Warn("reload inventory after register failed", zap.Error(err))
	}

	log.Info("inventory item registered", zap.Int64("inventory_id", item.ID))
	return mapToResponse(*item), nil
}

func (s *service) Watch(ctx context.Context, gw gateway.Gateway) (gateway.Subscription, error) {
	return s.table.Watch(ctx, gw)
}

func mapToResponse(it Item) ItemResponse {
	return ItemResponse{
		ID:        it.ID,
		Name:      it.Name,
		Category:  it.Category,
		Numbers:   it.Numbers,
		BuyPrice:  it.BuyPrice,
		CreatedAt: formatTime(it.CreatedAt),
		RenewedAt: formatTime(it.RenewedAt),
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
