package inventory_test

import (
	"context"
	"errors"
	"testing"

	"go-erp/internal/gateway"
	gatewayMock "go-erp/internal/gateway/mock"
	"go-erp/internal/inventory"
	inventoryerrors "go-erp/internal/inventory/errors"
	inventoryMock "go-erp/internal/inventory/mock"
	"go-erp/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

var stock = []inventory.Item{
	{ID: 1, Name: "라면", Category: "식품", Numbers: "40", BuyPrice: "1200"},
	{ID: 2, Name: "생수", Category: "식품", Numbers: "120", BuyPrice: "500"},
}

func setupServiceTest(t *testing.T) (inventory.Service, *inventoryMock.MockRepository) {
	ctrl := gomock.NewController(t)
	repo := inventoryMock.NewMockRepository(ctrl)
	return inventory.NewService(repo, zap.NewNop()), repo
}

func TestInventoryService_ListUsesCache(t *testing.T) {
	svc, repo := setupServiceTest(t)
	repo.EXPECT().FindAll(gomock.Any()).Return(stock, nil).Times(1)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	second, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, "라면", first[0].Name)
}

func TestInventoryService_ListError(t *testing.T) {
	svc, repo := setupServiceTest(t)
	repo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("gateway down"))

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}

func TestInventoryService_Register(t *testing.T) {
	ctx := context.Background()
	req := inventory.RegisterRequest{Name: " 커피 ", Category: "음료", Numbers: "10", BuyPrice: "3000"}

	t.Run("success reloads the list", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, it *inventory.Item) error {
			assert.Equal(t, "커피", it.Name)
			assert.False(t, it.CreatedAt.IsZero())
			it.ID = 3
			return nil
		})
		repo.EXPECT().FindAll(gomock.Any()).Return(append(stock, inventory.Item{ID: 3, Name: "커피"}), nil)

		res, err := svc.Register(ctx, req)
		require.NoError(t, err)
		assert.EqualValues(t, 3, res.ID)

		list, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 3)
	})

	t.Run("blank field", func(t *testing.T) {
		svc, _ := setupServiceTest(t)
		blank := req
		blank.Category = "  "

		_, err := svc.Register(ctx, blank)
		assert.ErrorIs(t, err, inventoryerrors.ErrMissingFields)
	})

	t.Run("gateway error is passed through", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		gwErr := apperror.Gateway(errors.New("connection reset"), "insert")
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(gwErr)

		_, err := svc.Register(ctx, req)
		assert.True(t, apperror.IsCode(err, apperror.CodeGatewayError))
	})

	t.Run("unknown failure", func(t *testing.T) {
		svc, repo := setupServiceTest(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("boom"))

		_, err := svc.Register(ctx, req)
		assert.ErrorIs(t, err, inventoryerrors.ErrRegisterFailed)
	})
}

func TestInventoryService_WatchReloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := setupServiceTest(t)
	gw := gatewayMock.NewMockGateway(ctrl)

	var onChange func(gateway.ChangeEvent)
	gw.EXPECT().
		SubscribeChanges(gomock.Any(), gateway.TableInventory, gateway.MaskAll, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ gateway.EventMask, fn func(gateway.ChangeEvent)) (gateway.Subscription, error) {
			onChange = fn
			return gatewayMock.NewMockSubscription(ctrl), nil
		})

	_, err := svc.Watch(context.Background(), gw)
	require.NoError(t, err)

	gomock.InOrder(
		repo.EXPECT().FindAll(gomock.Any()).Return(stock[:1], nil),
		repo.EXPECT().FindAll(gomock.Any()).Return(stock, nil),
	)

	before, _ := svc.List(context.Background())
	onChange(gateway.ChangeEvent{Table: gateway.TableInventory})
	after, _ := svc.List(context.Background())

	assert.Len(t, before, 1)
	assert.Len(t, after, 2)
}

func TestInventoryRepository_FindAllOrdersByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := gatewayMock.NewMockGateway(ctrl)
	repo := inventory.NewRepository(gw)

	gw.EXPECT().
		Select(gomock.Any(), gateway.TableInventory, gomock.Any(), gateway.Query{
			Order: []gateway.Order{{Column: "inventory_id"}},
		}).
		DoAndReturn(func(_ context.Context, _ string, dest any, _ gateway.Query) error {
			*dest.(*[]inventory.Item) = stock
			return nil
		})

	items, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
