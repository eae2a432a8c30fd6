package gateway

import (
	"context"

	"go-erp/internal/events"
)

const (
	TableEmployee      = "employee"
	TableAttendance    = "attendance"
	TableInventory     = "inventory"
	TableCourses       = "courses"
	TableRegistrations = "registrations"
	TablePermissions   = "permissions"
	TableAccounts      = "accounts"
)

type ChangeEvent = events.TableChanged

// EventMask selects which change types a subscriber receives.
type EventMask uint8

const (
	MaskInsert EventMask = 1 << iota
	MaskUpdate
	MaskDelete

	MaskAll = MaskInsert | MaskUpdate | MaskDelete
)

// Has reports whether the mask admits t. An upsert counts as both insert and update.
func (m EventMask) Has(t events.ChangeType) bool {
	switch t {
	case events.ChangeInsert:
		return m&MaskInsert != 0
	case events.ChangeUpdate:
		return m&MaskUpdate != 0
	case events.ChangeDelete:
		return m&MaskDelete != 0
	case events.ChangeUpsert:
		return m&(MaskInsert|MaskUpdate) != 0
	}
	return false
}

type Filter struct {
	Column string
	Value  any
}

func Eq(column string, value any) Filter {
	return Filter{Column: column, Value: value}
}

type Order struct {
	Column string
	Desc   bool
}

type Query struct {
	Filters []Filter
	Order   []Order
	Limit   int
}

type Subscription interface {
	Close() error
}

// Notifier fans a committed write out to interested parties.
type Notifier interface {
	Notify(ctx context.Context, event ChangeEvent) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, table string, mask EventMask, onChange func(ChangeEvent)) (Subscription, error)
}

//go:generate mockgen -source=gateway.go -destination=mock/gateway_mock.go -package=mock

// Gateway is the only path from the modules to storage.
type Gateway interface {
	Select(ctx context.Context, table string, dest any, q Query) error
	Insert(ctx context.Context, table string, rows any) error
	Update(ctx context.Context, table string, patch map[string]any, filters ...Filter) (int64, error)
	Upsert(ctx context.Context, table string, rows any, conflictKeys ...string) error
	Delete(ctx context.Context, table string, filters ...Filter) (int64, error)
	SubscribeChanges(ctx context.Context, table string, mask EventMask, onChange func(ChangeEvent)) (Subscription, error)
}
