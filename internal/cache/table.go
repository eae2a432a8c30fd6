package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"go-erp/internal/gateway"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Loader[T any] func(ctx context.Context) ([]T, error)

// Table keeps an in-memory snapshot of one gateway table. The snapshot is
// replaced wholesale on reload and must not be modified by readers.
type Table[T any] struct {
	name string
	load Loader[T]

	mu      sync.RWMutex
	rows    []T
	loaded  bool
	applied uint64

	started atomic.Uint64
	group   singleflight.Group
	logger  *zap.Logger
}

func NewTable[T any](name string, load Loader[T], logger ...*zap.Logger) *Table[T] {
	l := zap.L().Named("cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("cache")
	}
	return &Table[T]{name: name, load: load, logger: l.With(zap.String("table", name))}
}

func (t *Table[T]) Name() string {
	return t.name
}

// Get returns the current snapshot, loading it on first use.
func (t *Table[T]) Get(ctx context.Context) ([]T, error) {
	t.mu.RLock()
	if t.loaded {
		rows := t.rows
		t.mu.RUnlock()
		return rows, nil
	}
	t.mu.RUnlock()

	return t.Reload(ctx)
}

// Reload fetches the table and replaces the snapshot. Concurrent calls share
// one load. On error the previous snapshot is kept.
func (t *Table[T]) Reload(ctx context.Context) ([]T, error) {
	v, err, _ := t.group.Do(t.name, func() (any, error) {
		return t.loadAndSwap(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

// Refresh starts a load that is guaranteed to begin after the call, so it
// observes any change committed before it.
func (t *Table[T]) Refresh(ctx context.Context) ([]T, error) {
	t.group.Forget(t.name)
	return t.Reload(ctx)
}

func (t *Table[T]) Invalidate() {
	t.group.Forget(t.name)

	t.mu.Lock()
	t.rows = nil
	t.loaded = false
	t.mu.Unlock()
}

// Watch refreshes the snapshot on every change event for the table.
func (t *Table[T]) Watch(ctx context.Context, gw gateway.Gateway) (gateway.Subscription, error) {
	return gw.SubscribeChanges(ctx, t.name, gateway.MaskAll, func(e gateway.ChangeEvent) {
		if _, err := t.Refresh(ctx); err != nil {
			t.logger.Warn("reload after change failed",
				zap.String("event_id", e.EventID),
				zap.Error(err),
			)
		}
	})
}

func (t *Table[T]) loadAndSwap(ctx context.Context) ([]T, error) {
	gen := t.started.Add(1)

	rows, err := t.load(ctx)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	// A slower load that started earlier must not overwrite a newer one.
	if gen > t.applied {
		t.rows = rows
		t.loaded = true
		t.applied = gen
	}
	return t.rows, nil
}
