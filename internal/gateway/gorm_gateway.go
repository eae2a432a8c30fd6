package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-erp/internal/events"
	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pgUniqueViolation = "23505"

var (
	ErrMissingFilter = apperror.New(apperror.CodeInvalidInput, "Update and delete require at least one filter", http.StatusBadRequest)
	ErrMissingTable  = apperror.New(apperror.CodeInvalidInput, "Table name is required", http.StatusBadRequest)
	ErrNoFeed        = apperror.New(apperror.CodeServiceUnavailable, "Change feed is not configured", http.StatusServiceUnavailable)
)

type gormGateway struct {
	db       *gorm.DB
	notifier Notifier
	feed     Subscriber
	now      func() time.Time
	logger   *zap.Logger
}

// New builds a Gateway over db. notifier and feed may be nil, in which case
// writes are not announced and SubscribeChanges fails.
func New(db *gorm.DB, notifier Notifier, feed Subscriber, logger ...*zap.Logger) Gateway {
	l := zap.L().Named("gateway")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("gateway")
	}

	return &gormGateway{
		db:       db,
		notifier: notifier,
		feed:     feed,
		now:      time.Now,
		logger:   l,
	}
}

func (g *gormGateway) Select(ctx context.Context, table string, dest any, q Query) error {
	if table == "" {
		return ErrMissingTable
	}

	tx := g.db.WithContext(ctx).Table(table)
	tx = applyFilters(tx, q.Filters)
	for _, o := range q.Order {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	if err := tx.Find(dest).Error; err != nil {
		return g.mapError(ctx, "select", table, err)
	}
	return nil
}

func (g *gormGateway) Insert(ctx context.Context, table string, rows any) error {
	if table == "" {
		return ErrMissingTable
	}

	if err := g.db.WithContext(ctx).Table(table).Create(rows).Error; err != nil {
		return g.mapError(ctx, "insert", table, err)
	}

	g.announce(ctx, table, events.ChangeInsert)
	return nil
}

func (g *gormGateway) Update(ctx context.Context, table string, patch map[string]any, filters ...Filter) (int64, error) {
	if table == "" {
		return 0, ErrMissingTable
	}
	if len(filters) == 0 {
		return 0, ErrMissingFilter
	}
	if len(patch) == 0 {
		return 0, apperror.InvalidField("patch")
	}

	res := applyFilters(g.db.WithContext(ctx).Table(table), filters).Updates(patch)
	if res.Error != nil {
		return 0, g.mapError(ctx, "update", table, res.Error)
	}

	if res.RowsAffected > 0 {
		g.announce(ctx, table, events.ChangeUpdate)
	}
	return res.RowsAffected, nil
}

func (g *gormGateway) Upsert(ctx context.Context, table string, rows any, conflictKeys ...string) error {
	if table == "" {
		return ErrMissingTable
	}
	if len(conflictKeys) == 0 {
		return apperror.RequiredField("conflict_keys")
	}

	cols := make([]clause.Column, 0, len(conflictKeys))
	for _, k := range conflictKeys {
		cols = append(cols, clause.Column{Name: k})
	}

	err := g.db.WithContext(ctx).
		Table(table).
		Clauses(clause.OnConflict{Columns: cols, UpdateAll: true}).
		Create(rows).Error
	if err != nil {
		return g.mapError(ctx, "upsert", table, err)
	}

	g.announce(ctx, table, events.ChangeUpsert)
	return nil
}

func (g *gormGateway) Delete(ctx context.Context, table string, filters ...Filter) (int64, error) {
	if table == "" {
		return 0, ErrMissingTable
	}
	if len(filters) == 0 {
		return 0, ErrMissingFilter
	}

	res := applyFilters(g.db.WithContext(ctx).Table(table), filters).Delete(map[string]any{})
	if res.Error != nil {
		return 0, g.mapError(ctx, "delete", table, res.Error)
	}

	if res.RowsAffected > 0 {
		g.announce(ctx, table, events.ChangeDelete)
	}
	return res.RowsAffected, nil
}

func (g *gormGateway) SubscribeChanges(ctx context.Context, table string, mask EventMask, onChange func(ChangeEvent)) (Subscription, error) {
	if g.feed == nil {
		return nil, ErrNoFeed
	}
	if table == "" {
		return nil, ErrMissingTable
	}

	sub, err := g.feed.Subscribe(ctx, table, mask, onChange)
	if err != nil {
		return nil, g.mapError(ctx, "subscribe", table, err)
	}
	return sub, nil
}

// announce never fails the write: the row is committed already.
func (g *gormGateway) announce(ctx context.Context, table string, change events.ChangeType) {
	if g.notifier == nil {
		return
	}

	event := ChangeEvent{
		EventID:    uuid.NewString(),
		EventType:  "table.changed",
		RequestID:  contextutil.GetRequestID(ctx),
		Table:      table,
		Change:     change,
		OccurredAt: g.now().UTC(),
	}

	if err := g.notifier.Notify(ctx, event); err != nil {
		contextutil.GetLogger(ctx, g.logger).Warn("change notification failed",
			zap.String("table", table),
			zap.String("change", string(change)),
			zap.Error(err),
		)
	}
}

func (g *gormGateway) mapError(ctx context.Context, op, table string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperror.Wrap(err, apperror.CodeConflict, fmt.Sprintf("Duplicate row in %s", table), http.StatusConflict)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	contextutil.GetLogger(ctx, g.logger).Error("gateway operation failed",
		zap.String("op", op),
		zap.String("table", table),
		zap.Error(err),
	)
	return apperror.Gateway(err, op)
}

func applyFilters(tx *gorm.DB, filters []Filter) *gorm.DB {
	for _, f := range filters {
		tx = tx.Where(clause.Eq{Column: clause.Column{Name: f.Column}, Value: f.Value})
	}
	return tx
}
