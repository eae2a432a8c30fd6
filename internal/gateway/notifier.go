package gateway

import (
	"context"
	"errors"

	"go-erp/internal/events"
	"go-erp/internal/messaging/kafka"
)

// OutboxNotifier queues change events for the Kafka worker.
type OutboxNotifier struct {
	repo kafka.OutboxRepository
}

func NewOutboxNotifier(repo kafka.OutboxRepository) *OutboxNotifier {
	return &OutboxNotifier{repo: repo}
}

func (n *OutboxNotifier) Notify(ctx context.Context, event ChangeEvent) error {
	outbox, err := kafka.NewOutboxEvent(
		events.TableChangesTopic,
		"table",
		event.Table,
		event.EventType,
		event.RequestID,
		event,
	)
	if err != nil {
		return err
	}
	return n.repo.Create(ctx, outbox)
}

// MultiNotifier notifies every member and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, event ChangeEvent) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
