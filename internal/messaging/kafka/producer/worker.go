package producer

import (
	"context"
	"time"

	"go-erp/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize = 50
	// maxBatchesPerTick bounds how long one tick may keep draining.
	maxBatchesPerTick = 20
)

type batchResult struct {
	fetched int
	sent    int
}

// ProcessOutboxEvents polls the outbox every pollInterval until ctx is done.
// Each tick keeps draining while full batches come back and make progress.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			drain(ctx, repo, writer, log)
		}
	}
}

func drain(ctx context.Context, repo kafka.OutboxRepository, writer MessageWriter, log *zap.Logger) int {
	total := 0
	for range maxBatchesPerTick {
		res, err := processPendingEvents(ctx, repo, writer, log)
		if err != nil {
			log.Error("process outbox events failed", zap.Error(err))
			return total
		}
		total += res.sent
		if res.fetched < batchSize || res.sent == 0 || ctx.Err() != nil {
			return total
		}
	}
	return total
}

func processPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (batchResult, error) {
	pending, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return batchResult{}, err
	}

	res := batchResult{fetched: len(pending)}
	if res.fetched == 0 {
		return res, nil
	}
	logger.Debug("processing pending outbox events", zap.Int("count", res.fetched))

	for _, event := range pending {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
			zap.String("request_id", event.RequestID),
		}

		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish outbox event failed", append(fields, zap.Int("retry_count", event.RetryCount), zap.Error(err))...)
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				logger.Error("mark outbox event failed", append(fields, zap.Error(markErr))...)
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox event sent", append(fields, zap.Error(err))...)
			continue
		}

		res.sent++
		logger.Debug("outbox event sent", fields...)
	}

	return res, nil
}
