package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"go-erp/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ChangeRelay re-publishes a table change to local subscribers.
type ChangeRelay interface {
	Notify(ctx context.Context, event events.TableChanged) error
}

var errEmptyTable = errors.New("table change without table name")

func ConsumeTableChanges(
	ctx context.Context,
	reader MessageReader,
	relay ChangeRelay,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.table_changes")
	log.Info("table change consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("table change consumer stopped")
				return
			}
			log.Error("fetch table change message failed", zap.Error(err))
			continue
		}

		if !handleTableChange(ctx, msg, relay, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit table change message failed", zap.Error(err))
		}
	}
}

// handleTableChange reports whether the message should be committed.
// Undecodable messages are committed so they do not block the partition.
func handleTableChange(ctx context.Context, msg kafkago.Message, relay ChangeRelay, log *zap.Logger) bool {
	var event events.TableChanged
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode table change event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		return true
	}
	if event.Table == "" {
		log.Warn("dropping table change event", zap.String("event_id", event.EventID), zap.Error(errEmptyTable))
		return true
	}

	if err := relay.Notify(ctx, event); err != nil {
		log.Error("relay table change failed",
			zap.String("event_id", event.EventID),
			zap.String("table", event.Table),
			zap.Error(err),
		)
		return false
	}

	log.Debug("table change relayed",
		zap.String("event_id", event.EventID),
		zap.String("table", event.Table),
		zap.String("change", string(event.Change)),
	)
	return true
}
