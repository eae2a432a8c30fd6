package app

import (
	"context"
	"os/signal"
	"syscall"

	"go-erp/internal/events"
	"go-erp/internal/gateway"
	"go-erp/internal/messaging/kafka/consumer"
	"go-erp/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const tableChangesGroup = "go-erp-table-changes"

// RunConsumer relays table changes from Kafka onto the redis change feed so
// every API instance reloads its caches.
func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return errKafkaBrokerRequired
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{cfg.KafkaBroker},
		Topic:       events.TableChangesTopic,
		GroupID:     tableChangesGroup,
		StartOffset: kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeTableChanges(ctx, reader, gateway.NewRedisFeed(rdb, logger), logger)

	logger.Info("consumer shut down")
	return nil
}
