package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	channelPrefix  = "erp:changes:"
	seenKeyPrefix  = "erp:changes:seen:"
	defaultSeenTTL = 10 * time.Minute
)

// RedisFeed publishes change events on one pub/sub channel per table.
// Events that were already published (same EventID) are dropped, so the
// Kafka relay and the local writer can both announce the same change.
type RedisFeed struct {
	rdb     *redis.Client
	seenTTL time.Duration
	logger  *zap.Logger
}

func NewRedisFeed(rdb *redis.Client, logger ...*zap.Logger) *RedisFeed {
	l := zap.L().Named("gateway.redis_feed")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("gateway.redis_feed")
	}
	return &RedisFeed{rdb: rdb, seenTTL: defaultSeenTTL, logger: l}
}

func channelFor(table string) string {
	return channelPrefix + table
}

func (f *RedisFeed) Notify(ctx context.Context, event ChangeEvent) error {
	if event.EventID != "" {
		first, err := f.rdb.SetNX(ctx, seenKeyPrefix+event.EventID, 1, f.seenTTL).Result()
		if err != nil {
			return err
		}
		if !first {
			return nil
		}
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return f.rdb.Publish(ctx, channelFor(event.Table), payload).Err()
}

func (f *RedisFeed) Subscribe(ctx context.Context, table string, mask EventMask, onChange func(ChangeEvent)) (Subscription, error) {
	ps := f.rdb.Subscribe(ctx, channelFor(table))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sub := &redisSubscription{ps: ps, done: make(chan struct{})}
	log := f.logger.With(zap.String("table", table))

	go func() {
		defer close(sub.done)
		ch := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Warn("decode change event failed", zap.Error(err))
					continue
				}
				if mask.Has(event.Change) {
					onChange(event)
				}
			}
		}
	}()

	return sub, nil
}

type redisSubscription struct {
	ps   *redis.PubSub
	once sync.Once
	err  error
	done chan struct{}
}

func (s *redisSubscription) Close() error {
	s.once.Do(func() {
		s.err = s.ps.Close()
	})
	return s.err
}
