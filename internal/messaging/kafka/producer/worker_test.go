package producer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go-erp/internal/messaging/kafka"
	"go-erp/internal/messaging/kafka/mock"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	failTopic string
	written   []kafkago.Message
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if m.Topic == w.failTopic {
			return errors.New("broker unavailable")
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{failTopic: "broken"}
	ctx := context.Background()

	pending := []kafka.OutboxEvent{
		{ID: "ok-1", Topic: "erp.table.changes.v1", AggregateID: "employee", EventType: "table.changed", RequestID: "req-1", Payload: []byte(`{}`)},
		{ID: "bad-1", Topic: "broken", AggregateID: "employee", EventType: "table.changed", Payload: []byte(`{}`)},
	}

	repo.EXPECT().ListPending(ctx, batchSize).Return(pending, nil)
	repo.EXPECT().MarkSent(ctx, "ok-1").Return(nil)
	repo.EXPECT().MarkFailed(ctx, "bad-1", "broker unavailable").Return(nil)

	res, err := processPendingEvents(ctx, repo, writer, zap.NewNop())

	assert.NoError(t, err)
	assert.Equal(t, batchResult{fetched: 2, sent: 1}, res)
	if assert.Len(t, writer.written, 1) {
		msg := writer.written[0]
		assert.Equal(t, []byte("employee"), msg.Key)
		assert.Contains(t, msg.Headers, kafkago.Header{Key: "request_id", Value: []byte("req-1")})
	}
}

func TestProcessPendingEvents_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), batchSize).Return(nil, errors.New("db down"))

	res, err := processPendingEvents(context.Background(), repo, &fakeWriter{}, zap.NewNop())

	assert.EqualError(t, err, "db down")
	assert.Zero(t, res.sent)
}

func TestToMessage_OmitsEmptyRequestID(t *testing.T) {
	msg := toMessage(kafka.OutboxEvent{Topic: "t", AggregateID: "a", EventType: "e", AggregateType: "table"})
	assert.Len(t, msg.Headers, 3)
}

func fullBatch(prefix, topic string) []kafka.OutboxEvent {
	batch := make([]kafka.OutboxEvent, batchSize)
	for i := range batch {
		batch[i] = kafka.OutboxEvent{ID: fmt.Sprintf("%s-%d", prefix, i), Topic: topic, AggregateID: "courses", Payload: []byte(`{}`)}
	}
	return batch
}

func TestDrain_KeepsGoingWhileBatchesAreFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{}

	gomock.InOrder(
		repo.EXPECT().ListPending(gomock.Any(), batchSize).Return(fullBatch("a", "erp.table.changes.v1"), nil),
		repo.EXPECT().ListPending(gomock.Any(), batchSize).Return(fullBatch("b", "erp.table.changes.v1")[:3], nil),
	)
	repo.EXPECT().MarkSent(gomock.Any(), gomock.Any()).Return(nil).Times(batchSize + 3)

	sent := drain(context.Background(), repo, writer, zap.NewNop())
	assert.Equal(t, batchSize+3, sent)
}

func TestDrain_StopsWhenNothingIsSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	writer := &fakeWriter{failTopic: "broken"}

	repo.EXPECT().ListPending(gomock.Any(), batchSize).Return(fullBatch("a", "broken"), nil).Times(1)
	repo.EXPECT().MarkFailed(gomock.Any(), gomock.Any(), "broker unavailable").Return(nil).Times(batchSize)

	sent := drain(context.Background(), repo, writer, zap.NewNop())
	assert.Zero(t, sent)
}
