package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	err      error
	messages []kafka.Message
	closed   bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func newTestProducer(main, dlq *fakeWriter) *Producer {
	p := &Producer{writer: main, topic: "shareit.bookings", writeTimeout: time.Second}
	if dlq != nil {
		p.dlqWriter = dlq
		p.dlqTopic = "shareit.bookings.dlq"
	}
	return p
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().
		WithKey("booking-1").
		WithEventType("booking.created").
		WithCorrelationID("req-1").
		WithValue(map[string]string{"id": "booking-1"}).
		Build()
	require.NoError(t, err)
	return msg
}

func TestProducer_Publish(t *testing.T) {
	main := &fakeWriter{}
	p := newTestProducer(main, nil)

	var seenTopic string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		seenTopic = msg.Topic
		return next(ctx, msg)
	})

	require.NoError(t, p.Publish(context.Background(), buildMessage(t)))
	require.Len(t, main.messages, 1)
	require.Equal(t, "booking-1", string(main.messages[0].Key))
	require.Equal(t, "shareit.bookings", seenTopic)
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p := newTestProducer(&fakeWriter{}, nil)

	require.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("{}")}), ErrEmptyKey)
	require.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("leader not available")
	dlq := &fakeWriter{}
	p := newTestProducer(&fakeWriter{err: writeErr}, dlq)

	err := p.Publish(context.Background(), buildMessage(t))
	require.ErrorIs(t, err, writeErr)
	require.Len(t, dlq.messages, 1)

	headers := map[string]string{}
	for _, h := range dlq.messages[0].Headers {
		headers[h.Key] = string(h.Value)
	}
	require.Equal(t, "shareit.bookings", headers[HeaderOriginalTopic])
	require.Equal(t, writeErr.Error(), headers[HeaderDLQError])
}

func TestProducer_Close(t *testing.T) {
	main, dlq := &fakeWriter{}, &fakeWriter{}
	p := newTestProducer(main, dlq)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	require.True(t, main.closed)
	require.True(t, dlq.closed)
	require.ErrorIs(t, p.Publish(context.Background(), buildMessage(t)), ErrProducerClosed)
}

func TestMessageBuilder_ReportsEncodingFailure(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	require.ErrorIs(t, err, ErrInvalidMessage)
}
