package kafka_middleware

import (
	"context"
	"errors"
	"testing"

	"shareit/pkg/kafka"

	"github.com/stretchr/testify/assert"
)

func TestPublishMetrics(t *testing.T) {
	m := NewPublishMetrics()
	mw := m.Middleware()

	ok := func(context.Context, kafka.Message) error { return nil }
	fail := func(context.Context, kafka.Message) error { return errors.New("broker down") }

	assert.NoError(t, mw(context.Background(), kafka.Message{}, ok))
	assert.NoError(t, mw(context.Background(), kafka.Message{}, ok))
	assert.Error(t, mw(context.Background(), kafka.Message{}, fail))

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.Published)
	assert.Equal(t, int64(1), s.Failed)
	assert.GreaterOrEqual(t, s.AvgDuration.Nanoseconds(), int64(0))
}

func TestPublishMetricsEmpty(t *testing.T) {
	s := NewPublishMetrics().Snapshot()
	assert.Zero(t, s.Published)
	assert.Zero(t, s.Failed)
	assert.Zero(t, s.AvgDuration)
}
