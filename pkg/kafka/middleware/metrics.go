package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"shareit/pkg/kafka"
	"shareit/pkg/logger"
)

// PublishMetrics counts booking event publishes for one producer.
type PublishMetrics struct {
	published     atomic.Int64
	failed        atomic.Int64
	durationTotal atomic.Int64 // nanoseconds, successful and failed attempts
}

type PublishSnapshot struct {
	Published   int64
	Failed      int64
	AvgDuration time.Duration
}

func NewPublishMetrics() *PublishMetrics {
	return &PublishMetrics{}
}

func (m *PublishMetrics) Middleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		m.durationTotal.Add(int64(time.Since(start)))

		if err != nil {
			m.failed.Add(1)
		} else {
			m.published.Add(1)
		}
		return err
	}
}

func (m *PublishMetrics) Snapshot() PublishSnapshot {
	published := m.published.Load()
	failed := m.failed.Load()

	var avg time.Duration
	if attempts := published + failed; attempts > 0 {
		avg = time.Duration(m.durationTotal.Load() / attempts)
	}
	return PublishSnapshot{
		Published:   published,
		Failed:      failed,
		AvgDuration: avg,
	}
}

// LogSummary reports the counters, typically once at shutdown.
func (m *PublishMetrics) LogSummary(log *logger.Logger) {
	s := m.Snapshot()
	log.Info("Kafka publish summary",
		"published", s.Published,
		"failed", s.Failed,
		"avg_duration_ms", s.AvgDuration.Milliseconds(),
	)
}
