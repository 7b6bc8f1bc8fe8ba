// Package events publishes booking lifecycle changes for downstream consumers.
package events

import (
	"context"
	"fmt"
	"shareit/pkg/kafka"
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"time"
)

const (
	TypeCreated  = "booking.created"
	TypeApproved = "booking.approved"
	TypeRejected = "booking.rejected"

	schemaVersion = "1"
	source        = "shareit"
)

type Event struct {
	Type       string              `json:"type"`
	BookingID  string              `json:"booking_id"`
	ItemID     string              `json:"item_id"`
	BookerID   string              `json:"booker_id"`
	OwnerID    string              `json:"owner_id"`
	Status     model.BookingStatus `json:"status"`
	Start      time.Time           `json:"start"`
	End        time.Time           `json:"end"`
	OccurredAt time.Time           `json:"occurred_at"`
}

func NewEvent(eventType string, b *model.Booking, at time.Time) Event {
	return Event{
		Type:       eventType,
		BookingID:  b.ID,
		ItemID:     b.ItemID,
		BookerID:   b.BookerID,
		OwnerID:    b.OwnerID,
		Status:     b.Status,
		Start:      b.Start,
		End:        b.End,
		OccurredAt: at.UTC(),
	}
}

// StatusEvent picks the event type matching a decided status.
func StatusEvent(status model.BookingStatus) string {
	if status == model.StatusApproved {
		return TypeApproved
	}
	return TypeRejected
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// KafkaPublisher keys messages by booking id so each booking's events stay
// ordered on one partition.
type KafkaPublisher struct {
	producer producer
}

func NewKafkaPublisher(p *kafka.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: p}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := kafka.NewMessage().
		WithKey(event.BookingID).
		WithEventType(event.Type).
		WithCorrelationID(logger.RequestID(ctx)).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		WithTimestamp(event.OccurredAt).
		WithValue(event).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", event.Type, err)
	}
	return p.producer.Publish(ctx, msg)
}

// NoopPublisher drops events. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
