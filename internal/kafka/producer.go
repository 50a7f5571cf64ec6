package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// BookingEvent is the JSON payload published on booking and order
// state changes. OrderID is empty for booking-only events.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  int64     `json:"booking_id,omitempty"`
	OrderID    string    `json:"order_id,omitempty"`
	PackageID  int64     `json:"package_id,omitempty"`
	Email      string    `json:"email"`
	Status     string    `json:"status,omitempty"`
	TotalCents int64     `json:"total_cents,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

const (
	EventOrderCreated     = "order_created"
	EventBookingPending   = "booking_pending"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
