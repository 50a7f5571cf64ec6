package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
)

// Consumer reads booking events for the notifications worker. Offsets
// are tracked through the consumer group, so a restarted worker
// resumes where the previous one stopped.
type Consumer struct {
	reader *kafka.Reader
}

const (
	consumerHeartbeat      = 3 * time.Second
	consumerSessionTimeout = 30 * time.Second
)

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: consumerHeartbeat,
			SessionTimeout:    consumerSessionTimeout,
		}),
	}
}

// Consume hands messages to handler one at a time in offset order. A
// handler error stops the loop without committing the failed message,
// so it is redelivered on the next run.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, kafka.Message) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		if err := handler(ctx, msg); err != nil {
			return err
		}
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}
