package email

import (
	"context"
	"log"

	"github.com/travelbook/holidaybooking/internal/kafka"
)

// Sender delivers booking and order notifications. The transport is a
// log line for now; the worker is the only caller.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case kafka.EventOrderCreated:
		log.Printf("email %s: order %s received, total %d cents", event.Email, event.OrderID, event.TotalCents)
	default:
		log.Printf("email %s: booking %d is now %s", event.Email, event.BookingID, event.Status)
	}
	return nil
}
