package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Order groups the bookings a user checked out together. Immutable
// once created except for the payment status transition.
type Order struct {
	ID            string        `json:"order_id"`
	Email         string        `json:"email"`
	TotalCents    int64         `json:"total_cents"`
	OrderDate     time.Time     `json:"order_date"`
	PaymentDate   *time.Time    `json:"payment_date,omitempty"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	BookingIDs    []int64       `json:"booking_ids,omitempty"`
}
