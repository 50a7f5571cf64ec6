package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/travelbook/holidaybooking/internal/domain"
	"github.com/travelbook/holidaybooking/internal/kafka"
	"github.com/travelbook/holidaybooking/internal/repository"
	"github.com/travelbook/holidaybooking/internal/service/cart"
)

type OrderUseCase interface {
	Checkout(ctx context.Context, email string) (*domain.Order, error)
	MarkPaid(ctx context.Context, orderID string) (*domain.Order, error)
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	OrdersForUser(ctx context.Context, email string) ([]domain.Order, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type OrderService struct {
	orders   repository.OrderRepository
	bookings repository.BookingRepository
	producer Producer
	topic    string
}

func NewOrderService(orders repository.OrderRepository, bookings repository.BookingRepository, producer Producer, topic string) *OrderService {
	return &OrderService{orders: orders, bookings: bookings, producer: producer, topic: topic}
}

// Checkout turns the user's cart into an order: one order row, one
// order item per booking, and every booking moved in-cart -> pending,
// atomically. The order total is the cart total — line prices summed
// without re-multiplying by travellers.
func (s *OrderService) Checkout(ctx context.Context, email string) (*domain.Order, error) {
	items, err := s.bookings.ListInCart(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", domain.ErrValidation)
	}

	bookingIDs := make([]int64, 0, len(items))
	for _, it := range items {
		bookingIDs = append(bookingIDs, it.BookingID)
	}

	order := &domain.Order{
		ID:            uuid.NewString(),
		Email:         email,
		TotalCents:    cart.Total(items),
		OrderDate:     time.Now().UTC(),
		PaymentStatus: domain.PaymentStatusPending,
		BookingIDs:    bookingIDs,
	}
	if err := s.orders.CreateWithItems(ctx, order, bookingIDs); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.BookingEvent{
		Type:       kafka.EventOrderCreated,
		OrderID:    order.ID,
		Email:      email,
		TotalCents: order.TotalCents,
		OccurredAt: time.Now().UTC(),
	})
	for _, it := range items {
		s.publish(ctx, kafka.BookingEvent{
			Type:       kafka.EventBookingPending,
			BookingID:  it.BookingID,
			OrderID:    order.ID,
			PackageID:  it.PackageID,
			Email:      email,
			Status:     string(domain.BookingStatusPending),
			OccurredAt: time.Now().UTC(),
		})
	}
	return order, nil
}

// MarkPaid records the payment collaborator's capture. Only pending
// orders can transition; a repeated capture is a validation error so
// the recorded payment date stays first-capture.
func (s *OrderService) MarkPaid(ctx context.Context, orderID string) (*domain.Order, error) {
	current, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.PaymentStatus != domain.PaymentStatusPending {
		return nil, fmt.Errorf("%w: order is already %s", domain.ErrValidation, current.PaymentStatus)
	}
	return s.orders.UpdatePaymentStatus(ctx, orderID, domain.PaymentStatusPaid, time.Now().UTC())
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, orderID)
}

func (s *OrderService) OrdersForUser(ctx context.Context, email string) ([]domain.Order, error) {
	return s.orders.ListByEmail(ctx, email)
}

// publish is best effort: a broker outage must not fail a checkout
// that already committed.
func (s *OrderService) publish(ctx context.Context, event kafka.BookingEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	key := event.OrderID
	if key == "" {
		key = fmt.Sprintf("booking-%d", event.BookingID)
	}
	if err := s.producer.Publish(ctx, s.topic, key, event); err != nil {
		log.Printf("publish %s event: %v", event.Type, err)
	}
}

var _ OrderUseCase = (*OrderService)(nil)
