package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/travelbook/holidaybooking/internal/domain"
)

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *domain.Order, bookingIDs []int64) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, paidAt time.Time) (*domain.Order, error)
}

type PGOrderRepository struct {
	db *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) OrderRepository {
	return &PGOrderRepository{db: db}
}

// CreateWithItems inserts the order, links its bookings through
// order_items and moves each booking from in-cart to pending, all in
// one transaction.
func (r *PGOrderRepository) CreateWithItems(ctx context.Context, order *domain.Order, bookingIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO orders (id, email, total_cents, order_date, payment_status)
		VALUES ($1, $2, $3, $4, $5)`,
		order.ID, order.Email, order.TotalCents, order.OrderDate, order.PaymentStatus); err != nil {
		return err
	}

	for _, bookingID := range bookingIDs {
		if _, err := tx.Exec(ctx, `INSERT INTO order_items (order_id, booking_id) VALUES ($1, $2)`, order.ID, bookingID); err != nil {
			return err
		}
		cmd, err := tx.Exec(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 AND status=$3`,
			domain.BookingStatusPending, bookingID, domain.BookingStatusInCart)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
	}

	return tx.Commit(ctx)
}

func (r *PGOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `SELECT id, email, total_cents, order_date, payment_date, payment_status FROM orders WHERE id=$1`, id)
	var o domain.Order
	if err := row.Scan(&o.ID, &o.Email, &o.TotalCents, &o.OrderDate, &o.PaymentDate, &o.PaymentStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := r.attachBookingIDs(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGOrderRepository) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT id, email, total_cents, order_date, payment_date, payment_status FROM orders WHERE email=$1 ORDER BY order_date DESC, id`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.Email, &o.TotalCents, &o.OrderDate, &o.PaymentDate, &o.PaymentStatus); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// UpdatePaymentStatus moves a pending order to its settled status.
// The WHERE clause keeps an already-settled order from having its
// payment date rewritten by a repeated capture.
func (r *PGOrderRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentStatus, paidAt time.Time) (*domain.Order, error) {
	row := r.db.QueryRow(ctx, `UPDATE orders SET payment_status=$1, payment_date=$2 WHERE id=$3 AND payment_status=$4
		RETURNING id, email, total_cents, order_date, payment_date, payment_status`, status, paidAt, id, domain.PaymentStatusPending)
	var o domain.Order
	if err := row.Scan(&o.ID, &o.Email, &o.TotalCents, &o.OrderDate, &o.PaymentDate, &o.PaymentStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGOrderRepository) attachBookingIDs(ctx context.Context, order *domain.Order) error {
	rows, err := r.db.Query(ctx, `SELECT booking_id FROM order_items WHERE order_id=$1 ORDER BY booking_id`, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return err
		}
		order.BookingIDs = append(order.BookingIDs, id)
	}
	return rows.Err()
}

var _ OrderRepository = (*PGOrderRepository)(nil)
