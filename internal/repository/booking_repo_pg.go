package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/travelbook/holidaybooking/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	ListInCart(ctx context.Context, email string) ([]domain.CartItem, error)
	ListSummaries(ctx context.Context) ([]domain.BookingSummary, error)
	DeleteInCartBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, email, package_id, start_date, end_date, travellers, price_cents, status, created_at, updated_at`

func scanBooking(row pgx.Row, b *domain.Booking) error {
	return row.Scan(&b.ID, &b.Email, &b.PackageID, &b.StartDate, &b.EndDate, &b.Travellers, &b.PriceCents, &b.Status, &b.CreatedAt, &b.UpdatedAt)
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (email, package_id, start_date, end_date, travellers, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		booking.Email, booking.PackageID, booking.StartDate, booking.EndDate, booking.Travellers, booking.PriceCents, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET start_date=$1, end_date=$2, travellers=$3, price_cents=$4, updated_at=now() WHERE id=$5`,
		booking.StartDate, booking.EndDate, booking.Travellers, booking.PriceCents, booking.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+bookingColumns, status, id)
	var b domain.Booking
	if err := scanBooking(row, &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListInCart returns the user's in-cart bookings enriched with the
// package fields the cart page renders. The image subquery picks the
// package's first image in sequence order.
func (r *PGBookingRepository) ListInCart(ctx context.Context, email string) ([]domain.CartItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.package_id, p.name, COALESCE(l.city, ''), COALESCE(l.country, ''), p.duration_days,
			COALESCE((SELECT pi.image_path FROM package_images pi WHERE pi.package_id = p.id ORDER BY pi.id LIMIT 1), ''),
			b.start_date, b.end_date, b.travellers, b.price_cents, b.status
		FROM bookings b
		JOIN packages p ON b.package_id = p.id
		LEFT JOIN locations l ON p.location_id = l.id
		WHERE b.email = $1 AND b.status = $2
		ORDER BY b.id`, email, domain.BookingStatusInCart)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(&it.BookingID, &it.PackageID, &it.PackageName, &it.City, &it.Country, &it.DurationDays,
			&it.Image, &it.StartDate, &it.EndDate, &it.Travellers, &it.PriceCents, &it.Status); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGBookingRepository) ListSummaries(ctx context.Context) ([]domain.BookingSummary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.email, p.name, b.start_date, b.end_date, b.travellers, b.price_cents, b.status
		FROM bookings b
		JOIN packages p ON b.package_id = p.id
		ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]domain.BookingSummary, 0)
	for rows.Next() {
		var s domain.BookingSummary
		if err := rows.Scan(&s.BookingID, &s.Email, &s.PackageName, &s.StartDate, &s.EndDate, &s.Travellers, &s.PriceCents, &s.Status); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// DeleteInCartBefore removes in-cart bookings last touched before the
// cutoff. Used by the worker sweep.
func (r *PGBookingRepository) DeleteInCartBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE status=$1 AND updated_at < $2`, domain.BookingStatusInCart, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
