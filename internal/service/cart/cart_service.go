package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/travelbook/holidaybooking/internal/domain"
	"github.com/travelbook/holidaybooking/internal/repository"
)

type CartUseCase interface {
	AddItem(ctx context.Context, input AddItemInput) (*domain.Booking, error)
	UpdateItem(ctx context.Context, email string, bookingID int64, patch UpdatePatch) (*domain.Booking, error)
	RemoveItem(ctx context.Context, email string, bookingID int64) error
	Items(ctx context.Context, email string) ([]domain.CartItem, error)
}

type AddItemInput struct {
	Email      string
	PackageID  int64
	StartDate  time.Time
	Travellers int
}

// UpdatePatch carries a cart edit. Exactly one of StartDate/EndDate
// is authoritative; the other is recomputed from the package's fixed
// duration. Travellers must always be set.
type UpdatePatch struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Travellers int
}

type CartService struct {
	bookings repository.BookingRepository
	packages repository.PackageRepository
}

func NewCartService(bookings repository.BookingRepository, packages repository.PackageRepository) *CartService {
	return &CartService{bookings: bookings, packages: packages}
}

// AddItem creates an in-cart booking. The end date is derived from
// the start date and the package duration; the line price is the
// package price times travellers, computed once here and never
// re-multiplied at summation.
func (s *CartService) AddItem(ctx context.Context, input AddItemInput) (*domain.Booking, error) {
	if input.Travellers < 1 {
		return nil, fmt.Errorf("%w: travellers must be at least 1", domain.ErrValidation)
	}
	if input.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: start date is required", domain.ErrValidation)
	}

	pkg, err := s.packages.GetByID(ctx, input.PackageID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Email:      input.Email,
		PackageID:  pkg.ID,
		StartDate:  input.StartDate,
		EndDate:    DeriveEndDate(input.StartDate, pkg.DurationDays),
		Travellers: input.Travellers,
		PriceCents: pkg.PriceCents * int64(input.Travellers),
		Status:     domain.BookingStatusInCart,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// UpdateItem edits an in-cart booking. A booking that is checked out
// or belongs to someone else is treated as missing: ids are guessable
// and must not leak other carts.
func (s *CartService) UpdateItem(ctx context.Context, email string, bookingID int64, patch UpdatePatch) (*domain.Booking, error) {
	if patch.Travellers < 1 {
		return nil, fmt.Errorf("%w: travellers must be at least 1", domain.ErrValidation)
	}
	if (patch.StartDate == nil) == (patch.EndDate == nil) {
		return nil, fmt.Errorf("%w: exactly one of start date or end date must be given", domain.ErrValidation)
	}

	booking, err := s.getOwnCartItem(ctx, email, bookingID)
	if err != nil {
		return nil, err
	}

	pkg, err := s.packages.GetByID(ctx, booking.PackageID)
	if err != nil {
		return nil, err
	}

	if patch.StartDate != nil {
		booking.StartDate = *patch.StartDate
		booking.EndDate = DeriveEndDate(*patch.StartDate, pkg.DurationDays)
	} else {
		booking.EndDate = *patch.EndDate
		booking.StartDate = DeriveStartDate(*patch.EndDate, pkg.DurationDays)
	}
	booking.Travellers = patch.Travellers
	booking.PriceCents = pkg.PriceCents * int64(patch.Travellers)

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// RemoveItem deletes a cart item. A missing id is an error, not a
// no-op, and another user's item counts as missing.
func (s *CartService) RemoveItem(ctx context.Context, email string, bookingID int64) error {
	if _, err := s.getOwnCartItem(ctx, email, bookingID); err != nil {
		return err
	}
	return s.bookings.Delete(ctx, bookingID)
}

func (s *CartService) getOwnCartItem(ctx context.Context, email string, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Email != email || booking.Status != domain.BookingStatusInCart {
		return nil, domain.ErrNotFound
	}
	return booking, nil
}

func (s *CartService) Items(ctx context.Context, email string) ([]domain.CartItem, error) {
	return s.bookings.ListInCart(ctx, email)
}

// Total sums line prices. Each line already includes its traveller
// count, so summation never multiplies again.
func Total(items []domain.CartItem) int64 {
	var total int64
	for _, it := range items {
		total += it.PriceCents
	}
	return total
}

// DeriveEndDate anchors the end of a stay to the package duration.
func DeriveEndDate(start time.Time, durationDays int) time.Time {
	return start.AddDate(0, 0, durationDays)
}

// DeriveStartDate is the inverse of DeriveEndDate.
func DeriveStartDate(end time.Time, durationDays int) time.Time {
	return end.AddDate(0, 0, -durationDays)
}

var _ CartUseCase = (*CartService)(nil)
