package admin

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/travelbook/holidaybooking/internal/domain"
	"github.com/travelbook/holidaybooking/internal/kafka"
	"github.com/travelbook/holidaybooking/internal/repository"
	"github.com/travelbook/holidaybooking/internal/service/catalog"
)

type AdminUseCase interface {
	UpsertPackage(ctx context.Context, input PackageInput) (*domain.Package, error)
	DeletePackage(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]domain.Profile, error)
	SetUserAdmin(ctx context.Context, actorEmail, email string, isAdmin bool) (*domain.Profile, error)
	ListBookings(ctx context.Context) ([]domain.BookingSummary, error)
	SetBookingStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error)
}

// PackageInput carries a full package record. ID zero means insert;
// otherwise the stored record is fetched, merged and written back
// whole (last-write-wins, no version check).
type PackageInput struct {
	ID           int64
	Name         string
	Description  string
	LocationID   int64
	DurationDays int
	PriceCents   int64
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type AdminService struct {
	packages repository.PackageRepository
	users    repository.UserRepository
	bookings repository.BookingRepository
	cache    catalog.Cache
	producer Producer
	topic    string
}

func NewAdminService(packages repository.PackageRepository, users repository.UserRepository, bookings repository.BookingRepository,
	cache catalog.Cache, producer Producer, topic string) *AdminService {
	return &AdminService{packages: packages, users: users, bookings: bookings, cache: cache, producer: producer, topic: topic}
}

func (s *AdminService) UpsertPackage(ctx context.Context, input PackageInput) (*domain.Package, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.DurationDays < 1 {
		return nil, fmt.Errorf("%w: duration must be at least 1 day", domain.ErrValidation)
	}
	if input.PriceCents < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", domain.ErrValidation)
	}

	pkg := &domain.Package{
		ID:           input.ID,
		Name:         input.Name,
		Description:  input.Description,
		LocationID:   input.LocationID,
		DurationDays: input.DurationDays,
		PriceCents:   input.PriceCents,
	}

	if input.ID == 0 {
		if err := s.packages.Insert(ctx, pkg); err != nil {
			return nil, err
		}
	} else {
		current, err := s.packages.GetByID(ctx, input.ID)
		if err != nil {
			return nil, err
		}
		// Duration anchors every booking's date derivation and is
		// immutable once the package exists.
		if current.DurationDays != input.DurationDays {
			return nil, fmt.Errorf("%w: duration is immutable", domain.ErrValidation)
		}
		if err := s.packages.Update(ctx, pkg); err != nil {
			return nil, err
		}
	}

	s.invalidateCatalog(ctx)
	return pkg, nil
}

func (s *AdminService) DeletePackage(ctx context.Context, id int64) error {
	if err := s.packages.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	return profiles, nil
}

// SetUserAdmin flips a user's admin flag. Admins cannot change their
// own flag: self-demotion locks the panel, self-promotion is moot.
func (s *AdminService) SetUserAdmin(ctx context.Context, actorEmail, email string, isAdmin bool) (*domain.Profile, error) {
	if actorEmail == email {
		return nil, fmt.Errorf("%w: cannot change own admin flag", domain.ErrForbidden)
	}
	user, err := s.users.SetAdmin(ctx, email, isAdmin)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *AdminService) ListBookings(ctx context.Context) ([]domain.BookingSummary, error) {
	return s.bookings.ListSummaries(ctx)
}

// SetBookingStatus performs the administrative status change. All
// transitions among pending, confirmed and cancelled are permitted in
// both directions; in-cart items belong to their owner and stay out
// of reach.
func (s *AdminService) SetBookingStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) || status == domain.BookingStatusInCart {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}

	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusInCart {
		return nil, domain.ErrNotFound
	}

	updated, err := s.bookings.UpdateStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	eventType := kafka.EventBookingConfirmed
	if status == domain.BookingStatusCancelled {
		eventType = kafka.EventBookingCancelled
	} else if status == domain.BookingStatusPending {
		eventType = kafka.EventBookingPending
	}
	s.publish(ctx, kafka.BookingEvent{
		Type:       eventType,
		BookingID:  updated.ID,
		PackageID:  updated.PackageID,
		Email:      updated.Email,
		Status:     string(updated.Status),
		OccurredAt: time.Now().UTC(),
	})
	return updated, nil
}

func (s *AdminService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePackages(ctx); err != nil {
		log.Printf("invalidate catalog cache: %v", err)
	}
}

func (s *AdminService) publish(ctx context.Context, event kafka.BookingEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	if err := s.producer.Publish(ctx, s.topic, fmt.Sprintf("booking-%d", event.BookingID), event); err != nil {
		log.Printf("publish %s event: %v", event.Type, err)
	}
}

var _ AdminUseCase = (*AdminService)(nil)
