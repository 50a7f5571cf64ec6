package domain

import "time"

type BookingStatus string

const (
	BookingStatusInCart    BookingStatus = "in-cart"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking is one traveller-group's reservation against a package.
// Cart items are bookings with status in-cart. EndDate always equals
// StartDate plus the package duration; PriceCents is the line total
// (unit price times travellers), computed once.
type Booking struct {
	ID         int64
	Email      string
	PackageID  int64
	StartDate  time.Time
	EndDate    time.Time
	Travellers int
	PriceCents int64
	Status     BookingStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CartItem is a booking enriched with the package fields the cart
// page renders.
type CartItem struct {
	BookingID    int64         `json:"booking_id"`
	PackageID    int64         `json:"package_id"`
	PackageName  string        `json:"package_name"`
	City         string        `json:"city"`
	Country      string        `json:"country"`
	DurationDays int           `json:"duration_days"`
	Image        string        `json:"image"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Travellers   int           `json:"travellers"`
	PriceCents   int64         `json:"price_cents"`
	Status       BookingStatus `json:"status"`
}

// BookingSummary is the administrative listing row.
type BookingSummary struct {
	BookingID   int64         `json:"booking_id"`
	Email       string        `json:"email"`
	PackageName string        `json:"package_name"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Travellers  int           `json:"travellers"`
	PriceCents  int64         `json:"price_cents"`
	Status      BookingStatus `json:"status"`
}

// ValidBookingStatus reports whether s is one of the four stored
// statuses.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusInCart, BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}
