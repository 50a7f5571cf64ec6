package domain

import "time"

// Package is the stored catalog record. Duration is fixed for the
// lifetime of a package: booking dates are derived from it.
type Package struct {
	ID           int64
	Name         string
	Description  string
	LocationID   int64
	DurationDays int
	PriceCents   int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PackageView is the denormalized catalog object served to browsers:
// the package joined with its location, its images in sequence order
// and its resolved theme names. Themes and Images may be empty.
type PackageView struct {
	ID           int64    `json:"package_id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	DurationDays int      `json:"duration_days"`
	PriceCents   int64    `json:"price_cents"`
	City         string   `json:"city"`
	Country      string   `json:"country"`
	Images       []string `json:"images"`
	Themes       []string `json:"themes"`
}

type Location struct {
	ID        int64  `json:"location_id"`
	Country   string `json:"country"`
	City      string `json:"city"`
	ImagePath string `json:"image_path"`
}

type Category struct {
	ID        int64  `json:"category_id"`
	Name      string `json:"name"`
	ImagePath string `json:"image_path"`
}
