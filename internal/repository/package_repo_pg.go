package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/travelbook/holidaybooking/internal/domain"
)

type PackageRepository interface {
	ListViews(ctx context.Context) ([]domain.PackageView, error)
	GetView(ctx context.Context, id int64) (*domain.PackageView, error)
	TopViews(ctx context.Context, limit int) ([]domain.PackageView, error)
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
	Insert(ctx context.Context, pkg *domain.Package) error
	Update(ctx context.Context, pkg *domain.Package) error
	Delete(ctx context.Context, id int64) error
	ListLocations(ctx context.Context) ([]domain.Location, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type PGPackageRepository struct {
	db *pgxpool.Pool
}

func NewPackageRepository(db *pgxpool.Pool) PackageRepository {
	return &PGPackageRepository{db: db}
}

// ListViews returns every package denormalized with its location,
// images in image_id order and resolved theme names. Zero packages
// is ErrDataUnavailable so callers can tell "store has nothing" from
// a result filtered down to empty.
func (r *PGPackageRepository) ListViews(ctx context.Context) ([]domain.PackageView, error) {
	views, err := r.queryViews(ctx, `
		SELECT p.id, p.name, p.description, p.duration_days, p.price_cents, l.city, l.country
		FROM packages p
		LEFT JOIN locations l ON p.location_id = l.id
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrDataUnavailable
	}
	if err := r.attachImagesAndThemes(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *PGPackageRepository) GetView(ctx context.Context, id int64) (*domain.PackageView, error) {
	views, err := r.queryViews(ctx, `
		SELECT p.id, p.name, p.description, p.duration_days, p.price_cents, l.city, l.country
		FROM packages p
		LEFT JOIN locations l ON p.location_id = l.id
		WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrNotFound
	}
	if err := r.attachImagesAndThemes(ctx, views); err != nil {
		return nil, err
	}
	return &views[0], nil
}

// TopViews ranks packages by the number of orders that touched them,
// most ordered first.
func (r *PGPackageRepository) TopViews(ctx context.Context, limit int) ([]domain.PackageView, error) {
	views, err := r.queryViews(ctx, `
		SELECT p.id, p.name, p.description, p.duration_days, p.price_cents, l.city, l.country
		FROM packages p
		LEFT JOIN bookings b ON p.id = b.package_id
		LEFT JOIN order_items oi ON b.id = oi.booking_id
		LEFT JOIN locations l ON p.location_id = l.id
		GROUP BY p.id, p.name, p.description, p.duration_days, p.price_cents, l.city, l.country
		ORDER BY COUNT(oi.order_id) DESC, p.id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrDataUnavailable
	}
	if err := r.attachImagesAndThemes(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *PGPackageRepository) queryViews(ctx context.Context, query string, args ...any) ([]domain.PackageView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]domain.PackageView, 0)
	for rows.Next() {
		var v domain.PackageView
		var city, country *string
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.DurationDays, &v.PriceCents, &city, &country); err != nil {
			return nil, err
		}
		if city != nil {
			v.City = *city
		}
		if country != nil {
			v.Country = *country
		}
		v.Images = []string{}
		v.Themes = []string{}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *PGPackageRepository) attachImagesAndThemes(ctx context.Context, views []domain.PackageView) error {
	index := make(map[int64]*domain.PackageView, len(views))
	for i := range views {
		index[views[i].ID] = &views[i]
	}

	rows, err := r.db.Query(ctx, `SELECT package_id, image_path FROM package_images ORDER BY id`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var pkgID int64
		var path string
		if err := rows.Scan(&pkgID, &path); err != nil {
			rows.Close()
			return err
		}
		if v, ok := index[pkgID]; ok {
			v.Images = append(v.Images, path)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT pc.package_id, c.name
		FROM package_categories pc
		JOIN categories c ON pc.category_id = c.id
		ORDER BY pc.package_id, c.name`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var pkgID int64
		var name string
		if err := rows.Scan(&pkgID, &name); err != nil {
			return err
		}
		if v, ok := index[pkgID]; ok {
			v.Themes = append(v.Themes, name)
		}
	}
	return rows.Err()
}

func (r *PGPackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, description, location_id, duration_days, price_cents, created_at, updated_at FROM packages WHERE id=$1`, id)
	var p domain.Package
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.LocationID, &p.DurationDays, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPackageRepository) Insert(ctx context.Context, pkg *domain.Package) error {
	return r.db.QueryRow(ctx, `INSERT INTO packages (name, description, location_id, duration_days, price_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		pkg.Name, pkg.Description, pkg.LocationID, pkg.DurationDays, pkg.PriceCents).
		Scan(&pkg.ID, &pkg.CreatedAt, &pkg.UpdatedAt)
}

func (r *PGPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	cmd, err := r.db.Exec(ctx, `UPDATE packages SET name=$1, description=$2, location_id=$3, duration_days=$4, price_cents=$5, updated_at=now() WHERE id=$6`,
		pkg.Name, pkg.Description, pkg.LocationID, pkg.DurationDays, pkg.PriceCents, pkg.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPackageRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM packages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGPackageRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.Query(ctx, `SELECT id, country, city, COALESCE(image_path, '') FROM locations ORDER BY country, city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := make([]domain.Location, 0)
	for rows.Next() {
		var l domain.Location
		if err := rows.Scan(&l.ID, &l.Country, &l.City, &l.ImagePath); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *PGPackageRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, COALESCE(image_path, '') FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ImagePath); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

var _ PackageRepository = (*PGPackageRepository)(nil)
