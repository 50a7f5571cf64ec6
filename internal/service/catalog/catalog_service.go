package catalog

import (
	"context"
	"strings"

	"github.com/travelbook/holidaybooking/internal/domain"
	"github.com/travelbook/holidaybooking/internal/repository"
)

type CatalogUseCase interface {
	Browse(ctx context.Context, spec domain.FilterSpec) ([]domain.PackageView, error)
	Get(ctx context.Context, id int64) (*domain.PackageView, error)
	Top(ctx context.Context, limit int) ([]domain.PackageView, error)
	Locations(ctx context.Context) ([]domain.Location, error)
	Categories(ctx context.Context) ([]domain.Category, error)
}

// Cache holds the assembled catalog between browse requests. A nil
// cache disables caching.
type Cache interface {
	GetPackages(ctx context.Context) ([]domain.PackageView, error)
	SetPackages(ctx context.Context, pkgs []domain.PackageView) error
	InvalidatePackages(ctx context.Context) error
}

type CatalogService struct {
	repo         repository.PackageRepository
	cache        Cache
	imageBaseURL string
}

func NewCatalogService(repo repository.PackageRepository, cache Cache, imageBaseURL string) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, imageBaseURL: strings.TrimRight(imageBaseURL, "/")}
}

// Browse returns the catalog narrowed and ordered by spec. The full
// list is fetched (through the cache when warm) and filtered in
// memory; catalogs are small enough that re-evaluating on every
// request is the simpler trade.
func (s *CatalogService) Browse(ctx context.Context, spec domain.FilterSpec) ([]domain.PackageView, error) {
	all, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilters(all, spec), nil
}

func (s *CatalogService) list(ctx context.Context) ([]domain.PackageView, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetPackages(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	pkgs, err := s.repo.ListViews(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pkgs {
		s.prefixImages(&pkgs[i])
	}
	if s.cache != nil {
		_ = s.cache.SetPackages(ctx, pkgs)
	}
	return pkgs, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.PackageView, error) {
	pkg, err := s.repo.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	s.prefixImages(pkg)
	return pkg, nil
}

func (s *CatalogService) Top(ctx context.Context, limit int) ([]domain.PackageView, error) {
	pkgs, err := s.repo.TopViews(ctx, limit)
	if err != nil {
		return nil, err
	}
	for i := range pkgs {
		s.prefixImages(&pkgs[i])
	}
	return pkgs, nil
}

func (s *CatalogService) Locations(ctx context.Context) ([]domain.Location, error) {
	return s.repo.ListLocations(ctx)
}

func (s *CatalogService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

// prefixImages turns the stored server-relative paths into absolute
// URLs. Already-absolute paths are left alone so a cached list is
// not prefixed twice.
func (s *CatalogService) prefixImages(pkg *domain.PackageView) {
	if s.imageBaseURL == "" {
		return
	}
	for i, path := range pkg.Images {
		if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
			continue
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		pkg.Images[i] = s.imageBaseURL + path
	}
}

var _ CatalogUseCase = (*CatalogService)(nil)
