package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/travelbook/holidaybooking/internal/domain"
	"github.com/travelbook/holidaybooking/internal/kafka"
)

type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) ListViews(ctx context.Context) ([]domain.PackageView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PackageView), args.Error(1)
}

func (m *MockPackageRepository) GetView(ctx context.Context, id int64) (*domain.PackageView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PackageView), args.Error(1)
}

func (m *MockPackageRepository) TopViews(ctx context.Context, limit int) ([]domain.PackageView, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.PackageView), args.Error(1)
}

func (m *MockPackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockPackageRepository) Insert(ctx context.Context, pkg *domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *MockPackageRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPackageRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockPackageRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SetAdmin(ctx context.Context, email string, isAdmin bool) (*domain.User, error) {
	args := m.Called(ctx, email, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) ListInCart(ctx context.Context, email string) ([]domain.CartItem, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *MockBookingRepository) ListSummaries(ctx context.Context) ([]domain.BookingSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BookingSummary), args.Error(1)
}

func (m *MockBookingRepository) DeleteInCartBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetPackages(ctx context.Context) ([]domain.PackageView, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PackageView), args.Error(1)
}

func (m *MockCache) SetPackages(ctx context.Context, pkgs []domain.PackageView) error {
	args := m.Called(ctx, pkgs)
	return args.Error(0)
}

func (m *MockCache) InvalidatePackages(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func TestAdminService_UpsertPackage_InsertWhenIDZero(t *testing.T) {
	mockPackages := &MockPackageRepository{}
	mockCache := &MockCache{}
	service := NewAdminService(mockPackages, &MockUserRepository{}, &MockBookingRepository{}, mockCache, nil, "")

	mockPackages.On("Insert", mock.Anything, mock.Anything).Return(nil)
	mockCache.On("InvalidatePackages", mock.Anything).Return(nil)

	pkg, err := service.UpsertPackage(context.Background(), PackageInput{
		Name:         "Beach Week",
		LocationID:   1,
		DurationDays: 7,
		PriceCents:   50000,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Beach Week", pkg.Name)
	mockPackages.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestAdminService_UpsertPackage_UpdateKeepsDuration(t *testing.T) {
	mockPackages := &MockPackageRepository{}
	mockCache := &MockCache{}
	service := NewAdminService(mockPackages, &MockUserRepository{}, &MockBookingRepository{}, mockCache, nil, "")

	current := &domain.Package{ID: 2, Name: "Beach Week", DurationDays: 7, PriceCents: 50000}
	mockPackages.On("GetByID", mock.Anything, int64(2)).Return(current, nil)
	mockPackages.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockCache.On("InvalidatePackages", mock.Anything).Return(nil)

	pkg, err := service.UpsertPackage(context.Background(), PackageInput{
		ID:           2,
		Name:         "Beach Fortnight Deal",
		LocationID:   1,
		DurationDays: 7,
		PriceCents:   45000,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(45000), pkg.PriceCents)
	mockPackages.AssertExpectations(t)
}

func TestAdminService_UpsertPackage_DurationIsImmutable(t *testing.T) {
	mockPackages := &MockPackageRepository{}
	service := NewAdminService(mockPackages, &MockUserRepository{}, &MockBookingRepository{}, nil, nil, "")

	current := &domain.Package{ID: 2, DurationDays: 7}
	mockPackages.On("GetByID", mock.Anything, int64(2)).Return(current, nil)

	_, err := service.UpsertPackage(context.Background(), PackageInput{
		ID:           2,
		Name:         "Beach Week",
		LocationID:   1,
		DurationDays: 10,
		PriceCents:   50000,
	})

	assert.True(t, errors.Is(err, domain.ErrValidation))
	mockPackages.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdminService_UpsertPackage_ValidatesInput(t *testing.T) {
	service := NewAdminService(&MockPackageRepository{}, &MockUserRepository{}, &MockBookingRepository{}, nil, nil, "")

	_, err := service.UpsertPackage(context.Background(), PackageInput{DurationDays: 7, PriceCents: 100})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = service.UpsertPackage(context.Background(), PackageInput{Name: "No Days", PriceCents: 100})
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = service.UpsertPackage(context.Background(), PackageInput{Name: "Negative", DurationDays: 7, PriceCents: -1})
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestAdminService_DeletePackage_InvalidatesCache(t *testing.T) {
	mockPackages := &MockPackageRepository{}
	mockCache := &MockCache{}
	service := NewAdminService(mockPackages, &MockUserRepository{}, &MockBookingRepository{}, mockCache, nil, "")

	mockPackages.On("Delete", mock.Anything, int64(2)).Return(nil)
	mockCache.On("InvalidatePackages", mock.Anything).Return(nil)

	err := service.DeletePackage(context.Background(), 2)

	assert.NoError(t, err)
	mockCache.AssertExpectations(t)
}

func TestAdminService_SetUserAdmin_RejectsSelf(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAdminService(&MockPackageRepository{}, mockUsers, &MockBookingRepository{}, nil, nil, "")

	_, err := service.SetUserAdmin(context.Background(), "admin@example.com", "admin@example.com", false)

	assert.True(t, errors.Is(err, domain.ErrForbidden))
	mockUsers.AssertNotCalled(t, "SetAdmin", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_SetUserAdmin_Success(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAdminService(&MockPackageRepository{}, mockUsers, &MockBookingRepository{}, nil, nil, "")

	promoted := &domain.User{Email: "other@example.com", IsAdmin: true}
	mockUsers.On("SetAdmin", mock.Anything, "other@example.com", true).Return(promoted, nil)

	profile, err := service.SetUserAdmin(context.Background(), "admin@example.com", "other@example.com", true)

	assert.NoError(t, err)
	assert.True(t, profile.IsAdmin)
}

func TestAdminService_SetBookingStatus_RejectsInCartTarget(t *testing.T) {
	service := NewAdminService(&MockPackageRepository{}, &MockUserRepository{}, &MockBookingRepository{}, nil, nil, "")

	_, err := service.SetBookingStatus(context.Background(), 10, domain.BookingStatusInCart)

	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestAdminService_SetBookingStatus_RejectsUnknownStatus(t *testing.T) {
	service := NewAdminService(&MockPackageRepository{}, &MockUserRepository{}, &MockBookingRepository{}, nil, nil, "")

	_, err := service.SetBookingStatus(context.Background(), 10, "shipped")

	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestAdminService_SetBookingStatus_InCartBookingIsOutOfReach(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	service := NewAdminService(&MockPackageRepository{}, &MockUserRepository{}, mockBookings, nil, nil, "")

	inCart := &domain.Booking{ID: 10, Status: domain.BookingStatusInCart}
	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(inCart, nil)

	_, err := service.SetBookingStatus(context.Background(), 10, domain.BookingStatusConfirmed)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	mockBookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_SetBookingStatus_ConfirmPublishesEvent(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockProducer := &MockProducer{}
	service := NewAdminService(&MockPackageRepository{}, &MockUserRepository{}, mockBookings, nil, mockProducer, "booking-events")

	pending := &domain.Booking{ID: 10, PackageID: 2, Email: "test@example.com", Status: domain.BookingStatusPending}
	confirmed := &domain.Booking{ID: 10, PackageID: 2, Email: "test@example.com", Status: domain.BookingStatusConfirmed}
	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(pending, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(10), domain.BookingStatusConfirmed).Return(confirmed, nil)

	var published kafka.BookingEvent
	mockProducer.On("Publish", mock.Anything, "booking-events", "booking-10", mock.Anything).
		Run(func(args mock.Arguments) { published = args.Get(3).(kafka.BookingEvent) }).Return(nil)

	booking, err := service.SetBookingStatus(context.Background(), 10, domain.BookingStatusConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, kafka.EventBookingConfirmed, published.Type)
	mockProducer.AssertExpectations(t)
}

func TestAdminService_SetBookingStatus_CancelAfterConfirm(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	service := NewAdminService(&MockPackageRepository{}, &MockUserRepository{}, mockBookings, nil, nil, "")

	confirmed := &domain.Booking{ID: 10, Status: domain.BookingStatusConfirmed}
	cancelled := &domain.Booking{ID: 10, Status: domain.BookingStatusCancelled}
	mockBookings.On("GetByID", mock.Anything, int64(10)).Return(confirmed, nil)
	mockBookings.On("UpdateStatus", mock.Anything, int64(10), domain.BookingStatusCancelled).Return(cancelled, nil)

	booking, err := service.SetBookingStatus(context.Background(), 10, domain.BookingStatusCancelled)

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
}

func TestAdminService_ListUsers_MapsToProfiles(t *testing.T) {
	mockUsers := &MockUserRepository{}
	service := NewAdminService(&MockPackageRepository{}, mockUsers, &MockBookingRepository{}, nil, nil, "")

	users := []domain.User{
		{Email: "a@example.com", PasswordHash: "hash-a"},
		{Email: "b@example.com", PasswordHash: "hash-b", IsAdmin: true},
	}
	mockUsers.On("List", mock.Anything).Return(users, nil)

	profiles, err := service.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, "a@example.com", profiles[0].Email)
	assert.True(t, profiles[1].IsAdmin)
}
