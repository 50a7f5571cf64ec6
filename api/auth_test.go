package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/travelbook/holidaybooking/internal/domain"
	"github.com/travelbook/holidaybooking/internal/service/auth"
)

// MockAuthUseCase is a mock implementation of auth.AuthUseCase
type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.RegisterInput) (*domain.Profile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*auth.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *MockAuthUseCase) Verify(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *MockAuthUseCase) ProfileFor(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func TestAuthHandler_register(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(registerRequest{Email: "new@example.com", Password: "secret123", FirstName: "Ada"})
	c.Request = httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	profile := &domain.Profile{Email: "new@example.com", FirstName: "Ada"}
	mockService.On("Register", c.Request.Context(), auth.RegisterInput{
		Email:     "new@example.com",
		Password:  "secret123",
		FirstName: "Ada",
	}).Return(profile, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response domain.Profile
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "new@example.com", response.Email)

	mockService.AssertExpectations(t)
}

func TestAuthHandler_register_DuplicateEmail(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(registerRequest{Email: "taken@example.com", Password: "secret123"})
	c.Request = httptest.NewRequest("POST", "/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), mock.Anything).Return(nil, domain.ErrValidation)

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_login(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Email: "test@example.com", Password: "secret123"})
	c.Request = httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	result := &auth.LoginResult{
		AccessToken: "token123",
		User:        domain.Profile{Email: "test@example.com"},
	}
	mockService.On("Login", c.Request.Context(), "test@example.com", "secret123").Return(result, nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response auth.LoginResult
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "token123", response.AccessToken)
	assert.Equal(t, "test@example.com", response.User.Email)
}

func TestAuthHandler_login_BadCredentials(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Email: "test@example.com", Password: "wrong"})
	c.Request = httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Login", c.Request.Context(), "test@example.com", "wrong").Return(nil, domain.ErrUnauthorized)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_me(t *testing.T) {
	mockService := &MockAuthUseCase{}
	handler := NewAuthHandler(mockService)

	c, w := authedContext(t, "test@example.com")
	c.Request = httptest.NewRequest("GET", "/me", nil)

	profile := &domain.Profile{Email: "test@example.com", FirstName: "Ada"}
	mockService.On("ProfileFor", c.Request.Context(), "test@example.com").Return(profile, nil)

	handler.me(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response domain.Profile
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Ada", response.FirstName)
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	mockService := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/cart", nil)

	AuthRequired(mockService)(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAuthRequired_StoresClaims(t *testing.T) {
	mockService := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/cart", nil)
	c.Request.Header.Set("Authorization", "Bearer token123")

	claims := &auth.Claims{Email: "test@example.com"}
	mockService.On("Verify", "token123").Return(claims, nil)

	AuthRequired(mockService)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, claims, claimsFrom(c))
}

func TestAdminRequired_RejectsNonAdmin(t *testing.T) {
	c, w := authedContext(t, "test@example.com")
	c.Request = httptest.NewRequest("GET", "/admin/users", nil)

	AdminRequired()(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAdminRequired_PassesAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/admin/users", nil)
	c.Set(claimsKey, &auth.Claims{Email: "admin@example.com", IsAdmin: true})

	AdminRequired()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
}
