package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/R-Agile/epetshop-backend/internal/api/handlers"
	"github.com/R-Agile/epetshop-backend/internal/authz"
	"github.com/R-Agile/epetshop-backend/internal/config"
	"github.com/R-Agile/epetshop-backend/internal/models"
	"github.com/R-Agile/epetshop-backend/internal/repositories/mocks"
	service "github.com/R-Agile/epetshop-backend/internal/services"
	"github.com/R-Agile/epetshop-backend/internal/testutils"
	"github.com/google/uuid"
	sendgridlib "github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type userHandlerMocks struct {
	userRepo   *mocks.UserRepository
	rateLimit  *mocks.RateLimitRepository
	resetToken *mocks.ResetTokenRepository
	email      *fakeEmailService
}

type fakeEmailService struct {
	mock.Mock
}

func (f *fakeEmailService) SendPasswordReset(ctx context.Context, toEmail, toName, resetLink string) error {
	args := f.Called(ctx, toEmail, toName, resetLink)

	return args.Error(0)
}

func (f *fakeEmailService) GetSendGridClient() *sendgridlib.Client {
	return nil
}

func newUserHandler() (*handlers.UserHandler, *userHandlerMocks) {
	m := &userHandlerMocks{
		userRepo:   new(mocks.UserRepository),
		rateLimit:  new(mocks.RateLimitRepository),
		resetToken: new(mocks.ResetTokenRepository),
		email:      new(fakeEmailService),
	}

	cfg := &config.Config{FrontendURL: "http://localhost:5173"}
	cfg.Security.JWTKey = "test-key"
	cfg.Security.TokenExpiry = 30 * time.Minute
	cfg.Security.AdminTokenExpiry = 2 * time.Hour
	cfg.Security.ResetTokenLifetime = 24 * time.Hour

	svc := service.NewUserService(m.userRepo, m.rateLimit, m.resetToken, m.email, authz.New(), cfg)

	return handlers.NewUserHandler(svc), m
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, m := newUserHandler()
		hash, _ := bcrypt.GenerateFromPassword([]byte("P@ssword123!"), bcrypt.MinCost)
		user := &models.User{
			ID:           uuid.New(),
			Email:        "asha@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleUser,
			Status:       models.UserStatusActive,
		}

		m.rateLimit.On("CheckLoginRateLimit", mock.Anything, user.Email).Return(true, 4, 0, nil)
		m.userRepo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)
		m.userRepo.On("UpdateLastLogin", mock.Anything, user.ID, mock.AnythingOfType("time.Time")).Return(nil)

		body, _ := json.Marshal(models.LoginRequest{Email: user.Email, Password: "P@ssword123!"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body), nil)
		rec := httptest.NewRecorder()

		handler.Login()(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		resp := decodeAPIResponse(t, rec)
		assert.True(t, resp.Success)
	})

	t.Run("Failure - Rate Limited Carries Retry Delay", func(t *testing.T) {
		handler, m := newUserHandler()

		m.rateLimit.On("CheckLoginRateLimit", mock.Anything, "asha@example.com").Return(false, 0, 90, nil)

		body, _ := json.Marshal(models.LoginRequest{Email: "asha@example.com", Password: "P@ssword123!"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body), nil)
		rec := httptest.NewRecorder()

		handler.Login()(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)

		var result models.LoginResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.False(t, result.Success)
		assert.Equal(t, 90, result.RetryAfter)
	})

	t.Run("Failure - Wrong Password Carries Remaining Tries", func(t *testing.T) {
		handler, m := newUserHandler()
		hash, _ := bcrypt.GenerateFromPassword([]byte("P@ssword123!"), bcrypt.MinCost)
		user := &models.User{
			ID:           uuid.New(),
			Email:        "asha@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleUser,
			Status:       models.UserStatusActive,
		}

		m.rateLimit.On("CheckLoginRateLimit", mock.Anything, user.Email).Return(true, 2, 0, nil)
		m.userRepo.On("GetUserByEmail", mock.Anything, user.Email).Return(user, nil)

		body, _ := json.Marshal(models.LoginRequest{Email: user.Email, Password: "wrong-password"})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/login", bytes.NewReader(body), nil)
		rec := httptest.NewRecorder()

		handler.Login()(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var result models.LoginResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
		assert.False(t, result.Success)
		assert.Equal(t, 2, result.RemainingTries)
	})
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("Failure - Invalid Email", func(t *testing.T) {
		handler, _ := newUserHandler()

		body, _ := json.Marshal(models.RegisterRequest{
			Username: "asha",
			Email:    "not-an-email",
			FullName: "Asha Rao",
			Password: "P@ssword123!",
		})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body), nil)
		rec := httptest.NewRecorder()

		handler.Register()(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Failure - Duplicate Email Returns Conflict", func(t *testing.T) {
		handler, m := newUserHandler()

		m.userRepo.On("GetUserByEmail", mock.Anything, "asha@example.com").
			Return(&models.User{ID: uuid.New(), Email: "asha@example.com"}, nil)

		body, _ := json.Marshal(models.RegisterRequest{
			Username: "asha",
			Email:    "asha@example.com",
			FullName: "Asha Rao",
			Password: "P@ssword123!",
		})
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/api/v1/users/register", bytes.NewReader(body), nil)
		rec := httptest.NewRecorder()

		handler.Register()(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestUserHandler_Me(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, m := newUserHandler()
		userID := uuid.New()

		m.userRepo.On("GetUserByID", mock.Anything, userID).
			Return(&models.User{ID: userID, Email: "asha@example.com"}, nil)

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/api/v1/users/me", nil, userClaims(userID), nil)
		rec := httptest.NewRecorder()

		handler.Me()(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Failure - Unauthenticated", func(t *testing.T) {
		handler, _ := newUserHandler()

		req := testutils.CreateTestRequestWithoutContext(http.MethodGet, "/api/v1/users/me", nil, nil)
		rec := httptest.NewRecorder()

		handler.Me()(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
