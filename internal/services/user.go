package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/R-Agile/epetshop-backend/internal/api/middleware"
	"github.com/R-Agile/epetshop-backend/internal/authz"
	"github.com/R-Agile/epetshop-backend/internal/config"
	"github.com/R-Agile/epetshop-backend/internal/errors"
	"github.com/R-Agile/epetshop-backend/internal/models"
	repository "github.com/R-Agile/epetshop-backend/internal/repositories"
	"github.com/R-Agile/epetshop-backend/pkg/sendgrid"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo       repository.UserRepository
	rateLimitRepo  repository.RateLimitRepository
	resetTokenRepo repository.ResetTokenRepository
	emailService   sendgrid.EmailService
	authorizer     authz.Authorizer
	cfg            *config.Config
}

func NewUserService(userRepo repository.UserRepository, rateLimitRepo repository.RateLimitRepository, resetTokenRepo repository.ResetTokenRepository, emailService sendgrid.EmailService, authorizer authz.Authorizer, cfg *config.Config) *UserService {
	return &UserService{
		userRepo:       userRepo,
		rateLimitRepo:  rateLimitRepo,
		resetTokenRepo: resetTokenRepo,
		emailService:   emailService,
		authorizer:     authorizer,
		cfg:            cfg,
	}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	logger := middleware.LoggerFromContext(ctx)

	if existing, _ := s.userRepo.GetUserByEmail(ctx, req.Email); existing != nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to hash password").WithError(err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Status:       models.UserStatusActive,
		RegisterTime: time.Now(),
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	logger.Info("User registered", slog.String("userId", user.ID.String()))

	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	logger := middleware.LoggerFromContext(ctx)

	allowed, remaining, retryAfter, err := s.rateLimitRepo.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.InternalError("Failed to check rate limit").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			RetryAfter: retryAfter,
			Message:    fmt.Sprintf("Too many login attempts. Try again in %d seconds.", retryAfter),
		}, errors.TooManyRequestsError("Too many login attempts")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return &models.LoginResponse{
			Success:        false,
			RemainingTries: remaining,
			Message:        "Invalid email or password",
		}, errors.UnauthorizedError("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Warn("Failed login attempt", slog.String("email", req.Email))

		return &models.LoginResponse{
			Success:        false,
			RemainingTries: remaining,
			Message:        "Invalid email or password",
		}, errors.UnauthorizedError("Invalid email or password")
	}

	if user.Status == models.UserStatusBanned {
		return nil, errors.ForbiddenStateError("Account is banned")
	}

	expiry := s.cfg.Security.TokenExpiry
	if user.Role.Elevated() {
		expiry = s.cfg.Security.AdminTokenExpiry
	}

	token, err := s.issueToken(user, expiry)
	if err != nil {
		return nil, errors.InternalError("Failed to generate token").WithError(err)
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn("Failed to record last login", slog.String("error", err.Error()))
	}

	user.LastLoginTime = &now

	return &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: int(expiry.Seconds()),
		User:      user,
	}, nil
}

func (s *UserService) issueToken(user *models.User, expiry time.Duration) (string, error) {
	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Status: user.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Security.JWTKey))
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, actor *models.Claims, role models.UserRole) ([]models.User, error) {
	if !s.authorizer.CanManageUsers(actor) {
		return nil, errors.ForbiddenError("Admin privileges are required")
	}

	users, err := s.userRepo.ListUsers(ctx, role)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list users").WithError(err)
	}

	return users, nil
}

// UpdateUser applies a partial update. Role and status changes are admin
// operations; regular users may only edit their own profile fields.
func (s *UserService) UpdateUser(ctx context.Context, actor *models.Claims, id uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	if actor.UserID != id && !s.authorizer.CanManageUsers(actor) {
		return nil, errors.ForbiddenError("You may only update your own account")
	}

	if (req.Role != nil || req.Status != nil) && !s.authorizer.CanManageUsers(actor) {
		return nil, errors.ForbiddenError("Role and status changes require admin privileges")
	}

	user, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	if req.Username != nil {
		user.Username = *req.Username
	}

	if req.Email != nil {
		user.Email = *req.Email
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	if req.Role != nil {
		user.Role = *req.Role
	}

	if req.Status != nil {
		user.Status = *req.Status
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to update user").WithError(err)
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, actor *models.Claims, id uuid.UUID) error {
	if !s.authorizer.CanManageUsers(actor) {
		return errors.ForbiddenError("Admin privileges are required")
	}

	if err := s.userRepo.DeleteUser(ctx, id); err != nil {
		return errors.NotFoundError("User not found").WithError(err)
	}

	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, actor *models.Claims, req *models.ChangePasswordRequest) error {
	user, err := s.userRepo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return errors.NotFoundError("User not found").WithError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		return errors.UnauthorizedError("Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.InternalError("Failed to hash password").WithError(err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return errors.DatabaseError("Failed to update password").WithError(err)
	}

	return nil
}

// ForgotPassword issues a reset token and emails a reset link. Unknown
// emails return success so the endpoint does not leak which addresses are
// registered.
func (s *UserService) ForgotPassword(ctx context.Context, req *models.ForgotPasswordRequest) error {
	logger := middleware.LoggerFromContext(ctx)

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		logger.Info("Password reset requested for unknown email")

		return nil
	}

	token := uuid.NewString()

	if err := s.resetTokenRepo.StoreResetToken(ctx, user.Email, token, s.cfg.Security.ResetTokenLifetime); err != nil {
		return errors.InternalError("Failed to store reset token").WithError(err)
	}

	query := url.Values{}
	query.Set("email", user.Email)
	query.Set("token", token)
	resetLink := fmt.Sprintf("%s/reset-password?%s", s.cfg.FrontendURL, query.Encode())

	if err := s.emailService.SendPasswordReset(ctx, user.Email, user.FullName, resetLink); err != nil {
		return errors.ThirdPartyError("Failed to send reset email").WithError(err)
	}

	logger.Info("Password reset email sent", slog.String("userId", user.ID.String()))

	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	valid, err := s.resetTokenRepo.VerifyResetToken(ctx, req.Email, req.Token)
	if err != nil {
		return errors.InternalError("Failed to verify reset token").WithError(err)
	}

	if !valid {
		return errors.UnauthorizedError("Invalid or expired reset token")
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return errors.NotFoundError("User not found").WithError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.InternalError("Failed to hash password").WithError(err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return errors.DatabaseError("Failed to update password").WithError(err)
	}

	if err := s.resetTokenRepo.DeleteResetToken(ctx, req.Email); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to delete used reset token", slog.String("error", err.Error()))
	}

	return nil
}
