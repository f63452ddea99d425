package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type RateLimitRepository struct {
	mock.Mock
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

type ResetTokenRepository struct {
	mock.Mock
}

func (m *ResetTokenRepository) StoreResetToken(ctx context.Context, email, token string, ttl time.Duration) error {
	args := m.Called(ctx, email, token, ttl)

	return args.Error(0)
}

func (m *ResetTokenRepository) VerifyResetToken(ctx context.Context, email, token string) (bool, error) {
	args := m.Called(ctx, email, token)

	return args.Bool(0), args.Error(1)
}

func (m *ResetTokenRepository) DeleteResetToken(ctx context.Context, email string) error {
	args := m.Called(ctx, email)

	return args.Error(0)
}
