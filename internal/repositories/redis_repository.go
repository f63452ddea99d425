package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/R-Agile/epetshop-backend/internal/api/middleware"
	"github.com/R-Agile/epetshop-backend/internal/config"
	"github.com/redis/go-redis/v9"
)

type RateLimitRepository interface {
	CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error)
}

// ResetTokenRepository stores password-reset tokens with an expiry. Tokens
// live in Redis rather than process memory so restarts and replicas agree
// on outstanding resets.
type ResetTokenRepository interface {
	StoreResetToken(ctx context.Context, email, token string, ttl time.Duration) error
	VerifyResetToken(ctx context.Context, email, token string) (bool, error)
	DeleteResetToken(ctx context.Context, email string) error
}

type redisRepository struct {
	client *redis.Client
	cfg    *config.Config
}

func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisConnect.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.DB = cfg.RedisConnect.DB

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

func NewRateLimitRepo(client *redis.Client, cfg *config.Config) RateLimitRepository {
	return &redisRepository{client: client, cfg: cfg}
}

func NewResetTokenRepo(client *redis.Client, cfg *config.Config) ResetTokenRepository {
	return &redisRepository{client: client, cfg: cfg}
}

// CheckLoginRateLimit implements a sliding-window counter per email.
// Returns isAllowed, attempts left, seconds to wait, error.
func (r *redisRepository) CheckLoginRateLimit(ctx context.Context, email string) (bool, int, int, error) {
	logger := middleware.LoggerFromContext(ctx)

	key := fmt.Sprintf("login_attempts:%s", email)

	attemptTime := time.Now()
	now := attemptTime.Unix()
	windowStart := now - int64(r.cfg.RateConfig.WindowSize.Seconds())

	pipe := r.client.Pipeline()

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	// The nanosecond member keeps attempts within the same second distinct.
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: attemptTime.UnixNano()})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, r.cfg.RateConfig.WindowSize)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, 0, fmt.Errorf("redis pipeline error for rate limit check: %w", err)
	}

	attempts := count.Val()
	remaining := r.cfg.RateConfig.MaxAttempts - attempts

	if attempts >= r.cfg.RateConfig.MaxAttempts {
		scores, err := r.client.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{
			Key: key, Start: 0, Stop: 0,
		}).Result()
		if err != nil || len(scores) == 0 {
			return false, 0, int(r.cfg.RateConfig.WindowSize.Seconds()), fmt.Errorf("failed to get oldest attempt time: %w", err)
		}

		oldestTimestamp := int64(scores[0].Score)

		retryAfter := max((oldestTimestamp+int64(r.cfg.RateConfig.WindowSize.Seconds()))-now, 0)

		logger.Warn("Rate limit exceeded", slog.String("email", email), slog.Int64("attempts", attempts))

		return false, 0, int(retryAfter), nil
	}

	return true, int(remaining), 0, nil
}

func resetTokenKey(email string) string {
	return fmt.Sprintf("reset_token:%s", email)
}

func (r *redisRepository) StoreResetToken(ctx context.Context, email, token string, ttl time.Duration) error {
	if err := r.client.Set(ctx, resetTokenKey(email), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	return nil
}

func (r *redisRepository) VerifyResetToken(ctx context.Context, email, token string) (bool, error) {
	stored, err := r.client.Get(ctx, resetTokenKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}

		return false, fmt.Errorf("failed to read reset token: %w", err)
	}

	return stored == token, nil
}

func (r *redisRepository) DeleteResetToken(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, resetTokenKey(email)).Err(); err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}

	return nil
}
