package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-hub/internal/config"
	"github.com/MKhiriev/go-auth-hub/internal/logger"
	"github.com/MKhiriev/go-auth-hub/models"
	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// otpKV is the subset of *redis.Client used by redisOTPRepository.
type otpKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
}

// deleteIfEqualScript deletes KEYS[1] only while it holds ARGV[1].
const deleteIfEqualScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type redisOTP struct {
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// redisOTPRepository keeps one key per email. Keys carry a TTL of
// `retention`, longer than the code lifetime, so a stale code is still found
// and reported as expired before Redis evicts it.
type redisOTPRepository struct {
	client    otpKV
	retention time.Duration
}

// NewRedisClient connects to Redis and pings it.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return client, nil
}

func NewRedisOTPRepository(client *redis.Client, retention time.Duration, logger *logger.Logger) OTPRepository {
	logger.Debug().Msg("creating redis otp repository")
	return &redisOTPRepository{client: client, retention: retention}
}

func (r *redisOTPRepository) key(email string) string {
	return otpKeyPrefix + email
}

func (r *redisOTPRepository) FindOTPByEmail(ctx context.Context, email string) (models.OneTimeCode, error) {
	val, err := r.client.Get(ctx, r.key(email)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.OneTimeCode{}, ErrOTPNotFound
	}
	if err != nil {
		return models.OneTimeCode{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var stored redisOTP
	if err := json.Unmarshal(val, &stored); err != nil {
		return models.OneTimeCode{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return models.OneTimeCode{Email: email, Code: stored.Code, CreatedAt: stored.CreatedAt}, nil
}

func encodeOTP(otp models.OneTimeCode) ([]byte, error) {
	data, err := json.Marshal(redisOTP{Code: otp.Code, CreatedAt: otp.CreatedAt.UTC()})
	if err != nil {
		return nil, fmt.Errorf("otp: failed to marshal: %w", err)
	}
	return data, nil
}

// ReplaceOTP relies on SET overwriting the key atomically.
func (r *redisOTPRepository) ReplaceOTP(ctx context.Context, otp models.OneTimeCode) error {
	data, err := encodeOTP(otp)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(otp.Email), data, r.retention).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisOTPRepository.ReplaceOTP").Msg("error storing code")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *redisOTPRepository) DeleteOTPByEmail(ctx context.Context, email string) error {
	if err := r.client.Del(ctx, r.key(email)).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// DeleteOTPIfMatch compares and deletes in one Lua script, so the check and
// the DEL cannot interleave with a concurrent SET.
func (r *redisOTPRepository) DeleteOTPIfMatch(ctx context.Context, otp models.OneTimeCode) (bool, error) {
	data, err := encodeOTP(otp)
	if err != nil {
		return false, err
	}

	removed, err := r.client.Eval(ctx, deleteIfEqualScript, []string{r.key(otp.Email)}, string(data)).Int64()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisOTPRepository.DeleteOTPIfMatch").Msg("error deleting code")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return removed > 0, nil
}

// DeleteExpiredOTPs is a no-op: key TTLs already evict old codes.
func (r *redisOTPRepository) DeleteExpiredOTPs(context.Context, time.Time) (int64, error) {
	return 0, nil
}
