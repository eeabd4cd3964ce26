package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-auth-hub/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKV is an in-memory otpKV recording the TTL of every SET.
type fakeKV struct {
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// Eval emulates the compare-and-delete script.
func (f *fakeKV) Eval(ctx context.Context, _ string, keys []string, args ...any) *redis.Cmd {
	if f.err != nil {
		return redis.NewCmdResult(nil, f.err)
	}
	var n int64
	if v, ok := f.data[keys[0]]; ok && v == args[0].(string) {
		delete(f.data, keys[0])
		n = 1
	}
	return redis.NewCmdResult(n, nil)
}

func TestRedisOTPRepository_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	repo := &redisOTPRepository{client: kv, retention: time.Hour}
	ctx := context.Background()
	created := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	_, err := repo.FindOTPByEmail(ctx, "a@b.c")
	require.ErrorIs(t, err, ErrOTPNotFound)

	require.NoError(t, repo.ReplaceOTP(ctx, models.OneTimeCode{Email: "a@b.c", Code: "111111", CreatedAt: created}))
	require.NoError(t, repo.ReplaceOTP(ctx, models.OneTimeCode{Email: "a@b.c", Code: "222222", CreatedAt: created}))
	assert.Equal(t, time.Hour, kv.ttls["otp:a@b.c"])

	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(kv.data["otp:a@b.c"]), &stored))
	assert.Equal(t, "222222", stored["code"])

	otp, err := repo.FindOTPByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, models.OneTimeCode{Email: "a@b.c", Code: "222222", CreatedAt: created}, otp)

	require.NoError(t, repo.DeleteOTPByEmail(ctx, "a@b.c"))
	_, err = repo.FindOTPByEmail(ctx, "a@b.c")
	require.ErrorIs(t, err, ErrOTPNotFound)

	n, err := repo.DeleteExpiredOTPs(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisOTPRepository_Errors(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("connection reset")
	repo := &redisOTPRepository{client: kv, retention: time.Hour}
	ctx := context.Background()

	_, err := repo.FindOTPByEmail(ctx, "a@b.c")
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, repo.ReplaceOTP(ctx, models.OneTimeCode{Email: "a@b.c"}), ErrExecutingStatement)
	assert.ErrorIs(t, repo.DeleteOTPByEmail(ctx, "a@b.c"), ErrExecutingStatement)
}

func TestRedisOTPRepository_DeleteOTPIfMatch(t *testing.T) {
	kv := newFakeKV()
	repo := &redisOTPRepository{client: kv, retention: time.Hour}
	ctx := context.Background()
	created := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, repo.ReplaceOTP(ctx, models.OneTimeCode{Email: "a@b.c", Code: "111111", CreatedAt: created}))
	stale, err := repo.FindOTPByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceOTP(ctx, models.OneTimeCode{Email: "a@b.c", Code: "222222", CreatedAt: created.Add(time.Minute)}))

	removed, err := repo.DeleteOTPIfMatch(ctx, stale)
	require.NoError(t, err)
	assert.False(t, removed)

	fresh, err := repo.FindOTPByEmail(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "222222", fresh.Code)

	removed, err = repo.DeleteOTPIfMatch(ctx, fresh)
	require.NoError(t, err)
	assert.True(t, removed)
	_, err = repo.FindOTPByEmail(ctx, "a@b.c")
	assert.ErrorIs(t, err, ErrOTPNotFound)

	kv.err = errors.New("connection reset")
	_, err = repo.DeleteOTPIfMatch(ctx, fresh)
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

func TestRedisOTPRepository_CorruptValue(t *testing.T) {
	kv := newFakeKV()
	kv.data["otp:a@b.c"] = "not json"
	repo := &redisOTPRepository{client: kv, retention: time.Hour}

	_, err := repo.FindOTPByEmail(context.Background(), "a@b.c")
	assert.ErrorIs(t, err, ErrScanningRow)
}
