package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestLimiter_FixedWindow(t *testing.T) {
	mr, client := newRedis(t)
	limiter := NewLimiter(client, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, 1, "79001234567")
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := limiter.Allow(ctx, 1, "79001234567")
	require.NoError(t, err)
	assert.False(t, ok)

	// Другой бизнес и другой телефон считаются отдельно
	ok, err = limiter.Allow(ctx, 2, "79001234567")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = limiter.Allow(ctx, 1, "79007654321")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, time.Minute, mr.TTL("booking_attempts:1:79001234567"))

	mr.FastForward(time.Minute + time.Second)
	ok, err = limiter.Allow(ctx, 1, "79001234567")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_WindowIsNotExtended(t *testing.T) {
	mr, client := newRedis(t)
	limiter := NewLimiter(client, 5, time.Minute)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, 1, "79001234567")
	require.NoError(t, err)

	mr.FastForward(20 * time.Second)
	_, err = limiter.Allow(ctx, 1, "79001234567")
	require.NoError(t, err)

	assert.Equal(t, 40*time.Second, mr.TTL("booking_attempts:1:79001234567"))
}

// Счётчик без TTL (например, EXPIRE не дошёл до redis) получает TTL на следующей попытке
func TestLimiter_CounterWithoutTTLRecovers(t *testing.T) {
	mr, client := newRedis(t)
	limiter := NewLimiter(client, 2, time.Minute)
	ctx := context.Background()
	key := "booking_attempts:1:79001234567"

	require.NoError(t, mr.Set(key, "5"))
	require.Equal(t, time.Duration(0), mr.TTL(key))

	ok, err := limiter.Allow(ctx, 1, "79001234567")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(time.Minute + time.Second)
	ok, err = limiter.Allow(ctx, 1, "79001234567")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLimiter_Disabled(t *testing.T) {
	_, client := newRedis(t)
	limiter := NewLimiter(client, 0, time.Minute)

	for i := 0; i < 10; i++ {
		ok, err := limiter.Allow(context.Background(), 1, "79001234567")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestLimiter_StoreError(t *testing.T) {
	mr, client := newRedis(t)
	limiter := NewLimiter(client, 1, time.Minute)
	mr.Close()

	_, err := limiter.Allow(context.Background(), 1, "79001234567")
	assert.ErrorIs(t, err, ErrStore)
}
