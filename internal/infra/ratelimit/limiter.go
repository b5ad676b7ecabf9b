package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "booking_attempts"

// Limiter ограничивает число попыток бронирования с одного телефона в бизнесе.
// Фиксированное окно: INCR и EXPIRE NX в одной MULTI-транзакции. NX не продлевает текущее окно
// и восстанавливает TTL у ключа, оставшегося без него.
type Limiter struct {
	client redis.Cmdable
	limit  int
	window time.Duration
}

// NewLimiter создает лимитер. limit <= 0 отключает ограничение.
func NewLimiter(client redis.Cmdable, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, limit: limit, window: window}
}

// Allow регистрирует попытку и возвращает false, если лимит окна исчерпан
func (l *Limiter) Allow(ctx context.Context, businessID int64, phone string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("%s:%d:%s", keyPrefix, businessID, phone)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, l.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: incr %s: %w", ErrStore, key, err)
	}

	return incr.Val() <= int64(l.limit), nil
}
