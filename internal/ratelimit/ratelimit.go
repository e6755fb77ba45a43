package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Limiter é uma janela fixa por chave em redis.
// Usado no fluxo público de reserva: o link dá acesso limitado, não irrestrito.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewLimiter(rdb *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
	}
}

// Allow incrementa o contador da chave e responde se ainda há cota.
// Redis indisponível libera a passagem: limitar é proteção, não pré-condição.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return true
	}

	if count == 1 {
		l.rdb.Expire(ctx, redisKey, l.window)
	}

	return count <= int64(l.limit)
}
