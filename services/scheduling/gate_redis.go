package scheduling

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const gateKeyPrefix = "bookingGate:"

// RedisGate backs the Gate interface with Redis SETNX + TTL, so the
// serialization guarantee holds across multiple server instances. Redis
// errors are logged and reported as "busy": failing closed means a flaky
// Redis can briefly reject bookings but never lets two through.
type RedisGate struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewRedisGate(client *redis.Client, logger *zap.Logger) *RedisGate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisGate{Client: client, Logger: logger}
}

func (g *RedisGate) TryAcquire(key string, ttl time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ok, err := g.Client.SetNX(ctx, gateKeyPrefix+key, "1", ttl).Result()
	if err != nil {
		g.Logger.Warn("gate acquire failed, treating key as busy",
			zap.String("key", key), zap.Error(err))
		return false
	}
	return ok
}

func (g *RedisGate) Release(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := g.Client.Del(ctx, gateKeyPrefix+key).Err(); err != nil {
		// The lease still self-heals via TTL.
		g.Logger.Warn("gate release failed", zap.String("key", key), zap.Error(err))
	}
}

func (g *RedisGate) IsHeld(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	n, err := g.Client.Exists(ctx, gateKeyPrefix+key).Result()
	if err != nil {
		g.Logger.Warn("gate check failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return n > 0
}
