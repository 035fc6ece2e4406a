package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/jobboard/internal/config"
)

// ErrRedisDisabled is reported by Ping when no address is configured.
var ErrRedisDisabled = errors.New("redis not configured")

const redisDialTimeout = 2 * time.Second

// Redis holds the optional cache connection. A zero Redis is disabled.
type Redis struct {
	client *redis.Client
}

// NewRedis builds a client for cfg.Addr. An unreachable server is logged but
// not fatal; callers fall back to the database.
func NewRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Redis {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		logger.Info("REDIS_ADDR not set; job list cache disabled")
		return &Redis{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: redisDialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unreachable at startup", zap.String("addr", addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", addr), zap.Int("db", cfg.DB))
	}
	return &Redis{client: client}
}

// Handle returns the client, or nil when Redis is disabled.
func (r *Redis) Handle() *redis.Client {
	if r == nil {
		return nil
	}
	return r.client
}

// Ping checks the server.
func (r *Redis) Ping(ctx context.Context) error {
	if r.Handle() == nil {
		return ErrRedisDisabled
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *Redis) Close() {
	if c := r.Handle(); c != nil {
		_ = c.Close()
	}
}
