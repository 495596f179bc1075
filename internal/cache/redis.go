package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/loan-amortization/pkg/amortization"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisKeyPrefix namespaces schedule keys.
const RedisKeyPrefix = "amortization:"

// Redis stores JSON-encoded schedules in Redis.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis creates a Redis-backed cache. A zero ttl keeps entries until evicted.
func NewRedis(addr string, ttl time.Duration, logger *zap.Logger) *Redis {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
	})
	return &Redis{client: client, ttl: ttl, logger: logger}
}

// Get fetches and decodes a schedule. Connection and decoding problems are
// logged and reported as a miss.
func (r *Redis) Get(ctx context.Context, key string) (*amortization.AmortizationResult, bool) {
	data, err := r.client.Get(ctx, RedisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("failed to read cached schedule",
				zap.String("op", "cache.Redis.Get"),
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return nil, false
	}

	var result amortization.AmortizationResult
	if err := json.Unmarshal(data, &result); err != nil {
		r.logger.Warn("failed to decode cached schedule",
			zap.String("op", "cache.Redis.Get"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, false
	}
	return &result, true
}

// Set encodes and stores a schedule.
func (r *Redis) Set(ctx context.Context, key string, result *amortization.AmortizationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}
	if err := r.client.Set(ctx, RedisKeyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store schedule: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client connections.
func (r *Redis) Close() error {
	return r.client.Close()
}
