package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/adplanhq/mixengine/internal/mix"
)

// RedisStore wraps a redis client and context for operations.
type RedisStore struct {
	Client *redis.Client
	Ctx    context.Context
}

// InitRedis initializes a Redis client and returns a RedisStore.
func InitRedis(addr string) (*RedisStore, error) {
	rs := &RedisStore{
		Client: redis.NewClient(&redis.Options{Addr: addr}),
		Ctx:    context.Background(),
	}

	// Add OpenTelemetry instrumentation to Redis client
	if err := redisotel.InstrumentTracing(rs.Client); err != nil {
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}

	if err := rs.Client.Ping(rs.Ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	zap.L().Info("Connected to Redis", zap.String("addr", addr))
	return rs, nil
}

func occupancyKey(year int) string {
	return fmt.Sprintf("occupancy:%d", year)
}

// GetOccupancy returns the cached occupancy table for a year, or nil on a miss.
func (r *RedisStore) GetOccupancy(year int) (map[string][mix.MonthsPerYear]float64, error) {
	raw, err := r.Client.Get(r.Ctx, occupancyKey(year)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var table map[string][mix.MonthsPerYear]float64
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode cached occupancy: %w", err)
	}
	return table, nil
}

// SetOccupancy caches the occupancy table for a year with the given TTL.
func (r *RedisStore) SetOccupancy(year int, table map[string][mix.MonthsPerYear]float64, ttl time.Duration) error {
	raw, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode occupancy: %w", err)
	}
	return r.Client.Set(r.Ctx, occupancyKey(year), raw, ttl).Err()
}

// InvalidateOccupancy drops every cached occupancy table. Called after any
// booking or catalog write.
func (r *RedisStore) InvalidateOccupancy() error {
	keys, err := r.Client.Keys(r.Ctx, "occupancy:*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.Client.Del(r.Ctx, keys...).Err()
}

// Close shuts down the Redis client.
func (r *RedisStore) Close() {
	if r != nil && r.Client != nil {
		if err := r.Client.Close(); err != nil {
			zap.L().Error("redis close", zap.Error(err))
		}
	}
}
