package db

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adplanhq/mixengine/internal/mix"
)

// setupTestRedis spins up an in-memory Redis and returns a store backed by it.
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(s.Close)
	store := &RedisStore{
		Client: redis.NewClient(&redis.Options{Addr: s.Addr()}),
		Ctx:    context.Background(),
	}
	return s, store
}

func TestOccupancyCacheRoundTrip(t *testing.T) {
	_, store := setupTestRedis(t)

	table := map[string][mix.MonthsPerYear]float64{
		"A1":  {0: 50, 5: 100},
		"TOP": {11: 200},
	}
	require.NoError(t, store.SetOccupancy(2025, table, time.Minute))

	got, err := store.GetOccupancy(2025)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestOccupancyCacheMiss(t *testing.T) {
	_, store := setupTestRedis(t)

	got, err := store.GetOccupancy(2030)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOccupancyCacheExpiry(t *testing.T) {
	s, store := setupTestRedis(t)

	require.NoError(t, store.SetOccupancy(2025, map[string][mix.MonthsPerYear]float64{"A1": {}}, time.Minute))
	s.FastForward(2 * time.Minute)

	got, err := store.GetOccupancy(2025)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInvalidateOccupancy(t *testing.T) {
	_, store := setupTestRedis(t)

	require.NoError(t, store.SetOccupancy(2024, map[string][mix.MonthsPerYear]float64{"A1": {}}, time.Minute))
	require.NoError(t, store.SetOccupancy(2025, map[string][mix.MonthsPerYear]float64{"A1": {}}, time.Minute))

	require.NoError(t, store.InvalidateOccupancy())

	for _, year := range []int{2024, 2025} {
		got, err := store.GetOccupancy(year)
		require.NoError(t, err)
		assert.Nil(t, got)
	}
}

func TestInvalidateOccupancyEmpty(t *testing.T) {
	_, store := setupTestRedis(t)
	assert.NoError(t, store.InvalidateOccupancy())
}
