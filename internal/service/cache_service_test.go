package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lejog-map/internal/domain"
	"lejog-map/pkg/redis"
)

func setupCacheService(t *testing.T) (*miniredis.Miniredis, *CacheService) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mr, NewCacheService(client, zap.NewNop())
}

func TestCacheService_MissThenHit(t *testing.T) {
	_, cache := setupCacheService(t)
	ctx := context.Background()

	_, ok := cache.GetMappedActivities(ctx, "2024-09-02", "2024-09-15")
	assert.False(t, ok)

	want := domain.SampleActivities()
	cache.SetMappedActivities(ctx, "2024-09-02", "2024-09-15", want)

	got, ok := cache.GetMappedActivities(ctx, "2024-09-02", "2024-09-15")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestCacheService_WindowsAreIndependent(t *testing.T) {
	_, cache := setupCacheService(t)
	ctx := context.Background()

	cache.SetMappedActivities(ctx, "2024-09-02", "2024-09-15", domain.SampleActivities())

	_, ok := cache.GetMappedActivities(ctx, "2024-09-02", "2024-09-16")
	assert.False(t, ok)
}

func TestCacheService_CorruptEntryIsAMiss(t *testing.T) {
	mr, cache := setupCacheService(t)
	ctx := context.Background()

	key := "test:" + fmt.Sprintf(redis.KeyMappedActivities, "2024-09-02", "2024-09-15")
	require.NoError(t, mr.Set(key, "{definitely not json"))

	_, ok := cache.GetMappedActivities(ctx, "2024-09-02", "2024-09-15")
	assert.False(t, ok)

	// The corrupt entry is dropped so the next write can repopulate it.
	assert.False(t, mr.Exists(key))
}
