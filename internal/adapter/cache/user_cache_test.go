package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-management-api/internal/domain/user"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func TestRedisUserCache_SetStoresJSON(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, 5*time.Minute, zaptest.NewLogger(t))

	err := cache.Set(context.Background(), &domain.User{ID: 1, Name: "John Doe", Email: "john@example.com"})
	require.NoError(t, err)

	raw, err := mr.Get(Key(1))
	require.NoError(t, err)

	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	assert.Equal(t, "John Doe", stored["name"])
	assert.Equal(t, "john@example.com", stored["email"])
	assert.Equal(t, 5*time.Minute, mr.TTL(Key(1)))
}

func TestRedisUserCache_SetNil(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))

	err := cache.Set(context.Background(), nil)
	assert.EqualError(t, err, "cannot cache nil user")
}

func TestRedisUserCache_GetRoundTrip(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	want := &domain.User{ID: 3, Name: "Jane", Email: "jane@example.com"}
	require.NoError(t, cache.Set(ctx, want))

	got, err := cache.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisUserCache_GetMiss(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))

	got, err := cache.Get(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_GetCorrupted(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))

	require.NoError(t, mr.Set(Key(1), "{not json"))

	got, err := cache.Get(context.Background(), 1)
	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_Delete(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{ID: 1, Name: "A", Email: "a@example.com"}))
	require.NoError(t, cache.Delete(ctx, 1))

	assert.False(t, mr.Exists(Key(1)))
}

func TestRedisUserCache_ExpiresAfterTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Second, zaptest.NewLogger(t))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &domain.User{ID: 1, Name: "A", Email: "a@example.com"}))
	mr.FastForward(2 * time.Second)

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisUserCache_RedisDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewRedisUserCache(client, time.Minute, zaptest.NewLogger(t))
	mr.Close()

	_, err := cache.Get(context.Background(), 1)
	assert.Error(t, err)
}
