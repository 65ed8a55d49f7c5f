package ratecache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok, err := c.Get(ctx, Key("USD"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, Key("USD"), `{"EUR":0.9}`, time.Minute))
	val, ok, err := c.Get(ctx, Key("USD"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"EUR":0.9}`, val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	now = now.Add(59 * time.Second)
	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok, _ = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryCache_NoTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	now = now.Add(24 * 365 * time.Hour)

	_, ok, _ := c.Get(ctx, "k")
	assert.True(t, ok)
}

// TestRedisCache requires a running Redis instance
func TestRedisCache(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	ctx := context.Background()
	c, err := NewRedisCache(ctx, "localhost:6379")
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer c.Close()

	require.NoError(t, c.Set(ctx, Key("TEST"), "1", time.Second))
	val, ok, err := c.Get(ctx, Key("TEST"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", val)
}
