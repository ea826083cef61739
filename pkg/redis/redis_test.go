package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VerticalAgents/mischa-os-sub004/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()

	client, err := New(&config.Config{})
	require.NoError(t, err)
	require.False(t, client.Enabled())
	return client
}

func TestDisabledCacheIsNoop(t *testing.T) {
	cache := NewCache(disabledClient(t), "giro")
	ctx := context.Background()

	err := cache.Set(ctx, "overview|rep=0:route=0:cat=0", map[string]int{"a": 1}, time.Minute)
	assert.NoError(t, err)

	var dest map[string]int
	found, err := cache.Get(ctx, "overview|rep=0:route=0:cat=0", &dest)
	assert.NoError(t, err)
	assert.False(t, found, "disabled cache must always miss")

	assert.NoError(t, cache.Delete(ctx, "overview|rep=0:route=0:cat=0"))
}

func TestDisabledRateLimiterAllowsAll(t *testing.T) {
	limiter := NewRateLimiter(disabledClient(t), "giro")
	ctx := context.Background()

	for i := 0; i < RefreshRateLimit.Limit*2; i++ {
		allowed, remaining, err := limiter.Allow(ctx, RefreshRateLimit)
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, RefreshRateLimit.Limit, remaining)
	}
}

func TestDisabledClientClose(t *testing.T) {
	assert.NoError(t, disabledClient(t).Close())
}
