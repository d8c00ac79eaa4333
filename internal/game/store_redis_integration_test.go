//go:build integration

package game

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/bc-1a2b/internal/engine"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rdb.Ping(ctx).Err(), "redis is not reachable")
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisPersistence_SaveLoadReplay(t *testing.T) {
	ctx := context.Background()
	rdb := newRedisClient(t)
	require.NoError(t, rdb.FlushDB(ctx).Err())

	store := NewRedisGameStore(rdb, time.Hour)
	svc := NewGameService(Config{}, store, discardLogger())
	svc.secrets = func() engine.Code { return "1234" }

	g, err := svc.Create(ctx, engine.ModeHard, "")
	require.NoError(t, err)
	for _, raw := range []string{"5678", "1243", "1234"} {
		_, err := g.SubmitGuess(raw)
		require.NoError(t, err)
	}

	ttl, err := rdb.TTL(ctx, store.key(g.ID())).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	svc2 := NewGameService(Config{}, store, discardLogger())
	r, ok, err := svc2.GetOrLoad(ctx, g.ID())
	require.NoError(t, err)
	require.True(t, ok)

	st := r.State()
	assert.Equal(t, StatusWon, st.Status)
	assert.Equal(t, 1, st.PoolSize)
	assert.Len(t, st.History, 3)
	require.NotNil(t, st.Score)

	_, ok, err = store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}
