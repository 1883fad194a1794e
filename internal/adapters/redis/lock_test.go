package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/fsm/internal/adapters/redis"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocker_LockUnlock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "test:")
	ctx := t.Context()

	unlock, err := locker.Lock(ctx, "publish", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:publish"), "lock key should be set")
	token, err := mr.Get("test:lock:publish")
	require.NoError(t, err)
	_, err = uuid.Parse(token)
	assert.NoError(t, err, "lock token should be a random UUID")

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:publish"), "lock key should be removed after unlock")
}

func TestLocker_Contention(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	first := redis.NewLocker(client, "test:")
	second := redis.NewLocker(client, "test:")
	ctx := t.Context()

	unlock, err := first.Lock(ctx, "publish", 5*time.Second)
	require.NoError(t, err)

	short, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = second.Lock(short, "publish", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))

	unlock, err = second.Lock(ctx, "publish", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestLocker_StaleUnlock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "test:")
	ctx := t.Context()

	unlock, err := locker.Lock(ctx, "publish", time.Second)
	require.NoError(t, err)

	// The lock expires and someone else takes it.
	mr.FastForward(2 * time.Second)
	other, err := locker.Lock(ctx, "publish", time.Minute)
	require.NoError(t, err)

	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("test:lock:publish"), "stale unlock must not release the new holder")
	require.NoError(t, other(ctx))
}

func TestLocker_TokensAreUnique(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	locker := redis.NewLocker(client, "test:")
	ctx := t.Context()

	seen := map[string]bool{}
	for range 50 {
		unlock, err := locker.Lock(ctx, "publish", time.Minute)
		require.NoError(t, err)
		token, err := mr.Get("test:lock:publish")
		require.NoError(t, err)
		assert.False(t, seen[token], "token %s reused", token)
		seen[token] = true
		require.NoError(t, unlock(ctx))
	}
}
