package stores_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/theapemachine/wicker-go/pkg/stores"
)

func newTestRedis(t *testing.T, opts ...stores.RedisOption) (*miniredis.Miniredis, *stores.Redis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})

	store := stores.NewRedisFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })

	return mr, store
}

func TestRedis_AttributeRoundTrip(t *testing.T) {
	_, store := newTestRedis(t)
	ctx := context.Background()

	value, ok, err := store.Attribute(ctx, "s1", "theme")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)

	assert.NoError(t, store.SetAttribute(ctx, "s1", "theme", "dark"))

	value, ok, err = store.Attribute(ctx, "s1", "theme")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)
}

func TestRedis_AttributeNames(t *testing.T) {
	_, store := newTestRedis(t)
	ctx := context.Background()

	assert.NoError(t, store.SetAttribute(ctx, "s1", "theme", "dark"))
	assert.NoError(t, store.SetAttribute(ctx, "s1", "locale", "en"))

	names, err := store.AttributeNames(ctx, "s1")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"theme", "locale"}, names)
}

func TestRedis_RemoveAttribute(t *testing.T) {
	_, store := newTestRedis(t)
	ctx := context.Background()

	assert.NoError(t, store.SetAttribute(ctx, "s1", "theme", "dark"))
	assert.NoError(t, store.RemoveAttribute(ctx, "s1", "theme"))

	_, ok, err := store.Attribute(ctx, "s1", "theme")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_Invalidate(t *testing.T) {
	_, store := newTestRedis(t)
	ctx := context.Background()

	unbound := []string{}
	store.OnUnbound(func(sid string) {
		unbound = append(unbound, sid)
	})

	assert.NoError(t, store.SetAttribute(ctx, "s1", "theme", "dark"))
	assert.NoError(t, store.Invalidate(ctx, "s1"))

	_, ok, err := store.Attribute(ctx, "s1", "theme")
	assert.NoError(t, err)
	assert.False(t, ok)

	// A second invalidate finds nothing to remove
	assert.NoError(t, store.Invalidate(ctx, "s1"))
	assert.Equal(t, []string{"s1"}, unbound)
}

func TestRedis_TTLExpiration(t *testing.T) {
	mr, store := newTestRedis(t, stores.WithTTL(time.Second))
	ctx := context.Background()

	assert.NoError(t, store.SetAttribute(ctx, "s1", "theme", "dark"))

	mr.FastForward(2 * time.Second)

	_, ok, err := store.Attribute(ctx, "s1", "theme")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_KeyPrefix(t *testing.T) {
	mr, store := newTestRedis(t, stores.WithPrefix("apptest:"))
	ctx := context.Background()

	assert.NoError(t, store.SetAttribute(ctx, "s1", "theme", "dark"))
	assert.True(t, mr.Exists("apptest:s1"))
}
