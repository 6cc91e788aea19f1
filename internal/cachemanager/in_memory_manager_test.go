package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type ExampleStruct struct {
	ID   int
	Name string
}

func TestInMemory_SetGet(t *testing.T) {
	cache := NewInMemoryCacheManager[string, ExampleStruct]("test", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "ex:1", ExampleStruct{ID: 1, Name: "apple"}, DefaultExpiration)

	v, ok := cache.Get(context.Background(), "ex:1")
	require.True(t, ok)
	require.Equal(t, "apple", v.Name)
	require.Equal(t, 1, cache.Len())
}

func TestInMemory_Miss(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)

	v, ok := cache.Get(context.Background(), "absent")
	require.False(t, ok)
	require.Empty(t, v)
}

func TestInMemory_Expires(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "k", "v", time.Millisecond)

	require.Eventually(t, func() bool {
		_, ok := cache.Get(context.Background(), "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemory_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(ctx, "a", 1, DefaultExpiration)
	cache.Set(ctx, "b", 2, DefaultExpiration)
	cache.Set(ctx, "c", 3, DefaultExpiration)

	require.NoError(t, cache.Delete(ctx, "a"))
	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)

	require.NoError(t, cache.Flush(ctx))
	require.Zero(t, cache.Len())
}

func TestInMemory_GetWithRefresh(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(ctx, "k", "v", 50*time.Millisecond)

	v, ok := cache.GetWithRefresh(ctx, "k", time.Hour)
	require.True(t, ok)
	require.Equal(t, "v", v)

	time.Sleep(100 * time.Millisecond)
	_, ok = cache.Get(ctx, "k")
	require.True(t, ok, "refresh extended the ttl")
}
