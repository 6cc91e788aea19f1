package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCacheManager struct {
	mock.Mock
}

func (m *mockCacheManager) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *mockCacheManager) GetWithRefresh(ctx context.Context, key string, ttl time.Duration) (string, bool) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Bool(1)
}

func (m *mockCacheManager) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *mockCacheManager) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *mockCacheManager) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type wrappedInput struct {
	Body string
}

func upper(calls *int) func(context.Context, wrappedInput) (string, error) {
	return func(_ context.Context, in wrappedInput) (string, error) {
		*calls++
		return "<" + in.Body + ">", nil
	}
}

func TestReadThroughCache_Get_WithCacheDisabled(t *testing.T) {
	managerMock := &mockCacheManager{}
	calls := 0
	r := NewReadThroughCache[string, string, wrappedInput](managerMock, upper(&calls), true)

	v, err := r.Get(context.Background(), "key", wrappedInput{Body: "x"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "<x>", v)
	require.Equal(t, 1, calls)
	managerMock.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestReadThroughCache_Get_WithValueInCache(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("Get", mock.Anything, "key").Return("cached", true).Once()
	calls := 0
	r := NewReadThroughCache[string, string, wrappedInput](managerMock, upper(&calls), false)

	v, err := r.Get(context.Background(), "key", wrappedInput{Body: "x"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "cached", v)
	require.Zero(t, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_MissFillsCache(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("Get", mock.Anything, "key").Return("", false).Once()
	managerMock.On("Set", mock.Anything, "key", "<x>", time.Minute).Once()
	calls := 0
	r := NewReadThroughCache[string, string, wrappedInput](managerMock, upper(&calls), false)

	v, err := r.Get(context.Background(), "key", wrappedInput{Body: "x"}, time.Minute)
	require.NoError(t, err)
	require.Equal(t, "<x>", v)
	require.Equal(t, 1, calls)
	managerMock.AssertExpectations(t)
}

func TestReadThroughCache_Get_ErrorNotCached(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("Get", mock.Anything, "key").Return("", false).Once()
	boom := errors.New("boom")
	r := NewReadThroughCache[string, string, wrappedInput](managerMock, func(context.Context, wrappedInput) (string, error) {
		return "", boom
	}, false)

	_, err := r.Get(context.Background(), "key", wrappedInput{}, time.Minute)
	require.ErrorIs(t, err, boom)
	managerMock.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThroughCache_GetWithRefresh_Hit(t *testing.T) {
	managerMock := &mockCacheManager{}
	managerMock.On("GetWithRefresh", mock.Anything, "key", time.Hour).Return("cached", true).Once()
	calls := 0
	r := NewReadThroughCache[string, string, wrappedInput](managerMock, upper(&calls), false)

	v, err := r.GetWithRefresh(context.Background(), "key", wrappedInput{Body: "x"}, time.Hour)
	require.NoError(t, err)
	require.Equal(t, "cached", v)
	require.Zero(t, calls)
}

func TestReadThroughCache_WithRealManager(t *testing.T) {
	calls := 0
	cache := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	r := NewReadThroughCache[string, string, wrappedInput](cache, upper(&calls), false)

	for range 3 {
		v, err := r.Get(context.Background(), "k", wrappedInput{Body: "y"}, time.Minute)
		require.NoError(t, err)
		require.Equal(t, "<y>", v)
	}
	require.Equal(t, 1, calls)
}
