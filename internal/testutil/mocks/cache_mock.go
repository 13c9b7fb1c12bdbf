package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockCacheClient stands in for the Redis user cache and the cache health check.
type MockCacheClient struct {
	mock.Mock
}

func NewMockCacheClient() *MockCacheClient {
	return &MockCacheClient{}
}

// Get returns the cached user document stored under key. A nil first
// return value means a miss.
func (m *MockCacheClient) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	raw, _ := args.Get(0).([]byte)
	return raw, args.Error(1)
}

func (m *MockCacheClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

// Delete drops an entry, typically a corrupted user document.
func (m *MockCacheClient) Delete(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// Ping backs the cache dependency of /ready.
func (m *MockCacheClient) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockCacheClient) Close() error {
	return m.Called().Error(0)
}
