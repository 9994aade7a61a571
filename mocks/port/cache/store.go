package cache

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of cache.Store
type MockStore struct {
	mock.Mock
}

// NewMissingStore returns a store mock that always misses and accepts writes
func NewMissingStore() *MockStore {
	m := new(MockStore)
	m.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(false).Maybe()
	m.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe()
	m.On("Delete", mock.Anything, mock.Anything).Maybe()
	m.On("DeletePrefix", mock.Anything, mock.Anything).Maybe()
	return m
}

func (m *MockStore) Get(ctx context.Context, key string, dest any) bool {
	args := m.Called(ctx, key, dest)
	return args.Bool(0)
}

func (m *MockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	m.Called(ctx, key, value, ttl)
}

func (m *MockStore) Delete(ctx context.Context, keys ...string) {
	m.Called(ctx, keys)
}

func (m *MockStore) DeletePrefix(ctx context.Context, prefix string) {
	m.Called(ctx, prefix)
}
