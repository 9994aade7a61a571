package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	coremocks "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
)

type steppingClock struct {
	now time.Time
	// onNow runs once, on the next call to Now
	onNow func()
}

func (c *steppingClock) Now() time.Time {
	if hook := c.onNow; hook != nil {
		c.onNow = nil
		hook()
	}
	return c.now
}

func (c *steppingClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should return a decoded copy of the stored value", func(t *testing.T) {
		// Arrange
		store := NewMemoryStore(&steppingClock{now: start}, coremocks.NewQuietLogger())
		saldo := &entity.Saldo{ID: 1, UserID: 7, TotalBalance: 120000}
		store.Set(ctx, "saldo:id=1", saldo, time.Minute)
		saldo.TotalBalance = 0

		// Act
		var got entity.Saldo
		found := store.Get(ctx, "saldo:id=1", &got)

		// Assert
		require.True(t, found)
		assert.Equal(t, int64(120000), got.TotalBalance)
	})

	t.Run("should expire entries after their ttl", func(t *testing.T) {
		clock := &steppingClock{now: start}
		store := NewMemoryStore(clock, coremocks.NewQuietLogger())
		store.Set(ctx, "k", 1, time.Minute)

		clock.now = start.Add(59 * time.Second)
		var v int
		assert.True(t, store.Get(ctx, "k", &v))

		clock.now = start.Add(time.Minute)
		assert.False(t, store.Get(ctx, "k", &v))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("should keep an entry rewritten while an expired read was in flight", func(t *testing.T) {
		// Arrange
		clock := &steppingClock{now: start}
		store := NewMemoryStore(clock, coremocks.NewQuietLogger())
		store.Set(ctx, "k", 1, time.Minute)
		clock.now = start.Add(2 * time.Minute)
		clock.onNow = func() { store.Set(ctx, "k", 2, time.Minute) }

		// Act
		var stale int
		found := store.Get(ctx, "k", &stale)

		// Assert
		assert.False(t, found)
		var fresh int
		require.True(t, store.Get(ctx, "k", &fresh))
		assert.Equal(t, 2, fresh)
	})

	t.Run("should evict a whole namespace by prefix", func(t *testing.T) {
		store := NewMemoryStore(&steppingClock{now: start}, coremocks.NewQuietLogger())
		store.Set(ctx, "saldos:page=1:size=10:search=", []int{1}, 0)
		store.Set(ctx, "saldos:page=2:size=10:search=", []int{2}, 0)
		store.Set(ctx, "saldo:id=1", 1, 0)

		store.DeletePrefix(ctx, "saldos:")

		var v any
		assert.False(t, store.Get(ctx, "saldos:page=1:size=10:search=", &v))
		assert.True(t, store.Get(ctx, "saldo:id=1", &v))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("should treat an undecodable entry as a miss", func(t *testing.T) {
		logger := coremocks.NewQuietLogger()
		store := NewMemoryStore(&steppingClock{now: start}, logger)
		store.Set(ctx, "k", "text", 0)

		var n int
		found := store.Get(ctx, "k", &n)

		assert.False(t, found)
		logger.AssertCalled(t, "Warn", "Cache entry could not be decoded", mock.Anything)
	})
}
