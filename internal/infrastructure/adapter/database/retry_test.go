package database

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	mockcore "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{MaxRetries: attempts, RetryInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func TestRetryOnTransientError(t *testing.T) {
	t.Run("should retry transient failures until success", func(t *testing.T) {
		// Arrange
		calls := 0
		op := func(context.Context) error {
			calls++
			if calls < 3 {
				return errors.New("dial tcp: connection refused")
			}
			return nil
		}

		// Act
		err := RetryOnTransientError(context.Background(), fastRetry(5), op, mockcore.NewQuietLogger())

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("should stop at the first permanent failure", func(t *testing.T) {
		// Arrange
		calls := 0
		permanent := errors.New("password authentication failed")
		op := func(context.Context) error {
			calls++
			return permanent
		}

		// Act
		err := RetryOnTransientError(context.Background(), fastRetry(5), op, mockcore.NewQuietLogger())

		// Assert
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("should give up after the configured attempts", func(t *testing.T) {
		// Arrange
		calls := 0
		op := func(context.Context) error {
			calls++
			return errs.ErrDatabaseConnection
		}

		// Act
		err := RetryOnTransientError(context.Background(), fastRetry(3), op, mockcore.NewQuietLogger())

		// Assert
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Equal(t, 3, calls)
	})

	t.Run("should return when the context is cancelled while waiting", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithCancel(context.Background())
		op := func(context.Context) error {
			cancel()
			return errors.New("i/o timeout")
		}
		cfg := RetryConfig{MaxRetries: 5, RetryInterval: time.Hour}

		// Act
		err := RetryOnTransientError(ctx, cfg, op, mockcore.NewQuietLogger())

		// Assert
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBackoffWithJitter(t *testing.T) {
	t.Run("should double and cap the interval", func(t *testing.T) {
		cfg := RetryConfig{RetryInterval: 100 * time.Millisecond, MaxInterval: 300 * time.Millisecond}

		assert.Equal(t, 100*time.Millisecond, backoffWithJitter(0, cfg))
		assert.Equal(t, 200*time.Millisecond, backoffWithJitter(1, cfg))
		assert.Equal(t, 300*time.Millisecond, backoffWithJitter(4, cfg))
	})

	t.Run("should keep jitter within the factor", func(t *testing.T) {
		cfg := RetryConfig{RetryInterval: 100 * time.Millisecond, JitterFactor: 0.2}

		got := backoffWithJitter(0, cfg)

		assert.GreaterOrEqual(t, got, 100*time.Millisecond)
		assert.LessOrEqual(t, got, 120*time.Millisecond)
	})
}

func TestIsTransientError(t *testing.T) {
	assert.True(t, IsTransientError(fmt.Errorf("connect: %w", errs.ErrDatabaseConnection)))
	assert.True(t, IsTransientError(errors.New("FATAL: the database system is starting up")))
	assert.True(t, IsTransientError(errors.New("unexpected EOF")))
	assert.False(t, IsTransientError(errors.New("relation \"saldos\" does not exist")))
	assert.False(t, IsTransientError(nil))
}
