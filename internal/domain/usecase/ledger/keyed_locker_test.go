package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mockcore "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
)

func TestKeyedLocker_Acquire(t *testing.T) {
	t.Run("should serialize holders of the same key", func(t *testing.T) {
		// Arrange
		locker := NewKeyedLocker(mockcore.NewQuietLogger())
		var (
			wg      sync.WaitGroup
			counter int
		)

		// Act
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, release, err := locker.Acquire(context.Background(), 7)
				if err != nil {
					return
				}
				current := counter
				time.Sleep(time.Microsecond)
				counter = current + 1
				release()
			}()
		}
		wg.Wait()

		// Assert
		assert.Equal(t, 50, counter)
	})

	t.Run("should not deadlock when pairs are requested in opposite order", func(t *testing.T) {
		// Arrange
		locker := NewKeyedLocker(mockcore.NewQuietLogger())
		var wg sync.WaitGroup
		done := make(chan struct{})

		// Act
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, release, err := locker.Acquire(context.Background(), 1, 2)
				if err == nil {
					release()
				}
			}()
			go func() {
				defer wg.Done()
				_, release, err := locker.Acquire(context.Background(), 2, 1)
				if err == nil {
					release()
				}
			}()
		}
		go func() {
			wg.Wait()
			close(done)
		}()

		// Assert
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("lock acquisition deadlocked")
		}
	})

	t.Run("should be reentrant through the returned context", func(t *testing.T) {
		// Arrange
		locker := NewKeyedLocker(mockcore.NewQuietLogger())
		ctx, release, err := locker.Acquire(context.Background(), 1, 2)
		require.NoError(t, err)
		defer release()

		// Act
		_, inner, err := locker.Acquire(ctx, 2)

		// Assert
		require.NoError(t, err)
		inner()
	})

	t.Run("should return the context error when canceled while waiting", func(t *testing.T) {
		// Arrange
		locker := NewKeyedLocker(mockcore.NewQuietLogger())
		_, release, err := locker.Acquire(context.Background(), 3)
		require.NoError(t, err)
		defer release()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		// Act
		_, _, err = locker.Acquire(ctx, 3)

		// Assert
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("should release partially acquired keys on cancellation", func(t *testing.T) {
		// Arrange
		locker := NewKeyedLocker(mockcore.NewQuietLogger())
		_, holdTwo, err := locker.Acquire(context.Background(), 2)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, _, err = locker.Acquire(ctx, 1, 2)
		require.Error(t, err)
		holdTwo()

		// Act
		_, release, err := locker.Acquire(context.Background(), 1)

		// Assert
		require.NoError(t, err)
		release()
	})

	t.Run("should forget keys once the last holder releases them", func(t *testing.T) {
		// Arrange
		locker := NewKeyedLocker(mockcore.NewQuietLogger())
		var wg sync.WaitGroup

		// Act
		for i := 0; i < 200; i++ {
			wg.Add(1)
			go func(user uint64) {
				defer wg.Done()
				_, release, err := locker.Acquire(context.Background(), user, user+1)
				if err == nil {
					release()
				}
			}(uint64(i % 20))
		}
		wg.Wait()

		// Assert
		assert.Equal(t, 0, locker.tracked())
	})

	t.Run("should keep a key while another caller waits for it", func(t *testing.T) {
		// Arrange
		locker := NewKeyedLocker(mockcore.NewQuietLogger())
		_, release, err := locker.Acquire(context.Background(), 9)
		require.NoError(t, err)

		acquired := make(chan func())
		go func() {
			_, next, err := locker.Acquire(context.Background(), 9)
			if err == nil {
				acquired <- next
			}
		}()
		require.Eventually(t, func() bool {
			locker.mu.Lock()
			defer locker.mu.Unlock()
			return locker.slots[9] != nil && locker.slots[9].refs == 2
		}, time.Second, time.Millisecond)

		// Act
		release()
		next := <-acquired

		// Assert
		assert.Equal(t, 1, locker.tracked())
		next()
		assert.Equal(t, 0, locker.tracked())
	})

	t.Run("should drop the slot of a caller that gave up waiting", func(t *testing.T) {
		// Arrange
		locker := NewKeyedLocker(mockcore.NewQuietLogger())
		_, release, err := locker.Acquire(context.Background(), 4)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		// Act
		_, _, err = locker.Acquire(ctx, 4, 5)
		release()

		// Assert
		require.Error(t, err)
		assert.Equal(t, 0, locker.tracked())
	})
}
