package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	mockcore "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
)

func TestSaga_Run(t *testing.T) {
	record := func(trail *[]string, name string, err error) func(context.Context) error {
		return func(context.Context) error {
			*trail = append(*trail, name)
			return err
		}
	}

	t.Run("should run every step in order", func(t *testing.T) {
		// Arrange
		var trail []string
		saga := NewSaga("test", mockcore.NewQuietLogger()).
			Then("a", record(&trail, "do a", nil), record(&trail, "undo a", nil)).
			Then("b", record(&trail, "do b", nil), nil)

		// Act
		err := saga.Run(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []string{"do a", "do b"}, trail)
	})

	t.Run("should undo completed steps in reverse and return the step error", func(t *testing.T) {
		// Arrange
		var trail []string
		stepErr := errs.NewStorageError("credit", "saldo", errors.New("timeout"))
		saga := NewSaga("test", mockcore.NewQuietLogger()).
			Then("a", record(&trail, "do a", nil), record(&trail, "undo a", nil)).
			Then("b", record(&trail, "do b", nil), record(&trail, "undo b", nil)).
			Then("c", record(&trail, "do c", stepErr), record(&trail, "undo c", nil))

		// Act
		err := saga.Run(context.Background())

		// Assert
		assert.Same(t, stepErr, err)
		assert.Equal(t, []string{"do a", "do b", "do c", "undo b", "undo a"}, trail)
	})

	t.Run("should report a compensation failure and keep the cause classifiable", func(t *testing.T) {
		// Arrange
		var trail []string
		stepErr := errs.NewStorageError("credit", "saldo", errors.New("timeout"))
		saga := NewSaga("transfer.create", mockcore.NewQuietLogger()).
			Then("a", record(&trail, "do a", nil), record(&trail, "undo a", nil)).
			Then("b", record(&trail, "do b", nil), record(&trail, "undo b", errors.New("undo failed"))).
			Then("c", record(&trail, "do c", stepErr), nil)

		// Act
		err := saga.Run(context.Background())

		// Assert
		require.Error(t, err)
		assert.True(t, errs.IsCompensationFailure(err))
		assert.True(t, errs.IsStorageError(err))
		assert.Equal(t, []string{"do a", "do b", "do c", "undo b", "undo a"}, trail)

		var compErr *errs.CompensationError
		require.ErrorAs(t, err, &compErr)
		assert.Equal(t, "c", compErr.Step)
		assert.Len(t, compErr.Failures, 1)
	})

	t.Run("should keep running after the caller cancels", func(t *testing.T) {
		// Arrange
		ctx, cancel := context.WithCancel(context.Background())
		var seen []error
		observe := func(ctx context.Context) error {
			seen = append(seen, ctx.Err())
			return nil
		}
		saga := NewSaga("test", mockcore.NewQuietLogger()).
			Then("cancel", func(ctx context.Context) error {
				cancel()
				return nil
			}, nil).
			Then("after", observe, nil)

		// Act
		err := saga.Run(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []error{nil}, seen)
	})
}
