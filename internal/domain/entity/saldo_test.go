package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFloor = int64(50000)

func TestNewSaldo(t *testing.T) {
	fixedTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Valid saldo creation", func(t *testing.T) {
		saldo, err := NewSaldo(1, 75000, fixedTime)

		require.NoError(t, err)
		assert.Equal(t, uint64(1), saldo.UserID)
		assert.Equal(t, int64(75000), saldo.TotalBalance)
		assert.Nil(t, saldo.WithdrawAmount)
		assert.Equal(t, fixedTime, saldo.CreatedAt)
	})

	t.Run("Zero user ID should return error", func(t *testing.T) {
		saldo, err := NewSaldo(0, 75000, fixedTime)

		assert.ErrorIs(t, err, errs.ErrInvalidUserID)
		assert.Nil(t, saldo)
	})

	t.Run("Negative total should return error", func(t *testing.T) {
		saldo, err := NewSaldo(1, -1, fixedTime)

		assert.ErrorIs(t, err, errs.ErrNegativeBalance)
		assert.Nil(t, saldo)
	})
}

func TestSaldoAdjust(t *testing.T) {
	now := time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)

	t.Run("Credit is never rejected", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 10}

		err := saldo.Adjust(60000, GuardFloor.Minimum(testFloor), now)

		require.NoError(t, err)
		assert.Equal(t, int64(60010), saldo.TotalBalance)
		assert.Equal(t, now, saldo.UpdatedAt)
	})

	t.Run("Debit down to the floor is allowed", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 110000}

		err := saldo.Adjust(-60000, GuardFloor.Minimum(testFloor), now)

		require.NoError(t, err)
		assert.Equal(t, int64(50000), saldo.TotalBalance)
	})

	t.Run("Debit below the floor leaves the saldo unchanged", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 100000}

		err := saldo.Adjust(-60000, GuardFloor.Minimum(testFloor), now)

		assert.True(t, errs.IsInsufficientBalanceError(err))
		assert.Equal(t, int64(100000), saldo.TotalBalance)
		assert.True(t, saldo.UpdatedAt.IsZero())
	})

	t.Run("Non-negative guard allows spending below the floor", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 30000}

		err := saldo.Adjust(-30000, GuardNonNegative.Minimum(testFloor), now)

		require.NoError(t, err)
		assert.Equal(t, int64(0), saldo.TotalBalance)
	})
}

func TestSaldoWithdraw(t *testing.T) {
	now := time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)
	at := now.Add(-time.Minute)

	t.Run("Withdraw debits and annotates", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 120000}

		err := saldo.Withdraw(20000, at, testFloor, now)

		require.NoError(t, err)
		assert.Equal(t, int64(100000), saldo.TotalBalance)
		require.NotNil(t, saldo.WithdrawAmount)
		assert.Equal(t, int64(20000), *saldo.WithdrawAmount)
		assert.Equal(t, at, *saldo.WithdrawTime)
	})

	t.Run("Amount greater than balance is rejected", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 50000}

		err := saldo.Withdraw(80000, at, testFloor, now)

		assert.True(t, errs.IsBusinessRuleError(err))
		assert.Equal(t, int64(50000), saldo.TotalBalance)
		assert.Nil(t, saldo.WithdrawAmount)
	})

	t.Run("Zero amount is rejected", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 120000}

		err := saldo.Withdraw(0, at, testFloor, now)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestSaldoSettle(t *testing.T) {
	now := time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)

	t.Run("Zero amount re-checks the floor and records the annotation", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 60000}

		err := saldo.Settle(0, now, testFloor, now)

		require.NoError(t, err)
		assert.Equal(t, int64(60000), saldo.TotalBalance)
		require.NotNil(t, saldo.WithdrawAmount)
		assert.Equal(t, int64(0), *saldo.WithdrawAmount)
		assert.Equal(t, now, *saldo.WithdrawTime)
	})

	t.Run("Zero amount on a total below the floor is rejected", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 49999}

		err := saldo.Settle(0, now, testFloor, now)

		assert.True(t, errs.IsInsufficientBalanceError(err))
		assert.Nil(t, saldo.WithdrawAmount)
	})

	t.Run("Negative amount is rejected", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 60000}

		err := saldo.Settle(-1, now, testFloor, now)

		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		assert.Equal(t, int64(60000), saldo.TotalBalance)
	})
}

func TestSaldoAmendWithdraw(t *testing.T) {
	now := time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)

	t.Run("Larger withdrawal debits only the difference", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 100000}

		err := saldo.AmendWithdraw(20000, 30000, now, testFloor, now)

		require.NoError(t, err)
		assert.Equal(t, int64(90000), saldo.TotalBalance)
		assert.Equal(t, int64(30000), *saldo.WithdrawAmount)
	})

	t.Run("Smaller withdrawal credits the difference", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 100000}

		err := saldo.AmendWithdraw(30000, 20000, now, testFloor, now)

		require.NoError(t, err)
		assert.Equal(t, int64(110000), saldo.TotalBalance)
	})

	t.Run("Larger withdrawal that breaches the floor is rejected", func(t *testing.T) {
		saldo := &Saldo{UserID: 1, TotalBalance: 55000}

		err := saldo.AmendWithdraw(20000, 30000, now, testFloor, now)

		assert.True(t, errs.IsInsufficientBalanceError(err))
		assert.Equal(t, int64(55000), saldo.TotalBalance)
		assert.Nil(t, saldo.WithdrawAmount)
	})
}

func TestSaldoOverwrite(t *testing.T) {
	now := time.Now()
	saldo := &Saldo{UserID: 1, TotalBalance: 100000}

	require.NoError(t, saldo.Overwrite(1000, now))
	assert.Equal(t, int64(1000), saldo.TotalBalance)

	assert.ErrorIs(t, saldo.Overwrite(-1, now), errs.ErrNegativeBalance)
	assert.Equal(t, int64(1000), saldo.TotalBalance)
}
