package withdraw

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger/ledgertest"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/observe"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/saldo"
	mockcache "github.com/amirhossein-jamali/payment-ledger/mocks/port/cache"
	mockcore "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/payment-ledger/mocks/port/persistence"
	mockusecase "github.com/amirhossein-jamali/payment-ledger/mocks/usecase"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCase(balances Ledger, withdrawRepo persistence.WithdrawRepository) *UseCase {
	logger := mockcore.NewQuietLogger()
	clock := mockcore.NewFixedTimeProvider(fixedTime)
	env := observe.NewEnvelope(observe.NopMetrics{}, observe.NopTracer{}, logger, clock)
	return NewUseCase(balances, withdrawRepo, ledgertest.NewUsers(1), mockcache.NewMissingStore(),
		ledger.NewKeyedLocker(logger), env, ledger.DefaultPolicy(), clock, logger)
}

// newLedgerUseCase wires the withdraw saga to a real saldo service over an in-memory saldo store
func newLedgerUseCase(withdrawRepo persistence.WithdrawRepository, seed map[uint64]int64) (*UseCase, *ledgertest.SaldoStore) {
	logger := mockcore.NewQuietLogger()
	clock := mockcore.NewFixedTimeProvider(fixedTime)
	env := observe.NewEnvelope(observe.NopMetrics{}, observe.NopTracer{}, logger, clock)
	locker := ledger.NewKeyedLocker(logger)
	users := ledgertest.NewUsers(1)
	cacheStore := ledgertest.NewCache()
	saldos := ledgertest.NewSaldoStore(seed)
	balances := saldo.NewUseCase(ledgertest.NopUnitOfWork{}, saldos, users, cacheStore, locker, env,
		ledger.DefaultPolicy(), clock, logger)
	return NewUseCase(balances, withdrawRepo, users, cacheStore, locker, env, ledger.DefaultPolicy(), clock, logger), saldos
}

func TestUseCase_Create(t *testing.T) {
	ctx := context.Background()
	at := fixedTime.Add(-time.Minute)

	t.Run("should reject an insufficient balance and leave it untouched", func(t *testing.T) {
		// Arrange
		withdrawRepo := new(mockpersistence.MockWithdrawRepository)
		useCase, saldos := newLedgerUseCase(withdrawRepo, map[uint64]int64{1: 50000})

		// Act
		withdraw, err := useCase.Create(ctx, 1, 80000, at)

		// Assert
		assert.Nil(t, withdraw)
		assert.True(t, errs.IsInsufficientBalanceError(err))
		assert.Equal(t, int64(50000), saldos.Total(1))
		withdrawRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should record the withdrawal and debit the saldo", func(t *testing.T) {
		// Arrange
		withdrawRepo := new(mockpersistence.MockWithdrawRepository)
		withdrawRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Withdraw")).
			Run(func(args mock.Arguments) { args.Get(1).(*entity.Withdraw).ID = 4 }).Return(nil).Once()
		useCase, saldos := newLedgerUseCase(withdrawRepo, map[uint64]int64{1: 200000})

		// Act
		withdraw, err := useCase.Create(ctx, 1, 60000, at)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, uint64(4), withdraw.ID)
		assert.Equal(t, int64(140000), saldos.Total(1))
		current, _ := saldos.FindByUserID(ctx, 1)
		require.NotNil(t, current.WithdrawAmount)
		assert.Equal(t, int64(60000), *current.WithdrawAmount)
		withdrawRepo.AssertExpectations(t)
	})

	t.Run("should delete the record when the debit fails", func(t *testing.T) {
		// Arrange
		withdrawRepo := new(mockpersistence.MockWithdrawRepository)
		withdrawRepo.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { args.Get(1).(*entity.Withdraw).ID = 4 }).Return(nil).Once()
		withdrawRepo.On("Delete", mock.Anything, uint64(4)).Return(nil).Once()
		useCase, saldos := newLedgerUseCase(withdrawRepo, map[uint64]int64{1: 200000})
		saldos.SaveHook = func(*entity.Saldo) error {
			return errs.NewStorageError("save", "saldo", errors.New("deadlock detected"))
		}

		// Act
		_, err := useCase.Create(ctx, 1, 60000, at)

		// Assert
		assert.True(t, errs.IsStorageError(err))
		assert.Equal(t, int64(200000), saldos.Total(1))
		withdrawRepo.AssertExpectations(t)
	})

	t.Run("should reject a withdraw time in the future", func(t *testing.T) {
		// Arrange
		useCase := newTestUseCase(new(mockusecase.MockLedger), new(mockpersistence.MockWithdrawRepository))

		// Act
		_, err := useCase.Create(ctx, 1, 60000, fixedTime.Add(time.Hour))

		// Assert
		assert.ErrorIs(t, err, errs.ErrFutureTime)
	})
}

func TestUseCase_Update(t *testing.T) {
	ctx := context.Background()
	at := fixedTime.Add(-time.Minute)

	t.Run("should move the balance by exactly the old amount minus the new one", func(t *testing.T) {
		// Arrange
		withdrawRepo := new(mockpersistence.MockWithdrawRepository)
		withdrawRepo.On("FindByID", mock.Anything, uint64(4)).
			Return(&entity.Withdraw{ID: 4, UserID: 1, WithdrawAmount: 20000, WithdrawTime: at}, nil)
		withdrawRepo.On("Update", mock.Anything, mock.AnythingOfType("*entity.Withdraw")).Return(nil).Once()
		useCase, saldos := newLedgerUseCase(withdrawRepo, map[uint64]int64{1: 100000})

		// Act
		withdraw, err := useCase.Update(ctx, 4, 30000, at)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(30000), withdraw.WithdrawAmount)
		assert.Equal(t, int64(90000), saldos.Total(1))
		current, _ := saldos.FindByUserID(ctx, 1)
		assert.Equal(t, int64(30000), *current.WithdrawAmount)
	})

	t.Run("should credit back when the amount decreases", func(t *testing.T) {
		// Arrange
		withdrawRepo := new(mockpersistence.MockWithdrawRepository)
		withdrawRepo.On("FindByID", mock.Anything, uint64(4)).
			Return(&entity.Withdraw{ID: 4, UserID: 1, WithdrawAmount: 30000, WithdrawTime: at}, nil)
		withdrawRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()
		useCase, saldos := newLedgerUseCase(withdrawRepo, map[uint64]int64{1: 100000})

		// Act
		_, err := useCase.Update(ctx, 4, 20000, at)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(110000), saldos.Total(1))
	})

	t.Run("should restore the record when the larger debit breaches the floor", func(t *testing.T) {
		// Arrange
		withdrawRepo := new(mockpersistence.MockWithdrawRepository)
		original := entity.Withdraw{ID: 4, UserID: 1, WithdrawAmount: 20000, WithdrawTime: at}
		stored := original
		withdrawRepo.On("FindByID", mock.Anything, uint64(4)).Return(&stored, nil)
		withdrawRepo.On("Update", mock.Anything, mock.MatchedBy(func(w *entity.Withdraw) bool {
			return w.WithdrawAmount == 40000
		})).Return(nil).Once()
		withdrawRepo.On("Update", mock.Anything, mock.MatchedBy(func(w *entity.Withdraw) bool {
			return w.WithdrawAmount == original.WithdrawAmount
		})).Return(nil).Once()
		useCase, saldos := newLedgerUseCase(withdrawRepo, map[uint64]int64{1: 60000})

		// Act
		_, err := useCase.Update(ctx, 4, 40000, at)

		// Assert
		assert.True(t, errs.IsInsufficientBalanceError(err))
		assert.Equal(t, int64(60000), saldos.Total(1))
		withdrawRepo.AssertExpectations(t)
	})
}

func TestUseCase_Delete(t *testing.T) {
	t.Run("should return not found when the user has no withdrawals", func(t *testing.T) {
		// Arrange
		withdrawRepo := new(mockpersistence.MockWithdrawRepository)
		withdrawRepo.On("FindByUserID", mock.Anything, uint64(1)).Return(nil, errs.ErrWithdrawNotFound)
		useCase := newTestUseCase(new(mockusecase.MockLedger), withdrawRepo)

		// Act
		err := useCase.Delete(context.Background(), 1)

		// Assert
		assert.True(t, errs.IsNotFoundError(err))
		withdrawRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
