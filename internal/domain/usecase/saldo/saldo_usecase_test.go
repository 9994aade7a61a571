package saldo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/cache"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger/ledgertest"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/observe"
	mockcache "github.com/amirhossein-jamali/payment-ledger/mocks/port/cache"
	mockcore "github.com/amirhossein-jamali/payment-ledger/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/payment-ledger/mocks/port/persistence"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCase(
	uow persistence.UnitOfWork,
	saldoRepo persistence.SaldoRepository,
	userRepo persistence.UserRepository,
	store cache.Store,
) *UseCase {
	logger := mockcore.NewQuietLogger()
	clock := mockcore.NewFixedTimeProvider(fixedTime)
	env := observe.NewEnvelope(observe.NopMetrics{}, observe.NopTracer{}, logger, clock)
	return NewUseCase(uow, saldoRepo, userRepo, store, ledger.NewKeyedLocker(logger), env, ledger.DefaultPolicy(), clock, logger)
}

func lockedUnitOfWork() *mockpersistence.MockUnitOfWork {
	uow := new(mockpersistence.MockUnitOfWork)
	uow.On("Begin", mock.Anything).Return(context.Background(), nil)
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	return uow
}

func TestUseCase_ApplyFloorUpdate(t *testing.T) {
	ctx := context.Background()
	saldoID := uint64(1)
	userID := uint64(3)
	withdrawTime := fixedTime.Add(-time.Hour)

	t.Run("should reject an update that breaches the floor and leave the balance unchanged", func(t *testing.T) {
		// Arrange
		saldoRepo := new(mockpersistence.MockSaldoRepository)
		uow := lockedUnitOfWork()
		current := &entity.Saldo{ID: saldoID, UserID: userID, TotalBalance: 200000}
		saldoRepo.On("FindByID", mock.Anything, saldoID).Return(&entity.Saldo{ID: saldoID, UserID: userID, TotalBalance: 200000}, nil).Once()
		saldoRepo.On("LockByID", mock.Anything, saldoID).Return(current, nil).Once()

		useCase := newTestUseCase(uow, saldoRepo, new(mockpersistence.MockUserRepository), mockcache.NewMissingStore())
		amount := int64(160000)

		// Act
		saldo, err := useCase.ApplyFloorUpdate(ctx, saldoID, &amount, &withdrawTime)

		// Assert
		assert.Nil(t, saldo)
		assert.True(t, errs.IsInsufficientBalanceError(err))
		assert.True(t, errs.IsBusinessRuleError(err))
		assert.Equal(t, int64(200000), current.TotalBalance)
		assert.Nil(t, current.WithdrawAmount)
		saldoRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		saldoRepo.AssertNotCalled(t, "LockByUserID", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		uow.AssertCalled(t, "Rollback", mock.Anything)
	})

	t.Run("should debit and annotate the addressed saldo when the floor holds", func(t *testing.T) {
		// Arrange
		saldoRepo := new(mockpersistence.MockSaldoRepository)
		uow := lockedUnitOfWork()
		store := mockcache.NewMissingStore()
		current := &entity.Saldo{ID: saldoID, UserID: userID, TotalBalance: 200000}
		saldoRepo.On("FindByID", mock.Anything, saldoID).Return(&entity.Saldo{ID: saldoID, UserID: userID, TotalBalance: 200000}, nil).Once()
		saldoRepo.On("LockByID", mock.Anything, saldoID).Return(current, nil).Once()
		saldoRepo.On("Save", mock.Anything, mock.AnythingOfType("*entity.Saldo")).Return(nil).Once()

		useCase := newTestUseCase(uow, saldoRepo, new(mockpersistence.MockUserRepository), store)
		amount := int64(60000)

		// Act
		saldo, err := useCase.ApplyFloorUpdate(ctx, saldoID, &amount, &withdrawTime)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(140000), saldo.TotalBalance)
		require.NotNil(t, saldo.WithdrawAmount)
		assert.Equal(t, amount, *saldo.WithdrawAmount)
		assert.Equal(t, withdrawTime, *saldo.WithdrawTime)
		uow.AssertCalled(t, "Commit", mock.Anything)
		store.AssertCalled(t, "DeletePrefix", mock.Anything, "saldos:")
		saldoRepo.AssertExpectations(t)
	})

	t.Run("should default an omitted withdrawal to zero at the current time", func(t *testing.T) {
		// Arrange
		store := ledgertest.NewSaldoStore(map[uint64]int64{userID: 70000})
		useCase := newTestUseCase(ledgertest.NopUnitOfWork{}, store, ledgertest.NewUsers(userID), ledgertest.NewCache())

		// Act
		saldo, err := useCase.ApplyFloorUpdate(ctx, saldoID, nil, nil)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(70000), saldo.TotalBalance)
		require.NotNil(t, saldo.WithdrawAmount)
		assert.Equal(t, int64(0), *saldo.WithdrawAmount)
		assert.Equal(t, fixedTime, *saldo.WithdrawTime)
	})

	t.Run("should reject a saldo already below the floor even without a withdrawal", func(t *testing.T) {
		// Arrange
		store := ledgertest.NewSaldoStore(map[uint64]int64{userID: 20000})
		useCase := newTestUseCase(ledgertest.NopUnitOfWork{}, store, ledgertest.NewUsers(userID), ledgertest.NewCache())

		// Act
		_, err := useCase.ApplyFloorUpdate(ctx, saldoID, nil, nil)

		// Assert
		assert.True(t, errs.IsInsufficientBalanceError(err))
		assert.Equal(t, int64(20000), store.Total(userID))
	})

	t.Run("should return not found for an unknown saldo", func(t *testing.T) {
		// Arrange
		store := ledgertest.NewSaldoStore(map[uint64]int64{userID: 70000})
		useCase := newTestUseCase(ledgertest.NopUnitOfWork{}, store, ledgertest.NewUsers(userID), ledgertest.NewCache())

		// Act
		_, err := useCase.ApplyFloorUpdate(ctx, 99, nil, nil)

		// Assert
		assert.ErrorIs(t, err, errs.ErrSaldoNotFound)
	})

	t.Run("should require amount and time together", func(t *testing.T) {
		// Arrange
		saldoRepo := new(mockpersistence.MockSaldoRepository)
		useCase := newTestUseCase(lockedUnitOfWork(), saldoRepo, new(mockpersistence.MockUserRepository), mockcache.NewMissingStore())
		amount := int64(60000)

		// Act
		_, err := useCase.ApplyFloorUpdate(ctx, saldoID, &amount, nil)

		// Assert
		assert.ErrorIs(t, err, errs.ErrWithdrawAnnotation)
		saldoRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		saldoRepo.AssertNotCalled(t, "LockByID", mock.Anything, mock.Anything)
	})
}

func TestUseCase_Withdraw(t *testing.T) {
	ctx := context.Background()
	withdrawTime := fixedTime.Add(-time.Hour)

	t.Run("should debit the user's saldo down to the floor", func(t *testing.T) {
		// Arrange
		store := ledgertest.NewSaldoStore(map[uint64]int64{4: 110000})
		useCase := newTestUseCase(ledgertest.NopUnitOfWork{}, store, ledgertest.NewUsers(4), ledgertest.NewCache())

		// Act
		saldo, err := useCase.Withdraw(ctx, 4, 60000, withdrawTime)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(50000), saldo.TotalBalance)
		assert.Equal(t, withdrawTime, *saldo.WithdrawTime)
	})

	t.Run("should reject a debit below the floor and leave the balance unchanged", func(t *testing.T) {
		// Arrange
		store := ledgertest.NewSaldoStore(map[uint64]int64{4: 50000})
		useCase := newTestUseCase(ledgertest.NopUnitOfWork{}, store, ledgertest.NewUsers(4), ledgertest.NewCache())

		// Act
		_, err := useCase.Withdraw(ctx, 4, 80000, withdrawTime)

		// Assert
		assert.True(t, errs.IsInsufficientBalanceError(err))
		assert.Equal(t, int64(50000), store.Total(4))
	})
}

func TestUseCase_AdjustBalance(t *testing.T) {
	ctx := context.Background()
	userID := uint64(5)

	testCases := []struct {
		name     string
		balance  int64
		delta    int64
		guard    entity.Guard
		expected int64
		wantErr  error
	}{
		{"floor guard allows a debit down to the floor", 110000, -60000, entity.GuardFloor, 50000, nil},
		{"floor guard rejects a debit below the floor", 100000, -60000, entity.GuardFloor, 100000, errs.ErrInsufficientBalance},
		{"non-negative guard allows a debit below the floor", 30000, -20000, entity.GuardNonNegative, 10000, nil},
		{"non-negative guard rejects an overdraft", 10000, -20000, entity.GuardNonNegative, 10000, errs.ErrInsufficientBalance},
		{"credits are never rejected", 0, 25000, entity.GuardFloor, 25000, nil},
	}

	for _, tc := range testCases {
		t.Run("should apply: "+tc.name, func(t *testing.T) {
			// Arrange
			saldoRepo := new(mockpersistence.MockSaldoRepository)
			current := &entity.Saldo{ID: 1, UserID: userID, TotalBalance: tc.balance}
			saldoRepo.On("LockByUserID", mock.Anything, userID).Return(current, nil)
			saldoRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()

			useCase := newTestUseCase(lockedUnitOfWork(), saldoRepo, new(mockpersistence.MockUserRepository), mockcache.NewMissingStore())

			// Act
			_, err := useCase.AdjustBalance(ctx, userID, tc.delta, tc.guard)

			// Assert
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				saldoRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expected, current.TotalBalance)
		})
	}
}

func TestUseCase_SetAbsolute(t *testing.T) {
	t.Run("should reject negative totals", func(t *testing.T) {
		// Arrange
		saldoRepo := new(mockpersistence.MockSaldoRepository)
		saldoRepo.On("LockByUserID", mock.Anything, uint64(1)).Return(&entity.Saldo{ID: 1, UserID: 1, TotalBalance: 10}, nil)
		useCase := newTestUseCase(lockedUnitOfWork(), saldoRepo, new(mockpersistence.MockUserRepository), mockcache.NewMissingStore())

		// Act
		_, err := useCase.SetAbsolute(context.Background(), 1, -1)

		// Assert
		assert.ErrorIs(t, err, errs.ErrNegativeBalance)
	})

	t.Run("should overwrite below the floor", func(t *testing.T) {
		// Arrange
		saldoRepo := new(mockpersistence.MockSaldoRepository)
		saldoRepo.On("LockByUserID", mock.Anything, uint64(1)).Return(&entity.Saldo{ID: 1, UserID: 1, TotalBalance: 90000}, nil)
		saldoRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		useCase := newTestUseCase(lockedUnitOfWork(), saldoRepo, new(mockpersistence.MockUserRepository), mockcache.NewMissingStore())

		// Act
		saldo, err := useCase.SetAbsolute(context.Background(), 1, 1000)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1000), saldo.TotalBalance)
	})
}

func TestUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("should reject a total below the floor", func(t *testing.T) {
		// Arrange
		userRepo := new(mockpersistence.MockUserRepository)
		useCase := newTestUseCase(lockedUnitOfWork(), new(mockpersistence.MockSaldoRepository), userRepo, mockcache.NewMissingStore())

		// Act
		_, err := useCase.Create(ctx, 1, 49999)

		// Assert
		assert.ErrorIs(t, err, errs.ErrBelowFloor)
		assert.True(t, errs.IsValidationError(err))
		userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("should return not found for a missing user", func(t *testing.T) {
		// Arrange
		userRepo := new(mockpersistence.MockUserRepository)
		userRepo.On("FindByID", ctx, uint64(9)).Return(nil, errs.ErrUserNotFound)
		useCase := newTestUseCase(lockedUnitOfWork(), new(mockpersistence.MockSaldoRepository), userRepo, mockcache.NewMissingStore())

		// Act
		_, err := useCase.Create(ctx, 9, 50000)

		// Assert
		assert.True(t, errs.IsNotFoundError(err))
	})

	t.Run("should reject a second saldo for the same user", func(t *testing.T) {
		// Arrange
		userRepo := new(mockpersistence.MockUserRepository)
		saldoRepo := new(mockpersistence.MockSaldoRepository)
		userRepo.On("FindByID", ctx, uint64(2)).Return(&entity.User{ID: 2}, nil)
		saldoRepo.On("FindByUserID", mock.Anything, uint64(2)).Return(&entity.Saldo{ID: 4, UserID: 2}, nil)
		useCase := newTestUseCase(lockedUnitOfWork(), saldoRepo, userRepo, mockcache.NewMissingStore())

		// Act
		_, err := useCase.Create(ctx, 2, 75000)

		// Assert
		assert.ErrorIs(t, err, errs.ErrSaldoExists)
		saldoRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should create a saldo for an existing user", func(t *testing.T) {
		// Arrange
		userRepo := new(mockpersistence.MockUserRepository)
		saldoRepo := new(mockpersistence.MockSaldoRepository)
		userRepo.On("FindByID", ctx, uint64(2)).Return(&entity.User{ID: 2}, nil)
		saldoRepo.On("FindByUserID", mock.Anything, uint64(2)).Return(nil, errs.ErrSaldoNotFound)
		saldoRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Saldo")).
			Run(func(args mock.Arguments) { args.Get(1).(*entity.Saldo).ID = 11 }).
			Return(nil)
		useCase := newTestUseCase(lockedUnitOfWork(), saldoRepo, userRepo, mockcache.NewMissingStore())

		// Act
		saldo, err := useCase.Create(ctx, 2, 75000)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, uint64(11), saldo.ID)
		assert.Equal(t, int64(75000), saldo.TotalBalance)
		assert.Equal(t, fixedTime, saldo.CreatedAt)
	})
}

func TestUseCase_Deposit(t *testing.T) {
	t.Run("should open a saldo seeded at the amount when none exists", func(t *testing.T) {
		// Arrange
		store := ledgertest.NewSaldoStore(nil)
		useCase := newTestUseCase(ledgertest.NopUnitOfWork{}, store, ledgertest.NewUsers(8), ledgertest.NewCache())

		// Act
		saldo, opened, err := useCase.Deposit(context.Background(), 8, 1500)

		// Assert
		require.NoError(t, err)
		assert.True(t, opened)
		assert.Equal(t, int64(1500), saldo.TotalBalance)
		assert.Equal(t, int64(1500), store.Total(8))
	})

	t.Run("should credit an existing saldo", func(t *testing.T) {
		// Arrange
		store := ledgertest.NewSaldoStore(map[uint64]int64{8: 100000})
		useCase := newTestUseCase(ledgertest.NopUnitOfWork{}, store, ledgertest.NewUsers(8), ledgertest.NewCache())

		// Act
		saldo, opened, err := useCase.Deposit(context.Background(), 8, 1500)

		// Assert
		require.NoError(t, err)
		assert.False(t, opened)
		assert.Equal(t, int64(101500), saldo.TotalBalance)
	})
}

func TestUseCase_List(t *testing.T) {
	t.Run("should serve the second identical listing from the cache", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		saldoRepo := new(mockpersistence.MockSaldoRepository)
		query := entity.PageQuery{Page: 1, PageSize: 10}
		saldoRepo.On("FindAll", mock.Anything, query).
			Return([]*entity.Saldo{{ID: 1, UserID: 1, TotalBalance: 60000}}, int64(1), nil).Once()
		cacheStore := ledgertest.NewCache()
		useCase := newTestUseCase(lockedUnitOfWork(), saldoRepo, new(mockpersistence.MockUserRepository), cacheStore)

		// Act
		first, err := useCase.List(ctx, entity.PageQuery{})
		require.NoError(t, err)
		second, err := useCase.List(ctx, entity.PageQuery{})
		require.NoError(t, err)

		// Assert
		saldoRepo.AssertNumberOfCalls(t, "FindAll", 1)
		assert.Equal(t, first.Pagination, second.Pagination)
		assert.Equal(t, 1, second.Pagination.TotalPages)
		assert.True(t, cacheStore.Has("saldos:page=1:size=10:search="))
	})

	t.Run("should not cache loader failures", func(t *testing.T) {
		// Arrange
		saldoRepo := new(mockpersistence.MockSaldoRepository)
		storageErr := errs.NewStorageError("find all", "saldo", errors.New("down"))
		saldoRepo.On("FindAll", mock.Anything, mock.Anything).Return(nil, int64(0), storageErr)
		cacheStore := ledgertest.NewCache()
		useCase := newTestUseCase(lockedUnitOfWork(), saldoRepo, new(mockpersistence.MockUserRepository), cacheStore)

		// Act
		_, err := useCase.List(context.Background(), entity.PageQuery{})

		// Assert
		assert.True(t, errs.IsStorageError(err))
		assert.False(t, cacheStore.Has("saldos:page=1:size=10:search="))
	})

	t.Run("should evict cached reads after a mutation", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		store := ledgertest.NewSaldoStore(map[uint64]int64{1: 100000})
		cacheStore := ledgertest.NewCache()
		useCase := newTestUseCase(ledgertest.NopUnitOfWork{}, store, ledgertest.NewUsers(1), cacheStore)

		before, err := useCase.GetByUser(ctx, 1)
		require.NoError(t, err)
		require.True(t, cacheStore.Has("saldo_user:id=1"))

		// Act
		_, err = useCase.AdjustBalance(ctx, 1, 5000, entity.GuardNonNegative)
		require.NoError(t, err)
		after, err := useCase.GetByUser(ctx, 1)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(100000), before.TotalBalance)
		assert.Equal(t, int64(105000), after.TotalBalance)
	})
}

func TestUseCase_ConcurrentAdjustments(t *testing.T) {
	t.Run("should not lose updates under concurrent debits and credits", func(t *testing.T) {
		// Arrange
		ctx := context.Background()
		store := ledgertest.NewSaldoStore(map[uint64]int64{1: 1000000})
		useCase := newTestUseCase(ledgertest.NopUnitOfWork{}, store, ledgertest.NewUsers(1), ledgertest.NewCache())

		var wg sync.WaitGroup

		// Act
		for i := 0; i < 100; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = useCase.AdjustBalance(ctx, 1, -3000, entity.GuardFloor)
			}()
			go func() {
				defer wg.Done()
				_, _ = useCase.AdjustBalance(ctx, 1, 1000, entity.GuardNonNegative)
			}()
		}
		wg.Wait()

		// Assert
		assert.Equal(t, int64(1000000-100*3000+100*1000), store.Total(1))
	})
}
