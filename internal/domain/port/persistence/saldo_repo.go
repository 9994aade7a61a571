package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// SaldoRepository persists user balances
type SaldoRepository interface {
	// FindAll returns one page of saldos filtered by user ID prefix, and the total count
	FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Saldo, int64, error)

	// FindByID retrieves a saldo by its ID
	//
	// Possible errors:
	// - ErrSaldoNotFound: If no saldo has this ID
	// - StorageError: If the query fails
	FindByID(ctx context.Context, id uint64) (*entity.Saldo, error)

	// FindByUserID retrieves the most recent saldo of a user
	//
	// Possible errors:
	// - ErrSaldoNotFound: If the user has no saldo
	// - StorageError: If the query fails
	FindByUserID(ctx context.Context, userID uint64) (*entity.Saldo, error)

	// FindByUsersID retrieves all saldos of a user ordered by ID
	FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Saldo, error)

	// LockByUserID loads the user's saldo with an exclusive row lock.
	// The lock is held until the unit of work in ctx finishes, so it must be called inside one.
	//
	// Possible errors:
	// - ErrSaldoNotFound: If the user has no saldo
	// - StorageError: If the query fails or the lock cannot be taken
	LockByUserID(ctx context.Context, userID uint64) (*entity.Saldo, error)

	// LockByID loads a saldo by its ID with an exclusive row lock, under the same rules as LockByUserID
	LockByID(ctx context.Context, id uint64) (*entity.Saldo, error)

	// Create inserts the saldo and sets its ID
	Create(ctx context.Context, saldo *entity.Saldo) error

	// Save writes total, withdraw annotation and updated_at of an existing saldo
	//
	// Possible errors:
	// - ErrSaldoNotFound: If the saldo no longer exists
	// - StorageError: If the update fails
	Save(ctx context.Context, saldo *entity.Saldo) error

	// Delete removes a saldo by ID
	Delete(ctx context.Context, id uint64) error
}
