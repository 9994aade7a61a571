package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// WithdrawRepository persists withdraw records
type WithdrawRepository interface {
	// FindAll returns one page of withdrawals filtered by user ID prefix, and the total count
	FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Withdraw, int64, error)

	// FindByID retrieves a withdrawal by ID
	//
	// Possible errors:
	// - ErrWithdrawNotFound: If no withdrawal has this ID
	// - StorageError: If the query fails
	FindByID(ctx context.Context, id uint64) (*entity.Withdraw, error)

	// FindByUserID retrieves the most recent withdrawal of a user
	FindByUserID(ctx context.Context, userID uint64) (*entity.Withdraw, error)

	// FindByUsersID retrieves all withdrawals of a user
	FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Withdraw, error)

	Create(ctx context.Context, withdraw *entity.Withdraw) error
	Update(ctx context.Context, withdraw *entity.Withdraw) error
	Delete(ctx context.Context, id uint64) error
}
