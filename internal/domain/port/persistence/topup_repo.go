package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// TopupRepository persists topup records
type TopupRepository interface {
	// FindAll returns one page of topups filtered by topup_no prefix, and the total count
	FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Topup, int64, error)

	// FindByID retrieves a topup by ID
	//
	// Possible errors:
	// - ErrTopupNotFound: If no topup has this ID
	// - StorageError: If the query fails
	FindByID(ctx context.Context, id uint64) (*entity.Topup, error)

	// FindByUserID retrieves the most recent topup of a user
	FindByUserID(ctx context.Context, userID uint64) (*entity.Topup, error)

	// FindByUsersID retrieves all topups of a user
	FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Topup, error)

	// Create inserts the topup and sets its ID
	//
	// Possible errors:
	// - ErrDuplicateRecord: If topup_no is already used
	// - StorageError: If the insert fails
	Create(ctx context.Context, topup *entity.Topup) error

	// Update writes amount, method and updated_at
	Update(ctx context.Context, topup *entity.Topup) error

	// Delete removes a topup by ID
	Delete(ctx context.Context, id uint64) error
}
