package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// TransferRepository persists transfer records
type TransferRepository interface {
	// FindAll returns one page of transfers filtered by sender ID prefix, and the total count
	FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Transfer, int64, error)

	// FindByID retrieves a transfer by ID
	//
	// Possible errors:
	// - ErrTransferNotFound: If no transfer has this ID
	// - StorageError: If the query fails
	FindByID(ctx context.Context, id uint64) (*entity.Transfer, error)

	// FindByUserID retrieves the most recent transfer sent by a user
	FindByUserID(ctx context.Context, userID uint64) (*entity.Transfer, error)

	// FindByUsersID retrieves all transfers sent by a user
	FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Transfer, error)

	Create(ctx context.Context, transfer *entity.Transfer) error
	Update(ctx context.Context, transfer *entity.Transfer) error
	Delete(ctx context.Context, id uint64) error
}
