package persistence

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// UserRepository reads users owned by the account subsystem
type UserRepository interface {
	// FindByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - StorageError: If the query fails
	FindByID(ctx context.Context, id uint64) (*entity.User, error)
}
