package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	EntityTypeUser     EntityType = "user"
	EntityTypeSaldo    EntityType = "saldo"
	EntityTypeTopup    EntityType = "topup"
	EntityTypeTransfer EntityType = "transfer"
	EntityTypeWithdraw EntityType = "withdraw"
)

// MapError maps a gorm or driver error into the domain taxonomy:
// missing rows become the entity's not-found error, unique violations become ErrDuplicateRecord,
// everything else is wrapped in a StorageError.
func MapError(err error, operation string, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entityType)
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		return errs.ErrDuplicateRecord

	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset"):
		return errs.NewStorageError(operation, string(entityType), errors.Join(errs.ErrDatabaseConnection, err))

	default:
		return errs.NewStorageError(operation, string(entityType), err)
	}
}

func notFound(entityType EntityType) error {
	switch entityType {
	case EntityTypeUser:
		return errs.ErrUserNotFound
	case EntityTypeSaldo:
		return errs.ErrSaldoNotFound
	case EntityTypeTopup:
		return errs.ErrTopupNotFound
	case EntityTypeTransfer:
		return errs.ErrTransferNotFound
	case EntityTypeWithdraw:
		return errs.ErrWithdrawNotFound
	default:
		return errs.ErrNotFound
	}
}
