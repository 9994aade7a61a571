package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
)

// UserRepository reads account owners using GORM
type UserRepository struct {
	base
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{base{db: db, logger: logger, entity: database.EntityTypeUser}}
}

// FindByID retrieves a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	var row model.User
	if err := r.conn(ctx).First(&row, id).Error; err != nil {
		return nil, r.fail("find user", err, map[string]any{"user_id": id})
	}
	return row.ToEntity(), nil
}
