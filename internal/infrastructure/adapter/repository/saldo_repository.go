package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
)

// SaldoRepository persists balances using GORM
type SaldoRepository struct {
	base
}

// NewSaldoRepository creates a new SaldoRepository instance
func NewSaldoRepository(db *gorm.DB, logger coreport.Logger) *SaldoRepository {
	return &SaldoRepository{base{db: db, logger: logger, entity: database.EntityTypeSaldo}}
}

// FindAll returns one page of saldos whose user id starts with the search term
func (r *SaldoRepository) FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Saldo, int64, error) {
	rows, total, err := findPage[model.Saldo](r.conn(ctx), query, searchByUserID)
	if err != nil {
		return nil, 0, r.fail("list saldos", err, map[string]any{"search": query.Search})
	}
	return convertAll(rows, (*model.Saldo).ToEntity), total, nil
}

// FindByID retrieves a saldo by its ID
func (r *SaldoRepository) FindByID(ctx context.Context, id uint64) (*entity.Saldo, error) {
	var row model.Saldo
	if err := r.conn(ctx).First(&row, id).Error; err != nil {
		return nil, r.fail("find saldo", err, map[string]any{"saldo_id": id})
	}
	return row.ToEntity(), nil
}

// FindByUserID retrieves the most recent saldo of a user
func (r *SaldoRepository) FindByUserID(ctx context.Context, userID uint64) (*entity.Saldo, error) {
	var row model.Saldo
	err := r.conn(ctx).Where("user_id = ?", userID).Order("id DESC").First(&row).Error
	if err != nil {
		return nil, r.fail("find saldo by user", err, map[string]any{"user_id": userID})
	}
	return row.ToEntity(), nil
}

// FindByUsersID retrieves all saldos of a user
func (r *SaldoRepository) FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Saldo, error) {
	var rows []model.Saldo
	if err := r.conn(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, r.fail("find saldos by user", err, map[string]any{"user_id": userID})
	}
	return convertAll(rows, (*model.Saldo).ToEntity), nil
}

// LockByUserID loads the user's saldo with SELECT ... FOR UPDATE inside the unit of work in ctx
func (r *SaldoRepository) LockByUserID(ctx context.Context, userID uint64) (*entity.Saldo, error) {
	if !database.InTransaction(ctx) {
		r.logger.Warn("Row lock requested outside a unit of work", map[string]any{"user_id": userID})
	}

	var row model.Saldo
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("id DESC").
		First(&row).Error
	if err != nil {
		return nil, r.fail("lock saldo", err, map[string]any{"user_id": userID})
	}
	return row.ToEntity(), nil
}

// LockByID loads one saldo with SELECT ... FOR UPDATE inside the unit of work in ctx
func (r *SaldoRepository) LockByID(ctx context.Context, id uint64) (*entity.Saldo, error) {
	if !database.InTransaction(ctx) {
		r.logger.Warn("Row lock requested outside a unit of work", map[string]any{"saldo_id": id})
	}

	var row model.Saldo
	if err := r.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&row, id).Error; err != nil {
		return nil, r.fail("lock saldo", err, map[string]any{"saldo_id": id})
	}
	return row.ToEntity(), nil
}

// Create inserts the saldo and sets its ID
func (r *SaldoRepository) Create(ctx context.Context, saldo *entity.Saldo) error {
	row := model.NewSaldo(saldo)
	if err := r.conn(ctx).Create(row).Error; err != nil {
		return r.fail("create saldo", err, map[string]any{"user_id": saldo.UserID})
	}

	saldo.ID = row.ID
	r.logger.Debug("Saldo created", map[string]any{"saldo_id": row.ID, "user_id": row.UserID})
	return nil
}

// Save writes total, withdraw annotation and updated_at
func (r *SaldoRepository) Save(ctx context.Context, saldo *entity.Saldo) error {
	result := r.conn(ctx).Model(&model.Saldo{}).
		Where("id = ?", saldo.ID).
		Updates(map[string]any{
			"total_balance":   saldo.TotalBalance,
			"withdraw_amount": saldo.WithdrawAmount,
			"withdraw_time":   saldo.WithdrawTime,
			"updated_at":      saldo.UpdatedAt,
		})
	return r.affected(result, "update saldo", map[string]any{"saldo_id": saldo.ID, "user_id": saldo.UserID})
}

// Delete removes a saldo by ID
func (r *SaldoRepository) Delete(ctx context.Context, id uint64) error {
	result := r.conn(ctx).Delete(&model.Saldo{}, id)
	return r.affected(result, "delete saldo", map[string]any{"saldo_id": id})
}
