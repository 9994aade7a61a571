package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
)

// WithdrawRepository persists withdraw records using GORM
type WithdrawRepository struct {
	base
}

// NewWithdrawRepository creates a new WithdrawRepository instance
func NewWithdrawRepository(db *gorm.DB, logger coreport.Logger) *WithdrawRepository {
	return &WithdrawRepository{base{db: db, logger: logger, entity: database.EntityTypeWithdraw}}
}

func (r *WithdrawRepository) FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Withdraw, int64, error) {
	rows, total, err := findPage[model.Withdraw](r.conn(ctx), query, searchByUserID)
	if err != nil {
		return nil, 0, r.fail("list withdraws", err, map[string]any{"search": query.Search})
	}
	return convertAll(rows, (*model.Withdraw).ToEntity), total, nil
}

func (r *WithdrawRepository) FindByID(ctx context.Context, id uint64) (*entity.Withdraw, error) {
	var row model.Withdraw
	if err := r.conn(ctx).First(&row, id).Error; err != nil {
		return nil, r.fail("find withdraw", err, map[string]any{"withdraw_id": id})
	}
	return row.ToEntity(), nil
}

func (r *WithdrawRepository) FindByUserID(ctx context.Context, userID uint64) (*entity.Withdraw, error) {
	var row model.Withdraw
	if err := r.conn(ctx).Where("user_id = ?", userID).Order("id DESC").First(&row).Error; err != nil {
		return nil, r.fail("find withdraw by user", err, map[string]any{"user_id": userID})
	}
	return row.ToEntity(), nil
}

func (r *WithdrawRepository) FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Withdraw, error) {
	var rows []model.Withdraw
	if err := r.conn(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, r.fail("find withdraws by user", err, map[string]any{"user_id": userID})
	}
	return convertAll(rows, (*model.Withdraw).ToEntity), nil
}

func (r *WithdrawRepository) Create(ctx context.Context, withdraw *entity.Withdraw) error {
	row := model.NewWithdraw(withdraw)
	if err := r.conn(ctx).Create(row).Error; err != nil {
		return r.fail("create withdraw", err, map[string]any{"user_id": withdraw.UserID})
	}
	withdraw.ID = row.ID
	return nil
}

func (r *WithdrawRepository) Update(ctx context.Context, withdraw *entity.Withdraw) error {
	result := r.conn(ctx).Model(&model.Withdraw{}).
		Where("id = ?", withdraw.ID).
		Updates(map[string]any{
			"withdraw_amount": withdraw.WithdrawAmount,
			"withdraw_time":   withdraw.WithdrawTime,
			"updated_at":      withdraw.UpdatedAt,
		})
	return r.affected(result, "update withdraw", map[string]any{"withdraw_id": withdraw.ID})
}

func (r *WithdrawRepository) Delete(ctx context.Context, id uint64) error {
	return r.affected(r.conn(ctx).Delete(&model.Withdraw{}, id), "delete withdraw", map[string]any{"withdraw_id": id})
}
