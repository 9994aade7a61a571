package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
)

// TransferRepository persists transfer records using GORM. User lookups match the sender.
type TransferRepository struct {
	base
}

// NewTransferRepository creates a new TransferRepository instance
func NewTransferRepository(db *gorm.DB, logger coreport.Logger) *TransferRepository {
	return &TransferRepository{base{db: db, logger: logger, entity: database.EntityTypeTransfer}}
}

func (r *TransferRepository) FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Transfer, int64, error) {
	rows, total, err := findPage[model.Transfer](r.conn(ctx), query, searchBySender)
	if err != nil {
		return nil, 0, r.fail("list transfers", err, map[string]any{"search": query.Search})
	}
	return convertAll(rows, (*model.Transfer).ToEntity), total, nil
}

func (r *TransferRepository) FindByID(ctx context.Context, id uint64) (*entity.Transfer, error) {
	var row model.Transfer
	if err := r.conn(ctx).First(&row, id).Error; err != nil {
		return nil, r.fail("find transfer", err, map[string]any{"transfer_id": id})
	}
	return row.ToEntity(), nil
}

func (r *TransferRepository) FindByUserID(ctx context.Context, userID uint64) (*entity.Transfer, error) {
	var row model.Transfer
	if err := r.conn(ctx).Where("transfer_from = ?", userID).Order("id DESC").First(&row).Error; err != nil {
		return nil, r.fail("find transfer by sender", err, map[string]any{"user_id": userID})
	}
	return row.ToEntity(), nil
}

func (r *TransferRepository) FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Transfer, error) {
	var rows []model.Transfer
	if err := r.conn(ctx).Where("transfer_from = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, r.fail("find transfers by sender", err, map[string]any{"user_id": userID})
	}
	return convertAll(rows, (*model.Transfer).ToEntity), nil
}

func (r *TransferRepository) Create(ctx context.Context, transfer *entity.Transfer) error {
	row := model.NewTransfer(transfer)
	if err := r.conn(ctx).Create(row).Error; err != nil {
		return r.fail("create transfer", err, map[string]any{
			"transfer_from": transfer.TransferFrom,
			"transfer_to":   transfer.TransferTo,
		})
	}
	transfer.ID = row.ID
	return nil
}

func (r *TransferRepository) Update(ctx context.Context, transfer *entity.Transfer) error {
	result := r.conn(ctx).Model(&model.Transfer{}).
		Where("id = ?", transfer.ID).
		Updates(map[string]any{
			"transfer_amount": transfer.TransferAmount,
			"updated_at":      transfer.UpdatedAt,
		})
	return r.affected(result, "update transfer", map[string]any{"transfer_id": transfer.ID})
}

func (r *TransferRepository) Delete(ctx context.Context, id uint64) error {
	return r.affected(r.conn(ctx).Delete(&model.Transfer{}, id), "delete transfer", map[string]any{"transfer_id": id})
}
