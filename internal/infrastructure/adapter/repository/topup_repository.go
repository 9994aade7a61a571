package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
)

// TopupRepository persists topup records using GORM
type TopupRepository struct {
	base
}

// NewTopupRepository creates a new TopupRepository instance
func NewTopupRepository(db *gorm.DB, logger coreport.Logger) *TopupRepository {
	return &TopupRepository{base{db: db, logger: logger, entity: database.EntityTypeTopup}}
}

// FindAll returns one page of topups whose topup_no starts with the search term
func (r *TopupRepository) FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Topup, int64, error) {
	rows, total, err := findPage[model.Topup](r.conn(ctx), query, searchByNumber)
	if err != nil {
		return nil, 0, r.fail("list topups", err, map[string]any{"search": query.Search})
	}
	return convertAll(rows, (*model.Topup).ToEntity), total, nil
}

func (r *TopupRepository) FindByID(ctx context.Context, id uint64) (*entity.Topup, error) {
	var row model.Topup
	if err := r.conn(ctx).First(&row, id).Error; err != nil {
		return nil, r.fail("find topup", err, map[string]any{"topup_id": id})
	}
	return row.ToEntity(), nil
}

func (r *TopupRepository) FindByUserID(ctx context.Context, userID uint64) (*entity.Topup, error) {
	var row model.Topup
	if err := r.conn(ctx).Where("user_id = ?", userID).Order("id DESC").First(&row).Error; err != nil {
		return nil, r.fail("find topup by user", err, map[string]any{"user_id": userID})
	}
	return row.ToEntity(), nil
}

func (r *TopupRepository) FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Topup, error) {
	var rows []model.Topup
	if err := r.conn(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, r.fail("find topups by user", err, map[string]any{"user_id": userID})
	}
	return convertAll(rows, (*model.Topup).ToEntity), nil
}

// Create inserts the topup. A reused topup_no maps to ErrDuplicateRecord.
func (r *TopupRepository) Create(ctx context.Context, topup *entity.Topup) error {
	row := model.NewTopup(topup)
	if err := r.conn(ctx).Create(row).Error; err != nil {
		return r.fail("create topup", err, map[string]any{"user_id": topup.UserID, "topup_no": topup.TopupNo})
	}
	topup.ID = row.ID
	return nil
}

func (r *TopupRepository) Update(ctx context.Context, topup *entity.Topup) error {
	result := r.conn(ctx).Model(&model.Topup{}).
		Where("id = ?", topup.ID).
		Updates(map[string]any{
			"topup_amount": topup.TopupAmount,
			"topup_method": topup.TopupMethod,
			"updated_at":   topup.UpdatedAt,
		})
	return r.affected(result, "update topup", map[string]any{"topup_id": topup.ID})
}

func (r *TopupRepository) Delete(ctx context.Context, id uint64) error {
	return r.affected(r.conn(ctx).Delete(&model.Topup{}, id), "delete topup", map[string]any{"topup_id": id})
}
