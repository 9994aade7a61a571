package model

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// Topup represents the database model for a credit event
type Topup struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	UserID      uint64    `gorm:"not null;index"`
	TopupNo     string    `gorm:"uniqueIndex;not null;size:255"`
	TopupAmount int64     `gorm:"not null"`
	TopupMethod string    `gorm:"not null;size:50"`
	TopupTime   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for Topup
func (Topup) TableName() string {
	return "topups"
}

// NewTopup converts a domain topup into a row
func NewTopup(t *entity.Topup) *Topup {
	return &Topup{
		ID:          t.ID,
		UserID:      t.UserID,
		TopupNo:     t.TopupNo,
		TopupAmount: t.TopupAmount,
		TopupMethod: t.TopupMethod,
		TopupTime:   t.TopupTime,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// ToEntity converts the row to a domain topup
func (t *Topup) ToEntity() *entity.Topup {
	return &entity.Topup{
		ID:          t.ID,
		UserID:      t.UserID,
		TopupNo:     t.TopupNo,
		TopupAmount: t.TopupAmount,
		TopupMethod: t.TopupMethod,
		TopupTime:   t.TopupTime,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
