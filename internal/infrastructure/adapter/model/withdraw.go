package model

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// Withdraw represents the database model for a debit event
type Withdraw struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	UserID         uint64    `gorm:"not null;index"`
	WithdrawAmount int64     `gorm:"not null"`
	WithdrawTime   time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for Withdraw
func (Withdraw) TableName() string {
	return "withdraws"
}

// NewWithdraw converts a domain withdraw into a row
func NewWithdraw(w *entity.Withdraw) *Withdraw {
	return &Withdraw{
		ID:             w.ID,
		UserID:         w.UserID,
		WithdrawAmount: w.WithdrawAmount,
		WithdrawTime:   w.WithdrawTime,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}

// ToEntity converts the row to a domain withdraw
func (w *Withdraw) ToEntity() *entity.Withdraw {
	return &entity.Withdraw{
		ID:             w.ID,
		UserID:         w.UserID,
		WithdrawAmount: w.WithdrawAmount,
		WithdrawTime:   w.WithdrawTime,
		CreatedAt:      w.CreatedAt,
		UpdatedAt:      w.UpdatedAt,
	}
}
