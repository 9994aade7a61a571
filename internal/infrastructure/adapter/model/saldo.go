package model

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// Saldo represents the database model for a user balance
type Saldo struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	UserID         uint64 `gorm:"not null;uniqueIndex"`
	TotalBalance   int64  `gorm:"not null;check:total_balance >= 0"`
	WithdrawAmount *int64
	WithdrawTime   *time.Time
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for Saldo
func (Saldo) TableName() string {
	return "saldos"
}

// NewSaldo converts a domain saldo into a row
func NewSaldo(s *entity.Saldo) *Saldo {
	return &Saldo{
		ID:             s.ID,
		UserID:         s.UserID,
		TotalBalance:   s.TotalBalance,
		WithdrawAmount: s.WithdrawAmount,
		WithdrawTime:   s.WithdrawTime,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// ToEntity converts the row to a domain saldo
func (s *Saldo) ToEntity() *entity.Saldo {
	return &entity.Saldo{
		ID:             s.ID,
		UserID:         s.UserID,
		TotalBalance:   s.TotalBalance,
		WithdrawAmount: s.WithdrawAmount,
		WithdrawTime:   s.WithdrawTime,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
