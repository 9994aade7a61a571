package model

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// Transfer represents the database model for a transfer between two users
type Transfer struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	TransferFrom   uint64    `gorm:"not null;index"`
	TransferTo     uint64    `gorm:"not null;index"`
	TransferAmount int64     `gorm:"not null"`
	TransferTime   time.Time `gorm:"not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName specifies the table name for Transfer
func (Transfer) TableName() string {
	return "transfers"
}

// NewTransfer converts a domain transfer into a row
func NewTransfer(t *entity.Transfer) *Transfer {
	return &Transfer{
		ID:             t.ID,
		TransferFrom:   t.TransferFrom,
		TransferTo:     t.TransferTo,
		TransferAmount: t.TransferAmount,
		TransferTime:   t.TransferTime,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

// ToEntity converts the row to a domain transfer
func (t *Transfer) ToEntity() *entity.Transfer {
	return &entity.Transfer{
		ID:             t.ID,
		TransferFrom:   t.TransferFrom,
		TransferTo:     t.TransferTo,
		TransferAmount: t.TransferAmount,
		TransferTime:   t.TransferTime,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}
