package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// Transfer is a paired debit/credit event between two users
type Transfer struct {
	ID             uint64    `json:"transfer_id"`
	TransferFrom   uint64    `json:"transfer_from"`
	TransferTo     uint64    `json:"transfer_to"`
	TransferAmount int64     `json:"transfer_amount"`
	TransferTime   time.Time `json:"transfer_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewTransfer validates and builds a transfer record
func NewTransfer(from, to uint64, amount int64, now time.Time) (*Transfer, error) {
	if from == 0 || to == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if from == to {
		return nil, errs.ErrSelfTransfer
	}
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	return &Transfer{
		TransferFrom:   from,
		TransferTo:     to,
		TransferAmount: amount,
		TransferTime:   now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
