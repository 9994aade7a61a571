package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// Withdraw is a debit event
type Withdraw struct {
	ID             uint64    `json:"withdraw_id"`
	UserID         uint64    `json:"user_id"`
	WithdrawAmount int64     `json:"withdraw_amount"`
	WithdrawTime   time.Time `json:"withdraw_time"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewWithdraw validates and builds a withdraw record. at must not be after now.
func NewWithdraw(userID uint64, amount int64, at, now time.Time) (*Withdraw, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if at.After(now) {
		return nil, errs.ErrFutureTime
	}

	return &Withdraw{
		UserID:         userID,
		WithdrawAmount: amount,
		WithdrawTime:   at,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
