package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// Topup is a credit event
type Topup struct {
	ID          uint64    `json:"topup_id"`
	UserID      uint64    `json:"user_id"`
	TopupNo     string    `json:"topup_no"`
	TopupAmount int64     `json:"topup_amount"`
	TopupMethod string    `json:"topup_method"`
	TopupTime   time.Time `json:"topup_time"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTopup validates and builds a topup record
func NewTopup(userID uint64, topupNo string, amount int64, method string, now time.Time) (*Topup, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if amount <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if strings.TrimSpace(topupNo) == "" || strings.TrimSpace(method) == "" {
		return nil, errs.ErrInvalidRequest
	}

	return &Topup{
		UserID:      userID,
		TopupNo:     topupNo,
		TopupAmount: amount,
		TopupMethod: method,
		TopupTime:   now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
