package dto

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// PageRequest is the query string of every listing
type PageRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"max=100"`
}

// Query converts the request to a normalized page query
func (r PageRequest) Query() entity.PageQuery {
	return entity.PageQuery{Page: r.Page, PageSize: r.PageSize, Search: r.Search}.Normalize()
}

// CreateSaldoRequest opens a balance. The floor is checked by the service.
type CreateSaldoRequest struct {
	UserID       uint64 `json:"user_id" binding:"required,min=1"`
	TotalBalance int64  `json:"total_balance" binding:"min=0"`
}

// UpdateSaldoRequest re-checks a saldo against the floor and optionally records a withdrawal.
// TotalBalance must reach the floor; the stored total is derived from the current one.
// The service rejects an amount without a time and vice versa.
type UpdateSaldoRequest struct {
	TotalBalance   *int64     `json:"total_balance" binding:"required"`
	WithdrawAmount *int64     `json:"withdraw_amount" binding:"omitempty,min=1"`
	WithdrawTime   *time.Time `json:"withdraw_time" binding:"omitempty,notfuture"`
}

// SaldoWithdrawRequest applies a floor-checked debit to the user's saldo
type SaldoWithdrawRequest struct {
	UserID         uint64    `json:"user_id" binding:"required,min=1"`
	WithdrawAmount int64     `json:"withdraw_amount" binding:"required,min=1"`
	WithdrawTime   time.Time `json:"withdraw_time" binding:"required,notfuture"`
}

// CreateTopupRequest credits a user. An empty topup_no is generated.
type CreateTopupRequest struct {
	UserID      uint64 `json:"user_id" binding:"required,min=1"`
	TopupNo     string `json:"topup_no" binding:"max=255"`
	TopupAmount int64  `json:"topup_amount" binding:"required,min=1"`
	TopupMethod string `json:"topup_method" binding:"required,max=50"`
}

// UpdateTopupRequest changes the amount and method of a topup
type UpdateTopupRequest struct {
	TopupAmount int64  `json:"topup_amount" binding:"required,min=1"`
	TopupMethod string `json:"topup_method" binding:"required,max=50"`
}

// CreateTransferRequest moves funds between two users
type CreateTransferRequest struct {
	TransferFrom   uint64 `json:"transfer_from" binding:"required,min=1"`
	TransferTo     uint64 `json:"transfer_to" binding:"required,min=1,nefield=TransferFrom"`
	TransferAmount int64  `json:"transfer_amount" binding:"required,min=1"`
}

// UpdateTransferRequest changes a transfer amount
type UpdateTransferRequest struct {
	TransferAmount int64 `json:"transfer_amount" binding:"required,min=1"`
}

// CreateWithdrawRequest debits a user
type CreateWithdrawRequest struct {
	UserID         uint64    `json:"user_id" binding:"required,min=1"`
	WithdrawAmount int64     `json:"withdraw_amount" binding:"required,min=1"`
	WithdrawTime   time.Time `json:"withdraw_time" binding:"required,notfuture"`
}

// UpdateWithdrawRequest changes a withdrawal amount and time
type UpdateWithdrawRequest struct {
	WithdrawAmount int64     `json:"withdraw_amount" binding:"required,min=1"`
	WithdrawTime   time.Time `json:"withdraw_time" binding:"required,notfuture"`
}
