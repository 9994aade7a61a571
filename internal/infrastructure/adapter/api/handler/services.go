package handler

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// SaldoService is the balance API the saldo handler needs
type SaldoService interface {
	List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Saldo], error)
	Get(ctx context.Context, id uint64) (*entity.Saldo, error)
	GetByUser(ctx context.Context, userID uint64) (*entity.Saldo, error)
	GetByUsers(ctx context.Context, userID uint64) ([]*entity.Saldo, error)
	Create(ctx context.Context, userID uint64, totalBalance int64) (*entity.Saldo, error)
	ApplyFloorUpdate(ctx context.Context, id uint64, amount *int64, at *time.Time) (*entity.Saldo, error)
	Withdraw(ctx context.Context, userID uint64, amount int64, at time.Time) (*entity.Saldo, error)
	Delete(ctx context.Context, id uint64) error
}

// TopupService is the topup API the topup handler needs
type TopupService interface {
	List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Topup], error)
	Get(ctx context.Context, id uint64) (*entity.Topup, error)
	GetByUser(ctx context.Context, userID uint64) (*entity.Topup, error)
	GetByUsers(ctx context.Context, userID uint64) ([]*entity.Topup, error)
	Create(ctx context.Context, userID uint64, topupNo string, amount int64, method string) (*entity.Topup, error)
	Update(ctx context.Context, id uint64, amount int64, method string) (*entity.Topup, error)
	Delete(ctx context.Context, userID uint64) error
}

// TransferService is the transfer API the transfer handler needs
type TransferService interface {
	List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Transfer], error)
	Get(ctx context.Context, id uint64) (*entity.Transfer, error)
	GetByUser(ctx context.Context, userID uint64) (*entity.Transfer, error)
	GetByUsers(ctx context.Context, userID uint64) ([]*entity.Transfer, error)
	Create(ctx context.Context, from, to uint64, amount int64) (*entity.Transfer, error)
	Update(ctx context.Context, id uint64, amount int64) (*entity.Transfer, error)
	Delete(ctx context.Context, userID uint64) error
}

// WithdrawService is the withdraw API the withdraw handler needs
type WithdrawService interface {
	List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Withdraw], error)
	Get(ctx context.Context, id uint64) (*entity.Withdraw, error)
	GetByUser(ctx context.Context, userID uint64) (*entity.Withdraw, error)
	GetByUsers(ctx context.Context, userID uint64) ([]*entity.Withdraw, error)
	Create(ctx context.Context, userID uint64, amount int64, at time.Time) (*entity.Withdraw, error)
	Update(ctx context.Context, id uint64, amount int64, at time.Time) (*entity.Withdraw, error)
	Delete(ctx context.Context, userID uint64) error
}
