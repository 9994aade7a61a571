package withdraw

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/observe"
)

// Ledger is the part of the saldo service a withdrawal needs
type Ledger interface {
	Current(ctx context.Context, userID uint64) (*entity.Saldo, error)
	Withdraw(ctx context.Context, userID uint64, amount int64, at time.Time) (*entity.Saldo, error)
	AmendWithdraw(ctx context.Context, userID uint64, oldAmount, newAmount int64, at time.Time) (*entity.Saldo, error)
	SetAbsolute(ctx context.Context, userID uint64, total int64) (*entity.Saldo, error)
}

// UseCase debits user balances for payouts
type UseCase struct {
	ledger       Ledger
	withdrawRepo persistence.WithdrawRepository
	userRepo     persistence.UserRepository
	store        cache.Store
	locker       *ledger.KeyedLocker
	env          *observe.Envelope
	policy       ledger.Policy
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates a new withdraw UseCase
func NewUseCase(
	balances Ledger,
	withdrawRepo persistence.WithdrawRepository,
	userRepo persistence.UserRepository,
	store cache.Store,
	locker *ledger.KeyedLocker,
	env *observe.Envelope,
	policy ledger.Policy,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		ledger:       balances,
		withdrawRepo: withdrawRepo,
		userRepo:     userRepo,
		store:        store,
		locker:       locker,
		env:          env,
		policy:       policy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List returns one page of withdrawals filtered by user ID prefix
func (u *UseCase) List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Withdraw], error) {
	query = query.Normalize()
	call := observe.Call{Name: "FindAllWithdraw", Method: observe.MethodGet, Attrs: map[string]any{
		"page": query.Page, "page_size": query.PageSize, "search": query.Search,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Page[*entity.Withdraw], error) {
		return ledger.ReadThrough(ctx, u.store, ledger.ListKey(ledger.KindWithdraw, query), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Page[*entity.Withdraw], error) {
				items, total, err := u.withdrawRepo.FindAll(ctx, query)
				if err != nil {
					return nil, err
				}
				return &entity.Page[*entity.Withdraw]{Items: items, Pagination: entity.NewPagination(query, total)}, nil
			})
	})
}

// Get returns a withdrawal by ID
func (u *UseCase) Get(ctx context.Context, id uint64) (*entity.Withdraw, error) {
	call := observe.Call{Name: "FindByIdWithdraw", Method: observe.MethodGet, Attrs: map[string]any{"withdraw_id": id}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Withdraw, error) {
		if id == 0 {
			return nil, errs.ErrInvalidID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.DetailKey(ledger.KindWithdraw, id), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Withdraw, error) {
				return u.withdrawRepo.FindByID(ctx, id)
			})
	})
}

// GetByUser returns the most recent withdrawal of a user
func (u *UseCase) GetByUser(ctx context.Context, userID uint64) (*entity.Withdraw, error) {
	call := observe.Call{Name: "FindByUserIdWithdraw", Method: observe.MethodGet, Attrs: map[string]any{"user_id": userID}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Withdraw, error) {
		if userID == 0 {
			return nil, errs.ErrInvalidUserID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.UserKey(ledger.KindWithdraw, userID), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Withdraw, error) {
				return u.withdrawRepo.FindByUserID(ctx, userID)
			})
	})
}

// GetByUsers returns every withdrawal of a user
func (u *UseCase) GetByUsers(ctx context.Context, userID uint64) ([]*entity.Withdraw, error) {
	call := observe.Call{Name: "FindByUsersIdWithdraw", Method: observe.MethodGet, Attrs: map[string]any{"user_id": userID}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) ([]*entity.Withdraw, error) {
		if userID == 0 {
			return nil, errs.ErrInvalidUserID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.UsersKey(ledger.KindWithdraw, userID), u.policy.CacheTTL,
			func(ctx context.Context) ([]*entity.Withdraw, error) {
				return u.withdrawRepo.FindByUsersID(ctx, userID)
			})
	})
}

func (u *UseCase) evict(ctx context.Context, w *entity.Withdraw) {
	ledger.Evict(ctx, u.store, ledger.KindWithdraw, w.ID, w.UserID)
}
