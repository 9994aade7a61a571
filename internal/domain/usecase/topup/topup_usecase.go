package topup

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/cache"
	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/observe"
)

// Ledger is the part of the saldo service a topup needs
type Ledger interface {
	Deposit(ctx context.Context, userID uint64, amount int64) (*entity.Saldo, bool, error)
	AdjustBalance(ctx context.Context, userID uint64, delta int64, guard entity.Guard) (*entity.Saldo, error)
	SetAbsolute(ctx context.Context, userID uint64, total int64) (*entity.Saldo, error)
	Delete(ctx context.Context, id uint64) error
}

// UseCase credits user balances from external payments
type UseCase struct {
	ledger       Ledger
	topupRepo    persistence.TopupRepository
	userRepo     persistence.UserRepository
	store        cache.Store
	locker       *ledger.KeyedLocker
	env          *observe.Envelope
	policy       ledger.Policy
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates a new topup UseCase
func NewUseCase(
	balances Ledger,
	topupRepo persistence.TopupRepository,
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
		topupRepo:    topupRepo,
		userRepo:     userRepo,
		store:        store,
		locker:       locker,
		env:          env,
		policy:       policy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List returns one page of topups filtered by topup_no prefix
func (u *UseCase) List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Topup], error) {
	query = query.Normalize()
	call := observe.Call{Name: "FindAllTopup", Method: observe.MethodGet, Attrs: map[string]any{
		"page": query.Page, "page_size": query.PageSize, "search": query.Search,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Page[*entity.Topup], error) {
		return ledger.ReadThrough(ctx, u.store, ledger.ListKey(ledger.KindTopup, query), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Page[*entity.Topup], error) {
				items, total, err := u.topupRepo.FindAll(ctx, query)
				if err != nil {
					return nil, err
				}
				return &entity.Page[*entity.Topup]{Items: items, Pagination: entity.NewPagination(query, total)}, nil
			})
	})
}

// Get returns a topup by ID
func (u *UseCase) Get(ctx context.Context, id uint64) (*entity.Topup, error) {
	call := observe.Call{Name: "FindByIdTopup", Method: observe.MethodGet, Attrs: map[string]any{"topup_id": id}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Topup, error) {
		if id == 0 {
			return nil, errs.ErrInvalidID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.DetailKey(ledger.KindTopup, id), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Topup, error) {
				return u.topupRepo.FindByID(ctx, id)
			})
	})
}

// GetByUser returns the most recent topup of a user
func (u *UseCase) GetByUser(ctx context.Context, userID uint64) (*entity.Topup, error) {
	call := observe.Call{Name: "FindByUserIdTopup", Method: observe.MethodGet, Attrs: map[string]any{"user_id": userID}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Topup, error) {
		if userID == 0 {
			return nil, errs.ErrInvalidUserID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.UserKey(ledger.KindTopup, userID), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Topup, error) {
				return u.topupRepo.FindByUserID(ctx, userID)
			})
	})
}

// GetByUsers returns every topup of a user
func (u *UseCase) GetByUsers(ctx context.Context, userID uint64) ([]*entity.Topup, error) {
	call := observe.Call{Name: "FindByUsersIdTopup", Method: observe.MethodGet, Attrs: map[string]any{"user_id": userID}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) ([]*entity.Topup, error) {
		if userID == 0 {
			return nil, errs.ErrInvalidUserID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.UsersKey(ledger.KindTopup, userID), u.policy.CacheTTL,
			func(ctx context.Context) ([]*entity.Topup, error) {
				return u.topupRepo.FindByUsersID(ctx, userID)
			})
	})
}

func (u *UseCase) evict(ctx context.Context, t *entity.Topup) {
	ledger.Evict(ctx, u.store, ledger.KindTopup, t.ID, t.UserID)
}
