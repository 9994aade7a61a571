package transfer

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

// Ledger is the part of the saldo service a transfer needs
type Ledger interface {
	Current(ctx context.Context, userID uint64) (*entity.Saldo, error)
	AdjustBalance(ctx context.Context, userID uint64, delta int64, guard entity.Guard) (*entity.Saldo, error)
	SetAbsolute(ctx context.Context, userID uint64, total int64) (*entity.Saldo, error)
}

// UseCase moves funds between two users
type UseCase struct {
	ledger       Ledger
	transferRepo persistence.TransferRepository
	userRepo     persistence.UserRepository
	store        cache.Store
	locker       *ledger.KeyedLocker
	env          *observe.Envelope
	policy       ledger.Policy
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates a new transfer UseCase
func NewUseCase(
	balances Ledger,
	transferRepo persistence.TransferRepository,
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
		transferRepo: transferRepo,
		userRepo:     userRepo,
		store:        store,
		locker:       locker,
		env:          env,
		policy:       policy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List returns one page of transfers filtered by sender ID prefix
func (u *UseCase) List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Transfer], error) {
	query = query.Normalize()
	call := observe.Call{Name: "FindAllTransfer", Method: observe.MethodGet, Attrs: map[string]any{
		"page": query.Page, "page_size": query.PageSize, "search": query.Search,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Page[*entity.Transfer], error) {
		return ledger.ReadThrough(ctx, u.store, ledger.ListKey(ledger.KindTransfer, query), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Page[*entity.Transfer], error) {
				items, total, err := u.transferRepo.FindAll(ctx, query)
				if err != nil {
					return nil, err
				}
				return &entity.Page[*entity.Transfer]{Items: items, Pagination: entity.NewPagination(query, total)}, nil
			})
	})
}

// Get returns a transfer by ID
func (u *UseCase) Get(ctx context.Context, id uint64) (*entity.Transfer, error) {
	call := observe.Call{Name: "FindByIdTransfer", Method: observe.MethodGet, Attrs: map[string]any{"transfer_id": id}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Transfer, error) {
		if id == 0 {
			return nil, errs.ErrInvalidID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.DetailKey(ledger.KindTransfer, id), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Transfer, error) {
				return u.transferRepo.FindByID(ctx, id)
			})
	})
}

// GetByUser returns the most recent transfer sent by a user
func (u *UseCase) GetByUser(ctx context.Context, userID uint64) (*entity.Transfer, error) {
	call := observe.Call{Name: "FindByUserIdTransfer", Method: observe.MethodGet, Attrs: map[string]any{"user_id": userID}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Transfer, error) {
		if userID == 0 {
			return nil, errs.ErrInvalidUserID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.UserKey(ledger.KindTransfer, userID), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Transfer, error) {
				return u.transferRepo.FindByUserID(ctx, userID)
			})
	})
}

// GetByUsers returns every transfer sent by a user
func (u *UseCase) GetByUsers(ctx context.Context, userID uint64) ([]*entity.Transfer, error) {
	call := observe.Call{Name: "FindByUsersIdTransfer", Method: observe.MethodGet, Attrs: map[string]any{"user_id": userID}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) ([]*entity.Transfer, error) {
		if userID == 0 {
			return nil, errs.ErrInvalidUserID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.UsersKey(ledger.KindTransfer, userID), u.policy.CacheTTL,
			func(ctx context.Context) ([]*entity.Transfer, error) {
				return u.transferRepo.FindByUsersID(ctx, userID)
			})
	})
}

func (u *UseCase) evict(ctx context.Context, t *entity.Transfer) {
	ledger.Evict(ctx, u.store, ledger.KindTransfer, t.ID, t.TransferFrom, t.TransferTo)
}
