package saldo

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

// UseCase is the balance ledger service. All balance mutations go through it.
type UseCase struct {
	uow          persistence.UnitOfWork
	saldoRepo    persistence.SaldoRepository
	userRepo     persistence.UserRepository
	store        cache.Store
	locker       *ledger.KeyedLocker
	env          *observe.Envelope
	policy       ledger.Policy
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUseCase creates a new saldo UseCase
func NewUseCase(
	uow persistence.UnitOfWork,
	saldoRepo persistence.SaldoRepository,
	userRepo persistence.UserRepository,
	store cache.Store,
	locker *ledger.KeyedLocker,
	env *observe.Envelope,
	policy ledger.Policy,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UseCase {
	return &UseCase{
		uow:          uow,
		saldoRepo:    saldoRepo,
		userRepo:     userRepo,
		store:        store,
		locker:       locker,
		env:          env,
		policy:       policy,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List returns one page of saldos filtered by user ID prefix
func (u *UseCase) List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Saldo], error) {
	query = query.Normalize()
	call := observe.Call{Name: "FindAllSaldo", Method: observe.MethodGet, Attrs: map[string]any{
		"page": query.Page, "page_size": query.PageSize, "search": query.Search,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Page[*entity.Saldo], error) {
		return ledger.ReadThrough(ctx, u.store, ledger.ListKey(ledger.KindSaldo, query), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Page[*entity.Saldo], error) {
				items, total, err := u.saldoRepo.FindAll(ctx, query)
				if err != nil {
					u.logger.Error("Failed to list saldos", map[string]any{"error": err.Error()})
					return nil, err
				}
				return &entity.Page[*entity.Saldo]{Items: items, Pagination: entity.NewPagination(query, total)}, nil
			})
	})
}

// Get returns a saldo by ID
func (u *UseCase) Get(ctx context.Context, id uint64) (*entity.Saldo, error) {
	call := observe.Call{Name: "FindByIdSaldo", Method: observe.MethodGet, Attrs: map[string]any{"saldo_id": id}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Saldo, error) {
		if id == 0 {
			return nil, errs.ErrInvalidID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.DetailKey(ledger.KindSaldo, id), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Saldo, error) {
				return u.saldoRepo.FindByID(ctx, id)
			})
	})
}

// GetByUser returns the most recent saldo of a user
func (u *UseCase) GetByUser(ctx context.Context, userID uint64) (*entity.Saldo, error) {
	call := observe.Call{Name: "FindByUserIdSaldo", Method: observe.MethodGet, Attrs: map[string]any{"user_id": userID}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Saldo, error) {
		if userID == 0 {
			return nil, errs.ErrInvalidUserID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.UserKey(ledger.KindSaldo, userID), u.policy.CacheTTL,
			func(ctx context.Context) (*entity.Saldo, error) {
				return u.saldoRepo.FindByUserID(ctx, userID)
			})
	})
}

// GetByUsers returns every saldo of a user
func (u *UseCase) GetByUsers(ctx context.Context, userID uint64) ([]*entity.Saldo, error) {
	call := observe.Call{Name: "FindByUsersIdSaldo", Method: observe.MethodGet, Attrs: map[string]any{"user_id": userID}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) ([]*entity.Saldo, error) {
		if userID == 0 {
			return nil, errs.ErrInvalidUserID
		}
		return ledger.ReadThrough(ctx, u.store, ledger.UsersKey(ledger.KindSaldo, userID), u.policy.CacheTTL,
			func(ctx context.Context) ([]*entity.Saldo, error) {
				return u.saldoRepo.FindByUsersID(ctx, userID)
			})
	})
}

// Current reads the user's saldo from the store, bypassing the cache.
// Sagas use it for their pre-checks.
func (u *UseCase) Current(ctx context.Context, userID uint64) (*entity.Saldo, error) {
	call := observe.Call{Name: "CurrentSaldo", Method: observe.MethodGet, Attrs: map[string]any{"user_id": userID}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Saldo, error) {
		return u.saldoRepo.FindByUserID(ctx, userID)
	})
}
