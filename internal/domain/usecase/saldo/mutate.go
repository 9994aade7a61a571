package saldo

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
)

// rowLoader loads the saldo to mutate inside the unit of work in ctx
type rowLoader func(ctx context.Context) (*entity.Saldo, error)

// mutate runs fn on the user's latest saldo. See mutateRow.
func (u *UseCase) mutate(
	ctx context.Context,
	userID uint64,
	op string,
	fn func(s *entity.Saldo) error,
) (*entity.Saldo, error) {
	return u.mutateRow(ctx, userID, op, func(ctx context.Context) (*entity.Saldo, error) {
		return u.saldoRepo.LockByUserID(ctx, userID)
	}, fn)
}

// mutateRow runs fn on the row load returns, under the owner's per-balance lock and a
// row-locked unit of work, then persists and evicts. fn must leave the saldo unchanged
// when it returns an error.
func (u *UseCase) mutateRow(
	ctx context.Context,
	userID uint64,
	op string,
	load rowLoader,
	fn func(s *entity.Saldo) error,
) (*entity.Saldo, error) {
	ctx, release, err := u.locker.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	txCtx, err := u.uow.Begin(ctx)
	if err != nil {
		u.logger.Error("Failed to begin saldo transaction", map[string]any{
			"user_id":   userID,
			"operation": op,
			"error":     err.Error(),
		})
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := u.uow.Rollback(txCtx); rbErr != nil {
				u.logger.Error("Failed to rollback saldo transaction", map[string]any{
					"user_id": userID,
					"error":   rbErr.Error(),
				})
			}
		}
	}()

	saldo, err := load(txCtx)
	if err != nil {
		return nil, err
	}

	before := saldo.TotalBalance
	if err := fn(saldo); err != nil {
		u.logger.Warn("Saldo mutation rejected", map[string]any{
			"user_id":   userID,
			"operation": op,
			"balance":   before,
			"error":     err.Error(),
		})
		return nil, err
	}

	if err := u.saldoRepo.Save(txCtx, saldo); err != nil {
		u.logger.Error("Failed to save saldo", map[string]any{
			"user_id":   userID,
			"operation": op,
			"error":     err.Error(),
		})
		return nil, err
	}

	if err := u.uow.Commit(txCtx); err != nil {
		u.logger.Error("Failed to commit saldo transaction", map[string]any{
			"user_id":   userID,
			"operation": op,
			"error":     err.Error(),
		})
		return nil, err
	}
	committed = true

	u.evict(ctx, saldo)

	u.logger.Info("Saldo updated", map[string]any{
		"user_id":     userID,
		"operation":   op,
		"old_balance": before,
		"new_balance": saldo.TotalBalance,
	})

	return saldo, nil
}

func (u *UseCase) evict(ctx context.Context, saldo *entity.Saldo) {
	ledger.Evict(ctx, u.store, ledger.KindSaldo, saldo.ID, saldo.UserID)
}
