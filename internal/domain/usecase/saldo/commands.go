package saldo

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/observe"
)

// Create opens a saldo for an existing user. The initial total must reach the floor.
func (u *UseCase) Create(ctx context.Context, userID uint64, totalBalance int64) (*entity.Saldo, error) {
	call := observe.Call{Name: "CreateSaldo", Method: observe.MethodPost, Attrs: map[string]any{
		"user_id": userID, "total_balance": totalBalance,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Saldo, error) {
		if userID == 0 {
			return nil, errs.ErrInvalidUserID
		}
		if totalBalance < u.policy.Floor {
			return nil, errs.ErrBelowFloor
		}
		if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
			return nil, err
		}

		ctx, release, err := u.locker.Acquire(ctx, userID)
		if err != nil {
			return nil, err
		}
		defer release()

		if _, err := u.saldoRepo.FindByUserID(ctx, userID); err == nil {
			return nil, errs.ErrSaldoExists
		} else if !errors.Is(err, errs.ErrSaldoNotFound) {
			return nil, err
		}

		saldo, err := entity.NewSaldo(userID, totalBalance, u.timeProvider.Now())
		if err != nil {
			return nil, err
		}
		if err := u.saldoRepo.Create(ctx, saldo); err != nil {
			u.logger.Error("Failed to create saldo", map[string]any{
				"user_id": userID,
				"error":   err.Error(),
			})
			return nil, err
		}

		u.evict(ctx, saldo)
		u.logger.Info("Saldo created", map[string]any{
			"saldo_id":      saldo.ID,
			"user_id":       userID,
			"total_balance": totalBalance,
		})
		return saldo, nil
	})
}

// Deposit credits amount to the user's saldo, opening one seeded at amount when the user has none.
// opened reports whether a new saldo was created.
func (u *UseCase) Deposit(ctx context.Context, userID uint64, amount int64) (saldo *entity.Saldo, opened bool, err error) {
	call := observe.Call{Name: "DepositSaldo", Method: observe.MethodPut, Attrs: map[string]any{
		"user_id": userID, "amount": amount,
	}}

	saldo, err = observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Saldo, error) {
		if amount <= 0 {
			return nil, errs.ErrInvalidAmount
		}

		ctx, release, err := u.locker.Acquire(ctx, userID)
		if err != nil {
			return nil, err
		}
		defer release()

		s, err := u.mutate(ctx, userID, "deposit", func(s *entity.Saldo) error {
			return s.Adjust(amount, 0, u.timeProvider.Now())
		})
		if !errors.Is(err, errs.ErrSaldoNotFound) {
			return s, err
		}

		s, err = u.open(ctx, userID, amount)
		opened = err == nil
		return s, err
	})
	return saldo, opened, err
}

// open must be called with the user's lock held
func (u *UseCase) open(ctx context.Context, userID uint64, amount int64) (*entity.Saldo, error) {
	saldo, err := entity.NewSaldo(userID, amount, u.timeProvider.Now())
	if err != nil {
		return nil, err
	}
	if err := u.saldoRepo.Create(ctx, saldo); err != nil {
		return nil, err
	}

	u.evict(ctx, saldo)
	u.logger.Info("Saldo opened by deposit", map[string]any{
		"saldo_id": saldo.ID,
		"user_id":  userID,
		"amount":   amount,
	})
	return saldo, nil
}

// ApplyFloorUpdate subtracts a withdrawal from the saldo with the given ID and records it.
// The result must reach the floor. With both arguments nil the amount is zero and the time
// is now, so the call only re-checks the floor and stamps the annotation.
func (u *UseCase) ApplyFloorUpdate(
	ctx context.Context,
	id uint64,
	withdrawAmount *int64,
	withdrawTime *time.Time,
) (*entity.Saldo, error) {
	call := observe.Call{Name: "UpdateSaldo", Method: observe.MethodPut, Attrs: map[string]any{"saldo_id": id}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Saldo, error) {
		if (withdrawAmount == nil) != (withdrawTime == nil) {
			return nil, errs.ErrWithdrawAnnotation
		}

		current, err := u.saldoRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		load := func(ctx context.Context) (*entity.Saldo, error) {
			return u.saldoRepo.LockByID(ctx, id)
		}
		return u.mutateRow(ctx, current.UserID, "apply_floor_update", load, func(s *entity.Saldo) error {
			now := u.timeProvider.Now()
			amount, at := int64(0), now
			if withdrawAmount != nil {
				amount, at = *withdrawAmount, *withdrawTime
			}
			return s.Settle(amount, at, u.policy.Floor, now)
		})
	})
}

// Withdraw debits amount from the user's latest saldo and records it. The result must reach the floor.
func (u *UseCase) Withdraw(ctx context.Context, userID uint64, amount int64, at time.Time) (*entity.Saldo, error) {
	call := observe.Call{Name: "WithdrawSaldo", Method: observe.MethodPost, Attrs: map[string]any{
		"user_id": userID, "withdraw_amount": amount,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Saldo, error) {
		return u.mutate(ctx, userID, "withdraw", func(s *entity.Saldo) error {
			return s.Withdraw(amount, at, u.policy.Floor, u.timeProvider.Now())
		})
	})
}

// AdjustBalance applies a signed delta. Debits are rejected when the result would fall below guard's minimum.
func (u *UseCase) AdjustBalance(ctx context.Context, userID uint64, delta int64, guard entity.Guard) (*entity.Saldo, error) {
	call := observe.Call{Name: "AdjustSaldo", Method: observe.MethodPut, Attrs: map[string]any{
		"user_id": userID, "delta": delta, "guard": guard.String(),
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Saldo, error) {
		return u.mutate(ctx, userID, "adjust", func(s *entity.Saldo) error {
			return s.Adjust(delta, guard.Minimum(u.policy.Floor), u.timeProvider.Now())
		})
	})
}

// AmendWithdraw moves the balance by exactly oldAmount-newAmount and re-annotates the withdrawal.
func (u *UseCase) AmendWithdraw(
	ctx context.Context,
	userID uint64,
	oldAmount, newAmount int64,
	at time.Time,
) (*entity.Saldo, error) {
	call := observe.Call{Name: "AmendSaldoWithdraw", Method: observe.MethodPut, Attrs: map[string]any{
		"user_id": userID, "old_amount": oldAmount, "new_amount": newAmount,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Saldo, error) {
		return u.mutate(ctx, userID, "amend_withdraw", func(s *entity.Saldo) error {
			return s.AmendWithdraw(oldAmount, newAmount, at, u.policy.Floor, u.timeProvider.Now())
		})
	})
}

// SetAbsolute overwrites the user's total. Only negative totals are rejected.
func (u *UseCase) SetAbsolute(ctx context.Context, userID uint64, total int64) (*entity.Saldo, error) {
	call := observe.Call{Name: "SetSaldoBalance", Method: observe.MethodPut, Attrs: map[string]any{
		"user_id": userID, "total_balance": total,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Saldo, error) {
		return u.mutate(ctx, userID, "set_absolute", func(s *entity.Saldo) error {
			return s.Overwrite(total, u.timeProvider.Now())
		})
	})
}

// Delete removes a saldo by ID
func (u *UseCase) Delete(ctx context.Context, id uint64) error {
	call := observe.Call{Name: "DeleteSaldo", Method: observe.MethodDelete, Attrs: map[string]any{"saldo_id": id}}

	_, err := observe.Run(ctx, u.env, call, func(ctx context.Context) (struct{}, error) {
		saldo, err := u.saldoRepo.FindByID(ctx, id)
		if err != nil {
			return struct{}{}, err
		}

		ctx, release, err := u.locker.Acquire(ctx, saldo.UserID)
		if err != nil {
			return struct{}{}, err
		}
		defer release()

		if err := u.saldoRepo.Delete(ctx, id); err != nil {
			u.logger.Error("Failed to delete saldo", map[string]any{
				"saldo_id": id,
				"error":    err.Error(),
			})
			return struct{}{}, err
		}

		u.evict(ctx, saldo)
		u.logger.Info("Saldo deleted", map[string]any{"saldo_id": id, "user_id": saldo.UserID})
		return struct{}{}, nil
	})
	return err
}
