package withdraw

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/observe"
)

// Create records a withdrawal and debits it from the user's saldo under the floor guard.
// A balance that cannot cover the amount is rejected before anything is written.
func (u *UseCase) Create(ctx context.Context, userID uint64, amount int64, at time.Time) (*entity.Withdraw, error) {
	call := observe.Call{Name: "CreateWithdraw", Method: observe.MethodPost, Attrs: map[string]any{
		"user_id": userID, "withdraw_amount": amount,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Withdraw, error) {
		withdraw, err := entity.NewWithdraw(userID, amount, at, u.timeProvider.Now())
		if err != nil {
			return nil, err
		}
		if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
			return nil, err
		}

		ctx, release, err := u.locker.Acquire(ctx, userID)
		if err != nil {
			return nil, err
		}
		defer release()

		saldo, err := u.ledger.Current(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !saldo.CanSpend(amount, u.policy.Floor) {
			u.logger.Warn("Withdraw rejected: insufficient balance", map[string]any{
				"user_id": userID,
				"amount":  amount,
				"balance": saldo.TotalBalance,
			})
			return nil, errs.NewInsufficientBalanceError(userID, amount, saldo.TotalBalance, u.policy.Floor)
		}

		saga := ledger.NewSaga("withdraw.create", u.logger).
			Then("create_record",
				func(ctx context.Context) error {
					return u.withdrawRepo.Create(ctx, withdraw)
				},
				func(ctx context.Context) error {
					return u.withdrawRepo.Delete(ctx, withdraw.ID)
				}).
			Then("debit_saldo",
				func(ctx context.Context) error {
					_, err := u.ledger.Withdraw(ctx, userID, amount, at)
					return err
				},
				nil)

		err = saga.Run(ctx)
		u.evict(ctx, withdraw)
		if err != nil {
			return nil, err
		}

		u.logger.Info("Withdraw completed", map[string]any{
			"withdraw_id": withdraw.ID,
			"user_id":     userID,
			"amount":      amount,
		})
		return withdraw, nil
	})
}

// Update changes a withdrawal. The balance moves by exactly the old amount minus the new one.
func (u *UseCase) Update(ctx context.Context, id uint64, newAmount int64, at time.Time) (*entity.Withdraw, error) {
	call := observe.Call{Name: "UpdateWithdraw", Method: observe.MethodPut, Attrs: map[string]any{
		"withdraw_id": id, "withdraw_amount": newAmount,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Withdraw, error) {
		if newAmount <= 0 {
			return nil, errs.ErrInvalidAmount
		}
		if at.After(u.timeProvider.Now()) {
			return nil, errs.ErrFutureTime
		}

		withdraw, err := u.withdrawRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		ctx, release, err := u.locker.Acquire(ctx, withdraw.UserID)
		if err != nil {
			return nil, err
		}
		defer release()

		old := *withdraw
		var before int64
		saga := ledger.NewSaga("withdraw.update", u.logger).
			Then("update_record",
				func(ctx context.Context) error {
					withdraw.WithdrawAmount = newAmount
					withdraw.WithdrawTime = at
					withdraw.UpdatedAt = u.timeProvider.Now()
					return u.withdrawRepo.Update(ctx, withdraw)
				},
				func(ctx context.Context) error {
					restored := old
					return u.withdrawRepo.Update(ctx, &restored)
				}).
			Then("amend_saldo",
				func(ctx context.Context) error {
					s, err := u.ledger.AmendWithdraw(ctx, old.UserID, old.WithdrawAmount, newAmount, at)
					if err != nil {
						return err
					}
					before = s.TotalBalance - (old.WithdrawAmount - newAmount)
					return nil
				},
				func(ctx context.Context) error {
					_, err := u.ledger.SetAbsolute(ctx, old.UserID, before)
					return err
				})

		err = saga.Run(ctx)
		u.evict(ctx, withdraw)
		if err != nil {
			return nil, err
		}

		u.logger.Info("Withdraw updated", map[string]any{
			"withdraw_id": id,
			"old_amount":  old.WithdrawAmount,
			"new_amount":  newAmount,
		})
		return withdraw, nil
	})
}

// Delete removes the most recent withdrawal of userID. Balances are not reversed.
func (u *UseCase) Delete(ctx context.Context, userID uint64) error {
	call := observe.Call{Name: "DeleteWithdraw", Method: observe.MethodDelete, Attrs: map[string]any{"user_id": userID}}

	_, err := observe.Run(ctx, u.env, call, func(ctx context.Context) (struct{}, error) {
		if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
			return struct{}{}, err
		}

		withdraw, err := u.withdrawRepo.FindByUserID(ctx, userID)
		if err != nil {
			return struct{}{}, err
		}
		if err := u.withdrawRepo.Delete(ctx, withdraw.ID); err != nil {
			return struct{}{}, err
		}

		u.evict(ctx, withdraw)
		u.logger.Info("Withdraw deleted", map[string]any{"withdraw_id": withdraw.ID, "user_id": userID})
		return struct{}{}, nil
	})
	return err
}
