package topup

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/observe"
)

// Create records a topup and credits the user, opening a saldo when the user has none
func (u *UseCase) Create(ctx context.Context, userID uint64, topupNo string, amount int64, method string) (*entity.Topup, error) {
	call := observe.Call{Name: "CreateTopup", Method: observe.MethodPost, Attrs: map[string]any{
		"user_id": userID, "topup_no": topupNo, "topup_amount": amount, "topup_method": method,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Topup, error) {
		topup, err := entity.NewTopup(userID, topupNo, amount, method, u.timeProvider.Now())
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

		var (
			credited *entity.Saldo
			opened   bool
		)
		saga := ledger.NewSaga("topup.create", u.logger).
			Then("create_record",
				func(ctx context.Context) error {
					return u.topupRepo.Create(ctx, topup)
				},
				func(ctx context.Context) error {
					return u.topupRepo.Delete(ctx, topup.ID)
				}).
			Then("credit_saldo",
				func(ctx context.Context) error {
					s, wasOpened, err := u.ledger.Deposit(ctx, userID, amount)
					if err != nil {
						return err
					}
					credited, opened = s, wasOpened
					return nil
				},
				func(ctx context.Context) error {
					if opened {
						return u.ledger.Delete(ctx, credited.ID)
					}
					_, err := u.ledger.SetAbsolute(ctx, userID, credited.TotalBalance-amount)
					return err
				})

		err = saga.Run(ctx)
		u.evict(ctx, topup)
		if err != nil {
			return nil, err
		}

		u.logger.Info("Topup completed", map[string]any{
			"topup_id":    topup.ID,
			"user_id":     userID,
			"amount":      amount,
			"saldo_open":  opened,
			"new_balance": credited.TotalBalance,
		})
		return topup, nil
	})
}

// Update changes a topup amount and method and moves the user's balance by the difference
func (u *UseCase) Update(ctx context.Context, id uint64, newAmount int64, method string) (*entity.Topup, error) {
	call := observe.Call{Name: "UpdateTopup", Method: observe.MethodPut, Attrs: map[string]any{
		"topup_id": id, "topup_amount": newAmount, "topup_method": method,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Topup, error) {
		if newAmount <= 0 {
			return nil, errs.ErrInvalidAmount
		}
		if strings.TrimSpace(method) == "" {
			return nil, errs.ErrInvalidRequest
		}

		topup, err := u.topupRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		ctx, release, err := u.locker.Acquire(ctx, topup.UserID)
		if err != nil {
			return nil, err
		}
		defer release()

		old := *topup
		delta := newAmount - old.TopupAmount

		saga := ledger.NewSaga("topup.update", u.logger).
			Then("update_record",
				func(ctx context.Context) error {
					topup.TopupAmount = newAmount
					topup.TopupMethod = method
					topup.UpdatedAt = u.timeProvider.Now()
					return u.topupRepo.Update(ctx, topup)
				},
				func(ctx context.Context) error {
					restored := old
					return u.topupRepo.Update(ctx, &restored)
				})
		if delta != 0 {
			saga.Then("adjust_saldo",
				func(ctx context.Context) error {
					_, err := u.ledger.AdjustBalance(ctx, old.UserID, delta, entity.GuardNonNegative)
					return err
				},
				nil)
		}

		err = saga.Run(ctx)
		u.evict(ctx, topup)
		if err != nil {
			return nil, err
		}

		u.logger.Info("Topup updated", map[string]any{
			"topup_id":   id,
			"old_amount": old.TopupAmount,
			"new_amount": newAmount,
		})
		return topup, nil
	})
}

// Delete removes the most recent topup of userID. Balances are not reversed.
func (u *UseCase) Delete(ctx context.Context, userID uint64) error {
	call := observe.Call{Name: "DeleteTopup", Method: observe.MethodDelete, Attrs: map[string]any{"user_id": userID}}

	_, err := observe.Run(ctx, u.env, call, func(ctx context.Context) (struct{}, error) {
		if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
			return struct{}{}, err
		}

		topup, err := u.topupRepo.FindByUserID(ctx, userID)
		if err != nil {
			return struct{}{}, err
		}
		if err := u.topupRepo.Delete(ctx, topup.ID); err != nil {
			return struct{}{}, err
		}

		u.evict(ctx, topup)
		u.logger.Info("Topup deleted", map[string]any{"topup_id": topup.ID, "user_id": userID})
		return struct{}{}, nil
	})
	return err
}
