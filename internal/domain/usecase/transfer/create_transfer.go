package transfer

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/observe"
)

// Create records a transfer, debits the sender under the floor guard and credits the receiver.
// A failed step undoes the completed ones: the sender is restored and the record removed.
func (u *UseCase) Create(ctx context.Context, from, to uint64, amount int64) (*entity.Transfer, error) {
	call := observe.Call{Name: "CreateTransfer", Method: observe.MethodPost, Attrs: map[string]any{
		"transfer_from": from, "transfer_to": to, "transfer_amount": amount,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Transfer, error) {
		transfer, err := entity.NewTransfer(from, to, amount, u.timeProvider.Now())
		if err != nil {
			return nil, err
		}

		for _, userID := range []uint64{from, to} {
			if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
				return nil, err
			}
		}

		ctx, release, err := u.locker.Acquire(ctx, from, to)
		if err != nil {
			return nil, err
		}
		defer release()

		sender, err := u.ledger.Current(ctx, from)
		if err != nil {
			return nil, err
		}
		if _, err := u.ledger.Current(ctx, to); err != nil {
			return nil, err
		}
		if !sender.CanSpend(amount, u.policy.Floor) {
			u.logger.Warn("Transfer rejected: insufficient balance", map[string]any{
				"transfer_from": from,
				"amount":        amount,
				"balance":       sender.TotalBalance,
			})
			return nil, errs.NewInsufficientBalanceError(from, amount, sender.TotalBalance, u.policy.Floor)
		}

		var senderBefore int64
		saga := ledger.NewSaga("transfer.create", u.logger).
			Then("create_record",
				func(ctx context.Context) error {
					return u.transferRepo.Create(ctx, transfer)
				},
				func(ctx context.Context) error {
					return u.transferRepo.Delete(ctx, transfer.ID)
				}).
			Then("debit_sender",
				func(ctx context.Context) error {
					s, err := u.ledger.AdjustBalance(ctx, from, -amount, entity.GuardFloor)
					if err != nil {
						return err
					}
					senderBefore = s.TotalBalance + amount
					return nil
				},
				func(ctx context.Context) error {
					_, err := u.ledger.SetAbsolute(ctx, from, senderBefore)
					return err
				}).
			Then("credit_receiver",
				func(ctx context.Context) error {
					_, err := u.ledger.AdjustBalance(ctx, to, amount, entity.GuardNonNegative)
					return err
				},
				nil)

		err = saga.Run(ctx)
		u.evict(ctx, transfer)
		if err != nil {
			return nil, err
		}

		u.logger.Info("Transfer completed", map[string]any{
			"transfer_id":   transfer.ID,
			"transfer_from": from,
			"transfer_to":   to,
			"amount":        amount,
		})
		return transfer, nil
	})
}
