package transfer

import (
	"context"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/observe"
)

// Update changes a transfer amount and moves the difference between sender and receiver
func (u *UseCase) Update(ctx context.Context, id uint64, newAmount int64) (*entity.Transfer, error) {
	call := observe.Call{Name: "UpdateTransfer", Method: observe.MethodPut, Attrs: map[string]any{
		"transfer_id": id, "transfer_amount": newAmount,
	}}

	return observe.Run(ctx, u.env, call, func(ctx context.Context) (*entity.Transfer, error) {
		if newAmount <= 0 {
			return nil, errs.ErrInvalidAmount
		}

		transfer, err := u.transferRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}

		ctx, release, err := u.locker.Acquire(ctx, transfer.TransferFrom, transfer.TransferTo)
		if err != nil {
			return nil, err
		}
		defer release()

		old := *transfer
		delta := newAmount - old.TransferAmount
		guard := entity.GuardNonNegative
		if delta > 0 {
			guard = entity.GuardFloor
		}

		var senderBefore int64
		saga := ledger.NewSaga("transfer.update", u.logger).
			Then("update_record",
				func(ctx context.Context) error {
					transfer.TransferAmount = newAmount
					transfer.UpdatedAt = u.timeProvider.Now()
					return u.transferRepo.Update(ctx, transfer)
				},
				func(ctx context.Context) error {
					restored := old
					return u.transferRepo.Update(ctx, &restored)
				})

		if delta != 0 {
			saga.
				Then("adjust_sender",
					func(ctx context.Context) error {
						s, err := u.ledger.AdjustBalance(ctx, old.TransferFrom, -delta, guard)
						if err != nil {
							return err
						}
						senderBefore = s.TotalBalance + delta
						return nil
					},
					func(ctx context.Context) error {
						_, err := u.ledger.SetAbsolute(ctx, old.TransferFrom, senderBefore)
						return err
					}).
				Then("adjust_receiver",
					func(ctx context.Context) error {
						_, err := u.ledger.AdjustBalance(ctx, old.TransferTo, delta, entity.GuardNonNegative)
						return err
					},
					nil)
		}

		err = saga.Run(ctx)
		u.evict(ctx, transfer)
		if err != nil {
			return nil, err
		}

		u.logger.Info("Transfer updated", map[string]any{
			"transfer_id": id,
			"old_amount":  old.TransferAmount,
			"new_amount":  newAmount,
		})
		return transfer, nil
	})
}

// Delete removes the most recent transfer sent by userID. Balances are not reversed.
func (u *UseCase) Delete(ctx context.Context, userID uint64) error {
	call := observe.Call{Name: "DeleteTransfer", Method: observe.MethodDelete, Attrs: map[string]any{"user_id": userID}}

	_, err := observe.Run(ctx, u.env, call, func(ctx context.Context) (struct{}, error) {
		if _, err := u.userRepo.FindByID(ctx, userID); err != nil {
			return struct{}{}, err
		}

		transfer, err := u.transferRepo.FindByUserID(ctx, userID)
		if err != nil {
			return struct{}{}, err
		}
		if err := u.transferRepo.Delete(ctx, transfer.ID); err != nil {
			return struct{}{}, err
		}

		u.evict(ctx, transfer)
		u.logger.Info("Transfer deleted", map[string]any{"transfer_id": transfer.ID, "user_id": userID})
		return struct{}{}, nil
	})
	return err
}
