package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// Guard selects the lowest total a debit may leave behind
type Guard int

const (
	// GuardNonNegative keeps the total at or above zero
	GuardNonNegative Guard = iota
	// GuardFloor keeps the total at or above the configured floor; used by spends
	GuardFloor
)

// String returns the guard name used in logs
func (g Guard) String() string {
	if g == GuardFloor {
		return "floor"
	}
	return "non_negative"
}

// Minimum returns the lowest allowed total under this guard
func (g Guard) Minimum(floor int64) int64 {
	if g == GuardFloor {
		return floor
	}
	return 0
}

// Saldo is the running balance of a user in integer minor units
type Saldo struct {
	ID             uint64     `json:"saldo_id"`
	UserID         uint64     `json:"user_id"`
	TotalBalance   int64      `json:"total_balance"`
	WithdrawAmount *int64     `json:"withdraw_amount,omitempty"`
	WithdrawTime   *time.Time `json:"withdraw_time,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewSaldo creates a saldo for the user seeded with the given total
func NewSaldo(userID uint64, total int64, now time.Time) (*Saldo, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if total < 0 {
		return nil, errs.ErrNegativeBalance
	}

	return &Saldo{
		UserID:       userID,
		TotalBalance: total,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Adjust applies a signed delta. Debits that would leave less than minimum are rejected
// and the saldo is left unchanged. Credits are never rejected.
func (s *Saldo) Adjust(delta, minimum int64, now time.Time) error {
	next := s.TotalBalance + delta
	if delta < 0 && next < minimum {
		return errs.NewInsufficientBalanceError(s.UserID, -delta, s.TotalBalance, minimum)
	}

	s.TotalBalance = next
	s.UpdatedAt = now
	return nil
}

// CanSpend reports whether amount can be debited without falling below minimum
func (s *Saldo) CanSpend(amount, minimum int64) bool {
	return s.TotalBalance >= amount && s.TotalBalance-amount >= minimum
}

// Withdraw debits amount and records it as the last withdrawal
func (s *Saldo) Withdraw(amount int64, at time.Time, floor int64, now time.Time) error {
	if amount <= 0 {
		return errs.ErrInvalidAmount
	}
	return s.Settle(amount, at, floor, now)
}

// Settle subtracts amount and records it as the last withdrawal. A zero amount only
// re-checks the floor. Nothing changes when the result would fall below floor.
func (s *Saldo) Settle(amount int64, at time.Time, floor int64, now time.Time) error {
	if amount < 0 {
		return errs.ErrInvalidAmount
	}
	if !s.CanSpend(amount, floor) {
		return errs.NewInsufficientBalanceError(s.UserID, amount, s.TotalBalance, floor)
	}

	s.TotalBalance -= amount
	s.annotate(amount, at)
	s.UpdatedAt = now
	return nil
}

// AmendWithdraw changes a recorded withdrawal from oldAmount to newAmount.
// The total moves by exactly oldAmount-newAmount; a larger debit is floor-guarded.
func (s *Saldo) AmendWithdraw(oldAmount, newAmount int64, at time.Time, floor int64, now time.Time) error {
	if newAmount <= 0 {
		return errs.ErrInvalidAmount
	}

	delta := oldAmount - newAmount
	minimum := GuardNonNegative.Minimum(floor)
	if delta < 0 {
		minimum = GuardFloor.Minimum(floor)
	}
	if err := s.Adjust(delta, minimum, now); err != nil {
		return err
	}

	s.annotate(newAmount, at)
	return nil
}

// Overwrite sets the total without a floor check
func (s *Saldo) Overwrite(total int64, now time.Time) error {
	if total < 0 {
		return errs.ErrNegativeBalance
	}
	s.TotalBalance = total
	s.UpdatedAt = now
	return nil
}

func (s *Saldo) annotate(amount int64, at time.Time) {
	a := amount
	t := at
	s.WithdrawAmount = &a
	s.WithdrawTime = &t
}
