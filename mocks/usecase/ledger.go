package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// MockLedger is a testify mock of the saldo service as seen by the topup, transfer and withdraw sagas
type MockLedger struct {
	mock.Mock
}

func saldoOrNil(args mock.Arguments) *entity.Saldo {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*entity.Saldo)
}

func (m *MockLedger) Current(ctx context.Context, userID uint64) (*entity.Saldo, error) {
	args := m.Called(ctx, userID)
	return saldoOrNil(args), args.Error(1)
}

func (m *MockLedger) Deposit(ctx context.Context, userID uint64, amount int64) (*entity.Saldo, bool, error) {
	args := m.Called(ctx, userID, amount)
	return saldoOrNil(args), args.Bool(1), args.Error(2)
}

func (m *MockLedger) AdjustBalance(ctx context.Context, userID uint64, delta int64, guard entity.Guard) (*entity.Saldo, error) {
	args := m.Called(ctx, userID, delta, guard)
	return saldoOrNil(args), args.Error(1)
}

func (m *MockLedger) Withdraw(ctx context.Context, userID uint64, amount int64, at time.Time) (*entity.Saldo, error) {
	args := m.Called(ctx, userID, amount, at)
	return saldoOrNil(args), args.Error(1)
}

func (m *MockLedger) AmendWithdraw(ctx context.Context, userID uint64, oldAmount, newAmount int64, at time.Time) (*entity.Saldo, error) {
	args := m.Called(ctx, userID, oldAmount, newAmount, at)
	return saldoOrNil(args), args.Error(1)
}

func (m *MockLedger) SetAbsolute(ctx context.Context, userID uint64, total int64) (*entity.Saldo, error) {
	args := m.Called(ctx, userID, total)
	return saldoOrNil(args), args.Error(1)
}

func (m *MockLedger) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
