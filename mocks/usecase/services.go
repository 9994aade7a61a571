package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

func as[T any](args mock.Arguments, i int) T {
	var zero T
	if args.Get(i) == nil {
		return zero
	}
	return args.Get(i).(T)
}

// MockSaldoService is a testify mock of the saldo handler's service
type MockSaldoService struct {
	mock.Mock
}

func (m *MockSaldoService) List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Saldo], error) {
	args := m.Called(ctx, query)
	return as[*entity.Page[*entity.Saldo]](args, 0), args.Error(1)
}

func (m *MockSaldoService) Get(ctx context.Context, id uint64) (*entity.Saldo, error) {
	args := m.Called(ctx, id)
	return as[*entity.Saldo](args, 0), args.Error(1)
}

func (m *MockSaldoService) GetByUser(ctx context.Context, userID uint64) (*entity.Saldo, error) {
	args := m.Called(ctx, userID)
	return as[*entity.Saldo](args, 0), args.Error(1)
}

func (m *MockSaldoService) GetByUsers(ctx context.Context, userID uint64) ([]*entity.Saldo, error) {
	args := m.Called(ctx, userID)
	return as[[]*entity.Saldo](args, 0), args.Error(1)
}

func (m *MockSaldoService) Create(ctx context.Context, userID uint64, totalBalance int64) (*entity.Saldo, error) {
	args := m.Called(ctx, userID, totalBalance)
	return as[*entity.Saldo](args, 0), args.Error(1)
}

func (m *MockSaldoService) ApplyFloorUpdate(ctx context.Context, id uint64, amount *int64, at *time.Time) (*entity.Saldo, error) {
	args := m.Called(ctx, id, amount, at)
	return as[*entity.Saldo](args, 0), args.Error(1)
}

func (m *MockSaldoService) Withdraw(ctx context.Context, userID uint64, amount int64, at time.Time) (*entity.Saldo, error) {
	args := m.Called(ctx, userID, amount, at)
	return as[*entity.Saldo](args, 0), args.Error(1)
}

func (m *MockSaldoService) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

// MockTopupService is a testify mock of the topup handler's service
type MockTopupService struct {
	mock.Mock
}

func (m *MockTopupService) List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Topup], error) {
	args := m.Called(ctx, query)
	return as[*entity.Page[*entity.Topup]](args, 0), args.Error(1)
}

func (m *MockTopupService) Get(ctx context.Context, id uint64) (*entity.Topup, error) {
	args := m.Called(ctx, id)
	return as[*entity.Topup](args, 0), args.Error(1)
}

func (m *MockTopupService) GetByUser(ctx context.Context, userID uint64) (*entity.Topup, error) {
	args := m.Called(ctx, userID)
	return as[*entity.Topup](args, 0), args.Error(1)
}

func (m *MockTopupService) GetByUsers(ctx context.Context, userID uint64) ([]*entity.Topup, error) {
	args := m.Called(ctx, userID)
	return as[[]*entity.Topup](args, 0), args.Error(1)
}

func (m *MockTopupService) Create(ctx context.Context, userID uint64, topupNo string, amount int64, method string) (*entity.Topup, error) {
	args := m.Called(ctx, userID, topupNo, amount, method)
	return as[*entity.Topup](args, 0), args.Error(1)
}

func (m *MockTopupService) Update(ctx context.Context, id uint64, amount int64, method string) (*entity.Topup, error) {
	args := m.Called(ctx, id, amount, method)
	return as[*entity.Topup](args, 0), args.Error(1)
}

func (m *MockTopupService) Delete(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

// MockTransferService is a testify mock of the transfer handler's service
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Transfer], error) {
	args := m.Called(ctx, query)
	return as[*entity.Page[*entity.Transfer]](args, 0), args.Error(1)
}

func (m *MockTransferService) Get(ctx context.Context, id uint64) (*entity.Transfer, error) {
	args := m.Called(ctx, id)
	return as[*entity.Transfer](args, 0), args.Error(1)
}

func (m *MockTransferService) GetByUser(ctx context.Context, userID uint64) (*entity.Transfer, error) {
	args := m.Called(ctx, userID)
	return as[*entity.Transfer](args, 0), args.Error(1)
}

func (m *MockTransferService) GetByUsers(ctx context.Context, userID uint64) ([]*entity.Transfer, error) {
	args := m.Called(ctx, userID)
	return as[[]*entity.Transfer](args, 0), args.Error(1)
}

func (m *MockTransferService) Create(ctx context.Context, from, to uint64, amount int64) (*entity.Transfer, error) {
	args := m.Called(ctx, from, to, amount)
	return as[*entity.Transfer](args, 0), args.Error(1)
}

func (m *MockTransferService) Update(ctx context.Context, id uint64, amount int64) (*entity.Transfer, error) {
	args := m.Called(ctx, id, amount)
	return as[*entity.Transfer](args, 0), args.Error(1)
}

func (m *MockTransferService) Delete(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

// MockWithdrawService is a testify mock of the withdraw handler's service
type MockWithdrawService struct {
	mock.Mock
}

func (m *MockWithdrawService) List(ctx context.Context, query entity.PageQuery) (*entity.Page[*entity.Withdraw], error) {
	args := m.Called(ctx, query)
	return as[*entity.Page[*entity.Withdraw]](args, 0), args.Error(1)
}

func (m *MockWithdrawService) Get(ctx context.Context, id uint64) (*entity.Withdraw, error) {
	args := m.Called(ctx, id)
	return as[*entity.Withdraw](args, 0), args.Error(1)
}

func (m *MockWithdrawService) GetByUser(ctx context.Context, userID uint64) (*entity.Withdraw, error) {
	args := m.Called(ctx, userID)
	return as[*entity.Withdraw](args, 0), args.Error(1)
}

func (m *MockWithdrawService) GetByUsers(ctx context.Context, userID uint64) ([]*entity.Withdraw, error) {
	args := m.Called(ctx, userID)
	return as[[]*entity.Withdraw](args, 0), args.Error(1)
}

func (m *MockWithdrawService) Create(ctx context.Context, userID uint64, amount int64, at time.Time) (*entity.Withdraw, error) {
	args := m.Called(ctx, userID, amount, at)
	return as[*entity.Withdraw](args, 0), args.Error(1)
}

func (m *MockWithdrawService) Update(ctx context.Context, id uint64, amount int64, at time.Time) (*entity.Withdraw, error) {
	args := m.Called(ctx, id, amount, at)
	return as[*entity.Withdraw](args, 0), args.Error(1)
}

func (m *MockWithdrawService) Delete(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}
