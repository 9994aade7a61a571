package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// MockSaldoRepository is a testify mock of persistence.SaldoRepository
type MockSaldoRepository struct {
	mock.Mock
}

func (m *MockSaldoRepository) FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Saldo, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Saldo), args.Get(1).(int64), args.Error(2)
}

func (m *MockSaldoRepository) FindByID(ctx context.Context, id uint64) (*entity.Saldo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Saldo), args.Error(1)
}

func (m *MockSaldoRepository) FindByUserID(ctx context.Context, userID uint64) (*entity.Saldo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Saldo), args.Error(1)
}

func (m *MockSaldoRepository) FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Saldo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Saldo), args.Error(1)
}

func (m *MockSaldoRepository) Create(ctx context.Context, record *entity.Saldo) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockSaldoRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaldoRepository) LockByUserID(ctx context.Context, userID uint64) (*entity.Saldo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Saldo), args.Error(1)
}

func (m *MockSaldoRepository) LockByID(ctx context.Context, id uint64) (*entity.Saldo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Saldo), args.Error(1)
}

func (m *MockSaldoRepository) Save(ctx context.Context, saldo *entity.Saldo) error {
	args := m.Called(ctx, saldo)
	return args.Error(0)
}
