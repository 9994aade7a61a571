package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// MockWithdrawRepository is a testify mock of persistence.WithdrawRepository
type MockWithdrawRepository struct {
	mock.Mock
}

func (m *MockWithdrawRepository) FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Withdraw, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Withdraw), args.Get(1).(int64), args.Error(2)
}

func (m *MockWithdrawRepository) FindByID(ctx context.Context, id uint64) (*entity.Withdraw, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Withdraw), args.Error(1)
}

func (m *MockWithdrawRepository) FindByUserID(ctx context.Context, userID uint64) (*entity.Withdraw, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Withdraw), args.Error(1)
}

func (m *MockWithdrawRepository) FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Withdraw, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Withdraw), args.Error(1)
}

func (m *MockWithdrawRepository) Create(ctx context.Context, record *entity.Withdraw) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockWithdrawRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWithdrawRepository) Update(ctx context.Context, record *entity.Withdraw) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
