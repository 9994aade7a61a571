package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// MockTopupRepository is a testify mock of persistence.TopupRepository
type MockTopupRepository struct {
	mock.Mock
}

func (m *MockTopupRepository) FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Topup, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Topup), args.Get(1).(int64), args.Error(2)
}

func (m *MockTopupRepository) FindByID(ctx context.Context, id uint64) (*entity.Topup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Topup), args.Error(1)
}

func (m *MockTopupRepository) FindByUserID(ctx context.Context, userID uint64) (*entity.Topup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Topup), args.Error(1)
}

func (m *MockTopupRepository) FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Topup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Topup), args.Error(1)
}

func (m *MockTopupRepository) Create(ctx context.Context, record *entity.Topup) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTopupRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTopupRepository) Update(ctx context.Context, record *entity.Topup) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
