package persistence

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
)

// MockTransferRepository is a testify mock of persistence.TransferRepository
type MockTransferRepository struct {
	mock.Mock
}

func (m *MockTransferRepository) FindAll(ctx context.Context, query entity.PageQuery) ([]*entity.Transfer, int64, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Transfer), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransferRepository) FindByID(ctx context.Context, id uint64) (*entity.Transfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindByUserID(ctx context.Context, userID uint64) (*entity.Transfer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transfer), args.Error(1)
}

func (m *MockTransferRepository) FindByUsersID(ctx context.Context, userID uint64) ([]*entity.Transfer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transfer), args.Error(1)
}

func (m *MockTransferRepository) Create(ctx context.Context, record *entity.Transfer) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransferRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransferRepository) Update(ctx context.Context, record *entity.Transfer) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
