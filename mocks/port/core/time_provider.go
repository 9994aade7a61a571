package core

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockTimeProvider is a testify mock of coreport.TimeProvider
type MockTimeProvider struct {
	mock.Mock
}

// NewFixedTimeProvider returns a clock mock frozen at now
func NewFixedTimeProvider(now time.Time) *MockTimeProvider {
	m := new(MockTimeProvider)
	m.On("Now").Return(now).Maybe()
	m.On("Since", mock.Anything).Return(time.Duration(0)).Maybe()
	return m
}

func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockTimeProvider) Since(t time.Time) time.Duration {
	args := m.Called(t)
	return args.Get(0).(time.Duration)
}
