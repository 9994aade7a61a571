package core

import (
	"github.com/stretchr/testify/mock"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// MockLogger is a testify mock of coreport.Logger
type MockLogger struct {
	mock.Mock
}

// NewQuietLogger returns a logger mock that accepts every call
func NewQuietLogger() *MockLogger {
	m := new(MockLogger)
	for _, level := range []string{"Debug", "Info", "Warn", "Error"} {
		m.On(level, mock.Anything, mock.Anything).Maybe()
	}
	m.On("Flush").Return(nil).Maybe()
	return m
}

func (m *MockLogger) SetLevel(level coreport.LogLevel) {
	m.Called(level)
}

func (m *MockLogger) GetLevel() coreport.LogLevel {
	args := m.Called()
	return args.Get(0).(coreport.LogLevel)
}

func (m *MockLogger) Debug(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Info(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Warn(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Error(message string, fields map[string]any) {
	m.Called(message, fields)
}

func (m *MockLogger) Flush() error {
	args := m.Called()
	return args.Error(0)
}
