package core

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// MockMetrics is a testify mock of coreport.Metrics
type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordRequest(method, status string, elapsed time.Duration) {
	m.Called(method, status, elapsed)
}

// MockTracer is a testify mock of coreport.Tracer
type MockTracer struct {
	mock.Mock
}

func (m *MockTracer) Start(ctx context.Context, name string, attrs map[string]any) (context.Context, coreport.Span) {
	args := m.Called(ctx, name, attrs)
	return args.Get(0).(context.Context), args.Get(1).(coreport.Span)
}

// MockSpan is a testify mock of coreport.Span
type MockSpan struct {
	mock.Mock
}

func (m *MockSpan) AddEvent(name string, attrs map[string]any) {
	m.Called(name, attrs)
}

func (m *MockSpan) SetOK(message string) {
	m.Called(message)
}

func (m *MockSpan) SetError(err error) {
	m.Called(err)
}

func (m *MockSpan) End() {
	m.Called()
}
