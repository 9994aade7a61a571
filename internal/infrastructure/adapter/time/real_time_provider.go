package time

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// RealTimeProvider reads the wall clock. Timestamps are normalized to UTC before they reach the store.
type RealTimeProvider struct{}

// NewRealTimeProvider creates a new real time provider
func NewRealTimeProvider() core.TimeProvider {
	return RealTimeProvider{}
}

// Now returns the current time in UTC
func (RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Since returns the time elapsed since t
func (RealTimeProvider) Since(t time.Time) time.Duration {
	return time.Since(t)
}
