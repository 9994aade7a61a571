package core

import "time"

// TimeProvider abstracts the clock so sagas and entities can be tested with fixed times
type TimeProvider interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}
