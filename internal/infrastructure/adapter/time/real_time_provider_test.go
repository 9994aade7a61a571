package time

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealTimeProvider(t *testing.T) {
	clock := NewRealTimeProvider()

	now := clock.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.GreaterOrEqual(t, clock.Since(now.Add(-time.Second)), time.Second)
}
