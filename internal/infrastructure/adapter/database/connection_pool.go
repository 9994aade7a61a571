package database

import (
	"database/sql"
	"sync"
	"time"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
)

// PoolStats is a snapshot of the database/sql connection pool
type PoolStats struct {
	OpenConnections    int           `json:"open_connections"`
	IdleConnections    int           `json:"idle_connections"`
	MaxOpenConnections int           `json:"max_open_connections"`
	InUse              int           `json:"in_use"`
	WaitCount          int64         `json:"wait_count"`
	WaitDuration       time.Duration `json:"wait_duration"`
}

func snapshot(db *sql.DB) PoolStats {
	stats := db.Stats()
	return PoolStats{
		OpenConnections:    stats.OpenConnections,
		IdleConnections:    stats.Idle,
		MaxOpenConnections: stats.MaxOpenConnections,
		InUse:              stats.InUse,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration,
	}
}

// exhaustionRatio is the in-use share of max open connections above which the monitor warns
const exhaustionRatio = 0.8

// PoolMonitor periodically samples pool stats and warns when the pool is close to exhaustion
type PoolMonitor struct {
	db       *sql.DB
	logger   coreport.Logger
	mu       sync.RWMutex
	last     PoolStats
	stopOnce sync.Once
	stopChan chan struct{}
	done     chan struct{}
}

// NewPoolMonitor creates a monitor for db
func NewPoolMonitor(db *sql.DB, logger coreport.Logger) *PoolMonitor {
	return &PoolMonitor{
		db:       db,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start samples once, then every interval until Stop
func (m *PoolMonitor) Start(interval time.Duration) {
	m.collect()

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.collect()
			case <-m.stopChan:
				return
			}
		}
	}()
}

// Stop ends sampling and waits for the sampling goroutine to exit
func (m *PoolMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopChan)
		<-m.done
	})
}

// Stats returns the most recent sample
func (m *PoolMonitor) Stats() PoolStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

func (m *PoolMonitor) collect() {
	stats := snapshot(m.db)

	m.mu.Lock()
	m.last = stats
	m.mu.Unlock()

	if stats.MaxOpenConnections > 0 && float64(stats.InUse) > float64(stats.MaxOpenConnections)*exhaustionRatio {
		m.logger.Warn("Database connection pool nearly exhausted", map[string]any{
			"in_use":     stats.InUse,
			"max_open":   stats.MaxOpenConnections,
			"idle":       stats.IdleConnections,
			"wait_count": stats.WaitCount,
			"wait_time":  stats.WaitDuration.String(),
		})
	}
}
