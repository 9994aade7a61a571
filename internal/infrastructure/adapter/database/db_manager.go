package database

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/payment-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/model"
)

// Manager owns the gorm handle and its connection pool
type Manager struct {
	config       Config
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	monitor      *PoolMonitor
}

// NewManager creates a new database manager. Call Connect before using DB.
func NewManager(config Config, logger coreport.Logger, timeProvider coreport.TimeProvider) *Manager {
	return &Manager{
		config:       config,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Connect opens the database, retrying transient failures with backoff, then configures
// the pool and starts the pool monitor.
func (m *Manager) Connect(ctx context.Context) error {
	if err := m.config.Validate(); err != nil {
		return fmt.Errorf("invalid database configuration: %w", err)
	}

	m.logger.Info("Connecting to database", map[string]any{
		"driver": m.config.Driver,
		"host":   m.config.Host,
		"port":   m.config.Port,
		"name":   m.config.Database,
	})

	gormConfig := &gorm.Config{
		Logger:                 NewGormLogger(m.logger, m.timeProvider, m.config.LogLevel, m.config.SlowThreshold),
		NowFunc:                m.timeProvider.Now,
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}

	var gormDB *gorm.DB
	err := RetryOnTransientError(ctx, m.config.Retry(), func(ctx context.Context) error {
		db, err := gorm.Open(postgres.Open(m.config.DSN()), gormConfig)
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		pingCtx, cancel := context.WithTimeout(ctx, m.config.QueryTimeout)
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			_ = sqlDB.Close()
			return err
		}

		gormDB = db
		return nil
	}, m.logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database after %d attempts: %w", m.config.RetryAttempts, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(m.config.MaxOpenConns)
	sqlDB.SetMaxIdleConns(m.config.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(m.config.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(m.config.ConnMaxIdleTime)

	m.db = gormDB

	if m.config.MonitorInterval > 0 {
		m.monitor = NewPoolMonitor(sqlDB, m.logger)
		m.monitor.Start(m.config.MonitorInterval)
	}

	m.logger.Info("Successfully connected to database", map[string]any{
		"host":           m.config.Host,
		"name":           m.config.Database,
		"max_open_conns": m.config.MaxOpenConns,
		"max_idle_conns": m.config.MaxIdleConns,
	})
	return nil
}

// AutoMigrate creates or updates the ledger tables
func (m *Manager) AutoMigrate(ctx context.Context) error {
	start := m.timeProvider.Now()
	if err := m.db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		m.logger.Error("Failed to migrate database schema", map[string]any{"error": err.Error()})
		return fmt.Errorf("auto migrate: %w", err)
	}

	m.logger.Info("Database schema is up to date", map[string]any{
		"elapsed_ms": m.timeProvider.Since(start).Milliseconds(),
	})
	return nil
}

// DB returns the gorm handle
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// UnitOfWork returns a unit of work bound to this database
func (m *Manager) UnitOfWork() persistence.UnitOfWork {
	return NewUnitOfWork(m.db, m.logger)
}

// Ping checks that the database answers within the query timeout
func (m *Manager) Ping(ctx context.Context) error {
	if m.db == nil {
		return ErrNotConnected
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}

	ctx, cancel := m.WithTimeout(ctx)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// PoolStats returns the latest pool sample, or a live one when the monitor is off
func (m *Manager) PoolStats() PoolStats {
	if m.monitor != nil {
		return m.monitor.Stats()
	}
	if m.db == nil {
		return PoolStats{}
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return PoolStats{}
	}
	return snapshot(sqlDB)
}

// WithTimeout returns a context bounded by the configured query timeout
func (m *Manager) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, m.config.QueryTimeout)
}

// Close stops the monitor and closes the pool
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection", nil)

	if m.monitor != nil {
		m.monitor.Stop()
	}
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// ErrNotConnected is returned by Ping before Connect succeeded
var ErrNotConnected = errors.New("database is not connected")
