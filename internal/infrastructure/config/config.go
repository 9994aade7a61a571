package config

import (
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/telemetry"
)

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    database.Config   `mapstructure:"database"`
	Redis       cache.RedisConfig `mapstructure:"redis"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Ledger      LedgerConfig      `mapstructure:"ledger"`
	Telemetry   telemetry.Config  `mapstructure:"telemetry"`
	Logger      LoggerConfig      `mapstructure:"logger"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
}

// Cache drivers
const (
	CacheRedis  = "redis"
	CacheMemory = "memory"
)

// CacheConfig selects the cache backend
type CacheConfig struct {
	Driver string        `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// LedgerConfig holds the balance rules, in minor units
type LedgerConfig struct {
	Floor           int64 `mapstructure:"floor"`
	TransferMinimum int64 `mapstructure:"transferMinimum"`
	WithdrawMinimum int64 `mapstructure:"withdrawMinimum"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Production bool   `mapstructure:"production"`
}

// Policy returns the ledger policy the services run under
func (c *Config) Policy() ledger.Policy {
	return ledger.Policy{
		Floor:           c.Ledger.Floor,
		TransferMinimum: c.Ledger.TransferMinimum,
		WithdrawMinimum: c.Ledger.WithdrawMinimum,
		CacheTTL:        c.Cache.TTL,
	}
}
