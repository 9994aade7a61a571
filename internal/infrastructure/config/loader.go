package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/telemetry"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. PL_DATABASE_PASSWORD
const EnvPrefix = "PL"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// ErrNoDotEnv is returned by LoadDotEnv when no .env file exists on the search paths
var ErrNoDotEnv = errors.New("no .env file found in search paths")

// LoadConfig loads configs/<env>.yaml with environment overrides
func LoadConfig() (*Config, error) {
	env := Environment()

	v := newViper()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return decode(v, env)
}

// LoadFrom loads a single config file, for tools and tests
func LoadFrom(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return decode(v, Environment())
}

// LoadDotEnv loads the first .env file found. Existing variables are not overwritten.
func LoadDotEnv() error {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}
	return ErrNoDotEnv
}

// Environment returns PL_ENV, defaulting to development
func Environment() string {
	if env := os.Getenv(EnvPrefix + "_ENV"); env != "" {
		return strings.ToLower(env)
	}
	return Development
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper, env string) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env
	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override keys the file leaves out
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "15s")
	v.SetDefault("server.writeTimeout", "15s")
	v.SetDefault("server.idleTimeout", "60s")
	v.SetDefault("server.readHeaderTimeout", "10s")
	v.SetDefault("server.shutdownTimeout", "10s")

	db := database.DefaultConfig()
	v.SetDefault("database.driver", db.Driver)
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", db.Port)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "")
	v.SetDefault("database.sslMode", db.SSLMode)
	v.SetDefault("database.maxOpenConns", db.MaxOpenConns)
	v.SetDefault("database.maxIdleConns", db.MaxIdleConns)
	v.SetDefault("database.connMaxLifetime", db.ConnMaxLifetime.String())
	v.SetDefault("database.connMaxIdleTime", db.ConnMaxIdleTime.String())
	v.SetDefault("database.queryTimeout", db.QueryTimeout.String())
	v.SetDefault("database.logLevel", db.LogLevel)
	v.SetDefault("database.slowThreshold", db.SlowThreshold.String())
	v.SetDefault("database.retryAttempts", db.RetryAttempts)
	v.SetDefault("database.retryDelay", db.RetryDelay.String())
	v.SetDefault("database.monitorInterval", db.MonitorInterval.String())

	rc := cache.DefaultRedisConfig()
	v.SetDefault("redis.addr", rc.Addr)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", rc.DB)
	v.SetDefault("redis.poolSize", rc.PoolSize)
	v.SetDefault("redis.dialTimeout", rc.DialTimeout.String())
	v.SetDefault("redis.readTimeout", rc.ReadTimeout.String())
	v.SetDefault("redis.writeTimeout", rc.WriteTimeout.String())

	policy := ledger.DefaultPolicy()
	v.SetDefault("cache.driver", CacheRedis)
	v.SetDefault("cache.ttl", policy.CacheTTL.String())
	v.SetDefault("ledger.floor", policy.Floor)
	v.SetDefault("ledger.transferMinimum", policy.TransferMinimum)
	v.SetDefault("ledger.withdrawMinimum", policy.WithdrawMinimum)

	tc := telemetry.DefaultConfig()
	v.SetDefault("telemetry.serviceName", tc.ServiceName)
	v.SetDefault("telemetry.namespace", tc.Namespace)
	v.SetDefault("telemetry.sampleRatio", tc.SampleRatio)
	v.SetDefault("telemetry.logSpans", tc.LogSpans)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.production", false)
}

// Validate checks the keys the process cannot start without
func (c *Config) Validate() error {
	var problems []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Errorf("invalid server port: %d", c.Server.Port))
	}
	if err := c.Database.Validate(); err != nil {
		problems = append(problems, err)
	}
	switch c.Cache.Driver {
	case CacheRedis:
		if c.Redis.Addr == "" {
			problems = append(problems, errors.New("redis address is required when cache driver is redis"))
		}
	case CacheMemory:
	default:
		problems = append(problems, fmt.Errorf("unsupported cache driver: %s", c.Cache.Driver))
	}
	if c.Cache.TTL <= 0 {
		problems = append(problems, errors.New("cache ttl must be positive"))
	}
	if c.Ledger.Floor < 0 {
		problems = append(problems, fmt.Errorf("ledger floor must be non-negative, got: %d", c.Ledger.Floor))
	}
	if c.Ledger.TransferMinimum < 1 || c.Ledger.WithdrawMinimum < 1 {
		problems = append(problems, errors.New("ledger minimums must be positive"))
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		problems = append(problems, fmt.Errorf("telemetry sample ratio must be in [0,1], got: %g", c.Telemetry.SampleRatio))
	}

	return errors.Join(problems...)
}
