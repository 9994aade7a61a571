package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9090
database:
  host: db.internal
  username: ledger
  database: ledger
  queryTimeout: 3s
redis:
  addr: cache.internal:6379
cache:
  ttl: 2m
ledger:
  floor: 10000
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFrom(t *testing.T) {
	t.Run("should merge the file over the defaults", func(t *testing.T) {
		// Arrange
		path := writeConfig(t, sampleYAML)

		// Act
		cfg, err := LoadFrom(path)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 3*time.Second, cfg.Database.QueryTimeout)
		assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
		assert.Equal(t, CacheRedis, cfg.Cache.Driver)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("should let PL_ variables override file values", func(t *testing.T) {
		// Arrange
		path := writeConfig(t, sampleYAML)
		t.Setenv("PL_DATABASE_PASSWORD", "s3cret")
		t.Setenv("PL_LEDGER_FLOOR", "75000")
		t.Setenv("PL_CACHE_DRIVER", "memory")

		// Act
		cfg, err := LoadFrom(path)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.Database.Password)
		assert.Equal(t, int64(75000), cfg.Ledger.Floor)
		assert.Equal(t, CacheMemory, cfg.Cache.Driver)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		// Act
		_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))

		// Assert
		assert.Error(t, err)
	})
}

func TestPolicy(t *testing.T) {
	t.Run("should carry the ledger rules and cache ttl", func(t *testing.T) {
		// Arrange
		cfg, err := LoadFrom(writeConfig(t, sampleYAML))
		require.NoError(t, err)

		// Act
		policy := cfg.Policy()

		// Assert
		assert.Equal(t, int64(10000), policy.Floor)
		assert.Equal(t, int64(50000), policy.TransferMinimum)
		assert.Equal(t, int64(50001), policy.WithdrawMinimum)
		assert.Equal(t, 2*time.Minute, policy.CacheTTL)
	})
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		cfg, err := LoadFrom(writeConfig(t, sampleYAML))
		require.NoError(t, err)
		return cfg
	}

	t.Run("should reject an unknown cache driver", func(t *testing.T) {
		cfg := valid(t)
		cfg.Cache.Driver = "memcached"

		assert.ErrorContains(t, cfg.Validate(), "unsupported cache driver")
	})

	t.Run("should reject a missing database host", func(t *testing.T) {
		cfg := valid(t)
		cfg.Database.Host = ""

		assert.ErrorContains(t, cfg.Validate(), "database host is required")
	})

	t.Run("should report every problem at once", func(t *testing.T) {
		cfg := valid(t)
		cfg.Server.Port = 0
		cfg.Ledger.Floor = -1

		err := cfg.Validate()

		assert.ErrorContains(t, err, "invalid server port")
		assert.ErrorContains(t, err, "ledger floor must be non-negative")
	})
}

func TestEnvironment(t *testing.T) {
	t.Run("should default to development", func(t *testing.T) {
		t.Setenv("PL_ENV", "")
		assert.Equal(t, Development, Environment())
	})

	t.Run("should lower case PL_ENV", func(t *testing.T) {
		t.Setenv("PL_ENV", "Production")
		assert.Equal(t, Production, Environment())
	})
}
