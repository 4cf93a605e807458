package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SPANNER_DATABASE", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.GRPCPort)
	assert.Equal(t, "8080", cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 5*time.Minute, cfg.Pricing.PremiumCacheTTL)

	discount, err := cfg.Pricing.SunriseDiscountFraction()
	require.NoError(t, err)
	assert.Equal(t, "0.15", discount.String())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pricing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spanner:
  database: projects/p/instances/i/databases/from-file
server:
  grpc_port: "7070"
logging:
  level: debug
  format: console
pricing:
  sunrise_discount: "0.2"
  premium_cache_ttl: 30s
`), 0o600))

	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "projects/p/instances/i/databases/from-file", cfg.Spanner.Database)
	assert.Equal(t, "7070", cfg.Server.GRPCPort)
	assert.Equal(t, "8181", cfg.Server.HTTPPort)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 30*time.Second, cfg.Pricing.PremiumCacheTTL)
	assert.Equal(t, "0.2", cfg.Pricing.SunriseDiscount)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("bad cache ttl env", func(t *testing.T) {
		t.Setenv("PREMIUM_CACHE_TTL", "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, "PREMIUM_CACHE_TTL")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"ok", func(*Config) {}, ""},
		{"no database", func(c *Config) { c.Spanner.Database = "" }, "spanner.database"},
		{"bad port", func(c *Config) { c.Server.GRPCPort = "grpc" }, "grpc_port"},
		{"discount above one", func(c *Config) { c.Pricing.SunriseDiscount = "1.5" }, "between 0 and 1"},
		{"discount not a number", func(c *Config) { c.Pricing.SunriseDiscount = "lots" }, "sunrise_discount"},
		{"negative ttl", func(c *Config) { c.Pricing.PremiumCacheTTL = -time.Second }, "premium_cache_ttl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}
