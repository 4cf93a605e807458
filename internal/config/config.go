// Package config loads the service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/light-bringer/registry-pricing-service/internal/pkg/logging"
)

// Config holds application configuration.
type Config struct {
	Spanner SpannerConfig  `yaml:"spanner"`
	Server  ServerConfig   `yaml:"server"`
	Logging logging.Config `yaml:"logging"`
	Pricing PricingConfig  `yaml:"pricing"`
}

// SpannerConfig locates the database.
type SpannerConfig struct {
	Database string `yaml:"database"`
}

// ServerConfig holds listener ports.
type ServerConfig struct {
	GRPCPort        string        `yaml:"grpc_port"`
	HTTPPort        string        `yaml:"http_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// PricingConfig tunes the pricing engine.
type PricingConfig struct {
	// SunriseDiscount is the fraction taken off sunrise creates, e.g. "0.15".
	SunriseDiscount string `yaml:"sunrise_discount"`

	// PremiumCacheTTL bounds how stale a cached premium price may be. Zero disables the cache.
	PremiumCacheTTL time.Duration `yaml:"premium_cache_ttl"`
}

// Default returns the configuration used for local development against the emulator.
func Default() Config {
	return Config{
		Spanner: SpannerConfig{
			Database: "projects/test-project/instances/dev-instance/databases/registry-pricing-db",
		},
		Server: ServerConfig{
			GRPCPort:        "9090",
			HTTPPort:        "8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: logging.DefaultConfig(),
		Pricing: PricingConfig{
			SunriseDiscount: "0.15",
			PremiumCacheTTL: 5 * time.Minute,
		},
	}
}

// Load reads path (if non-empty) over the defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("SPANNER_DATABASE"); ok && v != "" {
		c.Spanner.Database = v
	}
	if v, ok := lookup("GRPC_PORT"); ok && v != "" {
		c.Server.GRPCPort = v
	}
	if v, ok := lookup("HTTP_PORT"); ok && v != "" {
		c.Server.HTTPPort = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup("SUNRISE_DISCOUNT"); ok && v != "" {
		c.Pricing.SunriseDiscount = v
	}
	if v, ok := lookup("PREMIUM_CACHE_TTL"); ok && v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PREMIUM_CACHE_TTL %q: %w", v, err)
		}
		c.Pricing.PremiumCacheTTL = ttl
	}
	return nil
}

// Validate checks required fields and ranges.
func (c Config) Validate() error {
	if c.Spanner.Database == "" {
		return errors.New("spanner.database is required")
	}
	for name, port := range map[string]string{"grpc_port": c.Server.GRPCPort, "http_port": c.Server.HTTPPort} {
		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			return fmt.Errorf("server.%s %q is not a valid port", name, port)
		}
	}
	if _, err := c.Pricing.SunriseDiscountFraction(); err != nil {
		return err
	}
	if c.Pricing.PremiumCacheTTL < 0 {
		return errors.New("pricing.premium_cache_ttl cannot be negative")
	}
	return nil
}

// SunriseDiscountFraction parses the sunrise discount, which must lie in [0, 1].
func (p PricingConfig) SunriseDiscountFraction() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(p.SunriseDiscount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("pricing.sunrise_discount %q: %w", p.SunriseDiscount, err)
	}
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("pricing.sunrise_discount %s must be between 0 and 1", d)
	}
	return d, nil
}
