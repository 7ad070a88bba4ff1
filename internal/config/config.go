package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration supports "30s"/"1m"/"2h" style values in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std converts d back to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all runtime settings for the account service.
type Config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    string `yaml:"port"`
		Prefork bool   `yaml:"prefork"`
	} `yaml:"server"`

	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`

	Logger struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
		Level      string `yaml:"level"`
	} `yaml:"logger"`

	Cache struct {
		RedisHost           string   `yaml:"redis_host"`
		AccountCacheDB      int      `yaml:"account_cache_db"`
		RateLimitDB         int      `yaml:"rate_limit_db"`
		AccountCacheEnabled bool     `yaml:"account_cache_enabled"`
		AccountCacheTTL     Duration `yaml:"account_cache_ttl"`
	} `yaml:"cache"`

	RateLimiter struct {
		Interval          Duration `yaml:"interval"`
		UserLimit         int      `yaml:"user_limit"`
		EnableUserLimiter bool     `yaml:"enable_user_limiter"`
	} `yaml:"rate_limiter"`

	Security struct {
		ForceHTTPS bool `yaml:"force_https"`
	} `yaml:"security"`
}

func defaults() Config {
	var cfg Config
	cfg.Server.Port = ":8080"
	cfg.Logger.Level = "info"
	cfg.Logger.MaxSizeMB = 50
	cfg.Logger.MaxBackups = 3
	cfg.Logger.MaxAgeDays = 14
	cfg.Cache.AccountCacheTTL = Duration(5 * time.Minute)
	cfg.RateLimiter.Interval = Duration(time.Minute)
	return cfg
}

// Load reads the config file named by CONFIG_PATH, falling back to
// config.yaml in the working directory.
func Load() Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the config at path. A missing file yields
// the defaults; an unreadable or invalid file panics, since the service
// cannot run with a broken configuration.
func LoadFrom(path string) Config {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			panic(fmt.Sprintf("cannot parse config %s: %v", path, err))
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults apply
	default:
		panic(fmt.Sprintf("cannot read config %s: %v", path, err))
	}

	if cfg.Server.Port == "" {
		panic("config: server.port must not be empty")
	}
	if cfg.RateLimiter.Interval.Std() <= 0 {
		panic("config: rate_limiter.interval must be positive")
	}
	if cfg.RateLimiter.UserLimit < 0 {
		panic("config: rate_limiter.user_limit must not be negative")
	}
	if cfg.Cache.AccountCacheEnabled {
		if cfg.Cache.RedisHost == "" {
			panic("config: cache.redis_host required when account cache is enabled")
		}
		if cfg.Cache.AccountCacheTTL.Std() <= 0 {
			panic("config: cache.account_cache_ttl must be positive")
		}
	}

	return cfg
}
