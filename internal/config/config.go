// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL      string `yaml:"url"`
	MaxConns int32  `yaml:"max_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type AdminConfig struct {
	Port       int           `yaml:"port"`
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	RateLimit  int           `yaml:"rate_limit"`  // requests per window per client
	RateWindow time.Duration `yaml:"rate_window"`
}

type PremiumConfig struct {
	DefaultDays int `yaml:"default_days"`
}

type LeaderboardConfig struct {
	DefaultLimit int `yaml:"default_limit"`
}

type Config struct {
	Log         LogConfig         `yaml:"log"`
	Database    DatabaseConfig    `yaml:"database"`
	Redis       RedisConfig       `yaml:"redis"`
	Admin       AdminConfig       `yaml:"admin"`
	Premium     PremiumConfig     `yaml:"premium"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`

	Runtime RuntimeConfig `yaml:"-"`
}

// PremiumDuration is the grant length used when an activation names no duration.
func (c *Config) PremiumDuration() time.Duration {
	return time.Duration(c.Premium.DefaultDays) * 24 * time.Hour
}

// LoadConfig reads the yaml file at path, applies defaults and the
// DATABASE_URL override, then validates the result.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, err
	}
	cfg.Runtime.Dev = dev
	return cfg, nil
}

func Parse(b []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}

	// defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	cfg.Redis.TTL = normalizeTTL(cfg.Redis.TTL)
	if cfg.Admin.Port == 0 {
		cfg.Admin.Port = 8080
	}
	if cfg.Admin.TokenTTL <= 0 {
		cfg.Admin.TokenTTL = 12 * time.Hour
	}
	if cfg.Admin.RateLimit <= 0 {
		cfg.Admin.RateLimit = 60
	}
	if cfg.Admin.RateWindow <= 0 {
		cfg.Admin.RateWindow = time.Minute
	}
	if cfg.Premium.DefaultDays <= 0 {
		cfg.Premium.DefaultDays = 30
	}
	if cfg.Leaderboard.DefaultLimit <= 0 {
		cfg.Leaderboard.DefaultLimit = 10
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Admin.JWTSecret == "" {
		return nil, errors.New("admin.jwt_secret is required")
	}
	return &cfg, nil
}

func normalizeTTL(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Hour
	}
	return d
}
