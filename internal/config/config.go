package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"trip-decoder/internal/logger"
	"trip-decoder/internal/match"
)

// Defaults.
const (
	DefaultVersion      = "1"
	DefaultCurrency     = "USD"
	DefaultCashPerPoint = 0.01
	DefaultRedisPattern = "trip:*"
	DefaultCollection   = "trips"
)

// Config is the root of a decoder config file.
type Config struct {
	Version  string       `yaml:"version"`
	Currency string       `yaml:"currency"`
	Points   PointsConfig `yaml:"points"`
	Decode   DecodeConfig `yaml:"decode"`
	Batch    BatchConfig  `yaml:"batch"`
	Log      LogConfig    `yaml:"log"`
	Store    StoreConfig  `yaml:"store"`
}

// PointsConfig values loyalty points in cash for TotalCashValue.
type PointsConfig struct {
	DefaultCashPerPoint float64            `yaml:"default_cash_per_point"`
	Programs            map[string]float64 `yaml:"programs"`
}

// DecodeConfig controls decoder leniency.
type DecodeConfig struct {
	// StrictItinerary propagates daily plan and accommodation failures
	// instead of dropping the failing entry.
	StrictItinerary bool `yaml:"strict_itinerary"`
}

// BatchConfig controls parallel batch decoding.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// StoreConfig names the document sources.
type StoreConfig struct {
	File  string      `yaml:"file"`
	Mongo MongoConfig `yaml:"mongo"`
	Redis RedisConfig `yaml:"redis"`
}

// MongoConfig locates a trip collection.
type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// RedisConfig locates trip documents stored as JSON strings.
type RedisConfig struct {
	Addr    string `yaml:"addr"`
	Pattern string `yaml:"pattern"`
	DB      int    `yaml:"db"`
}

// Default returns a config with every default applied.
func Default() *Config {
	var c Config

	applyDefaults(&c)

	return &c
}

// LoadFile loads and parses a YAML config file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = DefaultVersion
	}

	if c.Currency == "" {
		c.Currency = DefaultCurrency
	}

	if c.Points.DefaultCashPerPoint == 0 {
		c.Points.DefaultCashPerPoint = DefaultCashPerPoint
	}

	if c.Batch.Workers <= 0 {
		c.Batch.Workers = runtime.GOMAXPROCS(0)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Store.Mongo.Collection == "" {
		c.Store.Mongo.Collection = DefaultCollection
	}

	if c.Store.Redis.Pattern == "" {
		c.Store.Redis.Pattern = DefaultRedisPattern
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Points.DefaultCashPerPoint < 0 {
		errs = append(errs, fmt.Errorf("points.default_cash_per_point must not be negative, got %v",
			c.Points.DefaultCashPerPoint))
	}

	for name, rate := range c.Points.Programs {
		if rate < 0 {
			errs = append(errs, fmt.Errorf("points.programs.%s must not be negative, got %v", name, rate))
		}
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}

	return errors.Join(errs...)
}

// CashPerPoint returns the cash value of one point of program.
// Program names match case- and separator-insensitively.
func (p PointsConfig) CashPerPoint(program string) float64 {
	if program != "" {
		for name, rate := range p.Programs {
			if match.Equal(name, program) {
				return rate
			}
		}
	}

	return p.DefaultCashPerPoint
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logger.Level {
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}
