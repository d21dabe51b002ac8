// Package config loads server configuration from an optional YAML file,
// RPGSHEET_ environment variables and defaults.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/KirkDiggler/rpg-sheet/internal/errors"
)

// EnvPrefix prefixes every environment override, e.g. RPGSHEET_HTTP_PORT
const EnvPrefix = "RPGSHEET"

// Roll log backends
const (
	RollLogMemory = "memory"
	RollLogRedis  = "redis"
)

// HTTPConfig holds the HTTP API listener settings
type HTTPConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// AllowedOrigins limits websocket origins; empty allows any
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Addr returns the "host:port" listen address
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// GRPCConfig holds the gRPC listener settings
type GRPCConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the "host:port" listen address
func (g GRPCConfig) Addr() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}

// RedisConfig holds the Redis connection settings
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
	UseTLS   bool   `mapstructure:"use_tls"`
}

// RollsConfig holds roll storage settings
type RollsConfig struct {
	// LogBackend is "memory" or "redis"
	LogBackend   string        `mapstructure:"log_backend"`
	HistoryTTL   time.Duration `mapstructure:"history_ttl"`
	StreamBuffer int           `mapstructure:"stream_buffer"`
}

// RulesConfig holds the dnd5e API client settings
type RulesConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// LogFileConfig enables rotated file output when Path is set
type LogFileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// LoggingConfig holds structured logging settings
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	Level string `mapstructure:"level"`
	// Format is "json" or "console"
	Format string        `mapstructure:"format"`
	File   LogFileConfig `mapstructure:"file"`
}

// Config is the top-level server configuration
type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	GRPC    GRPCConfig    `mapstructure:"grpc"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Rolls   RollsConfig   `mapstructure:"rolls"`
	Rules   RulesConfig   `mapstructure:"rules"`
	Logging LoggingConfig `mapstructure:"logging"`
}

var (
	logLevels   = []string{"debug", "info", "warn", "error"}
	logFormats  = []string{"json", "console"}
	logBackends = []string{RollLogMemory, RollLogRedis}
)

// Validate checks every field and reports all violations at once
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	validatePort("http.port", c.HTTP.Port, vb)
	validatePort("grpc.port", c.GRPC.Port, vb)

	// roll history always lives in redis; the shared log may not
	errors.ValidateRequired("redis.address", c.Redis.Address, vb)
	errors.ValidateEnum("rolls.log_backend", c.Rolls.LogBackend, logBackends, vb)
	if c.Rolls.HistoryTTL <= 0 {
		vb.InvalidField("rolls.history_ttl", "must be positive")
	}
	if c.Rolls.StreamBuffer < 0 {
		vb.InvalidField("rolls.stream_buffer", "must not be negative")
	}

	if c.Rules.Timeout < 0 {
		vb.InvalidField("rules.timeout", "must not be negative")
	}
	if c.Rules.CacheTTL < 0 {
		vb.InvalidField("rules.cache_ttl", "must not be negative")
	}

	errors.ValidateEnum("logging.level", c.Logging.Level, logLevels, vb)
	errors.ValidateEnum("logging.format", c.Logging.Format, logFormats, vb)

	return vb.Build()
}

func validatePort(field string, port int, vb *errors.ValidationBuilder) {
	if port < 1 || port > 65535 {
		vb.Fieldf(field, "must be 1-65535, got %d", port)
	}
}

// Load reads configuration from path, when given, applies RPGSHEET_
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := New()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}

	return LoadFromViper(v)
}

// New returns a viper instance with defaults and environment overrides set.
// Callers may bind flags to it before calling LoadFromViper.
func New() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// LoadFromViper builds a Config from an already configured viper instance
func LoadFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	cfg.Rolls.LogBackend = strings.ToLower(cfg.Rolls.LogBackend)
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	cfg.HTTP.AllowedOrigins = slices.DeleteFunc(cfg.HTTP.AllowedOrigins, func(s string) bool {
		return strings.TrimSpace(s) == ""
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.allowed_origins", []string{})

	v.SetDefault("grpc.host", "0.0.0.0")
	v.SetDefault("grpc.port", 50051)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.use_tls", false)

	v.SetDefault("rolls.log_backend", RollLogRedis)
	v.SetDefault("rolls.history_ttl", "24h")
	v.SetDefault("rolls.stream_buffer", 16)

	v.SetDefault("rules.base_url", "https://www.dnd5eapi.co/api/2014/")
	v.SetDefault("rules.timeout", "30s")
	v.SetDefault("rules.cache_ttl", "24h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file.path", "")
	v.SetDefault("logging.file.max_size_mb", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age_days", 28)
}
