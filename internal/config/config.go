// Package config loads application configuration from struct defaults, an
// optional YAML file and environment variables, in increasing precedence.
// A .env file, when present, is read into the environment first.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"golang.org/x/text/language"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when no path is given.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/loyer/config.yaml",
}

// Config holds the application configuration.
type Config struct {
	Environment string          `koanf:"env"`
	Log         LogConfig       `koanf:"log"`
	Server      ServerConfig    `koanf:"server"`
	Model       ModelConfig     `koanf:"model"`
	Cache       CacheConfig     `koanf:"cache"`
	RateLimit   RateLimitConfig `koanf:"ratelimit"`
	App         AppConfig       `koanf:"app"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or pretty; empty picks by environment
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// ModelConfig locates the encoder and model artifacts.
type ModelConfig struct {
	EncoderPath   string `koanf:"encoder_path"`
	BoosterPath   string `koanf:"booster_path"`
	ZeroAsMissing bool   `koanf:"zero_as_missing"`
}

// CacheConfig sizes the response cache.
type CacheConfig struct {
	Enabled    bool          `koanf:"enabled"`
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// RateLimitConfig controls per-client request limiting.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

// AppConfig holds presentation settings.
type AppConfig struct {
	// Locale is a BCP 47 tag used to format the rent in messages.
	Locale string `koanf:"locale"`
}

// LoadOptions points Load at explicit files. Zero values use the defaults.
type LoadOptions struct {
	ConfigPath string
	EnvFile    string
}

func defaultConfig() *Config {
	return &Config{
		Environment: "development",
		Log:         LogConfig{Level: "info"},
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Model: ModelConfig{
			EncoderPath:   "artifacts/preprocessor.json",
			BoosterPath:   "artifacts/rent_model.json",
			ZeroAsMissing: true,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        60 * time.Second,
			MaxEntries: 100,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
		},
		App: AppConfig{Locale: "en"},
	}
}

// envMappings maps environment variable names (lowercased) to config keys.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"env":                     "env",
	"log_level":               "log.level",
	"log_format":              "log.format",
	"server_port":             "server.port",
	"port":                    "server.port",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_idle_timeout":     "server.idle_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":            "server.cors_origins",
	"model_encoder_path":      "model.encoder_path",
	"model_booster_path":      "model.booster_path",
	"model_zero_as_missing":   "model.zero_as_missing",
	"cache_enabled":           "cache.enabled",
	"cache_ttl":               "cache.ttl",
	"cache_max_entries":       "cache.max_entries",
	"ratelimit_enabled":       "ratelimit.enabled",
	"ratelimit_rps":           "ratelimit.rps",
	"ratelimit_burst":         "ratelimit.burst",
	"app_locale":              "app.locale",
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// sliceConfigPaths are split on commas when they arrive as strings.
var sliceConfigPaths = []string{"server.cors_origins"}

// Load builds the configuration with precedence env > file > defaults and
// validates it.
func Load(opts LoadOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		return p
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		var parts []string
		for p := range strings.SplitSeq(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("set %s: %w", path, err)
		}
	}
	return nil
}

// Validate checks that all config values are present and consistent.
func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.Environment)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Log.Level)
	}

	switch c.Log.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("invalid log format: %q (must be json or pretty)", c.Log.Format)
	}

	if c.Server.Port == "" {
		return errors.New("server port cannot be empty")
	}
	for name, d := range map[string]time.Duration{
		"read_timeout":     c.Server.ReadTimeout,
		"write_timeout":    c.Server.WriteTimeout,
		"idle_timeout":     c.Server.IdleTimeout,
		"shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("server.%s must be positive, got %s", name, d)
		}
	}

	if c.Model.EncoderPath == "" || c.Model.BoosterPath == "" {
		return errors.New("model.encoder_path and model.booster_path are required")
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
		}
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("ratelimit.rps and ratelimit.burst must be positive, got %v/%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}

	if _, err := language.Parse(c.App.Locale); err != nil {
		return fmt.Errorf("invalid app.locale %q: %w", c.App.Locale, err)
	}

	return nil
}

// IsProduction reports whether the server runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

func (c *Config) expandPaths() error {
	var err error
	if c.Model.EncoderPath, err = expandPath(c.Model.EncoderPath); err != nil {
		return fmt.Errorf("invalid encoder path: %w", err)
	}
	if c.Model.BoosterPath, err = expandPath(c.Model.BoosterPath); err != nil {
		return fmt.Errorf("invalid model path: %w", err)
	}
	return nil
}

// expandPath expands ~ and makes the path absolute. Empty stays empty.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}
