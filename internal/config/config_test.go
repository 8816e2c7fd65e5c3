package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate clears every mapped variable and points Load at an empty directory.
func isolate(t *testing.T) LoadOptions {
	t.Helper()
	for key := range envMappings {
		name := strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name) //nolint:errcheck // restored by t.Setenv cleanup
	}
	t.Setenv(ConfigPathEnvVar, "")

	return LoadOptions{EnvFile: filepath.Join(t.TempDir(), "missing.env")}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(isolate(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Model.ZeroAsMissing)
	assert.True(t, filepath.IsAbs(cfg.Model.EncoderPath))
	assert.Equal(t, "preprocessor.json", filepath.Base(cfg.Model.EncoderPath))
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 60*time.Second, cfg.Cache.TTL)
	assert.Equal(t, 100, cfg.Cache.MaxEntries)
	assert.Equal(t, "en", cfg.App.Locale)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	opts := isolate(t)
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CACHE_MAX_ENTRIES", "500")
	t.Setenv("MODEL_ZERO_AS_MISSING", "false")
	t.Setenv("RATELIMIT_RPS", "2.5")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("APP_LOCALE", "fr-FR")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 500, cfg.Cache.MaxEntries)
	assert.False(t, cfg.Model.ZeroAsMissing)
	assert.InDelta(t, 2.5, cfg.RateLimit.RPS, 1e-9)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "fr-FR", cfg.App.Locale)
}

func TestLoad_YAMLFile(t *testing.T) {
	opts := isolate(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: staging
model:
  encoder_path: /srv/artifacts/dv.json
  booster_path: /srv/artifacts/xgb.json
cache:
  enabled: false
server:
  cors_origins:
    - https://loyer.example
`), 0o600))
	opts.ConfigPath = path

	// Environment still wins over the file.
	t.Setenv("MODEL_BOOSTER_PATH", "/opt/model.json")

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "/srv/artifacts/dv.json", cfg.Model.EncoderPath)
	assert.Equal(t, "/opt/model.json", cfg.Model.BoosterPath)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, []string{"https://loyer.example"}, cfg.Server.CORSOrigins)
}

func TestLoad_EnvFile(t *testing.T) {
	opts := isolate(t)

	opts.EnvFile = filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(opts.EnvFile, []byte("# local\nLOG_LEVEL=warn\nSERVER_PORT=7000\n"), 0o600))
	t.Setenv("SERVER_PORT", "7100")
	t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") }) //nolint:errcheck // test cleanup

	cfg, err := Load(opts)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "7100", cfg.Server.Port, "process environment wins over .env")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	opts := isolate(t)
	opts.ConfigPath = filepath.Join(t.TempDir(), "nope.yaml")

	_, err := Load(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid defaults", func(*Config) {}, ""},
		{"bad environment", func(c *Config) { c.Environment = "prod" }, "invalid environment"},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"empty port", func(c *Config) { c.Server.Port = "" }, "port cannot be empty"},
		{"zero timeout", func(c *Config) { c.Server.WriteTimeout = 0 }, "write_timeout must be positive"},
		{"no model path", func(c *Config) { c.Model.BoosterPath = "" }, "booster_path are required"},
		{"zero cache ttl", func(c *Config) { c.Cache.TTL = 0 }, "cache.ttl"},
		{"zero cache size", func(c *Config) { c.Cache.MaxEntries = 0 }, "cache.max_entries"},
		{"disabled cache skips sizing", func(c *Config) {
			c.Cache.Enabled = false
			c.Cache.MaxEntries = 0
		}, ""},
		{"bad rate limit", func(c *Config) { c.RateLimit.Burst = 0 }, "ratelimit"},
		{"bad locale", func(c *Config) { c.App.Locale = "not a locale!" }, "invalid app.locale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/artifacts/model.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "artifacts", "model.json"), got)

	got, err = expandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = expandPath("/a/b/../c.json")
	require.NoError(t, err)
	assert.Equal(t, "/a/c.json", got)
}
