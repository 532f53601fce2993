package config_test

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nfrund/contractgen/internal/config"
)

func env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.FromEnv(env(nil))
		require.NoError(t, err)
		assert.Equal(t, config.Default(), cfg)
		assert.False(t, cfg.LenientTemplates)
		assert.Equal(t, "_contract.go", cfg.OutputSuffix)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg, err := config.FromEnv(env(map[string]string{
			config.EnvLenientTemplates: "true",
			config.EnvWatermill:        "1",
			config.EnvOutputSuffix:     "_gen.go",
			config.EnvWatchDebounce:    "1s",
			config.EnvLogFormat:        "json",
			config.EnvLogLevel:         "debug",
		}))
		require.NoError(t, err)
		assert.True(t, cfg.LenientTemplates)
		assert.True(t, cfg.Watermill)
		assert.Equal(t, "_gen.go", cfg.OutputSuffix)
		assert.Equal(t, time.Second, cfg.WatchDebounce)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("parse errors", func(t *testing.T) {
		_, err := config.FromEnv(env(map[string]string{config.EnvWatermill: "maybe"}))
		assert.ErrorContains(t, err, config.EnvWatermill)

		_, err = config.FromEnv(env(map[string]string{config.EnvWatchDebounce: "soon"}))
		assert.ErrorContains(t, err, config.EnvWatchDebounce)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
	}{
		{"suffix without .go", func(c *config.Config) { c.OutputSuffix = "_contract.txt" }, "OutputSuffix"},
		{"suffix with a directory", func(c *config.Config) { c.OutputSuffix = "gen/x.go" }, "OutputSuffix"},
		{"debounce too short", func(c *config.Config) { c.WatchDebounce = time.Millisecond }, "WatchDebounce"},
		{"unknown log format", func(c *config.Config) { c.LogFormat = "xml" }, "LogFormat"},
		{"unknown log level", func(c *config.Config) { c.LogLevel = "trace" }, "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field())
		})
	}
}
