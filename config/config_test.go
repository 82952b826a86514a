package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/sartorproj/casecurve/timeseries"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvRegion, "")
	t.Setenv(EnvCasesFile, "")
	t.Setenv(EnvLogLevel, "")
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultCasesURL, cfg.Data.CasesURL)
	assert.Equal(t, timeseries.DefaultWindow, cfg.Analysis.Window)
	assert.Equal(t, 60*time.Second, cfg.GetTimeout())
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPartialFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "casecurve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
analysis:
  region: Italy
  fit_start: 20
  fit_end: 40
data:
  timeout: 5s
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Italy", cfg.Analysis.Region)
	assert.Equal(t, 20, cfg.Analysis.FitStart)
	assert.Equal(t, 40, cfg.Analysis.FitEnd)
	assert.Equal(t, 5*time.Second, cfg.GetTimeout())

	// untouched keys keep their defaults
	assert.Equal(t, 7, cfg.Analysis.Window)
	assert.Equal(t, "cases.csv", cfg.Data.CasesFile)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analysis: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	clearEnv(t)

	cfg := DefaultConfig()
	cfg.Analysis.Region = "Spain"
	cfg.Analysis.InitialRate = 0.2
	cfg.Logging.Development = true

	path := filepath.Join(t.TempDir(), "nested", "casecurve.yaml")
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("with file", func(t *testing.T) {
		t.Setenv(EnvRegion, "Germany")
		t.Setenv(EnvCasesFile, "/tmp/cases.csv")
		t.Setenv(EnvLogLevel, "debug")

		path := filepath.Join(t.TempDir(), "casecurve.yaml")
		require.NoError(t, os.WriteFile(path, []byte("analysis:\n  region: Italy\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "Germany", cfg.Analysis.Region)
		assert.Equal(t, "/tmp/cases.csv", cfg.Data.CasesFile)

		level, err := cfg.GetLogLevel()
		require.NoError(t, err)
		assert.Equal(t, zapcore.DebugLevel, level)
	})

	t.Run("without file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv(EnvRegion, "France")

		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "France", cfg.Analysis.Region)
	})

	t.Run("empty values are ignored", func(t *testing.T) {
		clearEnv(t)

		cfg := &Config{Analysis: AnalysisConfig{Region: "US"}}
		cfg.applyEnvOverrides()
		assert.Equal(t, "US", cfg.Analysis.Region)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero window", func(c *Config) { c.Analysis.Window = 0 }},
		{"negative fit start", func(c *Config) { c.Analysis.FitStart = -1 }},
		{"short fit window", func(c *Config) { c.Analysis.FitStart, c.Analysis.FitEnd = 10, 11 }},
		{"no iterations", func(c *Config) { c.Analysis.MaxIterations = 0 }},
		{"zero width", func(c *Config) { c.Output.Width = 0 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad timeout", func(c *Config) { c.Data.Timeout = "soon" }},
		{"no cases file", func(c *Config) { c.Data.CasesFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetTimeoutFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Data.Timeout = "not a duration"
	assert.Equal(t, 60*time.Second, cfg.GetTimeout())
}
