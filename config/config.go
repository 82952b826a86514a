package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/casecurve/timeseries"
)

// Default source URLs.
const (
	DefaultCasesURL  = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/time_series_covid19_confirmed_global.csv"
	DefaultShapesURL = "https://naciscdn.org/naturalearth/110m/cultural/ne_110m_admin_0_countries.zip"
)

// Environment variables that override the file.
const (
	EnvRegion    = "CASECURVE_REGION"
	EnvCasesFile = "CASECURVE_CASES_FILE"
	EnvLogLevel  = "CASECURVE_LOG_LEVEL"
)

// Config holds all casecurve configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DataConfig locates the inputs.
type DataConfig struct {
	CasesURL  string `yaml:"cases_url"`
	CasesFile string `yaml:"cases_file"`
	ShapesURL string `yaml:"shapes_url"`
	ShapesDir string `yaml:"shapes_dir"`
	Timeout   string `yaml:"timeout"`
}

// AnalysisConfig holds the hand-picked analysis constants.
type AnalysisConfig struct {
	Region string `yaml:"region"`
	Window int    `yaml:"window"` // moving average

	// Fit window over the daily series, half-open. FitEnd <= 0 means the
	// end of the series.
	FitStart int `yaml:"fit_start"`
	FitEnd   int `yaml:"fit_end"`

	InitialScale  float64 `yaml:"initial_scale"`
	InitialRate   float64 `yaml:"initial_rate"`
	MaxIterations int     `yaml:"max_iterations"`
}

// OutputConfig controls written files.
type OutputConfig struct {
	Dir    string  `yaml:"dir"`
	Width  float64 `yaml:"width"`  // inches
	Height float64 `yaml:"height"` // inches
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			CasesURL:  DefaultCasesURL,
			CasesFile: "cases.csv",
			ShapesURL: DefaultShapesURL,
			ShapesDir: "shapes",
			Timeout:   "60s",
		},
		Analysis: AnalysisConfig{
			Region:        "US",
			Window:        timeseries.DefaultWindow,
			FitStart:      0,
			FitEnd:        0,
			InitialScale:  1,
			InitialRate:   0.1,
			MaxIterations: 200,
		},
		Output: OutputConfig{
			Dir:    "out",
			Width:  8,
			Height: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if region := os.Getenv(EnvRegion); region != "" {
		c.Analysis.Region = region
	}
	if file := os.Getenv(EnvCasesFile); file != "" {
		c.Data.CasesFile = file
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
}

// GetTimeout returns the download timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Data.Timeout)
	if err != nil || d <= 0 {
		return 60 * time.Second
	}
	return d
}

// GetLogLevel parses the logging level.
func (c *Config) GetLogLevel() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.Logging.Level)
}

// Validate checks the configuration for values no command can work with.
func (c *Config) Validate() error {
	var errs []error

	if c.Data.CasesFile == "" {
		errs = append(errs, errors.New("data.cases_file is empty"))
	}
	if c.Analysis.Window < 1 {
		errs = append(errs, fmt.Errorf("analysis.window must be positive, got %d", c.Analysis.Window))
	}
	if c.Analysis.FitStart < 0 {
		errs = append(errs, fmt.Errorf("analysis.fit_start must not be negative, got %d", c.Analysis.FitStart))
	}
	if c.Analysis.FitEnd > 0 && c.Analysis.FitEnd-c.Analysis.FitStart < 2 {
		errs = append(errs, fmt.Errorf("analysis fit window [%d, %d) has fewer than 2 points",
			c.Analysis.FitStart, c.Analysis.FitEnd))
	}
	if c.Analysis.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("analysis.max_iterations must be positive, got %d", c.Analysis.MaxIterations))
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		errs = append(errs, fmt.Errorf("output size %gx%g must be positive", c.Output.Width, c.Output.Height))
	}
	if _, err := c.GetLogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if _, err := time.ParseDuration(c.Data.Timeout); c.Data.Timeout != "" && err != nil {
		errs = append(errs, fmt.Errorf("data.timeout: %w", err))
	}

	return errors.Join(errs...)
}
