// Package config loads the light curve tool configuration from defaults, an
// optional YAML file and the environment, in that order of precedence.
// Environment variables use the KPLR prefix with underscores for nesting,
// e.g. KPLR_DETREND_WINDOW; the data root additionally honors the bare
// KPLR_ROOT variable that Kepler archive tooling traditionally uses.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cwbudde/algo-lightcurve/baseline"
	"github.com/cwbudde/algo-lightcurve/kepler"
)

// Detrend configures the automatic baseline subtraction applied on append.
// Method selects the strategy: "savgol" fits a Savitzky-Golay baseline with
// Window and Order, "running-median" subtracts a running median over a time
// window of Width seconds.
type Detrend struct {
	Enabled bool    `mapstructure:"enabled"`
	Method  string  `mapstructure:"method"`
	Window  int     `mapstructure:"window"`
	Order   int     `mapstructure:"order"`
	Width   float64 `mapstructure:"width"`
}

// Log configures the logger.
type Log struct {
	Level   string `mapstructure:"level"`
	DevMode bool   `mapstructure:"dev_mode"`
}

// Config drives the light curve tools. Workers 0 means one worker per CPU.
type Config struct {
	DataRoot string  `mapstructure:"data_root"`
	Cadence  string  `mapstructure:"cadence"`
	Quarters string  `mapstructure:"quarters"`
	MaxGap   int     `mapstructure:"max_gap"`
	Workers  int     `mapstructure:"workers"`
	Detrend  Detrend `mapstructure:"detrend"`
	Log      Log     `mapstructure:"log"`
}

// Load reads the configuration. An empty path skips the file and uses
// defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("cadence", "long")
	v.SetDefault("quarters", "1-9")
	v.SetDefault("max_gap", 1)
	v.SetDefault("workers", 0)
	v.SetDefault("detrend.enabled", false)
	v.SetDefault("detrend.method", "savgol")
	v.SetDefault("detrend.window", 101)
	v.SetDefault("detrend.order", 3)
	v.SetDefault("detrend.width", 0.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.dev_mode", false)

	v.SetEnvPrefix("KPLR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("data_root", "KPLR_DATA_ROOT", "KPLR_ROOT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields that later stages would otherwise reject with
// less context.
func (c *Config) Validate() error {
	if _, err := kepler.ParseCadence(c.Cadence); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.MaxGap < 0 {
		return fmt.Errorf("config: max_gap %d must not be negative", c.MaxGap)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers %d must not be negative", c.Workers)
	}
	if c.Detrend.Enabled {
		switch c.Detrend.Method {
		case "", "savgol":
			if _, err := baseline.NewSavGol(c.Detrend.Window, c.Detrend.Order); err != nil {
				return fmt.Errorf("config: %w", err)
			}
		case "running-median":
			if c.Detrend.Width <= 0 {
				return fmt.Errorf("config: detrend width %v must be positive", c.Detrend.Width)
			}
		default:
			return fmt.Errorf("config: unknown detrend method %q", c.Detrend.Method)
		}
	}
	return nil
}
