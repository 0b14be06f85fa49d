package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/attractor/internal/attractor"
	"github.com/san-kum/attractor/internal/render"
)

const (
	DefaultNum       = 3
	DefaultWidth     = 800
	DefaultHeight    = 800
	DefaultWorkers   = 1
	DefaultOutput    = "."
	DefaultFormat    = "png"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

type Config struct {
	Num               int           `yaml:"num"`
	Iterations        int           `yaml:"iterations"`
	Width             int           `yaml:"width"`
	Height            int           `yaml:"height"`
	DivergenceLimit   float64       `yaml:"divergence_limit"`
	ConvergenceLimit  float64       `yaml:"convergence_limit"`
	LyapunovThreshold float64       `yaml:"lyapunov_threshold"`
	Sensitivity       float64       `yaml:"sensitivity"`
	Warmup            int           `yaml:"warmup"`
	Seed              int64         `yaml:"seed"`
	Workers           int           `yaml:"workers"`
	MaxAttempts       int           `yaml:"max_attempts"`
	Budget            time.Duration `yaml:"budget"`
	Intensity         uint8         `yaml:"intensity"`
	Output            string        `yaml:"output"`
	Format            string        `yaml:"format"`
	Preview           bool          `yaml:"preview"`
	Metadata          bool          `yaml:"metadata"`
	LogLevel          string        `yaml:"log_level"`
	LogFormat         string        `yaml:"log_format"`
}

func DefaultConfig() *Config {
	return &Config{
		Num:               DefaultNum,
		Iterations:        attractor.DefaultMaxIterations,
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		DivergenceLimit:   attractor.DefaultDivergenceLimit,
		ConvergenceLimit:  attractor.DefaultConvergenceLimit,
		LyapunovThreshold: attractor.DefaultLyapunovThreshold,
		Sensitivity:       attractor.DefaultSensitivity,
		Warmup:            attractor.DefaultWarmup,
		Workers:           DefaultWorkers,
		Intensity:         render.DefaultIntensity,
		Output:            DefaultOutput,
		Format:            DefaultFormat,
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
	}
}

// Load reads a YAML file on top of the defaults, so absent keys keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params extracts the evaluation limits.
func (c *Config) Params() attractor.Params {
	return attractor.Params{
		MaxIterations:     c.Iterations,
		DivergenceLimit:   c.DivergenceLimit,
		ConvergenceLimit:  c.ConvergenceLimit,
		LyapunovThreshold: c.LyapunovThreshold,
		Warmup:            c.Warmup,
	}
}

func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	switch {
	case c.Num < 0:
		return fmt.Errorf("num must not be negative, got %d", c.Num)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("resolution must be positive, got %dx%d", c.Width, c.Height)
	case !(c.Sensitivity > 0):
		return fmt.Errorf("sensitivity must be positive, got %g", c.Sensitivity)
	case c.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	case c.MaxAttempts < 0:
		return fmt.Errorf("max_attempts must not be negative, got %d", c.MaxAttempts)
	case c.Budget < 0:
		return fmt.Errorf("budget must not be negative, got %s", c.Budget)
	}
	if !validFormat(c.Format) {
		return fmt.Errorf("unknown format %q", c.Format)
	}
	return nil
}

func validFormat(f string) bool {
	if f == "svg" {
		return true
	}
	for _, known := range render.Formats {
		if f == known {
			return true
		}
	}
	return false
}
