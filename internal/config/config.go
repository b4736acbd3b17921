package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/drgscore/internal/assess"
	"github.com/gyeh/drgscore/internal/classify"
)

// Config holds all runtime configuration for a drgscore run.
type Config struct {
	DSN         string
	FilePath    string // admissions Parquet file for plan/score
	RecordPath  string // single admission YAML for predict
	LogFormat   string // "text" or "json"
	LogLevel    string
	MetricsAddr string // serve /metrics on this address when set
	Force       bool
	SampleSize  int
	Engine      Engine
}

// Engine holds decision engine settings. They can come from flags or a YAML file.
type Engine struct {
	ClassifierModel  string  `yaml:"classifier_model"`
	DenialModel      string  `yaml:"denial_model"`
	UpgradeThreshold *float64 `yaml:"upgrade_threshold"` // nil until set; 0 is a valid threshold
	RevenueUnit      float64 `yaml:"revenue_unit"`
	Workers          int     `yaml:"workers"`
	LazyLoad         bool    `yaml:"lazy_load"`
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	Engine Engine `yaml:"engine"`
}

// LoadFromFile reads a YAML config file and merges its engine settings into Config.
// Values already set (from flags) take precedence over the file.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	e := &c.Engine
	if e.ClassifierModel == "" {
		e.ClassifierModel = yc.Engine.ClassifierModel
	}
	if e.DenialModel == "" {
		e.DenialModel = yc.Engine.DenialModel
	}
	if e.UpgradeThreshold == nil {
		e.UpgradeThreshold = yc.Engine.UpgradeThreshold
	}
	if e.RevenueUnit == 0 {
		e.RevenueUnit = yc.Engine.RevenueUnit
	}
	if e.Workers == 0 {
		e.Workers = yc.Engine.Workers
	}
	e.LazyLoad = e.LazyLoad || yc.Engine.LazyLoad
	return c.Engine.Validate()
}

// ApplyDefaults fills unset engine settings.
func (e *Engine) ApplyDefaults() {
	if e.UpgradeThreshold == nil {
		t := classify.DefaultUpgradeThreshold
		e.UpgradeThreshold = &t
	}
	if e.RevenueUnit == 0 {
		e.RevenueUnit = assess.DefaultRevenueUnit
	}
	if e.Workers <= 0 {
		e.Workers = runtime.NumCPU()
	}
}

// Threshold returns the upgrade threshold, or the default when it is unset.
func (e *Engine) Threshold() float64 {
	if e.UpgradeThreshold == nil {
		return classify.DefaultUpgradeThreshold
	}
	return *e.UpgradeThreshold
}

// Validate checks engine settings that have been set; unset values are left to ApplyDefaults.
func (e *Engine) Validate() error {
	if t := e.UpgradeThreshold; t != nil && (*t < 0 || *t > 1) {
		return fmt.Errorf("upgrade_threshold must be within [0, 1], got %v", *t)
	}
	if e.RevenueUnit < 0 {
		return fmt.Errorf("revenue_unit must not be negative, got %v", e.RevenueUnit)
	}
	if e.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", e.Workers)
	}
	return nil
}

// Validate checks the engine settings and that the input file is accessible.
func (c *Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if c.FilePath == "" {
		return fmt.Errorf("--file is required")
	}
	if _, err := os.Stat(c.FilePath); err != nil {
		return fmt.Errorf("file not accessible: %w", err)
	}
	return nil
}

// ValidateWithDSN checks both file and DSN fields.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or DATABASE_URL is required")
	}
	return nil
}
