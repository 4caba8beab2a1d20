package series

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cecil-the-coder/speedracer/pkg/race"
)

// Config represents configuration for a race series
type Config struct {
	// DeadlineMS is the per-heat deadline in milliseconds
	DeadlineMS int `yaml:"deadline_ms"`

	// Heats is the number of heats the series runs
	Heats int `yaml:"heats"`

	// StartRatePerSec caps how many heats may start per second
	StartRatePerSec float64 `yaml:"start_rate_per_sec"`

	// SampleSize bounds how many finish-time samples the timing histogram
	// keeps; zero selects the default
	SampleSize int `yaml:"sample_size,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DeadlineMS:      5000,
		Heats:           3,
		StartRatePerSec: 1,
	}
}

// Deadline returns the configured per-heat deadline as a duration
func (c *Config) Deadline() time.Duration {
	return time.Duration(c.DeadlineMS) * time.Millisecond
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c.DeadlineMS <= 0 {
		return &race.ConfigError{Field: "deadline_ms", Message: "must be positive"}
	}
	if c.Heats <= 0 {
		return &race.ConfigError{Field: "heats", Message: "must be positive"}
	}
	if c.StartRatePerSec <= 0 {
		return &race.ConfigError{Field: "start_rate_per_sec", Message: "must be positive"}
	}
	if c.SampleSize < 0 {
		return &race.ConfigError{Field: "sample_size", Message: "must be non-negative"}
	}
	return nil
}

// LoadConfig reads and validates a series configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
