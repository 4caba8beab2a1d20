package race

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents configuration for a race track
type Config struct {
	// DeadlineMS is the shared deadline in milliseconds after which
	// unsettled racers are disqualified
	DeadlineMS int `yaml:"deadline_ms"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DeadlineMS: 5000,
	}
}

// Deadline returns the configured deadline as a duration
func (c *Config) Deadline() time.Duration {
	return time.Duration(c.DeadlineMS) * time.Millisecond
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if c.DeadlineMS <= 0 {
		return &ConfigError{Field: "deadline_ms", Message: "must be positive"}
	}
	return nil
}

// LoadConfig reads and validates a race configuration from a YAML file
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

// NewFromConfig creates a RaceTrack from a validated configuration
func NewFromConfig[T any](config *Config) (*RaceTrack[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return DisqualifyAfter[T](config.Deadline()), nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
