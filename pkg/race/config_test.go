package race

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_YAML_Parsing(t *testing.T) {
	yamlConfig := `
deadline_ms: 300
`

	var config Config
	err := yaml.Unmarshal([]byte(yamlConfig), &config)
	require.NoError(t, err)

	assert.Equal(t, 300, config.DeadlineMS)
	assert.Equal(t, 300*time.Millisecond, config.Deadline())
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 5000, config.DeadlineMS)
	assert.NoError(t, config.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantField string
	}{
		{
			name:   "valid",
			config: Config{DeadlineMS: 100},
		},
		{
			name:      "zero deadline",
			config:    Config{DeadlineMS: 0},
			wantField: "deadline_ms",
		},
		{
			name:      "negative deadline",
			config:    Config{DeadlineMS: -5},
			wantField: "deadline_ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "race.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deadline_ms: 250\n"), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 250, config.DeadlineMS)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "race.yaml")
	require.NoError(t, os.WriteFile(path, []byte("deadline_ms: -1\n"), 0o644))

	_, err := LoadConfig(path)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "deadline_ms", cfgErr.Field)
}

func TestNewFromConfig(t *testing.T) {
	track, err := NewFromConfig[string](&Config{DeadlineMS: 100})
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, track.deadline)

	_, err = NewFromConfig[string](&Config{})
	assert.Error(t, err)
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Field: "deadline_ms", Message: "must be positive"}
	assert.Equal(t, "deadline_ms: must be positive", err.Error())
}
