package series

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cecil-the-coder/speedracer/pkg/race"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantField string
	}{
		{
			name:   "valid",
			config: Config{DeadlineMS: 100, Heats: 2, StartRatePerSec: 1},
		},
		{
			name:      "zero deadline",
			config:    Config{Heats: 2, StartRatePerSec: 1},
			wantField: "deadline_ms",
		},
		{
			name:      "zero heats",
			config:    Config{DeadlineMS: 100, StartRatePerSec: 1},
			wantField: "heats",
		},
		{
			name:      "zero start rate",
			config:    Config{DeadlineMS: 100, Heats: 2},
			wantField: "start_rate_per_sec",
		},
		{
			name:      "negative sample size",
			config:    Config{DeadlineMS: 100, Heats: 2, StartRatePerSec: 1, SampleSize: -1},
			wantField: "sample_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var cfgErr *race.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "series.yaml")
	data := "deadline_ms: 300\nheats: 5\nstart_rate_per_sec: 2.5\nsample_size: 64\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 300*time.Millisecond, config.Deadline())
	assert.Equal(t, 5, config.Heats)
	assert.Equal(t, 2.5, config.StartRatePerSec)
	assert.Equal(t, 64, config.SampleSize)
}

func TestDefaultConfig(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}
