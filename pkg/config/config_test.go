package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acqlab/daqstream/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "daqstream.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, ":8090", cfg.Listen)
	assert.Equal(t, uint32(1_000_000), cfg.Clock.FrequencyHz)
	assert.Equal(t, 100*time.Millisecond, cfg.Watchdog.TickInterval)
	assert.Equal(t, uint32(3), cfg.Watchdog.StallThreshold)
	assert.Equal(t, uint32(0), cfg.Watchdog.MaxRecoveries, "unlimited recoveries by default")
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
listen: ":9000"
log_level: debug
clock:
  frequency_hz: 250000
watchdog:
  tick_interval: 50ms
  stall_threshold: 5
  max_recoveries: 4
engine:
  buffer_count: 2
  buffer_size: 4096
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, uint32(250_000), cfg.Clock.FrequencyHz)
	assert.Equal(t, 50*time.Millisecond, cfg.Watchdog.TickInterval)
	assert.Equal(t, uint32(5), cfg.Watchdog.StallThreshold)
	assert.Equal(t, uint32(4), cfg.Watchdog.MaxRecoveries)
	assert.Equal(t, 4096, cfg.Engine.BufferSize)
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
clock:
  frequency_hz: 48000
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(48_000), cfg.Clock.FrequencyHz)
	assert.Equal(t, ":8090", cfg.Listen)
	assert.Equal(t, uint32(3), cfg.Watchdog.StallThreshold)
	assert.Equal(t, 2, cfg.Engine.BufferCount)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "listen: [unclosed")
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*config.Config) {},
		},
		{
			name:    "negative tick interval",
			mutate:  func(c *config.Config) { c.Watchdog.TickInterval = -time.Second },
			wantErr: "tick_interval",
		},
		{
			name:    "unsupported buffer count",
			mutate:  func(c *config.Config) { c.Engine.BufferCount = 4 },
			wantErr: "buffer_count",
		},
		{
			name:    "zero buffer size",
			mutate:  func(c *config.Config) { c.Engine.BufferSize = -1 },
			wantErr: "buffer_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
