// Package config loads the device configuration for the daqstream daemon.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the daemon configuration. Zero values are filled with defaults
// by Load; Validate rejects combinations the core cannot run with.
type Config struct {
	// Listen is the control/diagnostics HTTP listen address.
	Listen string `yaml:"listen"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Clock    ClockConfig    `yaml:"clock"`
	Watchdog WatchdogConfig `yaml:"watchdog"`
	Engine   EngineConfig   `yaml:"engine"`
}

// ClockConfig configures the sample clock synthesizer.
type ClockConfig struct {
	// FrequencyHz is the initial sample clock rate.
	FrequencyHz uint32 `yaml:"frequency_hz"`
}

// WatchdogConfig configures stall detection.
type WatchdogConfig struct {
	// TickInterval is the evaluation period.
	TickInterval time.Duration `yaml:"tick_interval"`
	// StallThreshold is the consecutive no-progress tick count that
	// triggers recovery.
	StallThreshold uint32 `yaml:"stall_threshold"`
	// MaxRecoveries caps consecutive recoveries (0 = unlimited).
	MaxRecoveries uint32 `yaml:"max_recoveries"`
}

// EngineConfig describes the fixed transfer-engine geometry. These values
// are bound at configuration time and never change for the life of the
// process.
type EngineConfig struct {
	BufferCount int `yaml:"buffer_count"`
	BufferSize  int `yaml:"buffer_size"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   ":8090",
		LogLevel: "info",
		Clock: ClockConfig{
			FrequencyHz: 1_000_000,
		},
		Watchdog: WatchdogConfig{
			TickInterval:   100 * time.Millisecond,
			StallThreshold: 3,
			MaxRecoveries:  0,
		},
		Engine: EngineConfig{
			BufferCount: 2,
			BufferSize:  16384,
		},
	}
}

// Load reads a YAML config file, fills defaults, and validates. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Clock.FrequencyHz == 0 {
		c.Clock.FrequencyHz = def.Clock.FrequencyHz
	}
	if c.Watchdog.TickInterval == 0 {
		c.Watchdog.TickInterval = def.Watchdog.TickInterval
	}
	if c.Watchdog.StallThreshold == 0 {
		c.Watchdog.StallThreshold = def.Watchdog.StallThreshold
	}
	if c.Engine.BufferCount == 0 {
		c.Engine.BufferCount = def.Engine.BufferCount
	}
	if c.Engine.BufferSize == 0 {
		c.Engine.BufferSize = def.Engine.BufferSize
	}
}

// Validate rejects configurations the core cannot run with.
func (c Config) Validate() error {
	if c.Watchdog.TickInterval <= 0 {
		return fmt.Errorf("watchdog.tick_interval must be positive, got %s", c.Watchdog.TickInterval)
	}
	if c.Watchdog.StallThreshold < 1 {
		return fmt.Errorf("watchdog.stall_threshold must be at least 1")
	}
	if c.Engine.BufferCount != 2 {
		// The transfer topology is fixed: two producer sockets feeding
		// one consumer. Other geometries are not supported.
		return fmt.Errorf("engine.buffer_count must be 2, got %d", c.Engine.BufferCount)
	}
	if c.Engine.BufferSize <= 0 {
		return fmt.Errorf("engine.buffer_size must be positive, got %d", c.Engine.BufferSize)
	}
	return nil
}
