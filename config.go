package motion

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds controller settings that are usually loaded from a file.
type Config struct {
	// FrameInterval is the interval of the TickerScheduler built by tools
	// such as the motion CLI. Zero means DefaultFrameInterval.
	FrameInterval time.Duration `yaml:"frame_interval"`
	// Debug logs state transitions and frame timing to stderr.
	Debug bool `yaml:"debug"`
	// Verbose adds timestamps and stack traces to error reports.
	Verbose bool `yaml:"verbose"`
}

type configFile struct {
	FrameInterval string `yaml:"frame_interval"`
	Debug         bool   `yaml:"debug"`
	Verbose       bool   `yaml:"verbose"`
}

// LoadConfig decodes a YAML document into a Config. Durations are written in
// time.ParseDuration syntax ("16ms", "1s").
func LoadConfig(data []byte) (Config, error) {
	var raw configFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg := Config{Debug: raw.Debug, Verbose: raw.Verbose}
	if raw.FrameInterval != "" {
		d, err := time.ParseDuration(raw.FrameInterval)
		if err != nil {
			return Config{}, fmt.Errorf("load config: frame_interval: %w", err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("load config: frame_interval must not be negative, got %v", d)
		}
		cfg.FrameInterval = d
	}
	return cfg.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	if c.FrameInterval == 0 {
		c.FrameInterval = DefaultFrameInterval
	}
	return c
}
