package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type WatchConfig struct {
	Inputs       []string `toml:"inputs"`
	Location     string   `toml:"location"`
	DebounceMs   int      `toml:"debounce_ms"`   // milliseconds, 0 = default (500ms)
	RasterFormat string   `toml:"raster_format"` // output extension for .qoi inputs
}

func (w WatchConfig) DebounceDuration() time.Duration {
	if w.DebounceMs > 0 {
		return time.Duration(w.DebounceMs) * time.Millisecond
	}
	return 500 * time.Millisecond
}

type Config struct {
	Watch WatchConfig `toml:"watch"`
}

func defaultConfig() *Config {
	return &Config{
		Watch: WatchConfig{
			RasterFormat: "png",
		},
	}
}

// LoadConfig reads a TOML config from path. A missing file is not an error;
// the defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.Watch.RasterFormat == "" {
		cfg.Watch.RasterFormat = "png"
	}
	return cfg, nil
}
