// Package config loads the InkSynth settings file.
package config

import (
	"errors"
	"fmt"
	"os"

	"InkSynth/internal/state"

	"github.com/BurntSushi/toml"
)

// Config holds every setting of a studio session.
type Config struct {
	OSC    OSCConfig    `toml:"osc"`
	Canvas CanvasConfig `toml:"canvas"`
	Feed   FeedConfig   `toml:"feed"`
	Export ExportConfig `toml:"export"`
}

// OSCConfig is where recognized shapes are sent.
type OSCConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Address string `toml:"address"`
}

type CanvasConfig struct {
	Width      int `toml:"width"`
	Height     int `toml:"height"`
	// MaxHistory is the number of undo steps. Each one keeps a copy of the
	// canvas, width*height*4 bytes.
	MaxHistory int `toml:"max_history"`
	// Hint draws the live shape preview while a stroke is in progress.
	Hint *bool `toml:"hint"`
}

// FeedConfig controls the websocket feed. An empty Listen disables it.
type FeedConfig struct {
	Listen    string `toml:"listen"`
	Advertise bool   `toml:"advertise"`
}

type ExportConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	c := Config{}
	c.applyDefaults()
	return c
}

// HintEnabled reports whether live shape hints are on.
func (c *Config) HintEnabled() bool {
	return c.Canvas.Hint == nil || *c.Canvas.Hint
}

func (c *Config) applyDefaults() {
	if c.OSC.Host == "" {
		c.OSC.Host = "127.0.0.1"
	}
	if c.OSC.Port == 0 {
		c.OSC.Port = 57120
	}
	if c.OSC.Address == "" {
		c.OSC.Address = "/shape"
	}
	if c.Canvas.Width == 0 {
		c.Canvas.Width = 1000
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = 700
	}
	if c.Canvas.MaxHistory == 0 {
		c.Canvas.MaxHistory = state.DefaultMaxHistory
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "."
	}
}

// Validate checks the settings for values the studio cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.OSC.Port < 1 || c.OSC.Port > 65535 {
		errs = append(errs, fmt.Errorf("osc.port %d out of range", c.OSC.Port))
	}
	if len(c.OSC.Address) == 0 || c.OSC.Address[0] != '/' {
		errs = append(errs, fmt.Errorf("osc.address %q must start with '/'", c.OSC.Address))
	}
	if c.Canvas.Width < 1 || c.Canvas.Height < 1 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Canvas.MaxHistory < 1 {
		errs = append(errs, fmt.Errorf("canvas.max_history %d must be positive", c.Canvas.MaxHistory))
	}
	if c.Feed.Advertise && c.Feed.Listen == "" {
		errs = append(errs, errors.New("feed.advertise needs feed.listen"))
	}
	return errors.Join(errs...)
}

// Load reads a TOML file, fills in defaults and validates the result.
// An empty path yields Default.
func Load(path string) (Config, error) {
	var c Config
	if path != "" {
		md, err := toml.DecodeFile(path, &c)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("unknown keys in %s: %v", path, undecoded)
		}
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
