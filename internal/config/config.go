package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the viewer looks for its config, relative to the working directory.
const DefaultPath = "config/basket3d.yaml"

type Window struct {
	Title       string `yaml:"title"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	TargetFPS   int    `yaml:"target_fps"`
	Resizable   bool   `yaml:"resizable"`
	Transparent bool   `yaml:"transparent"`
	MSAA        bool   `yaml:"msaa"`
}

type Scene struct {
	Seed int64 `yaml:"seed"` // 0 = pick one from the clock
}

type Animation struct {
	RateIndependent bool    `yaml:"rate_independent"`
	MaxDrift        float32 `yaml:"max_drift"` // 0 = unbounded
}

type Debug struct {
	ShowFPS   bool `yaml:"show_fps"`
	ShowStats bool `yaml:"show_stats"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config is the viewer configuration. Scene layout and animation constants
// are compiled in; this covers the host window and the tunable behaviors.
type Config struct {
	Window    Window    `yaml:"window"`
	Scene     Scene     `yaml:"scene"`
	Animation Animation `yaml:"animation"`
	Debug     Debug     `yaml:"debug"`
	Log       Log       `yaml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Window: Window{
			Title:       "Basket3D",
			Width:       480,
			Height:      400,
			TargetFPS:   60,
			Resizable:   true,
			Transparent: true,
			MSAA:        true,
		},
		Log: Log{Level: "info", File: "logs/basket3d.txt"},
	}
}

// Load reads the YAML file at path on top of Default. A missing file is not
// an error. A malformed file returns Default together with the parse error.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Default(), fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Default(), err
	}
	return c, nil
}

// Save writes c to path as YAML, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// SaveDebug persists the overlay toggles into the file at path, keeping
// every other setting as the file has it. A malformed file is left alone.
func SaveDebug(path string, d Debug) error {
	c, err := Load(path)
	if err != nil {
		return err
	}
	c.Debug = d
	return Save(path, c)
}

// Validate rejects values the viewer cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Window.TargetFPS < 0:
		return fmt.Errorf("config: target_fps %d is negative", c.Window.TargetFPS)
	case c.Animation.MaxDrift < 0:
		return fmt.Errorf("config: max_drift %g is negative", c.Animation.MaxDrift)
	}
	return nil
}
