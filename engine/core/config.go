package core

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config for the engine run.
type Config struct {
	Title      string     `yaml:"title"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	VSync      bool       `yaml:"vsync"`
	ClearColor [4]float32 `yaml:"clearColor"` // RGBA
	AssetRoot  string     `yaml:"assetRoot"`
	LogLevel   string     `yaml:"logLevel"`

	// MaxQuads caps the vertices a single sprite batch holds before it flushes.
	MaxQuads int `yaml:"maxQuads"`
	// GamepadDeadzone is the joystick deflection below which analog input is
	// ignored for focus navigation.
	GamepadDeadzone float32 `yaml:"gamepadDeadzone"`
}

func DefaultConfig() Config {
	return Config{
		Title:           "groveui",
		Width:           1280,
		Height:          720,
		VSync:           true,
		ClearColor:      [4]float32{0.08, 0.10, 0.12, 1},
		AssetRoot:       "assets",
		LogLevel:        "info",
		MaxQuads:        10000,
		GamepadDeadzone: 0.5,
	}
}

// LoadConfig layers the YAML file at path over DefaultConfig. A missing file
// is not an error; the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %q: %w", path, err)
	}
	if cfg.MaxQuads <= 0 {
		cfg.MaxQuads = DefaultConfig().MaxQuads
	}
	return cfg, nil
}
