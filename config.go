// Package tuikit provides runtime configuration loaded from a TOML file.
package tuikit

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the runtime configuration for a Runtime. Zero values fall
// back to defaults when loaded through LoadConfig.
type Config struct {
	Render RenderConfig `toml:"render"`
	Input  InputConfig  `toml:"input"`
	Theme  ThemeConfig  `toml:"theme"`
}

// RenderConfig controls the output pipeline.
type RenderConfig struct {
	// MaxFPS caps the frame rate. 0 keeps the default.
	MaxFPS int `toml:"max_fps"`
	// FullRedraw disables frame diffing and repaints every cell.
	FullRedraw bool `toml:"full_redraw"`
	// AltScreen switches to the alternate screen buffer on start.
	AltScreen bool `toml:"alt_screen"`
}

// InputConfig controls input handling.
type InputConfig struct {
	// Mouse enables mouse reporting.
	Mouse bool `toml:"mouse"`
}

// ThemeConfig overrides default colors. Values are any color string
// ParseColor accepts.
type ThemeConfig struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Border     string `toml:"border"`
	Accent     string `toml:"accent"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			MaxFPS:    60,
			AltScreen: true,
		},
		Input: InputConfig{
			Mouse: true,
		},
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
// A missing file returns the defaults without error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Render.MaxFPS <= 0 {
		cfg.Render.MaxFPS = 60
	}
	return cfg, nil
}

// SaveConfig writes the configuration as TOML.
func SaveConfig(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Theme is the resolved color palette built from a ThemeConfig.
type Theme struct {
	Foreground *RGBA
	Background *RGBA
	Border     *RGBA
	Accent     *RGBA
}

// ResolveTheme parses the theme's color strings. Unparseable or empty
// entries stay nil and keep the built-in defaults.
func ResolveTheme(tc ThemeConfig) Theme {
	return Theme{
		Foreground: ParseColor(tc.Foreground),
		Background: ParseColor(tc.Background),
		Border:     ParseColor(tc.Border),
		Accent:     ParseColor(tc.Accent),
	}
}
