package config

import (
	"fmt"
	"os"
	"path/filepath"

	"brightd/internal/errors"

	"gopkg.in/yaml.v3"
)

// Backends understood by the backlight package.
const (
	BackendSysfs         = "sysfs"
	BackendLogind        = "logind"
	BackendBrightnessctl = "brightnessctl"
	BackendSimulate      = "simulate"
)

// Window layouts.
const (
	LayoutSingle = "single" // one slider for the selected monitor, presets, battery saver
	LayoutMulti  = "multi"  // one slider per monitor
)

// Preset is a named fixed brightness level.
type Preset struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// Config represents the application configuration structure.
type Config struct {
	Backend      string   `yaml:"backend"`       // sysfs, logind, brightnessctl or simulate
	BacklightDir string   `yaml:"backlight_dir"` // Root of the backlight class directory
	Devices      []string `yaml:"devices"`       // Glob patterns selecting backlight devices; empty means all
	Layout       string   `yaml:"layout"`        // single or multi
	StartHidden  bool     `yaml:"start_hidden"`  // Start with the window hidden in the tray
	Reposition   bool     `yaml:"reposition"`    // Resize the window from screen metrics on Open

	Levels struct {
		Step         int `yaml:"step"`          // Keyboard shortcut delta
		Fallback     int `yaml:"fallback"`      // Displayed when the initial query fails
		Default      int `yaml:"default"`       // Restored when battery saver turns off
		BatterySaver int `yaml:"battery_saver"` // Forced while battery saver is on
	} `yaml:"levels"`

	Presets []Preset `yaml:"presets"` // Ordered as shown in the UI

	Window struct {
		Width  int `yaml:"width"`  // Initial width when reposition is off
		Height int `yaml:"height"` // Initial height when reposition is off
		Margin int `yaml:"margin"` // Distance from the screen corner when repositioning
	} `yaml:"window"`

	Log struct {
		Debug bool   `yaml:"debug"`
		JSON  bool   `yaml:"json"`
		File  string `yaml:"file"`
	} `yaml:"log"`

	path string
}

// DefaultPath returns ~/.config/brightd/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "brightd", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unmarshal over the defaults so unset keys keep their default values
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Backend = BackendSysfs
	cfg.BacklightDir = "/sys/class/backlight"
	cfg.Devices = []string{}
	cfg.Layout = LayoutSingle
	cfg.StartHidden = true
	cfg.Reposition = true

	cfg.Levels.Step = 5
	cfg.Levels.Fallback = 50
	cfg.Levels.Default = 50
	cfg.Levels.BatterySaver = 20

	cfg.Presets = []Preset{
		{Name: "Reading", Level: 70},
		{Name: "Night", Level: 30},
		{Name: "Gaming", Level: 90},
		{Name: "Movie", Level: 50},
	}

	cfg.Window.Width = 360
	cfg.Window.Height = 420
	cfg.Window.Margin = 48

	return cfg
}

// Path returns the file the configuration was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Adopt replaces c's values with a copy of other's. c keeps its own path
// when it has one, so later saves go back to the file it was loaded from.
func (c *Config) Adopt(other *Config) {
	if other == nil || other == c {
		return
	}
	path := c.path
	*c = *other
	c.Presets = append([]Preset(nil), other.Presets...)
	if other.Devices != nil {
		c.Devices = append(make([]string, 0, len(other.Devices)), other.Devices...)
	}
	if path != "" {
		c.path = path
	}
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.path == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		c.path = path
	}
	return SaveConfig(c, c.path)
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func validLevel(v int) bool {
	return v >= 0 && v <= 100
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.NewConfigError("nil config", "", errors.InvalidConfig, nil)
	}

	switch c.Backend {
	case BackendSysfs, BackendLogind, BackendBrightnessctl, BackendSimulate:
	default:
		return errors.NewConfigError("unknown backend", "backend", errors.InvalidConfig, fmt.Errorf("%q", c.Backend))
	}

	switch c.Layout {
	case LayoutSingle, LayoutMulti:
	default:
		return errors.NewConfigError("unknown layout", "layout", errors.InvalidConfig, fmt.Errorf("%q", c.Layout))
	}

	if c.Levels.Step < 1 || c.Levels.Step > 100 {
		return errors.NewConfigError("step must be between 1 and 100", "levels.step", errors.InvalidConfig, nil)
	}
	levels := map[string]int{
		"levels.fallback":      c.Levels.Fallback,
		"levels.default":       c.Levels.Default,
		"levels.battery_saver": c.Levels.BatterySaver,
	}
	for param, v := range levels {
		if !validLevel(v) {
			return errors.NewConfigError("level must be between 0 and 100", param, errors.InvalidConfig, nil)
		}
	}

	seen := make(map[string]bool, len(c.Presets))
	for i, p := range c.Presets {
		if p.Name == "" {
			return errors.NewConfigError("preset name is required", fmt.Sprintf("presets[%d]", i), errors.InvalidConfig, nil)
		}
		if seen[p.Name] {
			return errors.NewConfigError("duplicate preset", fmt.Sprintf("presets[%d]", i), errors.InvalidConfig, fmt.Errorf("%q", p.Name))
		}
		seen[p.Name] = true
		if !validLevel(p.Level) {
			return errors.NewConfigError("level must be between 0 and 100", fmt.Sprintf("presets[%d]", i), errors.InvalidConfig, nil)
		}
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.NewConfigError("window size must be positive", "window", errors.InvalidConfig, nil)
	}
	if c.Window.Margin < 0 {
		return errors.NewConfigError("window margin must be >= 0", "window.margin", errors.InvalidConfig, nil)
	}

	return nil
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// NewTestConfig creates a configuration for tests: simulated backend and
// the window shown at startup.
func NewTestConfig() *Config {
	cfg := defaultConfig()
	cfg.Backend = BackendSimulate
	cfg.StartHidden = false
	cfg.Reposition = false
	return cfg
}

// PresetLevel looks up a preset by exact name.
func (c *Config) PresetLevel(name string) (int, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p.Level, true
		}
	}
	return 0, false
}
