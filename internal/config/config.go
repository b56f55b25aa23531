package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for sheetgen.
type Config struct {
	Renderer      RendererConfig     `yaml:"renderer"`
	Output        OutputConfig       `yaml:"output"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// RendererConfig controls how the external renderer is invoked.
type RendererConfig struct {
	Bin          string   `yaml:"bin"`
	FrameTimeout Duration `yaml:"frame_timeout"`
	ProbeTimeout Duration `yaml:"probe_timeout"`
}

// OutputConfig controls where spritesheets are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// NotificationConfig controls how the user is notified when a run ends.
type NotificationConfig struct {
	TerminalBell bool     `yaml:"terminal_bell"`
	BellDebounce Duration `yaml:"bell_debounce"`
	BellOnStates []string `yaml:"bell_on_states"`
}

// Duration wraps time.Duration for YAML unmarshalling from strings like "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Renderer: RendererConfig{
			Bin:          "blender",
			FrameTimeout: Duration{2 * time.Minute},
			ProbeTimeout: Duration{30 * time.Second},
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Notifications: NotificationConfig{
			TerminalBell: true,
			BellDebounce: Duration{10 * time.Second},
			BellOnStates: []string{"DONE", "FAILED"},
		},
	}
}

// Load reads the config file and merges with defaults.
// Missing file is not an error — defaults are used silently.
func Load() (Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom reads config from a specific path.
func LoadFrom(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Defaults(), fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Renderer.Bin == "" {
		return fmt.Errorf("renderer.bin must not be empty")
	}

	ft := c.Renderer.FrameTimeout.Duration
	if ft < 10*time.Second || ft > 30*time.Minute {
		return fmt.Errorf("frame_timeout must be between 10s and 30m, got %s", ft)
	}

	pt := c.Renderer.ProbeTimeout.Duration
	if pt < 2*time.Second || pt > ft {
		return fmt.Errorf("probe_timeout must be between 2s and frame_timeout (%s), got %s", ft, pt)
	}

	return nil
}

func configPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "sheetgen", "config.yml")
}
