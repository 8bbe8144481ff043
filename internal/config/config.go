package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvOutput       = "ASSETCONV_OUTPUT"
	EnvIndent       = "ASSETCONV_INDENT"
	EnvPollInterval = "ASSETCONV_POLL_INTERVAL"
	EnvFile         = "ASSETCONV_ENV_FILE"
)

// Config holds all configuration for assetconv.
type Config struct {
	Output        OutputConfig       `yaml:"output"`
	Watch         WatchConfig        `yaml:"watch"`
	Notifications NotificationConfig `yaml:"notifications"`
}

// OutputConfig controls where and how the grouped document is written.
type OutputConfig struct {
	Path   string `yaml:"path"`
	Indent int    `yaml:"indent"`
}

// WatchConfig controls how often the input is checked for changes.
type WatchConfig struct {
	PollInterval Duration `yaml:"poll_interval"`
}

// NotificationConfig controls how failed conversions are announced.
type NotificationConfig struct {
	TerminalBell bool     `yaml:"terminal_bell"`
	BellDebounce Duration `yaml:"bell_debounce"`
}

// Duration wraps time.Duration for YAML unmarshalling from strings like "15s".
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
		Output: OutputConfig{
			Path:   "assets.json",
			Indent: 2,
		},
		Watch: WatchConfig{
			PollInterval: Duration{time.Second},
		},
		Notifications: NotificationConfig{
			TerminalBell: true,
			BellDebounce: Duration{10 * time.Second},
		},
	}
}

// Load reads the config file, merges it with defaults and applies
// environment overrides. Missing file is not an error.
func Load() (Config, error) {
	return LoadFrom(configPath())
}

// LoadFrom reads config from a specific path, then applies environment
// overrides. A .env file (or the one named by ASSETCONV_ENV_FILE) is loaded
// into the environment first when present.
func LoadFrom(path string) (Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return Defaults(), err
	}

	if err := loadEnvFile(); err != nil {
		return Defaults(), err
	}
	if err := cfg.applyEnv(); err != nil {
		return Defaults(), err
	}

	if err := cfg.Validate(); err != nil {
		return Defaults(), fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// loadEnvFile populates the environment from a dotenv file. Variables that
// are already set win over the file.
func loadEnvFile() error {
	envFile := os.Getenv(EnvFile)
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err != nil {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv(EnvIndent); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvIndent, v, err)
		}
		c.Output.Indent = n
	}
	if v := os.Getenv(EnvPollInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPollInterval, v, err)
		}
		c.Watch.PollInterval = Duration{d}
	}
	return nil
}

// Validate checks value ranges. It is exported so flag overrides applied
// after loading can be checked again.
func (c Config) Validate() error {
	if c.Output.Path == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.Output.Indent < 0 || c.Output.Indent > 8 {
		return fmt.Errorf("indent must be between 0 and 8, got %d", c.Output.Indent)
	}

	pi := c.Watch.PollInterval.Duration
	if pi < 100*time.Millisecond || pi > time.Minute {
		return fmt.Errorf("poll_interval must be between 100ms and 1m, got %s", pi)
	}

	if c.Notifications.BellDebounce.Duration < 0 {
		return fmt.Errorf("bell_debounce must not be negative, got %s", c.Notifications.BellDebounce)
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
	return filepath.Join(dir, "assetconv", "config.yml")
}
