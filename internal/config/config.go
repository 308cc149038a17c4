package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Toggl         TogglConfig  `toml:"toggl"`
	Dev           DevConfig    `toml:"dev"`
	Notifications NotifyConfig `toml:"notifications"`
}

type TogglConfig struct {
	APIToken    string `toml:"api_token"`
	WorkspaceID int64  `toml:"workspace_id"`
	BaseURL     string `toml:"base_url"`
}

// DevConfig drives development-only behavior. SimulatedDelayMS is injected
// before selected fetches so loading indicators stay visible; it is ignored
// unless Enabled is set.
type DevConfig struct {
	Enabled          bool `toml:"enabled"`
	SimulatedDelayMS int  `toml:"simulated_delay_ms"`
}

type NotifyConfig struct {
	Enabled bool `toml:"enabled"`
}

func DefaultConfig() Config {
	return Config{
		Notifications: NotifyConfig{
			Enabled: true,
		},
	}
}

// SimulatedDelay resolves the artificial latency: zero outside dev mode.
func (c Config) SimulatedDelay() time.Duration {
	if !c.Dev.Enabled {
		return 0
	}
	return time.Duration(c.Dev.SimulatedDelayMS) * time.Millisecond
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "togglr"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TOGGL_API_TOKEN"); v != "" {
		cfg.Toggl.APIToken = v
	}
	if v := os.Getenv("TOGGL_WORKSPACE_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Toggl.WorkspaceID = id
		}
	}
	if v := os.Getenv("TOGGL_BASE_URL"); v != "" {
		cfg.Toggl.BaseURL = v
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
