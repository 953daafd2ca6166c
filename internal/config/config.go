package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/claude/gymdash/internal/registry"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Log       LogConfig       `yaml:"log"`
	Seed      SeedConfig      `yaml:"seed"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SeedConfig lists the workouts the dashboard starts with. Default loads
// the built-in starter workout ahead of any listed ones. AlphaCSV, when
// set, names an Alpha Progression export imported after the list.
type SeedConfig struct {
	Default  bool                   `yaml:"default"`
	Workouts []registry.SeedWorkout `yaml:"workouts"`
	AlphaCSV string                 `yaml:"alpha_csv"`
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// All returns the full seed list in load order.
func (s SeedConfig) All() []registry.SeedWorkout {
	var out []registry.SeedWorkout
	if s.Default {
		out = append(out, registry.DefaultSeed...)
	}
	return append(out, s.Workouts...)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix GYMDASH_ and underscore-separated paths:
//
//	GYMDASH_SERVER_HOST, GYMDASH_SERVER_PORT,
//	GYMDASH_TAILSCALE_ENABLED, GYMDASH_TAILSCALE_HOSTNAME, GYMDASH_TAILSCALE_STATE_DIR,
//	GYMDASH_LOG_LEVEL, GYMDASH_SEED_ALPHA_CSV
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GYMDASH_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("GYMDASH_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GYMDASH_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("GYMDASH_TAILSCALE_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("GYMDASH_TAILSCALE_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
	if v := os.Getenv("GYMDASH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GYMDASH_SEED_ALPHA_CSV"); v != "" {
		cfg.Seed.AlphaCSV = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 && !c.Tailscale.Enabled {
		return fmt.Errorf("server.port is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	for i, w := range c.Seed.Workouts {
		if strings.TrimSpace(w.Name) == "" {
			return fmt.Errorf("seed.workouts[%d].name is required", i)
		}
	}
	return nil
}
