package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "MINDFUL_"
	maxConfigFileSize = 1024 * 1024

	DefaultDailyGoalMinutes = 20
	DefaultRange            = "week"
)

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type Config struct {
	VaultPath string `koanf:"-"`
	DBPath    string `koanf:"-"`

	DailyGoalMinutes int       `koanf:"daily_goal_minutes"`
	DefaultRange     string    `koanf:"default_range"`
	Timezone         string    `koanf:"timezone"`
	Log              LogConfig `koanf:"log"`
}

// New loads <vault>/.mindful/config.yaml when present, then MINDFUL_* env
// overrides, then fills defaults.
//
//	MINDFUL_DAILY_GOAL_MINUTES -> daily_goal_minutes
//	MINDFUL_LOG_LEVEL          -> log.level
func New(vaultPath string) (Config, error) {
	if vaultPath == "" {
		return Config{}, fmt.Errorf("vault path is required")
	}
	k := koanf.New(".")

	path := FilePath(vaultPath)
	if info, err := os.Stat(path); err == nil {
		if info.Size() > maxConfigFileSize {
			return Config{}, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.VaultPath = vaultPath
	cfg.DBPath = filepath.Join(vaultPath, ".mindful", "mindful.db")
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FilePath is where the vault-scoped config file lives.
func FilePath(vaultPath string) string {
	return filepath.Join(vaultPath, ".mindful", "config.yaml")
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

func applyDefaults(cfg *Config) {
	if cfg.DailyGoalMinutes == 0 {
		cfg.DailyGoalMinutes = DefaultDailyGoalMinutes
	}
	if cfg.DefaultRange == "" {
		cfg.DefaultRange = DefaultRange
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

func (c Config) Validate() error {
	if c.DailyGoalMinutes < 0 {
		return fmt.Errorf("daily_goal_minutes must be non-negative, got %d", c.DailyGoalMinutes)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// Location resolves Timezone for the system clock.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
