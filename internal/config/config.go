// Package config provides configuration management for Prodvana.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/xvierd/prodvana-cli/internal/domain"
)

// EnvPrefix prefixes every environment override, e.g. PRODVANA_LOG_LEVEL.
const EnvPrefix = "PRODVANA"

// Config holds all configuration for the Prodvana application.
type Config struct {
	Profile       ProfileConfig      `mapstructure:"profile"`
	Session       SessionConfig      `mapstructure:"session"`
	Trial         TrialConfig        `mapstructure:"trial"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Log           LogConfig          `mapstructure:"log"`
	HTTP          HTTPConfig         `mapstructure:"http"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// ProfileConfig holds new player settings.
type ProfileConfig struct {
	StartingCoins int `mapstructure:"starting_coins"`
}

// SessionConfig holds focus session settings.
type SessionConfig struct {
	Presets         []int  `mapstructure:"presets"`
	DefaultDuration int    `mapstructure:"default_duration"`
	DefaultGame     string `mapstructure:"default_game"`
}

// TrialConfig holds trial account settings.
type TrialConfig struct {
	Duration Duration `mapstructure:"duration"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// StorageConfig holds storage settings. An empty path keeps everything in memory.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// HTTPConfig holds the API server settings.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorFarm         string `mapstructure:"color_farm"`
	ColorFishing      string `mapstructure:"color_fishing"`
	ColorTitle        string `mapstructure:"color_title"`
	ColorTask         string `mapstructure:"color_task"`
	ColorHelp         string `mapstructure:"color_help"`
	ColorCoins        string `mapstructure:"color_coins"`
	FarmGradientStart string `mapstructure:"farm_gradient_start"`
	FarmGradientEnd   string `mapstructure:"farm_gradient_end"`
	FishGradientStart string `mapstructure:"fish_gradient_start"`
	FishGradientEnd   string `mapstructure:"fish_gradient_end"`
	IconApp           string `mapstructure:"icon_app"`
	IconTask          string `mapstructure:"icon_task"`
	IconCoins         string `mapstructure:"icon_coins"`
	IconGit           string `mapstructure:"icon_git"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFarm:         "#22C55E",
		ColorFishing:      "#3B82F6",
		ColorTitle:        "#6B7280",
		ColorTask:         "#A0AEC0",
		ColorHelp:         "#95A5A6",
		ColorCoins:        "#EAB308",
		FarmGradientStart: "#22C55E",
		FarmGradientEnd:   "#A3E635",
		FishGradientStart: "#3B82F6",
		FishGradientEnd:   "#06B6D4",
		IconApp:           "🌱",
		IconTask:          "📋",
		IconCoins:         "🪙",
		IconGit:           "🌿",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Profile: ProfileConfig{
			StartingCoins: 50,
		},
		Session: SessionConfig{
			Presets:         append([]int(nil), domain.SessionPresets...),
			DefaultDuration: 25,
			DefaultGame:     string(domain.GameFarm),
		},
		Trial: TrialConfig{
			Duration: Duration(5 * time.Minute),
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		Log: LogConfig{
			Level: "warn",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load reads the configuration from the default location.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from configPath, layering .env files and
// PRODVANA_* environment variables on top. A missing file yields the defaults.
func LoadFrom(configPath string) (*Config, error) {
	loadDotEnv(".env", filepath.Join(filepath.Dir(configPath), ".env"))

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Storage.Path = expandHome(cfg.Storage.Path)

	return &cfg, nil
}

// loadDotEnv loads whichever of the files exist. Variables already set in the
// environment win.
func loadDotEnv(files ...string) {
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

// Validate checks values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	if len(c.Session.Presets) == 0 {
		return fmt.Errorf("session.presets must not be empty")
	}
	for _, p := range c.Session.Presets {
		if p <= 0 {
			return fmt.Errorf("session.presets must be positive, got %d", p)
		}
	}
	if !domain.IsPreset(c.Session.DefaultDuration, c.Session.Presets) {
		c.Session.DefaultDuration = c.Session.Presets[0]
	}
	if _, err := domain.ParseGame(c.Session.DefaultGame); err != nil {
		return fmt.Errorf("session.default_game: %w", err)
	}
	if c.Profile.StartingCoins < 0 {
		return fmt.Errorf("profile.starting_coins must not be negative")
	}
	if c.Trial.Duration <= 0 {
		return fmt.Errorf("trial.duration must be positive")
	}
	return nil
}

// Save writes cfg to configPath as TOML.
func Save(cfg *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	v.Set("profile.starting_coins", cfg.Profile.StartingCoins)
	v.Set("session.presets", cfg.Session.Presets)
	v.Set("session.default_duration", cfg.Session.DefaultDuration)
	v.Set("session.default_game", cfg.Session.DefaultGame)
	v.Set("trial.duration", cfg.Trial.Duration.String())
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("storage.path", cfg.Storage.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("http.addr", cfg.HTTP.Addr)

	return v.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".prodvana", "config.toml"), nil
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(homeDir, p[2:])
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("profile.starting_coins", d.Profile.StartingCoins)
	v.SetDefault("session.presets", d.Session.Presets)
	v.SetDefault("session.default_duration", d.Session.DefaultDuration)
	v.SetDefault("session.default_game", d.Session.DefaultGame)
	v.SetDefault("trial.duration", d.Trial.Duration.String())
	v.SetDefault("notifications.enabled", d.Notifications.Enabled)
	v.SetDefault("notifications.sound", d.Notifications.Sound)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("http.addr", d.HTTP.Addr)

	// Theme defaults
	v.SetDefault("theme.color_farm", d.Theme.ColorFarm)
	v.SetDefault("theme.color_fishing", d.Theme.ColorFishing)
	v.SetDefault("theme.color_title", d.Theme.ColorTitle)
	v.SetDefault("theme.color_task", d.Theme.ColorTask)
	v.SetDefault("theme.color_help", d.Theme.ColorHelp)
	v.SetDefault("theme.color_coins", d.Theme.ColorCoins)
	v.SetDefault("theme.farm_gradient_start", d.Theme.FarmGradientStart)
	v.SetDefault("theme.farm_gradient_end", d.Theme.FarmGradientEnd)
	v.SetDefault("theme.fish_gradient_start", d.Theme.FishGradientStart)
	v.SetDefault("theme.fish_gradient_end", d.Theme.FishGradientEnd)
	v.SetDefault("theme.icon_app", d.Theme.IconApp)
	v.SetDefault("theme.icon_task", d.Theme.IconTask)
	v.SetDefault("theme.icon_coins", d.Theme.IconCoins)
	v.SetDefault("theme.icon_git", d.Theme.IconGit)
}

// TrialDuration returns the trial length as a time.Duration.
func (c *Config) TrialDuration() time.Duration {
	return time.Duration(c.Trial.Duration)
}

// Game returns the configured default game.
func (c *Config) Game() domain.GameType {
	g, err := domain.ParseGame(c.Session.DefaultGame)
	if err != nil {
		return domain.GameFarm
	}
	return g
}
