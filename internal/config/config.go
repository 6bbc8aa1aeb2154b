// Package config provides configuration management for pomoday.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pomoday/pomoday/internal/domain"
)

// Config holds the application configuration. Runtime timer settings are
// user data and live in the state store; this file seeds their first-run
// values and carries app-level settings (data dir, theme).
type Config struct {
	Timer   TimerDefaults `mapstructure:"timer"`
	Storage StorageConfig `mapstructure:"storage"`
	Theme   ThemeConfig   `mapstructure:"theme"`
}

// TimerDefaults seeds the timer settings on first run.
type TimerDefaults struct {
	FocusMinutes      int  `mapstructure:"focus_minutes"`
	BreakMinutes      int  `mapstructure:"break_minutes"`
	LongBreakMinutes  int  `mapstructure:"long_break_minutes"`
	EnableLongBreak   bool `mapstructure:"enable_long_break"`
	LongBreakInterval int  `mapstructure:"long_break_interval"`
	Sound             bool `mapstructure:"sound"`
	Notifications     bool `mapstructure:"notifications"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds TUI color customization.
type ThemeConfig struct {
	ColorFocus  string `mapstructure:"color_focus"`
	ColorBreak  string `mapstructure:"color_break"`
	ColorPaused string `mapstructure:"color_paused"`
	ColorTitle  string `mapstructure:"color_title"`
	ColorTask   string `mapstructure:"color_task"`
	ColorHelp   string `mapstructure:"color_help"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorFocus:  "#E05B5B",
		ColorBreak:  "#4ECDC4",
		ColorPaused: "#6B7280",
		ColorTitle:  "#A78BFA",
		ColorTask:   "#A0AEC0",
		ColorHelp:   "#95A5A6",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	def := domain.DefaultTimerSettings()
	return &Config{
		Timer: TimerDefaults{
			FocusMinutes:      def.FocusMinutes,
			BreakMinutes:      def.BreakMinutes,
			LongBreakMinutes:  def.LongBreakMinutes,
			EnableLongBreak:   def.EnableLongBreak,
			LongBreakInterval: def.LongBreakInterval,
			Sound:             def.SoundEnabled,
			Notifications:     def.NotificationsEnabled,
		},
		Storage: StorageConfig{
			DataDir: "~/.pomoday",
		},
		Theme: DefaultThemeConfig(),
	}
}

// SeedSettings converts the configured defaults into sanitized timer
// settings for a first run with an empty state store.
func (c *Config) SeedSettings() domain.TimerSettings {
	return domain.TimerSettings{
		FocusMinutes:         c.Timer.FocusMinutes,
		BreakMinutes:         c.Timer.BreakMinutes,
		LongBreakMinutes:     c.Timer.LongBreakMinutes,
		EnableLongBreak:      c.Timer.EnableLongBreak,
		LongBreakInterval:    c.Timer.LongBreakInterval,
		SoundEnabled:         c.Timer.Sound,
		NotificationsEnabled: c.Timer.Notifications,
	}.Normalize()
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.pomoday" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".pomoday")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("timer.focus_minutes", cfg.Timer.FocusMinutes)
	viper.Set("timer.break_minutes", cfg.Timer.BreakMinutes)
	viper.Set("timer.long_break_minutes", cfg.Timer.LongBreakMinutes)
	viper.Set("timer.enable_long_break", cfg.Timer.EnableLongBreak)
	viper.Set("timer.long_break_interval", cfg.Timer.LongBreakInterval)
	viper.Set("timer.sound", cfg.Timer.Sound)
	viper.Set("timer.notifications", cfg.Timer.Notifications)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.color_focus", cfg.Theme.ColorFocus)
	viper.Set("theme.color_break", cfg.Theme.ColorBreak)
	viper.Set("theme.color_paused", cfg.Theme.ColorPaused)
	viper.Set("theme.color_title", cfg.Theme.ColorTitle)
	viper.Set("theme.color_task", cfg.Theme.ColorTask)
	viper.Set("theme.color_help", cfg.Theme.ColorHelp)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".pomoday", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "pomoday.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	def := DefaultConfig()
	viper.SetDefault("timer.focus_minutes", def.Timer.FocusMinutes)
	viper.SetDefault("timer.break_minutes", def.Timer.BreakMinutes)
	viper.SetDefault("timer.long_break_minutes", def.Timer.LongBreakMinutes)
	viper.SetDefault("timer.enable_long_break", def.Timer.EnableLongBreak)
	viper.SetDefault("timer.long_break_interval", def.Timer.LongBreakInterval)
	viper.SetDefault("timer.sound", def.Timer.Sound)
	viper.SetDefault("timer.notifications", def.Timer.Notifications)
	viper.SetDefault("storage.data_dir", def.Storage.DataDir)
	viper.SetDefault("theme.color_focus", def.Theme.ColorFocus)
	viper.SetDefault("theme.color_break", def.Theme.ColorBreak)
	viper.SetDefault("theme.color_paused", def.Theme.ColorPaused)
	viper.SetDefault("theme.color_title", def.Theme.ColorTitle)
	viper.SetDefault("theme.color_task", def.Theme.ColorTask)
	viper.SetDefault("theme.color_help", def.Theme.ColorHelp)
}
