package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AppConfig is the top-level application configuration.
type AppConfig struct {
	// ServerURL is the base URL of the learning-goal API server.
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`

	// RequestTimeoutSec bounds each API round trip.
	RequestTimeoutSec int `mapstructure:"request_timeout_sec" yaml:"request_timeout_sec"`

	// ProgressDays is the default day window for the progress chart.
	// Valid values: 7, 30, 90, 180, 365.
	ProgressDays int `mapstructure:"progress_days" yaml:"progress_days"`

	// LogLevel controls file-log verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// LogFile is the path of the log file. Empty disables logging.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/learntrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "learntrack", "config.yaml")
}

// defaultLogPath returns the default log file location next to the config.
func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "learntrack.log")
	}
	return filepath.Join(home, ".config", "learntrack", "learntrack.log")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		ServerURL:         "http://localhost:8000",
		RequestTimeoutSec: 30,
		ProgressDays:      30,
		LogLevel:          "info",
		LogFile:           defaultLogPath(),
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns the default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("server_url", "http://localhost:8000")
	v.SetDefault("request_timeout_sec", 30)
	v.SetDefault("progress_days", 30)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", defaultLogPath())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("server_url", cfg.ServerURL)
	v.Set("request_timeout_sec", cfg.RequestTimeoutSec)
	v.Set("progress_days", cfg.ProgressDays)
	v.Set("log_level", cfg.LogLevel)
	v.Set("log_file", cfg.LogFile)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
