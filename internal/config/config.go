package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// Config holds all application configuration
type Config struct {
	LogLevel    string `mapstructure:"log_level"`
	VersionFile string `mapstructure:"version_file"`

	Release ReleaseConfig `mapstructure:"release"`
	Update  UpdateConfig  `mapstructure:"update"`
	Copy    CopyConfig    `mapstructure:"copy"`

	// Dir is the directory the config file was resolved in.
	Dir string `mapstructure:"-"`
}

// ReleaseConfig holds the release endpoint settings
type ReleaseConfig struct {
	URL         string `mapstructure:"url"`
	UserAgent   string `mapstructure:"user_agent"`
	Timeout     int    `mapstructure:"timeout"` // seconds, 0 = transport default
	AutoPrepare bool   `mapstructure:"auto_prepare"`
}

// UpdateConfig holds settings for staging a detected update
type UpdateConfig struct {
	StagingDir  string `mapstructure:"staging_dir"`
	AssetSuffix string `mapstructure:"asset_suffix"`
}

// CopyConfig holds plugin asset copy settings
type CopyConfig struct {
	DescriptorExtensions []string `mapstructure:"descriptor_extensions"`
	RootExtensions       []string `mapstructure:"root_extensions"`
	FilterRootExtensions bool     `mapstructure:"filter_root_extensions"`
	SettingsSuffix       string   `mapstructure:"settings_suffix"`
	CheckFreeSpace       bool     `mapstructure:"check_free_space"`
}

// HTTPTimeout returns the configured release request timeout.
func (r ReleaseConfig) HTTPTimeout() time.Duration {
	if r.Timeout <= 0 {
		return 0
	}
	return time.Duration(r.Timeout) * time.Second
}

// Load loads configuration from ~/.plugin-updater (or ./.plugin-updater) and the environment
func Load() (*Config, error) {
	homeDir, _ := os.UserHomeDir()
	// Prefer ~/.plugin-updater, but gracefully fall back if not writable (sandboxed)
	primaryDir := ""
	if homeDir != "" {
		primaryDir = filepath.Join(homeDir, ".plugin-updater")
	}
	fallbackDir := ".plugin-updater"

	configDir := primaryDir
	if configDir == "" || os.MkdirAll(configDir, 0755) != nil {
		_ = os.MkdirAll(fallbackDir, 0755)
		configDir = fallbackDir
	}
	return LoadFrom(configDir)
}

// LoadFrom loads config.yaml from configDir, creating it with defaults when missing
func LoadFrom(configDir string) (*Config, error) {
	configFile := filepath.Join(configDir, "config.yaml")

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(configFile)

	setDefaults(v, configDir)

	v.SetEnvPrefix("PLUGINUPDATER")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			// Best-effort; continue with defaults on failure
			if createDefaultConfig(configFile) == nil {
				_ = v.ReadInConfig()
			}
		} else {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Dir = configDir

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("log_level", "info")
	v.SetDefault("version_file", "version.json")

	v.SetDefault("release.url", "https://api.github.com/repos/Queuete/ExileApi/releases/latest")
	v.SetDefault("release.user_agent", "ExileApi")
	v.SetDefault("release.timeout", 0)
	v.SetDefault("release.auto_prepare", false)

	v.SetDefault("update.staging_dir", filepath.Join(configDir, "staging"))
	v.SetDefault("update.asset_suffix", ".zip")

	v.SetDefault("copy.descriptor_extensions", []string{".csproj", ".proj"})
	v.SetDefault("copy.root_extensions", []string{".txt", ".json"})
	v.SetDefault("copy.filter_root_extensions", false)
	v.SetDefault("copy.settings_suffix", "_new")
	v.SetDefault("copy.check_free_space", true)
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig(configFile string) error {
	defaultConfig := `# plugin-updater configuration

# General Settings
log_level: info
version_file: version.json

# Release check
release:
  url: https://api.github.com/repos/Queuete/ExileApi/releases/latest
  user_agent: ExileApi
  timeout: 0
  auto_prepare: false

# Update staging
update:
  asset_suffix: .zip

# Plugin asset copy
copy:
  descriptor_extensions: [.csproj, .proj]
  root_extensions: [.txt, .json]
  filter_root_extensions: false
  settings_suffix: _new
  check_free_space: true
`

	return os.WriteFile(configFile, []byte(defaultConfig), 0644)
}
