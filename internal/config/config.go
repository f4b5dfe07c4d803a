// ABOUTME: Minds configuration management using viper.
// ABOUTME: Resolves data, database, settings, and log paths from file, env, and defaults.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override (MINDS_DATA_DIR, ...).
const EnvPrefix = "MINDS"

// Config stores minds configuration.
type Config struct {
	// DataDir is the root directory for the database, settings, and logs.
	// Supports ~ expansion. Defaults to $XDG_DATA_HOME/minds.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// DBName is the database file name inside DataDir.
	DBName string `mapstructure:"db_name" yaml:"db_name"`

	// SeedPath is a template database copied on first run, if it exists.
	SeedPath string `mapstructure:"seed_path" yaml:"seed_path,omitempty"`

	// Organization and Application namespace the UI settings.
	Organization string `mapstructure:"organization" yaml:"organization"`
	Application  string `mapstructure:"application" yaml:"application"`

	// RestoreDrafts brings back unsaved slider positions when the UI starts.
	RestoreDrafts bool `mapstructure:"restore_drafts" yaml:"restore_drafts"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// Default returns the configuration used when no file or env override is set.
func Default() *Config {
	return &Config{
		DataDir:       DefaultDataDir(),
		DBName:        "minds.db",
		Organization:  "harperreed",
		Application:   "minds",
		RestoreDrafts: true,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("db_name", d.DBName)
	v.SetDefault("seed_path", d.SeedPath)
	v.SetDefault("organization", d.Organization)
	v.SetDefault("application", d.Application)
	v.SetDefault("restore_drafts", d.RestoreDrafts)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("log.max_age_days", d.Log.MaxAgeDays)
	v.SetDefault("log.compress", d.Log.Compress)
}

// Load reads configFile, or the default config path when empty, and applies
// MINDS_* environment overrides. A missing file is not an error.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigFile(GetConfigPath())
	}

	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	return &cfg, nil
}

// GetDataDir returns the data directory with ~ expanded.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DefaultDataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the full database file path.
func (c *Config) DBPath() string {
	name := c.DBName
	if name == "" {
		name = "minds.db"
	}
	return filepath.Join(c.GetDataDir(), name)
}

// SettingsDir returns the settings store directory.
func (c *Config) SettingsDir() string {
	return filepath.Join(c.GetDataDir(), "settings")
}

// LogPath returns the log file path.
func (c *Config) LogPath() string {
	if c.Log.File != "" {
		return ExpandPath(c.Log.File)
	}
	return filepath.Join(c.GetDataDir(), "minds.log")
}

// GetSeedPath returns the template database path with ~ expanded.
func (c *Config) GetSeedPath() string {
	return ExpandPath(c.SeedPath)
}

// DefaultDataDir returns $XDG_DATA_HOME/minds, falling back to ~/.local/share/minds.
func DefaultDataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, _ := os.UserHomeDir()
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "minds")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "minds", "config.yaml")
}

// Save writes config to path as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if path == "" {
		path = GetConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
