package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level        string            `mapstructure:"level"`
	Path         string            `mapstructure:"path"`
	ConsoleLevel string            `mapstructure:"console_level"`
	Components   map[string]string `mapstructure:"components"`
}

// Config represents the application configuration.
type Config struct {
	Mode        string `mapstructure:"mode"`
	Action      string `mapstructure:"action"`
	OnConflict  string `mapstructure:"on_conflict"`
	DestName    string `mapstructure:"dest_name"`
	Recursive   bool   `mapstructure:"recursive"`
	SkipUnknown bool   `mapstructure:"skip_unknown"`
	Categories  struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"categories"`
	UndoLog struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"undo_log"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/tidy/config.yaml
//   - $HOME/.config/tidy/config.yaml
//
// Environment variables are prefixed with TIDY_ (e.g., TIDY_MODE).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "tidy"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "tidy"))

	v.SetEnvPrefix("TIDY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("mode", DefaultMode)
	v.SetDefault("action", DefaultAction)
	v.SetDefault("on_conflict", DefaultConflictPolicy)
	v.SetDefault("dest_name", DefaultDestName)
	v.SetDefault("recursive", DefaultRecursive)
	v.SetDefault("skip_unknown", false)
	v.SetDefault("categories.path", DefaultCategoriesPath())
	v.SetDefault("undo_log.path", DefaultUndoLogPath())

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means use logging.DefaultLogPath
	v.SetDefault("logging.console_level", "")
	v.SetDefault("logging.components", map[string]string{
		"organizer": "info",
		"walker":    "warn",
		"category":  "info",
		"undo":      "info",
	})

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if strings.HasPrefix(cfg.Categories.Path, "~") {
		cfg.Categories.Path = filepath.Join(homeDir, cfg.Categories.Path[1:])
	}
	if strings.HasPrefix(cfg.UndoLog.Path, "~") {
		cfg.UndoLog.Path = filepath.Join(homeDir, cfg.UndoLog.Path[1:])
	}

	return &cfg, nil
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "tidy"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "tidy"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// DataDir returns $XDG_DATA_HOME/tidy/ for the category document and undo log.
func DataDir() string {
	return filepath.Join(xdg.DataHome, "tidy")
}

// StateDir returns $XDG_STATE_HOME/tidy/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "tidy")
}

// DefaultCategoriesPath returns the default category document path.
func DefaultCategoriesPath() string {
	return filepath.Join(DataDir(), "categories.json")
}

// DefaultUndoLogPath returns the default undo log path.
func DefaultUndoLogPath() string {
	return filepath.Join(DataDir(), "undo.log")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() error {
	if err := os.MkdirAll(DataDir(), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	return nil
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		// Config file exists, do nothing
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# Tidy File Organizer Configuration

# Organizing mode: type, name, date, day, size, first_letter
mode: %s

# Transfer action: move or copy
action: %s

# What to do when the destination already exists: skip, overwrite, rename
on_conflict: %s

# Destination folder created under the source when --dest is not given
dest_name: %s

# Descend into subdirectories
recursive: %t

# In type mode, leave files with unknown extensions in place
# instead of moving them to Others
skip_unknown: false

# Category document location
categories:
  path: %s

# Undo log location
undo_log:
  path: %s

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means use default: $XDG_STATE_HOME/tidy/tidy.log)
  path: ""
  # Console output level (empty disables console logging)
  console_level: ""
  # Per-component log levels
  components:
    organizer: info
    walker: warn
    category: info
    undo: info
`, DefaultMode, DefaultAction, DefaultConflictPolicy, DefaultDestName,
		DefaultRecursive, DefaultCategoriesPath(), DefaultUndoLogPath())

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}
