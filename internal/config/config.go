package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Backend selects where strategy lists are persisted
type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory" // Nothing survives the session
)

// Config represents the user's configuration
type Config struct {
	Backend      Backend `yaml:"backend"`
	DBPath       string  `yaml:"db_path"`
	FilePath     string  `yaml:"file_path"`
	LogPath      string  `yaml:"log_path"` // Empty disables logging
	LogLevel     string  `yaml:"log_level"`
	InitialLevel int     `yaml:"initial_level"`
}

// DefaultConfig returns the default configuration rooted at the global
// config directory
func DefaultConfig() *Config {
	dir, err := globalConfigDir()
	if err != nil {
		dir = projectConfigDir
	}
	return &Config{
		Backend:      BackendSQLite,
		DBPath:       filepath.Join(dir, "stressslider.db"),
		FilePath:     filepath.Join(dir, "strategies.json"),
		LogPath:      filepath.Join(dir, "stressslider.log"),
		LogLevel:     "info",
		InitialLevel: 5,
	}
}

const projectConfigDir = ".stressslider"

// globalConfigDir returns the global config directory path (~/.stressslider)
func globalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stressslider"), nil
}

// globalConfigPath returns the global config file path (~/.stressslider/config.yaml)
func globalConfigPath() (string, error) {
	dir, err := globalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// projectConfigPath returns the project-level config path (.stressslider/config.yaml in cwd)
func projectConfigPath() string {
	return filepath.Join(projectConfigDir, "config.yaml")
}

// Load reads the config, checking the project config first, then global.
// Missing files yield DefaultConfig. Environment overrides are applied last.
func Load() (*Config, error) {
	path := projectConfigPath()
	if _, err := os.Stat(path); err != nil {
		global, gerr := globalConfigPath()
		if gerr != nil {
			return finish(DefaultConfig())
		}
		path = global
	}
	return LoadFile(path)
}

// LoadFile reads a specific config file. A missing file yields DefaultConfig.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config exists, return default (don't auto-create)
			return finish(cfg)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Fields absent from the file keep their defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Backend = Backend(envStr("STRESSSLIDER_BACKEND", string(c.Backend)))
	c.DBPath = envStr("STRESSSLIDER_DB_PATH", c.DBPath)
	c.FilePath = envStr("STRESSSLIDER_FILE_PATH", c.FilePath)
	c.LogPath = envStr("STRESSSLIDER_LOG_PATH", c.LogPath)
	c.LogLevel = envStr("LOG_LEVEL", c.LogLevel)
	c.InitialLevel = envInt("STRESSSLIDER_LEVEL", c.InitialLevel)
}

func (c *Config) validate() error {
	switch c.Backend {
	case BackendSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db_path must not be empty for the sqlite backend")
		}
	case BackendFile:
		if c.FilePath == "" {
			return fmt.Errorf("file_path must not be empty for the file backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("backend must be one of sqlite, file, memory; got %q", c.Backend)
	}
	if c.InitialLevel < 1 || c.InitialLevel > 9 {
		return fmt.Errorf("initial_level must be between 1 and 9, got %d", c.InitialLevel)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}

// Validate re-checks a config after flags have been applied
func (c *Config) Validate() error {
	return c.validate()
}

// SaveToProject writes the config to the project-level location (.stressslider/config.yaml)
func SaveToProject(cfg *Config) error {
	return SaveFile(projectConfigPath(), cfg)
}

// SaveFile writes the config as YAML to path
func SaveFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
