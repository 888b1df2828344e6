package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// LogfileEnvVar overrides the logfile location when set.
	LogfileEnvVar = "TIMELOG_LOGFILE"

	configDirName  = ".timelog"
	configFileName = "config.yaml"
	logFileName    = "log.json"

	// DefaultTag is used by open/close when no tag is given.
	DefaultTag = "default"
)

var ErrNoLogfile = errors.New("cannot find log file")

// Config is the on-disk configuration, stored as YAML in
// ~/.timelog/config.yaml.
type Config struct {
	Logfile    string `yaml:"logfile,omitempty"`
	DefaultTag string `yaml:"default_tag,omitempty"`
	History    bool   `yaml:"history"`
}

// DefaultConfig returns the configuration used when no config file exists:
// the default tag and a history journal alongside the logfile.
func DefaultConfig() *Config {
	return &Config{
		DefaultTag: DefaultTag,
		History:    true,
	}
}

// ConfigDir returns the timelog directory under the user's home.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// LoadConfig reads ~/.timelog/config.yaml, returning DefaultConfig when the
// file does not exist.
func LoadConfig() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(dir, configFileName))
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DefaultTag == "" {
		cfg.DefaultTag = DefaultTag
	}

	return cfg, nil
}

// SaveConfig writes the configuration to ~/.timelog/config.yaml.
func SaveConfig(cfg *Config) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, configFileName), data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolveLogfile picks the logfile path: the --file flag if given, then the
// TIMELOG_LOGFILE environment variable, then the configured path, then
// ~/.timelog/log.json.
func ResolveLogfile(flagPath string, cfg *Config) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if env := os.Getenv(LogfileEnvVar); env != "" {
		return env, nil
	}
	if cfg != nil && cfg.Logfile != "" {
		return cfg.Logfile, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", ErrNoLogfile
	}
	return filepath.Join(dir, logFileName), nil
}
