package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// NamePlaceholder is replaced with the package name in clone URL templates
const NamePlaceholder = "{name}"

// DefaultCommitMessage is used when neither flags nor config provide one
const DefaultCommitMessage = "Update to new version"

var (
	ErrRPCURLNotSet       = errors.New("aur rpc_url is not configured")
	ErrInvalidURLTemplate = errors.New("clone URL template must contain " + NamePlaceholder)
)

// Config represents the application configuration
type Config struct {
	AUR AURConfig `yaml:"aur"`
	Git GitConfig `yaml:"git"`
	Log LogConfig `yaml:"log"`
}

// AURConfig holds AUR endpoint settings
type AURConfig struct {
	RPCURL   string        `yaml:"rpc_url"`
	SSHURL   string        `yaml:"ssh_url"`   // authenticated clone URL template
	HTTPSURL string        `yaml:"https_url"` // anonymous clone URL template
	Timeout  time.Duration `yaml:"timeout"`
}

// GitConfig holds commit identity and message defaults
type GitConfig struct {
	User          string `yaml:"user,omitempty"`
	Email         string `yaml:"email,omitempty"`
	CommitMessage string `yaml:"commit_message"`
}

// LogConfig holds file logging settings
type LogConfig struct {
	File       bool `yaml:"file"`
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		AUR: AURConfig{
			RPCURL:   "https://aur.archlinux.org/rpc/v5",
			SSHURL:   "ssh://aur@aur.archlinux.org/" + NamePlaceholder + ".git",
			HTTPSURL: "https://aur.archlinux.org/" + NamePlaceholder + ".git",
			Timeout:  30 * time.Second,
		},
		Git: GitConfig{
			CommitMessage: DefaultCommitMessage,
		},
		Log: LogConfig{
			File:       false,
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/aurupd/config.yaml (XDG standard - priority)
// 2. ~/.aurupd/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "aurupd", "config.yaml"),
		filepath.Join(home, ".aurupd", "config.yaml"),
	}, nil
}

// FindConfigPath returns the first existing config file path
// Returns the default path if no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return paths[0], nil
}

// Load reads configuration from the first available config file
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path.
// A missing file is created with default values.
// Fields absent from an existing file keep their defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if saveErr := cfg.SaveTo(path); saveErr != nil {
				return nil, saveErr
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the AUR endpoint settings
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AUR.RPCURL) == "" {
		return ErrRPCURLNotSet
	}
	for _, tmpl := range []string{c.AUR.SSHURL, c.AUR.HTTPSURL} {
		if !strings.Contains(tmpl, NamePlaceholder) {
			return fmt.Errorf("%w: %q", ErrInvalidURLTemplate, tmpl)
		}
	}
	return nil
}

// SSHURL returns the authenticated clone URL for a package
func (c *Config) SSHURL(name string) string {
	return strings.ReplaceAll(c.AUR.SSHURL, NamePlaceholder, name)
}

// HTTPSURL returns the anonymous clone URL for a package
func (c *Config) HTTPSURL(name string) string {
	return strings.ReplaceAll(c.AUR.HTTPSURL, NamePlaceholder, name)
}
