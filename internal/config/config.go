// Package config loads the optional global sdkfetch configuration file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config represents the global sdkfetch configuration.
type Config struct {
	// GitHub configuration for repository access.
	GitHub GitHubConfig `json:"github"`
	// Defaults configuration for default request values.
	Defaults DefaultsConfig `json:"defaults"`
}

// GitHubConfig represents GitHub-specific settings.
type GitHubConfig struct {
	// Token is the GitHub personal access token for private repositories.
	Token string `json:"token,omitempty"`
	// APIURL is the GitHub API URL (for enterprise installations).
	APIURL string `json:"api_url"`
}

// DefaultsConfig represents default values for fetch requests.
type DefaultsConfig struct {
	// Flavor is the flavor used when none is given on the command line.
	Flavor string `json:"flavor"`
	// Architecture is the architecture used when none is given.
	Architecture string `json:"architecture"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIURL: "https://api.github.com",
		},
		Defaults: DefaultsConfig{
			Flavor:       "minimal",
			Architecture: "x86_64",
		},
	}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sdkfetch", "config.json")
}

// Load loads configuration from the specified file path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid JSON syntax", err)
	}
	if cfg.GitHub.APIURL == "" {
		cfg.GitHub.APIURL = DefaultConfig().GitHub.APIURL
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if the file does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return DefaultConfig(), nil
	}

	cfg, err := Load(path)
	if err != nil {
		if cfgErr, ok := err.(*ConfigError); ok && cfgErr.Type == ConfigNotFound {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}
