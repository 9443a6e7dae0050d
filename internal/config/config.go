// Package config handles configuration for tlochat.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmarques/tlochat/internal/models"
)

// Config represents the user configuration
type Config struct {
	// BaseURL is the root of the hosted chat service.
	BaseURL string `json:"base_url"`
	// APIKey authenticates every request. Set via "tlochat config set-key".
	APIKey string `json:"api_key"`
	// RequestTimeoutSeconds bounds each gateway call. A hung call resolves
	// as a timeout error instead of leaving the UI waiting forever.
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`
	// Verbose enables detailed output during operations.
	Verbose         bool   `json:"verbose"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`
	DownloadDir     string `json:"download_dir,omitempty"` // exports land here
	MarkdownStyle   string `json:"markdown_style"`         // "dark", "light", or "none"
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		BaseURL:               models.DefaultBaseURL,
		RequestTimeoutSeconds: 120,
		Verbose:               false,
		CopyToClipboard:       false,
		DownloadDir:           filepath.Join(homeDir, ".tlochat", "exports"),
		MarkdownStyle:         "dark",
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".tlochat"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the directory holds the API key
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// Load reads the configuration from disk, falling back to defaults
// when the file does not exist yet
func Load() (Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from the given path
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = DefaultConfig().RequestTimeoutSeconds
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = models.DefaultBaseURL
	}

	return cfg, nil
}

// Save writes the configuration to disk
func Save(cfg Config) error {
	if _, err := EnsureConfigDir(); err != nil {
		return err
	}

	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration to the given path
func SaveTo(cfg Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0o600: the file contains the API key
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
