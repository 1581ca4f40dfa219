package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config file names
const (
	LocalConfigName = "yt-downloader.yaml"
	AppDirName      = "yt-downloader"
	UserConfigName  = "config.yaml"
)

// LoadConfigFile loads configuration from a YAML file. Missing keys keep
// their defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in standard locations.
// Returns empty string if not found.
func FindConfigFile() string {
	locations := []string{
		"./" + LocalConfigName,
		"./yt-downloader.yml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		locations = append(locations,
			filepath.Join(dir, AppDirName, UserConfigName),
			filepath.Join(dir, AppDirName, "config.yml"),
		)
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// UserConfigPath is where SaveConfigFile writes by default
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDirName, UserConfigName), nil
}

// Load reads path, or the first config file found when path is empty, and
// validates the result. With no file anywhere the defaults are returned.
func Load(path string) (*Config, string, error) {
	if path == "" {
		path = FindConfigFile()
	}
	if path == "" {
		cfg := DefaultConfig()
		return cfg, "", cfg.Validate()
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, cfg.Validate()
}

// SaveConfigFile saves configuration to a YAML file
func SaveConfigFile(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
