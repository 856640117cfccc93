package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration file (~/.gasguard/config.yaml).
type Config struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

const defaultBaseURL = "http://localhost:8080"

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".gasguard", "config.yaml"), nil
}

// LoadConfig loads the configuration from file. A missing file is not an
// error; it yields an empty config.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// Resolve determines the effective base URL and API key. Priority:
// explicit flags > environment variables > config file > defaults.
func Resolve(flagBaseURL, flagAPIKey string) (baseURL, apiKey string, err error) {
	cfg, err := LoadConfig()
	if err != nil {
		return "", "", err
	}

	baseURL = firstNonEmpty(flagBaseURL, os.Getenv("GASGUARD_BASE_URL"), cfg.BaseURL, defaultBaseURL)
	apiKey = firstNonEmpty(flagAPIKey, os.Getenv("GASGUARD_API_KEY"), cfg.APIKey)
	return baseURL, apiKey, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
