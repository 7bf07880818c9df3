// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// All UI-facing preferences (pinned currencies, CORS origins) live here and
// are passed into the relevant layer explicitly; nothing reads global state.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Auth    AuthConfig    `yaml:"auth"`
	Rates   RatesConfig   `yaml:"rates"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// PublicBaseURL is the externally visible URL used in share links.
	PublicBaseURL string `yaml:"public_base_url"`
}

// StorageConfig holds database configuration.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// OpenAIConfig holds the receipt extraction API configuration.
// An empty APIKey disables extraction; bills are then created manually.
type OpenAIConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// AuthConfig holds share-token settings.
type AuthConfig struct {
	ShareSecret   string `yaml:"share_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// RatesConfig holds the exchange-rate provider settings.
type RatesConfig struct {
	BaseURL string `yaml:"base_url"`
}

// DisplayConfig holds display-layer preferences.
type DisplayConfig struct {
	// PinnedCurrencies are listed first in currency pickers.
	PinnedCurrencies []string `yaml:"pinned_currencies"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file. Environment variable references
// (e.g., ${OPENAI_API_KEY}) inside the file are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))

	cfg := defaults()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only.
func LoadFromEnv() *Config {
	cfg := defaults()
	cfg.Server.Port = getEnvInt("PORT", cfg.Server.Port)
	cfg.Server.PublicBaseURL = getEnv("PUBLIC_BASE_URL", cfg.Server.PublicBaseURL)
	cfg.Storage.DatabasePath = getEnv("DB_PATH", cfg.Storage.DatabasePath)
	cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAI.Model = getEnv("OPENAI_MODEL", cfg.OpenAI.Model)
	cfg.Auth.ShareSecret = getEnv("SHARE_SECRET", cfg.Auth.ShareSecret)
	cfg.Rates.BaseURL = getEnv("RATES_BASE_URL", cfg.Rates.BaseURL)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)
	return cfg
}

// LoadOrEnv loads the config file if it exists, falling back to environment
// variables otherwise.
func LoadOrEnv(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return LoadFromEnv(), nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			PublicBaseURL:  "http://localhost:8080",
		},
		Storage: StorageConfig{DatabasePath: "./data/bills.db"},
		OpenAI:  OpenAIConfig{Model: "gpt-4o"},
		Auth: AuthConfig{
			ShareSecret:   "dev-only-secret-change-me",
			TokenTTLHours: 24 * 30,
		},
		Rates: RatesConfig{BaseURL: "https://api.frankfurter.dev/v1"},
		Display: DisplayConfig{
			PinnedCurrencies: []string{"THB", "USD", "EUR", "GBP", "JPY"},
		},
		Logging: LoggingConfig{Level: "info", Format: "tint"},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
