package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	GitHubToken string
	APIBaseURL  string
	HTTPTimeout time.Duration
	OutputDir   string
	LogLevel    string
}

// NewConfig creates a new Config instance
func NewConfig() *Config {
	return &Config{}
}

// Load loads configuration from environment variables
func (c *Config) Load() error {
	// Set up Viper
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Read .env file if it exists
	if err := viper.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Optional: unauthenticated requests work but hit rate limits sooner
	c.GitHubToken = viper.GetString("GITHUB_TOKEN")

	c.APIBaseURL = viper.GetString("GITHUB_API_URL")
	if c.APIBaseURL == "" {
		c.APIBaseURL = "https://api.github.com"
	}

	c.HTTPTimeout = 30 * time.Second
	if timeoutStr := viper.GetString("HTTP_TIMEOUT"); timeoutStr != "" {
		parsed, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT format: %w", err)
		}
		c.HTTPTimeout = parsed
	}

	c.OutputDir = viper.GetString("OUTPUT_DIR")
	if c.OutputDir == "" {
		c.OutputDir = "."
	}

	c.LogLevel = viper.GetString("LOG_LEVEL")
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	return nil
}
