package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Telegram Bot configuration
	BotToken string

	// OpenAI configuration
	OpenAIAPIBase string
	OpenAIAPIKey  string
	OpenAIModel   string

	// Application configuration
	DataDir     string
	SuggestHour int // local hour for the daily suggestion digest
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{}

	// Required configurations
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN environment variable is required")
	}
	cfg.BotToken = botToken

	openAIAPIKey := os.Getenv("OPENAI_API_KEY")
	if openAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	cfg.OpenAIAPIKey = openAIAPIKey

	// Optional configurations with defaults
	cfg.OpenAIAPIBase = getEnvWithDefault("OPENAI_API_BASE", "https://api.openai.com/v1")
	cfg.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
	cfg.DataDir = getEnvWithDefault("DATA_DIR", "./data")

	suggestHour := getEnvWithDefault("SUGGEST_HOUR", "15")
	cfg.SuggestHour, err = strconv.Atoi(suggestHour)
	if err != nil || cfg.SuggestHour < 0 || cfg.SuggestHour > 23 {
		return nil, fmt.Errorf("SUGGEST_HOUR must be an hour between 0 and 23, got %q", suggestHour)
	}

	// Log configuration with sensitive data redacted
	logCfg := *cfg
	if len(logCfg.BotToken) > 8 {
		logCfg.BotToken = logCfg.BotToken[:8] + "...REDACTED..."
	}
	if len(logCfg.OpenAIAPIKey) > 8 {
		logCfg.OpenAIAPIKey = logCfg.OpenAIAPIKey[:8] + "...REDACTED..."
	}
	log.Printf("Configuration loaded: %+v", logCfg)
	return cfg, nil
}

// getEnvWithDefault returns the value of the environment variable or the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
