package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	APIBaseURL     string
	APIKey         string
	ShortDataKey   string
	RequestTimeout int // seconds

	AccountSize float64
	RiskProfile string

	ScanTickers  []string
	ScanSchedule string // cron spec, empty disables scheduling
	ScanWorkers  int

	HTTPPort int

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	TelegramBotToken string
	TelegramChatID   int64

	LogLevel string
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		APIBaseURL:       getEnvWithDefault("API_BASE_URL", "https://financialmodelingprep.com"),
		APIKey:           os.Getenv("API_KEY"),
		ShortDataKey:     os.Getenv("SHORT_DATA_API_KEY"),
		RequestTimeout:   getEnvIntWithDefault("REQUEST_TIMEOUT", 30),
		AccountSize:      getEnvFloatWithDefault("ACCOUNT_SIZE", 100000),
		RiskProfile:      getEnvWithDefault("RISK_PROFILE", "moderate"),
		ScanTickers:      splitTickers(getEnvWithDefault("SCAN_TICKERS", "AAPL,MSFT,NVDA,TSLA,AMZN")),
		ScanSchedule:     os.Getenv("SCAN_SCHEDULE"),
		ScanWorkers:      getEnvIntWithDefault("SCAN_WORKERS", 4),
		HTTPPort:         getEnvIntWithDefault("HTTP_PORT", 8080),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           getEnvWithDefault("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBSSLMode:        getEnvWithDefault("DB_SSLMODE", "disable"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   getEnvInt64WithDefault("TELEGRAM_CHAT_ID", 0),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

func splitTickers(raw string) []string {
	parts := strings.Split(raw, ",")
	tickers := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.ToUpper(strings.TrimSpace(p)); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64WithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
