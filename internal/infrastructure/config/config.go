package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerPort        string
	ServerHost        string
	LogLevel          string
	QuoteBaseURL      string
	HistoricalBaseURL string
	IntradayBaseURL   string
	HTTPTimeout       time.Duration
	PoolSize          int
	WatchSymbols      []string
	WatchFields       []string
	WatchInterval     time.Duration
}

func Load() (*Config, error) {
	port := getEnvOrDefault("SERVER_PORT", "8080")
	host := getEnvOrDefault("SERVER_HOST", "localhost")
	logLevel := getEnvOrDefault("LOG_LEVEL", "info")

	httpTimeout, err := time.ParseDuration(getEnvOrDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}

	poolSize, err := strconv.Atoi(getEnvOrDefault("POOL_SIZE", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid POOL_SIZE: %w", err)
	}
	if poolSize < 1 {
		return nil, fmt.Errorf("invalid POOL_SIZE: must be at least 1, got %d", poolSize)
	}

	watchInterval, err := time.ParseDuration(getEnvOrDefault("WATCH_INTERVAL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_INTERVAL: %w", err)
	}
	if watchInterval < 0 {
		return nil, fmt.Errorf("invalid WATCH_INTERVAL: must not be negative, got %s", watchInterval)
	}

	watchSymbols := splitList(os.Getenv("WATCH_SYMBOLS"))
	watchFields := splitList(getEnvOrDefault("WATCH_FIELDS", "last_trade_price"))
	if len(watchSymbols) > 0 && len(watchFields) == 0 {
		return nil, fmt.Errorf("WATCH_FIELDS is required when WATCH_SYMBOLS is set")
	}

	return &Config{
		ServerPort:        port,
		ServerHost:        host,
		LogLevel:          logLevel,
		QuoteBaseURL:      getEnvOrDefault("QUOTE_BASE_URL", ""),
		HistoricalBaseURL: getEnvOrDefault("HISTORICAL_BASE_URL", ""),
		IntradayBaseURL:   getEnvOrDefault("INTRADAY_BASE_URL", ""),
		HTTPTimeout:       httpTimeout,
		PoolSize:          poolSize,
		WatchSymbols:      watchSymbols,
		WatchFields:       watchFields,
		WatchInterval:     watchInterval,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma separated value, dropping blank entries.
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
