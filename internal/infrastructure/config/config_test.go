package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Success(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("QUOTE_BASE_URL", "http://localhost:9000/d/quotes.csv")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("POOL_SIZE", "4")
	t.Setenv("WATCH_SYMBOLS", "GOOG, WD.L ,")
	t.Setenv("WATCH_FIELDS", "ask,bid")
	t.Setenv("WATCH_INTERVAL", "15s")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "http://localhost:9000/d/quotes.csv", cfg.QuoteBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 4, cfg.PoolSize)
	assert.Equal(t, []string{"GOOG", "WD.L"}, cfg.WatchSymbols)
	assert.Equal(t, []string{"ask", "bid"}, cfg.WatchFields)
	assert.Equal(t, 15*time.Second, cfg.WatchInterval)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "SERVER_HOST", "LOG_LEVEL", "QUOTE_BASE_URL", "HISTORICAL_BASE_URL",
		"INTRADAY_BASE_URL", "HTTP_TIMEOUT", "POOL_SIZE", "WATCH_SYMBOLS", "WATCH_FIELDS", "WATCH_INTERVAL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.ServerHost)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.QuoteBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 1, cfg.PoolSize)
	assert.Empty(t, cfg.WatchSymbols)
	assert.Equal(t, []string{"last_trade_price"}, cfg.WatchFields)
	assert.Equal(t, 60*time.Second, cfg.WatchInterval)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		value    string
		contains string
	}{
		{name: "bad timeout", key: "HTTP_TIMEOUT", value: "soon", contains: "invalid HTTP_TIMEOUT"},
		{name: "bad pool size", key: "POOL_SIZE", value: "many", contains: "invalid POOL_SIZE"},
		{name: "zero pool size", key: "POOL_SIZE", value: "0", contains: "at least 1"},
		{name: "bad interval", key: "WATCH_INTERVAL", value: "invalid", contains: "invalid WATCH_INTERVAL"},
		{name: "negative interval", key: "WATCH_INTERVAL", value: "-1s", contains: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad_WatchFieldsRequired(t *testing.T) {
	t.Setenv("WATCH_SYMBOLS", "GOOG")
	t.Setenv("WATCH_FIELDS", " , ")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "WATCH_FIELDS")
}

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "returns env value when set",
			key:          "TEST_KEY_1",
			defaultValue: "default",
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "returns default when env not set",
			key:          "TEST_KEY_2",
			defaultValue: "default",
			envValue:     "",
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)
			result := getEnvOrDefault(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}
