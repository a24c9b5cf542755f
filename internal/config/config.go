// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default upstream endpoints. The journey planner and transport APIs are open;
// the GTFS-RT deviations feed needs a Trafiklab API key.
const (
	DefaultJourneyPlannerURL = "https://journeyplanner.integration.sl.se/v2"
	DefaultTransportAPIURL   = "https://transport.integration.sl.se/v1"
	DefaultDeviationsFeedURL = "https://opendata.samtrafiken.se/gtfs-rt/sl/ServiceAlerts.pb"
)

// Config holds all application configuration.
type Config struct {
	Env               string
	LogLevel          slog.Level
	HTTPAddr          string
	JourneyPlannerURL string
	TransportAPIURL   string
	DeviationsFeedURL string
	TrafiklabAPIKey   string
	HTTPTimeout       time.Duration
	CacheTTL          time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:               getEnv("ENV", "development"),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		JourneyPlannerURL: getEnv("JOURNEY_PLANNER_URL", DefaultJourneyPlannerURL),
		TransportAPIURL:   getEnv("TRANSPORT_API_URL", DefaultTransportAPIURL),
		DeviationsFeedURL: getEnv("DEVIATIONS_FEED_URL", DefaultDeviationsFeedURL),
		TrafiklabAPIKey:   getEnv("TRAFIKLAB_API_KEY", ""),
		HTTPTimeout:       getDurationEnv("HTTP_TIMEOUT_SECONDS", 10) * time.Second,
		CacheTTL:          getDurationEnv("CACHE_TTL_SECONDS", 60) * time.Second,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.JourneyPlannerURL == "" {
		return fmt.Errorf("JOURNEY_PLANNER_URL must not be empty")
	}
	if c.TransportAPIURL == "" {
		return fmt.Errorf("TRANSPORT_API_URL must not be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}

func parseLogLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
