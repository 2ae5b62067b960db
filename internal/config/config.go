package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

type Config struct {
	LogLevel        slog.Level
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	BackendURL     string
	BackendTimeout time.Duration

	MapEmbedURL string
	MapMargin   float64

	AutocompleteMinLength int
	AutocompleteDelay     time.Duration
	AutocompleteCache     bool

	DefaultLocale string

	RateLimitPerWindow  int
	RateLimitWindow     time.Duration
	RateLimitWhitelist  []string
	EventLimitPerWindow int
}

// Load reads the environment, after applying a .env file when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		LogLevel:        getLogLevelEnv("LOG_LEVEL", slog.LevelInfo),
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:     getDurationEnv("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getDurationEnv("WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		BackendURL:     getEnv("BACKEND_URL", "http://127.0.0.1:5000"),
		BackendTimeout: getDurationEnv("BACKEND_TIMEOUT", 15*time.Second),

		MapEmbedURL: getEnv("MAP_EMBED_URL", "https://www.openstreetmap.org/export/embed.html"),
		MapMargin:   getFloatEnv("MAP_MARGIN", 0.1),

		AutocompleteMinLength: getIntEnv("AUTOCOMPLETE_MIN_LENGTH", 2),
		AutocompleteDelay:     getDurationEnv("AUTOCOMPLETE_DELAY", 250*time.Millisecond),
		AutocompleteCache:     getBoolEnv("AUTOCOMPLETE_CACHE", true),

		DefaultLocale: getEnv("DEFAULT_LOCALE", "ar"),

		RateLimitPerWindow:  getIntEnv("RATE_LIMIT_PER_WINDOW", 120),
		RateLimitWindow:     getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		RateLimitWhitelist:  getCSVEnv("RATE_LIMIT_WHITELIST"),
		EventLimitPerWindow: getIntEnv("EVENT_LIMIT_PER_WINDOW", 60),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_URL %q must be an absolute URL", c.BackendURL)
	}
	if _, err := url.Parse(c.MapEmbedURL); err != nil {
		return fmt.Errorf("MAP_EMBED_URL: %w", err)
	}
	if c.MapMargin <= 0 {
		return fmt.Errorf("MAP_MARGIN must be positive, got %v", c.MapMargin)
	}
	if c.AutocompleteMinLength < 0 {
		return fmt.Errorf("AUTOCOMPLETE_MIN_LENGTH must not be negative, got %d", c.AutocompleteMinLength)
	}
	if _, err := language.Parse(c.DefaultLocale); err != nil {
		return fmt.Errorf("DEFAULT_LOCALE %q: %w", c.DefaultLocale, err)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getFloatEnv(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getBoolEnv(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func getLogLevelEnv(key string, defaultVal slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}

	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return defaultVal
	}
}

func getCSVEnv(key string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}

	parts := strings.Split(v, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			result = append(result, t)
		}
	}
	return result
}
