// Package config loads application configuration from environment variables.
// All variables use the GIGA_ prefix. A .env file in the working directory,
// when present, is loaded first and never overrides variables already set.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Cache   CacheConfig
	Log     LogConfig
}

// APIConfig holds the REST API settings. There is exactly one base URL.
type APIConfig struct {
	BaseURL        string
	TimeoutSeconds int // 0 means no timeout
}

// Timeout returns the HTTP client timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SessionConfig selects where login tokens are kept between runs.
type SessionConfig struct {
	Store string // "file" or "redis"
	Path  string
	Key   string
}

// CacheConfig holds Redis connection settings for the redis session store.
type CacheConfig struct {
	URL string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// Load reads configuration from environment variables with GIGA_ prefix,
// after loading envFiles (default ".env") if they exist.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:        envStr("GIGA_API_BASE_URL", "http://localhost:8000"),
			TimeoutSeconds: envInt("GIGA_HTTP_TIMEOUT_SECONDS", 0),
		},
		Session: SessionConfig{
			Store: envStr("GIGA_SESSION_STORE", StoreFile),
			Path:  envStr("GIGA_SESSION_PATH", defaultSessionPath()),
			Key:   envStr("GIGA_SESSION_KEY", "gigaadmin:session"),
		},
		Cache: CacheConfig{
			URL: envStr("GIGA_CACHE_URL", "redis://localhost:6379"),
		},
		Log: LogConfig{
			Level:     envStr("GIGA_LOG_LEVEL", "info"),
			Format:    envStr("GIGA_LOG_FORMAT", "text"),
			AddSource: envBool("GIGA_LOG_SOURCE", false),
		},
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("GIGA_API_BASE_URL must be an absolute URL, got %q", c.API.BaseURL)
	}

	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("GIGA_HTTP_TIMEOUT_SECONDS must not be negative, got %d", c.API.TimeoutSeconds)
	}

	switch c.Session.Store {
	case StoreFile:
		if c.Session.Path == "" {
			return fmt.Errorf("GIGA_SESSION_PATH is required for the file session store")
		}
	case StoreRedis:
		if c.Cache.URL == "" {
			return fmt.Errorf("GIGA_CACHE_URL is required for the redis session store")
		}
	default:
		return fmt.Errorf("GIGA_SESSION_STORE must be 'file' or 'redis', got %q", c.Session.Store)
	}

	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("GIGA_LOG_FORMAT must be 'json' or 'text', got %q", c.Log.Format)
	}

	return nil
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".gigaadmin-session.json"
	}
	return filepath.Join(dir, "gigaadmin", "session.json")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
