package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Region overrides the SDK default chain's region.
	Region string

	// CacheTTL is how long a fetched report stays valid.
	CacheTTL time.Duration

	// ListenAddr is the dashboard bind address.
	ListenAddr string

	// WindowDays is the rolling daily-cost window length.
	WindowDays int

	Debug bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Region:     getEnv("AWS_DEFAULT_REGION", "us-east-1"),
		CacheTTL:   getEnvDuration("COSTVIEW_CACHE_TTL", 5*time.Minute),
		ListenAddr: getEnv("COSTVIEW_LISTEN_ADDR", ":8080"),
		WindowDays: getEnvInt("COSTVIEW_WINDOW_DAYS", 30),
		Debug:      getEnvBool("COSTVIEW_DEBUG", false),
	}
}

func (c *Config) Validate() error {
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %s", c.CacheTTL)
	}
	if c.WindowDays < 1 || c.WindowDays > 365 {
		return fmt.Errorf("window days must be between 1 and 365, got %d", c.WindowDays)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
