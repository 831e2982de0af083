package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/basel-ax/imagegen/internal/domain"
	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "dall-e-3"
	DefaultSize    = "1024x1024"
	DefaultQuality = "hd"
)

// Config holds all configuration for the application
type Config struct {
	APIKey           string
	BaseURL          string
	DefaultModel     string
	DefaultSize      string
	DefaultQuality   string
	DefaultStyle     string
	DefaultNumImages int
	// RequestTimeout of zero leaves the HTTP client without a timeout
	RequestTimeout time.Duration
	LogLevel       string
}

// Load loads the configuration from environment variables.
// A .env file in the working directory is loaded when present; envFiles,
// when given, must exist. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("error loading env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{
		APIKey:         strings.TrimSpace(os.Getenv("IMAGE_API_KEY")),
		BaseURL:        getEnv("IMAGE_API_BASE_URL", DefaultBaseURL),
		DefaultModel:   getEnv("IMAGE_MODEL", DefaultModel),
		DefaultSize:    getEnv("IMAGE_SIZE", DefaultSize),
		DefaultQuality: getEnv("IMAGE_QUALITY", DefaultQuality),
		DefaultStyle:   strings.TrimSpace(os.Getenv("IMAGE_STYLE")),
		LogLevel:       getEnv("LOG_LEVEL", defaultLogLevel()),
	}

	if numImages, err := strconv.Atoi(os.Getenv("IMAGE_COUNT")); err == nil && numImages > 0 {
		config.DefaultNumImages = numImages
	} else {
		config.DefaultNumImages = 1 // default value
	}

	if timeout, err := strconv.Atoi(os.Getenv("IMAGE_API_TIMEOUT")); err == nil && timeout > 0 {
		config.RequestTimeout = time.Duration(timeout) * time.Second
	}

	// Validate required fields
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: IMAGE_API_KEY is required", domain.ErrAuthentication)
	}

	return config, nil
}

// defaultLogLevel is debug when DEBUG=true, info otherwise. LOG_LEVEL wins over both.
func defaultLogLevel() string {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("DEBUG")), "true") {
		return "debug"
	}
	return "info"
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
