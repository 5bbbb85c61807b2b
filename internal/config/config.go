package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string
	AutoMigrate bool

	// Auth0
	Auth0Domain   string
	Auth0Audience string
	Auth0ClientID string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Location used to decide "today" and month boundaries
	Timezone *time.Location

	// S3 Storage
	S3 S3Config

	// AI assistant
	Assistant AssistantConfig
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Enabled reports whether receipt storage has credentials or a custom endpoint
func (s S3Config) Enabled() bool {
	return s.Bucket != "" && (s.AccessKeyID != "" || s.Endpoint != "")
}

// AssistantConfig holds the OpenAI-compatible LLM settings
type AssistantConfig struct {
	APIKey  string
	BaseURL string // Optional: any OpenAI-compatible endpoint
	Model   string

	// Per-user request budget
	RatePerMinute int
	Burst         int
}

// Enabled reports whether an API key is configured
func (a AssistantConfig) Enabled() bool {
	return a.APIKey != ""
}

// Load reads configuration for the API server from environment variables
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadPurge reads configuration for the purge job, which only needs the database
func LoadPurge() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	ratePerMinute, err := getEnvInt("ASSISTANT_RATE_PER_MINUTE", 10)
	if err != nil {
		return nil, err
	}
	burst, err := getEnvInt("ASSISTANT_BURST", 3)
	if err != nil {
		return nil, err
	}

	return &Config{
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		AutoMigrate:   getEnv("AUTO_MIGRATE", "false") == "true",
		Auth0Domain:   getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience: getEnv("AUTH0_AUDIENCE", ""),
		Auth0ClientID: getEnv("AUTH0_CLIENT_ID", ""),
		Port:          getEnv("PORT", "8080"),
		CORSOrigins:   strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:           getEnv("ENV", "development"),
		Timezone:      loc,
		S3: S3Config{
			Region:          getEnv("S3_REGION", "us-east-1"),
			Bucket:          getEnv("S3_BUCKET", "pennywise-receipts"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""), // Empty = use AWS, set for MinIO/LocalStack
		},
		Assistant: AssistantConfig{
			APIKey:        getEnv("OPENAI_API_KEY", ""),
			BaseURL:       getEnv("OPENAI_BASE_URL", ""),
			Model:         getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			RatePerMinute: ratePerMinute,
			Burst:         burst,
		},
	}, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	if c.Assistant.RatePerMinute <= 0 || c.Assistant.Burst <= 0 {
		return fmt.Errorf("ASSISTANT_RATE_PER_MINUTE and ASSISTANT_BURST must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
