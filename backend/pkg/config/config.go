package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port     string
	Env      string
	LogLevel string

	// Dispatch
	ToolTimeout      time.Duration // Default per-run deadline applied by callers of the dispatcher
	WarmTools        bool          // Resolve every tool at startup
	WarmConcurrency  int
	CatalogOverrides string // Optional YAML file toggling visibility flags per slug

	// Outbound HTTP
	HTTPClientTimeout time.Duration

	// Currency
	ExchangeRateURL string
	RedisAddr       string // Empty keeps exchange rates in process memory
	RateCacheTTL    time.Duration

	// AI
	AIBaseURL string
	AIAPIKey  string
	AIModel   string

	// Media
	FFmpegPath    string
	MaxAudioBytes int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		Env:               getEnv("ENV", "development"),
		LogLevel:          getEnv("LOG_LEVEL", ""),
		ToolTimeout:       getEnvDuration("TOOL_TIMEOUT", 20*time.Second),
		WarmTools:         getEnvBool("WARM_TOOLS", true),
		WarmConcurrency:   getEnvInt("WARM_CONCURRENCY", 4),
		CatalogOverrides:  getEnv("CATALOG_OVERRIDES", ""),
		HTTPClientTimeout: getEnvDuration("HTTP_CLIENT_TIMEOUT", 15*time.Second),
		ExchangeRateURL:   getEnv("EXCHANGE_RATE_URL", "https://open.er-api.com/v6/latest"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RateCacheTTL:      getEnvDuration("RATE_CACHE_TTL", time.Hour),
		AIBaseURL:         getEnv("AI_BASE_URL", "https://openrouter.ai/api"),
		AIAPIKey:          getEnv("AI_API_KEY", ""),
		AIModel:           getEnv("AI_MODEL", "openai/gpt-4o-mini"),
		FFmpegPath:        getEnv("FFMPEG_PATH", "ffmpeg"),
		MaxAudioBytes:     getEnvInt("MAX_AUDIO_BYTES", 20<<20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.ToolTimeout <= 0 {
		return fmt.Errorf("TOOL_TIMEOUT must be positive")
	}
	if c.HTTPClientTimeout <= 0 {
		return fmt.Errorf("HTTP_CLIENT_TIMEOUT must be positive")
	}
	if c.WarmConcurrency < 1 {
		return fmt.Errorf("WARM_CONCURRENCY must be at least 1")
	}
	if c.ExchangeRateURL == "" {
		return fmt.Errorf("EXCHANGE_RATE_URL is required")
	}
	if c.MaxAudioBytes <= 0 {
		return fmt.Errorf("MAX_AUDIO_BYTES must be positive")
	}
	// AI key and Redis are optional; the tools that need them fail at load time instead
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AIEnabled reports whether AI-backed tools can be loaded
func (c *Config) AIEnabled() bool {
	return c.AIAPIKey != "" && c.AIBaseURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes":
		return true
	case "0", "false", "FALSE", "no":
		return false
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
