// Package config handles application configuration from environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Supported LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all application configuration
type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	LogLevel       string   `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty      bool     `env:"LOG_PRETTY" envDefault:"false"`
	RedisAddr      string   `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	MetricsEnabled bool     `env:"METRICS_ENABLED" envDefault:"true"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// PromptTemplatePath optionally replaces the built-in prompt template
	PromptTemplatePath string `env:"PROMPT_TEMPLATE_PATH"`
	// CatalogPath optionally replaces the embedded exercise catalog
	CatalogPath string `env:"CATALOG_PATH"`

	LLM    LLMConfig    `envPrefix:"LLM_"`
	Worker WorkerConfig `envPrefix:"WORKER_"`
}

// LLMConfig holds settings for the text-generation provider
type LLMConfig struct {
	Provider    string        `env:"PROVIDER" envDefault:"openai"`
	Model       string        `env:"MODEL" envDefault:"gpt-4"`
	APIKey      string        `env:"API_KEY"`
	BaseURL     string        `env:"BASE_URL" envDefault:"https://api.openai.com/v1"`
	Temperature float32       `env:"TEMPERATURE" envDefault:"0.7"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"60s"`
	// CacheDir enables an on-disk response cache for identical prompts
	CacheDir string        `env:"CACHE_DIR"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"24h"`
}

// WorkerConfig holds settings for the background job worker
type WorkerConfig struct {
	// Async routes delegating requests from the HTTP API through the job queue
	Async        bool          `env:"ASYNC" envDefault:"false"`
	Concurrency  int           `env:"CONCURRENCY" envDefault:"4"`
	JobRetention time.Duration `env:"JOB_RETENTION" envDefault:"24h"`
	JobTimeout   time.Duration `env:"JOB_TIMEOUT" envDefault:"3m"`
}

// Load reads configuration from environment variables, after loading a .env file
// from the working directory if one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasLLM returns true if a provider is configured with credentials
func (c *Config) HasLLM() bool {
	return c.LLM.APIKey != ""
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %v", c.LLM.Temperature)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %v", c.LLM.Timeout)
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("WORKER_CONCURRENCY must be at least 1, got %d", c.Worker.Concurrency)
	}
	return nil
}
