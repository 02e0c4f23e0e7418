package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Groq    GroqConfig
	Catalog CatalogConfig
	Cache   CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GroqConfig holds Groq API configuration
type GroqConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// CatalogConfig holds product feed configuration
type CatalogConfig struct {
	StoreURL string        `mapstructure:"store_url"`
	Limit    int           `mapstructure:"limit"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string `mapstructure:"type"` // "memory" is the only supported type
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Local development convenience; missing .env is not an error
	_ = godotenv.Load()

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/biovalley/")

	// Environment variable settings
	v.SetEnvPrefix("BIOVALLEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Groq defaults. The empty api_key default registers the key so
	// BIOVALLEY_GROQ_API_KEY is picked up through AutomaticEnv.
	v.SetDefault("groq.api_key", "")
	v.SetDefault("groq.base_url", "https://api.groq.com/openai")
	v.SetDefault("groq.model", "meta-llama/llama-4-scout-17b-16e-instruct")

	// Catalog defaults
	v.SetDefault("catalog.store_url", "https://bio-valley.com")
	v.SetDefault("catalog.limit", 250)
	v.SetDefault("catalog.ttl", "6h")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Groq.APIKey == "" {
		return fmt.Errorf("Groq API key is required (set BIOVALLEY_GROQ_API_KEY)")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Catalog.Limit <= 0 || config.Catalog.Limit > 250 {
		return fmt.Errorf("catalog limit must be between 1 and 250, got: %d", config.Catalog.Limit)
	}

	return nil
}
