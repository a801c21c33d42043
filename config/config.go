package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// AI Service
	AI AIConfig

	// Catalog source
	Catalog CatalogConfig

	// Database (used when Catalog.Source is "mongodb")
	Database DatabaseConfig
}

type AIConfig struct {
	APIKey      string
	APIURL      string
	Model       string
	MaxTokens   int
	Temperature float64
	MaxRetries  int
	Timeout     time.Duration
}

type CatalogConfig struct {
	// Source is "dummyjson" (HTTP) or "mongodb".
	Source  string
	URL     string
	Timeout time.Duration

	// CacheTTL controls the catalog cache policy: 0 disables caching,
	// a positive duration expires entries, a negative duration caches
	// forever after the first successful fetch.
	CacheTTL time.Duration
}

type DatabaseConfig struct {
	URI      string
	Name     string
	Host     string
	Port     string
	Username string
	Password string

	// Connection pool settings
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
}

var cfg *Config

// Load initializes the configuration
func Load() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg = &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		AI: AIConfig{
			APIKey:      getEnv("GROQ_API_KEY", ""),
			APIURL:      getEnv("GROQ_API_URL", "https://api.groq.com/openai/v1/chat/completions"),
			Model:       getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
			MaxTokens:   getEnvAsInt("AI_MAX_TOKENS", 512),
			Temperature: getEnvAsFloat("AI_TEMPERATURE", 0.7),
			MaxRetries:  getEnvAsInt("AI_MAX_RETRIES", 3),
			Timeout:     getEnvAsDuration("AI_TIMEOUT", "12s"),
		},

		Catalog: CatalogConfig{
			Source:   getEnv("CATALOG_SOURCE", "dummyjson"),
			URL:      getEnv("CATALOG_URL", "https://dummyjson.com/products"),
			Timeout:  getEnvAsDuration("CATALOG_TIMEOUT", "15s"),
			CacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", "5m"),
		},

		Database: DatabaseConfig{
			URI:      getEnv("DATABASE_URL", ""),
			Name:     getEnv("DB_NAME", "product_chatbot"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),

			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 100),
			MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 10),
			MaxIdleTime:    getEnvAsDuration("DB_MAX_IDLE_TIME", "30m"),
		},
	}

	// Validate configuration
	if err := validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	if cfg == nil {
		log.Fatal("Configuration not loaded. Call Load() first")
	}
	return cfg
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func validate() error {
	switch cfg.Catalog.Source {
	case "dummyjson":
		if cfg.Catalog.URL == "" {
			return fmt.Errorf("catalog URL is required for the dummyjson source")
		}
	case "mongodb":
		if cfg.Database.URI == "" && (cfg.Database.Host == "" || cfg.Database.Port == "") {
			return fmt.Errorf("database URI or host/port must be provided for the mongodb source")
		}
	default:
		return fmt.Errorf("unsupported catalog source: %s", cfg.Catalog.Source)
	}

	// A missing AI key only disables the generative fallback; the rule
	// engine still answers, so this is not fatal.
	if cfg.AI.APIKey == "" {
		log.Println("WARNING: GROQ_API_KEY not set, generative fallback will be unavailable")
	}

	return nil
}

// BuildDatabaseURI constructs the database URI if not provided
func (c *Config) BuildDatabaseURI() string {
	if c.Database.URI != "" {
		return c.Database.URI
	}

	if c.Database.Username != "" && c.Database.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s",
			c.Database.Username,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}
