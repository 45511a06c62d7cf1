package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"goldbook/internal/validator"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Ledger storage
	LocalDBPath   string
	StorageMode   string
	RemoteAPIURL  string
	RemoteTimeout time.Duration
	SellPolicy    string
	TokenFile     string

	// Pricing
	GoldPricePerGram int64 // cents per gram; 0 means not configured
	Currency         string
	PipelineAPIKey   string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "goldbook"),
		DBPassword: getEnv("DB_PASSWORD", "goldbook"),
		DBName:     getEnv("DB_NAME", "goldbook"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Ledger storage
		LocalDBPath:  getEnv("LOCAL_DB_PATH", "goldbook.db"),
		StorageMode:  strings.ToLower(getEnv("STORAGE_MODE", "local")),
		RemoteAPIURL: strings.TrimRight(getEnv("REMOTE_API_URL", "http://localhost:8080"), "/"),
		SellPolicy:   getEnv("SELL_POLICY", "reject"),
		TokenFile:    getEnv("TOKEN_FILE", defaultTokenFile()),

		// Pricing
		Currency:       strings.ToUpper(getEnv("CURRENCY", "USD")),
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
	}

	switch config.StorageMode {
	case "local", "remote", "hybrid":
	default:
		return nil, fmt.Errorf("invalid STORAGE_MODE %q: must be local, remote or hybrid", config.StorageMode)
	}
	switch config.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: must be postgres or sqlite", config.DBDriver)
	}

	if !validator.IsCurrency(config.Currency) {
		return nil, fmt.Errorf("invalid CURRENCY %q: must be an ISO 4217 code", config.Currency)
	}

	config.RemoteTimeout = getDuration("REMOTE_TIMEOUT", 5*time.Second)

	// Parse JWT expiration duration
	config.JWTExpirationDur = getDuration("JWT_EXPIRES_IN", 24*time.Hour)

	if s := getEnv("GOLD_PRICE_PER_GRAM", ""); s != "" {
		price, err := strconv.ParseInt(s, 10, 64)
		if err != nil || price < 0 {
			log.Printf("Warning: invalid GOLD_PRICE_PER_GRAM value '%s', ignoring\n", s)
		} else {
			config.GoldPricePerGram = price
		}
	}

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, s, defaultValue)
		return defaultValue
	}
	return d
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".goldbook-token"
	}
	return home + string(os.PathSeparator) + ".goldbook-token"
}
