package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool
	JWTSecret     string
	// DefaultSessionID is the accounting session every write is booked
	// under. Zero means unset; writes then fail their precondition check
	// instead of guessing a period.
	DefaultSessionID int64
	// RateLimit uses the limiter formatted syntax, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("DEFAULT_SESSION_ID", 0)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:      viper.GetString("PGSQL_URL"),
		Port:             viper.GetString("PORT"),
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:    viper.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:        viper.GetString("JWT_SECRET"),
		DefaultSessionID: viper.GetInt64("DEFAULT_SESSION_ID"),
		RateLimit:        viper.GetString("RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.DefaultSessionID == 0 {
		log.Println("Warning: DEFAULT_SESSION_ID not set. All write operations will be rejected until it is configured.")
	}

	return cfg, nil
}
