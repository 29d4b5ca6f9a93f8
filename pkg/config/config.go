package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// The service verifies session tokens, it never mints them, so only
	// the secret and the accepted issuer are configurable.
	JWTSecret string
	JWTIssuer string

	// Function endpoint (primary channel of admin commands)
	FunctionsBaseURL string
	FunctionsTimeout time.Duration

	// Admin allow-list, comma separated email addresses
	AdminAllowlist []string

	DefaultCurrency string

	// Rate limit in ulule/limiter format, e.g. "100-M"
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
	viper.SetDefault("JWT_ISSUER", "tuktuk-eazy-admin")
	viper.SetDefault("FUNCTIONS_BASE_URL", "")
	viper.SetDefault("FUNCTIONS_TIMEOUT", "10s")
	viper.SetDefault("ADMIN_ALLOWLIST", "")
	viper.SetDefault("DEFAULT_CURRENCY", "ZAR")
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.FunctionsBaseURL = viper.GetString("FUNCTIONS_BASE_URL")
	if cfg.FunctionsBaseURL == "" {
		log.Println("Warning: FUNCTIONS_BASE_URL not set. Primary command channel will be unreachable and commands will run on the fallback path.")
	}

	functionsTimeoutStr := viper.GetString("FUNCTIONS_TIMEOUT")
	functionsTimeout, err := time.ParseDuration(functionsTimeoutStr)
	if err != nil {
		functionsTimeout = 10 * time.Second
		log.Printf("Warning: Invalid value for FUNCTIONS_TIMEOUT ('%s'). Defaulting to %s.\n", functionsTimeoutStr, functionsTimeout.String())
	}
	cfg.FunctionsTimeout = functionsTimeout

	allowlist := viper.GetString("ADMIN_ALLOWLIST")
	if allowlist != "" {
		for _, email := range strings.Split(allowlist, ",") {
			email = strings.TrimSpace(email)
			if email != "" {
				cfg.AdminAllowlist = append(cfg.AdminAllowlist, email)
			}
		}
	}

	cfg.DefaultCurrency = viper.GetString("DEFAULT_CURRENCY")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
