package config

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultPort                 = "6000"
	defaultTaxesConfigPath      = "./assets/taxes.json"
	defaultMaxIncomeCeiling     = 10_000_000
	defaultExchangeRateAPIURL   = "https://open.er-api.com/v6/latest"
	defaultExchangeRateTimeout  = 10 * time.Second
	defaultExchangeRateCacheTTL = time.Hour
	defaultJWTExpiryDuration    = time.Hour
	defaultJWTIssuer            = "tax-compare-app"
)

// Config holds application configuration.
type Config struct {
	Port         string `validate:"required,numeric"`
	IsProduction bool
	LogLevel     string `validate:"oneof=debug info warn error"`

	// Tax engine
	TaxesConfigPath    string  `validate:"required"`
	MaxIncomeCeiling   float64 `validate:"gt=0"`
	SamplingBaseStep   float64 `validate:"gt=0"`
	SamplingGrowthRate float64 `validate:"gt=0,lt=1"`
	ComputeWorkers     int     `validate:"gte=1"`

	// Exchange rates
	ExchangeRateAPIURL   string        `validate:"required,url"`
	ExchangeRateTimeout  time.Duration `validate:"gt=0"`
	ExchangeRateCacheTTL time.Duration `validate:"gt=0"`

	// Storage
	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string

	// Admin auth
	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	// HTTP surface
	RateLimit          string `validate:"required"`
	CORSAllowedOrigins []string

	PosthogAPIKey   string
	PosthogEndpoint string `validate:"omitempty,url"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", defaultPort)
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("TAXES_CONFIG_PATH", defaultTaxesConfigPath)
	viper.SetDefault("MAX_INCOME_CEILING", defaultMaxIncomeCeiling)
	viper.SetDefault("SAMPLING_BASE_STEP", 100.0)
	viper.SetDefault("SAMPLING_GROWTH_RATE", 0.01)
	viper.SetDefault("COMPUTE_WORKERS", runtime.NumCPU())
	viper.SetDefault("EXCHANGE_RATE_API_URL", defaultExchangeRateAPIURL)
	viper.SetDefault("EXCHANGE_RATE_TIMEOUT", defaultExchangeRateTimeout.String())
	viper.SetDefault("EXCHANGE_RATE_CACHE_TTL", defaultExchangeRateCacheTTL.String())
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("JWT_EXPIRY_DURATION", defaultJWTExpiryDuration.String())
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{
		Port:               viper.GetString("PORT"),
		IsProduction:       viper.GetBool("IS_PRODUCTION"),
		LogLevel:           strings.ToLower(viper.GetString("LOG_LEVEL")),
		TaxesConfigPath:    viper.GetString("TAXES_CONFIG_PATH"),
		MaxIncomeCeiling:   viper.GetFloat64("MAX_INCOME_CEILING"),
		SamplingBaseStep:   viper.GetFloat64("SAMPLING_BASE_STEP"),
		SamplingGrowthRate: viper.GetFloat64("SAMPLING_GROWTH_RATE"),
		ComputeWorkers:     viper.GetInt("COMPUTE_WORKERS"),
		ExchangeRateAPIURL: strings.TrimRight(viper.GetString("EXCHANGE_RATE_API_URL"), "/"),
		DatabaseURL:        viper.GetString("PGSQL_URL"),
		EnableDBCheck:      viper.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:     viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:          viper.GetString("JWT_SECRET"),
		JWTIssuer:          viper.GetString("JWT_ISSUER"),
		RateLimit:          viper.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:      viper.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:    viper.GetString("POSTHOG_ENDPOINT"),
	}

	cfg.ExchangeRateTimeout = durationOrDefault("EXCHANGE_RATE_TIMEOUT", defaultExchangeRateTimeout)
	cfg.ExchangeRateCacheTTL = durationOrDefault("EXCHANGE_RATE_CACHE_TTL", defaultExchangeRateCacheTTL)
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", defaultJWTExpiryDuration)

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Tax schedules are served from TAXES_CONFIG_PATH only and exchange rates are not persisted.")
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET environment variable not set. Admin endpoints will reject every request.")
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
