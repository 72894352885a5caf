package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"bms-backend/internal/pkg/logger"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is only acceptable in dev mode
const DefaultJWTSecret = "default_secret"

// Config holds all configuration for the application
type Config struct {
	AppMode  string
	Port     string
	LogLevel string
	Database DatabaseConfig
	JWT      JWTConfig
	Cookie   CookieConfig
	Payment  PaymentConfig
	Jobs     JobsConfig
	Seed     SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// AccessTokenTTL returns the lifetime of issued tokens
func (j JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(j.AccessTokenMins) * time.Minute
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// PaymentConfig holds payment processor configuration
type PaymentConfig struct {
	StripeSecretKey string
	Currency        string
	MethodTypes     []string
}

// JobsConfig holds scheduled job configuration
type JobsConfig struct {
	CouponSweepSchedule string
}

// SeedConfig holds startup seeding configuration
type SeedConfig struct {
	AdminEmail string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// .env is optional; production injects the environment directly
	if err := godotenv.Load(); err != nil {
		logger.Logger.Debug("no .env file found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	cfg := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "5000"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: loadDatabaseConfig(appMode),
		JWT:      loadJWTConfig(appMode),
		Cookie:   loadCookieConfig(appMode),
		Payment:  loadPaymentConfig(),
		Jobs: JobsConfig{
			CouponSweepSchedule: getEnv("COUPON_SWEEP_SCHEDULE", "@daily"),
		},
		Seed: SeedConfig{
			AdminEmail: strings.ToLower(strings.TrimSpace(getEnv("SEED_ADMIN_EMAIL", ""))),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects configurations that cannot run safely
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret must be set")
	}
	if c.IsProd() && c.JWT.Secret == DefaultJWTSecret {
		return fmt.Errorf("PROD_JWT_SECRET must be set in prod mode")
	}
	if c.JWT.AccessTokenMins <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_MINUTES must be positive, got %d", c.JWT.AccessTokenMins)
	}
	if len(c.Payment.Currency) != 3 {
		return fmt.Errorf("PAYMENT_CURRENCY must be a 3-letter ISO code, got '%s'", c.Payment.Currency)
	}
	return nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "managementDb"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	accessMins, err := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))
	if err != nil {
		accessMins = 0
	}

	return JWTConfig{
		Secret:          getEnv(modePrefix(mode)+"JWT_SECRET", DefaultJWTSecret),
		AccessTokenMins: accessMins,
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	secure, _ := strconv.ParseBool(getEnv(modePrefix(mode)+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

// loadPaymentConfig loads payment processor config
func loadPaymentConfig() PaymentConfig {
	methods := strings.Split(getEnv("PAYMENT_METHOD_TYPES", "card"), ",")
	for i := range methods {
		methods[i] = strings.TrimSpace(methods[i])
	}

	return PaymentConfig{
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		Currency:        strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),
		MethodTypes:     methods,
	}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return origins
}
