package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Database    DatabaseConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	Catalog     CatalogConfig
	// MemoryFallback serves from in-memory repositories when Postgres is unreachable (development only)
	MemoryFallback bool
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	// AutoMigrate applies pending migrations from MigrationsDir at server startup
	AutoMigrate   bool
	MigrationsDir string
}

// AuthConfig verifies tokens minted by the identity provider
type AuthConfig struct {
	JWTSecret string // JWT_SECRET: HMAC key shared with the identity provider
	AdminRole string // role claim required for /catalog-shops admin routes
}

type RateLimitConfig struct {
	Requests int           // requests allowed per client per window
	Window   time.Duration // RATE_LIMIT_WINDOW, e.g. 1m
}

type CatalogConfig struct {
	DefaultPageSize   int
	MaxPageSize       int
	PopularWindowDays int
	PopularOverfetch  int // purchase candidates fetched per requested popular item
	GroupedFetchLimit int // max rows aggregated for a grouped listing
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	environment := getEnvOrViper("ENVIRONMENT", "development")
	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: environment,
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:          getEnvOrViper("DB_HOST", "localhost"),
			Port:          getEnvOrViper("DB_PORT", "5432"),
			User:          getEnvOrViper("DB_USER", "postgres"),
			Password:      getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:        getEnvOrViper("DB_NAME", "sitemedusa"),
			SSLMode:       getEnvOrViper("DB_SSLMODE", "disable"),
			MaxOpenConns:  getIntOrViper("DB_MAX_OPEN_CONNS", 10),
			AutoMigrate:   getBoolOrViper("DB_AUTO_MIGRATE", false),
			MigrationsDir: getEnvOrViper("DB_MIGRATIONS_DIR", "migrations"),
		},
		Auth: AuthConfig{
			JWTSecret: strings.TrimSpace(getEnvOrViper("JWT_SECRET", "")),
			AdminRole: getEnvOrViper("ADMIN_ROLE", "admin"),
		},
		RateLimit: RateLimitConfig{
			Requests: getIntOrViper("RATE_LIMIT_REQUESTS", 100),
			Window:   getDurationOrViper("RATE_LIMIT_WINDOW", time.Minute),
		},
		Catalog: CatalogConfig{
			DefaultPageSize:   getIntOrViper("CATALOG_DEFAULT_PAGE_SIZE", 20),
			MaxPageSize:       getIntOrViper("CATALOG_MAX_PAGE_SIZE", 50),
			PopularWindowDays: getIntOrViper("POPULAR_WINDOW_DAYS", 30),
			PopularOverfetch:  getIntOrViper("POPULAR_OVERFETCH", 10),
			GroupedFetchLimit: getIntOrViper("CATALOG_GROUPED_FETCH_LIMIT", 5000),
		},
		MemoryFallback: getBoolOrViper("MEMORY_FALLBACK", environment != "production"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and sane bounds
func (c *Config) Validate() error {
	if c.IsProduction() && c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.IsProduction() && c.MemoryFallback {
		return fmt.Errorf("MEMORY_FALLBACK cannot be enabled in production")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive")
	}
	if c.RateLimit.Requests < 1 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}
	if c.Catalog.MaxPageSize < 1 || c.Catalog.DefaultPageSize < 1 || c.Catalog.DefaultPageSize > c.Catalog.MaxPageSize {
		return fmt.Errorf("CATALOG_DEFAULT_PAGE_SIZE must be between 1 and CATALOG_MAX_PAGE_SIZE")
	}
	if c.Catalog.PopularWindowDays < 1 || c.Catalog.PopularOverfetch < 1 {
		return fmt.Errorf("POPULAR_WINDOW_DAYS and POPULAR_OVERFETCH must be positive")
	}
	return nil
}

// DSN builds the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func getIntOrViper(key string, defaultValue int) int {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return n
}

func getBoolOrViper(key string, defaultValue bool) bool {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return b
}

func getDurationOrViper(key string, defaultValue time.Duration) time.Duration {
	raw := getEnvOrViper(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return defaultValue
	}
	return d
}
