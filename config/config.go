package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderSupabase = "supabase"
	ProviderLocal    = "local"
)

// Config holds application configuration
type Config struct {
	Port     string
	AppEnv   string
	LogLevel string

	DBDriver        string
	DatabaseURL     string
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBAutoMigrate   bool
	JWTSecret       string
	BodyLimitMB     int
	CorsOrigins     string
	HTTPTimeout     time.Duration
	PublicBaseURL   string
	PortalURL       string
	SupabaseURL     string
	SupabaseKey     string // service role key, never sent to browsers
	StorageBucket   string
	StorageProvider string
	AuthProvider    string
	LocalStorageDir string

	CleanupSchedule    string
	CleanupBatchSize   int
	CleanupMaxAttempts int

	SendgridAPIKey  string
	EmailSender     string
	EmailSenderName string
}

// LoadConfig reads the .env file (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	port := getEnv("PORT", "3000")
	cfg := &Config{
		Port:     port,
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "postgres"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBAutoMigrate:  getEnvBool("DB_AUTO_MIGRATE", true),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		BodyLimitMB:   getEnvInt("BODY_LIMIT_MB", 1024),
		CorsOrigins:   getEnv("CORS_ORIGINS", "*"),
		HTTPTimeout:   time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 30)) * time.Second,
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:"+port), "/"),
		PortalURL:     getEnv("PORTAL_URL", "http://localhost:"+port),

		SupabaseURL:     strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:     getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", "capacitaciones-archivos"),
		StorageProvider: strings.ToLower(getEnv("STORAGE_PROVIDER", ProviderSupabase)),
		AuthProvider:    strings.ToLower(getEnv("AUTH_PROVIDER", ProviderSupabase)),
		LocalStorageDir: getEnv("LOCAL_STORAGE_DIR", "./uploads"),

		CleanupSchedule:    getEnv("CLEANUP_SCHEDULE", "*/15 * * * *"),
		CleanupBatchSize:   getEnvInt("CLEANUP_BATCH_SIZE", 100),
		CleanupMaxAttempts: getEnvInt("CLEANUP_MAX_ATTEMPTS", 10),

		SendgridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		EmailSender:     getEnv("EMAIL_SENDER", "no-reply@localhost"),
		EmailSenderName: getEnv("EMAIL_SENDER_NAME", "Capacitaciones"),
	}

	if cfg.SendgridAPIKey == "" {
		log.Println("Warning: SENDGRID_API_KEY not set. Welcome emails are disabled.")
	}
	if cfg.StorageProvider == ProviderLocal || cfg.AuthProvider == ProviderLocal {
		log.Println("Warning: local providers enabled. Do not use them in production.")
	}

	return cfg
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	switch c.DBDriver {
	case "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	for name, p := range map[string]string{"STORAGE_PROVIDER": c.StorageProvider, "AUTH_PROVIDER": c.AuthProvider} {
		if p != ProviderSupabase && p != ProviderLocal {
			errs = append(errs, fmt.Errorf("unsupported %s %q", name, p))
		}
	}
	if c.UsesSupabase() && (c.SupabaseURL == "" || c.SupabaseKey == "") {
		errs = append(errs, errors.New("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for the supabase provider"))
	}
	if c.StorageBucket == "" {
		errs = append(errs, errors.New("STORAGE_BUCKET must not be empty"))
	}

	return errors.Join(errs...)
}

// UsesSupabase reports whether any collaborator talks to the hosted backend.
func (c *Config) UsesSupabase() bool {
	return c.StorageProvider == ProviderSupabase || c.AuthProvider == ProviderSupabase
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DSN builds the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case "sqlite":
		return c.DBName
	default:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return b
}
