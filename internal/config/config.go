package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	MinIO       MinIOConfig
	Certificate CertificateConfig
	Job         JobConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// Prefix scopes every object key, so one bucket can host several
	// deployments.
	Prefix string
	UseSSL bool
}

// CertificateConfig carries the fixed text and assets printed on every
// certificate page.
type CertificateConfig struct {
	// Locale selects the page language: "pt" or "en".
	Locale     string
	Title      string
	IssuerLine string
	// DefaultRole is the role certificates omit from the participation
	// phrase.
	DefaultRole string
	SignerName  string
	SignerRole  string
	// ValidationURL is printed in the page footer next to the code.
	ValidationURL string
	// FontDir holds the TTF pair used for the page; empty falls back to the
	// built-in core fonts.
	FontDir        string
	SignatureImage string
	// Schema selects the accepted batch layout: "role" or "legacy".
	Schema string
}

type JobConfig struct {
	// CleanupCron schedules the orphaned-background sweep.
	CleanupCron string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Certificates API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "certificates"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 15),
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "certificates"),
			Prefix:    getEnv("MINIO_PREFIX", "backgrounds"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		Certificate: CertificateConfig{
			Locale:         getEnv("CERT_LOCALE", "pt"),
			Title:          getEnv("CERT_TITLE", "CERTIFICADO"),
			IssuerLine:     getEnv("CERT_ISSUER_LINE", ""),
			DefaultRole:    getEnv("CERT_DEFAULT_ROLE", "ouvinte"),
			SignerName:     getEnv("CERT_SIGNER_NAME", ""),
			SignerRole:     getEnv("CERT_SIGNER_ROLE", ""),
			ValidationURL:  getEnv("CERT_VALIDATION_URL", "http://localhost:8080/api/v1/certificates/validate"),
			FontDir:        getEnv("CERT_FONT_DIR", ""),
			SignatureImage: getEnv("CERT_SIGNATURE_IMAGE", ""),
			Schema:         getEnv("CERT_SCHEMA", "role"),
		},
		Job: JobConfig{
			CleanupCron: getEnv("JOB_CLEANUP_CRON", "0 3 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	switch c.Certificate.Schema {
	case "role", "legacy":
	default:
		return fmt.Errorf("CERT_SCHEMA must be role or legacy, got %q", c.Certificate.Schema)
	}
	switch c.Certificate.Locale {
	case "pt", "en":
	default:
		return fmt.Errorf("CERT_LOCALE must be pt or en, got %q", c.Certificate.Locale)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
