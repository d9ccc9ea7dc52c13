package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Storage drivers.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Logger   LoggerConfig

	// ContentPath points at an on-disk site content file. Empty means the
	// embedded copy is used.
	ContentPath string
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Driver         string
	Path           string // SQLite file
	URL            string // PostgreSQL connection string
	MaxConnections int
	MinConnections int
}

// AuthConfig holds signing keys. Empty keys are generated once and persisted
// in the settings table.
type AuthConfig struct {
	JWTSecret  string
	SessionKey string
}

// StorageConfig selects where uploaded images go.
type StorageConfig struct {
	Driver    string
	UploadDir string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3PublicURL string
	S3Prefix    string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from the environment. A .env file in the working
// directory is read first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvAsInt("SERVER_PORT", 8080),
			BaseURL: getEnv("BASE_URL", ""),
		},
		Database: DatabaseConfig{
			Driver:         getEnv("DB_DRIVER", DriverSQLite),
			Path:           getEnv("DB_PATH", "couture.sqlite3"),
			URL:            getEnv("DATABASE_URL", ""),
			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 10),
			MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 1),
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", ""),
			SessionKey: getEnv("SESSION_KEY", ""),
		},
		Storage: StorageConfig{
			Driver:      getEnv("STORAGE_DRIVER", StorageLocal),
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			S3Bucket:    getEnv("S3_BUCKET", ""),
			S3Region:    getEnv("S3_REGION", "us-east-1"),
			S3Endpoint:  getEnv("S3_ENDPOINT", ""),
			S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
			S3Prefix:    getEnv("S3_PREFIX", "product-images/"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		ContentPath: getEnv("CONTENT_PATH", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres")
		}
		if c.Database.MaxConnections < 1 {
			return fmt.Errorf("database max connections must be at least 1")
		}
		if c.Database.MinConnections < 0 || c.Database.MinConnections > c.Database.MaxConnections {
			return fmt.Errorf("database min connections must be between 0 and max connections")
		}
	default:
		return fmt.Errorf("invalid database driver: %s (must be sqlite or postgres)", c.Database.Driver)
	}

	switch c.Storage.Driver {
	case StorageLocal:
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("upload directory is required for local storage")
		}
	case StorageS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required when storage driver is s3")
		}
		if c.Storage.S3Region == "" {
			return fmt.Errorf("S3 region is required when storage driver is s3")
		}
	default:
		return fmt.Errorf("invalid storage driver: %s (must be local or s3)", c.Storage.Driver)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
