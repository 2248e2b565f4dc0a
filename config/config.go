package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

type Config struct {
	Port    string `env:"PORT,default=8080"`
	GinMode string `env:"GIN_MODE,default=debug"`

	LogLevel string `env:"LOG_LEVEL,default=info"`

	DBDriver   string `env:"DB_DRIVER,default=postgres"`
	DBHost     string `env:"DB_HOST,default=localhost"`
	DBPort     string `env:"DB_PORT,default=5432"`
	DBUser     string `env:"DB_USER,default=postgres"`
	DBName     string `env:"DB_NAME,default=virtualkitchen"`
	DBPassword string `env:"DB_PASSWORD"`
	DBSSLMode  string `env:"DB_SSLMODE,default=disable"`
	// Path of the database file when DB_DRIVER is sqlite3.
	DBPath         string `env:"DB_PATH,default=virtualkitchen.db"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS,default=20"`
	DBDebug        bool   `env:"DB_DEBUG,default=false"`

	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,default=24h"`

	// Semicolon separated.
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS,default=http://localhost:5173"`

	StorageDriver string `env:"STORAGE_DRIVER,default=local"`
	StoragePath   string `env:"STORAGE_PATH,default=storage/public"`
	PublicURL     string `env:"PUBLIC_URL,default=http://localhost:8080"`

	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION,default=us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`

	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT,default=1"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST,default=5"`
}

// LoadConfig reads an optional .env file and decodes the environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	switch c.DBDriver {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.StorageDriver {
	case "local":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when STORAGE_DRIVER is s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite3" {
		return c.DBPath
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBName, c.DBPassword, c.DBSSLMode)
}

func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
