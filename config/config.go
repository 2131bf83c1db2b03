// Package config provides configuration management for the todoquest application.
// Values come from environment variables (a `.env` file is loaded by main before this runs).
// Parsing is done by caarlos0/env; validation afterwards collects every problem it finds
// and reports them together, so a misconfigured deployment fails once with the full list
// instead of one variable at a time.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers understood by main.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Bounds for the configurable values.
const (
	MinPoolSize     = 1
	MaxPoolSize     = 100
	MinSecretLength = 16
	MinBcryptCost   = 4
	MaxBcryptCost   = 31
)

// StorageConfig selects the backing store for users and todos.
type StorageConfig struct {
	Driver     string `env:"STORAGE_DRIVER" envDefault:"postgres"`
	SQLitePath string `env:"SQLITE_PATH"    envDefault:"todoquest.db"`
}

// PoolConfig represents configuration for the PostgreSQL connection pool.
type PoolConfig struct {
	Host     string `env:"DB_HOST"      envDefault:"localhost"`
	Port     int    `env:"DB_PORT"      envDefault:"5432"`
	User     string `env:"DB_USER"      envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	DBName   string `env:"DB_NAME"      envDefault:"todo_app"`
	MaxSize  int    `env:"DB_POOL_SIZE" envDefault:"10"`
	SSLMode  string `env:"DB_SSLMODE"   envDefault:"disable"`
}

// DSN builds a postgres:// URL usable by both pgxpool and golang-migrate.
// User and password are percent-encoded.
func (p PoolConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     "/" + p.DBName,
		RawQuery: url.Values{"sslmode": {p.SSLMode}}.Encode(),
	}
	return u.String()
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET"`                        // HMAC key for signing session tokens
	TokenDuration time.Duration `env:"JWT_TOKEN_DURATION" envDefault:"1h"` // lifetime of every issued token
	Issuer        string        `env:"JWT_ISSUER"         envDefault:"todoquest"`
	BcryptCost    int           `env:"BCRYPT_COST"        envDefault:"10"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string   `env:"PORT"                 envDefault:"3000"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Storage StorageConfig
	DB      PoolConfig
	Auth    AuthConfig
	Server  ServerConfig
	Log     LogConfig
}

// LoadConfig creates and returns an AppConfig by reading and validating environment variables.
// It collects all errors encountered during loading and returns a single error if any exist.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field and range constraints that struct tags cannot express.
func (c *AppConfig) Validate() error {
	var errors []string

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.DB.MaxSize < MinPoolSize || c.DB.MaxSize > MaxPoolSize {
			errors = append(errors, fmt.Sprintf("DB_POOL_SIZE must be between %d and %d, got %d", MinPoolSize, MaxPoolSize, c.DB.MaxSize))
		}
		if c.DB.Port <= 0 || c.DB.Port > 65535 {
			errors = append(errors, fmt.Sprintf("DB_PORT out of range: %d", c.DB.Port))
		}
		if strings.TrimSpace(c.DB.DBName) == "" {
			errors = append(errors, "DB_NAME must not be empty")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			errors = append(errors, "SQLITE_PATH must not be empty when STORAGE_DRIVER=sqlite")
		}
	case DriverMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid STORAGE_DRIVER %q: expected one of postgres, sqlite, memory", c.Storage.Driver))
	}

	if c.Auth.JWTSecret == "" {
		errors = append(errors, "missing required environment variable: JWT_SECRET")
	} else if len(c.Auth.JWTSecret) < MinSecretLength {
		errors = append(errors, fmt.Sprintf("JWT_SECRET must be at least %d bytes", MinSecretLength))
	}
	if c.Auth.TokenDuration <= 0 {
		errors = append(errors, fmt.Sprintf("JWT_TOKEN_DURATION must be positive, got %s", c.Auth.TokenDuration))
	}
	if c.Auth.BcryptCost < MinBcryptCost || c.Auth.BcryptCost > MaxBcryptCost {
		errors = append(errors, fmt.Sprintf("BCRYPT_COST must be between %d and %d, got %d", MinBcryptCost, MaxBcryptCost, c.Auth.BcryptCost))
	}

	if c.Server.Port == "" {
		errors = append(errors, "PORT must not be empty")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errors = append(errors, fmt.Sprintf("invalid LOG_FORMAT %q: expected json or text", c.Log.Format))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}
