package config

import (
	"errors"
	"fmt"
)

// ErrRunStoreDisabled is returned when no database host is configured
var ErrRunStoreDisabled = errors.New("run history store is not configured")

// PostgresConfig holds configuration for the PostgreSQL run history store
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	SSLMode  string
}

// LoadPostgresConfig loads run store configuration from environment variables.
// An unset POSTGRES_HOSTNAME disables the store and yields ErrRunStoreDisabled.
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	config := &PostgresConfig{
		User:     getenv("POSTGRES_USER"),
		Password: getenv("POSTGRES_PASSWORD"),
		Database: getenv("POSTGRES_DB"),
		Host:     getenv("POSTGRES_HOSTNAME"),
		SSLMode:  getenv("POSTGRES_SSLMODE"),
	}

	if config.Host == "" {
		return nil, ErrRunStoreDisabled
	}
	if config.User == "" {
		return nil, fmt.Errorf("POSTGRES_USER is required when POSTGRES_HOSTNAME is set")
	}
	if config.Database == "" {
		return nil, fmt.Errorf("POSTGRES_DB is required when POSTGRES_HOSTNAME is set")
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config, nil
}

// ConnectionString returns a lib/pq keyword/value connection string
func (c *PostgresConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.User, c.Password, c.Database, c.SSLMode)
}
