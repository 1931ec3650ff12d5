package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// PoolSize is the fixed number of database connections kept by the
// service. Callers queue on the pool when all connections are busy.
const PoolSize = 10

// Config holds the application configuration.
type Config struct {
	ServerPort       int
	DatabaseHost     string
	DatabasePort     int
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string
	JWTSecret        string
	CORSOrigin       string
	OverdueSchedule  string // Cron expression for the overdue-task scan
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	dbPortStr := getEnv("DATABASE_PORT", "5432")
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_PORT: %w", err)
	}

	return &Config{
		ServerPort:       port,
		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     dbPort,
		DatabaseName:     getEnv("DATABASE_NAME", "taskflow"),
		DatabaseUser:     getEnv("DATABASE_USER", "taskflow"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		CORSOrigin:       getEnv("CORS_ORIGIN", "http://localhost:3000"),
		OverdueSchedule:  getEnv("OVERDUE_SCAN_SCHEDULE", "0 * * * *"),
	}, nil
}

// DatabaseDSN assembles the Postgres connection string for the pgx driver.
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DatabaseUser, c.DatabasePassword),
		Host:     fmt.Sprintf("%s:%d", c.DatabaseHost, c.DatabasePort),
		Path:     c.DatabaseName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
