package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds the process configuration of the HTTP server.
type ServerConfig struct {
	Addr         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RatesDir     string
	Database     DatabaseConfig
	Email        EmailConfig
}

// DatabaseConfig selects the simulation log store. A DSN starting with
// postgres:// or postgresql:// uses PostgreSQL, anything else is a SQLite path.
type DatabaseConfig struct {
	DSN          string
	MaxOpenConns int
}

// EmailConfig holds report delivery settings. An empty API key disables delivery.
type EmailConfig struct {
	ResendAPIKey string
	FromName     string
	FromEmail    string
}

// IsProduction reports whether the server runs in production mode.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// LoadServerConfig reads the environment, after loading envFiles (or .env when
// none are given) if they exist.
func LoadServerConfig(envFiles ...string) ServerConfig {
	_ = godotenv.Load(envFiles...)

	return ServerConfig{
		Addr:         getEnv("TAXSIM_ADDR", ":8080"),
		Environment:  getEnv("TAXSIM_ENV", "development"),
		ReadTimeout:  getEnvAsDuration("TAXSIM_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvAsDuration("TAXSIM_WRITE_TIMEOUT", 15*time.Second),
		RatesDir:     getEnv("TAXSIM_RATES_DIR", ""),
		Database: DatabaseConfig{
			DSN:          getEnv("DATABASE_URL", "taxsim.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			FromName:     getEnv("RESEND_FROM_NAME", "Simulateurs fiscaux"),
			FromEmail:    getEnv("RESEND_FROM_EMAIL", "onboarding@resend.dev"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
