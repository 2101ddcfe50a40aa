package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Weather  WeatherConfig
	Random   RandomConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ServiceName  string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  string // Comma-separated list of allowed origins
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in hours
}

// WeatherConfig holds OpenWeatherMap provider configuration
type WeatherConfig struct {
	APIKey          string
	GeoBaseURL      string
	APIBaseURL      string
	HistoryBaseURL  string
	ForecastBaseURL string
	TimeoutSeconds  int
}

// RandomConfig holds random.org provider configuration
type RandomConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ServiceName:  serviceName,
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
			CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "weathercat"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			Expiration: getEnvAsInt("JWT_EXPIRATION", 24),
		},
		Weather: WeatherConfig{
			APIKey:          getEnv("OPENWEATHER_APIKEY", ""),
			GeoBaseURL:      getEnv("OPENWEATHER_GEO_URL", "http://api.openweathermap.org"),
			APIBaseURL:      getEnv("OPENWEATHER_API_URL", "https://api.openweathermap.org"),
			HistoryBaseURL:  getEnv("OPENWEATHER_HISTORY_URL", "https://history.openweathermap.org"),
			ForecastBaseURL: getEnv("OPENWEATHER_FORECAST_URL", "https://pro.openweathermap.org"),
			TimeoutSeconds:  getEnvAsInt("OPENWEATHER_TIMEOUT", 10),
		},
		Random: RandomConfig{
			BaseURL:        getEnv("RANDOM_ORG_URL", "https://www.random.org"),
			TimeoutSeconds: getEnvAsInt("RANDOM_ORG_TIMEOUT", 5),
		},
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
