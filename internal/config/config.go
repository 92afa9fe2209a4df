package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ListenAddr     string
	GinMode        string
	AllowedOrigins []string

	JWTSecret string
	JWTTTL    time.Duration
}

// Load reads an optional .env file and builds the configuration from the
// environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "scrum"),
		DBPassword: getEnv("DB_PASSWORD", "scrum"),
		DBName:     getEnv("DB_NAME", "scrum_api"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ListenAddr:     getEnv("LISTEN_ADDR", ":8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		AllowedOrigins: getListEnv("ALLOWED_ORIGINS", []string{"*"}),

		JWTSecret: getEnv("JWT_SECRET", "default-secret-key-change-me"),
		JWTTTL:    time.Duration(getHoursEnv("JWT_TTL_HOURS", 24)) * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getHoursEnv(key string, defaultHours int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultHours
	}
	hours, err := strconv.Atoi(value)
	if err != nil || hours <= 0 {
		log.Printf("Invalid %s value %q, using default", key, value)
		return defaultHours
	}
	return hours
}
