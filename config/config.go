package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadENV loads the environment variables from .env when GO_ENV is unset or
// development. A missing .env file is not an error.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV string
	PORT   int

	// Database
	DB_DRIVER    string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	SQLITE_PATH  string

	// Presentation
	TIME_ZONE         *time.Location
	DEFAULT_PAGE_SIZE int

	// Logging
	LOG_LEVEL string
	LOG_PATH  string

	// HTTP
	ALLOWED_ORIGINS string

	// JWT Configuration, empty secret disables the admin guard
	JWT_SECRET string
	JWT_ISSUER string

	// Redis Configuration, empty URL disables the write throttle
	REDIS_URL         string
	WRITE_RATE_LIMIT  int
	WRITE_RATE_WINDOW time.Duration
}

func Get() (*EnvironmentVariable, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	pageSize, err := strconv.Atoi(os.Getenv("DEFAULT_PAGE_SIZE"))
	if err != nil || pageSize < 0 {
		pageSize = 10
	}

	rateLimit, err := strconv.Atoi(os.Getenv("WRITE_RATE_LIMIT"))
	if err != nil {
		rateLimit = 60
	}

	rateWindow := time.Minute
	if raw := os.Getenv("WRITE_RATE_WINDOW"); raw != "" {
		rateWindow, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid WRITE_RATE_WINDOW %q: %w", raw, err)
		}
	}

	tz := getEnv("TIME_ZONE", "America/Guayaquil")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", tz, err)
	}

	envVariables := &EnvironmentVariable{
		GO_ENV: os.Getenv("GO_ENV"),
		PORT:   port,

		DB_DRIVER:    getEnv("DB_DRIVER", "postgres"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      getEnv("DB_HOST", "localhost"),
		DB_PORT:      getEnv("DB_PORT", "5432"),
		DB_SSL_MODE:  getEnv("DB_SSL_MODE", "disable"),
		SQLITE_PATH:  getEnv("SQLITE_PATH", "institucion.db"),

		TIME_ZONE:         loc,
		DEFAULT_PAGE_SIZE: pageSize,

		LOG_LEVEL: getEnv("LOG_LEVEL", "info"),
		LOG_PATH:  getEnv("LOG_PATH", "logs/app.log"),

		ALLOWED_ORIGINS: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: getEnv("JWT_ISSUER", "institucion-api"),

		REDIS_URL:         os.Getenv("REDIS_URL"),
		WRITE_RATE_LIMIT:  rateLimit,
		WRITE_RATE_WINDOW: rateWindow,
	}

	return envVariables, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
