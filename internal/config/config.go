package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the application.
type Config struct {
	Environment string
	HTTPAddr    string
	DataFile    string
	LogLevel    string

	// MachineID feeds the snowflake node; only matters if several
	// instances ever share a data file, which the storage model does
	// not support today.
	MachineID int64
}

func (c Config) IsProduction() bool { return c.Environment == "production" }

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment: getEnv("LEXORA_ENV", "development"),
		HTTPAddr:    getEnv("LEXORA_HTTP_ADDR", ":8080"),
		DataFile:    getEnv("LEXORA_DATA_FILE", "lexora.json"),
		LogLevel:    getEnv("LEXORA_LOG_LEVEL", "info"),
		MachineID:   getEnvInt64("LEXORA_MACHINE_ID", 1),
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
