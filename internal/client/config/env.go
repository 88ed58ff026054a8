package config

import (
	"os"
	"strconv"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvBackendURL    = "IMGUP_BACKEND_URL"
	EnvFormField     = "IMGUP_FORM_FIELD"
	EnvURLField      = "IMGUP_URL_FIELD"
	EnvPartialPolicy = "IMGUP_PARTIAL_POLICY"
	EnvHistoryDB     = "IMGUP_HISTORY_DB"
	EnvHistoryLimit  = "IMGUP_HISTORY_LIMIT"
	EnvLogLevel      = "IMGUP_LOG_LEVEL"
)

// parseEnv overlays cfg with non-empty environment variables. A .env file
// in the working directory is loaded first if present; variables already
// set in the process environment take precedence over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.BackendURL = getEnv(EnvBackendURL, cfg.BackendURL)
	cfg.FormField = getEnv(EnvFormField, cfg.FormField)
	cfg.URLField = getEnv(EnvURLField, cfg.URLField)
	cfg.PartialPolicy = models.PartialPolicy(getEnv(EnvPartialPolicy, string(cfg.PartialPolicy)))
	cfg.HistoryDB = getEnv(EnvHistoryDB, cfg.HistoryDB)
	cfg.HistoryLimit = getEnvAsInt(EnvHistoryLimit, cfg.HistoryLimit)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
