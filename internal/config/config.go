package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	// Optional env vars fall back to a default.
	getEnvInt := func(key string, fallback int) int {
		value, ok := os.LookupEnv(key)
		if !ok {
			return fallback
		}
		parsed, err := strconv.Atoi(value)
		if err != nil {
			log.Warn("Invalid integer env var, using default", "key", key, "value", value, "default", fallback)
			return fallback
		}
		return parsed
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: "./migrations",
		Port:          getEnv("PORT"),
		Storage: StorageConfig{
			QuotaBytes:  int64(getEnvInt("STORAGE_QUOTA_BYTES", 5*1024*1024)),
			WarnPercent: float64(getEnvInt("STORAGE_WARN_PERCENT", 80)),
		},
		History: HistoryConfig{
			RetainDays: getEnvInt("HISTORY_RETAIN_DAYS", 30),
		},
		Perf: PerfConfig{
			SampleCapacity: getEnvInt("PERF_SAMPLE_CAPACITY", 256),
			SweepEverySec:  getEnvInt("PERF_SWEEP_EVERY_SEC", 60),
		},
	}
	return cfg
}
