package config

import (
	"os"
	"strconv"
	"time"
)

func envOrDefault(key, defaultValue string) string {
	val := os.Getenv(key)
	if val != "" {
		return val
	}
	return defaultValue
}

func intEnvOrDefault(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func timeEnvOrDefault(key string, defaultValue time.Time) time.Time {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}
