// Package config loads application configuration from the
// environment, with an optional .env file for local development.
package config

import (
	"time"

	"github.com/joho/godotenv"
)

// DefaultClosesAt is the compiled competition closing boundary:
// date, time, and timezone offset. Override with ARCADE_CLOSES_AT.
const DefaultClosesAt = "2026-09-26T22:00:00+03:00"

// Storage backend names
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Config holds all application configuration
type Config struct {
	Host string
	Port int

	StorageType string
	RedisURL    string

	// MediaDir is where the filesystem photo store writes; empty
	// selects the in-memory store
	MediaDir     string
	MediaBaseURL string

	// ClosesAt is the competition closing boundary
	ClosesAt time.Time

	// AdminKeyHash is the bcrypt hash guarding operator routes
	AdminKeyHash string

	// ContactEndpoint is the external form endpoint contact
	// submissions are forwarded to
	ContactEndpoint string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first if present.
func Load() Config {
	_ = godotenv.Load()

	defaultClosesAt, _ := time.Parse(time.RFC3339, DefaultClosesAt)

	return Config{
		Host:            envOrDefault("ARCADE_HOST", ""),
		Port:            intEnvOrDefault("ARCADE_PORT", 8080),
		StorageType:     envOrDefault("ARCADE_STORAGE", StorageTypeMemory),
		RedisURL:        envOrDefault("ARCADE_REDIS_URL", ""),
		MediaDir:        envOrDefault("ARCADE_MEDIA_DIR", "data/media"),
		MediaBaseURL:    envOrDefault("ARCADE_MEDIA_BASE_URL", "/media"),
		ClosesAt:        timeEnvOrDefault("ARCADE_CLOSES_AT", defaultClosesAt),
		AdminKeyHash:    envOrDefault("ARCADE_ADMIN_KEY_HASH", ""),
		ContactEndpoint: envOrDefault("ARCADE_CONTACT_ENDPOINT", ""),
	}
}
