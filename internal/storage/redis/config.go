package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Employees and scores persist indefinitely;
	// sessions and staged badge batches are transient.
	SessionTTL time.Duration
	BatchTTL   time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		SessionTTL:   2 * time.Hour,
		BatchTTL:     7 * 24 * time.Hour,
	}
}
