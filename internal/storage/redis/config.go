package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// ExportTTL applies to exported board state
	ExportTTL time.Duration

	// SummaryLimit caps the game history list
	SummaryLimit int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		ExportTTL:    24 * time.Hour,
		SummaryLimit: 100,
	}
}
