// Package cache provides the cache type constants.
package cache

// Type represents the type of cache.
type Type string

const (
	// TypeNone disables caching.
	TypeNone Type = "none"
	// TypeRedis represents a Redis cache.
	TypeRedis Type = "redis"
)
