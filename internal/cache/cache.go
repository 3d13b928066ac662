// Package cache defines the byte-oriented response cache used by the
// catalog client when caching is switched on.
package cache

import (
	"context"
	"time"
)

// Backend names accepted by configuration.
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Store holds opaque payloads under string keys for a limited time.
type Store interface {
	// Get returns the payload stored under key. ok is false on a miss.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)

	// Set stores payload under key for ttl. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Close releases resources held by the store.
	Close() error
}
