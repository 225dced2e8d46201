// Package cache stores analysis results and rendered artifacts keyed by the
// content hash of the graph they were computed from.
//
// Three backends implement [Cache]: [FileCache] for the CLI, [RedisCache]
// for the server, and [NullCache] when caching is disabled. A [Keyer] builds
// the keys so that every backend lays out its namespace the same way.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Default time-to-live values.
const (
	AnalysisTTL = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)
