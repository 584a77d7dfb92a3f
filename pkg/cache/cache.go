// Package cache memoizes rendered label documents.
//
// The preview server renders the same sheet repeatedly while a user
// tweaks layout parameters; caching by a hash of the full render input
// makes those round trips cheap. Backends:
//
//   - file: on-disk cache for single-machine use
//   - redis: shared cache for multi-instance deployments
//   - null: caching disabled
//
// Keys are produced by [Key] from the render inputs, so identical
// inputs hit the same entry regardless of backend.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered documents keyed by input hash.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
