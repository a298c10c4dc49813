// Package cache stores opaque byte blobs on disk for the psg CLI.
//
// The only heavy value puzzlesheet caches is the quality-filtered puzzle
// database: parsing the Lichess CSV dump takes several seconds, decoding a
// gob snapshot of the filtered rows takes a fraction of that. Snapshots are
// keyed by everything that influences their content (see [Key]), so a
// changed source file or changed thresholds simply miss.
//
// [FileCache] is used by the CLI, [NullCache] when caching is disabled
// (--no-cache) and in tests.
package cache

import (
	"context"
	"time"
)

// Cache is a key/value store for serialized values.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry.
	Clear(ctx context.Context) error

	Close() error
}
