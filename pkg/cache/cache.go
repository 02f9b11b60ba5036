// Package cache stores solved games so repeated runs can skip the solver.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//   - [NullCache]: stores nothing, used by --no-cache
//
// # Keys
//
// A [Keyer] derives keys from the hash of the canonical game text and the
// options that influence the stored result:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.SolutionKey(cache.Hash(canonical), cache.SolutionKeyOpts{
//	    Strategy: "recursive",
//	})
//
// Winners do not depend on the strategy, but the stored statistics do, so the
// strategy, seed and lock policy are all part of the key.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// DefaultTTL is how long solutions are kept when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Keyer builds cache keys.
type Keyer interface {
	// SolutionKey names the solution of the game with hash gameHash.
	SolutionKey(gameHash string, opts SolutionKeyOpts) string

	// RenderKey names a rendered diagram of a solved game.
	RenderKey(gameHash string, opts RenderKeyOpts) string
}

// SolutionKeyOpts lists the options that change a stored solution.
type SolutionKeyOpts struct {
	Strategy   string `json:"strategy"`
	Seed       int64  `json:"seed,omitempty"`
	LockPolicy string `json:"lock_policy,omitempty"`
}

// RenderKeyOpts lists the options that change a rendered diagram.
type RenderKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
	Measures bool   `json:"measures,omitempty"`
}

// DefaultKeyer produces "solution:<hash>" and "render:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SolutionKey implements [Keyer].
func (DefaultKeyer) SolutionKey(gameHash string, opts SolutionKeyOpts) string {
	return hashKey("solution", gameHash, opts)
}

// RenderKey implements [Keyer].
func (DefaultKeyer) RenderKey(gameHash string, opts RenderKeyOpts) string {
	return hashKey("render", gameHash, opts)
}
