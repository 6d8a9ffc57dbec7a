// Package cache provides keyed byte caching for built graphs and rendered
// artifacts.
//
// A graph build is deterministic for a given record set and layout options,
// so its output can be cached under a content hash of those inputs. The CLI
// uses a file cache under the user cache directory; tests and --no-cache
// runs use the null cache.
package cache

import (
	"context"
	"time"
)

// Default TTLs. Built graphs are cheap to rebuild, rendered artifacts less
// so; both are bounded so stale entries age out without a manual purge.
const (
	TTLGraph    = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the minimal byte-store contract.
type Cache interface {
	// Get returns the cached data and whether the key was present. An
	// expired or unreadable entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// GraphKeyOpts are the layout inputs that distinguish one graph build from
// another over the same records.
type GraphKeyOpts struct {
	Mode            string
	Width           float64
	Height          float64
	Seed            uint64
	BridgeThreshold int
	SubColumns      int
}

// ArtifactKeyOpts distinguish rendered outputs of the same graph.
type ArtifactKeyOpts struct {
	Format string // "svg", "png", "dot"
	Scale  float64
}

// Keyer derives cache keys from build inputs. Keys for equal inputs must be
// equal across processes, so implementations hash content rather than using
// pointers or timestamps.
type Keyer interface {
	// GraphKey keys a built graph by the hash of its input records plus
	// the layout options.
	GraphKey(recordsHash string, opts GraphKeyOpts) string

	// ArtifactKey keys a rendered artifact by the hash of its graph plus
	// the render options.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes inputs with SHA-256 under versioned prefixes. The
// prefix version bumps whenever the build or render semantics change in a
// way that invalidates old entries.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

func (k *DefaultKeyer) GraphKey(recordsHash string, opts GraphKeyOpts) string {
	return hashKey("graph:v1", recordsHash, opts)
}

func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:v1", graphHash, opts)
}
