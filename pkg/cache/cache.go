// Package cache provides content-addressed caching for pipeline results.
//
// Normalizing large introspection dumps and rendering diagrams are the two
// expensive steps of the pipeline, so both are cacheable: the normalized
// diagram is keyed by a hash of the raw metadata, and rendered artifacts by
// a hash of the diagram plus render options.
//
// Two implementations are provided: [FileCache] for CLI usage (entries on
// disk under the user cache directory) and [NullCache] for disabling
// caching in tests or one-shot runs.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with optional TTL.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// DiagramKeyOpts captures the normalization inputs that affect the cached
// diagram beyond the metadata itself.
type DiagramKeyOpts struct {
	Seed uint64 `json:"seed"`
}

// LayoutKeyOpts captures the geometry inputs that affect table placement.
// Every field of the engine options is part of the key; a stale entry must
// never answer for a different geometry.
type LayoutKeyOpts struct {
	TableWidth     float64 `json:"table_width"`
	TableHeight    float64 `json:"table_height"`
	GapX           float64 `json:"gap_x"`
	GapY           float64 `json:"gap_y"`
	StartX         float64 `json:"start_x"`
	StartY         float64 `json:"start_y"`
	SeedsPerRow    int     `json:"seeds_per_row"`
	MaxSpiralSteps int     `json:"max_spiral_steps"`
}

// ArtifactKeyOpts captures the render inputs that affect exported output.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DiagramKey generates a key for a normalized diagram derived from
	// metadata with the given content hash.
	DiagramKey(metadataHash string, opts DiagramKeyOpts) string

	// LayoutKey generates a key for an arranged diagram.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer generates keys of the form "stage:sha256(inputs)".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DiagramKey generates a key for a normalized diagram.
func (k *DefaultKeyer) DiagramKey(metadataHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", metadataHash, opts)
}

// LayoutKey generates a key for an arranged diagram.
func (k *DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", diagramHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}
