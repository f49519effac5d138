// Package pipeline provides the core diagram pipeline for erdcanvas.
//
// This package implements the complete normalize → arrange → export pipeline
// that can be used by CLI and API components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Normalize: Convert raw introspection metadata into the table model
//  2. Arrange: Compute non-overlapping positions for every table
//  3. Export: Serialize the positioned diagram (JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Name:    "warehouse",
//	    Formats: []export.Format{export.FormatJSON, export.FormatSVG},
//	}
//	result, err := runner.Execute(ctx, metadata, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/erdcanvas/erdcanvas/pkg/errors"
	"github.com/erdcanvas/erdcanvas/pkg/export"
	"github.com/erdcanvas/erdcanvas/pkg/layout"
	"github.com/erdcanvas/erdcanvas/pkg/model"
	"github.com/erdcanvas/erdcanvas/pkg/normalize"
)

// DefaultSeed is the default random seed for reproducible colors and
// placeholder positions.
const DefaultSeed = normalize.DefaultSeed

// Options contains all configuration for the diagram pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Name is the diagram name used in exports and publishing.
	Name string `json:"name"`

	// Seed drives the normalizer's random source. Zero means DefaultSeed.
	Seed uint64 `json:"seed,omitempty"`

	// Layout overrides the engine geometry. Zero fields use the engine
	// defaults.
	Layout layout.Options `json:"layout"`

	// Relationships are merged into the diagram before arranging. The
	// normalizer does not derive them; they come from the editor or an
	// imported document.
	Relationships []model.Relationship `json:"relationships,omitempty"`

	// Formats lists the artifacts to produce. Defaults to JSON only.
	Formats []export.Format `json:"formats,omitempty"`

	// Detailed includes nullability and defaults in DOT labels.
	Detailed bool `json:"detailed,omitempty"`

	// Refresh bypasses cached stage results.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Name == "" {
		o.Name = "diagram"
	}
	if err := errors.ValidateDiagramName(o.Name); err != nil {
		return err
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []export.Format{export.FormatJSON}
	}
	seen := make(map[export.Format]bool, len(o.Formats))
	for _, f := range o.Formats {
		if _, err := export.ParseFormat(string(f)); err != nil {
			return err
		}
		if seen[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "duplicate format %q", f)
		}
		seen[f] = true
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the normalized, positioned diagram.
	Diagram model.Diagram

	// DiagramHash is the content hash of the normalized diagram, usable
	// as a cache key by callers.
	DiagramHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	TableCount    int
	FieldCount    int
	NormalizeTime time.Duration
	ArrangeTime   time.Duration
	ExportTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	NormalizeHit bool // Whether the normalized diagram came from cache
	ArrangeHit   bool // Whether the arranged positions came from cache
	ExportHit    bool // Whether all artifacts came from cache
}
