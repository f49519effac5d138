package pipeline

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/erdcanvas/erdcanvas/pkg/cache"
	"github.com/erdcanvas/erdcanvas/pkg/errors"
	"github.com/erdcanvas/erdcanvas/pkg/export"
	"github.com/erdcanvas/erdcanvas/pkg/layout"
	"github.com/erdcanvas/erdcanvas/pkg/meta"
	"github.com/erdcanvas/erdcanvas/pkg/model"
	"github.com/erdcanvas/erdcanvas/pkg/normalize"
	"github.com/erdcanvas/erdcanvas/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger, so multiple
// goroutines can safely share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL bounds the lifetime of cached stage results. Zero means entries
	// never expire.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete normalize → arrange → export pipeline with
// caching.
func (r *Runner) Execute(ctx context.Context, md meta.Metadata, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Normalize
	normalizeStart := time.Now()
	observability.Pipeline().OnNormalizeStart(ctx, opts.Name)
	d, normalizeHit, err := r.Normalize(ctx, md, opts)
	observability.Pipeline().OnNormalizeComplete(ctx, opts.Name, len(d.Tables), time.Since(normalizeStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMetadata, err, "normalize")
	}
	result.Stats.NormalizeTime = time.Since(normalizeStart)
	result.Stats.TableCount = len(d.Tables)
	for _, t := range d.Tables {
		result.Stats.FieldCount += len(t.Fields)
	}
	result.CacheInfo.NormalizeHit = normalizeHit

	logger.Info("normalized metadata",
		"tables", result.Stats.TableCount,
		"fields", result.Stats.FieldCount,
		"duration", result.Stats.NormalizeTime)

	// Stage 2: Arrange
	arrangeStart := time.Now()
	observability.Pipeline().OnArrangeStart(ctx, len(d.Tables))
	d, arrangeHit, err := r.Arrange(ctx, d, opts)
	observability.Pipeline().OnArrangeComplete(ctx, time.Since(arrangeStart), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "arrange")
	}
	result.Diagram = d
	result.Stats.ArrangeTime = time.Since(arrangeStart)
	result.CacheInfo.ArrangeHit = arrangeHit

	if data, err := model.MarshalDiagram(d); err == nil {
		result.DiagramHash = cache.Hash(data)
	}

	logger.Info("arranged tables",
		"tables", len(d.Tables),
		"duration", result.Stats.ArrangeTime)

	// Stage 3: Export
	exportStart := time.Now()
	formats := make([]string, len(opts.Formats))
	for i, f := range opts.Formats {
		formats[i] = string(f)
	}
	observability.Pipeline().OnExportStart(ctx, formats)
	artifacts, exportHit, err := r.Export(ctx, d, result.DiagramHash, opts)
	observability.Pipeline().OnExportComplete(ctx, formats, time.Since(exportStart), err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	logger.Info("exported diagram",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Normalize converts raw metadata into a named diagram, consulting the
// cache first. The relationships from opts are attached afterwards so the
// cached entry depends only on the metadata and seed.
func (r *Runner) Normalize(ctx context.Context, md meta.Metadata, opts Options) (model.Diagram, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return model.Diagram{}, false, err
	}

	raw, err := json.Marshal(md)
	if err != nil {
		return model.Diagram{}, false, err
	}
	key := r.Keyer.DiagramKey(cache.Hash(raw), cache.DiagramKeyOpts{Seed: opts.Seed})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if d, err := model.UnmarshalDiagram(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "diagram")
				d.Relationships = model.CloneRelationships(opts.Relationships)
				return d, true, nil
			}
			// Corrupt entry, fall through and rebuild.
		}
	}
	observability.Cache().OnCacheMiss(ctx, "diagram")

	tables := normalize.Build(md, &normalize.Options{
		Rand: rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b9)),
	})
	d := model.Diagram{Name: opts.Name, Tables: tables}

	if data, err := model.MarshalDiagram(d); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "diagram", len(data))
		}
	}

	d.Relationships = model.CloneRelationships(opts.Relationships)
	return d, false, nil
}

// Arrange computes table positions, consulting the cache first.
func (r *Runner) Arrange(ctx context.Context, d model.Diagram, opts Options) (model.Diagram, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return d, false, err
	}

	raw, err := model.MarshalDiagram(d)
	if err != nil {
		return d, false, err
	}
	key := r.Keyer.LayoutKey(cache.Hash(raw), cache.LayoutKeyOpts{
		TableWidth:     opts.Layout.TableWidth,
		TableHeight:    opts.Layout.TableHeight,
		GapX:           opts.Layout.GapX,
		GapY:           opts.Layout.GapY,
		StartX:         opts.Layout.StartX,
		StartY:         opts.Layout.StartY,
		SeedsPerRow:    opts.Layout.SeedsPerRow,
		MaxSpiralSteps: opts.Layout.MaxSpiralSteps,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := model.UnmarshalDiagram(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, true, nil
			}
		}
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	lopts := opts.Layout
	d.Tables = layout.Arrange(d.Tables, d.Relationships, &lopts)

	if data, err := model.MarshalDiagram(d); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return d, false, nil
}

// Export produces the requested artifacts, consulting the cache per format.
// The bool result is true only when every artifact came from cache.
func (r *Runner) Export(ctx context.Context, d model.Diagram, diagramHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(diagramHash, cache.ArtifactKeyOpts{
			Format:   string(format),
			Detailed: opts.Detailed,
		})

		if !opts.Refresh && diagramHash != "" {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[string(format)] = data
				continue
			}
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		allHit = false

		data, err := export.ExportWith(d, format, export.Options{Detailed: opts.Detailed})
		if err != nil {
			return nil, false, err
		}
		artifacts[string(format)] = data

		if diagramHash != "" {
			if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
				r.Logger.Warn("cache write failed", "key", key, "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "artifact", len(data))
			}
		}
	}
	return artifacts, allHit, nil
}
