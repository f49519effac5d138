// Package pkg provides the core libraries for erdcanvas diagram generation.
//
// # Overview
//
// erdcanvas turns raw database introspection metadata into positioned
// entity-relationship diagrams. The pkg directory is organized into four
// main areas:
//
//  1. [meta], [normalize], [model] - Domain logic (metadata descriptors,
//     normalization, the diagram document)
//  2. [layout], [export] - Geometry and output (placement, DOT/SVG/PNG)
//  3. [cache], [config], [session], [httputil] - Infrastructure
//  4. [pipeline], [remote] - Orchestration and publishing
//
// # Architecture
//
// The typical data flow through erdcanvas:
//
//	Introspection dump (tables, columns, indexes, views)
//	         ↓
//	    [meta] package (parse descriptors)
//	         ↓
//	    [normalize] package (build Table/Field/Index model)
//	         ↓
//	    [layout] package (connectivity-driven placement)
//	         ↓
//	    [export] package (JSON/DOT/SVG/PNG output)
//
// # Quick Start
//
// Normalize metadata and render a diagram:
//
//	import (
//	    "github.com/erdcanvas/erdcanvas/pkg/export"
//	    "github.com/erdcanvas/erdcanvas/pkg/layout"
//	    "github.com/erdcanvas/erdcanvas/pkg/meta"
//	    "github.com/erdcanvas/erdcanvas/pkg/model"
//	    "github.com/erdcanvas/erdcanvas/pkg/normalize"
//	)
//
//	// 1. Read the introspection dump
//	md, _ := meta.ReadMetadataFile("metadata.json")
//
//	// 2. Build the table model
//	tables := normalize.Build(md, nil)
//
//	// 3. Compute positions
//	tables = layout.Arrange(tables, nil, nil)
//
//	// 4. Export
//	d := model.Diagram{Name: "inventory", Tables: tables}
//	svg, _ := export.Export(d, export.FormatSVG)
//
// # Main Packages
//
// ## Domain Logic
//
// [meta] - Raw introspection descriptors as produced by database extraction
// scripts: tables, columns, indexes, primary keys, and views.
//
// [normalize] - Converts descriptors into the editor's table model, merging
// primary keys and indexes into fields and assigning deterministic colors.
//
// [model] - The diagram document: tables, fields, relationships, and the
// JSON serialization used by every other package.
//
// ## Geometry and Output
//
// [layout] - Connectivity-driven placement. Related tables cluster around
// their most-connected anchor on an outward spiral; isolated tables fill a
// grid. Positions never overlap.
//
// [export] - Output formats. DOT pins tables to their computed positions;
// SVG and PNG are rendered through Graphviz.
//
// ## Infrastructure
//
// [cache] - Content-addressed result cache with file-backed and null
// implementations, keyed per pipeline stage.
//
// [config] - TOML configuration from $XDG_CONFIG_HOME/erdcanvas/config.toml.
//
// [session] - Token storage for the sharing service.
//
// [httputil] - Retry with exponential backoff for transient HTTP failures.
//
// [observability] - Optional hooks for metrics and tracing backends.
//
// ## Orchestration
//
// [pipeline] - The normalize → arrange → export pipeline with per-stage
// caching, shared by the CLI and the HTTP API.
//
// [remote] - Publishes diagrams to a sharing service.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Specific package
//
// [meta]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/meta
// [normalize]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/normalize
// [model]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/model
// [layout]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/layout
// [export]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/export
// [cache]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/cache
// [config]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/config
// [session]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/session
// [httputil]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/pipeline
// [remote]: https://pkg.go.dev/github.com/erdcanvas/erdcanvas/pkg/remote
package pkg
