// Package model defines the diagram data model and its wire format.
//
// This package is the serialization boundary of erdcanvas: the [Diagram]
// JSON format is what the CLI writes, the HTTP API returns, and the remote
// publish endpoint receives.
//
// # Core Types
//
//   - [Table]: positioned entity with ordered [Field]s and [Index]es
//   - [Relationship]: field-to-field connection between two tables
//   - [Diagram]: tables plus relationships, the round-trippable unit
//
// # Serialization
//
// Diagrams use a plain JSON object format:
//
//	{
//	  "tables": [{"id": "...", "name": "users", "x": 100, "y": 100, ...}],
//	  "relationships": [{"source_table_id": "...", "target_table_id": "..."}]
//	}
//
// Common operations:
//
//	d, _ := model.ReadDiagramFile("diagram.json")   // File → Diagram
//	model.WriteDiagramFile(d, "out.json")           // Diagram → File
//	data, _ := model.MarshalDiagram(d)              // Diagram → []byte
//
// # Mutability
//
// Tables and relationships are value objects. Components that rework a
// diagram (the layout engine in particular) operate on deep copies via
// [Table.Clone] and [CloneTables] and never mutate caller-owned data.
package model
