package model

import (
	"slices"
	"time"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Cardinality describes one endpoint of a relationship.
type Cardinality string

// Cardinality values for relationship endpoints.
const (
	CardinalityOne  Cardinality = "one"
	CardinalityMany Cardinality = "many"
)

// =============================================================================
// Table - Diagram Entity
// =============================================================================

// Table is a positioned entity in a diagram: a database table or view with
// its ordered fields, indexes, and display attributes.
//
// The ID is unique across a diagram. Field names are unique within a table;
// the normalizer collapses duplicates on import.
type Table struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Schema    string    `json:"schema,omitempty"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Fields    []Field   `json:"fields"`
	Indexes   []Index   `json:"indexes,omitempty"`
	Color     string    `json:"color,omitempty"`
	IsView    bool      `json:"is_view,omitempty"`
	Width     float64   `json:"width,omitempty"`
	Comment   string    `json:"comment,omitempty"`
	Hidden    bool      `json:"hidden,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Domain flags carried through from source metadata.
	Auditable       bool `json:"auditable,omitempty"`
	RevisionEnabled bool `json:"revision_enabled,omitempty"`
}

// Field returns the field with the given ID and true, or a zero Field and
// false if no field matches.
func (t *Table) Field(id string) (Field, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// FieldByName returns the field with the given name and true, or a zero
// Field and false if no field matches.
func (t *Table) FieldByName(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// PrimaryKeys returns the fields flagged as primary key, in field order.
func (t *Table) PrimaryKeys() []Field {
	var pks []Field
	for _, f := range t.Fields {
		if f.PrimaryKey {
			pks = append(pks, f)
		}
	}
	return pks
}

// Clone returns a deep copy of the table. Field and index slices are copied
// so mutations on the clone never reach the original.
func (t Table) Clone() Table {
	out := t
	out.Fields = slices.Clone(t.Fields)
	out.Indexes = make([]Index, len(t.Indexes))
	for i, idx := range t.Indexes {
		out.Indexes[i] = idx.Clone()
	}
	return out
}

// CloneTables deep-copies a table slice.
func CloneTables(tables []Table) []Table {
	out := make([]Table, len(tables))
	for i, t := range tables {
		out[i] = t.Clone()
	}
	return out
}

// =============================================================================
// Field - Table Column
// =============================================================================

// FieldType describes a column type as a normalized identifier plus a
// display name (e.g. "varchar" / "VARCHAR").
type FieldType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Field is a single column of a table. Optional metadata (length, precision,
// default, ...) is omitted from serialization when absent.
type Field struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       FieldType `json:"type"`
	PrimaryKey bool      `json:"primary_key,omitempty"`
	Unique     bool      `json:"unique,omitempty"`
	Nullable   bool      `json:"nullable,omitempty"`
	Length     *int      `json:"length,omitempty"`
	Precision  *int      `json:"precision,omitempty"`
	Scale      *int      `json:"scale,omitempty"`
	Default    string    `json:"default,omitempty"`
	Collation  string    `json:"collation,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// =============================================================================
// Index
// =============================================================================

// Index is a named index over one or more fields of a table. FieldIDs are
// ordered by the index's declared column positions.
type Index struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Unique    bool      `json:"unique,omitempty"`
	FieldIDs  []string  `json:"field_ids"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a copy of the index with its own FieldIDs slice.
func (i Index) Clone() Index {
	out := i
	out.FieldIDs = slices.Clone(i.FieldIDs)
	return out
}

// =============================================================================
// Relationship
// =============================================================================

// Relationship connects a field of one table to a field of another.
// The layout engine uses only the table endpoints (undirected); cardinality
// is carried for the rendering surface.
type Relationship struct {
	ID                string      `json:"id"`
	SourceTableID     string      `json:"source_table_id"`
	TargetTableID     string      `json:"target_table_id"`
	SourceFieldID     string      `json:"source_field_id,omitempty"`
	TargetFieldID     string      `json:"target_field_id,omitempty"`
	SourceCardinality Cardinality `json:"source_cardinality,omitempty"`
	TargetCardinality Cardinality `json:"target_cardinality,omitempty"`
}

// CloneRelationships copies a relationship slice.
func CloneRelationships(rels []Relationship) []Relationship {
	return slices.Clone(rels)
}
