package meta

import "strings"

// =============================================================================
// Raw Introspection Descriptors
// =============================================================================

// TableDescriptor describes one table reported by an introspection run.
type TableDescriptor struct {
	Schema          string `json:"schema,omitempty"`
	Table           string `json:"table"`
	Comment         string `json:"comment,omitempty"`
	Auditable       bool   `json:"auditable,omitempty"`
	RevisionEnabled bool   `json:"revisionEnabled,omitempty"`
}

// PrecisionDescriptor carries numeric precision and scale when the source
// reports them. Both members are optional.
type PrecisionDescriptor struct {
	Precision *int `json:"precision,omitempty"`
	Scale     *int `json:"scale,omitempty"`
}

// ColumnDescriptor describes one column of one table. Introspection queries
// may report the same column more than once (join fan-out upstream); the
// normalizer deduplicates by name.
type ColumnDescriptor struct {
	Schema          string               `json:"schema,omitempty"`
	Table           string               `json:"table"`
	Name            string               `json:"name"`
	OrdinalPosition int                  `json:"ordinal_position"`
	Type            string               `json:"type"`
	Nullable        bool                 `json:"nullable"`
	MaxLength       *int                 `json:"character_maximum_length,omitempty"`
	Precision       *PrecisionDescriptor `json:"precision,omitempty"`
	Default         string               `json:"default,omitempty"`
	Collation       string               `json:"collation,omitempty"`
	Comment         string               `json:"comment,omitempty"`
}

// IndexDescriptor is one row of an index listing: one indexed column of one
// index. Rows sharing (schema, index name) form a single index.
type IndexDescriptor struct {
	Schema         string `json:"schema,omitempty"`
	Table          string `json:"table"`
	Name           string `json:"name"`
	Unique         bool   `json:"unique"`
	Column         string `json:"column"`
	ColumnPosition int    `json:"column_position"`
}

// PrimaryKeyDescriptor names one primary-key column of one table.
type PrimaryKeyDescriptor struct {
	Schema string `json:"schema,omitempty"`
	Table  string `json:"table"`
	Column string `json:"column"`
}

// ViewDescriptor names a view. Tables matching a view descriptor by
// (schema, name) are marked as views by the normalizer.
type ViewDescriptor struct {
	Schema   string `json:"schema,omitempty"`
	ViewName string `json:"view_name"`
}

// =============================================================================
// Metadata - Full Introspection Payload
// =============================================================================

// Metadata is the complete output of one introspection run, as produced by
// the external extraction scripts. All collections may be empty; ordering
// within each collection is the source order and is considered
// authoritative for dedup tie-breaks.
type Metadata struct {
	Tables      []TableDescriptor      `json:"tables"`
	Columns     []ColumnDescriptor     `json:"columns"`
	Indexes     []IndexDescriptor      `json:"indexes,omitempty"`
	PrimaryKeys []PrimaryKeyDescriptor `json:"primary_keys,omitempty"`
	Views       []ViewDescriptor       `json:"views,omitempty"`
}

// NormalizeSchema collapses the source-reported "no schema" variants to a
// single canonical sentinel (the empty string). Surrounding whitespace is
// stripped so that " public " and "public" compare equal.
func NormalizeSchema(schema string) string {
	return strings.TrimSpace(schema)
}
