package normalize

import (
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/erdcanvas/erdcanvas/pkg/meta"
	"github.com/erdcanvas/erdcanvas/pkg/model"
)

// =============================================================================
// Capabilities - Injectable Side Effects
// =============================================================================

// IDSource generates unique identifiers for tables, fields, and indexes.
type IDSource interface {
	NewID() string
}

// IDFunc adapts a plain function to an [IDSource].
type IDFunc func() string

// NewID implements [IDSource].
func (f IDFunc) NewID() string { return f() }

// Clock supplies creation timestamps.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to a [Clock].
type ClockFunc func() time.Time

// Now implements [Clock].
func (f ClockFunc) Now() time.Time { return f() }

// Options configures a normalization run. The zero value is usable:
// missing capabilities fall back to UUIDs, the wall clock, and a
// fixed-seed PCG random source.
type Options struct {
	// IDs generates entity identifiers. Defaults to random UUIDs.
	IDs IDSource

	// Clock supplies creation timestamps. Defaults to time.Now.
	Clock Clock

	// Rand drives color selection and placeholder positions.
	// Defaults to a PCG source seeded with DefaultSeed.
	Rand *rand.Rand
}

// DefaultSeed seeds the fallback random source so that library users who
// don't care about randomness still get reproducible output.
const DefaultSeed = uint64(42)

func (o *Options) setDefaults() {
	if o.IDs == nil {
		o.IDs = IDFunc(uuid.NewString)
	}
	if o.Clock == nil {
		o.Clock = ClockFunc(time.Now)
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewPCG(DefaultSeed, DefaultSeed^0xdeadbeef))
	}
}

// =============================================================================
// Build - Descriptors → Tables
// =============================================================================

// schemaTable is the composite grouping key for per-table lookups.
// A struct key, not a concatenated string, so names containing any chosen
// separator cannot collide.
type schemaTable struct {
	schema string
	table  string
}

// schemaIndex groups raw index rows into indexes.
type schemaIndex struct {
	schema string
	index  string
}

// Build converts a raw introspection payload into diagram tables.
//
// Per table descriptor: matching columns are deduplicated by name (first
// occurrence wins), ordered by ordinal position (stable for equal
// ordinals), flagged as primary keys and unique per the key and index
// descriptors, and aggregated indexes are resolved against the built
// fields. Tables matching a view descriptor are marked as views and get
// the neutral view color; others get a pseudo-random palette color.
//
// Zero matching columns is not an error: introspection may legitimately
// report column-less objects, and the result is a table with no fields.
//
// Positions are placeholders to be overwritten by the layout engine.
func Build(md meta.Metadata, opts *Options) []model.Table {
	if opts == nil {
		opts = &Options{}
	}
	opts.setDefaults()

	views := make(map[schemaTable]bool, len(md.Views))
	for _, v := range md.Views {
		views[schemaTable{meta.NormalizeSchema(v.Schema), v.ViewName}] = true
	}

	pks := make(map[schemaTable]map[string]bool)
	for _, pk := range md.PrimaryKeys {
		key := schemaTable{meta.NormalizeSchema(pk.Schema), pk.Table}
		if pks[key] == nil {
			pks[key] = make(map[string]bool)
		}
		pks[key][strings.TrimSpace(pk.Column)] = true
	}

	tables := make([]model.Table, 0, len(md.Tables))
	for _, td := range md.Tables {
		tables = append(tables, buildTable(td, md, views, pks, opts))
	}
	return tables
}

func buildTable(
	td meta.TableDescriptor,
	md meta.Metadata,
	views map[schemaTable]bool,
	pks map[schemaTable]map[string]bool,
	opts *Options,
) model.Table {
	key := schemaTable{meta.NormalizeSchema(td.Schema), td.Table}
	isView := views[key]

	fields := buildFields(key, md.Columns, pks[key], opts)
	indexes := buildIndexes(key, td.Table, md.Indexes, fields, opts)
	propagateUnique(fields, indexes)

	color := pickColor(opts.Rand)
	if isView {
		color = ViewColor
	}

	return model.Table{
		ID:              opts.IDs.NewID(),
		Name:            td.Table,
		Schema:          key.schema,
		X:               opts.Rand.Float64() * placeholderSpanX,
		Y:               opts.Rand.Float64() * placeholderSpanY,
		Fields:          fields,
		Indexes:         indexes,
		Color:           color,
		IsView:          isView,
		Comment:         td.Comment,
		CreatedAt:       opts.Clock.Now(),
		Auditable:       td.Auditable,
		RevisionEnabled: td.RevisionEnabled,
	}
}

// Placeholder positions land inside a nominal frame; the layout engine
// overwrites them.
const (
	placeholderSpanX = 800.0
	placeholderSpanY = 600.0
)

// buildFields selects, deduplicates, and orders the columns of one table.
func buildFields(key schemaTable, cols []meta.ColumnDescriptor, pk map[string]bool, opts *Options) []model.Field {
	var matched []meta.ColumnDescriptor
	seen := make(map[string]bool)
	for _, c := range cols {
		if meta.NormalizeSchema(c.Schema) != key.schema || c.Table != key.table {
			continue
		}
		// First occurrence wins: raw ordering is authoritative.
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		matched = append(matched, c)
	}

	// Stable: equal ordinals keep input order.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].OrdinalPosition < matched[j].OrdinalPosition
	})

	fields := make([]model.Field, len(matched))
	for i, c := range matched {
		f := model.Field{
			ID:        opts.IDs.NewID(),
			Name:      c.Name,
			Type:      fieldType(c.Type),
			Nullable:  c.Nullable,
			Length:    c.MaxLength,
			Default:   c.Default,
			Collation: c.Collation,
			Comment:   c.Comment,
			CreatedAt: opts.Clock.Now(),
		}
		if c.Precision != nil {
			f.Precision = c.Precision.Precision
			f.Scale = c.Precision.Scale
		}
		if pk[strings.TrimSpace(c.Name)] {
			f.PrimaryKey = true
		}
		fields[i] = f
	}
	return fields
}

// buildIndexes groups raw per-column index rows into indexes and resolves
// column names against the built fields. Columns naming a field the table
// doesn't have are dropped; the index itself survives.
func buildIndexes(key schemaTable, table string, rows []meta.IndexDescriptor, fields []model.Field, opts *Options) []model.Index {
	fieldIDs := make(map[string]string, len(fields))
	for _, f := range fields {
		fieldIDs[f.Name] = f.ID
	}

	groups := make(map[schemaIndex][]meta.IndexDescriptor)
	var order []schemaIndex
	for _, row := range rows {
		if meta.NormalizeSchema(row.Schema) != key.schema || row.Table != table {
			continue
		}
		gk := schemaIndex{key.schema, row.Name}
		if _, ok := groups[gk]; !ok {
			order = append(order, gk)
		}
		groups[gk] = append(groups[gk], row)
	}

	indexes := make([]model.Index, 0, len(order))
	for _, gk := range order {
		rows := groups[gk]
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].ColumnPosition < rows[j].ColumnPosition
		})

		idx := model.Index{
			ID:        opts.IDs.NewID(),
			Name:      gk.index,
			Unique:    rows[0].Unique,
			CreatedAt: opts.Clock.Now(),
		}
		for _, row := range rows {
			if id, ok := fieldIDs[row.Column]; ok {
				idx.FieldIDs = append(idx.FieldIDs, id)
			}
		}
		indexes = append(indexes, idx)
	}
	return indexes
}

// propagateUnique marks a field unique iff a unique index covers exactly
// that single field. Composite unique indexes say nothing about their
// member columns.
func propagateUnique(fields []model.Field, indexes []model.Index) {
	single := make(map[string]bool)
	for _, idx := range indexes {
		if idx.Unique && len(idx.FieldIDs) == 1 {
			single[idx.FieldIDs[0]] = true
		}
	}
	for i := range fields {
		if single[fields[i].ID] {
			fields[i].Unique = true
		}
	}
}

// fieldType normalizes a raw type string into an identifier plus display
// name: "varchar(255)" → {"varchar", "VARCHAR"}.
func fieldType(raw string) model.FieldType {
	base := strings.TrimSpace(raw)
	if i := strings.IndexAny(base, "( "); i >= 0 {
		base = base[:i]
	}
	base = strings.ToLower(base)
	return model.FieldType{ID: base, Name: strings.ToUpper(base)}
}
