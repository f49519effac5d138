// Package normalize transforms raw introspection descriptors into the
// diagram table model.
//
// [Build] is the whole surface: it takes a [meta.Metadata] payload and
// produces the deduplicated, ordered tables that the layout engine and the
// rendering surface consume.
//
// # Contract
//
// Per table descriptor:
//
//   - Columns matching the (normalized schema, table) pair are selected and
//     deduplicated by name, first occurrence winning.
//   - Fields are ordered by declared ordinal position; equal ordinals keep
//     source order.
//   - A field is a primary key iff its trimmed name appears in the
//     primary-key descriptors for the same table.
//   - Raw index rows grouped by (schema, index name) become one index each,
//     columns ordered by declared position, unknown columns dropped.
//   - A field is unique iff some single-column unique index covers exactly
//     that field; composite unique indexes do not propagate.
//   - A table is a view iff a view descriptor matches; views get the fixed
//     [ViewColor], other tables a pseudo-random [Palette] entry.
//
// # Determinism
//
// Identifier, timestamp, and randomness generation are the only side
// effects and are injected through [Options]. With a pinned [IDSource],
// [Clock], and random source, Build is a pure function: identical payloads
// produce identical tables, field orderings, and index aggregations.
package normalize
