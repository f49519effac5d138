// Package layout computes non-overlapping 2-D positions for a graph of
// diagram tables.
//
// [Arrange] is the whole surface. It prioritizes highly connected tables
// as cluster seeds on a wrapping grid, radiates each seed's neighbors
// evenly around it, and resolves collisions with a capped spiral search.
//
// # Guarantees
//
//   - Inputs are never mutated; the engine works on deep copies.
//   - Placement always terminates and always yields a position for every
//     table, even on pathological dense graphs (the spiral cap trades a
//     possible overlap for bounded work).
//   - Cycles and self-relationships cannot recurse: placement is
//     idempotent per table.
//   - Output is deterministic for a given input ordering; there is no
//     randomness in this package.
//
// Geometry lives in [Options] and is tunable without touching the
// algorithm.
package layout
