package layout

import (
	"fmt"
	"math"
	"testing"

	"github.com/erdcanvas/erdcanvas/pkg/model"
)

func mkTables(ids ...string) []model.Table {
	tables := make([]model.Table, len(ids))
	for i, id := range ids {
		tables[i] = model.Table{ID: id, Name: id}
	}
	return tables
}

func rel(src, dst string) model.Relationship {
	return model.Relationship{
		ID:            src + "-" + dst,
		SourceTableID: src,
		TargetTableID: dst,
	}
}

func positions(tables []model.Table) map[string][2]float64 {
	m := make(map[string][2]float64, len(tables))
	for _, t := range tables {
		m[t.ID] = [2]float64{t.X, t.Y}
	}
	return m
}

// assertNoOverlap fails if any two distinct tables violate the
// AABB-with-margin invariant.
func assertNoOverlap(t *testing.T, tables []model.Table, opts Options) {
	t.Helper()
	for i := range tables {
		for j := i + 1; j < len(tables); j++ {
			a, b := tables[i], tables[j]
			if math.Abs(a.X-b.X) < opts.TableWidth+opts.GapX &&
				math.Abs(a.Y-b.Y) < opts.TableHeight+opts.GapY {
				t.Errorf("tables %s and %s overlap: (%v,%v) vs (%v,%v)",
					a.ID, b.ID, a.X, a.Y, b.X, b.Y)
			}
		}
	}
}

func TestArrangeStarGraph(t *testing.T) {
	opts := DefaultOptions()
	tables := mkTables("hub", "l1", "l2", "l3", "l4", "l5")
	rels := []model.Relationship{
		rel("hub", "l1"), rel("hub", "l2"), rel("hub", "l3"),
		rel("hub", "l4"), rel("hub", "l5"),
	}

	out := Arrange(tables, rels, &opts)
	pos := positions(out)

	// The hub is the most-connected table, so it anchors the primary grid
	// seed rather than being radiated as a satellite.
	hub := pos["hub"]
	if hub[0] != opts.StartX || hub[1] != opts.StartY {
		t.Errorf("hub at (%v,%v), want grid seed (%v,%v)", hub[0], hub[1], opts.StartX, opts.StartY)
	}

	assertNoOverlap(t, out, opts)
}

func TestArrangeEndToEnd(t *testing.T) {
	opts := DefaultOptions()
	tables := mkTables("a", "b", "c")
	rels := []model.Relationship{rel("a", "b"), rel("a", "c")}

	out := Arrange(tables, rels, &opts)
	pos := positions(out)

	a := pos["a"]
	if a[0] != opts.StartX || a[1] != opts.StartY {
		t.Fatalf("hub a at (%v,%v), want (%v,%v)", a[0], a[1], opts.StartX, opts.StartY)
	}

	// b and c sit on two of the angularly spaced satellite offsets around
	// a: with two neighbors the step is 180°, so b lands east (angle 0)
	// and c west (angle π), unless the spiral had to move one of them.
	rx := opts.TableWidth + 2*opts.GapX
	b := pos["b"]
	if b[0] != a[0]+rx || math.Abs(b[1]-a[1]) > 1e-9 {
		t.Errorf("b at (%v,%v), want (%v,%v)", b[0], b[1], a[0]+rx, a[1])
	}
	c := pos["c"]
	if c[0] != a[0]-rx || math.Abs(c[1]-a[1]) > 1e-9 {
		t.Errorf("c at (%v,%v), want (%v,%v)", c[0], c[1], a[0]-rx, a[1])
	}

	assertNoOverlap(t, out, opts)
}

func TestArrangeIsolatedTables(t *testing.T) {
	opts := DefaultOptions()
	tables := mkTables("a", "b", "c", "d", "e", "f", "g", "h")

	// No relationships: every table is its own cluster seed and keeps its
	// grid cell, wrapping to a second row after SeedsPerRow seeds.
	out := Arrange(tables, nil, &opts)
	pos := positions(out)

	for i, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		col := i % opts.SeedsPerRow
		row := i / opts.SeedsPerRow
		want := [2]float64{
			opts.StartX + float64(col)*(opts.TableWidth+opts.GapX),
			opts.StartY + float64(row)*(opts.TableHeight+opts.GapY),
		}
		if pos[id] != want {
			t.Errorf("%s at %v, want grid cell %v", id, pos[id], want)
		}
	}

	assertNoOverlap(t, out, opts)
}

func TestArrangeDoesNotMutateInputs(t *testing.T) {
	tables := mkTables("a", "b")
	tables[0].X, tables[0].Y = 5, 7
	tables[0].Fields = []model.Field{{ID: "f1", Name: "id"}}
	rels := []model.Relationship{rel("a", "b")}

	Arrange(tables, rels, nil)

	if tables[0].X != 5 || tables[0].Y != 7 {
		t.Error("Arrange mutated caller-owned positions")
	}
	if tables[0].Fields[0].Name != "id" {
		t.Error("Arrange mutated caller-owned fields")
	}
}

func TestArrangePreservesIdentity(t *testing.T) {
	tables := mkTables("a", "b")
	tables[0].Fields = []model.Field{{ID: "f1", Name: "id"}}
	tables[0].Color = "#f03c3c"

	out := Arrange(tables, []model.Relationship{rel("a", "b")}, nil)

	for _, tbl := range out {
		if tbl.ID != "a" && tbl.ID != "b" {
			t.Errorf("unexpected table id %q", tbl.ID)
		}
	}
	if out[0].Color != "#f03c3c" || len(out[0].Fields) != 1 {
		t.Error("Arrange must only update positions, not identity or fields")
	}
}

func TestArrangeDanglingRelationship(t *testing.T) {
	opts := DefaultOptions()
	tables := mkTables("a")
	tables[0].X, tables[0].Y = 33, 44

	// b doesn't exist: the relationship is filtered, a is effectively
	// isolated and gets re-seeded on the grid (it is still in the input
	// set, so it is placed, not skipped).
	out := Arrange(tables, []model.Relationship{rel("a", "b")}, &opts)

	if out[0].X != opts.StartX || out[0].Y != opts.StartY {
		t.Errorf("a at (%v,%v), want grid seed", out[0].X, out[0].Y)
	}
}

func TestArrangeCycle(t *testing.T) {
	opts := DefaultOptions()
	tables := mkTables("a", "b", "c")
	rels := []model.Relationship{rel("a", "b"), rel("b", "c"), rel("c", "a")}

	out := Arrange(tables, rels, &opts)

	if len(out) != 3 {
		t.Fatalf("tables = %d, want 3", len(out))
	}
	assertNoOverlap(t, out, opts)
}

func TestArrangeSelfRelationship(t *testing.T) {
	opts := DefaultOptions()
	tables := mkTables("a")
	rels := []model.Relationship{rel("a", "a")}

	// Must terminate: the idempotency check breaks the self-loop.
	out := Arrange(tables, rels, &opts)

	if out[0].X != opts.StartX || out[0].Y != opts.StartY {
		t.Errorf("a at (%v,%v), want grid seed", out[0].X, out[0].Y)
	}
}

func TestArrangeIdempotentReplacement(t *testing.T) {
	e := engine{
		opts:   DefaultOptions(),
		adj:    map[string][]string{"a": {"a"}},
		placed: map[string]bool{"a": true},
		pos:    map[string]point{"a": {x: 10, y: 20}},
	}

	e.placeFrom("a", point{x: 999, y: 999})

	if p := e.pos["a"]; p.x != 10 || p.y != 20 {
		t.Errorf("re-placement moved a to (%v,%v), want (10,20)", p.x, p.y)
	}
}

func TestArrangeDeterminism(t *testing.T) {
	tables := mkTables("a", "b", "c", "d", "e")
	rels := []model.Relationship{
		rel("a", "b"), rel("a", "c"), rel("c", "d"), rel("d", "e"),
	}

	first := positions(Arrange(tables, rels, nil))
	second := positions(Arrange(tables, rels, nil))

	for id, p := range first {
		if second[id] != p {
			t.Errorf("table %s moved between runs: %v vs %v", id, p, second[id])
		}
	}
}

func TestArrangeDenseGraph(t *testing.T) {
	// Fully connected graph below the spiral cap: every pair must still
	// satisfy the no-overlap invariant.
	const n = 20
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("t%02d", i)
	}
	tables := mkTables(ids...)

	var rels []model.Relationship
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rels = append(rels, rel(ids[i], ids[j]))
		}
	}

	opts := DefaultOptions()
	out := Arrange(tables, rels, &opts)
	assertNoOverlap(t, out, opts)
}

func TestArrangeCapAlwaysAnswers(t *testing.T) {
	// A tiny step cap cannot find room for everyone; layout must still
	// terminate and assign every table a position.
	opts := DefaultOptions()
	opts.MaxSpiralSteps = 3

	tables := mkTables("a", "b", "c", "d")
	rels := []model.Relationship{rel("a", "b"), rel("a", "c"), rel("a", "d")}

	out := Arrange(tables, rels, &opts)
	if len(out) != 4 {
		t.Fatalf("tables = %d, want 4", len(out))
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	o.setDefaults()
	def := DefaultOptions()

	if o.TableWidth != def.TableWidth || o.MaxSpiralSteps != def.MaxSpiralSteps {
		t.Errorf("zero options not defaulted: %+v", o)
	}
	if o.StartX != def.StartX || o.StartY != def.StartY {
		t.Errorf("zero start offsets not defaulted: %+v", o)
	}

	// Partial overrides survive.
	o2 := Options{TableWidth: 300}
	o2.setDefaults()
	if o2.TableWidth != 300 {
		t.Error("explicit TableWidth overridden by defaults")
	}
	if o2.GapX != def.GapX {
		t.Error("unset GapX not defaulted")
	}
}
