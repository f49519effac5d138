package layout

import (
	"math"
	"sort"

	"github.com/erdcanvas/erdcanvas/pkg/model"
)

// =============================================================================
// Options - Placement Geometry
// =============================================================================

// Options holds the placement geometry. These are collision parameters,
// not rendering sizes: the footprint is what the overlap test considers
// occupied, whatever the rendering surface later draws.
//
// The zero value is not usable directly; pass nil to [Arrange] or call
// [DefaultOptions] to get the defaults, then override selectively.
type Options struct {
	// TableWidth and TableHeight are the nominal table footprint.
	TableWidth  float64
	TableHeight float64

	// GapX and GapY are the margins added to the footprint on each axis
	// for the overlap test.
	GapX float64
	GapY float64

	// StartX and StartY offset the seeding grid.
	StartX float64
	StartY float64

	// SeedsPerRow is how many cluster seeds fit in one grid row before
	// wrapping to the next.
	SeedsPerRow int

	// MaxSpiralSteps caps the spiral search. When exhausted, the last
	// tested position is accepted even if it overlaps: layout always
	// terminates and always answers.
	MaxSpiralSteps int
}

// DefaultOptions returns the standard placement geometry.
func DefaultOptions() Options {
	return Options{
		TableWidth:     220,
		TableHeight:    180,
		GapX:           80,
		GapY:           80,
		StartX:         100,
		StartY:         100,
		SeedsPerRow:    6,
		MaxSpiralSteps: 1000,
	}
}

func (o *Options) setDefaults() {
	def := DefaultOptions()
	if o.TableWidth <= 0 {
		o.TableWidth = def.TableWidth
	}
	if o.TableHeight <= 0 {
		o.TableHeight = def.TableHeight
	}
	if o.GapX <= 0 {
		o.GapX = def.GapX
	}
	if o.GapY <= 0 {
		o.GapY = def.GapY
	}
	if o.StartX <= 0 {
		o.StartX = def.StartX
	}
	if o.StartY <= 0 {
		o.StartY = def.StartY
	}
	if o.SeedsPerRow <= 0 {
		o.SeedsPerRow = def.SeedsPerRow
	}
	if o.MaxSpiralSteps <= 0 {
		o.MaxSpiralSteps = def.MaxSpiralSteps
	}
}

// =============================================================================
// Arrange - Connectivity-Driven Placement
// =============================================================================

// point is a candidate or final position in diagram space.
type point struct {
	x, y float64
}

// Arrange computes conflict-free positions for every table.
//
// The algorithm works on deep copies and never mutates its inputs.
// Relationships whose endpoints are not both present are ignored. Tables
// are processed most-connected first; each not-yet-placed table seeds a
// grid cell, then its neighbors are radiated outward around it, spiraling
// away from occupied space as needed. Cycles and self-relationships are
// safe: placement is idempotent per table, so the walk never revisits.
//
// Tables left untouched by the relationship filter keep the positions they
// arrived with.
func Arrange(tables []model.Table, rels []model.Relationship, opts *Options) []model.Table {
	if opts == nil {
		opts = &Options{}
	}
	o := *opts
	o.setDefaults()

	work := model.CloneTables(tables)

	present := make(map[string]bool, len(work))
	for _, t := range work {
		present[t.ID] = true
	}

	adj := buildAdjacency(work, model.CloneRelationships(rels), present)

	// Most-connected first: hubs anchor the grid, satellites radiate.
	order := make([]string, 0, len(work))
	for _, t := range work {
		order = append(order, t.ID)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return len(adj[order[i]]) > len(adj[order[j]])
	})

	e := engine{
		opts:   o,
		adj:    adj,
		placed: make(map[string]bool, len(work)),
		pos:    make(map[string]point, len(work)),
	}

	for i, id := range order {
		if e.placed[id] {
			continue
		}
		col := i % o.SeedsPerRow
		row := i / o.SeedsPerRow
		seed := point{
			x: o.StartX + float64(col)*(o.TableWidth+o.GapX),
			y: o.StartY + float64(row)*(o.TableHeight+o.GapY),
		}
		e.placeFrom(id, seed)
	}

	for i := range work {
		if p, ok := e.pos[work[i].ID]; ok {
			work[i].X = p.x
			work[i].Y = p.y
		}
	}
	return work
}

// buildAdjacency records each relationship endpoint as a neighbor of the
// other, undirected, deduplicated, preserving first-seen order so the
// angular assignment stays deterministic. A self-relationship contributes
// the table as its own neighbor once.
func buildAdjacency(tables []model.Table, rels []model.Relationship, present map[string]bool) map[string][]string {
	adj := make(map[string][]string, len(tables))
	seen := make(map[[2]string]bool)

	add := func(a, b string) {
		if seen[[2]string{a, b}] {
			return
		}
		seen[[2]string{a, b}] = true
		adj[a] = append(adj[a], b)
	}

	for _, r := range rels {
		if !present[r.SourceTableID] || !present[r.TargetTableID] {
			continue
		}
		add(r.SourceTableID, r.TargetTableID)
		add(r.TargetTableID, r.SourceTableID)
	}
	return adj
}

// =============================================================================
// Engine - Worklist Placement
// =============================================================================

type engine struct {
	opts   Options
	adj    map[string][]string
	placed map[string]bool
	pos    map[string]point
}

// pending is one worklist entry: a table to place at a candidate position.
type pending struct {
	id string
	at point
}

// placeFrom places id at the candidate position and radiates its connected
// component outward. The recursion of the reference algorithm is an
// explicit LIFO stack here; neighbors are pushed in reverse adjacency
// order so pop order matches the depth-first visitation exactly.
func (e *engine) placeFrom(id string, at point) {
	stack := []pending{{id: id, at: at}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Idempotent: the walk may queue a table twice (cycles, shared
		// neighbors, self-relationships). First placement wins.
		if e.placed[cur.id] {
			continue
		}

		p := e.findFree(cur.at)
		e.pos[cur.id] = p
		e.placed[cur.id] = true

		neighbors := e.adj[cur.id]
		if len(neighbors) == 0 {
			continue
		}

		// Even angular spread; x and y use their own footprint spans, so
		// the ring is elliptical rather than circular.
		step := 2 * math.Pi / float64(len(neighbors))
		rx := e.opts.TableWidth + 2*e.opts.GapX
		ry := e.opts.TableHeight + 2*e.opts.GapY

		for i := len(neighbors) - 1; i >= 0; i-- {
			n := neighbors[i]
			if e.placed[n] {
				continue
			}
			angle := float64(i) * step
			stack = append(stack, pending{
				id: n,
				at: point{x: p.x + math.Cos(angle)*rx, y: p.y + math.Sin(angle)*ry},
			})
		}
	}
}

// findFree locates a non-overlapping position near the candidate via a
// spiral search: 45° angle sweeps around the candidate, radius growing by
// half the larger footprint dimension after each full turn. If the step
// cap runs out the last tested position is returned, overlapping or not.
func (e *engine) findFree(at point) point {
	if !e.overlaps(at) {
		return at
	}

	radiusStep := math.Max(e.opts.TableWidth, e.opts.TableHeight) / 2
	candidate := at

	for i := 0; i < e.opts.MaxSpiralSteps; i++ {
		angle := float64(i%8) * (math.Pi / 4)
		radius := radiusStep * float64(1+i/8)
		candidate = point{
			x: at.x + math.Cos(angle)*radius,
			y: at.y + math.Sin(angle)*radius,
		}
		if !e.overlaps(candidate) {
			return candidate
		}
	}
	return candidate
}

// overlaps reports whether a table at p would collide with any placed
// table. The test is axis-aligned distance against footprint plus gap on
// both axes simultaneously: conservative by intent, cheaper than true
// rectangle intersection, and tolerant of the footprint being nominal.
func (e *engine) overlaps(p point) bool {
	for _, q := range e.pos {
		if math.Abs(p.x-q.x) < e.opts.TableWidth+e.opts.GapX &&
			math.Abs(p.y-q.y) < e.opts.TableHeight+e.opts.GapY {
			return true
		}
	}
	return false
}
