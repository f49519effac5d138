package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/erdcanvas/erdcanvas/pkg/model"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes nullability, defaults, and index names in labels.
	// When false, only field names and types are shown.
	Detailed bool
}

// dotScale converts diagram pixel coordinates to Graphviz points.
const dotScale = 72.0 / 96.0

// ToDOT converts a diagram to Graphviz DOT format.
// Each table becomes a node pinned at its computed position (neato layout
// with pos="x,y!"), so the image mirrors the editor canvas. The resulting
// DOT string can be rendered with [RenderSVG] or [RenderPNG].
//
// Views are rendered with dashed outlines to distinguish them from tables.
func ToDOT(d model.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph erd {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	for _, t := range d.Tables {
		if t.Hidden {
			continue
		}
		label := tableLabel(t, opts.Detailed)
		attrs := tableAttrs(t, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", t.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, r := range d.Relationships {
		fmt.Fprintf(&buf, "  %q -> %q [taillabel=%q, headlabel=%q, dir=both, arrowtail=none, arrowhead=none];\n",
			r.SourceTableID, r.TargetTableID,
			cardinalityMark(r.SourceCardinality), cardinalityMark(r.TargetCardinality))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func tableLabel(t model.Table, detailed bool) string {
	name := t.Name
	if t.Schema != "" {
		name = t.Schema + "." + name
	}

	lines := []string{name}
	for _, f := range t.Fields {
		lines = append(lines, fieldLine(f, detailed))
	}
	return strings.Join(lines, "\n")
}

func fieldLine(f model.Field, detailed bool) string {
	line := f.Name + ": " + f.Type.Name
	if f.PrimaryKey {
		line += " PK"
	}
	if !detailed {
		return line
	}
	if f.Unique {
		line += " UQ"
	}
	if f.Nullable {
		line += " NULL"
	}
	if f.Default != "" {
		line += " = " + f.Default
	}
	return line
}

func tableAttrs(t model.Table, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	// Graphviz positions grow upward; canvas coordinates grow downward.
	attrs = append(attrs, fmt.Sprintf("pos=\"%.2f,%.2f!\"", t.X*dotScale, -t.Y*dotScale))
	if t.Color != "" {
		attrs = append(attrs, fmt.Sprintf("color=%q", t.Color))
	}
	if t.IsView {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

func cardinalityMark(c model.Cardinality) string {
	switch c {
	case model.CardinalityMany:
		return "N"
	case model.CardinalityOne:
		return "1"
	}
	return ""
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or embedding.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG, nil)
}

func render(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if post != nil {
		return post(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
