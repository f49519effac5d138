// Package export serializes diagrams into shareable formats.
//
// Four formats are supported: the native JSON document, Graphviz DOT, and
// rendered SVG or PNG images. The image formats pin every table to the
// position computed by the layout engine instead of letting Graphviz
// re-arrange the graph.
package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/erdcanvas/erdcanvas/pkg/errors"
	"github.com/erdcanvas/erdcanvas/pkg/model"
)

// Format identifies an export format.
type Format string

// Supported export formats.
const (
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
)

// Formats lists all supported formats in display order.
func Formats() []Format {
	return []Format{FormatJSON, FormatDOT, FormatSVG, FormatPNG}
}

// ParseFormat parses a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatDOT:
		return FormatDOT, nil
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unknown format %q (supported: json, dot, svg, png)", s)
}

// Export serializes the diagram in the given format with default options.
func Export(d model.Diagram, format Format) ([]byte, error) {
	return ExportWith(d, format, Options{})
}

// ExportWith serializes the diagram in the given format. The options apply
// to the DOT-derived formats; JSON ignores them.
func ExportWith(d model.Diagram, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return model.MarshalDiagram(d)
	case FormatDOT:
		return []byte(ToDOT(d, opts)), nil
	case FormatSVG:
		return RenderSVG(ToDOT(d, opts))
	case FormatPNG:
		return RenderPNG(ToDOT(d, opts))
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
}

// WriteFile exports the diagram to a file, inferring nothing from the
// extension; the caller chooses the format explicitly.
func WriteFile(d model.Diagram, format Format, path string) error {
	data, err := Export(d, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
