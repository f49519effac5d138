package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/erdcanvas/erdcanvas/pkg/export"
	"github.com/erdcanvas/erdcanvas/pkg/model"
)

// exportCommand creates the export command for serializing diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		formats  string
		detailed bool
		pick     bool
	)

	cmd := &cobra.Command{
		Use:   "export [diagram.json]",
		Short: "Export a diagram as JSON, DOT, SVG, or PNG",
		Long: `Export a diagram as JSON, DOT, SVG, or PNG.

Image formats pin every table to its computed position, so the output
mirrors the editor canvas. With --pick, an interactive list lets you choose
a subset of tables before exporting.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], output, formats, detailed, pick)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formats, "formats", "f", "svg", "comma-separated formats: json, dot, svg, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include nullability and defaults in labels")
	cmd.Flags().BoolVar(&pick, "pick", false, "interactively choose which tables to export")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input, output, formats string, detailed, pick bool) error {
	d, err := model.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	if pick {
		d, err = pickTables(d)
		if err != nil {
			return err
		}
		if len(d.Tables) == 0 {
			printWarning("No tables selected, nothing to export")
			return nil
		}
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	for _, raw := range strings.Split(formats, ",") {
		format, err := export.ParseFormat(raw)
		if err != nil {
			return err
		}

		data, err := export.ExportWith(d, format, export.Options{Detailed: detailed})
		if err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		path := base + "." + string(format)
		if err := writeFileReporting(path, data); err != nil {
			return err
		}
	}

	return nil
}

// pickTables runs the interactive table picker and returns a copy of the
// diagram restricted to the chosen tables. Relationships with a deselected
// endpoint are dropped.
func pickTables(d model.Diagram) (model.Diagram, error) {
	m := NewTableListModel(d.Tables)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return d, fmt.Errorf("table picker: %w", err)
	}

	picked, ok := final.(TableListModel)
	if !ok || picked.Aborted {
		return d, fmt.Errorf("selection cancelled")
	}

	keep := picked.SelectedIDs()
	out := d.Clone()
	out.Tables = out.Tables[:0]
	for _, t := range d.Tables {
		if keep[t.ID] {
			out.Tables = append(out.Tables, t.Clone())
		}
	}
	out.Relationships = out.Relationships[:0]
	for _, r := range d.Relationships {
		if keep[r.SourceTableID] && keep[r.TargetTableID] {
			out.Relationships = append(out.Relationships, r)
		}
	}
	return out, nil
}

func writeFileReporting(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printSuccess("Exported %s", filepath.Base(path))
	printFile(path)
	return nil
}
