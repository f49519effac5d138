package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erdcanvas/erdcanvas/pkg/meta"
	"github.com/erdcanvas/erdcanvas/pkg/model"
	"github.com/erdcanvas/erdcanvas/pkg/pipeline"
)

// importCommand creates the import command for turning metadata into a diagram.
func (c *CLI) importCommand() *cobra.Command {
	var (
		output  string
		name    string
		seed    uint64
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "import [metadata.json]",
		Short: "Build a positioned diagram from raw database metadata",
		Long: `Build a positioned diagram from raw database metadata.

The import command reads an introspection dump (tables, columns, indexes,
primary keys, views) produced by an extraction script, normalizes it into a
table model, computes a non-overlapping layout, and writes a diagram.json
that the other commands consume.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0], output, name, seed, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.diagram.json)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "diagram name (default: input basename)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for colors (default: fixed seed)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cached results")

	return cmd
}

func (c *CLI) runImport(ctx context.Context, input, output, name string, seed uint64, noCache, refresh bool) error {
	md, err := meta.ReadMetadataFile(input)
	if err != nil {
		return fmt.Errorf("load metadata %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	if name == "" {
		base := filepath.Base(input)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	ctx = withLogger(ctx, c.Logger)
	opts := pipeline.Options{
		Name:    name,
		Seed:    seed,
		Layout:  cfg.LayoutOptions(),
		Refresh: refresh,
		Logger:  loggerFromContext(ctx),
	}

	spinner := newSpinnerWithContext(ctx, "Building diagram...")
	spinner.Start()

	result, err := runner.Execute(ctx, md, opts)
	if err != nil {
		spinner.StopWithError("Import failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".diagram.json"
	}

	if err := model.WriteDiagramFile(result.Diagram, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Imported %s", name)
	printFile(outputPath)
	printStats(result.Stats.TableCount, result.Stats.FieldCount, result.CacheInfo.NormalizeHit)
	printNewline()
	printNextStep("Export", "erdcanvas export "+outputPath+" -f svg")

	return nil
}
