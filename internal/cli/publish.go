package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erdcanvas/erdcanvas/pkg/model"
	"github.com/erdcanvas/erdcanvas/pkg/remote"
	"github.com/erdcanvas/erdcanvas/pkg/session"
)

// publishCommand creates the publish command for sharing a diagram.
func (c *CLI) publishCommand() *cobra.Command {
	var endpoint string

	cmd := &cobra.Command{
		Use:   "publish [diagram.json]",
		Short: "Upload a diagram to a sharing service",
		Long: `Upload a diagram to a sharing service.

The diagram document is posted to the configured endpoint and the shareable
URL is printed. Set the endpoint in the config file under [remote] or pass
--endpoint; authenticate once with 'erdcanvas token set'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPublish(cmd.Context(), args[0], endpoint)
		},
	}

	cmd.Flags().StringVar(&endpoint, "endpoint", "", "sharing service URL (overrides config)")

	return cmd
}

func (c *CLI) runPublish(ctx context.Context, input, endpoint string) error {
	d, err := model.ReadDiagramFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if endpoint == "" {
		endpoint = cfg.Remote.Endpoint
	}
	if endpoint == "" {
		printError("No endpoint configured")
		printDetail("Set remote.endpoint in the config file or pass --endpoint")
		return fmt.Errorf("no publish endpoint")
	}

	store, err := session.NewFileStore("")
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	tok, err := store.Get(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoToken) {
			printError("Not authenticated")
			printDetail("Run 'erdcanvas token set <token>' first")
			return fmt.Errorf("no token stored")
		}
		return fmt.Errorf("read token: %w", err)
	}

	client, err := remote.NewClient(endpoint, tok.Value, cfg.RemoteTimeout())
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Publishing diagram...")
	spinner.Start()

	result, err := client.Publish(ctx, d)
	if err != nil {
		spinner.StopWithError("Publish failed")
		return err
	}
	spinner.Stop()

	printSuccess("Published %s", d.Name)
	printKeyValue("ID", result.ID)
	printKeyValue("URL", StyleLink.Render(result.URL))

	return nil
}
