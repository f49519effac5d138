package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/erdcanvas/erdcanvas/pkg/session"
)

// tokenCommand creates the token command with subcommands.
func (c *CLI) tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the sharing service token",
		Long: `Manage the token used to authenticate against the sharing service.

The token is stored with owner-only permissions under
$XDG_CONFIG_HOME/erdcanvas/`,
	}

	cmd.AddCommand(c.tokenSetCommand())
	cmd.AddCommand(c.tokenShowCommand())
	cmd.AddCommand(c.tokenClearCommand())

	return cmd
}

// tokenSetCommand creates the "token set" subcommand.
func (c *CLI) tokenSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set [token]",
		Short: "Store an API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "" {
				return fmt.Errorf("token must not be empty")
			}

			store, err := session.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open token store: %w", err)
			}
			if err := store.Set(cmd.Context(), session.Token{Value: args[0]}); err != nil {
				return fmt.Errorf("store token: %w", err)
			}

			printSuccess("Token stored")
			printDetail("File: %s", store.Path())
			return nil
		},
	}
}

// tokenShowCommand creates the "token show" subcommand.
func (c *CLI) tokenShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show whether a token is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open token store: %w", err)
			}

			tok, err := store.Get(cmd.Context())
			if err != nil {
				if errors.Is(err, session.ErrNoToken) {
					printInfo("No token stored")
					printDetail("Run 'erdcanvas token set <token>' to add one")
					return nil
				}
				return fmt.Errorf("read token: %w", err)
			}

			printSuccess("Token present")
			printKeyValue("Token", maskToken(tok.Value))
			printKeyValue("Stored", tok.CreatedAt.Format("Jan 2, 2006"))
			printKeyValue("File", store.Path())
			return nil
		},
	}
}

// tokenClearCommand creates the "token clear" subcommand.
func (c *CLI) tokenClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewFileStore("")
			if err != nil {
				return fmt.Errorf("open token store: %w", err)
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			printSuccess("Token removed")
			return nil
		},
	}
}

// maskToken keeps the first and last few characters visible.
func maskToken(v string) string {
	if len(v) <= 8 {
		return "****"
	}
	return v[:4] + "..." + v[len(v)-4:]
}
