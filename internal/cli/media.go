package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// mediaCommand creates the media command group.
func (c *CLI) mediaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Manage files in the deck's media store",
	}

	cmd.AddCommand(c.mediaAddCommand())

	return cmd
}

// mediaAddCommand creates the "media add" subcommand. The stored name is
// printed alone on stdout so scripts can capture it.
func (c *CLI) mediaAddCommand() *cobra.Command {
	var (
		flags deckFlags
		name  string
	)

	cmd := &cobra.Command{
		Use:   "add FILE",
		Short: "Copy a file into the media store, renaming it if the name is taken",
		Example: `  fretcards media add diagrams/nut.png
  fretcards media add nut.png --name open-strings.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			d, err := c.newDeck(ctx, flags, "")
			if err != nil {
				return err
			}
			stored, err := d.SaveMedia(ctx, args[0], name)
			if err != nil {
				return err
			}
			logger.Info("Stored media", "file", args[0], "in", d.Media().Location())
			fmt.Fprintln(stdout, stored)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&name, "name", "", "name in the store (default: the file's base name)")

	return cmd
}
