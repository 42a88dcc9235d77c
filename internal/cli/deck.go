package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fretcards/pkg/collection"
)

// deckCommand creates the deck command group.
func (c *CLI) deckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Add cards to a deck or inspect a collection",
	}

	cmd.AddCommand(c.deckAddCommand())
	cmd.AddCommand(c.deckListCommand())

	return cmd
}

// deckAddCommand creates the "deck add" subcommand.
func (c *CLI) deckAddCommand() *cobra.Command {
	var (
		flags            deckFlags
		question, answer string
		tags             []string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add one basic card",
		Example: `  fretcards deck add --question "Open 6th string?" --answer E --tag fretboard`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := c.newDeck(ctx, flags, "")
			if err != nil {
				return err
			}
			if err := d.AddCard(ctx, question, answer, tags...); err != nil {
				return err
			}
			printSuccess("Added card to %s", StyleHighlight.Render(d.Name()))
			printDetail("Collection: %s", d.CollectionPath())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&question, "question", "q", "", "front of the card")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "back of the card")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "tag (repeatable)")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

// deckListCommand creates the "deck list" subcommand.
func (c *CLI) deckListCommand() *cobra.Command {
	var flags deckFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the decks of a collection with their note counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := c.newDeck(ctx, flags, "")
			if err != nil {
				return err
			}
			counts, err := deckCounts(ctx, d.CollectionPath())
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, StyleTitle.Render(d.CollectionPath()))
			if len(counts) == 0 {
				printInfo("No decks yet")
				return nil
			}
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			slices.Sort(names)
			for _, name := range names {
				printKeyValue(name, strconv.Itoa(counts[name])+" notes")
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// deckCounts maps each deck in the collection at path to its note count.
func deckCounts(ctx context.Context, path string) (map[string]int, error) {
	col, err := collection.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer col.Close()

	decks, err := col.Decks(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(decks))
	for name, id := range decks {
		notes, err := col.Notes(ctx, id)
		if err != nil {
			return nil, err
		}
		counts[name] = len(notes)
	}
	return counts, nil
}
