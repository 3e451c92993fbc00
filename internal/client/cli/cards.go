package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/tcgexchange/internal/client/collection"
	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
)

// cardCmd builds "want" and "give", which differ only by the target list.
func (c *CLI) cardCmd(use string, kind collection.Kind) *cobra.Command {
	var add bool

	cmd := &cobra.Command{
		Use:   use + " <SET-NUMBER> <count>",
		Short: fmt.Sprintf("Set how many copies of a card are in your %s list", kind),
		Long: fmt.Sprintf(`Set how many copies of a card are in your %s list.
A count of 0 removes the card. With --add the count is added to the current
one instead (negative values subtract, never below 0).`, kind),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid count %q", args[1])
			}
			id, err := models.NormalizeCardID(args[0])
			if err != nil {
				return err
			}

			if add {
				err = c.app.Store.Add(cmd.Context(), kind, id, n)
			} else {
				err = c.app.Store.Set(cmd.Context(), kind, id, n)
			}
			if err != nil {
				return err
			}

			wanted, giving := c.app.Store.Snapshot()
			current := wanted
			if kind == collection.Giving {
				current = giving
			}
			if current[id] == 0 {
				fmt.Fprintf(c.out, "%s removed from %s\n", id, kind)
			} else {
				fmt.Fprintf(c.out, "%s: %d in %s\n", id, current[id], kind)
			}
			if !c.app.Session.IsLoggedIn() {
				fmt.Fprintln(c.out, faint("Saved locally; sign in or sign up to share it."))
			}
			return nil
		},
		PostRunE: c.flushSync,
	}
	cmd.Flags().BoolVar(&add, "add", false, "add count to the current value")
	return cmd
}

func (c *CLI) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "list [wanted|giving]",
		Aliases:   []string{"ls"},
		Short:     "Show your card lists",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(collection.Wanted), string(collection.Giving)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := []collection.Kind{collection.Wanted, collection.Giving}
			if len(args) == 1 {
				kinds = []collection.Kind{collection.Kind(args[0])}
			}
			for i, k := range kinds {
				if i > 0 {
					fmt.Fprintln(c.out)
				}
				printCards(c.out, string(k), c.app.Store.Cards(k))
			}
			return nil
		},
	}
}

func (c *CLI) clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "clear <wanted|giving>",
		Short:     "Remove every card from one of your lists",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(collection.Wanted), string(collection.Giving)},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := collection.Kind(args[0])
			if err := c.app.Store.Replace(cmd.Context(), kind, nil); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%s list cleared\n", kind)
			return nil
		},
		PostRunE: c.flushSync,
	}
}
