package cli

import (
	"bufio"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/tcgexchange/internal/client/app"
	"github.com/dmitrijs2005/tcgexchange/internal/client/collection"
)

// CLI carries what every command needs: the assembled client and the
// terminal streams.
type CLI struct {
	app *app.App
	in  *bufio.Reader
	out io.Writer
}

// NewRootCmd builds the command tree over a.
func NewRootCmd(a *app.App, in io.Reader, out io.Writer) *cobra.Command {
	c := &CLI{app: a, in: bufio.NewReader(in), out: out}

	root := &cobra.Command{
		Use:   "tcgx",
		Short: "Trade Pokémon TCG Pocket cards with other players",
		Long: `tcgx keeps your wanted and giving card lists, syncs them with the
exchange server and shows the trades it proposes.

Global flags (read before the command):
  -a URL      server base URL
  -d DIR      local data directory
  -s SECONDS  sync delay
  -t SECONDS  request timeout
  -c FILE     JSON config file
  -catalog F  card catalog JSON file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(out)

	root.AddCommand(
		c.signInCmd(),
		c.signUpCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.refreshCmd(),
		c.forgotCmd(),
		c.cardCmd("want", collection.Wanted),
		c.cardCmd("give", collection.Giving),
		c.listCmd(),
		c.clearCmd(),
		c.proposalsCmd(),
		c.discussionsCmd(),
		c.messagesCmd(),
		c.sendCmd(),
		c.profileCmd(),
	)
	return root
}

// flushSync sends a pending debounced update now. Used as PostRunE of the
// commands that edit state.
func (c *CLI) flushSync(_ *cobra.Command, _ []string) error {
	c.app.Sync.Flush()
	return nil
}
