package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
)

var (
	faint  = color.New(color.Faint).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyanB  = color.New(color.FgCyan, color.Bold).SprintFunc()
)

func unreadMark() string {
	return cyanB("●")
}

// PrintError writes the user-facing reason of err.
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, red("error:"), Reason(err))
}

func printCards(w io.Writer, title string, rows []models.CardCount) {
	fmt.Fprintf(w, "%s (%d)\n", bold(title), len(rows))
	if len(rows) == 0 {
		fmt.Fprintln(w, faint("  nothing yet"))
		return
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-10s x%-3d", r.ID, r.Count)
		if r.Rarity != "" {
			fmt.Fprintf(w, " %s", yellow(r.Rarity))
		}
		if len(r.Packs) > 0 {
			fmt.Fprintf(w, " %s", faint(strings.Join(r.Packs, ", ")))
		}
		fmt.Fprintln(w)
	}
}

func check(ok bool) string {
	if ok {
		return green("yes")
	}
	return red("no")
}
