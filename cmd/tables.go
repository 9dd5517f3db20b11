package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/smazurov/ledintent/internal/intent"
	"github.com/smazurov/ledintent/internal/pattern"
	"github.com/spf13/cobra"
)

// CreateTablesCmd creates the tables command.
func CreateTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "Print supported intents, colors and moods",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printTables(cmd.OutOrStdout())
		},
	}
}

func printTables(out io.Writer) {
	fmt.Fprintln(out, bold("Intents"))
	for _, name := range intent.Names() {
		fmt.Fprintf(out, "  %s\n", name)
	}

	printTable(out, "Colors", intent.Colors())
	printTable(out, "Moods", intent.Moods())
}

func printTable(out io.Writer, title string, table map[string]pattern.Pattern) {
	fmt.Fprintf(out, "\n%s\n", bold(title))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range intent.SortedKeys(table) {
		p := table[name]
		fmt.Fprintf(w, "  %s\t%s\t%s\n", name, p, renderPattern(p))
	}
	w.Flush()
}
