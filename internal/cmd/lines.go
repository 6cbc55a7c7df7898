package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewLinesCmd(app *TflStatusApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines",
		Short: "List the lines that can be queried",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "LINE\tID")
			for _, entry := range app.registry.Entries() {
				fmt.Fprintf(writer, "%s\t%s\n", entry.Name, entry.ID)
			}
			return writer.Flush()
		},
	}

	return cmd
}
