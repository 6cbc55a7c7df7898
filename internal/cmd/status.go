package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func NewStatusCmd(app *TflStatusApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status <line>",
		Short:   "Show the status of one line without prompting",
		Example: `  tfl-status status Central
  tfl-status status "Hammersmith & City"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.showLine(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return <-result
		},
	}

	return cmd
}
