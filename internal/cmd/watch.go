package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func NewWatchCmd(app *TflStatusApp) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch <line>",
		Short: "Re-query a line on an interval, repainting the same view",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}

			ctx := cmd.Context()
			name := strings.Join(args, " ")

			pending, err := app.showLine(ctx, name)
			if err != nil {
				return err
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return nil

				case <-pending:
					pending = nil

				case <-ticker.C:
					if pending != nil {
						app.logger.WithField("line", name).Debug("previous query still in flight, skipping tick")
						continue
					}
					pending, err = app.showLine(ctx, name)
					if err != nil {
						return err
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 30*time.Second, "Time between queries")
	return cmd
}
