package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newListCommand(a *app) *cobra.Command {
	var expand []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every shortened URL with a click summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			d, err := a.newDashboard()
			if err != nil {
				return err
			}

			if err := d.Load(ctx); err != nil {
				return err
			}
			for _, code := range expand {
				if _, err := d.Toggle(ctx, code); err != nil {
					return fmt.Errorf("expand %s: %w", code, err)
				}
			}

			now := time.Now()
			out := newStyles(a.stdout)
			view := d.View(ctx)
			out.dashboard(a.stdout, view, now)
			for _, c := range view.Cards {
				if c.Expanded && c.Stats != nil {
					fmt.Fprintln(a.stdout)
					out.statistics(a.stdout, *c.Stats, now)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&expand, "expand", nil, "short codes to show click details for")
	return cmd
}

func newStatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats CODE",
		Short: "Show click details for one short code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.newDashboard()
			if err != nil {
				return err
			}

			stats, err := d.Statistics(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newStyles(a.stdout).statistics(a.stdout, stats, time.Now())
			return nil
		},
	}
}
