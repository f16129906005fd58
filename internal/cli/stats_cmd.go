package cli

import (
	"fmt"

	"github.com/rpggio/moveit/internal/app"
	"github.com/rpggio/moveit/internal/cli/formatter"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *App) *cobra.Command {
	var period string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show sitting and standing statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := stats.ParsePeriod(period)
			if err != nil {
				return fmt.Errorf("%w: %q (use today, week or month)", err, period)
			}

			return a.withStore(func(store *app.Store) error {
				days, err := store.StatsService(a.Clock, a.Logger).ForPeriod(cmd.Context(), p)
				if err != nil {
					return err
				}
				sum := stats.Summarize(p, days)

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), struct {
						Summary stats.Summary           `json:"summary"`
						Daily   []stats.DailyStatistics `json:"daily"`
					}{sum, days})
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(sum, days))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&period, "period", "p", "today", "Reporting window: today, week or month")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
