package cli

import (
	"errors"
	"fmt"

	"github.com/rpggio/moveit/internal/app"
	"github.com/spf13/cobra"
)

func newResetStatsCmd(a *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset-stats",
		Short: "Delete all statistics and session history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset-stats deletes every statistic and session; pass --yes to confirm")
			}

			return a.withStore(func(store *app.Store) error {
				store.StatsService(a.Clock, a.Logger).ResetAllStatistics(cmd.Context())
				if err := store.Sessions.Save(cmd.Context(), nil); err != nil {
					return fmt.Errorf("clear sessions: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Statistics and session history cleared.")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
