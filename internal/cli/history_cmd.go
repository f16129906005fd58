package cli

import (
	"errors"
	"fmt"

	"github.com/rpggio/moveit/internal/app"
	"github.com/rpggio/moveit/internal/cli/formatter"
	"github.com/rpggio/moveit/internal/domain/session"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *App) *cobra.Command {
	var days int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List sit/stand sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return errors.New("--days must be at least 1")
			}

			return a.withStore(func(store *app.Store) error {
				records, err := store.Sessions.Load(cmd.Context())
				if err != nil {
					return fmt.Errorf("load sessions: %w", err)
				}

				since := clock.StartOfDay(a.Clock.Now()).AddDate(0, 0, -(days - 1))
				recent := make([]session.Record, 0, len(records))
				for _, r := range records {
					if !r.StartDate.Before(since) {
						recent = append(recent, r)
					}
				}

				if asJSON {
					return writeJSON(cmd.OutOrStdout(), recent)
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Header("Sessions"))
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessions(recent))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 1, "Number of days to include, today counting as one")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
