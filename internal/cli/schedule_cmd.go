package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rpggio/moveit/internal/app"
	"github.com/rpggio/moveit/internal/cli/formatter"
	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/rpggio/moveit/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newScheduleCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show or change the sit/stand schedule",
	}

	cmd.AddCommand(
		newScheduleShowCmd(a),
		newScheduleSetCmd(a),
	)

	return cmd
}

// loadSchedule falls back to the configured seed before the first run.
func (a *App) loadSchedule(ctx context.Context, store *app.Store) (schedule.Schedule, error) {
	s, err := store.Schedules.Load(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return a.Config.Schedule.Schedule(), nil
	}
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("load schedule: %w", err)
	}
	return *s, nil
}

func newScheduleShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(store *app.Store) error {
				s, err := a.loadSchedule(cmd.Context(), store)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(s))
				return nil
			})
		},
	}
}

func newScheduleSetCmd(a *App) *cobra.Command {
	var sitting, standing, snooze time.Duration
	var notifications, sound, autoStart, ask bool
	var workStart, workEnd string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change schedule values; unset flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !anyChanged(flags, "sitting", "standing", "snooze", "notifications", "sound", "auto-start", "ask", "work-start", "work-end") {
				return errors.New("nothing to change; see --help for the available flags")
			}

			return a.withStore(func(store *app.Store) error {
				s, err := a.loadSchedule(cmd.Context(), store)
				if err != nil {
					return err
				}

				if flags.Changed("sitting") {
					s.SittingDuration = sitting
				}
				if flags.Changed("standing") {
					s.StandingDuration = standing
				}
				if flags.Changed("snooze") {
					s.SnoozeDuration = snooze
				}
				if flags.Changed("notifications") {
					s.NotificationsEnabled = notifications
				}
				if flags.Changed("sound") {
					s.SoundEnabled = sound
				}
				if flags.Changed("auto-start") {
					s.AutoStart = autoStart
				}
				if flags.Changed("ask") {
					s.AskBeforeTransition = ask
				}
				if flags.Changed("work-start") {
					s.WorkStartTime = workStart
				}
				if flags.Changed("work-end") {
					s.WorkEndTime = workEnd
				}

				if err := s.Validate(); err != nil {
					return err
				}
				if err := store.Schedules.Save(cmd.Context(), s); err != nil {
					return fmt.Errorf("save schedule: %w", err)
				}

				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSchedule(s))
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("A running server picks this up on its next start; use the update_schedule tool to change it live."))
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&sitting, "sitting", 0, "Sitting phase length, e.g. 30m")
	cmd.Flags().DurationVar(&standing, "standing", 0, "Standing phase length, e.g. 15m")
	cmd.Flags().DurationVar(&snooze, "snooze", 0, "Snooze length, e.g. 5m")
	cmd.Flags().BoolVar(&notifications, "notifications", true, "Deliver reminders and prompts")
	cmd.Flags().BoolVar(&sound, "sound", true, "Play a sound with prompts")
	cmd.Flags().BoolVar(&autoStart, "auto-start", false, "Start sitting when the server starts")
	cmd.Flags().BoolVar(&ask, "ask", true, "Ask before switching phase")
	cmd.Flags().StringVar(&workStart, "work-start", "", "Start of the work day, HH:MM")
	cmd.Flags().StringVar(&workEnd, "work-end", "", "End of the work day, HH:MM")

	return cmd
}

func anyChanged(flags *pflag.FlagSet, names ...string) bool {
	for _, name := range names {
		if flags.Changed(name) {
			return true
		}
	}
	return false
}
