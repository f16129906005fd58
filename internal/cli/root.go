package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/rpggio/moveit/internal/app"
	"github.com/rpggio/moveit/internal/config"
	"github.com/rpggio/moveit/internal/mcp"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/spf13/cobra"
)

// App holds what CLI commands need. Read commands work on the store directly
// and never start a timer, so they are safe next to a running server.
type App struct {
	Config config.Config
	Clock  clock.Clock
	Logger *slog.Logger

	// Serve runs the MCP server with cfg until ctx is done.
	Serve func(ctx context.Context, cfg config.Config) error
}

// NewRootCmd creates the top-level "moveit" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	if a.Clock == nil {
		a.Clock = clock.SystemClock{}
	}

	var dbPath string
	root := &cobra.Command{
		Use:           "moveit",
		Short:         "Sit/stand phase timer",
		Version:       mcp.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if dbPath != "" {
				a.Config.DB.Path = dbPath
			}
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides MOVEIT_DB_PATH)")

	root.AddCommand(
		newServeCmd(a),
		newStatsCmd(a),
		newHistoryCmd(a),
		newScheduleCmd(a),
		newResetStatsCmd(a),
	)

	return root
}

func (a *App) withStore(fn func(store *app.Store) error) error {
	store, err := app.OpenStore(a.Config.DB.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
