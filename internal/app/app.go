package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/moveit/internal/config"
	"github.com/rpggio/moveit/internal/coordinator"
	"github.com/rpggio/moveit/internal/domain/session"
	"github.com/rpggio/moveit/internal/domain/stats"
	"github.com/rpggio/moveit/internal/mcp"
	"github.com/rpggio/moveit/internal/notify"
	"github.com/rpggio/moveit/internal/platform/clock"
	"github.com/rpggio/moveit/internal/sqlite"
	"github.com/rpggio/moveit/internal/transport"
)

// Store bundles the database and its repositories.
type Store struct {
	DB          *sqlite.DB
	Schedules   *sqlite.ScheduleRepository
	Sessions    *sqlite.SessionRepository
	Transitions *sqlite.TransitionRepository
	Daily       *sqlite.DailyRepository
}

// OpenStore opens the database at path and applies migrations.
func OpenStore(path string) (*Store, error) {
	db, err := sqlite.New(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{
		DB:          db,
		Schedules:   sqlite.NewScheduleRepository(db),
		Sessions:    sqlite.NewSessionRepository(db),
		Transitions: sqlite.NewTransitionRepository(db),
		Daily:       sqlite.NewDailyRepository(db),
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// SessionService builds a session log over the store.
func (s *Store) SessionService(clk clock.Clock, logger *slog.Logger) *session.Service {
	return session.NewService(s.Sessions, clk, logger)
}

// StatsService builds a statistics aggregator over the store.
func (s *Store) StatsService(clk clock.Clock, logger *slog.Logger) *stats.Service {
	return stats.NewService(s.Transitions, s.Daily, clk, logger)
}

// App is a running timer with its notifier and MCP server.
type App struct {
	Store       *Store
	Coordinator *coordinator.Coordinator
	Notifier    *notify.Service
	MCP         *sdkmcp.Server

	logger *slog.Logger
}

// New wires the timer over store. The notifier answers prompts through the
// coordinator.
func New(ctx context.Context, cfg config.Config, store *Store, clk clock.Clock, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if clk == nil {
		clk = clock.SystemClock{}
	}

	notifier := notify.NewService(clk, cfg.Notifications.Permitted, logger.With("component", "notify"))
	coord := coordinator.New(ctx, coordinator.Deps{
		Clock:     clk,
		Schedules: store.Schedules,
		Sessions:  store.SessionService(clk, logger.With("component", "sessions")),
		Stats:     store.StatsService(clk, logger.With("component", "stats")),
		Notifier:  notifier,
		Fallback:  cfg.Schedule.Schedule(),
	}, logger.With("component", "coordinator"))
	notifier.SetResponder(coord)

	server := mcp.NewServer(mcp.Config{
		Timer:         coord,
		Notifications: notifier,
		Logger:        logger,
	})

	return &App{
		Store:       store,
		Coordinator: coord,
		Notifier:    notifier,
		MCP:         server,
		logger:      logger,
	}
}

// HTTPHandler serves /mcp and /health; /mcp requires token when set.
func (a *App) HTTPHandler(token string) http.Handler {
	var auth func(http.Handler) http.Handler
	if token != "" {
		auth = transport.AuthMiddleware(transport.StaticToken(token))
	} else {
		a.logger.Warn("http transport running without authentication")
	}
	return transport.NewServer(transport.NewMCPHandler(a.MCP), auth)
}

// Close ends the open session and transition.
func (a *App) Close(ctx context.Context) {
	a.Notifier.CancelAllNotifications()
	a.Coordinator.Close(ctx)
}
