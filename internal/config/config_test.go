package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/moveit/internal/domain/schedule"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MOVEIT_CONFIG_PATH", "MOVEIT_SERVER_HOST", "MOVEIT_SERVER_PORT",
		"MOVEIT_DB_PATH", "MOVEIT_LOG_LEVEL", "MOVEIT_LOG_PATH", "MOVEIT_LOG_MAX_BYTES",
		"MOVEIT_TRANSPORT", "MOVEIT_AUTH_TOKEN", "MOVEIT_NOTIFICATIONS_PERMITTED",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.Equal(t, "moveit.db", cfg.DB.Path)
	require.True(t, cfg.Notifications.Permitted)
	require.Equal(t, int64(DefaultLogMaxBytes), cfg.Log.MaxBytes)
	require.Equal(t, schedule.Default(), cfg.Schedule.Schedule())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "moveit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db:
  path: /tmp/file.db
log:
  level: debug
schedule:
  sitting: 45m
  standing: 10m
  ask_before_transition: false
`), 0o644))

	t.Setenv("MOVEIT_CONFIG_PATH", path)
	t.Setenv("MOVEIT_DB_PATH", "/tmp/env.db")
	t.Setenv("MOVEIT_TRANSPORT", "http")
	t.Setenv("MOVEIT_SERVER_PORT", "9090")
	t.Setenv("MOVEIT_AUTH_TOKEN", "secret")
	t.Setenv("MOVEIT_NOTIFICATIONS_PERMITTED", "false")
	t.Setenv("MOVEIT_LOG_MAX_BYTES", "1048576")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/env.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "secret", cfg.Auth.Token)
	require.False(t, cfg.Notifications.Permitted)
	require.Equal(t, int64(1<<20), cfg.Log.MaxBytes)

	s := cfg.Schedule.Schedule()
	require.Equal(t, 45*time.Minute, s.SittingDuration)
	require.Equal(t, 10*time.Minute, s.StandingDuration)
	require.False(t, s.AskBeforeTransition)
	require.Equal(t, schedule.DefaultSnoozeDuration, s.SnoozeDuration)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("MOVEIT_SERVER_PORT", "eighty")
	_, err := Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("MOVEIT_TRANSPORT", "carrier-pigeon")
	_, err = Load()
	require.Error(t, err)

	clearEnv(t)
	t.Setenv("MOVEIT_LOG_MAX_BYTES", "0")
	_, err = Load()
	require.Error(t, err)

	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schedule:\n  sitting: 0s\n"), 0o644))
	t.Setenv("MOVEIT_CONFIG_PATH", path)
	_, err = Load()
	require.ErrorIs(t, err, schedule.ErrInvalidSchedule)
}
