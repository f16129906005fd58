package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rpggio/moveit/internal/domain/schedule"
	"gopkg.in/yaml.v3"
)

// Config defines application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	DB            DBConfig            `yaml:"db"`
	Log           LogConfig           `yaml:"log"`
	Transport     TransportConfig     `yaml:"transport"`
	Auth          AuthConfig          `yaml:"auth"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls logging. When Path is set the file is cut back to its
// most recent part once it grows past MaxBytes.
type LogConfig struct {
	Level    string `yaml:"level"`
	Path     string `yaml:"path"`
	MaxBytes int64  `yaml:"max_bytes"`
}

// DefaultLogMaxBytes caps the log file when nothing else is configured.
const DefaultLogMaxBytes = 6 * 1024 * 1024

// TransportConfig selects how the MCP server is exposed: "stdio" or "http".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// AuthConfig enables bearer token checks on the HTTP transport when Token is set.
type AuthConfig struct {
	Token string `yaml:"token"`
}

type NotificationsConfig struct {
	Permitted bool `yaml:"permitted"`
}

// ScheduleConfig seeds the schedule stored on first run. Later changes go
// through the stored schedule, not this file.
type ScheduleConfig struct {
	Sitting             time.Duration `yaml:"sitting"`
	Standing            time.Duration `yaml:"standing"`
	Snooze              time.Duration `yaml:"snooze"`
	Notifications       bool          `yaml:"notifications"`
	Sound               bool          `yaml:"sound"`
	AutoStart           bool          `yaml:"auto_start"`
	AskBeforeTransition bool          `yaml:"ask_before_transition"`
	WorkStart           string        `yaml:"work_start"`
	WorkEnd             string        `yaml:"work_end"`
}

// Schedule converts the seed into a domain schedule.
func (s ScheduleConfig) Schedule() schedule.Schedule {
	return schedule.Schedule{
		SittingDuration:      s.Sitting,
		StandingDuration:     s.Standing,
		NotificationsEnabled: s.Notifications,
		SoundEnabled:         s.Sound,
		AutoStart:            s.AutoStart,
		AskBeforeTransition:  s.AskBeforeTransition,
		SnoozeDuration:       s.Snooze,
		WorkStartTime:        s.WorkStart,
		WorkEndTime:          s.WorkEnd,
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	def := schedule.Default()
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "moveit.db",
		},
		Log: LogConfig{
			Level:    "info",
			MaxBytes: DefaultLogMaxBytes,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		Notifications: NotificationsConfig{
			Permitted: true,
		},
		Schedule: ScheduleConfig{
			Sitting:             def.SittingDuration,
			Standing:            def.StandingDuration,
			Snooze:              def.SnoozeDuration,
			Notifications:       def.NotificationsEnabled,
			Sound:               def.SoundEnabled,
			AutoStart:           def.AutoStart,
			AskBeforeTransition: def.AskBeforeTransition,
			WorkStart:           def.WorkStartTime,
			WorkEnd:             def.WorkEndTime,
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("MOVEIT_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("MOVEIT_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("MOVEIT_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MOVEIT_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("MOVEIT_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("MOVEIT_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("MOVEIT_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if maxStr := os.Getenv("MOVEIT_LOG_MAX_BYTES"); maxStr != "" {
		maxBytes, err := strconv.ParseInt(maxStr, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MOVEIT_LOG_MAX_BYTES: %w", err)
		}
		cfg.Log.MaxBytes = maxBytes
	}
	if mode := os.Getenv("MOVEIT_TRANSPORT"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if token := os.Getenv("MOVEIT_AUTH_TOKEN"); token != "" {
		cfg.Auth.Token = token
	}
	if permitted := os.Getenv("MOVEIT_NOTIFICATIONS_PERMITTED"); permitted != "" {
		value, err := strconv.ParseBool(permitted)
		if err != nil {
			return Config{}, fmt.Errorf("invalid MOVEIT_NOTIFICATIONS_PERMITTED: %w", err)
		}
		cfg.Notifications.Permitted = value
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("invalid transport mode %q", c.Transport.Mode)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Log.MaxBytes <= 0 {
		return fmt.Errorf("invalid log max bytes %d", c.Log.MaxBytes)
	}
	if err := c.Schedule.Schedule().Validate(); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
