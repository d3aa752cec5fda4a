// Package config resolves runtime configuration from .env, the environment
// and command line flags, in that order of precedence (lowest first).
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvConfigDir    = "SETBEAST_CONFIG_DIR"
	EnvHistoryDB    = "SETBEAST_HISTORY_DB"
	EnvLogLevel     = "SETBEAST_LOG_LEVEL"
	EnvTickInterval = "SETBEAST_TICK_INTERVAL"
)

const (
	// DefaultHistoryFileName is the SQLite file inside the config directory.
	DefaultHistoryFileName = "history.db"
	// DefaultTickInterval drives the countdown.
	DefaultTickInterval = time.Second
)

// Config holds resolved settings for the process.
type Config struct {
	ConfigDir    string
	HistoryDB    string
	LogLevel     slog.Level
	TickInterval time.Duration
}

// Load reads .env (if present) and the environment. defaultConfigDir is used
// when SETBEAST_CONFIG_DIR is unset.
func Load(defaultConfigDir string) Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	} else {
		slog.Debug("loaded .env file")
	}

	config := Config{
		ConfigDir:    os.Getenv(EnvConfigDir),
		HistoryDB:    os.Getenv(EnvHistoryDB),
		LogLevel:     slog.LevelInfo,
		TickInterval: DefaultTickInterval,
	}
	if config.ConfigDir == "" {
		config.ConfigDir = defaultConfigDir
	}

	if raw := os.Getenv(EnvLogLevel); raw != "" {
		level, err := ParseLevel(raw)
		if err != nil {
			slog.Warn("invalid log level, using default", "key", EnvLogLevel, "value", raw, "default", config.LogLevel)
		} else {
			config.LogLevel = level
		}
	}

	if raw := os.Getenv(EnvTickInterval); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil || interval <= 0 {
			slog.Warn("invalid tick interval, using default", "key", EnvTickInterval, "value", raw, "default", DefaultTickInterval)
		} else {
			config.TickInterval = interval
		}
	}

	return config
}

// ParseFlags overrides config with command line flags from args.
func ParseFlags(config Config, args []string) (Config, error) {
	flags := flag.NewFlagSet("setbeast", flag.ContinueOnError)
	configDir := flags.String("config-dir", config.ConfigDir, "directory for settings and history (overrides $"+EnvConfigDir+")")
	historyDB := flags.String("history-db", config.HistoryDB, "workout history SQLite path (overrides $"+EnvHistoryDB+")")
	logLevel := flags.String("log-level", config.LogLevel.String(), "debug, info, warn or error (overrides $"+EnvLogLevel+")")
	tickInterval := flags.Duration("tick-interval", config.TickInterval, "countdown tick period (overrides $"+EnvTickInterval+")")

	if err := flags.Parse(args); err != nil {
		return config, err
	}

	level, err := ParseLevel(*logLevel)
	if err != nil {
		return config, err
	}
	if *tickInterval <= 0 {
		return config, fmt.Errorf("tick interval must be positive, got %s", *tickInterval)
	}

	config.ConfigDir = *configDir
	config.HistoryDB = *historyDB
	config.LogLevel = level
	config.TickInterval = *tickInterval
	return config, nil
}

// HistoryPath returns the history database path, defaulting to the config
// directory.
func (config Config) HistoryPath() string {
	if config.HistoryDB != "" {
		return config.HistoryDB
	}
	return filepath.Join(config.ConfigDir, DefaultHistoryFileName)
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}

// NewLogger builds the process logger.
func NewLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
