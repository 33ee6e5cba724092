package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ModeTUI   = "tui"
	ModePlain = "plain"
)

type Config struct {
	Environment  string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevelName string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile      string `env:"LOG_FILE"` // empty: stderr in plain mode, discarded in tui mode
	ConsoleMode  string `env:"CONSOLE_MODE" envDefault:"tui"`
	RedisURL     string `env:"REDIS_URL"` // empty disables event broadcasting
	Seed         uint64 `env:"GAME_SEED"` // 0 picks a random seed

	LogLevel slog.Level // derived from LogLevelName
}

// Load reads an optional .env file (or the given files) and then the
// process environment.
func Load(dotenvFiles ...string) (*Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)
	cfg.ConsoleMode = strings.ToLower(strings.TrimSpace(cfg.ConsoleMode))
	switch cfg.ConsoleMode {
	case ModeTUI, ModePlain:
	default:
		return nil, fmt.Errorf("invalid CONSOLE_MODE %q: want %q or %q", cfg.ConsoleMode, ModeTUI, ModePlain)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
