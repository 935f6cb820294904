package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/danispp/Task-Management/internal/config"
)

// newLogger writes JSON in production and a console format everywhere else.
func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var log zerolog.Logger
	if cfg.IsProduction() {
		log = zerolog.New(os.Stderr)
	} else {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return log.Level(level).With().Timestamp().Str("service", "taskman").Logger()
}

// newBootLogger is used before configuration is loaded.
func newBootLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
