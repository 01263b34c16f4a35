// Package logging builds the CLI's zerolog logger and hands it to the engine.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/Graylog2/go-gelf/gelf"
	"github.com/go-logr/zerologr"
	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/nathanieltooley/gokemon-sim/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", level, err)
	}
	return parsed, nil
}

// New creates a logger writing to the rolling log file and, when enabled, to stderr.
func New(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	writers := make([]io.Writer, 0, 2)
	if cfg.Console {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:     os.Stderr,
			NoColor: !term.IsTerminal(int(os.Stderr.Fd())),
		})
	}
	if cfg.Dir != "" {
		rolling, err := NewRollingFileWriter(cfg.Dir, cfg.File)
		if err != nil {
			return zerolog.Nop(), err
		}
		writers = append(writers, zerolog.ConsoleWriter{Out: rolling, NoColor: true})
	}
	if cfg.Graylog != "" {
		graylog, err := gelf.NewWriter(cfg.Graylog)
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("graylog writer for %s: %w", cfg.Graylog, err)
		}
		graylog.Facility = "golurk"
		writers = append(writers, graylog)
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(level), nil
}

// Setup installs logger as the global zerolog logger and as the engine's logr logger.
// Trace enables the engine's per-event output.
func Setup(logger zerolog.Logger) {
	log.Logger = logger

	maxV := 1
	if logger.GetLevel() <= zerolog.TraceLevel {
		maxV = 2
	}
	zerologr.SetMaxV(maxV)
	golurk.SetInternalLogger(zerologr.New(&logger))
}
