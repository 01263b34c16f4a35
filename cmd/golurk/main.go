package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/nathanieltooley/gokemon-sim/internal/config"
	"github.com/nathanieltooley/gokemon-sim/internal/logging"
	"github.com/nathanieltooley/gokemon-sim/internal/replay"
	"github.com/nathanieltooley/gokemon-sim/internal/telemetry"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const usage = `usage: golurk <command> [flags]

commands:
  run              read battle commands from stdin (or --in) and print the battle stream
  play             self play a battle, every side taking its default choice
  replay list      list stored replays
  replay show ID   print the input and output log of a replay
  replay verify    re-run a replay (or --all of them) and compare the output
  team list        list saved teams
  team random NAME generate and save a random team
`

// app is everything a command needs once flags and config are settled.
type app struct {
	cfg    config.Config
	logger zerolog.Logger
	dex    golurk.Dex
	out    io.Writer
}

func commonFlags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "path to a golurk.json config file")
	flags.String("log.level", "info", "log level: trace, debug, info, warn, error")
	flags.String("dataDir", "", "directory with species.csv and moves.json overrides")
	return flags
}

func setup(flags *pflag.FlagSet) (*app, func(), error) {
	configPath, _ := flags.GetString("config")
	cfg, err := config.Load(configPath, flags)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	logging.Setup(logger)

	metricsOut := io.Writer(os.Stderr)
	var metricsFile *os.File
	if cfg.Metrics.Enabled && cfg.Metrics.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Metrics.File), 0o750); err != nil {
			return nil, nil, err
		}
		metricsFile, err = os.OpenFile(cfg.Metrics.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		metricsOut = metricsFile
	}
	provider, err := telemetry.New(telemetry.Config{
		Enabled:     cfg.Metrics.Enabled,
		ServiceName: "golurk",
		Interval:    cfg.Metrics.Interval,
		Writer:      metricsOut,
	})
	if err != nil {
		return nil, nil, err
	}

	var dex golurk.Dex = golurk.DefaultDex()
	if cfg.DataDir != "" {
		loaded, err := golurk.DefaultLoader(os.DirFS(cfg.DataDir), ".")
		if err != nil {
			return nil, nil, fmt.Errorf("loading data from %s: %w", cfg.DataDir, err)
		}
		dex = loaded
	}

	cleanup := func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Err(err).Msg("error occurred while flushing metrics")
		}
		if metricsFile != nil {
			metricsFile.Close()
		}
	}
	return &app{cfg: cfg, logger: logger, dex: dex, out: os.Stdout}, cleanup, nil
}

func (a *app) openReplays() (*replay.Store, error) {
	logger := a.logger.With().Str("location", "replay").Logger()
	if a.cfg.Replay.Driver == "postgres" {
		return replay.OpenDriver("postgres", a.cfg.Replay.DSN, logger)
	}
	if err := os.MkdirAll(filepath.Dir(a.cfg.Replay.Path), 0o750); err != nil {
		return nil, err
	}
	return replay.Open(a.cfg.Replay.Path, logger)
}

// saveReplay stores b when replays are enabled. Failing to save is logged, not fatal.
func (a *app) saveReplay(ctx context.Context, b *golurk.Battle) {
	if !a.cfg.Replay.Enabled || b == nil {
		return
	}
	store, err := a.openReplays()
	if err != nil {
		a.logger.Err(err).Msg("error occurred while opening the replay store")
		return
	}
	defer store.Close()

	saved, err := store.Save(ctx, b)
	if err != nil {
		a.logger.Err(err).Msg("error occurred while saving the replay")
		return
	}
	fmt.Fprintf(os.Stderr, "saved replay %s\n", saved.ID)
}

func main() {
	args := os.Args[1:]
	if len(args) < 1 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "run":
		err = runCmd(args[1:])
	case "play":
		err = playCmd(args[1:])
	case "replay":
		err = replayCmd(args[1:])
	case "team":
		err = teamCmd(args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}

	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "golurk:", err)
		os.Exit(1)
	}
}
