package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/nathanieltooley/gokemon-sim/internal/replay"
	"github.com/samber/lo"
)

func replayCmd(args []string) error {
	if len(args) < 1 {
		return errors.New("replay needs a subcommand: list, show or verify")
	}

	flags := commonFlags("replay " + args[0])
	limit := flags.Int("n", 20, "number of replays to list, 0 for all")
	all := flags.Bool("all", false, "verify every stored replay")
	workers := flags.Int("workers", runtime.NumCPU(), "replays verified at the same time")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	a, cleanup, err := setup(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	store, err := a.openReplays()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	switch args[0] {
	case "list":
		replays, err := store.List(ctx, *limit)
		if err != nil {
			return err
		}
		for _, r := range replays {
			result := "winner " + r.Winner
			switch {
			case r.Crashed:
				result = "crashed"
			case r.Winner == "":
				result = "tie or unfinished"
			}
			sides, err := r.SideSummaries()
			if err != nil {
				return err
			}
			players := strings.Join(lo.Map(sides, func(s replay.SideSummary, _ int) string { return s.Name }), " vs ")
			fmt.Fprintf(a.out, "%s  %-24s %-24s %3d turns  %-20s %s\n",
				r.ID, r.Format, players, r.Turns, result, humanize.Time(r.CreatedAt))
		}
		return nil

	case "show":
		r, err := a.replayArg(ctx, store, flags.Args())
		if err != nil {
			return err
		}
		for _, line := range r.InputLines() {
			fmt.Fprintln(a.out, line)
		}
		fmt.Fprintln(a.out)
		for _, line := range r.OutputLines() {
			fmt.Fprintln(a.out, line)
		}
		return nil

	case "verify":
		if *all {
			failures, err := store.VerifyAll(ctx, a.dex, *workers)
			for id, failure := range failures {
				fmt.Fprintf(a.out, "%s  FAIL  %v\n", id, failure)
			}
			if err != nil {
				return err
			}
			if len(failures) > 0 {
				return fmt.Errorf("%s failed verification", humanize.Comma(int64(len(failures))))
			}
			fmt.Fprintln(a.out, "all replays verified")
			return nil
		}

		r, err := a.replayArg(ctx, store, flags.Args())
		if err != nil {
			return err
		}
		if err := replay.Verify(a.dex, r); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s  OK\n", r.ID)
		return nil
	}
	return fmt.Errorf("unknown replay subcommand %q", args[0])
}

func (a *app) replayArg(ctx context.Context, store *replay.Store, args []string) (replay.Replay, error) {
	if len(args) != 1 {
		return replay.Replay{}, errors.New("expected one replay id")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return replay.Replay{}, fmt.Errorf("replay id %q: %w", args[0], err)
	}
	return store.Get(ctx, id)
}
