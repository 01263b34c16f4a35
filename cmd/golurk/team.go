package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/nathanieltooley/gokemon-sim/internal/teamfs"
)

func teamCmd(args []string) error {
	if len(args) < 1 {
		return errors.New("team needs a subcommand: list or random")
	}

	flags := commonFlags("team " + args[0])
	size := flags.Int("size", 6, "size of the generated team")
	seed := flags.Uint64("seed", 0, "seed for the generated team, time based when 0")
	if err := flags.Parse(args[1:]); err != nil {
		return err
	}

	a, cleanup, err := setup(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	switch args[0] {
	case "list":
		teams, err := teamfs.LoadTeamMap(a.cfg.TeamsFile)
		if err != nil {
			return err
		}
		names, _ := teamfs.TeamNames(a.cfg.TeamsFile)
		for _, name := range names {
			species := make([]string, 0, len(teams[name]))
			for _, set := range teams[name] {
				species = append(species, set.Species)
			}
			fmt.Fprintf(a.out, "%-16s %s\n", name, strings.Join(species, ", "))
		}
		return nil

	case "random":
		if flags.NArg() != 1 {
			return errors.New("expected a team name")
		}
		dex, ok := a.dex.(*golurk.MemoryDex)
		if !ok {
			return errors.New("random teams need an in-memory dex")
		}

		rng := rand.New(rand.NewPCG(*seed, *seed^0x9E3779B97F4A7C15))
		if *seed == 0 {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		team := golurk.RandomTeam(dex, rng, *size)
		for i, set := range team {
			if _, err := golurk.BuildFromSet(dex, set); err != nil {
				return fmt.Errorf("generated set %d: %w", i+1, err)
			}
		}

		if err := teamfs.SaveTeam(a.cfg.TeamsFile, flags.Arg(0), team); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "saved team %s to %s\n", flags.Arg(0), a.cfg.TeamsFile)
		return nil
	}
	return fmt.Errorf("unknown team subcommand %q", args[0])
}
