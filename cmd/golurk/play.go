package main

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/nathanieltooley/gokemon-sim/internal/teamfs"
)

func playCmd(args []string) error {
	flags := commonFlags("play")
	p1Team := flags.String("p1", "", "saved team for p1, random when empty")
	p2Team := flags.String("p2", "", "saved team for p2, random when empty")
	seed := flags.String("seed", "", "battle seed, fresh when empty")
	flags.String("battle.format", "gen9customgame", "format id")
	flags.String("battle.seedFamily", "sodium", "seed family for fresh seeds: sodium or gen5")
	teamSeed := flags.Uint64("team-seed", 0, "seed for random teams, time based when 0")
	teamSize := flags.Int("team-size", 6, "size of random teams")
	turns := flags.Int("turns", 1000, "turn limit before a tiebreak")
	if err := flags.Parse(args); err != nil {
		return err
	}

	a, cleanup, err := setup(flags)
	if err != nil {
		return err
	}
	defer cleanup()

	rng := rand.New(rand.NewPCG(*teamSeed, *teamSeed^0x9E3779B97F4A7C15))
	if *teamSeed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	teams := [2][]golurk.PokemonSet{}
	for i, name := range []string{*p1Team, *p2Team} {
		teams[i], err = a.team(name, rng, *teamSize)
		if err != nil {
			return err
		}
	}

	b, err := golurk.NewBattle(golurk.BattleOptions{
		Format:     golurk.ID(a.cfg.Battle.Format),
		Seed:       golurk.Seed(*seed),
		SeedFamily: a.cfg.Battle.SeedFamily,
		Dex:        a.dex,
	})
	if err != nil {
		return err
	}
	for i, name := range []string{"Player 1", "Player 2"} {
		if err := b.SetPlayer(i, golurk.PlayerOptions{Name: name, Team: teams[i]}); err != nil {
			return err
		}
	}

	playErr := golurk.AutoPlay(b, *turns)
	for _, line := range b.Log() {
		fmt.Fprintln(a.out, line)
	}
	a.saveReplay(context.Background(), b)
	return playErr
}

// team loads a saved team, or generates one from the dex when name is empty.
func (a *app) team(name string, rng *rand.Rand, size int) ([]golurk.PokemonSet, error) {
	if name != "" {
		return teamfs.LoadTeam(a.cfg.TeamsFile, name)
	}
	dex, ok := a.dex.(*golurk.MemoryDex)
	if !ok {
		return golurk.DefaultTeam(), nil
	}
	return golurk.RandomTeam(dex, rng, size), nil
}
