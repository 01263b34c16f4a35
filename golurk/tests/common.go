// Package tests plays short battles through the public golurk API.
package tests

import (
	"strings"
	"testing"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/stretchr/testify/require"
)

const testSeed golurk.Seed = "gen5,0001000200030004"

// set is a level 100 set with neutral nature, no EVs and perfect IVs.
func set(species, ability string, moves ...string) golurk.PokemonSet {
	return golurk.PokemonSet{Species: species, Ability: ability, Moves: moves}
}

func newBattle(t *testing.T, seed golurk.Seed, p1, p2 []golurk.PokemonSet) *golurk.Battle {
	t.Helper()
	b, err := golurk.NewBattle(golurk.BattleOptions{Seed: seed})
	require.NoError(t, err)
	require.NoError(t, b.SetPlayer(golurk.SIDE_P1, golurk.PlayerOptions{Name: "Alice", Team: p1}))
	require.NoError(t, b.SetPlayer(golurk.SIDE_P2, golurk.PlayerOptions{Name: "Bob", Team: p2}))
	return b
}

func getSimpleBattle(t *testing.T, player, enemy golurk.PokemonSet) *golurk.Battle {
	return newBattle(t, testSeed, []golurk.PokemonSet{player}, []golurk.PokemonSet{enemy})
}

func active(b *golurk.Battle, side int) *golurk.Pokemon {
	return b.Sides[side].ActivePokemon(0)
}

// turn submits both choices and requires the turn to resolve.
func turn(t *testing.T, b *golurk.Battle, p1, p2 string) {
	t.Helper()
	require.NoError(t, b.Choose(golurk.SIDE_P1, p1))
	require.NoError(t, b.Choose(golurk.SIDE_P2, p2))
}

func logContains(b *golurk.Battle, prefix string) bool {
	for _, line := range b.Log() {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// lineIndex is the position of the first log line starting with prefix, or -1.
func lineIndex(b *golurk.Battle, prefix string) int {
	for i, line := range b.Log() {
		if strings.HasPrefix(line, prefix) {
			return i
		}
	}
	return -1
}
