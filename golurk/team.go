package golurk

import (
	"math/rand/v2"

	"github.com/samber/lo"
)

// DefaultTeam is a small fixed team, handy for quick battles and tests.
func DefaultTeam() []PokemonSet {
	return []PokemonSet{
		{Species: "Pikachu", Item: "Leftovers", Moves: []string{"Thunderbolt", "Quick Attack", "Thunder Wave", "Protect"},
			Nature: "Timid", Evs: map[string]int{"spa": 252, "spe": 252, "hp": 4}},
		{Species: "Garchomp", Item: "Choice Scarf", Moves: []string{"Earthquake", "Dragon Claw", "Stone Edge", "Swords Dance"},
			Nature: "Jolly", Evs: map[string]int{"atk": 252, "spe": 252, "hp": 4}},
		{Species: "Ferrothorn", Item: "Leftovers", Ability: "Iron Barbs",
			Moves:  []string{"Leech Seed", "Stealth Rock", "Iron Head", "Protect"},
			Nature: "Relaxed", Evs: map[string]int{"hp": 252, "def": 252, "spd": 4}},
	}
}

// RandomTeam generates size random sets from the species and moves of dex. Mega formes and
// Struggle are never picked.
func RandomTeam(dex *MemoryDex, rng *rand.Rand, size int) []PokemonSet {
	species := lo.Filter(dex.AllSpecies(), func(s *Species, _ int) bool {
		return s.RequiredItem == ""
	})
	moves := lo.Filter(dex.AllMoves(), func(m *MoveData, _ int) bool {
		return m.ID != STRUGGLE
	})

	team := make([]PokemonSet, 0, size)
	for range size {
		base := species[rng.IntN(len(species))]
		team = append(team, NewPokeBuilder(base, rng).
			SetRandomEvs().
			SetRandomIvs().
			SetRandomLevel(80, 100).
			SetRandomNature().
			SetRandomMoves(moves).
			SetRandomAbility(base.Abilities).
			Build())
	}
	return team
}
