package golurk

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/require"
)

const testSeed Seed = "gen5,0001000200030004"

func testSet(species string, moves ...string) PokemonSet {
	return PokemonSet{Species: species, Moves: moves}
}

// testDex is the default dex with extra conditions, so tests can attach their own listeners.
func testDex(extra ...*Effect) *MemoryDex {
	dex := *DefaultDex()
	dex.conditions = maps.Clone(dex.conditions)
	for _, e := range extra {
		dex.conditions[e.ID] = e
	}
	return &dex
}

func startBattle(t *testing.T, dex Dex, p1, p2 []PokemonSet) *Battle {
	t.Helper()
	b, err := NewBattle(BattleOptions{Seed: testSeed, Dex: dex})
	require.NoError(t, err)
	require.NoError(t, b.SetPlayer(SIDE_P1, PlayerOptions{Name: "p1", Team: p1}))
	require.NoError(t, b.SetPlayer(SIDE_P2, PlayerOptions{Name: "p2", Team: p2}))
	require.Equal(t, REQUEST_MOVE, b.RequestState)
	return b
}

func chooseBoth(t *testing.T, b *Battle, p1, p2 string) {
	t.Helper()
	require.NoError(t, b.Choose(SIDE_P1, p1))
	require.NoError(t, b.Choose(SIDE_P2, p2))
}
