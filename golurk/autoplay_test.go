package golurk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingChoice(t *testing.T) {
	magikarp := testSet("Magikarp", "Splash")
	magikarp.Level = 1
	b := startBattle(t, nil,
		[]PokemonSet{testSet("Garchomp", "Earthquake")},
		[]PokemonSet{magikarp, testSet("Snorlax", "Splash")})

	assert.True(t, b.PendingChoice(SIDE_P1))
	require.NoError(t, b.Choose(SIDE_P1, "move 1"))
	assert.False(t, b.PendingChoice(SIDE_P1), "already chosen")
	assert.True(t, b.PendingChoice(SIDE_P2))

	require.NoError(t, b.Choose(SIDE_P2, "move 1"))
	require.Equal(t, REQUEST_SWITCH, b.RequestState)
	assert.False(t, b.PendingChoice(SIDE_P1), "waiting")
	assert.True(t, b.PendingChoice(SIDE_P2))
}

func TestAutoPlayUsesDefaultChoices(t *testing.T) {
	magikarp := testSet("Magikarp", "Splash")
	magikarp.Level = 1
	b := startBattle(t, nil,
		[]PokemonSet{testSet("Garchomp", "Earthquake", "Tackle")},
		[]PokemonSet{magikarp, testSet("Snorlax", "Splash")})

	require.NoError(t, AutoPlay(b, 3))
	require.True(t, b.Ended())

	input := b.InputLog()
	assert.Contains(t, input, ">p1 move earthquake")
	assert.Contains(t, input, ">p2 switch 2")
	assert.Equal(t, ">tiebreak", input[len(input)-1])
	assert.Equal(t, "p1", b.Winner)
}

func TestAutoPlayTeamPreview(t *testing.T) {
	team := []PokemonSet{testSet("Garchomp", "Tackle"), testSet("Snorlax", "Tackle")}
	b := formatBattle(t, "gen9ou", team, team)
	require.Equal(t, REQUEST_TEAM, b.RequestState)

	require.NoError(t, AutoPlay(b, 2))
	assert.Contains(t, b.InputLog(), ">p1 team 1, 2")
	assert.True(t, b.Ended())
}

func TestAutoPlayDoublesTargets(t *testing.T) {
	team := []PokemonSet{testSet("Garchomp", "Tackle"), testSet("Blissey", "Splash")}
	b := formatBattle(t, "gen9doublescustomgame", team, team)

	require.NoError(t, AutoPlay(b, 2))
	assert.Contains(t, b.InputLog(), ">p1 move tackle +1, move splash")

	replayed, err := Replay(nil, b.InputLog())
	require.NoError(t, err)
	assert.Equal(t, b.Log(), replayed.Log())
}
