package tests

import (
	"testing"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFaintReplacement(t *testing.T) {
	magikarp := set("Magikarp", "", "Splash")
	magikarp.Level = 1
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Garchomp", "", "Earthquake")},
		[]golurk.PokemonSet{magikarp, set("Snorlax", "", "Splash")})

	turn(t, b, "move 1", "move 1")

	require.Equal(t, golurk.REQUEST_SWITCH, b.RequestState)
	assert.True(t, b.Request(golurk.SIDE_P1).Wait)
	assert.Equal(t, []bool{true}, b.Request(golurk.SIDE_P2).ForceSwitch)
	assert.True(t, logContains(b, "|faint|p2a: Magikarp"))

	err := b.Choose(golurk.SIDE_P1, "move 1")
	assert.ErrorIs(t, err, golurk.ErrInvalidChoice)

	require.NoError(t, b.Choose(golurk.SIDE_P2, "switch 2"))

	assert.Equal(t, golurk.REQUEST_MOVE, b.RequestState)
	assert.Equal(t, 2, b.Turn)
	assert.Equal(t, "Snorlax", active(b, golurk.SIDE_P2).Name)
	assert.Equal(t, 1, b.Sides[golurk.SIDE_P2].PokemonLeft)
}

func TestUTurnSwitchesMidTurn(t *testing.T) {
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Garchomp", "", "U-turn"), set("Snorlax", "", "Splash")},
		[]golurk.PokemonSet{set("Blissey", "", "Splash")})

	turn(t, b, "move 1", "move 1")

	require.Equal(t, golurk.REQUEST_SWITCH, b.RequestState)
	assert.True(t, b.MidTurn)
	assert.True(t, b.Request(golurk.SIDE_P2).Wait)
	// Blissey has not moved yet
	assert.Equal(t, -1, lineIndex(b, "|move|p2a: Blissey|Splash"))

	require.NoError(t, b.Choose(golurk.SIDE_P1, "switch 2"))

	assert.Equal(t, "Snorlax", active(b, golurk.SIDE_P1).Name)
	assert.Less(t, lineIndex(b, "|switch|p1a: Snorlax"), lineIndex(b, "|move|p2a: Blissey|Splash"))
	assert.Equal(t, 2, b.Turn)
	assert.False(t, b.MidTurn)
}

func TestRoarDragsInRandomPokemon(t *testing.T) {
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Snorlax", "", "Roar")},
		[]golurk.PokemonSet{set("Garchomp", "", "Splash"), set("Gyarados", "Moxie", "Splash")})

	turn(t, b, "move 1", "move 1")

	assert.Equal(t, "Gyarados", active(b, golurk.SIDE_P2).Name)
	assert.True(t, logContains(b, "|drag|p2a: Gyarados"))
	assert.Less(t, lineIndex(b, "|move|p2a: Garchomp|Splash"), lineIndex(b, "|move|p1a: Snorlax|Roar"))
}

func TestRoarFailsWithoutBench(t *testing.T) {
	b := getSimpleBattle(t, set("Snorlax", "", "Roar"), set("Garchomp", "", "Splash"))

	turn(t, b, "move 1", "move 1")

	assert.Equal(t, "Garchomp", active(b, golurk.SIDE_P2).Name)
	assert.False(t, logContains(b, "|drag|"))
}

func TestSwitchGoesBeforeMoves(t *testing.T) {
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Magikarp", "", "Splash"), set("Snorlax", "", "Splash")},
		[]golurk.PokemonSet{set("Ninjask", "", "Tackle")})

	turn(t, b, "switch 2", "move 1")

	assert.Less(t, lineIndex(b, "|switch|p1a: Snorlax"), lineIndex(b, "|move|p2a: Ninjask|Tackle"))
	assert.True(t, logContains(b, "|move|p2a: Ninjask|Tackle|p1a: Snorlax"))
	magikarp := &b.Sides[golurk.SIDE_P1].Team[0]
	assert.Equal(t, magikarp.MaxHp, magikarp.Hp)
}
