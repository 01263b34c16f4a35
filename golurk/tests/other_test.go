package tests

import (
	"strings"
	"testing"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFasterMovesFirst(t *testing.T) {
	b := getSimpleBattle(t, set("Snorlax", "", "Tackle"), set("Ninjask", "", "Tackle"))

	turn(t, b, "move 1", "move 1")

	assert.Less(t, lineIndex(b, "|move|p2a: Ninjask|Tackle"), lineIndex(b, "|move|p1a: Snorlax|Tackle"))
}

func TestPriorityBeatsSpeed(t *testing.T) {
	b := getSimpleBattle(t, set("Snorlax", "", "Quick Attack"), set("Ninjask", "", "Tackle"))

	turn(t, b, "move 1", "move 1")

	assert.Less(t, lineIndex(b, "|move|p1a: Snorlax|Quick Attack"), lineIndex(b, "|move|p2a: Ninjask|Tackle"))
}

func TestTrickRoom(t *testing.T) {
	b := getSimpleBattle(t, set("Snorlax", "", "Trick Room", "Tackle"), set("Ninjask", "", "Tackle"))

	turn(t, b, "move 1", "move 1")
	require.True(t, b.Field.HasPseudoWeather(golurk.PSEUDO_TRICK_ROOM))
	assert.Less(t, lineIndex(b, "|move|p2a: Ninjask|Tackle"), lineIndex(b, "|move|p1a: Snorlax|Trick Room"))

	start := len(b.Log())
	turn(t, b, "move 2", "move 1")

	turnLog := b.Log()[start:]
	snorlax, ninjask := -1, -1
	for i, line := range turnLog {
		switch {
		case snorlax == -1 && line == "|move|p1a: Snorlax|Tackle|p2a: Ninjask":
			snorlax = i
		case ninjask == -1 && line == "|move|p2a: Ninjask|Tackle|p1a: Snorlax":
			ninjask = i
		}
	}
	require.NotEqual(t, -1, snorlax)
	require.NotEqual(t, -1, ninjask)
	assert.Less(t, snorlax, ninjask)
}

func TestTauntBlocksStatusMoves(t *testing.T) {
	b := getSimpleBattle(t, set("Sableye", "Prankster", "Taunt"), set("Snorlax", "", "Growl", "Tackle"))

	turn(t, b, "move 1", "move 2")

	assert.True(t, b.Request(golurk.SIDE_P2).Active[0].Moves[0].Disabled)
	err := b.Choose(golurk.SIDE_P2, "move 1")
	assert.ErrorIs(t, err, golurk.ErrInvalidChoice)
	assert.ErrorContains(t, err, "disabled")

	require.NoError(t, b.Choose(golurk.SIDE_P2, "move 2"))
}

func TestChoiceErrors(t *testing.T) {
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Garchomp", "", "Tackle"), set("Snorlax", "", "Splash")},
		[]golurk.PokemonSet{set("Blissey", "", "Splash")})

	for _, choice := range []string{
		"move 9",
		"move Surf",
		"switch 1",
		"switch 7",
		"move 1, move 1",
		"dance",
		"pass extra",
		"move 1 zmove",
		"move 1 mega",
	} {
		err := b.Choose(golurk.SIDE_P1, choice)
		assert.ErrorIs(t, err, golurk.ErrInvalidChoice, choice)
	}

	assert.Equal(t, 1, b.Turn)
	assert.Equal(t, golurk.REQUEST_MOVE, b.RequestState)
	turn(t, b, "move Tackle", "default")
	assert.Equal(t, 2, b.Turn)
}

func TestCanOverwriteChoiceBeforeCommit(t *testing.T) {
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Garchomp", "", "Tackle"), set("Snorlax", "", "Splash")},
		[]golurk.PokemonSet{set("Blissey", "", "Splash")})

	require.NoError(t, b.Choose(golurk.SIDE_P1, "switch 2"))
	require.NoError(t, b.Choose(golurk.SIDE_P1, "move 1"))
	require.NoError(t, b.Choose(golurk.SIDE_P2, "move 1"))

	assert.Equal(t, "Garchomp", active(b, golurk.SIDE_P1).Name)
	assert.Contains(t, b.InputLog(), ">p1 move tackle")
}

func TestForceWin(t *testing.T) {
	b := getSimpleBattle(t, set("Garchomp", "", "Tackle"), set("Snorlax", "", "Splash"))

	require.NoError(t, b.ForceWin(golurk.SIDE_P2))

	assert.True(t, b.Ended())
	assert.Equal(t, "Bob", b.Winner)
	assert.ErrorIs(t, b.Choose(golurk.SIDE_P1, "move 1"), golurk.ErrBattleEnded)
	assert.ErrorIs(t, b.ForceWin(golurk.SIDE_P1), golurk.ErrBattleEnded)
}

func TestTiebreakByHp(t *testing.T) {
	b := getSimpleBattle(t, set("Garchomp", "", "Tackle"), set("Snorlax", "", "Splash"))
	turn(t, b, "move 1", "move 1")

	require.NoError(t, b.Tiebreak())

	assert.Equal(t, "Alice", b.Winner)
	assert.True(t, logContains(b, "|-message|Alice: 1 Pokemon left; Bob: 1 Pokemon left"))
}

func TestTiebreakTie(t *testing.T) {
	b := getSimpleBattle(t, set("Snorlax", "", "Splash"), set("Snorlax", "", "Splash"))

	require.NoError(t, b.Tiebreak())

	assert.True(t, b.Ended())
	assert.Empty(t, b.Winner)
	assert.True(t, logContains(b, "|tie"))
}

func TestSetPlayerValidation(t *testing.T) {
	b, err := golurk.NewBattle(golurk.BattleOptions{Seed: testSeed})
	require.NoError(t, err)

	err = b.SetPlayer(golurk.SIDE_P1, golurk.PlayerOptions{Name: "Alice", Team: []golurk.PokemonSet{set("Missingno", "", "Tackle")}})
	assert.ErrorIs(t, err, golurk.ErrNotFound)

	err = b.SetPlayer(golurk.SIDE_P1, golurk.PlayerOptions{Name: "Alice"})
	assert.Error(t, err)

	assert.ErrorIs(t, b.Choose(golurk.SIDE_P1, "move 1"), golurk.ErrNotStarted)
}

func TestNewBattleValidation(t *testing.T) {
	_, err := golurk.NewBattle(golurk.BattleOptions{Format: "gen1nosuchformat"})
	assert.ErrorIs(t, err, golurk.ErrNotFound)

	_, err = golurk.NewBattle(golurk.BattleOptions{Seed: "gen5,xyz"})
	assert.ErrorIs(t, err, golurk.ErrInvalidSeed)
}

func TestSameSeedSameBattle(t *testing.T) {
	play := func() []string {
		b := newBattle(t, "sodium,00ff00ff", golurk.DefaultTeam(), golurk.DefaultTeam())
		require.NoError(t, golurk.AutoPlay(b, 50))
		return b.Log()
	}

	first := play()
	assert.Equal(t, first, play())
	assert.True(t, hasLinePrefix(first, "|win|", "|tie"))
}

// hasLinePrefix reports whether any line starts with one of prefixes.
func hasLinePrefix(log []string, prefixes ...string) bool {
	for _, line := range log {
		for _, prefix := range prefixes {
			if strings.HasPrefix(line, prefix) {
				return true
			}
		}
	}
	return false
}
