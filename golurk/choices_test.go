package golurk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatBattle(t *testing.T, format ID, p1, p2 []PokemonSet) *Battle {
	t.Helper()
	b, err := NewBattle(BattleOptions{Format: format, Seed: testSeed})
	require.NoError(t, err)
	require.NoError(t, b.SetPlayer(SIDE_P1, PlayerOptions{Name: "p1", Team: p1}))
	require.NoError(t, b.SetPlayer(SIDE_P2, PlayerOptions{Name: "p2", Team: p2}))
	return b
}

func TestChoiceErrorMessage(t *testing.T) {
	b := startBattle(t, nil,
		[]PokemonSet{testSet("Garchomp", "Tackle")},
		[]PokemonSet{testSet("Snorlax", "Splash")})

	err := b.Choose(SIDE_P1, "move 3")

	var choiceErr *ChoiceError
	require.ErrorAs(t, err, &choiceErr)
	assert.Equal(t, "p1", choiceErr.Side)
	assert.Equal(t, "[Invalid choice] Can't move: Your Garchomp doesn't have a move 3", err.Error())
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestRejectedChoiceChangesNothing(t *testing.T) {
	b := startBattle(t, nil,
		[]PokemonSet{testSet("Garchomp", "Tackle")},
		[]PokemonSet{testSet("Snorlax", "Splash")})
	seed := b.PRNG().Seed()
	logLen := len(b.Log())

	assert.Error(t, b.Choose(SIDE_P1, "switch 2"))
	assert.Error(t, b.Choose(SIDE_P1, "move 1 terastallize zmove"))

	assert.Equal(t, seed, b.PRNG().Seed())
	assert.Len(t, b.Log(), logLen)
	assert.Len(t, b.InputLog(), 3)
}

func TestRejectedChoiceKeepsEarlierChoice(t *testing.T) {
	b := startBattle(t, nil,
		[]PokemonSet{testSet("Garchomp", "Tackle")},
		[]PokemonSet{testSet("Snorlax", "Splash")})

	require.NoError(t, b.Choose(SIDE_P1, "move 1"))
	assert.ErrorIs(t, b.Choose(SIDE_P1, "move 9"), ErrInvalidChoice)
	assert.False(t, b.PendingChoice(SIDE_P1), "the accepted choice still stands")

	require.NoError(t, b.Choose(SIDE_P2, "move 1"))
	assert.Equal(t, 2, b.Turn)
	assert.Contains(t, b.InputLog(), ">p1 move tackle")
}

func TestDoublesTargets(t *testing.T) {
	b := formatBattle(t, "gen9doublescustomgame",
		[]PokemonSet{testSet("Garchomp", "Tackle", "Earthquake"), testSet("Snorlax", "Splash")},
		[]PokemonSet{testSet("Blissey", "Splash"), testSet("Ferrothorn", "Splash")})
	require.Equal(t, REQUEST_MOVE, b.RequestState)

	assert.ErrorContains(t, b.Choose(SIDE_P1, "move 1 1"), "Incomplete choice")
	assert.ErrorContains(t, b.Choose(SIDE_P1, "move 1, move 1"), "needs a target")
	assert.ErrorContains(t, b.Choose(SIDE_P1, "move 1 -1, move 1"), "Invalid target")
	assert.ErrorContains(t, b.Choose(SIDE_P1, "move 2 1, move 1"), "can't choose a target")
	assert.ErrorContains(t, b.Choose(SIDE_P1, "move 1 1, move 1, move 1"), "doubles game")

	require.NoError(t, b.Choose(SIDE_P1, "move 1 2, move 1"))
	require.NoError(t, b.Choose(SIDE_P2, "move 1, move 1"))

	assert.Contains(t, b.InputLog(), ">p1 move tackle +2, move splash")
	assert.Contains(t, b.Log(), "|move|p1a: Garchomp|Tackle|p2b: Ferrothorn")
	assert.Equal(t, 2, b.Turn)
}

func TestDoublesFaintedSlotPasses(t *testing.T) {
	magikarp := testSet("Magikarp", "Splash")
	magikarp.Level = 1
	b := formatBattle(t, "gen9doublescustomgame",
		[]PokemonSet{testSet("Garchomp", "Tackle"), testSet("Snorlax", "Splash")},
		[]PokemonSet{magikarp, testSet("Blissey", "Splash")})

	require.NoError(t, b.Choose(SIDE_P1, "move 1 1, move 1"))
	require.NoError(t, b.Choose(SIDE_P2, "move 1, move 1"))
	require.True(t, b.Sides[SIDE_P2].Team[0].Fainted)

	// no replacement left, so the fainted slot is skipped
	assert.Equal(t, REQUEST_MOVE, b.RequestState)
	require.NoError(t, b.Choose(SIDE_P2, "move 1"))
	assert.Equal(t, "pass, move splash", b.canonicalChoice(b.Sides[SIDE_P2]))
}

func TestTeamPreview(t *testing.T) {
	b := formatBattle(t, "gen9ou", DefaultTeam(), DefaultTeam())

	require.Equal(t, REQUEST_TEAM, b.RequestState)
	assert.True(t, b.Request(SIDE_P1).TeamPreview)
	assert.Contains(t, b.Log(), "|teampreview")
	assert.ErrorContains(t, b.Choose(SIDE_P1, "move 1"), "need a teampreview response")
	assert.ErrorContains(t, b.Choose(SIDE_P1, "team 1, 1"), "can only switch in once")
	assert.ErrorContains(t, b.Choose(SIDE_P1, "team 9"), "slot 9")

	require.NoError(t, b.Choose(SIDE_P1, "team 3, 1"))
	require.NoError(t, b.Choose(SIDE_P2, "default"))

	assert.Equal(t, []int{2, 0, 1}, b.Sides[SIDE_P1].Lineup)
	assert.Equal(t, "Ferrothorn", b.Sides[SIDE_P1].ActivePokemon(0).Name)
	assert.Equal(t, "Pikachu", b.Sides[SIDE_P2].ActivePokemon(0).Name)
	assert.Contains(t, b.InputLog(), ">p1 team 3, 1, 2")
	assert.Equal(t, 1, b.Turn)
}

func TestMegaEvolution(t *testing.T) {
	gengar := PokemonSet{Species: "Gengar", Item: "Gengarite", Moves: []string{"Shadow Ball"}}
	b := formatBattle(t, "gen7customgame",
		[]PokemonSet{gengar},
		[]PokemonSet{testSet("Snorlax", "Splash")})

	assert.True(t, b.Request(SIDE_P1).Active[0].CanMegaEvo)
	require.NoError(t, b.Choose(SIDE_P1, "move 1 mega"))
	require.NoError(t, b.Choose(SIDE_P2, "move 1"))

	p := b.Sides[SIDE_P1].ActivePokemon(0)
	assert.Equal(t, "Gengar-Mega", p.Species.Name)
	assert.Equal(t, ID("shadowtag"), p.Ability)
	assert.True(t, b.Sides[SIDE_P1].MegaUsed)
	assert.Less(t, logIndex(b.Log(), "|-mega|p1a: Gengar|Gengar|Gengarite"), logIndex(b.Log(), "|move|p1a: Gengar|Shadow Ball"))
	assert.False(t, b.Request(SIDE_P1).Active[0].CanMegaEvo)
}

func TestTerastallize(t *testing.T) {
	garchomp := PokemonSet{Species: "Garchomp", TeraType: TYPENAME_STEEL, Moves: []string{"Tackle"}}
	b := startBattle(t, nil, []PokemonSet{garchomp}, []PokemonSet{testSet("Snorlax", "Splash")})

	assert.Equal(t, TYPENAME_STEEL, b.Request(SIDE_P1).Active[0].CanTerastallize)
	chooseBoth(t, b, "move 1 terastallize", "move 1")

	p := b.Sides[SIDE_P1].ActivePokemon(0)
	assert.Equal(t, []string{TYPENAME_STEEL}, p.Types)
	assert.True(t, b.Sides[SIDE_P1].TeraUsed)
	assert.Contains(t, b.Log(), "|-terastallize|p1a: Garchomp|Steel")
	assert.ErrorContains(t, b.Choose(SIDE_P1, "move 1 terastallize"), "can't Terastallize")
}

// logIndex is the position of the first line starting with prefix, or -1.
func logIndex(log []string, prefix string) int {
	for i, l := range log {
		if strings.HasPrefix(l, prefix) {
			return i
		}
	}
	return -1
}
