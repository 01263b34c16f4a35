package golurk

import (
	"math/rand/v2"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFromSetDefaults(t *testing.T) {
	p, err := BuildFromSet(DefaultDex(), testSet("garchomp", "tackle", "Earthquake"))
	require.NoError(t, err)

	assert.Equal(t, "Garchomp", p.Name)
	assert.Equal(t, MAX_LEVEL, p.Level)
	assert.Equal(t, "Hardy", p.Nature.Name)
	assert.Equal(t, 357, p.MaxHp)
	assert.Equal(t, p.MaxHp, p.Hp)
	assert.Equal(t, 296, p.StoredStats[STAT_ATK])
	assert.Equal(t, ToID(p.Species.Abilities[0]), p.Ability)
	assert.Equal(t, p.Types[0], p.TeraType)

	require.Len(t, p.Moves, 2)
	assert.Equal(t, "Tackle", p.Moves[0].Name)
	assert.Equal(t, 56, p.Moves[0].MaxPP)
	assert.Equal(t, 16, p.Moves[1].PP)
}

func TestBuildFromSetSpread(t *testing.T) {
	set := testSet("Garchomp", "Tackle")
	set.Nature = "Adamant"
	set.Evs = map[string]int{"atk": 252, "SPE": 252, "hp": 4}
	set.Ivs = map[string]int{"spa": 0}
	set.Name = "Chompy|\n"

	p, err := BuildFromSet(DefaultDex(), set)
	require.NoError(t, err)

	assert.Equal(t, "Chompy", p.Name)
	assert.Equal(t, 394, p.StoredStats[STAT_ATK])
	assert.Equal(t, 358, p.MaxHp)
	assert.Equal(t, 0, p.Ivs[STAT_SPA])
	assert.Equal(t, MAX_IV, p.Ivs[STAT_DEF])
}

func TestBuildFromSetErrors(t *testing.T) {
	tests := map[string]struct {
		set  PokemonSet
		want string
	}{
		"unknown species": {testSet("Missingno", "Tackle"), "not found"},
		"unknown move":    {testSet("Garchomp", "Hyper Mega Beam"), "not found"},
		"no moves":        {testSet("Garchomp"), "needs 1 to 4 moves"},
		"five moves":      {testSet("Garchomp", "Tackle", "Splash", "Earthquake", "Protect", "Toxic"), "needs 1 to 4 moves"},
		"duplicate move":  {testSet("Garchomp", "Tackle", "tackle"), "listed twice"},
		"level":           {PokemonSet{Species: "Garchomp", Moves: []string{"Tackle"}, Level: 101}, "outside 1-100"},
		"nature":          {PokemonSet{Species: "Garchomp", Moves: []string{"Tackle"}, Nature: "Grumpy"}, "unknown nature"},
		"ev stat":         {PokemonSet{Species: "Garchomp", Moves: []string{"Tackle"}, Evs: map[string]int{"luck": 4}}, "unknown stat"},
		"ev cap":          {PokemonSet{Species: "Garchomp", Moves: []string{"Tackle"}, Evs: map[string]int{"atk": 256}}, "outside 0-252"},
		"ev total": {PokemonSet{Species: "Garchomp", Moves: []string{"Tackle"},
			Evs: map[string]int{"atk": 252, "spe": 252, "hp": 252}}, "total EVs"},
		"iv cap":    {PokemonSet{Species: "Garchomp", Moves: []string{"Tackle"}, Ivs: map[string]int{"hp": 32}}, "outside 0-31"},
		"gender":    {PokemonSet{Species: "Garchomp", Moves: []string{"Tackle"}, Gender: "X"}, "unknown gender"},
		"tera type": {PokemonSet{Species: "Garchomp", Moves: []string{"Tackle"}, TeraType: "Sound"}, "unknown tera type"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := BuildFromSet(DefaultDex(), test.set)
			assert.ErrorContains(t, err, test.want)
		})
	}

	_, err := BuildFromSet(DefaultDex(), testSet("Missingno", "Tackle"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildFromSetGender(t *testing.T) {
	set := testSet("Garchomp", "Tackle")
	set.Gender = "f"
	p, err := BuildFromSet(DefaultDex(), set)
	require.NoError(t, err)
	assert.Equal(t, "F", p.Gender)

	set.Gender = "N"
	p, err = BuildFromSet(DefaultDex(), set)
	require.NoError(t, err)
	assert.Equal(t, "", p.Gender)
}

func TestPokemonBuilder(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	species := DefaultDex().Species("garchomp")
	moves := DefaultDex().AllMoves()

	for range 20 {
		set := NewPokeBuilder(species, rng).
			SetRandomEvs().
			SetRandomIvs().
			SetRandomLevel(50, 60).
			SetRandomNature().
			SetRandomMoves(moves).
			Build()

		assert.Equal(t, "Garchomp", set.Species)
		assert.Len(t, set.Moves, 4)
		assert.Len(t, lo.Uniq(set.Moves), 4)
		assert.GreaterOrEqual(t, set.Level, 50)
		assert.LessOrEqual(t, set.Level, 60)
		assert.LessOrEqual(t, lo.Sum(lo.Values(set.Evs)), MAX_TOTAL_EV)
		for _, ev := range set.Evs {
			assert.LessOrEqual(t, ev, MAX_EV)
			assert.Zero(t, ev%4)
		}

		_, err := BuildFromSet(DefaultDex(), set)
		assert.NoError(t, err)
	}
}

func TestPokemonBuilderFixedValues(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	set := NewPokeBuilder(DefaultDex().Species("snorlax"), rng).
		SetLevel(42).
		SetNature(NATURES["careful"]).
		SetItem("Leftovers").
		SetEvs(StatsTable{252, 0, 4, 0, 252, 0}).
		SetPerfectIvs().
		SetRandomAbility(nil).
		Build()

	assert.Equal(t, 42, set.Level)
	assert.Equal(t, "Careful", set.Nature)
	assert.Equal(t, "Leftovers", set.Item)
	assert.Equal(t, 252, set.Evs["spd"])
	assert.Nil(t, set.Ivs)
	assert.Equal(t, DefaultDex().Species("snorlax").Abilities[0], set.Ability)
}

func TestRandomTeam(t *testing.T) {
	team := RandomTeam(DefaultDex(), rand.New(rand.NewPCG(3, 5)), 6)
	require.Len(t, team, 6)

	for _, set := range team {
		species := DefaultDex().Species(ToID(set.Species))
		require.NotNil(t, species)
		assert.Empty(t, species.RequiredItem, "mega formes are never picked")
		assert.NotContains(t, set.Moves, "Struggle")

		_, err := BuildFromSet(DefaultDex(), set)
		assert.NoError(t, err)
	}

	again := RandomTeam(DefaultDex(), rand.New(rand.NewPCG(3, 5)), 6)
	assert.Equal(t, team, again)
}

func TestDefaultTeamIsValid(t *testing.T) {
	for _, set := range DefaultTeam() {
		_, err := BuildFromSet(DefaultDex(), set)
		assert.NoError(t, err, set.Species)
	}
}
