package golurk

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const speciesCSV = `Num,Name,Type1,Type2,HP,Attack,Defense,SpecialAttack,SpecialDefense,Speed,Abilities
1000,Gholdengo,Steel,Ghost,87,60,95,133,91,84,Good as Gold
143,Snorlax,Normal,,200,110,65,65,110,30,Thick Fat/Immunity
`

const movesJSON = `[
	{"name": "Make It Rain", "type": "Steel", "category": "Special", "basePower": 120, "accuracy": 100, "pp": 5},
	{"name": "Tackle", "type": "Normal", "category": "Physical", "basePower": 50, "accuracy": 100, "pp": 35},
	{"name": "Nasty Plot", "type": "Dark", "pp": 20, "target": "self"}
]`

func TestLoadSpecies(t *testing.T) {
	species, err := LoadSpecies([]byte(speciesCSV))
	require.NoError(t, err)
	require.Len(t, species, 2)

	assert.Equal(t, ID("gholdengo"), species[0].ID)
	assert.Equal(t, []string{"Steel", "Ghost"}, species[0].Types)
	assert.Equal(t, StatsTable{87, 60, 95, 133, 91, 84}, species[0].BaseStats)
	assert.Equal(t, []string{"Normal"}, species[1].Types)
	assert.Equal(t, []string{"Thick Fat", "Immunity"}, species[1].Abilities)
}

func TestLoadSpeciesErrors(t *testing.T) {
	_, err := LoadSpecies(nil)
	assert.ErrorContains(t, err, "species header")

	_, err = LoadSpecies([]byte("header\n1,Mew,Psychic\n"))
	assert.Error(t, err)

	_, err = LoadSpecies([]byte("h,h,h,h,h,h,h,h,h,h,h\none,Mew,Psychic,,100,100,100,100,100,100,Synchronize\n"))
	assert.ErrorContains(t, err, "species row 2")

	_, err = LoadSpecies([]byte("h,h,h,h,h,h,h,h,h,h,h\n151,Mew,Psychic,,100,100,lots,100,100,100,Synchronize\n"))
	assert.ErrorContains(t, err, "species row 2")
}

func TestLoadMoves(t *testing.T) {
	moves, err := LoadMoves([]byte(movesJSON))
	require.NoError(t, err)
	require.Len(t, moves, 3)

	assert.Equal(t, 120, moves[0].BasePower)
	assert.Equal(t, CATEGORY_STATUS, moves[2].Category)
	assert.Equal(t, TARGET_NORMAL, moves[0].Target)

	_, err = LoadMoves([]byte(`{"name": "Tackle"}`))
	assert.ErrorContains(t, err, "invalid move json")

	_, err = LoadMoves([]byte(`[{"basePower": 40}]`))
	assert.ErrorContains(t, err, "has no name")
}

func TestDefaultLoader(t *testing.T) {
	files := fstest.MapFS{
		"data/species.csv": {Data: []byte(speciesCSV)},
		"data/moves.json":  {Data: []byte(movesJSON)},
	}

	dex, err := DefaultLoader(files, "data")
	require.NoError(t, err)

	gholdengo := dex.Species("gholdengo")
	require.NotNil(t, gholdengo)
	assert.Equal(t, 1000, gholdengo.Num)

	// overriding a known move keeps its handlers
	tackle := dex.Move("tackle")
	require.NotNil(t, tackle)
	assert.Same(t, DefaultDex().Move("tackle").Effect, tackle.Effect)

	makeItRain := dex.Move("makeitrain")
	require.NotNil(t, makeItRain)
	require.NotNil(t, makeItRain.Effect)
	assert.Equal(t, KIND_MOVE, makeItRain.Effect.Kind)

	assert.Nil(t, DefaultDex().Species("gholdengo"), "the default dex is never changed")
	assert.NotNil(t, dex.Species("garchomp"))
	assert.NotNil(t, dex.Format("gen9customgame"))
}

func TestDefaultLoaderMissingFiles(t *testing.T) {
	dex, err := DefaultLoader(fstest.MapFS{}, "data")
	require.NoError(t, err)
	assert.Len(t, dex.AllSpecies(), len(DefaultDex().AllSpecies()))
}

func TestDefaultLoaderBadFile(t *testing.T) {
	files := fstest.MapFS{
		"data/moves.json": {Data: []byte("not json")},
	}
	_, err := DefaultLoader(files, "data")
	assert.ErrorContains(t, err, "data/moves.json")
}

func TestAllSpeciesOrder(t *testing.T) {
	species := DefaultDex().AllSpecies()
	require.NotEmpty(t, species)
	for i := 1; i < len(species); i++ {
		prev, cur := species[i-1], species[i]
		assert.True(t, prev.Num < cur.Num || prev.Num == cur.Num && prev.ID < cur.ID,
			"%s before %s", prev.ID, cur.ID)
	}

	moves := DefaultDex().AllMoves()
	for i := 1; i < len(moves); i++ {
		assert.Less(t, moves[i-1].ID, moves[i].ID)
	}
}
