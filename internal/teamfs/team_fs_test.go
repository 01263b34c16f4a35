package teamfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadTeam(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saves", "teams.json")

	team := golurk.DefaultTeam()
	team = append(team, golurk.PokemonSet{})
	require.NoError(t, SaveTeam(path, "main", team))
	require.NoError(t, SaveTeam(path, "backup", team[:1]))

	loaded, err := LoadTeam(path, "main")
	require.NoError(t, err)
	assert.Len(t, loaded, 3)
	assert.Equal(t, "Garchomp", loaded[1].Species)
	assert.Equal(t, 252, loaded[1].Evs["atk"])

	names, err := TeamNames(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"backup", "main"}, names)
}

func TestLoadMissingTeam(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.json")

	teams, err := LoadTeamMap(path)
	require.NoError(t, err)
	assert.Empty(t, teams)

	_, err = LoadTeam(path, "nothing")
	assert.ErrorIs(t, err, ErrNoSuchTeam)
}

func TestLoadCorruptTeams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "teams.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadTeamMap(path)
	assert.Error(t, err)
}
