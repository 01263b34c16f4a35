package replay

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "replays.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func playedBattle(t *testing.T, seed golurk.Seed) *golurk.Battle {
	t.Helper()
	b, err := golurk.NewBattle(golurk.BattleOptions{Seed: seed})
	require.NoError(t, err)
	require.NoError(t, b.SetPlayer(golurk.SIDE_P1, golurk.PlayerOptions{Name: "Alice", Team: golurk.DefaultTeam()}))
	require.NoError(t, b.SetPlayer(golurk.SIDE_P2, golurk.PlayerOptions{Name: "Bob", Team: golurk.DefaultTeam()}))
	require.NoError(t, golurk.AutoPlay(b, 100))
	require.True(t, b.Ended())
	return b
}

func TestSaveGetVerify(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)
	b := playedBattle(t, "sodium,01")

	saved, err := store.Save(ctx, b)
	require.NoError(t, err)

	loaded, err := store.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, loaded.BattleID)
	assert.Equal(t, string(b.Seed()), loaded.Seed)
	assert.Equal(t, b.InputLog(), loaded.InputLines())
	assert.Equal(t, b.Log(), loaded.OutputLines())

	sides, err := loaded.SideSummaries()
	require.NoError(t, err)
	require.Len(t, sides, 2)
	assert.Equal(t, "Alice", sides[0].Name)
	assert.Equal(t, "p2", sides[1].ID)
	assert.Equal(t, []string{"Pikachu", "Garchomp", "Ferrothorn"}, sides[1].Team)
	assert.Equal(t, b.Sides[1].PokemonLeft, sides[1].PokemonLeft)

	assert.NoError(t, Verify(golurk.DefaultDex(), loaded))
}

func TestVerifyDetectsMismatch(t *testing.T) {
	b := playedBattle(t, "gen5,0001000200030004")
	r := Replay{
		InputLog:  strings.Join(b.InputLog(), "\n"),
		OutputLog: strings.Join(append(b.Log(), "|extra"), "\n"),
	}
	assert.ErrorIs(t, Verify(golurk.DefaultDex(), r), ErrMismatch)
}

func TestDialector(t *testing.T) {
	d, err := Dialector("", "")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = Dialector("postgres", "host=localhost user=golurk dbname=replays")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector("postgres", "")
	assert.ErrorContains(t, err, "needs a dsn")
	_, err = Dialector("mysql", "x")
	assert.ErrorContains(t, err, "unknown replay driver")
}

func TestGetMissing(t *testing.T) {
	store := openStore(t)
	_, err := store.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Delete(context.Background(), uuid.New()), ErrNotFound)
}

func TestVerifyAll(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	seeds := []golurk.Seed{"gen5,0001000200030004", "gen5,0005000600070008", "gen5,000900100011000c"}
	for _, seed := range seeds {
		_, err := store.Save(ctx, playedBattle(t, seed))
		require.NoError(t, err)
	}

	broken := Replay{ID: uuid.New(), InputLog: ">start {\"formatid\":\"gen9customgame\"}\n>p1 move 1", Sides: datatypes.JSON("[]")}
	require.NoError(t, store.DB.Create(&broken).Error)

	listed, err := store.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, listed, 2)

	failures, err := store.VerifyAll(ctx, golurk.DefaultDex(), 3)
	require.NoError(t, err)
	assert.Len(t, failures, 1)
	assert.Contains(t, failures, broken.ID)
}
