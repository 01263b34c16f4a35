package telemetry

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledProvider(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestEnabledNeedsWriter(t *testing.T) {
	_, err := New(Config{Enabled: true})
	assert.Error(t, err)
}

func TestExportsEngineCounters(t *testing.T) {
	var out bytes.Buffer
	p, err := New(Config{Enabled: true, ServiceName: "golurk-test", Interval: time.Hour, Writer: &out})
	require.NoError(t, err)

	b, err := golurk.NewBattle(golurk.BattleOptions{Seed: "gen5,0001000200030004"})
	require.NoError(t, err)
	require.NoError(t, b.SetPlayer(golurk.SIDE_P1, golurk.PlayerOptions{Team: golurk.DefaultTeam()}))
	require.NoError(t, b.SetPlayer(golurk.SIDE_P2, golurk.PlayerOptions{Team: golurk.DefaultTeam()}))
	require.NoError(t, b.ForceWin(golurk.SIDE_P1))

	require.NoError(t, p.Shutdown(context.Background()))
	assert.Contains(t, out.String(), "golurk.battles.started")
	assert.Contains(t, out.String(), "golurk.battles.ended")
}
