package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(out *bytes.Buffer) *app {
	return &app{logger: zerolog.Nop(), dex: golurk.DefaultDex(), out: out}
}

func playerLine(t *testing.T, side, name string) string {
	t.Helper()
	opts, err := json.Marshal(golurk.PlayerOptions{Name: name, Team: golurk.DefaultTeam()[:1]})
	require.NoError(t, err)
	return ">player " + side + " " + string(opts)
}

func TestRunStream(t *testing.T) {
	var out bytes.Buffer
	a := testApp(&out)

	input := strings.Join([]string{
		`>start {"formatid":"gen9customgame","seed":"gen5,0001000200030004"}`,
		"# comments are skipped",
		playerLine(t, "p1", "Alice"),
		playerLine(t, "p2", "Bob"),
		">p1 move 9",
		">player p3 {}",
		">forcewin p2",
	}, "\n")

	b, err := a.runStream(strings.NewReader(input), false)
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.True(t, b.Ended())
	assert.Equal(t, "Bob", b.Winner)

	printed := out.String()
	assert.Contains(t, printed, "|request|")
	assert.Contains(t, printed, "|error|[Invalid choice]")
	assert.Contains(t, printed, "|win|Bob")
}
