package tests

import (
	"fmt"
	"testing"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iterCount = 50

// Garchomp's 296 attack against Snorlax's 166 defense makes a base of 61 for a 40 power move
func TestDamage(t *testing.T) {
	for i := range iterCount {
		seed := golurk.Seed(fmt.Sprintf("gen5,%016x", i+1))
		b := newBattle(t, seed,
			[]golurk.PokemonSet{set("Garchomp", "", "Tackle")},
			[]golurk.PokemonSet{set("Snorlax", "", "Splash")})

		turn(t, b, "move 1", "move 1")

		snorlax := active(b, golurk.SIDE_P2)
		damage := snorlax.MaxHp - snorlax.Hp
		if logContains(b, "|-crit|") {
			checkDamageRange(t, damage, 77, 91)
		} else {
			checkDamageRange(t, damage, 51, 61)
		}
	}
}

func TestDamageIsSeeded(t *testing.T) {
	play := func() int {
		b := getSimpleBattle(t, set("Garchomp", "", "Tackle"), set("Snorlax", "", "Splash"))
		turn(t, b, "move 1", "move 1")
		return active(b, golurk.SIDE_P2).Hp
	}
	assert.Equal(t, play(), play())
}

func TestSuperEffective(t *testing.T) {
	b := getSimpleBattle(t, set("Pikachu", "", "Thunderbolt"), set("Gyarados", "Moxie", "Splash"))
	turn(t, b, "move 1", "move 1")

	assert.True(t, logContains(b, "|-supereffective|p2a: Gyarados"))
}

func TestTypeImmunity(t *testing.T) {
	b := getSimpleBattle(t, set("Garchomp", "", "Earthquake"), set("Skarmory", "", "Splash"))
	turn(t, b, "move 1", "move 1")

	skarmory := active(b, golurk.SIDE_P2)
	assert.Equal(t, skarmory.MaxHp, skarmory.Hp)
	assert.True(t, logContains(b, "|-immune|p2a: Skarmory"))
}

func TestBattleTypes(t *testing.T) {
	b := getSimpleBattle(t, set("Rotom-Wash", "", "Splash"), set("Ferrothorn", "", "Splash"))

	assert.Equal(t, []string{golurk.TYPENAME_ELECTRIC, golurk.TYPENAME_WATER}, active(b, golurk.SIDE_P1).Types)
	require.Equal(t, []string{golurk.TYPENAME_GRASS, golurk.TYPENAME_STEEL}, active(b, golurk.SIDE_P2).Types)
}

func checkDamageRange(t *testing.T, damage int, low int, high int) {
	t.Helper()
	if damage < low || damage > high {
		t.Fatalf("damage fell outside of range %d - %d: got %d", low, high, damage)
	}
}
