package tests

import (
	"strings"
	"testing"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logHas(b *golurk.Battle, part string) bool {
	for _, line := range b.Log() {
		if strings.Contains(line, part) {
			return true
		}
	}
	return false
}

func withItem(s golurk.PokemonSet, item string) golurk.PokemonSet {
	s.Item = item
	return s
}

func TestSpikesStackAndHurtOnEntry(t *testing.T) {
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Skarmory", "", "Spikes")},
		[]golurk.PokemonSet{set("Snorlax", "", "Splash"), set("Garchomp", "", "Splash")})

	turn(t, b, "move 1", "move 1")
	require.True(t, b.Sides[golurk.SIDE_P2].HasCondition(golurk.SIDE_SPIKES))
	assert.True(t, logContains(b, "|-sidestart|p2: Bob|Spikes"))

	// the switch happens before the second layer goes down
	turn(t, b, "move 1", "switch 2")

	garchomp := active(b, golurk.SIDE_P2)
	require.Equal(t, "Garchomp", garchomp.Name)
	assert.Equal(t, garchomp.MaxHp-3*garchomp.MaxHp/24, garchomp.Hp)
	assert.Equal(t, 2, b.Sides[golurk.SIDE_P2].Condition(golurk.SIDE_SPIKES).Layers)
}

func TestStealthRockScalesWithRockWeakness(t *testing.T) {
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Skarmory", "", "Stealth Rock", "Splash")},
		[]golurk.PokemonSet{set("Snorlax", "", "Splash"), set("Gyarados", "Moxie", "Splash")})

	turn(t, b, "move 1", "move 1")
	turn(t, b, "move 2", "switch 2")

	gyarados := active(b, golurk.SIDE_P2)
	require.Equal(t, "Gyarados", gyarados.Name)
	assert.Equal(t, gyarados.MaxHp-gyarados.MaxHp*2/8, gyarados.Hp)
	assert.True(t, logHas(b, "|[from] Stealth Rock"))
}

func TestToxicSpikesPoisonOnEntry(t *testing.T) {
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Skarmory", "", "Toxic Spikes", "Splash")},
		[]golurk.PokemonSet{set("Snorlax", "", "Splash"), set("Blissey", "", "Splash")})

	turn(t, b, "move 1", "move 1")
	turn(t, b, "move 2", "switch 2")

	assert.Equal(t, golurk.STATUS_POISON, active(b, golurk.SIDE_P2).Status)
	assert.True(t, logContains(b, "|-status|p2a: Blissey|psn"))
}

func TestWishHealsNextTurn(t *testing.T) {
	b := getSimpleBattle(t, set("Blissey", "", "Wish", "Splash"), set("Garchomp", "", "Tackle", "Splash"))

	turn(t, b, "move 1", "move 1")
	blissey := active(b, golurk.SIDE_P1)
	hurt := blissey.Hp
	require.Less(t, hurt, blissey.MaxHp)
	assert.False(t, logHas(b, "[wisher]"))

	turn(t, b, "move 2", "move 2")
	assert.Greater(t, blissey.Hp, hurt)
	assert.True(t, logHas(b, "|[from] move: Wish|[wisher] Blissey"))
}

func TestProtectBlocksAttack(t *testing.T) {
	b := getSimpleBattle(t, set("Snorlax", "", "Protect"), set("Garchomp", "", "Tackle"))

	turn(t, b, "move 1", "move 1")

	snorlax := active(b, golurk.SIDE_P1)
	assert.Equal(t, snorlax.MaxHp, snorlax.Hp)
	assert.True(t, logContains(b, "|-singleturn|p1a: Snorlax|Protect"))
	assert.True(t, logContains(b, "|-activate|p1a: Snorlax|move: Protect"))
}

func TestTailwindDoublesSpeed(t *testing.T) {
	b := getSimpleBattle(t, set("Blissey", "", "Tailwind", "Splash"), set("Garchomp", "", "Splash", "Tackle"))

	turn(t, b, "move 1", "move 1")
	assert.Less(t, lineIndex(b, "|move|p2a: Garchomp|Splash"), lineIndex(b, "|move|p1a: Blissey|Tailwind"))

	turn(t, b, "move 2", "move 2")
	assert.Less(t, lineIndex(b, "|move|p1a: Blissey|Splash"), lineIndex(b, "|move|p2a: Garchomp|Tackle"))
}

func TestLeftoversHeal(t *testing.T) {
	b := getSimpleBattle(t, withItem(set("Snorlax", "", "Splash"), "Leftovers"), set("Garchomp", "", "Tackle"))

	turn(t, b, "move 1", "move 1")

	assert.Less(t, lineIndex(b, "|-damage|p1a: Snorlax"), lineIndex(b, "|-heal|p1a: Snorlax"))
}

func TestLifeOrbRecoil(t *testing.T) {
	b := getSimpleBattle(t, withItem(set("Garchomp", "", "Tackle"), "Life Orb"), set("Blissey", "", "Splash"))

	turn(t, b, "move 1", "move 1")

	garchomp := active(b, golurk.SIDE_P1)
	assert.Equal(t, garchomp.MaxHp-garchomp.MaxHp/10, garchomp.Hp)
}

func TestFocusSashSurvivesOneHit(t *testing.T) {
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Garchomp", "", "Earthquake")},
		[]golurk.PokemonSet{withItem(set("Magikarp", "", "Splash"), "Focus Sash"), set("Snorlax", "", "Splash")})

	turn(t, b, "move 1", "move 1")

	magikarp := active(b, golurk.SIDE_P2)
	assert.Equal(t, 1, magikarp.Hp)
	assert.False(t, magikarp.Fainted)
	assert.True(t, logContains(b, "|-enditem|p2a: Magikarp|Focus Sash"))
}
