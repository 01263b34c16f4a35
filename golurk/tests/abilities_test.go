package tests

import (
	"testing"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrizzle(t *testing.T) {
	b := getSimpleBattle(t, set("Politoed", "Drizzle", "Splash"), set("Snorlax", "", "Splash"))

	assert.Equal(t, golurk.WEATHER_RAIN, b.Field.Weather)
	assert.True(t, logContains(b, "|-weather|RainDance|[from] ability: Drizzle|[of] p1a: Politoed"))
}

func TestDrought(t *testing.T) {
	b := getSimpleBattle(t, set("Snorlax", "", "Splash"), set("Torkoal", "Drought", "Splash"))

	assert.Equal(t, golurk.WEATHER_SUN, b.Field.Weather)
}

func TestSandStream(t *testing.T) {
	b := getSimpleBattle(t, set("Tyranitar", "Sand Stream", "Splash"), set("Snorlax", "", "Splash"))

	assert.Equal(t, golurk.WEATHER_SANDSTORM, b.Field.Weather)
}

func TestSpeedBoost(t *testing.T) {
	b := getSimpleBattle(t, set("Ninjask", "Speed Boost", "Splash"), set("Snorlax", "", "Splash"))

	turn(t, b, "move 1", "move 1")

	assert.Equal(t, 1, active(b, golurk.SIDE_P1).Boosts[golurk.BOOST_SPE])
	assert.Equal(t, 0, active(b, golurk.SIDE_P2).Boosts[golurk.BOOST_SPE])

	turn(t, b, "move 1", "move 1")
	assert.Equal(t, 2, active(b, golurk.SIDE_P1).Boosts[golurk.BOOST_SPE])
}

func TestSturdy(t *testing.T) {
	magikarp := set("Magikarp", "Sturdy", "Splash")
	magikarp.Level = 1
	b := getSimpleBattle(t, set("Garchomp", "", "Earthquake"), magikarp)

	turn(t, b, "move 1", "move 1")

	assert.Equal(t, 1, active(b, golurk.SIDE_P2).Hp)
	assert.True(t, logContains(b, "|-ability|p2a: Magikarp|Sturdy"))
}

func TestSturdyOnlyAtFullHp(t *testing.T) {
	magikarp := set("Magikarp", "Sturdy", "Splash")
	magikarp.Level = 1
	b := getSimpleBattle(t, set("Garchomp", "", "Earthquake"), magikarp)

	turn(t, b, "move 1", "move 1")
	require.False(t, b.Ended())
	turn(t, b, "move 1", "move 1")

	assert.True(t, active(b, golurk.SIDE_P2) == nil || active(b, golurk.SIDE_P2).Fainted)
	assert.Equal(t, "Alice", b.Winner)
}

func TestVoltAbsorb(t *testing.T) {
	b := getSimpleBattle(t, set("Pikachu", "", "Thunderbolt"), set("Lanturn", "Volt Absorb", "Splash"))

	turn(t, b, "move 1", "move 1")

	lanturn := active(b, golurk.SIDE_P2)
	assert.Equal(t, lanturn.MaxHp, lanturn.Hp)
	assert.True(t, logContains(b, "|-immune|p2a: Lanturn|[from] ability: Volt Absorb"))
}

func TestWaterAbsorbHeals(t *testing.T) {
	b := getSimpleBattle(t, set("Garchomp", "", "Tackle", "Surf"), set("Vaporeon", "Water Absorb", "Splash"))

	turn(t, b, "move 1", "move 1")
	vaporeon := active(b, golurk.SIDE_P2)
	hurt := vaporeon.Hp
	require.Less(t, hurt, vaporeon.MaxHp)

	turn(t, b, "move 2", "move 1")
	assert.Equal(t, min(vaporeon.MaxHp, hurt+vaporeon.MaxHp/4), vaporeon.Hp)
}

func TestIntimidate(t *testing.T) {
	b := getSimpleBattle(t, set("Gyarados", "Intimidate", "Splash"), set("Snorlax", "", "Splash"))

	assert.Equal(t, -1, active(b, golurk.SIDE_P2).Boosts[golurk.BOOST_ATK])
	assert.Equal(t, 0, active(b, golurk.SIDE_P1).Boosts[golurk.BOOST_ATK])
	assert.True(t, logContains(b, "|-ability|p1a: Gyarados|Intimidate|boost"))
}

func TestLevitate(t *testing.T) {
	b := getSimpleBattle(t, set("Garchomp", "", "Earthquake"), set("Bronzong", "Levitate", "Splash"))

	turn(t, b, "move 1", "move 1")

	bronzong := active(b, golurk.SIDE_P2)
	assert.Equal(t, bronzong.MaxHp, bronzong.Hp)
	assert.True(t, logContains(b, "|-immune|p2a: Bronzong|[from] ability: Levitate"))
}

func TestClearBody(t *testing.T) {
	b := getSimpleBattle(t, set("Snorlax", "", "Growl"), set("Metagross", "Clear Body", "Splash"))

	turn(t, b, "move 1", "move 1")

	assert.Equal(t, 0, active(b, golurk.SIDE_P2).Boosts[golurk.BOOST_ATK])
	assert.True(t, logContains(b, "|-fail|p2a: Metagross|unboost"))
}

func TestNaturalCure(t *testing.T) {
	b := newBattle(t, testSeed,
		[]golurk.PokemonSet{set("Starmie", "Natural Cure", "Splash"), set("Snorlax", "", "Splash")},
		[]golurk.PokemonSet{set("Amoonguss", "", "Spore")})

	turn(t, b, "move 1", "move 1")
	starmie := &b.Sides[golurk.SIDE_P1].Team[0]
	require.Equal(t, golurk.STATUS_SLEEP, starmie.Status)

	turn(t, b, "switch 2", "move 1")

	assert.Equal(t, golurk.STATUS_NONE, starmie.Status)
	assert.True(t, logContains(b, "|-curestatus|p1a: Starmie|slp|[from] ability: Natural Cure"))
}

func TestPrankster(t *testing.T) {
	b := getSimpleBattle(t, set("Sableye", "Prankster", "Taunt"), set("Ninjask", "", "Splash"))

	turn(t, b, "move 1", "move 1")

	sableyeMove := lineIndex(b, "|move|p1a: Sableye|Taunt")
	ninjaskMove := lineIndex(b, "|move|p2a: Ninjask|Splash")
	require.NotEqual(t, -1, sableyeMove)
	assert.True(t, ninjaskMove == -1 || sableyeMove < ninjaskMove)
	assert.True(t, logContains(b, "|-start|p2a: Ninjask|move: Taunt"))
}
