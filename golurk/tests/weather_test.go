package tests

import (
	"testing"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/stretchr/testify/assert"
)

func TestSandstormDamage(t *testing.T) {
	b := getSimpleBattle(t, set("Tyranitar", "Sand Stream", "Splash"), set("Snorlax", "", "Splash"))

	turn(t, b, "move 1", "move 1")

	snorlax := active(b, golurk.SIDE_P2)
	tyranitar := active(b, golurk.SIDE_P1)
	assert.Equal(t, snorlax.MaxHp-snorlax.MaxHp/16, snorlax.Hp)
	assert.Equal(t, tyranitar.MaxHp, tyranitar.Hp)
	assert.True(t, logContains(b, "|-weather|Sandstorm|[upkeep]"))
}

func TestWeatherEndsAfterFiveTurns(t *testing.T) {
	b := getSimpleBattle(t, set("Blissey", "", "Rain Dance", "Splash"), set("Snorlax", "", "Splash"))

	turn(t, b, "move 1", "move 1")
	assert.Equal(t, golurk.WEATHER_RAIN, b.Field.Weather)

	for range 3 {
		turn(t, b, "move 2", "move 1")
	}
	assert.Equal(t, golurk.WEATHER_RAIN, b.Field.Weather)

	turn(t, b, "move 2", "move 1")
	assert.Equal(t, golurk.WEATHER_NONE, b.Field.Weather)
	assert.True(t, logContains(b, "|-weather|none"))
}

func TestRainBoostsWaterMoves(t *testing.T) {
	dry := getSimpleBattle(t, set("Vaporeon", "", "Surf"), set("Blissey", "", "Splash"))
	turn(t, dry, "move 1", "move 1")

	wet := getSimpleBattle(t, set("Vaporeon", "Drizzle", "Surf"), set("Blissey", "", "Splash"))
	turn(t, wet, "move 1", "move 1")

	dryDamage := active(dry, golurk.SIDE_P2).MaxHp - active(dry, golurk.SIDE_P2).Hp
	wetDamage := active(wet, golurk.SIDE_P2).MaxHp - active(wet, golurk.SIDE_P2).Hp
	assert.Greater(t, wetDamage, dryDamage)
}

func TestSwiftSwim(t *testing.T) {
	kingdra := set("Kingdra", "Swift Swim", "Splash")
	b := getSimpleBattle(t, kingdra, set("Politoed", "Drizzle", "Tackle"))

	turn(t, b, "move 1", "move 1")

	assert.Less(t, lineIndex(b, "|move|p1a: Kingdra|Splash"), lineIndex(b, "|move|p2a: Politoed|Tackle"))
}
