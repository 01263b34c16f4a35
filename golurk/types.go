package golurk

import "slices"

// typeRelations lists how an attacking type fares against defending types.
// Anything not listed is neutral.
type typeRelations struct {
	superEffective []string
	resisted       []string
	immune         []string
}

var typeChart = map[string]typeRelations{
	TYPENAME_NORMAL: {
		resisted: []string{TYPENAME_ROCK, TYPENAME_STEEL},
		immune:   []string{TYPENAME_GHOST},
	},
	TYPENAME_FIRE: {
		superEffective: []string{TYPENAME_GRASS, TYPENAME_ICE, TYPENAME_BUG, TYPENAME_STEEL},
		resisted:       []string{TYPENAME_FIRE, TYPENAME_WATER, TYPENAME_ROCK, TYPENAME_DRAGON},
	},
	TYPENAME_WATER: {
		superEffective: []string{TYPENAME_FIRE, TYPENAME_GROUND, TYPENAME_ROCK},
		resisted:       []string{TYPENAME_WATER, TYPENAME_GRASS, TYPENAME_DRAGON},
	},
	TYPENAME_ELECTRIC: {
		superEffective: []string{TYPENAME_WATER, TYPENAME_FLYING},
		resisted:       []string{TYPENAME_ELECTRIC, TYPENAME_GRASS, TYPENAME_DRAGON},
		immune:         []string{TYPENAME_GROUND},
	},
	TYPENAME_GRASS: {
		superEffective: []string{TYPENAME_WATER, TYPENAME_GROUND, TYPENAME_ROCK},
		resisted: []string{TYPENAME_FIRE, TYPENAME_GRASS, TYPENAME_POISON, TYPENAME_FLYING,
			TYPENAME_BUG, TYPENAME_DRAGON, TYPENAME_STEEL},
	},
	TYPENAME_ICE: {
		superEffective: []string{TYPENAME_GRASS, TYPENAME_GROUND, TYPENAME_FLYING, TYPENAME_DRAGON},
		resisted:       []string{TYPENAME_FIRE, TYPENAME_WATER, TYPENAME_ICE, TYPENAME_STEEL},
	},
	TYPENAME_FIGHTING: {
		superEffective: []string{TYPENAME_NORMAL, TYPENAME_ICE, TYPENAME_ROCK, TYPENAME_DARK, TYPENAME_STEEL},
		resisted:       []string{TYPENAME_POISON, TYPENAME_FLYING, TYPENAME_PSYCHIC, TYPENAME_BUG, TYPENAME_FAIRY},
		immune:         []string{TYPENAME_GHOST},
	},
	TYPENAME_POISON: {
		superEffective: []string{TYPENAME_GRASS, TYPENAME_FAIRY},
		resisted:       []string{TYPENAME_POISON, TYPENAME_GROUND, TYPENAME_ROCK, TYPENAME_GHOST},
		immune:         []string{TYPENAME_STEEL},
	},
	TYPENAME_GROUND: {
		superEffective: []string{TYPENAME_FIRE, TYPENAME_ELECTRIC, TYPENAME_POISON, TYPENAME_ROCK, TYPENAME_STEEL},
		resisted:       []string{TYPENAME_GRASS, TYPENAME_BUG},
		immune:         []string{TYPENAME_FLYING},
	},
	TYPENAME_FLYING: {
		superEffective: []string{TYPENAME_GRASS, TYPENAME_FIGHTING, TYPENAME_BUG},
		resisted:       []string{TYPENAME_ELECTRIC, TYPENAME_ROCK, TYPENAME_STEEL},
	},
	TYPENAME_PSYCHIC: {
		superEffective: []string{TYPENAME_FIGHTING, TYPENAME_POISON},
		resisted:       []string{TYPENAME_PSYCHIC, TYPENAME_STEEL},
		immune:         []string{TYPENAME_DARK},
	},
	TYPENAME_BUG: {
		superEffective: []string{TYPENAME_GRASS, TYPENAME_PSYCHIC, TYPENAME_DARK},
		resisted: []string{TYPENAME_FIRE, TYPENAME_FIGHTING, TYPENAME_POISON, TYPENAME_FLYING,
			TYPENAME_GHOST, TYPENAME_STEEL, TYPENAME_FAIRY},
	},
	TYPENAME_ROCK: {
		superEffective: []string{TYPENAME_FIRE, TYPENAME_ICE, TYPENAME_FLYING, TYPENAME_BUG},
		resisted:       []string{TYPENAME_FIGHTING, TYPENAME_GROUND, TYPENAME_STEEL},
	},
	TYPENAME_GHOST: {
		superEffective: []string{TYPENAME_PSYCHIC, TYPENAME_GHOST},
		resisted:       []string{TYPENAME_DARK},
		immune:         []string{TYPENAME_NORMAL},
	},
	TYPENAME_DRAGON: {
		superEffective: []string{TYPENAME_DRAGON},
		resisted:       []string{TYPENAME_STEEL},
		immune:         []string{TYPENAME_FAIRY},
	},
	TYPENAME_DARK: {
		superEffective: []string{TYPENAME_PSYCHIC, TYPENAME_GHOST},
		resisted:       []string{TYPENAME_FIGHTING, TYPENAME_DARK, TYPENAME_FAIRY},
	},
	TYPENAME_STEEL: {
		superEffective: []string{TYPENAME_ICE, TYPENAME_ROCK, TYPENAME_FAIRY},
		resisted:       []string{TYPENAME_FIRE, TYPENAME_WATER, TYPENAME_ELECTRIC, TYPENAME_STEEL},
	},
	TYPENAME_FAIRY: {
		superEffective: []string{TYPENAME_FIGHTING, TYPENAME_DRAGON, TYPENAME_DARK},
		resisted:       []string{TYPENAME_FIRE, TYPENAME_POISON, TYPENAME_STEEL},
	},
}

func IsValidType(t string) bool {
	_, ok := typeChart[t]
	return ok || t == TYPENAME_STELLAR
}

// typeEffectiveness returns +1 for super effective, -1 for resisted and 0 otherwise
// against a single defending type. Immunity is reported separately by typeImmune.
func typeEffectiveness(attackType, defenseType string) int {
	relations, ok := typeChart[attackType]
	if !ok {
		return 0
	}

	if slices.Contains(relations.superEffective, defenseType) {
		return 1
	}
	if slices.Contains(relations.resisted, defenseType) {
		return -1
	}
	return 0
}

func typeImmune(attackType, defenseType string) bool {
	relations, ok := typeChart[attackType]
	return ok && slices.Contains(relations.immune, defenseType)
}
