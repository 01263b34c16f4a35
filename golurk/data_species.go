package golurk

import "fmt"

var builtinSpecies = map[ID]*Species{}

func registerSpecies(s Species) {
	s.ID = ToID(s.Name)
	if _, ok := builtinSpecies[s.ID]; ok {
		panic(fmt.Sprintf("species %s registered twice", s.ID))
	}
	builtinSpecies[s.ID] = &s
}

func types(t ...string) []string {
	return t
}

func abilities(a ...string) []string {
	return a
}

func init() {
	// hp, atk, def, spa, spd, spe
	registerSpecies(Species{Num: 1, Name: "Bulbasaur", Types: types(TYPENAME_GRASS, TYPENAME_POISON),
		BaseStats: StatsTable{45, 49, 49, 65, 65, 45}, Abilities: abilities("Overgrow", "Chlorophyll")})
	registerSpecies(Species{Num: 3, Name: "Venusaur", Types: types(TYPENAME_GRASS, TYPENAME_POISON),
		BaseStats: StatsTable{80, 82, 83, 100, 100, 80}, Abilities: abilities("Overgrow", "Chlorophyll")})
	registerSpecies(Species{Num: 4, Name: "Charmander", Types: types(TYPENAME_FIRE),
		BaseStats: StatsTable{39, 52, 43, 60, 50, 65}, Abilities: abilities("Blaze", "Solar Power")})
	registerSpecies(Species{Num: 6, Name: "Charizard", Types: types(TYPENAME_FIRE, TYPENAME_FLYING),
		BaseStats: StatsTable{78, 84, 78, 109, 85, 100}, Abilities: abilities("Blaze", "Solar Power")})
	registerSpecies(Species{Num: 6, Name: "Charizard-Mega-X", Types: types(TYPENAME_FIRE, TYPENAME_DRAGON),
		BaseStats: StatsTable{78, 130, 111, 130, 85, 100}, Abilities: abilities("Tough Claws"),
		BaseSpecies: "Charizard", Forme: "Mega-X", RequiredItem: "Charizardite X"})
	registerSpecies(Species{Num: 7, Name: "Squirtle", Types: types(TYPENAME_WATER),
		BaseStats: StatsTable{44, 48, 65, 50, 64, 43}, Abilities: abilities("Torrent", "Rain Dish")})
	registerSpecies(Species{Num: 9, Name: "Blastoise", Types: types(TYPENAME_WATER),
		BaseStats: StatsTable{79, 83, 100, 85, 105, 78}, Abilities: abilities("Torrent", "Rain Dish")})
	registerSpecies(Species{Num: 25, Name: "Pikachu", Types: types(TYPENAME_ELECTRIC),
		BaseStats: StatsTable{35, 55, 40, 50, 50, 90}, Abilities: abilities("Static", "Lightning Rod")})
	registerSpecies(Species{Num: 26, Name: "Raichu", Types: types(TYPENAME_ELECTRIC),
		BaseStats: StatsTable{60, 90, 55, 90, 80, 110}, Abilities: abilities("Static", "Lightning Rod")})
	registerSpecies(Species{Num: 68, Name: "Machamp", Types: types(TYPENAME_FIGHTING),
		BaseStats: StatsTable{90, 130, 80, 65, 85, 55}, Abilities: abilities("Guts", "No Guard", "Steadfast")})
	registerSpecies(Species{Num: 94, Name: "Gengar", Types: types(TYPENAME_GHOST, TYPENAME_POISON),
		BaseStats: StatsTable{60, 65, 60, 130, 75, 110}, Abilities: abilities("Cursed Body")})
	registerSpecies(Species{Num: 94, Name: "Gengar-Mega", Types: types(TYPENAME_GHOST, TYPENAME_POISON),
		BaseStats: StatsTable{60, 65, 80, 170, 95, 130}, Abilities: abilities("Shadow Tag"),
		BaseSpecies: "Gengar", Forme: "Mega", RequiredItem: "Gengarite"})
	registerSpecies(Species{Num: 110, Name: "Weezing", Types: types(TYPENAME_POISON),
		BaseStats: StatsTable{65, 90, 120, 85, 70, 60}, Abilities: abilities("Levitate")})
	registerSpecies(Species{Num: 121, Name: "Starmie", Types: types(TYPENAME_WATER, TYPENAME_PSYCHIC),
		BaseStats: StatsTable{60, 75, 85, 100, 85, 115}, Abilities: abilities("Illuminate", "Natural Cure")})
	registerSpecies(Species{Num: 129, Name: "Magikarp", Types: types(TYPENAME_WATER),
		BaseStats: StatsTable{20, 10, 55, 15, 20, 80}, Abilities: abilities("Swift Swim")})
	registerSpecies(Species{Num: 130, Name: "Gyarados", Types: types(TYPENAME_WATER, TYPENAME_FLYING),
		BaseStats: StatsTable{95, 125, 79, 60, 100, 81}, Abilities: abilities("Intimidate", "Moxie")})
	registerSpecies(Species{Num: 134, Name: "Vaporeon", Types: types(TYPENAME_WATER),
		BaseStats: StatsTable{130, 65, 60, 110, 95, 65}, Abilities: abilities("Water Absorb")})
	registerSpecies(Species{Num: 135, Name: "Jolteon", Types: types(TYPENAME_ELECTRIC),
		BaseStats: StatsTable{65, 65, 60, 110, 95, 130}, Abilities: abilities("Volt Absorb", "Quick Feet")})
	registerSpecies(Species{Num: 143, Name: "Snorlax", Types: types(TYPENAME_NORMAL),
		BaseStats: StatsTable{160, 110, 65, 65, 110, 30}, Abilities: abilities("Immunity", "Thick Fat")})
	registerSpecies(Species{Num: 149, Name: "Dragonite", Types: types(TYPENAME_DRAGON, TYPENAME_FLYING),
		BaseStats: StatsTable{91, 134, 95, 100, 100, 80}, Abilities: abilities("Inner Focus", "Multiscale")})
	registerSpecies(Species{Num: 151, Name: "Mew", Types: types(TYPENAME_PSYCHIC),
		BaseStats: StatsTable{100, 100, 100, 100, 100, 100}, Abilities: abilities("Synchronize"), Gender: "N"})
	registerSpecies(Species{Num: 171, Name: "Lanturn", Types: types(TYPENAME_WATER, TYPENAME_ELECTRIC),
		BaseStats: StatsTable{125, 58, 58, 76, 76, 67}, Abilities: abilities("Volt Absorb", "Illuminate")})
	registerSpecies(Species{Num: 184, Name: "Azumarill", Types: types(TYPENAME_WATER, TYPENAME_FAIRY),
		BaseStats: StatsTable{100, 50, 80, 60, 80, 50}, Abilities: abilities("Thick Fat", "Huge Power")})
	registerSpecies(Species{Num: 186, Name: "Politoed", Types: types(TYPENAME_WATER),
		BaseStats: StatsTable{90, 75, 75, 90, 100, 70}, Abilities: abilities("Water Absorb", "Damp", "Drizzle")})
	registerSpecies(Species{Num: 197, Name: "Umbreon", Types: types(TYPENAME_DARK),
		BaseStats: StatsTable{95, 65, 110, 60, 130, 65}, Abilities: abilities("Synchronize")})
	registerSpecies(Species{Num: 214, Name: "Heracross", Types: types(TYPENAME_BUG, TYPENAME_FIGHTING),
		BaseStats: StatsTable{80, 125, 75, 40, 95, 85}, Abilities: abilities("Swarm", "Guts", "Moxie")})
	registerSpecies(Species{Num: 227, Name: "Skarmory", Types: types(TYPENAME_STEEL, TYPENAME_FLYING),
		BaseStats: StatsTable{65, 80, 140, 40, 70, 70}, Abilities: abilities("Keen Eye", "Sturdy")})
	registerSpecies(Species{Num: 230, Name: "Kingdra", Types: types(TYPENAME_WATER, TYPENAME_DRAGON),
		BaseStats: StatsTable{75, 95, 95, 95, 95, 85}, Abilities: abilities("Swift Swim", "Sniper")})
	registerSpecies(Species{Num: 242, Name: "Blissey", Types: types(TYPENAME_NORMAL),
		BaseStats: StatsTable{255, 10, 10, 75, 135, 55}, Abilities: abilities("Natural Cure", "Serene Grace"),
		Gender: "F"})
	registerSpecies(Species{Num: 248, Name: "Tyranitar", Types: types(TYPENAME_ROCK, TYPENAME_DARK),
		BaseStats: StatsTable{100, 134, 110, 95, 100, 61}, Abilities: abilities("Sand Stream", "Unnerve")})
	registerSpecies(Species{Num: 291, Name: "Ninjask", Types: types(TYPENAME_BUG, TYPENAME_FLYING),
		BaseStats: StatsTable{61, 90, 45, 50, 50, 160}, Abilities: abilities("Speed Boost", "Infiltrator")})
	registerSpecies(Species{Num: 302, Name: "Sableye", Types: types(TYPENAME_DARK, TYPENAME_GHOST),
		BaseStats: StatsTable{50, 75, 75, 65, 65, 50}, Abilities: abilities("Keen Eye", "Stall", "Prankster")})
	registerSpecies(Species{Num: 324, Name: "Torkoal", Types: types(TYPENAME_FIRE),
		BaseStats: StatsTable{70, 85, 140, 85, 70, 20}, Abilities: abilities("White Smoke", "Drought")})
	registerSpecies(Species{Num: 376, Name: "Metagross", Types: types(TYPENAME_STEEL, TYPENAME_PSYCHIC),
		BaseStats: StatsTable{80, 135, 130, 95, 90, 70}, Abilities: abilities("Clear Body"), Gender: "N"})
	registerSpecies(Species{Num: 437, Name: "Bronzong", Types: types(TYPENAME_STEEL, TYPENAME_PSYCHIC),
		BaseStats: StatsTable{67, 89, 116, 79, 116, 33}, Abilities: abilities("Levitate", "Heatproof"), Gender: "N"})
	registerSpecies(Species{Num: 445, Name: "Garchomp", Types: types(TYPENAME_DRAGON, TYPENAME_GROUND),
		BaseStats: StatsTable{108, 130, 95, 80, 85, 102}, Abilities: abilities("Sand Veil", "Rough Skin")})
	registerSpecies(Species{Num: 448, Name: "Lucario", Types: types(TYPENAME_FIGHTING, TYPENAME_STEEL),
		BaseStats: StatsTable{70, 110, 70, 115, 70, 90}, Abilities: abilities("Steadfast", "Inner Focus")})
	registerSpecies(Species{Num: 448, Name: "Lucario-Mega", Types: types(TYPENAME_FIGHTING, TYPENAME_STEEL),
		BaseStats: StatsTable{70, 145, 88, 140, 70, 112}, Abilities: abilities("Adaptability"),
		BaseSpecies: "Lucario", Forme: "Mega", RequiredItem: "Lucarionite"})
	registerSpecies(Species{Num: 450, Name: "Hippowdon", Types: types(TYPENAME_GROUND),
		BaseStats: StatsTable{108, 112, 118, 68, 72, 47}, Abilities: abilities("Sand Stream", "Sand Force")})
	registerSpecies(Species{Num: 462, Name: "Magnezone", Types: types(TYPENAME_ELECTRIC, TYPENAME_STEEL),
		BaseStats: StatsTable{70, 70, 115, 130, 90, 60}, Abilities: abilities("Magnet Pull", "Sturdy"), Gender: "N"})
	registerSpecies(Species{Num: 479, Name: "Rotom-Wash", Types: types(TYPENAME_ELECTRIC, TYPENAME_WATER),
		BaseStats: StatsTable{50, 65, 107, 105, 107, 86}, Abilities: abilities("Levitate"), Gender: "N",
		BaseSpecies: "Rotom", Forme: "Wash"})
	registerSpecies(Species{Num: 530, Name: "Excadrill", Types: types(TYPENAME_GROUND, TYPENAME_STEEL),
		BaseStats: StatsTable{110, 135, 60, 50, 65, 88}, Abilities: abilities("Sand Rush", "Sand Force")})
	registerSpecies(Species{Num: 547, Name: "Whimsicott", Types: types(TYPENAME_GRASS, TYPENAME_FAIRY),
		BaseStats: StatsTable{60, 67, 85, 77, 75, 116}, Abilities: abilities("Prankster", "Infiltrator")})
	registerSpecies(Species{Num: 591, Name: "Amoonguss", Types: types(TYPENAME_GRASS, TYPENAME_POISON),
		BaseStats: StatsTable{114, 85, 70, 85, 80, 30}, Abilities: abilities("Effect Spore", "Regenerator")})
	registerSpecies(Species{Num: 598, Name: "Ferrothorn", Types: types(TYPENAME_GRASS, TYPENAME_STEEL),
		BaseStats: StatsTable{74, 94, 131, 54, 116, 20}, Abilities: abilities("Iron Barbs", "Anticipation")})
	registerSpecies(Species{Num: 663, Name: "Talonflame", Types: types(TYPENAME_FIRE, TYPENAME_FLYING),
		BaseStats: StatsTable{78, 81, 71, 74, 69, 126}, Abilities: abilities("Flame Body", "Gale Wings")})
}
