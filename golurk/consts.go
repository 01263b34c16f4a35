package golurk

const (
	MAX_IV       = 31
	MAX_EV       = 252
	MAX_TOTAL_EV = 510
	MAX_LEVEL    = 100

	MAX_STAGE = 6
	MIN_STAGE = -6

	MAX_SPEED = 10000
)

const (
	CATEGORY_PHYSICAL = "Physical"
	CATEGORY_SPECIAL  = "Special"
	CATEGORY_STATUS   = "Status"
)

const (
	TYPENAME_NORMAL   = "Normal"
	TYPENAME_FIRE     = "Fire"
	TYPENAME_WATER    = "Water"
	TYPENAME_ELECTRIC = "Electric"
	TYPENAME_GRASS    = "Grass"
	TYPENAME_ICE      = "Ice"
	TYPENAME_FIGHTING = "Fighting"
	TYPENAME_POISON   = "Poison"
	TYPENAME_GROUND   = "Ground"
	TYPENAME_FLYING   = "Flying"
	TYPENAME_PSYCHIC  = "Psychic"
	TYPENAME_BUG      = "Bug"
	TYPENAME_ROCK     = "Rock"
	TYPENAME_GHOST    = "Ghost"
	TYPENAME_DRAGON   = "Dragon"
	TYPENAME_DARK     = "Dark"
	TYPENAME_STEEL    = "Steel"
	TYPENAME_FAIRY    = "Fairy"
	TYPENAME_STELLAR  = "Stellar"

	// TYPELESS moves ignore the type chart and never get STAB
	TYPELESS = "???"
)

// Persistent status ids
const (
	STATUS_NONE   ID = ""
	STATUS_BURN   ID = "brn"
	STATUS_PARA   ID = "par"
	STATUS_SLEEP  ID = "slp"
	STATUS_FROZEN ID = "frz"
	STATUS_POISON ID = "psn"
	STATUS_TOXIC  ID = "tox"
)

const (
	WEATHER_NONE      ID = ""
	WEATHER_RAIN      ID = "raindance"
	WEATHER_SUN       ID = "sunnyday"
	WEATHER_SANDSTORM ID = "sandstorm"
)

const PSEUDO_TRICK_ROOM ID = "trickroom"

const (
	TERRAIN_NONE     ID = ""
	TERRAIN_ELECTRIC ID = "electricterrain"
	TERRAIN_GRASSY   ID = "grassyterrain"
)

// Move target kinds
const (
	TARGET_NORMAL            = "normal"
	TARGET_SELF              = "self"
	TARGET_ANY               = "any"
	TARGET_ADJACENT_FOE      = "adjacentFoe"
	TARGET_ADJACENT_ALLY     = "adjacentAlly"
	TARGET_ALL_ADJACENT_FOES = "allAdjacentFoes"
	TARGET_ALL_ADJACENT      = "allAdjacent"
	TARGET_RANDOM_NORMAL     = "randomNormal"
	TARGET_FOE_SIDE          = "foeSide"
	TARGET_ALLY_SIDE         = "allySide"
	TARGET_ALL               = "all"
)

// StatID indexes stored stats
type StatID int

const (
	STAT_HP StatID = iota
	STAT_ATK
	STAT_DEF
	STAT_SPA
	STAT_SPD
	STAT_SPE
	statCount
)

var statNames = [statCount]string{"hp", "atk", "def", "spa", "spd", "spe"}

func (s StatID) String() string {
	return statNames[s]
}

type StatsTable [statCount]int

// BoostID indexes stat stages
type BoostID int

const (
	BOOST_ATK BoostID = iota
	BOOST_DEF
	BOOST_SPA
	BOOST_SPD
	BOOST_SPE
	BOOST_ACCURACY
	BOOST_EVASION
	boostCount
)

var boostNames = [boostCount]string{"atk", "def", "spa", "spd", "spe", "accuracy", "evasion"}

func (b BoostID) String() string {
	return boostNames[b]
}

// boostOf maps a non HP stat to its stage
func boostOf(stat StatID) BoostID {
	return BoostID(stat - 1)
}

// BoostTable holds one stage per BoostID. Iteration always follows BoostID order.
type BoostTable [boostCount]int

func (b BoostTable) IsZero() bool {
	return b == BoostTable{}
}

func boostIDFromName(name string) (BoostID, bool) {
	for i, n := range boostNames {
		if n == name {
			return BoostID(i), true
		}
	}
	return 0, false
}

// stat stage multipliers as fractions, index 0 is stage 0
var (
	statStageNumerators     = [7]int{2, 3, 4, 5, 6, 7, 8}
	accuracyStageNumerators = [7]int{3, 4, 5, 6, 7, 8, 9}
)

// critical hit chance denominators by crit stage
var critMultipliers = [5]int{0, 24, 8, 2, 1}

type Nature struct {
	Name  string
	Plus  StatID
	Minus StatID
}

// Neutral natures use the same stat for Plus and Minus
var NATURES = map[ID]Nature{
	"hardy":   {"Hardy", STAT_ATK, STAT_ATK},
	"docile":  {"Docile", STAT_DEF, STAT_DEF},
	"serious": {"Serious", STAT_SPE, STAT_SPE},
	"bashful": {"Bashful", STAT_SPA, STAT_SPA},
	"quirky":  {"Quirky", STAT_SPD, STAT_SPD},

	"lonely":  {"Lonely", STAT_ATK, STAT_DEF},
	"brave":   {"Brave", STAT_ATK, STAT_SPE},
	"adamant": {"Adamant", STAT_ATK, STAT_SPA},
	"naughty": {"Naughty", STAT_ATK, STAT_SPD},

	"bold":    {"Bold", STAT_DEF, STAT_ATK},
	"relaxed": {"Relaxed", STAT_DEF, STAT_SPE},
	"impish":  {"Impish", STAT_DEF, STAT_SPA},
	"lax":     {"Lax", STAT_DEF, STAT_SPD},

	"timid": {"Timid", STAT_SPE, STAT_ATK},
	"hasty": {"Hasty", STAT_SPE, STAT_DEF},
	"jolly": {"Jolly", STAT_SPE, STAT_SPA},
	"naive": {"Naive", STAT_SPE, STAT_SPD},

	"modest": {"Modest", STAT_SPA, STAT_ATK},
	"mild":   {"Mild", STAT_SPA, STAT_DEF},
	"quiet":  {"Quiet", STAT_SPA, STAT_SPE},
	"rash":   {"Rash", STAT_SPA, STAT_SPD},

	"calm":    {"Calm", STAT_SPD, STAT_ATK},
	"gentle":  {"Gentle", STAT_SPD, STAT_DEF},
	"sassy":   {"Sassy", STAT_SPD, STAT_SPE},
	"careful": {"Careful", STAT_SPD, STAT_SPA},
}
