package golurk

import "fmt"

// STRUGGLE is used when a Pokemon has no usable move left. It never appears in a move set.
const STRUGGLE ID = "struggle"

var builtinMoves = map[ID]*MoveData{}

// registerMove adds a move to the built in data. handlers, when given, attach the move's own
// event handlers to its effect.
func registerMove(m MoveData, handlers ...func(*Effect)) {
	m.ID = ToID(m.Name)
	if _, ok := builtinMoves[m.ID]; ok {
		panic(fmt.Sprintf("move %s registered twice", m.ID))
	}
	if m.Target == "" {
		m.Target = TARGET_NORMAL
	}
	m.Effect = NewEffect(m.ID, m.Name, KIND_MOVE)
	for _, h := range handlers {
		h(m.Effect)
	}
	builtinMoves[m.ID] = &m
}

var (
	contact      = MoveFlags{Contact: true, Protect: true}
	contactPunch = MoveFlags{Contact: true, Protect: true, Punch: true}
	protectable  = MoveFlags{Protect: true}
)

func chance(percent int, effect SecondaryEffect) []SecondaryEffect {
	effect.Chance = percent
	return []SecondaryEffect{effect}
}

func immuneType(t string) func(*Effect) {
	return func(e *Effect) {
		e.On(EVENT_TRY_IMMUNITY, func(b *Battle, e *Event, r Relay) Relay {
			if b.Pokemon(e.Target).HasType(t) {
				return Val(0)
			}
			return r
		})
	}
}

func init() {
	// physical

	registerMove(MoveData{Num: 33, Name: "Tackle", Type: TYPENAME_NORMAL, Category: CATEGORY_PHYSICAL,
		BasePower: 40, Accuracy: 100, PP: 35, Flags: contact})
	registerMove(MoveData{Num: 98, Name: "Quick Attack", Type: TYPENAME_NORMAL, Category: CATEGORY_PHYSICAL,
		BasePower: 40, Accuracy: 100, PP: 30, Priority: 1, Flags: contact})
	registerMove(MoveData{Num: 245, Name: "Extreme Speed", Type: TYPENAME_NORMAL, Category: CATEGORY_PHYSICAL,
		BasePower: 80, Accuracy: 100, PP: 5, Priority: 2, Flags: contact})
	registerMove(MoveData{Num: 34, Name: "Body Slam", Type: TYPENAME_NORMAL, Category: CATEGORY_PHYSICAL,
		BasePower: 85, Accuracy: 100, PP: 15, Flags: contact,
		Secondaries: chance(30, SecondaryEffect{Status: STATUS_PARA})})
	registerMove(MoveData{Num: 38, Name: "Double-Edge", Type: TYPENAME_NORMAL, Category: CATEGORY_PHYSICAL,
		BasePower: 120, Accuracy: 100, PP: 15, Flags: contact, Recoil: [2]int{33, 100}})
	registerMove(MoveData{Num: 89, Name: "Earthquake", Type: TYPENAME_GROUND, Category: CATEGORY_PHYSICAL,
		BasePower: 100, Accuracy: 100, PP: 10, Target: TARGET_ALL_ADJACENT, Flags: protectable})
	registerMove(MoveData{Num: 370, Name: "Close Combat", Type: TYPENAME_FIGHTING, Category: CATEGORY_PHYSICAL,
		BasePower: 120, Accuracy: 100, PP: 5, Flags: contact,
		SelfBoosts: &BoostTable{BOOST_DEF: -1, BOOST_SPD: -1}})
	registerMove(MoveData{Num: 409, Name: "Drain Punch", Type: TYPENAME_FIGHTING, Category: CATEGORY_PHYSICAL,
		BasePower: 75, Accuracy: 100, PP: 10, Flags: contactPunch, Drain: [2]int{1, 2}})
	registerMove(MoveData{Num: 369, Name: "U-turn", Type: TYPENAME_BUG, Category: CATEGORY_PHYSICAL,
		BasePower: 70, Accuracy: 100, PP: 20, Flags: contact, SelfSwitch: true})
	registerMove(MoveData{Num: 394, Name: "Flare Blitz", Type: TYPENAME_FIRE, Category: CATEGORY_PHYSICAL,
		BasePower: 120, Accuracy: 100, PP: 15, Flags: MoveFlags{Contact: true, Protect: true, Defrost: true},
		Recoil: [2]int{33, 100}, Secondaries: chance(10, SecondaryEffect{Status: STATUS_BURN})})
	registerMove(MoveData{Num: 413, Name: "Brave Bird", Type: TYPENAME_FLYING, Category: CATEGORY_PHYSICAL,
		BasePower: 120, Accuracy: 100, PP: 15, Flags: contact, Recoil: [2]int{33, 100}})
	registerMove(MoveData{Num: 442, Name: "Iron Head", Type: TYPENAME_STEEL, Category: CATEGORY_PHYSICAL,
		BasePower: 80, Accuracy: 100, PP: 15, Flags: contact,
		Secondaries: chance(30, SecondaryEffect{VolatileStatus: VOLATILE_FLINCH})})
	registerMove(MoveData{Num: 418, Name: "Bullet Punch", Type: TYPENAME_STEEL, Category: CATEGORY_PHYSICAL,
		BasePower: 40, Accuracy: 100, PP: 30, Priority: 1, Flags: contactPunch})
	registerMove(MoveData{Num: 157, Name: "Rock Slide", Type: TYPENAME_ROCK, Category: CATEGORY_PHYSICAL,
		BasePower: 75, Accuracy: 90, PP: 10, Target: TARGET_ALL_ADJACENT_FOES, Flags: protectable,
		Secondaries: chance(30, SecondaryEffect{VolatileStatus: VOLATILE_FLINCH})})
	registerMove(MoveData{Num: 444, Name: "Stone Edge", Type: TYPENAME_ROCK, Category: CATEGORY_PHYSICAL,
		BasePower: 100, Accuracy: 80, PP: 5, CritRatio: 2, Flags: protectable})
	registerMove(MoveData{Num: 479, Name: "Smack Down", Type: TYPENAME_ROCK, Category: CATEGORY_PHYSICAL,
		BasePower: 50, Accuracy: 100, PP: 15, Flags: protectable, VolatileStatus: VOLATILE_SMACK_DOWN})
	registerMove(MoveData{Num: 242, Name: "Crunch", Type: TYPENAME_DARK, Category: CATEGORY_PHYSICAL,
		BasePower: 80, Accuracy: 100, PP: 15, Flags: contact,
		Secondaries: chance(20, SecondaryEffect{Boosts: &BoostTable{BOOST_DEF: -1}})})
	registerMove(MoveData{Num: 421, Name: "Shadow Claw", Type: TYPENAME_GHOST, Category: CATEGORY_PHYSICAL,
		BasePower: 70, Accuracy: 100, PP: 15, CritRatio: 2, Flags: contact})
	registerMove(MoveData{Num: 337, Name: "Dragon Claw", Type: TYPENAME_DRAGON, Category: CATEGORY_PHYSICAL,
		BasePower: 80, Accuracy: 100, PP: 15, Flags: contact})
	registerMove(MoveData{Num: 453, Name: "Aqua Jet", Type: TYPENAME_WATER, Category: CATEGORY_PHYSICAL,
		BasePower: 40, Accuracy: 100, PP: 20, Priority: 1, Flags: contact})
	registerMove(MoveData{Num: 398, Name: "Poison Jab", Type: TYPENAME_POISON, Category: CATEGORY_PHYSICAL,
		BasePower: 80, Accuracy: 100, PP: 20, Flags: contact,
		Secondaries: chance(30, SecondaryEffect{Status: STATUS_POISON})})
	registerMove(MoveData{Num: 7, Name: "Fire Punch", Type: TYPENAME_FIRE, Category: CATEGORY_PHYSICAL,
		BasePower: 75, Accuracy: 100, PP: 15, Flags: contactPunch,
		Secondaries: chance(10, SecondaryEffect{Status: STATUS_BURN})})
	registerMove(MoveData{Num: 8, Name: "Ice Punch", Type: TYPENAME_ICE, Category: CATEGORY_PHYSICAL,
		BasePower: 75, Accuracy: 100, PP: 15, Flags: contactPunch,
		Secondaries: chance(10, SecondaryEffect{Status: STATUS_FROZEN})})
	registerMove(MoveData{Num: 9, Name: "Thunder Punch", Type: TYPENAME_ELECTRIC, Category: CATEGORY_PHYSICAL,
		BasePower: 75, Accuracy: 100, PP: 15, Flags: contactPunch,
		Secondaries: chance(10, SecondaryEffect{Status: STATUS_PARA})})
	registerMove(MoveData{Num: 525, Name: "Dragon Tail", Type: TYPENAME_DRAGON, Category: CATEGORY_PHYSICAL,
		BasePower: 60, Accuracy: 90, PP: 10, Priority: -6, Flags: contact, ForceSwitch: true})

	// special

	registerMove(MoveData{Num: 85, Name: "Thunderbolt", Type: TYPENAME_ELECTRIC, Category: CATEGORY_SPECIAL,
		BasePower: 90, Accuracy: 100, PP: 15, Flags: protectable,
		Secondaries: chance(10, SecondaryEffect{Status: STATUS_PARA})})
	registerMove(MoveData{Num: 53, Name: "Flamethrower", Type: TYPENAME_FIRE, Category: CATEGORY_SPECIAL,
		BasePower: 90, Accuracy: 100, PP: 15, Flags: protectable,
		Secondaries: chance(10, SecondaryEffect{Status: STATUS_BURN})})
	registerMove(MoveData{Num: 58, Name: "Ice Beam", Type: TYPENAME_ICE, Category: CATEGORY_SPECIAL,
		BasePower: 90, Accuracy: 100, PP: 10, Flags: protectable,
		Secondaries: chance(10, SecondaryEffect{Status: STATUS_FROZEN})})
	registerMove(MoveData{Num: 57, Name: "Surf", Type: TYPENAME_WATER, Category: CATEGORY_SPECIAL,
		BasePower: 90, Accuracy: 100, PP: 15, Target: TARGET_ALL_ADJACENT, Flags: protectable})
	registerMove(MoveData{Num: 56, Name: "Hydro Pump", Type: TYPENAME_WATER, Category: CATEGORY_SPECIAL,
		BasePower: 110, Accuracy: 80, PP: 5, Flags: protectable})
	registerMove(MoveData{Num: 503, Name: "Scald", Type: TYPENAME_WATER, Category: CATEGORY_SPECIAL,
		BasePower: 80, Accuracy: 100, PP: 15, Flags: MoveFlags{Protect: true, Defrost: true},
		Secondaries: chance(30, SecondaryEffect{Status: STATUS_BURN})},
		func(e *Effect) {
			e.On(EVENT_DAMAGING_HIT, func(b *Battle, e *Event, r Relay) Relay {
				if b.Pokemon(e.Target).Status == STATUS_FROZEN {
					b.CureStatus(e.Target, false)
				}
				return r
			})
		})
	registerMove(MoveData{Num: 247, Name: "Shadow Ball", Type: TYPENAME_GHOST, Category: CATEGORY_SPECIAL,
		BasePower: 80, Accuracy: 100, PP: 15, Flags: protectable,
		Secondaries: chance(20, SecondaryEffect{Boosts: &BoostTable{BOOST_SPD: -1}})})
	registerMove(MoveData{Num: 94, Name: "Psychic", Type: TYPENAME_PSYCHIC, Category: CATEGORY_SPECIAL,
		BasePower: 90, Accuracy: 100, PP: 10, Flags: protectable,
		Secondaries: chance(10, SecondaryEffect{Boosts: &BoostTable{BOOST_SPD: -1}})})
	registerMove(MoveData{Num: 412, Name: "Energy Ball", Type: TYPENAME_GRASS, Category: CATEGORY_SPECIAL,
		BasePower: 90, Accuracy: 100, PP: 10, Flags: protectable,
		Secondaries: chance(10, SecondaryEffect{Boosts: &BoostTable{BOOST_SPD: -1}})})
	registerMove(MoveData{Num: 202, Name: "Giga Drain", Type: TYPENAME_GRASS, Category: CATEGORY_SPECIAL,
		BasePower: 75, Accuracy: 100, PP: 10, Flags: protectable, Drain: [2]int{1, 2}})
	registerMove(MoveData{Num: 188, Name: "Sludge Bomb", Type: TYPENAME_POISON, Category: CATEGORY_SPECIAL,
		BasePower: 90, Accuracy: 100, PP: 10, Flags: protectable,
		Secondaries: chance(30, SecondaryEffect{Status: STATUS_POISON})})
	registerMove(MoveData{Num: 399, Name: "Dark Pulse", Type: TYPENAME_DARK, Category: CATEGORY_SPECIAL,
		BasePower: 80, Accuracy: 100, PP: 15, Target: TARGET_ANY, Flags: protectable,
		Secondaries: chance(20, SecondaryEffect{VolatileStatus: VOLATILE_FLINCH})})
	registerMove(MoveData{Num: 605, Name: "Dazzling Gleam", Type: TYPENAME_FAIRY, Category: CATEGORY_SPECIAL,
		BasePower: 80, Accuracy: 100, PP: 10, Target: TARGET_ALL_ADJACENT_FOES, Flags: protectable})
	registerMove(MoveData{Num: 411, Name: "Focus Blast", Type: TYPENAME_FIGHTING, Category: CATEGORY_SPECIAL,
		BasePower: 120, Accuracy: 70, PP: 5, Flags: protectable,
		Secondaries: chance(10, SecondaryEffect{Boosts: &BoostTable{BOOST_SPD: -1}})})
	registerMove(MoveData{Num: 434, Name: "Draco Meteor", Type: TYPENAME_DRAGON, Category: CATEGORY_SPECIAL,
		BasePower: 130, Accuracy: 90, PP: 5, Flags: protectable, SelfBoosts: &BoostTable{BOOST_SPA: -2}})
	registerMove(MoveData{Num: 521, Name: "Volt Switch", Type: TYPENAME_ELECTRIC, Category: CATEGORY_SPECIAL,
		BasePower: 70, Accuracy: 100, PP: 20, Flags: protectable, SelfSwitch: true})
	registerMove(MoveData{Num: 403, Name: "Air Slash", Type: TYPENAME_FLYING, Category: CATEGORY_SPECIAL,
		BasePower: 75, Accuracy: 95, PP: 15, Target: TARGET_ANY, Flags: protectable,
		Secondaries: chance(30, SecondaryEffect{VolatileStatus: VOLATILE_FLINCH})})

	// status

	registerMove(MoveData{Num: 14, Name: "Swords Dance", Type: TYPENAME_NORMAL, Category: CATEGORY_STATUS,
		PP: 20, Target: TARGET_SELF, Boosts: &BoostTable{BOOST_ATK: 2}})
	registerMove(MoveData{Num: 417, Name: "Nasty Plot", Type: TYPENAME_DARK, Category: CATEGORY_STATUS,
		PP: 20, Target: TARGET_SELF, Boosts: &BoostTable{BOOST_SPA: 2}})
	registerMove(MoveData{Num: 349, Name: "Dragon Dance", Type: TYPENAME_DRAGON, Category: CATEGORY_STATUS,
		PP: 20, Target: TARGET_SELF, Boosts: &BoostTable{BOOST_ATK: 1, BOOST_SPE: 1}})
	registerMove(MoveData{Num: 347, Name: "Calm Mind", Type: TYPENAME_PSYCHIC, Category: CATEGORY_STATUS,
		PP: 20, Target: TARGET_SELF, Boosts: &BoostTable{BOOST_SPA: 1, BOOST_SPD: 1}})
	registerMove(MoveData{Num: 45, Name: "Growl", Type: TYPENAME_NORMAL, Category: CATEGORY_STATUS,
		Accuracy: 100, PP: 40, Target: TARGET_ALL_ADJACENT_FOES, Flags: MoveFlags{Protect: true, Sound: true},
		Boosts: &BoostTable{BOOST_ATK: -1}})
	registerMove(MoveData{Num: 86, Name: "Thunder Wave", Type: TYPENAME_ELECTRIC, Category: CATEGORY_STATUS,
		Accuracy: 90, PP: 20, Flags: protectable, Status: STATUS_PARA, TypeImmunity: true})
	registerMove(MoveData{Num: 261, Name: "Will-O-Wisp", Type: TYPENAME_FIRE, Category: CATEGORY_STATUS,
		Accuracy: 85, PP: 15, Flags: protectable, Status: STATUS_BURN})
	registerMove(MoveData{Num: 92, Name: "Toxic", Type: TYPENAME_POISON, Category: CATEGORY_STATUS,
		Accuracy: 90, PP: 10, Flags: protectable, Status: STATUS_TOXIC})
	registerMove(MoveData{Num: 147, Name: "Spore", Type: TYPENAME_GRASS, Category: CATEGORY_STATUS,
		Accuracy: 100, PP: 15, Flags: MoveFlags{Protect: true, Powder: true}, Status: STATUS_SLEEP},
		immuneType(TYPENAME_GRASS))
	registerMove(MoveData{Num: 95, Name: "Hypnosis", Type: TYPENAME_PSYCHIC, Category: CATEGORY_STATUS,
		Accuracy: 60, PP: 20, Flags: protectable, Status: STATUS_SLEEP})
	registerMove(MoveData{Num: 109, Name: "Confuse Ray", Type: TYPENAME_GHOST, Category: CATEGORY_STATUS,
		Accuracy: 100, PP: 10, Flags: protectable, VolatileStatus: VOLATILE_CONFUSION})
	registerMove(MoveData{Num: 73, Name: "Leech Seed", Type: TYPENAME_GRASS, Category: CATEGORY_STATUS,
		Accuracy: 90, PP: 10, Flags: protectable, VolatileStatus: VOLATILE_LEECH_SEED},
		immuneType(TYPENAME_GRASS))
	registerMove(MoveData{Num: 269, Name: "Taunt", Type: TYPENAME_DARK, Category: CATEGORY_STATUS,
		Accuracy: 100, PP: 20, Flags: protectable, VolatileStatus: VOLATILE_TAUNT})
	registerMove(MoveData{Num: 212, Name: "Mean Look", Type: TYPENAME_NORMAL, Category: CATEGORY_STATUS,
		PP: 5, VolatileStatus: VOLATILE_TRAPPED})

	registerMove(MoveData{Num: 182, Name: "Protect", Type: TYPENAME_NORMAL, Category: CATEGORY_STATUS,
		PP: 10, Priority: 4, Target: TARGET_SELF, Stalling: true, VolatileStatus: VOLATILE_PROTECT},
		func(e *Effect) {
			e.On(EVENT_PREPARE_HIT, func(b *Battle, e *Event, r Relay) Relay {
				// protecting as the last action of the turn always fails
				if b.Queue.WillAct() == nil {
					return Val(0)
				}
				return b.RunEvent(EVENT_STALL_MOVE, e.Target, NoPokemon, e.Owner, r)
			})
			e.On(EVENT_HIT, func(b *Battle, e *Event, r Relay) Relay {
				b.AddVolatile(e.Target, VOLATILE_STALL, e.Target, e.Owner)
				return r
			})
		})

	registerMove(MoveData{Num: 105, Name: "Recover", Type: TYPENAME_NORMAL, Category: CATEGORY_STATUS,
		PP: 5, Target: TARGET_SELF, Heal: [2]int{1, 2}})

	registerMove(MoveData{Num: 156, Name: "Rest", Type: TYPENAME_PSYCHIC, Category: CATEGORY_STATUS,
		PP: 5, Target: TARGET_SELF},
		func(e *Effect) {
			e.On(EVENT_TRY, func(b *Battle, e *Event, r Relay) Relay {
				p := b.Pokemon(e.Target)
				if p.Status == STATUS_SLEEP {
					return Val(0)
				}
				if p.Hp == p.MaxHp {
					b.add("-fail", b.ident(e.Target), "heal")
					return Abort()
				}
				return r
			})
			e.On(EVENT_HIT, func(b *Battle, e *Event, r Relay) Relay {
				if !b.SetStatus(e.Target, STATUS_SLEEP, e.Target, e.Owner) {
					return Val(0)
				}
				// Rest always sleeps for exactly two turns
				p := b.Pokemon(e.Target)
				p.StatusState.Time = 3
				p.StatusState.Counter = 3
				b.Heal(p.MaxHp, e.Target, e.Target, e.Owner)
				return r
			})
		})

	registerMove(MoveData{Num: 273, Name: "Wish", Type: TYPENAME_NORMAL, Category: CATEGORY_STATUS,
		PP: 10, Target: TARGET_SELF, SlotCondition: SLOT_WISH})

	registerMove(MoveData{Num: 191, Name: "Spikes", Type: TYPENAME_GROUND, Category: CATEGORY_STATUS,
		PP: 20, Target: TARGET_FOE_SIDE, SideCondition: SIDE_SPIKES})
	registerMove(MoveData{Num: 390, Name: "Toxic Spikes", Type: TYPENAME_POISON, Category: CATEGORY_STATUS,
		PP: 20, Target: TARGET_FOE_SIDE, SideCondition: SIDE_TOXIC_SPIKES})
	registerMove(MoveData{Num: 446, Name: "Stealth Rock", Type: TYPENAME_ROCK, Category: CATEGORY_STATUS,
		PP: 20, Target: TARGET_FOE_SIDE, SideCondition: SIDE_STEALTH_ROCK})
	registerMove(MoveData{Num: 115, Name: "Reflect", Type: TYPENAME_PSYCHIC, Category: CATEGORY_STATUS,
		PP: 20, Target: TARGET_ALLY_SIDE, SideCondition: SIDE_REFLECT})
	registerMove(MoveData{Num: 113, Name: "Light Screen", Type: TYPENAME_PSYCHIC, Category: CATEGORY_STATUS,
		PP: 30, Target: TARGET_ALLY_SIDE, SideCondition: SIDE_LIGHT_SCREEN})
	registerMove(MoveData{Num: 366, Name: "Tailwind", Type: TYPENAME_FLYING, Category: CATEGORY_STATUS,
		PP: 15, Target: TARGET_ALLY_SIDE, SideCondition: SIDE_TAILWIND})
	registerMove(MoveData{Num: 219, Name: "Safeguard", Type: TYPENAME_NORMAL, Category: CATEGORY_STATUS,
		PP: 25, Target: TARGET_ALLY_SIDE, SideCondition: SIDE_SAFEGUARD})

	registerMove(MoveData{Num: 240, Name: "Rain Dance", Type: TYPENAME_WATER, Category: CATEGORY_STATUS,
		PP: 5, Target: TARGET_ALL, Weather: WEATHER_RAIN})
	registerMove(MoveData{Num: 241, Name: "Sunny Day", Type: TYPENAME_FIRE, Category: CATEGORY_STATUS,
		PP: 5, Target: TARGET_ALL, Weather: WEATHER_SUN})
	registerMove(MoveData{Num: 201, Name: "Sandstorm", Type: TYPENAME_ROCK, Category: CATEGORY_STATUS,
		PP: 10, Target: TARGET_ALL, Weather: WEATHER_SANDSTORM})
	registerMove(MoveData{Num: 604, Name: "Electric Terrain", Type: TYPENAME_ELECTRIC, Category: CATEGORY_STATUS,
		PP: 10, Target: TARGET_ALL, Terrain: TERRAIN_ELECTRIC})
	registerMove(MoveData{Num: 580, Name: "Grassy Terrain", Type: TYPENAME_GRASS, Category: CATEGORY_STATUS,
		PP: 10, Target: TARGET_ALL, Terrain: TERRAIN_GRASSY})
	registerMove(MoveData{Num: 433, Name: "Trick Room", Type: TYPENAME_PSYCHIC, Category: CATEGORY_STATUS,
		PP: 5, Priority: -7, Target: TARGET_ALL, PseudoWeather: PSEUDO_TRICK_ROOM})

	registerMove(MoveData{Num: 18, Name: "Whirlwind", Type: TYPENAME_NORMAL, Category: CATEGORY_STATUS,
		PP: 20, Priority: -6, ForceSwitch: true})
	registerMove(MoveData{Num: 46, Name: "Roar", Type: TYPENAME_NORMAL, Category: CATEGORY_STATUS,
		PP: 20, Priority: -6, Flags: MoveFlags{Sound: true}, ForceSwitch: true})

	registerMove(MoveData{Num: 150, Name: "Splash", Type: TYPENAME_NORMAL, Category: CATEGORY_STATUS,
		PP: 40, Target: TARGET_SELF},
		func(e *Effect) {
			e.On(EVENT_TRY_HIT, func(b *Battle, e *Event, r Relay) Relay {
				b.add("-nothing")
				return r
			})
			e.On(EVENT_HIT, func(b *Battle, e *Event, r Relay) Relay {
				return r
			})
		})

	registerMove(MoveData{Num: 165, Name: "Struggle", Type: TYPELESS, Category: CATEGORY_PHYSICAL,
		BasePower: 50, PP: 1, Target: TARGET_RANDOM_NORMAL, Flags: contact, StruggleRecoil: true},
		func(e *Effect) {
			e.On(EVENT_MODIFY_MOVE, func(b *Battle, e *Event, r Relay) Relay {
				b.add("-activate", b.ident(e.Target), "move: Struggle")
				return r
			})
		})
}
