package golurk

import "fmt"

var builtinAbilities = map[ID]*Effect{}

func registerAbility(e *Effect) {
	if _, ok := builtinAbilities[e.ID]; ok {
		panic(fmt.Sprintf("ability %s registered twice", e.ID))
	}
	builtinAbilities[e.ID] = e
}

func ability(name string) *Effect {
	return NewEffect(ToID(name), name, KIND_ABILITY)
}

// absorb makes the holder immune to one move type, healing a quarter of its HP instead.
func absorb(moveType string) HandlerFunc {
	return func(b *Battle, e *Event, r Relay) Relay {
		if e.Move == nil || e.Source == e.Target || e.Move.Type != moveType {
			return r
		}
		if b.Heal(b.Pokemon(e.Target).MaxHp/4, e.Target, e.Source, e.Owner) == 0 {
			b.add("-immune", b.ident(e.Target), from(e.Owner))
		}
		return Abort()
	}
}

func weatherSetter(weather ID) HandlerFunc {
	return func(b *Battle, e *Event, r Relay) Relay {
		b.SetWeather(weather, e.Target, e.Owner)
		return r
	}
}

// weatherSpeed doubles speed while one of weathers is up.
func weatherSpeed(weathers ...ID) HandlerFunc {
	return func(b *Battle, e *Event, r Relay) Relay {
		if b.Field.IsWeather(weathers...) {
			e.ChainModify(2, 1)
		}
		return r
	}
}

// abilities with no battle effect in this engine, kept so species data can name them
var inertAbilities = []string{
	"Overgrow", "Blaze", "Torrent", "Solar Power", "Rain Dish", "Lightning Rod", "Cursed Body",
	"Shadow Tag", "Immunity", "Thick Fat", "Moxie", "Inner Focus", "Multiscale", "Unnerve",
	"Sand Veil", "Rough Skin", "Iron Barbs", "Anticipation", "Serene Grace", "Keen Eye",
	"Heatproof", "Illuminate", "Magnet Pull", "Damp", "White Smoke", "Sniper", "Stall",
	"Infiltrator", "Synchronize", "Swarm", "No Guard", "Steadfast", "Adaptability", "Tough Claws",
	"Effect Spore", "Regenerator", "Huge Power", "Sand Rush", "Flame Body", "Gale Wings",
	"Pressure", "Technician", "Quick Feet", "Overcoat", "Sand Force",
}

func init() {
	registerAbility(ability("Intimidate").
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			activated := false
			for _, foe := range b.adjacentFoes(e.Target) {
				if !activated {
					b.add("-ability", b.ident(e.Target), "Intimidate", "boost")
					activated = true
				}
				b.Boost(BoostTable{BOOST_ATK: -1}, foe.Ref, e.Target, e.Owner, true, false)
			}
			return r
		}))

	// grounding checks look the ability up by id
	registerAbility(ability("Levitate"))

	registerAbility(ability("Volt Absorb").
		Handle(SCOPE_SELF, EVENT_TRY_HIT, Handler{Fn: absorb(TYPENAME_ELECTRIC)}))

	registerAbility(ability("Water Absorb").
		Handle(SCOPE_SELF, EVENT_TRY_HIT, Handler{Fn: absorb(TYPENAME_WATER)}))

	registerAbility(ability("Sturdy").
		Handle(SCOPE_SELF, EVENT_DAMAGE, Handler{Priority: -30, Fn: func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if e.Effect == nil || e.Effect.Kind != KIND_MOVE || p.Hp != p.MaxHp || r.Value < p.Hp {
				return r
			}
			b.add("-ability", b.ident(e.Target), "Sturdy")
			return Val(p.Hp - 1)
		}}))

	registerAbility(ability("Static").
		On(EVENT_DAMAGING_HIT, func(b *Battle, e *Event, r Relay) Relay {
			if e.Move == nil || !e.Move.Flags.Contact || !e.Source.Valid() {
				return r
			}
			if b.prng.RandomChance(3, 10) {
				b.TrySetStatus(e.Source, STATUS_PARA, e.Target, e.Owner)
			}
			return r
		}))

	registerAbility(ability("Speed Boost").
		Handle(SCOPE_SELF, EVENT_RESIDUAL, Handler{Order: 28, SubOrder: 2, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if b.Pokemon(e.Target).ActiveTurns > 0 {
				b.Boost(BoostTable{BOOST_SPE: 1}, e.Target, e.Target, e.Owner, false, false)
			}
			return r
		}}))

	registerAbility(ability("Drizzle").On(EVENT_START, weatherSetter(WEATHER_RAIN)))
	registerAbility(ability("Drought").On(EVENT_START, weatherSetter(WEATHER_SUN)))
	registerAbility(ability("Sand Stream").On(EVENT_START, weatherSetter(WEATHER_SANDSTORM)))

	registerAbility(ability("Swift Swim").On(EVENT_MODIFY_SPE, weatherSpeed(WEATHER_RAIN)))
	registerAbility(ability("Chlorophyll").On(EVENT_MODIFY_SPE, weatherSpeed(WEATHER_SUN)))

	registerAbility(ability("Clear Body").
		On(EVENT_TRY_BOOST, func(b *Battle, e *Event, r Relay) Relay {
			if e.Source == e.Target || r.Boosts == nil {
				return r
			}
			lowered := false
			for i, v := range r.Boosts {
				if v < 0 {
					r.Boosts[i] = 0
					lowered = true
				}
			}
			// drops from a move's secondary chance fail quietly
			quiet := e.Effect != nil && e.Effect.Kind == KIND_MOVE && b.activeMove != nil && len(b.activeMove.Secondaries) > 0
			if lowered && !quiet {
				b.add("-fail", b.ident(e.Target), "unboost", from(e.Owner), b.of(e.Target))
			}
			return r
		}))

	registerAbility(ability("Prankster").
		On(EVENT_MODIFY_PRIO, func(b *Battle, e *Event, r Relay) Relay {
			if e.Move == nil || !e.Move.IsStatus() {
				return r
			}
			e.Move.PranksterBoosted = true
			return Val(r.Value + 1)
		}))

	registerAbility(ability("Natural Cure").
		On(EVENT_SWITCH_OUT, func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if p.Status == "" || p.Hp <= 0 {
				return r
			}
			b.add("-curestatus", b.ident(e.Target), string(p.Status), from(e.Owner))
			b.CureStatus(e.Target, true)
			return r
		}))

	// the burn attack drop is skipped in damage calculation for Guts users
	registerAbility(ability("Guts").
		Handle(SCOPE_SELF, EVENT_MODIFY_ATK, Handler{Priority: 5, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if b.Pokemon(e.Target).Status != "" {
				e.ChainModify(3, 2)
			}
			return r
		}}))

	for _, name := range inertAbilities {
		registerAbility(ability(name))
	}
}
