package golurk

import (
	"fmt"
)

// Volatile, side, slot and field condition ids
const (
	VOLATILE_CONFUSION   ID = "confusion"
	VOLATILE_FLINCH      ID = "flinch"
	VOLATILE_PROTECT     ID = "protect"
	VOLATILE_STALL       ID = "stall"
	VOLATILE_LEECH_SEED  ID = "leechseed"
	VOLATILE_TAUNT       ID = "taunt"
	VOLATILE_TRAPPED     ID = "trapped"
	VOLATILE_SMACK_DOWN  ID = "smackdown"
	VOLATILE_CHOICE_LOCK ID = "choicelock"

	SIDE_SPIKES       ID = "spikes"
	SIDE_TOXIC_SPIKES ID = "toxicspikes"
	SIDE_STEALTH_ROCK ID = "stealthrock"
	SIDE_REFLECT      ID = "reflect"
	SIDE_LIGHT_SCREEN ID = "lightscreen"
	SIDE_TAILWIND     ID = "tailwind"
	SIDE_SAFEGUARD    ID = "safeguard"

	SLOT_WISH ID = "wish"
)

// Effects that only ever appear as the cause of damage or healing.
var (
	effectDrain          = NewEffect("drain", "drain", KIND_CONDITION)
	effectRecoil         = NewEffect("recoil", "Recoil", KIND_CONDITION)
	effectStruggleRecoil = NewEffect("strugglerecoil", "recoil", KIND_CONDITION)
	effectConfused       = NewEffect("confused", "confusion", KIND_CONDITION)
)

var builtinConditions = map[ID]*Effect{}

func registerCondition(e *Effect) {
	if _, ok := builtinConditions[e.ID]; ok {
		panic(fmt.Sprintf("condition %s registered twice", e.ID))
	}
	builtinConditions[e.ID] = e
}

// statusStartLine writes the -status line for a status that just began, naming what caused it.
func (b *Battle) statusStartLine(e *Event) {
	target, status := b.ident(e.Target), string(e.Owner.ID)
	switch {
	case e.Effect == nil:
		b.add("-status", target, status)
	case e.Effect.Kind == KIND_ITEM:
		b.add("-status", target, status, from(e.Effect))
	case e.Effect.Kind == KIND_ABILITY:
		b.add("-status", target, status, from(e.Effect), b.of(e.Source))
	case e.Effect.Kind == KIND_MOVE && e.Owner.ID == STATUS_SLEEP:
		b.add("-status", target, status, from(e.Effect))
	default:
		b.add("-status", target, status)
	}
}

// primaryMoveEffect reports whether the move being used applies id as its main effect,
// rather than as a secondary chance.
func (b *Battle) primaryMoveEffect(id ID) bool {
	if b.activeMove == nil {
		return false
	}
	m := b.activeMove
	return m.Status == id || m.VolatileStatus == id
}

func startStatus(b *Battle, e *Event, r Relay) Relay {
	b.statusStartLine(e)
	return r
}

func sandstormImmune(p *Pokemon) bool {
	return p.HasType(TYPENAME_ROCK) || p.HasType(TYPENAME_GROUND) || p.HasType(TYPENAME_STEEL) ||
		p.HasAbility("sandveil", "sandrush", "sandforce", "overcoat") || p.HasItem("safetygoggles")
}

func weatherStart(logName string) HandlerFunc {
	return func(b *Battle, e *Event, r Relay) Relay {
		if e.Effect != nil && e.Effect.Kind == KIND_ABILITY {
			b.add("-weather", logName, from(e.Effect), b.of(e.Source))
		} else {
			b.add("-weather", logName)
		}
		return r
	}
}

func weatherUpkeep(logName string) HandlerFunc {
	return func(b *Battle, e *Event, r Relay) Relay {
		b.add("-weather", logName, "[upkeep]")
		b.EachEvent(EVENT_WEATHER, e.Owner)
		return r
	}
}

func weatherEnd(b *Battle, e *Event, r Relay) Relay {
	b.add("-weather", "none")
	return r
}

func terrainStart(logName string) HandlerFunc {
	return func(b *Battle, e *Event, r Relay) Relay {
		if e.Effect != nil && e.Effect.Kind == KIND_ABILITY {
			b.add("-fieldstart", logName, from(e.Effect), b.of(e.Source))
		} else {
			b.add("-fieldstart", logName)
		}
		return r
	}
}

func sideStart(logName string) HandlerFunc {
	return func(b *Battle, e *Event, r Relay) Relay {
		b.add("-sidestart", b.sideIdent(e.HolderSide), logName)
		return r
	}
}

func sideEnd(logName string) HandlerFunc {
	return func(b *Battle, e *Event, r Relay) Relay {
		b.add("-sideend", b.sideIdent(e.HolderSide), logName)
		return r
	}
}

// screen halves damage of one category against the holder's side unless the hit is critical.
func screen(category string) HandlerFunc {
	return func(b *Battle, e *Event, r Relay) Relay {
		defender := e.Source
		if e.Move == nil || !defender.Valid() || defender.Side != e.HolderSide || defender == e.Target {
			return r
		}
		if e.Move.Category != category || e.Move.Crit(defender) {
			return r
		}
		if b.Format.ActivePerSide > 1 {
			e.ChainModify(2732, 4096)
		} else {
			e.ChainModify(1, 2)
		}
		return r
	}
}

func init() {
	// persistent statuses

	registerCondition(NewEffect(STATUS_BURN, "brn", KIND_STATUS).
		On(EVENT_START, startStatus).
		Handle(SCOPE_SELF, EVENT_RESIDUAL, Handler{Order: 10, Fn: func(b *Battle, e *Event, r Relay) Relay {
			b.Damage(b.Pokemon(e.Target).MaxHp/16, e.Target, NoPokemon, e.Owner)
			return r
		}}))

	registerCondition(NewEffect(STATUS_PARA, "par", KIND_STATUS).
		On(EVENT_START, startStatus).
		Handle(SCOPE_SELF, EVENT_MODIFY_SPE, Handler{Priority: -101, Fn: func(b *Battle, e *Event, r Relay) Relay {
			speed := e.FinalModify(r.Value)
			if !b.Pokemon(e.Target).HasAbility("quickfeet") {
				speed = speed * 50 / 100
			}
			return Val(speed)
		}}).
		Handle(SCOPE_SELF, EVENT_BEFORE_MOVE, Handler{Priority: 1, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if b.prng.RandomChance(1, 4) {
				b.add("cant", b.ident(e.Target), "par")
				return Abort()
			}
			return r
		}}))

	registerCondition(NewEffect(STATUS_SLEEP, "slp", KIND_STATUS).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			b.statusStartLine(e)
			e.State.Time = b.prng.RandomRange(2, 5)
			e.State.Counter = e.State.Time
			return r
		}).
		Handle(SCOPE_SELF, EVENT_BEFORE_MOVE, Handler{Priority: 10, Fn: func(b *Battle, e *Event, r Relay) Relay {
			e.State.Time--
			if e.State.Time <= 0 {
				b.CureStatus(e.Target, false)
				return r
			}
			b.add("cant", b.ident(e.Target), "slp")
			return Abort()
		}}))

	registerCondition(NewEffect(STATUS_FROZEN, "frz", KIND_STATUS).
		On(EVENT_START, startStatus).
		Handle(SCOPE_SELF, EVENT_BEFORE_MOVE, Handler{Priority: 10, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if e.Move != nil && e.Move.Flags.Defrost {
				return r
			}
			if b.prng.RandomChance(1, 5) {
				b.CureStatus(e.Target, false)
				return r
			}
			b.add("cant", b.ident(e.Target), "frz")
			return Abort()
		}}).
		On(EVENT_AFTER_MOVE, func(b *Battle, e *Event, r Relay) Relay {
			// a defrosting move thaws its user once it is used
			if e.Move != nil && e.Move.Flags.Defrost {
				b.CureStatus(e.Target, false)
			}
			return r
		}).
		On(EVENT_DAMAGING_HIT, func(b *Battle, e *Event, r Relay) Relay {
			if e.Move != nil && e.Move.Type == TYPENAME_FIRE && !e.Move.IsStatus() {
				b.CureStatus(e.Target, false)
			}
			return r
		}))

	registerCondition(NewEffect(STATUS_POISON, "psn", KIND_STATUS).
		On(EVENT_START, startStatus).
		Handle(SCOPE_SELF, EVENT_RESIDUAL, Handler{Order: 9, Fn: func(b *Battle, e *Event, r Relay) Relay {
			b.Damage(b.Pokemon(e.Target).MaxHp/8, e.Target, NoPokemon, e.Owner)
			return r
		}}))

	// tox damage grows by 1/16 each turn and resets on switching in
	registerCondition(NewEffect(STATUS_TOXIC, "tox", KIND_STATUS).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			e.State.Stage = 0
			b.statusStartLine(e)
			return r
		}).
		On(EVENT_SWITCH_IN, func(b *Battle, e *Event, r Relay) Relay {
			e.State.Stage = 0
			return r
		}).
		Handle(SCOPE_SELF, EVENT_RESIDUAL, Handler{Order: 9, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if e.State.Stage < 15 {
				e.State.Stage++
			}
			p := b.Pokemon(e.Target)
			b.Damage(max(p.MaxHp/16, 1)*e.State.Stage, e.Target, NoPokemon, e.Owner)
			return r
		}}))

	// volatiles

	registerCondition(NewEffect(VOLATILE_CONFUSION, "confusion", KIND_CONDITION).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			if e.Effect != nil && e.Effect.Kind == KIND_ABILITY {
				b.add("-start", b.ident(e.Target), "confusion", from(e.Effect), b.of(e.Source))
			} else {
				b.add("-start", b.ident(e.Target), "confusion")
			}
			e.State.Time = b.prng.RandomRange(2, 6)
			return r
		}).
		On(EVENT_END, func(b *Battle, e *Event, r Relay) Relay {
			b.add("-end", b.ident(e.Target), "confusion")
			return r
		}).
		Handle(SCOPE_SELF, EVENT_BEFORE_MOVE, Handler{Priority: 3, Fn: func(b *Battle, e *Event, r Relay) Relay {
			e.State.Time--
			if e.State.Time <= 0 {
				b.RemoveVolatile(e.Target, VOLATILE_CONFUSION)
				return r
			}
			b.add("-activate", b.ident(e.Target), "confusion")
			if !b.prng.RandomChance(33, 100) {
				return r
			}
			b.useConfusionHit(e.Target)
			return Abort()
		}}))

	flinch := NewEffect(VOLATILE_FLINCH, "flinch", KIND_CONDITION).
		WithDuration(1).
		Handle(SCOPE_SELF, EVENT_BEFORE_MOVE, Handler{Priority: 8, Fn: func(b *Battle, e *Event, r Relay) Relay {
			b.add("cant", b.ident(e.Target), "flinch")
			return Abort()
		}})
	flinch.Silent = true
	registerCondition(flinch)

	registerCondition(NewEffect(VOLATILE_PROTECT, "Protect", KIND_CONDITION).
		WithDuration(1).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			b.add("-singleturn", b.ident(e.Target), "Protect")
			return r
		}).
		Handle(SCOPE_SELF, EVENT_TRY_HIT, Handler{Priority: 3, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if e.Move == nil || !e.Move.Flags.Protect {
				return r
			}
			b.add("-activate", b.ident(e.Target), "move: Protect")
			return Abort()
		}}))

	// stall makes consecutive protection less likely to work: 1, 1/3, 1/9 ... down to 1/729
	stall := NewEffect(VOLATILE_STALL, "stall", KIND_CONDITION).
		WithDuration(2).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			e.State.Counter = 3
			return r
		}).
		On(EVENT_RESTART, func(b *Battle, e *Event, r Relay) Relay {
			if e.State.Counter < 729 {
				e.State.Counter *= 3
			}
			e.State.Duration = 2
			return r
		}).
		On(EVENT_STALL_MOVE, func(b *Battle, e *Event, r Relay) Relay {
			counter := max(e.State.Counter, 1)
			if !b.prng.RandomChance(1, counter) {
				b.RemoveVolatile(e.Target, VOLATILE_STALL)
				return Val(0)
			}
			return r
		})
	stall.Silent = true
	registerCondition(stall)

	registerCondition(NewEffect(VOLATILE_LEECH_SEED, "Leech Seed", KIND_CONDITION).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			b.add("-start", b.ident(e.Target), "move: Leech Seed")
			return r
		}).
		Handle(SCOPE_SELF, EVENT_RESIDUAL, Handler{Order: 8, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if !e.State.Source.Valid() || e.State.SourceSlot < 0 {
				return r
			}
			seeder := b.Sides[e.State.Source.Side].ActivePokemon(e.State.SourceSlot)
			if seeder == nil || seeder.Fainted || seeder.Hp <= 0 {
				return r
			}
			damage := b.Damage(b.Pokemon(e.Target).MaxHp/8, e.Target, seeder.Ref, e.Owner)
			if damage > 0 {
				b.Heal(damage, seeder.Ref, e.Target, e.Owner)
			}
			return r
		}}))

	registerCondition(NewEffect(VOLATILE_TAUNT, "Taunt", KIND_CONDITION).
		WithDuration(3).
		ResidualOrder(EVENT_RESIDUAL, 15, 0).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			// taunting something that already moved this turn costs it no turn of the taunt
			p := b.Pokemon(e.Target)
			if p.ActiveTurns > 0 && b.Queue.WillMove(e.Target) == nil {
				e.State.Duration++
			}
			b.add("-start", b.ident(e.Target), "move: Taunt")
			return r
		}).
		On(EVENT_END, func(b *Battle, e *Event, r Relay) Relay {
			b.add("-end", b.ident(e.Target), "move: Taunt")
			return r
		}).
		On(EVENT_DISABLE_MOVE, func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			for _, slot := range p.Moves {
				if data := b.Dex.Move(slot.ID); data != nil && data.Category == CATEGORY_STATUS {
					p.DisableMove(slot.ID)
				}
			}
			return r
		}).
		Handle(SCOPE_SELF, EVENT_BEFORE_MOVE, Handler{Priority: 5, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if e.Move == nil || !e.Move.IsStatus() {
				return r
			}
			b.add("cant", b.ident(e.Target), "move: Taunt", e.Move.Name)
			return Abort()
		}}))

	registerCondition(NewEffect(VOLATILE_TRAPPED, "trapped", KIND_CONDITION).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			if b.Pokemon(e.Target).HasType(TYPENAME_GHOST) {
				b.add("-immune", b.ident(e.Target))
				return Val(0)
			}
			b.add("-activate", b.ident(e.Target), "trapped")
			return r
		}).
		On(EVENT_TRAP_POKEMON, func(b *Battle, e *Event, r Relay) Relay {
			// the trap lasts while the Pokemon that set it stays in
			if src := e.State.Source; src.Valid() && !b.Pokemon(src).IsActive {
				b.RemoveVolatile(e.Target, VOLATILE_TRAPPED)
				return r
			}
			b.Pokemon(e.Target).Trapped = true
			return r
		}))

	registerCondition(NewEffect(VOLATILE_SMACK_DOWN, "Smack Down", KIND_CONDITION).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if !p.HasType(TYPENAME_FLYING) && !p.HasAbility("levitate") && !p.HasItem("airballoon") {
				return Val(0)
			}
			b.add("-start", b.ident(e.Target), "Smack Down")
			return r
		}))

	choiceLock := NewEffect(VOLATILE_CHOICE_LOCK, "choicelock", KIND_CONDITION).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			if b.activeMove == nil {
				panic(invariantError{"choice lock without an active move"})
			}
			e.State.Move = b.activeMove.ID
			return r
		}).
		On(EVENT_BEFORE_MOVE, func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if item := b.Dex.Item(p.Item); item == nil || !item.IsChoice {
				b.RemoveVolatile(e.Target, VOLATILE_CHOICE_LOCK)
				return r
			}
			if e.Move != nil && e.Move.ID != e.State.Move && e.Move.ID != STRUGGLE {
				b.add("move", b.ident(e.Target), e.Move.Name)
				b.attrLastMove("[still]")
				b.add("-fail", b.ident(e.Target))
				return Abort()
			}
			return r
		}).
		On(EVENT_DISABLE_MOVE, func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if item := b.Dex.Item(p.Item); item == nil || !item.IsChoice || !p.HasMove(e.State.Move) {
				b.RemoveVolatile(e.Target, VOLATILE_CHOICE_LOCK)
				return r
			}
			for _, slot := range p.Moves {
				if slot.ID != e.State.Move {
					p.DisableMove(slot.ID)
				}
			}
			return r
		})
	choiceLock.Silent = true
	registerCondition(choiceLock)

	// side conditions

	spikes := NewEffect(SIDE_SPIKES, "Spikes", KIND_CONDITION).
		On(EVENT_SIDE_START, sideStart("Spikes")).
		On(EVENT_SIDE_RESTART, sideStart("Spikes")).
		On(EVENT_ENTRY_HAZARD, func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if grounded, _ := b.isGrounded(e.Target); !grounded || p.HasItem("heavydutyboots") {
				return r
			}
			damageAmounts := [4]int{0, 3, 4, 6}
			b.Damage(damageAmounts[e.State.Layers]*p.MaxHp/24, e.Target, NoPokemon, e.Owner)
			return r
		})
	spikes.MaxLayers = 3
	registerCondition(spikes)

	toxicSpikes := NewEffect(SIDE_TOXIC_SPIKES, "Toxic Spikes", KIND_CONDITION).
		On(EVENT_SIDE_START, sideStart("move: Toxic Spikes")).
		On(EVENT_SIDE_RESTART, sideStart("move: Toxic Spikes")).
		On(EVENT_ENTRY_HAZARD, func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if grounded, _ := b.isGrounded(e.Target); !grounded {
				return r
			}
			switch {
			case p.HasType(TYPENAME_POISON):
				// grounded Poison types absorb the spikes
				b.add("-sideend", b.sideIdent(e.HolderSide), "move: Toxic Spikes", b.of(e.Target))
				b.Sides[e.HolderSide].removeConditionSilently(SIDE_TOXIC_SPIKES)
			case p.HasType(TYPENAME_STEEL) || p.HasItem("heavydutyboots"):
			default:
				status := STATUS_POISON
				if e.State.Layers >= 2 {
					status = STATUS_TOXIC
				}
				source := NoPokemon
				if foe := b.Sides[b.Sides[e.HolderSide].Foe()].ActivePokemon(0); foe != nil {
					source = foe.Ref
				}
				b.TrySetStatus(e.Target, status, source, e.Owner)
			}
			return r
		})
	toxicSpikes.MaxLayers = 2
	registerCondition(toxicSpikes)

	registerCondition(NewEffect(SIDE_STEALTH_ROCK, "Stealth Rock", KIND_CONDITION).
		On(EVENT_SIDE_START, sideStart("move: Stealth Rock")).
		On(EVENT_ENTRY_HAZARD, func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if p.HasItem("heavydutyboots") {
				return r
			}
			typeMod := 0
			for _, t := range p.Types {
				typeMod += typeEffectiveness(TYPENAME_ROCK, t)
			}
			typeMod = clampInt(typeMod, -6, 6)
			var damage int
			if typeMod >= 0 {
				damage = (p.MaxHp << typeMod) / 8
			} else {
				damage = p.MaxHp / (8 << -typeMod)
			}
			b.Damage(damage, e.Target, NoPokemon, e.Owner)
			return r
		}))

	registerCondition(NewEffect(SIDE_REFLECT, "Reflect", KIND_CONDITION).
		WithDuration(5).
		ResidualOrder(EVENT_SIDE_RESIDUAL, 26, 1).
		On(EVENT_SIDE_START, sideStart("Reflect")).
		On(EVENT_SIDE_END, sideEnd("Reflect")).
		Handle(SCOPE_ANY, EVENT_MODIFY_DAMAGE, Handler{Fn: screen(CATEGORY_PHYSICAL)}))

	registerCondition(NewEffect(SIDE_LIGHT_SCREEN, "Light Screen", KIND_CONDITION).
		WithDuration(5).
		ResidualOrder(EVENT_SIDE_RESIDUAL, 26, 2).
		On(EVENT_SIDE_START, sideStart("move: Light Screen")).
		On(EVENT_SIDE_END, sideEnd("move: Light Screen")).
		Handle(SCOPE_ANY, EVENT_MODIFY_DAMAGE, Handler{Fn: screen(CATEGORY_SPECIAL)}))

	registerCondition(NewEffect(SIDE_TAILWIND, "Tailwind", KIND_CONDITION).
		WithDuration(4).
		ResidualOrder(EVENT_SIDE_RESIDUAL, 26, 5).
		On(EVENT_SIDE_START, sideStart("move: Tailwind")).
		On(EVENT_SIDE_END, sideEnd("move: Tailwind")).
		On(EVENT_MODIFY_SPE, func(b *Battle, e *Event, r Relay) Relay {
			e.ChainModify(2, 1)
			return r
		}))

	registerCondition(NewEffect(SIDE_SAFEGUARD, "Safeguard", KIND_CONDITION).
		WithDuration(5).
		ResidualOrder(EVENT_SIDE_RESIDUAL, 26, 3).
		On(EVENT_SIDE_START, sideStart("Safeguard")).
		On(EVENT_SIDE_END, sideEnd("Safeguard")).
		On(EVENT_SET_STATUS, func(b *Battle, e *Event, r Relay) Relay {
			if !e.Source.Valid() || e.Source == e.Target {
				return r
			}
			if b.primaryMoveEffect(e.Effect.ID) {
				b.add("-activate", b.ident(e.Target), "move: Safeguard")
			}
			return Abort()
		}).
		On(EVENT_TRY_VOLATILE, func(b *Battle, e *Event, r Relay) Relay {
			if e.Effect == nil || e.Effect.ID != VOLATILE_CONFUSION || !e.Source.Valid() || e.Source == e.Target {
				return r
			}
			if b.primaryMoveEffect(VOLATILE_CONFUSION) {
				b.add("-activate", b.ident(e.Target), "move: Safeguard")
			}
			return Abort()
		}))

	// slot conditions

	registerCondition(NewEffect(SLOT_WISH, "Wish", KIND_CONDITION).
		WithDuration(2).
		ResidualOrder(EVENT_RESIDUAL, 4, 0).
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			e.State.Counter = b.Pokemon(e.Source).MaxHp / 2
			return r
		}).
		On(EVENT_END, func(b *Battle, e *Event, r Relay) Relay {
			if !e.Target.Valid() || b.Pokemon(e.Target).Fainted {
				return r
			}
			if b.Heal(e.State.Counter, e.Target, e.Target, e.Owner) > 0 {
				b.add("-heal", b.ident(e.Target), health(b.Pokemon(e.Target)), "[from] move: Wish",
					"[wisher] "+b.Pokemon(e.State.Source).Name)
			}
			return r
		}))

	// weather

	registerCondition(NewEffect(WEATHER_RAIN, "RainDance", KIND_WEATHER).
		WithDuration(5).
		On(EVENT_FIELD_START, weatherStart("RainDance")).
		Handle(SCOPE_SELF, EVENT_FIELD_RESIDUAL, Handler{Order: 1, Fn: weatherUpkeep("RainDance")}).
		On(EVENT_FIELD_END, weatherEnd).
		On(EVENT_WEATHER_DAMAGE, func(b *Battle, e *Event, r Relay) Relay {
			switch e.Move.Type {
			case TYPENAME_WATER:
				e.ChainModify(3, 2)
			case TYPENAME_FIRE:
				e.ChainModify(1, 2)
			}
			return r
		}))

	registerCondition(NewEffect(WEATHER_SUN, "SunnyDay", KIND_WEATHER).
		WithDuration(5).
		On(EVENT_FIELD_START, weatherStart("SunnyDay")).
		Handle(SCOPE_SELF, EVENT_FIELD_RESIDUAL, Handler{Order: 1, Fn: weatherUpkeep("SunnyDay")}).
		On(EVENT_FIELD_END, weatherEnd).
		On(EVENT_WEATHER_DAMAGE, func(b *Battle, e *Event, r Relay) Relay {
			switch e.Move.Type {
			case TYPENAME_FIRE:
				e.ChainModify(3, 2)
			case TYPENAME_WATER:
				e.ChainModify(1, 2)
			}
			return r
		}).
		On(EVENT_IMMUNITY, func(b *Battle, e *Event, r Relay) Relay {
			if e.Effect != nil && e.Effect.ID == STATUS_FROZEN {
				return Abort()
			}
			return r
		}))

	registerCondition(NewEffect(WEATHER_SANDSTORM, "Sandstorm", KIND_WEATHER).
		WithDuration(5).
		On(EVENT_FIELD_START, weatherStart("Sandstorm")).
		Handle(SCOPE_SELF, EVENT_FIELD_RESIDUAL, Handler{Order: 1, Fn: weatherUpkeep("Sandstorm")}).
		On(EVENT_FIELD_END, weatherEnd).
		On(EVENT_WEATHER, func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if sandstormImmune(p) {
				return r
			}
			b.Damage(p.MaxHp/16, e.Target, NoPokemon, e.Owner)
			return r
		}).
		Handle(SCOPE_SELF, EVENT_MODIFY_SPD, Handler{Priority: 10, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if b.Pokemon(e.Target).HasType(TYPENAME_ROCK) {
				return Val(modify(r.Value, 3, 2))
			}
			return r
		}}))

	// terrain

	registerCondition(NewEffect(TERRAIN_ELECTRIC, "Electric Terrain", KIND_CONDITION).
		WithDuration(5).
		ResidualOrder(EVENT_FIELD_RESIDUAL, 27, 7).
		On(EVENT_FIELD_START, terrainStart("move: Electric Terrain")).
		On(EVENT_FIELD_END, func(b *Battle, e *Event, r Relay) Relay {
			b.add("-fieldend", "move: Electric Terrain")
			return r
		}).
		On(EVENT_SET_STATUS, func(b *Battle, e *Event, r Relay) Relay {
			if e.Effect.ID != STATUS_SLEEP {
				return r
			}
			if grounded, _ := b.isGrounded(e.Target); !grounded {
				return r
			}
			if b.primaryMoveEffect(STATUS_SLEEP) {
				b.add("-activate", b.ident(e.Target), "move: Electric Terrain")
			}
			return Abort()
		}).
		Handle(SCOPE_SELF, EVENT_BASE_POWER, Handler{Priority: 6, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if grounded, _ := b.isGrounded(e.Target); grounded && e.Move.Type == TYPENAME_ELECTRIC {
				e.ChainModify(5325, 4096)
			}
			return r
		}}))

	registerCondition(NewEffect(TERRAIN_GRASSY, "Grassy Terrain", KIND_CONDITION).
		WithDuration(5).
		ResidualOrder(EVENT_FIELD_RESIDUAL, 27, 7).
		On(EVENT_FIELD_START, terrainStart("move: Grassy Terrain")).
		On(EVENT_FIELD_END, func(b *Battle, e *Event, r Relay) Relay {
			b.add("-fieldend", "move: Grassy Terrain")
			return r
		}).
		Handle(SCOPE_SELF, EVENT_RESIDUAL, Handler{Order: 5, SubOrder: 2, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if grounded, _ := b.isGrounded(e.Target); grounded {
				b.Heal(b.Pokemon(e.Target).MaxHp/16, e.Target, e.Target, e.Owner)
			}
			return r
		}}).
		Handle(SCOPE_SELF, EVENT_BASE_POWER, Handler{Priority: 6, Fn: func(b *Battle, e *Event, r Relay) Relay {
			if grounded, _ := b.isGrounded(e.Target); grounded && e.Move.Type == TYPENAME_GRASS {
				e.ChainModify(5325, 4096)
			}
			if e.Move.ID == "earthquake" && e.Source.Valid() {
				if grounded, _ := b.isGrounded(e.Source); grounded {
					e.ChainModify(1, 2)
				}
			}
			return r
		}}))

	// pseudo weather

	registerCondition(NewEffect(PSEUDO_TRICK_ROOM, "Trick Room", KIND_CONDITION).
		WithDuration(5).
		ResidualOrder(EVENT_FIELD_RESIDUAL, 27, 1).
		On(EVENT_FIELD_START, func(b *Battle, e *Event, r Relay) Relay {
			b.add("-fieldstart", "move: Trick Room", b.of(e.Source))
			return r
		}).
		On(EVENT_FIELD_RESTART, func(b *Battle, e *Event, r Relay) Relay {
			// using Trick Room again undoes it
			b.RemovePseudoWeather(PSEUDO_TRICK_ROOM)
			return r
		}).
		On(EVENT_FIELD_END, func(b *Battle, e *Event, r Relay) Relay {
			b.add("-fieldend", "move: Trick Room")
			return r
		}))
}
