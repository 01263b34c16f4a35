package golurk

import "fmt"

var builtinItems = map[ID]*Effect{}

func registerItem(e *Effect) {
	if _, ok := builtinItems[e.ID]; ok {
		panic(fmt.Sprintf("item %s registered twice", e.ID))
	}
	builtinItems[e.ID] = e
}

func item(name string) *Effect {
	return NewEffect(ToID(name), name, KIND_ITEM)
}

func megaStone(name, megaForme, baseForme string) *Effect {
	stone := item(name)
	stone.MegaStone = megaForme
	stone.MegaEvolves = baseForme
	return stone
}

func init() {
	registerItem(item("Leftovers").
		Handle(SCOPE_SELF, EVENT_RESIDUAL, Handler{Order: 5, SubOrder: 4, Fn: func(b *Battle, e *Event, r Relay) Relay {
			b.Heal(b.Pokemon(e.Target).MaxHp/16, e.Target, NoPokemon, e.Owner)
			return r
		}}))

	registerItem(item("Life Orb").
		On(EVENT_MODIFY_DAMAGE, func(b *Battle, e *Event, r Relay) Relay {
			e.ChainModify(5324, 4096)
			return r
		}).
		On(EVENT_AFTER_SELF, func(b *Battle, e *Event, r Relay) Relay {
			if e.Move == nil || e.Move.IsStatus() || e.Source == e.Target || b.Pokemon(e.Target).ForceSwitchFlag {
				return r
			}
			b.Damage(b.Pokemon(e.Target).MaxHp/10, e.Target, e.Target, e.Owner)
			return r
		}))

	scarf := item("Choice Scarf").
		On(EVENT_MODIFY_SPE, func(b *Battle, e *Event, r Relay) Relay {
			e.ChainModify(3, 2)
			return r
		}).
		On(EVENT_MODIFY_MOVE, func(b *Battle, e *Event, r Relay) Relay {
			b.AddVolatile(e.Target, VOLATILE_CHOICE_LOCK, e.Target, e.Owner)
			return r
		})
	scarf.IsChoice = true
	registerItem(scarf)

	registerItem(item("Focus Sash").
		Handle(SCOPE_SELF, EVENT_DAMAGE, Handler{Priority: -40, Fn: func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if e.Effect == nil || e.Effect.Kind != KIND_MOVE || p.Hp != p.MaxHp || r.Value < p.Hp {
				return r
			}
			if b.UseItem(e.Target, false) {
				return Val(p.Hp - 1)
			}
			return r
		}}))

	sitrus := item("Sitrus Berry").
		On(EVENT_AFTER_DAMAGE, func(b *Battle, e *Event, r Relay) Relay {
			p := b.Pokemon(e.Target)
			if p.Hp <= 0 || p.Hp > p.MaxHp/2 {
				return r
			}
			if b.UseItem(e.Target, true) {
				b.Heal(p.MaxHp/4, e.Target, e.Target, e.Owner)
			}
			return r
		})
	sitrus.IsBerry = true
	registerItem(sitrus)

	// Quick Claw rolls for every move, not once per turn
	registerItem(item("Quick Claw").
		On(EVENT_FRACTION_PRIO, func(b *Battle, e *Event, r Relay) Relay {
			if e.Move == nil || e.Move.Priority > 0 {
				return r
			}
			if b.prng.RandomChance(1, 5) {
				b.add("-activate", b.ident(e.Target), "item: Quick Claw")
				return Val(1)
			}
			return r
		}))

	registerItem(item("Lagging Tail").
		On(EVENT_FRACTION_PRIO, func(b *Battle, e *Event, r Relay) Relay {
			return Val(-1)
		}))

	registerItem(item("Toxic Orb").
		Handle(SCOPE_SELF, EVENT_RESIDUAL, Handler{Order: 28, SubOrder: 3, Fn: func(b *Battle, e *Event, r Relay) Relay {
			b.TrySetStatus(e.Target, STATUS_TOXIC, e.Target, e.Owner)
			return r
		}}))

	registerItem(item("Air Balloon").
		On(EVENT_START, func(b *Battle, e *Event, r Relay) Relay {
			b.add("-item", b.ident(e.Target), "Air Balloon")
			return r
		}).
		On(EVENT_DAMAGING_HIT, func(b *Battle, e *Event, r Relay) Relay {
			b.UseItem(e.Target, false)
			return r
		}))

	registerItem(item("Heavy-Duty Boots"))
	registerItem(item("Safety Goggles"))

	registerItem(megaStone("Gengarite", "Gengar-Mega", "Gengar"))
	registerItem(megaStone("Lucarionite", "Lucario-Mega", "Lucario"))
	registerItem(megaStone("Charizardite X", "Charizard-Mega-X", "Charizard"))
}
