package golurk

import (
	"cmp"
	"fmt"
)

const maxEventDepth = 8

// where a listener was found, used for the default sub order
type holderKind int

const (
	HOLDER_POKEMON holderKind = iota
	HOLDER_SLOT
	HOLDER_SIDE
	HOLDER_FIELD
	HOLDER_FORMAT
)

type listener struct {
	effect  *Effect
	handler Handler
	state   *EffectState

	holder     PokemonRef
	holderSide int

	order       int
	priority    int
	subOrder    int
	effectOrder int
	speed       int

	// end is called by the residual pass when the state's duration runs out
	end func()
}

type eventArgs struct {
	id     EventID
	target PokemonRef
	source PokemonRef
	effect *Effect
	move   *ActiveMove
	// onEffect also runs the originating effect's own handler for this event
	onEffect bool
}

func defaultSubOrder(effect *Effect, where holderKind) int {
	switch where {
	case HOLDER_SLOT:
		return 3
	case HOLDER_SIDE:
		return 4
	case HOLDER_FIELD, HOLDER_FORMAT:
		return 5
	}

	switch effect.Kind {
	case KIND_CONDITION:
		return 2
	case KIND_WEATHER:
		return 5
	case KIND_ABILITY:
		return 7
	case KIND_ITEM:
		return 8
	}
	return 0
}

func (b *Battle) newListener(effect *Effect, h Handler, state *EffectState, holder PokemonRef, side int, where holderKind) listener {
	l := listener{
		effect:     effect,
		handler:    h,
		state:      state,
		holder:     holder,
		holderSide: side,
		order:      h.Order,
		priority:   h.Priority,
		subOrder:   h.SubOrder,
	}
	if l.subOrder == 0 {
		l.subOrder = defaultSubOrder(effect, where)
	}
	if state != nil {
		l.effectOrder = state.EffectOrder
	}
	if holder.Valid() {
		l.speed = b.Pokemon(holder).Speed
	}
	return l
}

func compareListeners(a, b listener) int {
	return cmp.Or(
		compareOrder(a.order, a.priority, a.speed, b.order, b.priority, b.speed),
		cmp.Compare(a.subOrder, b.subOrder),
		cmp.Compare(a.effectOrder, b.effectOrder),
	)
}

// pokemonListeners finds handlers for event in scope on everything attached to a Pokemon:
// its status, volatiles, ability, item and the slot conditions of its position.
func (b *Battle) pokemonListeners(ref PokemonRef, event EventID, scope Scope, withDuration bool) []listener {
	p := b.Pokemon(ref)
	var found []listener

	add := func(effect *Effect, state *EffectState, where holderKind, end func()) {
		h, ok := effect.handler(event, scope)
		if !ok && !(withDuration && state != nil && state.Duration > 0) {
			return
		}
		l := b.newListener(effect, h, state, ref, ref.Side, where)
		if withDuration {
			l.end = end
		}
		found = append(found, l)
	}

	if p.Status != "" {
		if effect := b.Dex.Condition(p.Status); effect != nil {
			add(effect, p.StatusState, HOLDER_POKEMON, func() { b.CureStatus(ref, false) })
		}
	}
	for _, state := range p.Volatiles {
		if effect := b.Dex.Condition(state.ID); effect != nil {
			id := state.ID
			add(effect, state, HOLDER_POKEMON, func() { b.RemoveVolatile(ref, id) })
		}
	}
	if p.Ability != "" {
		if effect := b.Dex.Ability(p.Ability); effect != nil {
			add(effect, p.AbilityState, HOLDER_POKEMON, nil)
		}
	}
	if p.Item != "" {
		if effect := b.Dex.Item(p.Item); effect != nil {
			add(effect, p.ItemState, HOLDER_POKEMON, nil)
		}
	}
	// a fainted Pokemon keeps its position until it is replaced
	side := b.Sides[ref.Side]
	if p.Position < len(side.Active) && side.Active[p.Position] == ref.Slot {
		for _, state := range side.SlotConditions[p.Position] {
			if effect := b.Dex.Condition(state.ID); effect != nil {
				position, id := p.Position, state.ID
				add(effect, state, HOLDER_SLOT, func() { b.RemoveSlotCondition(ref.Side, position, id) })
			}
		}
	}

	return found
}

func (b *Battle) sideListeners(sideIndex int, event EventID, scope Scope, withDuration bool) []listener {
	var found []listener
	for _, state := range b.Sides[sideIndex].Conditions {
		effect := b.Dex.Condition(state.ID)
		if effect == nil {
			continue
		}
		h, ok := effect.handler(event, scope)
		if !ok && !(withDuration && state.Duration > 0) {
			continue
		}
		l := b.newListener(effect, h, state, NoPokemon, sideIndex, HOLDER_SIDE)
		if withDuration {
			id := state.ID
			l.end = func() { b.RemoveSideCondition(sideIndex, id) }
		}
		found = append(found, l)
	}
	return found
}

// fieldListeners finds handlers on weather, terrain and pseudo weathers. holder is the Pokemon
// the handler should be run for, NoPokemon for field level events.
func (b *Battle) fieldListeners(event EventID, holder PokemonRef, withDuration bool) []listener {
	var found []listener

	add := func(effect *Effect, state *EffectState, end func()) {
		if effect == nil {
			return
		}
		h, ok := effect.handler(event, SCOPE_SELF)
		if !ok && !(withDuration && state != nil && state.Duration > 0) {
			return
		}
		l := b.newListener(effect, h, state, holder, -1, HOLDER_FIELD)
		if holder.Valid() {
			l.holderSide = holder.Side
		}
		if withDuration {
			l.end = end
		}
		found = append(found, l)
	}

	if b.Field.Weather != "" {
		add(b.Dex.Condition(b.Field.Weather), b.Field.WeatherState, func() { b.ClearWeather() })
	}
	if b.Field.Terrain != "" {
		add(b.Dex.Condition(b.Field.Terrain), b.Field.TerrainState, func() { b.ClearTerrain() })
	}
	for _, state := range b.Field.PseudoWeather {
		id := state.ID
		add(b.Dex.Condition(id), state, func() { b.RemovePseudoWeather(id) })
	}

	return found
}

func (b *Battle) formatListeners(event EventID, holder PokemonRef) []listener {
	var found []listener
	for _, rule := range b.Format.Rules {
		if h, ok := rule.handler(event, SCOPE_SELF); ok {
			l := b.newListener(rule, h, nil, holder, -1, HOLDER_FORMAT)
			if holder.Valid() {
				l.holderSide = holder.Side
			}
			found = append(found, l)
		}
	}
	return found
}

// findListeners rebuilds the listener set of one event from current battle state.
func (b *Battle) findListeners(args eventArgs) []listener {
	var found []listener

	if args.onEffect && args.effect != nil {
		if h, ok := args.effect.handler(args.id, SCOPE_SELF); ok {
			l := b.newListener(args.effect, h, nil, args.target, -1, HOLDER_POKEMON)
			if args.target.Valid() {
				l.holderSide = args.target.Side
			}
			found = append(found, l)
		}
	}

	targetSide := -1
	if args.target.Valid() {
		target := b.Pokemon(args.target)
		sourceActive := args.source.Valid() && b.Pokemon(args.source).IsActive
		if target.IsActive || sourceActive {
			found = append(found, b.pokemonListeners(args.target, args.id, SCOPE_SELF, false)...)

			for _, other := range b.allActive() {
				if other.Ref.Side == args.target.Side {
					found = append(found, b.pokemonListeners(other.Ref, args.id, SCOPE_ALLY, false)...)
				} else {
					found = append(found, b.pokemonListeners(other.Ref, args.id, SCOPE_FOE, false)...)
				}
				found = append(found, b.pokemonListeners(other.Ref, args.id, SCOPE_ANY, false)...)
			}
			targetSide = args.target.Side
		}
	}

	if args.source.Valid() {
		found = append(found, b.pokemonListeners(args.source, args.id, SCOPE_SOURCE, false)...)
	}

	if targetSide >= 0 {
		for _, side := range b.Sides {
			if side.Index == targetSide {
				found = append(found, b.sideListeners(side.Index, args.id, SCOPE_SELF, false)...)
			} else {
				found = append(found, b.sideListeners(side.Index, args.id, SCOPE_FOE, false)...)
			}
			found = append(found, b.sideListeners(side.Index, args.id, SCOPE_ANY, false)...)
		}
	}

	found = append(found, b.fieldListeners(args.id, args.target, false)...)
	found = append(found, b.formatListeners(args.id, args.target)...)

	return found
}

// RunEvent dispatches an event to every listener currently attached to the battle and returns the
// final relay value. Listeners are rediscovered on every call, so handlers may freely start
// nested events and mutate state.
func (b *Battle) RunEvent(id EventID, target, source PokemonRef, effect *Effect, relay Relay) Relay {
	return b.dispatch(eventArgs{id: id, target: target, source: source, effect: effect}, relay)
}

// runMoveEvent is RunEvent for events caused by a move in progress. The move's own handler
// takes part in the dispatch.
func (b *Battle) runMoveEvent(id EventID, target, source PokemonRef, move *ActiveMove, relay Relay) Relay {
	return b.dispatch(eventArgs{id: id, target: target, source: source, effect: move.Effect, move: move, onEffect: true}, relay)
}

// runEventWithMove is RunEvent with the in progress move attached but without the move's own handler.
func (b *Battle) runEventWithMove(id EventID, target, source PokemonRef, move *ActiveMove, relay Relay) Relay {
	return b.dispatch(eventArgs{id: id, target: target, source: source, effect: move.Effect, move: move}, relay)
}

func (b *Battle) enterEvent(id EventID) {
	b.eventDepth++
	if b.eventDepth > maxEventDepth {
		panic(invariantError{fmt.Sprintf("event %s nested deeper than %d", id, maxEventDepth)})
	}
}

func (b *Battle) dispatch(args eventArgs, relay Relay) Relay {
	b.enterEvent(args.id)
	defer func() { b.eventDepth-- }()

	listeners := b.findListeners(args)
	speedSort(b.prng, listeners, compareListeners)
	b.metrics.eventDispatched(args.id)

	dispatchLogger().V(2).Info("dispatching event", "event", args.id, "target", args.target,
		"listeners", len(listeners), "depth", b.eventDepth)

	modifier := 4096
	for _, l := range listeners {
		if !b.listenerLive(l) || l.handler.Fn == nil {
			continue
		}

		e := &Event{
			ID:         args.id,
			Target:     args.target,
			Source:     args.source,
			Effect:     args.effect,
			Move:       args.move,
			Owner:      l.effect,
			State:      l.state,
			Holder:     l.holder,
			HolderSide: l.holderSide,
			modifier:   &modifier,
		}
		relay = l.handler.Fn(b, e, relay)
		if relay.Aborted {
			dispatchLogger().V(2).Info("event aborted", "event", args.id, "by", l.effect.ID)
			return relay
		}
	}

	if modifier != 4096 {
		relay.Value = applyModifier(relay.Value, modifier)
	}
	return relay
}

// listenerLive reports whether a collected listener may still run. Earlier listeners in the same
// dispatch may have removed its state or knocked out its holder.
func (b *Battle) listenerLive(l listener) bool {
	if l.state != nil && l.state.Removed() {
		return false
	}
	if !l.holder.Valid() {
		return true
	}

	holder := b.Pokemon(l.holder)
	if l.effect.Kind == KIND_STATUS && holder.Status != l.effect.ID {
		return false
	}
	if holder.Fainted && !l.effect.AffectsFainted {
		return false
	}
	return true
}

// SingleEvent runs one effect's handler, used for Start, End and similar lifecycle events.
func (b *Battle) SingleEvent(id EventID, effect *Effect, state *EffectState, target, source PokemonRef, sourceEffect *Effect, relay Relay) Relay {
	h, ok := effect.handler(id, SCOPE_SELF)
	if !ok || h.Fn == nil {
		return relay
	}
	if state != nil && state.Removed() && id != EVENT_END && id != EVENT_SIDE_END && id != EVENT_FIELD_END {
		return relay
	}
	if target.Valid() && effect.Kind == KIND_STATUS && b.Pokemon(target).Status != effect.ID {
		return relay
	}

	b.enterEvent(id)
	defer func() { b.eventDepth-- }()

	modifier := 4096
	e := &Event{
		ID:         id,
		Target:     target,
		Source:     source,
		Effect:     sourceEffect,
		Owner:      effect,
		State:      state,
		Holder:     target,
		HolderSide: -1,
		modifier:   &modifier,
	}
	if target.Valid() {
		e.HolderSide = target.Side
	} else if state != nil && state.Target.Side >= 0 {
		e.HolderSide = state.Target.Side
	}
	if b.activeMove != nil && sourceEffect == b.activeMove.Effect {
		e.Move = b.activeMove
	}

	return h.Fn(b, e, relay)
}

// EachEvent runs an event on every active Pokemon, fastest first.
func (b *Battle) EachEvent(id EventID, effect *Effect) {
	actives := b.allActive()
	b.UpdateSpeed()
	speedSort(b.prng, actives, func(x, y *Pokemon) int {
		return cmp.Compare(y.Speed, x.Speed)
	})

	for _, p := range actives {
		if p.Fainted {
			continue
		}
		b.RunEvent(id, p.Ref, NoPokemon, effect, Allow())
	}
}

// ResidualEvent runs the end of turn pass. Every effect with a duration is counted down and
// ended at zero, the rest of the residual handlers run in dispatch order. Faints are
// processed after each handler.
func (b *Battle) ResidualEvent() {
	var listeners []listener

	listeners = append(listeners, b.fieldListeners(EVENT_FIELD_RESIDUAL, NoPokemon, true)...)
	for _, side := range b.Sides {
		listeners = append(listeners, b.sideListeners(side.Index, EVENT_SIDE_RESIDUAL, SCOPE_SELF, true)...)
		for pos := range side.Active {
			p := side.ActivePokemon(pos)
			if p == nil {
				continue
			}
			listeners = append(listeners, b.pokemonListeners(p.Ref, EVENT_RESIDUAL, SCOPE_SELF, true)...)
			listeners = append(listeners, b.fieldListeners(EVENT_RESIDUAL, p.Ref, false)...)
			listeners = append(listeners, b.formatListeners(EVENT_RESIDUAL, p.Ref)...)
		}
	}

	b.UpdateSpeed()
	for i := range listeners {
		if listeners[i].holder.Valid() {
			listeners[i].speed = b.Pokemon(listeners[i].holder).Speed
		}
	}
	speedSort(b.prng, listeners, compareListeners)

	for _, l := range listeners {
		if l.state != nil && l.state.Removed() {
			continue
		}
		if l.holder.Valid() && b.Pokemon(l.holder).Fainted && l.subOrder != 3 {
			continue
		}

		if l.end != nil && l.state != nil && l.state.Duration > 0 {
			l.state.Duration--
			if l.state.Duration == 0 {
				l.end()
				if b.State == StateEnded {
					return
				}
				continue
			}
		}

		if l.handler.Fn == nil || !b.listenerLive(l) {
			continue
		}

		id := EVENT_RESIDUAL
		if !l.holder.Valid() {
			if l.holderSide >= 0 {
				id = EVENT_SIDE_RESIDUAL
			} else {
				id = EVENT_FIELD_RESIDUAL
			}
		}

		b.enterEvent(id)
		modifier := 4096
		l.handler.Fn(b, &Event{
			ID:         id,
			Target:     l.holder,
			Source:     NoPokemon,
			Owner:      l.effect,
			State:      l.state,
			Holder:     l.holder,
			HolderSide: l.holderSide,
			modifier:   &modifier,
		}, Allow())
		b.eventDepth--

		b.FaintMessages()
		if b.State == StateEnded {
			return
		}
	}
}
