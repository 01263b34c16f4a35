package golurk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventTrace EventID = "Trace"

// recorder builds volatiles whose Trace handlers note that they ran.
type recorder struct {
	calls []ID
}

func (rec *recorder) volatile(id ID, priority int, fn func(b *Battle, e *Event, r Relay) Relay) *Effect {
	return NewEffect(id, string(id), KIND_CONDITION).
		Handle(SCOPE_SELF, eventTrace, Handler{Priority: priority, Fn: func(b *Battle, e *Event, r Relay) Relay {
			rec.calls = append(rec.calls, id)
			return fn(b, e, r)
		}})
}

func listenerBattle(t *testing.T, effects ...*Effect) (*Battle, PokemonRef) {
	b := startBattle(t, testDex(effects...),
		[]PokemonSet{testSet("Snorlax", "Splash")},
		[]PokemonSet{testSet("Blissey", "Splash")})
	ref := PokemonRef{SIDE_P1, 0}
	for _, e := range effects {
		require.True(t, b.AddVolatile(ref, e.ID, NoPokemon, nil))
	}
	return b, ref
}

func TestDispatchRelaysInPriorityOrder(t *testing.T) {
	rec := &recorder{}
	b, ref := listenerBattle(t,
		rec.volatile("double", 0, func(b *Battle, e *Event, r Relay) Relay { return Val(r.Value * 2) }),
		rec.volatile("increment", 10, func(b *Battle, e *Event, r Relay) Relay { return Val(r.Value + 1) }),
	)

	relay := b.RunEvent(eventTrace, ref, NoPokemon, nil, Val(1))

	assert.Equal(t, []ID{"increment", "double"}, rec.calls)
	assert.Equal(t, 4, relay.Value)
}

func TestDispatchAbortStopsLaterListeners(t *testing.T) {
	rec := &recorder{}
	b, ref := listenerBattle(t,
		rec.volatile("stop", 5, func(b *Battle, e *Event, r Relay) Relay { return Abort() }),
		rec.volatile("after", 0, func(b *Battle, e *Event, r Relay) Relay { return r }),
	)

	relay := b.RunEvent(eventTrace, ref, NoPokemon, nil, Allow())

	assert.True(t, relay.Aborted)
	assert.False(t, relay.OK())
	assert.Equal(t, []ID{"stop"}, rec.calls)
}

func TestDispatchZeroDoesNotStop(t *testing.T) {
	rec := &recorder{}
	b, ref := listenerBattle(t,
		rec.volatile("zero", 5, func(b *Battle, e *Event, r Relay) Relay { return Val(0) }),
		rec.volatile("after", 0, func(b *Battle, e *Event, r Relay) Relay { return r }),
	)

	relay := b.RunEvent(eventTrace, ref, NoPokemon, nil, Allow())

	assert.Equal(t, []ID{"zero", "after"}, rec.calls)
	assert.False(t, relay.OK())
	assert.False(t, relay.Aborted)
}

func TestDispatchSkipsRemovedListeners(t *testing.T) {
	rec := &recorder{}
	b, ref := listenerBattle(t,
		rec.volatile("remover", 5, func(b *Battle, e *Event, r Relay) Relay {
			b.RemoveVolatile(e.Target, "removed")
			return r
		}),
		rec.volatile("removed", 0, func(b *Battle, e *Event, r Relay) Relay { return r }),
	)

	b.RunEvent(eventTrace, ref, NoPokemon, nil, Allow())

	assert.Equal(t, []ID{"remover"}, rec.calls)
	assert.False(t, b.Pokemon(ref).HasVolatile("removed"))
}

func TestDispatchChainModify(t *testing.T) {
	rec := &recorder{}
	b, ref := listenerBattle(t,
		rec.volatile("boost", 0, func(b *Battle, e *Event, r Relay) Relay {
			e.ChainModify(3, 2)
			return r
		}),
	)

	relay := b.RunEvent(eventTrace, ref, NoPokemon, nil, Val(100))

	assert.Equal(t, 150, relay.Value)
}

func TestDispatchIsReentrant(t *testing.T) {
	rec := &recorder{}
	inner := NewEffect("inner", "inner", KIND_CONDITION).
		Handle(SCOPE_SELF, EVENT_UPDATE, Handler{Fn: func(b *Battle, e *Event, r Relay) Relay {
			rec.calls = append(rec.calls, "inner")
			return Val(r.Value + 10)
		}})
	b, ref := listenerBattle(t,
		inner,
		rec.volatile("outer", 0, func(b *Battle, e *Event, r Relay) Relay {
			nested := b.RunEvent(EVENT_UPDATE, e.Target, NoPokemon, nil, Val(r.Value))
			return Val(nested.Value + 1)
		}),
	)

	relay := b.RunEvent(eventTrace, ref, NoPokemon, nil, Val(1))

	assert.Equal(t, 12, relay.Value)
	assert.Equal(t, []ID{"outer", "inner"}, rec.calls)
	assert.Equal(t, 0, b.eventDepth)
}

func TestDispatchDepthLimit(t *testing.T) {
	rec := &recorder{}
	b, ref := listenerBattle(t,
		rec.volatile("loop", 0, func(b *Battle, e *Event, r Relay) Relay {
			return b.RunEvent(eventTrace, e.Target, NoPokemon, nil, r)
		}),
	)

	assert.PanicsWithValue(t,
		invariantError{"event Trace nested deeper than 8"},
		func() { b.RunEvent(eventTrace, ref, NoPokemon, nil, Allow()) })
	assert.Len(t, rec.calls, maxEventDepth)
}

func TestSingleEventSkipsRemovedState(t *testing.T) {
	rec := &recorder{}
	marker := rec.volatile("marker", 0, func(b *Battle, e *Event, r Relay) Relay { return Val(7) })
	b, ref := listenerBattle(t, marker)

	state := b.Pokemon(ref).Volatile("marker")
	assert.Equal(t, 7, b.SingleEvent(eventTrace, marker, state, ref, NoPokemon, nil, Val(0)).Value)

	b.RemoveVolatile(ref, "marker")
	assert.Equal(t, 0, b.SingleEvent(eventTrace, marker, state, ref, NoPokemon, nil, Val(0)).Value)
}

var testHit = NewEffect("testhit", "Test Hit", KIND_CONDITION)

func TestAbortedDamageAppliesNothing(t *testing.T) {
	shield := NewEffect("shield", "Shield", KIND_CONDITION).
		Handle(SCOPE_SELF, EVENT_DAMAGE, Handler{Fn: func(b *Battle, e *Event, r Relay) Relay { return Abort() }})
	b, ref := listenerBattle(t, shield)
	snorlax := b.Pokemon(ref)
	logLen := len(b.Log())

	assert.Equal(t, 0, b.Damage(50, ref, NoPokemon, testHit))
	assert.Equal(t, snorlax.MaxHp, snorlax.Hp)
	assert.Len(t, b.Log(), logLen)
}

func TestReducedDamageIsWhatApplies(t *testing.T) {
	halve := NewEffect("halve", "Halve", KIND_CONDITION).
		Handle(SCOPE_SELF, EVENT_DAMAGE, Handler{Fn: func(b *Battle, e *Event, r Relay) Relay { return Val(r.Value / 2) }})
	b, ref := listenerBattle(t, halve)
	snorlax := b.Pokemon(ref)

	assert.Equal(t, 25, b.Damage(50, ref, NoPokemon, testHit))
	assert.Equal(t, snorlax.MaxHp-25, snorlax.Hp)
}
