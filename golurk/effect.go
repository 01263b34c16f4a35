package golurk

import "fmt"

type EffectKind int

const (
	KIND_CONDITION EffectKind = iota + 1
	KIND_STATUS
	KIND_WEATHER
	KIND_ABILITY
	KIND_ITEM
	KIND_MOVE
	KIND_FORMAT
)

func (k EffectKind) String() string {
	switch k {
	case KIND_CONDITION:
		return "Condition"
	case KIND_STATUS:
		return "Status"
	case KIND_WEATHER:
		return "Weather"
	case KIND_ABILITY:
		return "Ability"
	case KIND_ITEM:
		return "Item"
	case KIND_MOVE:
		return "Move"
	case KIND_FORMAT:
		return "Format"
	}
	return "Unknown"
}

// EventID names a hook point in battle resolution.
type EventID string

const (
	EVENT_START          EventID = "Start"
	EVENT_RESTART        EventID = "Restart"
	EVENT_END            EventID = "End"
	EVENT_FIELD_START    EventID = "FieldStart"
	EVENT_FIELD_RESTART  EventID = "FieldRestart"
	EVENT_FIELD_END      EventID = "FieldEnd"
	EVENT_SIDE_START     EventID = "SideStart"
	EVENT_SIDE_RESTART   EventID = "SideRestart"
	EVENT_SIDE_END       EventID = "SideEnd"
	EVENT_RESIDUAL       EventID = "Residual"
	EVENT_FIELD_RESIDUAL EventID = "FieldResidual"
	EVENT_SIDE_RESIDUAL  EventID = "SideResidual"
	EVENT_WEATHER        EventID = "Weather"
	EVENT_BEFORE_TURN    EventID = "BeforeTurn"
	EVENT_BEFORE_MOVE    EventID = "BeforeMove"
	EVENT_MOVE_ABORTED   EventID = "MoveAborted"
	EVENT_MODIFY_MOVE    EventID = "ModifyMove"
	EVENT_TRY_MOVE       EventID = "TryMove"
	EVENT_TRY_HIT        EventID = "TryHit"
	EVENT_TRY_HIT_SIDE   EventID = "TryHitSide"
	EVENT_TRY_HIT_FIELD  EventID = "TryHitField"
	EVENT_TRY_IMMUNITY   EventID = "TryImmunity"
	EVENT_IMMUNITY       EventID = "Immunity"
	EVENT_MODIFY_ACC     EventID = "ModifyAccuracy"
	EVENT_ACCURACY       EventID = "Accuracy"
	EVENT_CRIT_RATIO     EventID = "ModifyCritRatio"
	EVENT_BASE_POWER     EventID = "BasePower"
	EVENT_MODIFY_ATK     EventID = "ModifyAtk"
	EVENT_MODIFY_DEF     EventID = "ModifyDef"
	EVENT_MODIFY_SPA     EventID = "ModifySpA"
	EVENT_MODIFY_SPD     EventID = "ModifySpD"
	EVENT_MODIFY_SPE     EventID = "ModifySpe"
	EVENT_WEATHER_DAMAGE EventID = "WeatherModifyDamage"
	EVENT_MODIFY_DAMAGE  EventID = "ModifyDamage"
	EVENT_DAMAGE         EventID = "Damage"
	EVENT_AFTER_DAMAGE   EventID = "AfterDamage"
	EVENT_DAMAGING_HIT   EventID = "DamagingHit"
	EVENT_AFTER_HIT      EventID = "AfterHit"
	EVENT_AFTER_SECOND   EventID = "AfterMoveSecondary"
	EVENT_AFTER_SELF     EventID = "AfterMoveSecondarySelf"
	EVENT_PREPARE_HIT    EventID = "PrepareHit"
	EVENT_TRY            EventID = "Try"
	EVENT_AFTER_MOVE     EventID = "AfterMove"
	EVENT_TRY_HEAL       EventID = "TryHeal"
	EVENT_HEAL           EventID = "Heal"
	EVENT_SET_STATUS     EventID = "SetStatus"
	EVENT_AFTER_STATUS   EventID = "AfterSetStatus"
	EVENT_CURE_STATUS    EventID = "CureStatus"
	EVENT_TRY_VOLATILE   EventID = "TryAddVolatile"
	EVENT_TRY_BOOST      EventID = "TryBoost"
	EVENT_AFTER_BOOST    EventID = "AfterBoost"
	EVENT_SWITCH_IN      EventID = "SwitchIn"
	EVENT_SWITCH_OUT     EventID = "SwitchOut"
	EVENT_DRAG_OUT       EventID = "DragOut"
	EVENT_BEFORE_FAINT   EventID = "BeforeFaint"
	EVENT_FAINT          EventID = "Faint"
	EVENT_MODIFY_PRIO    EventID = "ModifyPriority"
	EVENT_FRACTION_PRIO  EventID = "FractionalPriority"
	EVENT_DISABLE_MOVE   EventID = "DisableMove"
	EVENT_TRAP_POKEMON   EventID = "TrapPokemon"
	EVENT_SET_WEATHER    EventID = "SetWeather"
	EVENT_UPDATE         EventID = "Update"
	EVENT_BATTLE_START   EventID = "BattleStart"
	EVENT_SIDE_COND_ADD  EventID = "SideConditionStart"
	EVENT_PSEUDO_START   EventID = "PseudoWeatherStart"
	EVENT_CHECK_SHOW     EventID = "CheckShow"
	EVENT_TERASTALLIZE   EventID = "Terastallize"
	EVENT_MEGA_EVOLVE    EventID = "MegaEvolve"
	EVENT_STALL_MOVE     EventID = "StallMove"
	EVENT_HIT            EventID = "Hit"
	EVENT_ENTRY_HAZARD   EventID = "EntryHazard"
	EVENT_MODIFY_TYPE    EventID = "ModifyType"
	EVENT_LOCK_MOVE      EventID = "LockMove"
)

// Scope says whose events a handler listens to, relative to the handler's holder.
type Scope int

const (
	// SCOPE_SELF handlers fire for events targeting the holder
	SCOPE_SELF Scope = iota
	SCOPE_ALLY
	SCOPE_FOE
	SCOPE_ANY
	// SCOPE_SOURCE handlers fire for events the holder is the source of
	SCOPE_SOURCE
)

// HandlerFunc receives the event and the current relay value and returns the relay value
// the next listener should see.
type HandlerFunc func(b *Battle, e *Event, r Relay) Relay

type Handler struct {
	Fn HandlerFunc
	// Order sorts ascending, 0 means unordered and runs after every ordered handler
	Order    int
	Priority int
	// SubOrder overrides the default derived from the effect kind when non zero
	SubOrder int
}

type listenerKey struct {
	event EventID
	scope Scope
}

// Effect is a static, read only descriptor shared by every battle.
// Per battle data lives in EffectState.
type Effect struct {
	ID   ID
	Name string
	Kind EffectKind
	// LogName overrides FullName in protocol lines ("move: Stealth Rock")
	LogName string

	Duration         int
	DurationCallback func(b *Battle, target, source PokemonRef, sourceEffect *Effect) int
	MaxLayers        int
	// Silent volatiles do not produce -start / -end lines by themselves
	Silent bool
	// AffectsFainted lets a volatile be added to a fainted Pokemon
	AffectsFainted bool

	// item data
	MegaStone   string
	MegaEvolves string
	IsChoice    bool
	IsBerry     bool

	handlers map[listenerKey]Handler
}

func NewEffect(id ID, name string, kind EffectKind) *Effect {
	return &Effect{ID: id, Name: name, Kind: kind, handlers: map[listenerKey]Handler{}}
}

// On registers fn for events targeting the holder.
func (e *Effect) On(event EventID, fn HandlerFunc) *Effect {
	return e.Handle(SCOPE_SELF, event, Handler{Fn: fn})
}

// Handle registers a handler with explicit scope and ordering.
func (e *Effect) Handle(scope Scope, event EventID, h Handler) *Effect {
	if e.handlers == nil {
		e.handlers = map[listenerKey]Handler{}
	}
	e.handlers[listenerKey{event, scope}] = h
	return e
}

func (e *Effect) WithDuration(turns int) *Effect {
	e.Duration = turns
	return e
}

func (e *Effect) handler(event EventID, scope Scope) (Handler, bool) {
	if e == nil {
		return Handler{}, false
	}
	h, ok := e.handlers[listenerKey{event, scope}]
	return h, ok
}

func (e *Effect) HasHandler(event EventID, scope Scope) bool {
	_, ok := e.handler(event, scope)
	return ok
}

// FullName is the name used after [from] in protocol lines.
func (e *Effect) FullName() string {
	if e == nil {
		return ""
	}
	if e.LogName != "" {
		return e.LogName
	}
	switch e.Kind {
	case KIND_ABILITY:
		return "ability: " + e.Name
	case KIND_ITEM:
		return "item: " + e.Name
	case KIND_MOVE:
		return "move: " + e.Name
	}
	return e.Name
}

func (e *Effect) String() string {
	if e == nil {
		return "<nil effect>"
	}
	return fmt.Sprintf("%s(%s)", e.Kind, e.ID)
}

// EffectState is the per battle state of one active effect.
type EffectState struct {
	ID           ID
	Target       PokemonRef
	Source       PokemonRef
	SourceEffect ID
	// SourceSlot is the active position of the source when the effect began
	SourceSlot int

	Duration    int
	Layers      int
	EffectOrder int

	// general purpose counters, meaning depends on the effect
	Counter int
	Time    int
	Stage   int
	Move    ID

	removed bool
}

func (s *EffectState) Removed() bool {
	return s == nil || s.removed
}

// Relay is the value threaded through every listener of a single dispatch.
type Relay struct {
	Value int
	// Boosts carries the boost table for TryBoost style events
	Boosts *BoostTable
	// Aborted stops the dispatch, no later listener runs
	Aborted bool
}

func Val(v int) Relay {
	return Relay{Value: v}
}

// Allow is the relay for yes/no events
func Allow() Relay {
	return Relay{Value: 1}
}

func Abort() Relay {
	return Relay{Aborted: true}
}

// OK reports whether a yes/no event was allowed
func (r Relay) OK() bool {
	return !r.Aborted && r.Value != 0
}

// Event is handed to each listener. Each dispatch builds its own Event per listener call.
type Event struct {
	ID     EventID
	Target PokemonRef
	Source PokemonRef
	// Effect caused the event: the move being used, the item that triggered, ...
	Effect *Effect
	Move   *ActiveMove

	// Owner is the effect whose handler is running, State its battle state
	Owner      *Effect
	State      *EffectState
	Holder     PokemonRef
	HolderSide int

	modifier *int
}

// ChainModify multiplies the pending modifier of a numeric event by numerator/denominator.
func (e *Event) ChainModify(numerator, denominator int) {
	if e.modifier == nil {
		return
	}
	*e.modifier = chainModifier(*e.modifier, numerator, denominator)
}

// FinalModify applies the pending chained modifier to value now and clears it, for handlers
// that must round after every other modifier.
func (e *Event) FinalModify(value int) int {
	if e.modifier == nil {
		return value
	}
	value = applyModifier(value, *e.modifier)
	*e.modifier = 4096
	return value
}

// ResidualOrder gives an effect a place in the residual pass without a handler of its own,
// so its duration counts down in that order.
func (e *Effect) ResidualOrder(event EventID, order, subOrder int) *Effect {
	if _, ok := e.handler(event, SCOPE_SELF); ok {
		return e
	}
	return e.Handle(SCOPE_SELF, event, Handler{Order: order, SubOrder: subOrder})
}
