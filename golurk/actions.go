package golurk

import (
	"math"
	"slices"
	"strconv"
)

// The primitives in this file are the only code that mutates combatants, sides and the field.
// Each one asks the relevant events for permission, applies the change, fires the after
// events, logs what actually happened and returns the applied amount.

func (b *Battle) initEffectState(id ID, target, source PokemonRef, sourceEffect *Effect) *EffectState {
	b.effectOrder++
	state := &EffectState{
		ID:          id,
		Target:      target,
		Source:      source,
		SourceSlot:  -1,
		EffectOrder: b.effectOrder,
	}
	if sourceEffect != nil {
		state.SourceEffect = sourceEffect.ID
	}
	if source.Valid() {
		state.SourceSlot = b.Pokemon(source).Position
	}
	return state
}

func (b *Battle) effectDuration(effect *Effect, target, source PokemonRef, sourceEffect *Effect) int {
	if effect.DurationCallback != nil {
		return effect.DurationCallback(b, target, source, sourceEffect)
	}
	return effect.Duration
}

// Damage deals amount damage to target and returns the damage actually dealt.
func (b *Battle) Damage(amount int, target, source PokemonRef, effect *Effect) int {
	p := b.Pokemon(target)
	if p.Hp <= 0 || !p.IsActive {
		return 0
	}
	if amount != 0 {
		amount = max(amount, 1)
	}

	relay := b.RunEvent(EVENT_DAMAGE, target, source, effect, Val(amount))
	if relay.Aborted || relay.Value <= 0 {
		damageLogger().V(2).Info("damage prevented", "target", target, "effect", effect.String())
		return 0
	}

	applied := b.applyDamage(p, max(relay.Value, 1), source, effect)
	p.HurtThisTurn = true
	if source.Valid() && effect.Kind == KIND_MOVE {
		b.Pokemon(source).LastDamage = applied
	}

	name := effect.FullName()
	if effect.ID == STATUS_TOXIC {
		name = string(STATUS_POISON)
	}
	switch {
	case effect.ID == effectConfused.ID:
		b.add("-damage", b.ident(target), health(p), "[from] confusion")
	case effect.Kind == KIND_MOVE || name == "":
		b.add("-damage", b.ident(target), health(p))
	case source.Valid() && (source != target || effect.Kind == KIND_ABILITY):
		b.add("-damage", b.ident(target), health(p), "[from] "+name, b.of(source))
	default:
		b.add("-damage", b.ident(target), health(p), "[from] "+name)
	}

	if effect.Kind == KIND_MOVE && source.Valid() && b.activeMove != nil && b.activeMove.Drain[1] > 0 {
		drain := int(math.Round(float64(applied*b.activeMove.Drain[0]) / float64(b.activeMove.Drain[1])))
		b.Heal(drain, source, target, effectDrain)
	}

	b.RunEvent(EVENT_AFTER_DAMAGE, target, source, effect, Val(applied))
	return applied
}

// DirectDamage skips the Damage event, used for confusion and Struggle recoil.
func (b *Battle) DirectDamage(amount int, target PokemonRef, effect *Effect) int {
	p := b.Pokemon(target)
	if p.Hp <= 0 || amount <= 0 {
		return 0
	}

	applied := b.applyDamage(p, max(amount, 1), target, effect)
	switch effect.ID {
	case effectStruggleRecoil.ID:
		b.add("-damage", b.ident(target), health(p), "[from] recoil")
	case effectConfused.ID:
		b.add("-damage", b.ident(target), health(p), "[from] confusion")
	default:
		b.add("-damage", b.ident(target), health(p))
	}
	return applied
}

func (b *Battle) applyDamage(p *Pokemon, amount int, source PokemonRef, effect *Effect) int {
	if p.Hp <= 0 || amount <= 0 {
		return 0
	}
	applied := min(amount, p.Hp)
	p.Hp -= applied
	if p.Hp == 0 {
		b.Faint(p.Ref, source, effect)
	}
	return applied
}

// Heal restores HP and returns the amount restored.
func (b *Battle) Heal(amount int, target, source PokemonRef, effect *Effect) int {
	if amount > 0 && amount <= 1 {
		amount = 1
	}

	relay := b.RunEvent(EVENT_TRY_HEAL, target, source, effect, Val(amount))
	if relay.Aborted || relay.Value <= 0 {
		return 0
	}

	p := b.Pokemon(target)
	if p.Hp <= 0 || !p.IsActive || p.Hp >= p.MaxHp {
		return 0
	}

	applied := min(relay.Value, p.MaxHp-p.Hp)
	p.Hp += applied

	switch {
	case effect.ID == "leechseed" || effect.ID == "rest":
		b.add("-heal", b.ident(target), health(p), "[silent]")
	case effect.ID == effectDrain.ID:
		b.add("-heal", b.ident(target), health(p), "[from] drain", b.of(source))
	case effect.ID == "wish":
	case effect.Kind == KIND_MOVE:
		b.add("-heal", b.ident(target), health(p))
	case source.Valid() && source != target:
		b.add("-heal", b.ident(target), health(p), from(effect), b.of(source))
	default:
		b.add("-heal", b.ident(target), health(p), from(effect))
	}

	b.RunEvent(EVENT_HEAL, target, source, effect, Val(applied))
	return applied
}

// statusImmune checks type based status immunity and the Immunity event.
func (b *Battle) statusImmune(target PokemonRef, status *Effect) bool {
	p := b.Pokemon(target)
	switch status.ID {
	case STATUS_BURN:
		if p.HasType(TYPENAME_FIRE) {
			return true
		}
	case STATUS_PARA:
		if p.HasType(TYPENAME_ELECTRIC) {
			return true
		}
	case STATUS_POISON, STATUS_TOXIC:
		if p.HasType(TYPENAME_POISON) || p.HasType(TYPENAME_STEEL) {
			return true
		}
	case STATUS_FROZEN:
		if p.HasType(TYPENAME_ICE) {
			return true
		}
	}

	return b.RunEvent(EVENT_IMMUNITY, target, NoPokemon, status, Allow()).Aborted
}

// SetStatus gives target a persistent status. It fails if the target already has one.
func (b *Battle) SetStatus(target PokemonRef, id ID, source PokemonRef, sourceEffect *Effect) bool {
	p := b.Pokemon(target)
	if p.Hp <= 0 {
		return false
	}
	status := b.Dex.Condition(id)
	if status == nil {
		panic(invariantError{"unknown status " + string(id)})
	}
	if !source.Valid() {
		source = target
	}

	moveStatus := b.activeMove != nil && sourceEffect == b.activeMove.Effect && b.activeMove.Status != ""
	if p.Status == id {
		if moveStatus {
			b.add("-fail", b.ident(target), string(p.Status))
		}
		return false
	}
	if p.Status != "" {
		if moveStatus {
			b.add("-fail", b.ident(target))
		}
		return false
	}

	if b.statusImmune(target, status) {
		if moveStatus {
			b.add("-immune", b.ident(target))
		}
		return false
	}

	if !b.RunEvent(EVENT_SET_STATUS, target, source, status, Allow()).OK() {
		return false
	}

	p.Status = id
	p.StatusState = b.initEffectState(id, target, source, sourceEffect)
	p.StatusState.Duration = b.effectDuration(status, target, source, sourceEffect)

	if !b.SingleEvent(EVENT_START, status, p.StatusState, target, source, sourceEffect, Allow()).OK() {
		p.StatusState.removed = true
		p.Status = ""
		p.StatusState = nil
		return false
	}

	b.RunEvent(EVENT_AFTER_STATUS, target, source, status, Allow())
	return true
}

// TrySetStatus is SetStatus that never overwrites or reports on an existing status.
func (b *Battle) TrySetStatus(target PokemonRef, id ID, source PokemonRef, sourceEffect *Effect) bool {
	p := b.Pokemon(target)
	if p.Status != "" {
		return false
	}
	return b.SetStatus(target, id, source, sourceEffect)
}

// CureStatus removes the persistent status. Silent cures log nothing.
func (b *Battle) CureStatus(target PokemonRef, silent bool) bool {
	p := b.Pokemon(target)
	if p.Hp <= 0 || p.Status == "" {
		return false
	}
	if !silent {
		b.add("-curestatus", b.ident(target), string(p.Status), "[msg]")
	}
	if p.StatusState != nil {
		p.StatusState.removed = true
	}
	p.Status = ""
	p.StatusState = nil
	return true
}

// AddVolatile attaches a volatile condition. An existing volatile gets its Restart handler instead.
func (b *Battle) AddVolatile(target PokemonRef, id ID, source PokemonRef, sourceEffect *Effect) bool {
	p := b.Pokemon(target)
	condition := b.Dex.Condition(id)
	if condition == nil {
		panic(invariantError{"unknown volatile " + string(id)})
	}
	if p.Hp <= 0 && !condition.AffectsFainted {
		return false
	}
	if !source.Valid() {
		source = target
	}

	if existing := p.Volatile(id); existing != nil {
		if !condition.HasHandler(EVENT_RESTART, SCOPE_SELF) {
			return false
		}
		return b.SingleEvent(EVENT_RESTART, condition, existing, target, source, sourceEffect, Allow()).OK()
	}

	if !b.RunEvent(EVENT_TRY_VOLATILE, target, source, condition, Allow()).OK() {
		return false
	}

	state := b.initEffectState(id, target, source, sourceEffect)
	state.Duration = b.effectDuration(condition, target, source, sourceEffect)
	p.Volatiles = append(p.Volatiles, state)

	if !b.SingleEvent(EVENT_START, condition, state, target, source, sourceEffect, Allow()).OK() {
		b.dropVolatile(p, state)
		return false
	}
	return true
}

func (b *Battle) dropVolatile(p *Pokemon, state *EffectState) {
	state.removed = true
	p.Volatiles = slices.DeleteFunc(p.Volatiles, func(s *EffectState) bool {
		return s == state
	})
}

func (b *Battle) RemoveVolatile(target PokemonRef, id ID) bool {
	p := b.Pokemon(target)
	state := p.Volatile(id)
	if state == nil {
		return false
	}

	b.dropVolatile(p, state)
	b.SingleEvent(EVENT_END, b.Dex.Condition(id), state, target, NoPokemon, nil, Allow())
	return true
}

// Boost changes stat stages. Stages are clamped to [-6, 6]; the returned table holds the
// changes actually applied.
func (b *Battle) Boost(boosts BoostTable, target, source PokemonRef, effect *Effect, isSecondary, isSelf bool) BoostTable {
	var applied BoostTable
	p := b.Pokemon(target)
	if p.Hp <= 0 || !p.IsActive {
		return applied
	}

	requested := boosts
	var capped BoostTable
	for id := BoostID(0); id < boostCount; id++ {
		capped[id] = p.cappedBoost(id, requested[id])
	}

	relay := b.RunEvent(EVENT_TRY_BOOST, target, source, effect, Relay{Value: 1, Boosts: &capped})
	if relay.Aborted {
		return applied
	}
	final := capped
	if relay.Boosts != nil {
		final = *relay.Boosts
	}

	success := false
	for id := BoostID(0); id < boostCount; id++ {
		if requested[id] == 0 {
			continue
		}
		// a handler removed this stage change
		if capped[id] != 0 && final[id] == 0 {
			continue
		}

		delta := p.cappedBoost(id, final[id])
		p.Boosts[id] += delta
		applied[id] = delta

		msg := "-boost"
		amount := delta
		if final[id] < 0 || p.Boosts[id] == MIN_STAGE {
			msg = "-unboost"
			amount = -delta
		}

		if delta != 0 {
			success = true
			switch {
			case effect == nil:
			case effect.Kind == KIND_ITEM:
				b.add(msg, b.ident(target), id.String(), strconv.Itoa(amount), "[from] item: "+effect.Name)
			case effect.Kind == KIND_ABILITY && !isSecondary:
				b.add(msg, b.ident(target), id.String(), strconv.Itoa(amount), "[from] ability: "+effect.Name)
			default:
				b.add(msg, b.ident(target), id.String(), strconv.Itoa(amount))
			}
		} else if effect != nil && effect.Kind == KIND_ABILITY {
			if isSecondary || isSelf {
				b.add(msg, b.ident(target), id.String(), "0")
			}
		} else if !isSecondary && !isSelf {
			b.add(msg, b.ident(target), id.String(), "0")
		}
	}

	b.RunEvent(EVENT_AFTER_BOOST, target, source, effect, Relay{Value: 1, Boosts: &applied})
	if success {
		for _, v := range applied {
			if v > 0 {
				p.StatsRaisedThisTurn = true
			}
		}
	}
	return applied
}

func (b *Battle) ClearBoosts(target PokemonRef) {
	p := b.Pokemon(target)
	p.Boosts = BoostTable{}
	b.add("-clearboost", b.ident(target))
}

// UseItem consumes the held item.
func (b *Battle) UseItem(target PokemonRef, eat bool) bool {
	p := b.Pokemon(target)
	item := b.Dex.Item(p.Item)
	if item == nil || p.Hp <= 0 {
		return false
	}

	if eat {
		b.add("-enditem", b.ident(target), item.Name, "[eat]")
	} else {
		b.add("-enditem", b.ident(target), item.Name)
	}
	if p.ItemState != nil {
		p.ItemState.removed = true
	}
	p.LastItem = p.Item
	p.Item = ""
	p.ItemState = nil
	return true
}

// SwitchIn brings the party member at slot into an active position. The outgoing Pokemon, if any
// and still standing, is switched out first.
func (b *Battle) SwitchIn(side, position, slot int, sourceEffect *Effect, isDrag bool) bool {
	s := b.Sides[side]
	incoming := &s.Team[slot]
	if incoming.IsActive || incoming.Fainted {
		return false
	}

	if old := s.ActivePokemon(position); old != nil {
		if old.Hp > 0 {
			if !b.RunEvent(EVENT_SWITCH_OUT, old.Ref, NoPokemon, nil, Allow()).OK() {
				return false
			}
			b.switchOut(old)
		}
		old.IsActive = false
	}

	incoming.IsActive = true
	incoming.Position = position
	incoming.NewlySwitched = true
	incoming.ActiveTurns = 0
	incoming.ActiveMoveActions = 0
	for i := range incoming.Moves {
		incoming.Moves[i].Used = false
	}
	s.Active[position] = slot

	incoming.AbilityState = b.initEffectState(incoming.Ability, incoming.Ref, NoPokemon, nil)
	incoming.ItemState = b.initEffectState(incoming.Item, incoming.Ref, NoPokemon, nil)
	incoming.Speed = b.actionSpeed(incoming.Ref)

	verb := "switch"
	if isDrag {
		verb = "drag"
	}
	if sourceEffect != nil {
		b.add(verb, b.ident(incoming.Ref), details(incoming), health(incoming), from(sourceEffect))
	} else {
		b.add(verb, b.ident(incoming.Ref), details(incoming), health(incoming))
	}

	if isDrag {
		b.runSwitch(incoming.Ref)
	} else {
		b.Queue.InsertChoice(&Action{Kind: ACTION_RUN_SWITCH, Pokemon: incoming.Ref, Target: NoPokemon})
	}
	return true
}

// switchOut is the bookkeeping of a Pokemon leaving the field alive.
func (b *Battle) switchOut(p *Pokemon) {
	if ability := b.Dex.Ability(p.Ability); ability != nil {
		b.SingleEvent(EVENT_END, ability, p.AbilityState, p.Ref, NoPokemon, nil, Allow())
	}
	if item := b.Dex.Item(p.Item); item != nil {
		b.SingleEvent(EVENT_END, item, p.ItemState, p.Ref, NoPokemon, nil, Allow())
	}

	b.Queue.CancelAction(p.Ref)
	p.clearVolatiles()
	p.IsActive = false
	p.SwitchFlag = false
	p.ForceSwitchFlag = false
	p.StatsRaisedThisTurn = false
	p.resetTypes()
}

// runSwitch fires the switch in events once a Pokemon is on the field.
func (b *Battle) runSwitch(ref PokemonRef) {
	b.RunEvent(EVENT_SWITCH_IN, ref, NoPokemon, nil, Allow())
	b.RunEvent(EVENT_ENTRY_HAZARD, ref, NoPokemon, nil, Allow())

	p := b.Pokemon(ref)
	if p.Hp <= 0 {
		return
	}
	if ability := b.Dex.Ability(p.Ability); ability != nil {
		b.SingleEvent(EVENT_START, ability, p.AbilityState, ref, NoPokemon, nil, Allow())
	}
	if item := b.Dex.Item(p.Item); item != nil {
		b.SingleEvent(EVENT_START, item, p.ItemState, ref, NoPokemon, nil, Allow())
	}
}

// DragIn forces a random benched Pokemon into position, replacing the current one.
func (b *Battle) DragIn(side, position int) bool {
	s := b.Sides[side]
	targets := s.SwitchTargets()
	if len(targets) == 0 {
		return false
	}
	slot := Sample(b.prng, targets)

	old := s.ActivePokemon(position)
	if old == nil || old.Hp <= 0 {
		return false
	}
	if !b.RunEvent(EVENT_DRAG_OUT, old.Ref, NoPokemon, nil, Allow()).OK() {
		return false
	}
	return b.SwitchIn(side, position, slot, nil, true)
}

// Faint queues a Pokemon for fainting. The faint is announced by FaintMessages.
func (b *Battle) Faint(target, source PokemonRef, effect *Effect) {
	p := b.Pokemon(target)
	if p.Fainted || p.FaintQueued {
		return
	}
	p.Hp = 0
	p.SwitchFlag = false
	p.FaintQueued = true
	b.faintQueue = append(b.faintQueue, faintData{target: target, source: source, effect: effect})
}

type faintData struct {
	target PokemonRef
	source PokemonRef
	effect *Effect
}

// FaintMessages announces every queued faint and checks for a winner. It reports whether the
// battle ended.
func (b *Battle) FaintMessages() bool {
	if b.State == StateEnded {
		return true
	}
	if len(b.faintQueue) == 0 {
		return false
	}

	var last faintData
	for len(b.faintQueue) > 0 {
		data := b.faintQueue[0]
		b.faintQueue = b.faintQueue[1:]
		last = data

		p := b.Pokemon(data.target)
		if p.Fainted || !b.RunEvent(EVENT_BEFORE_FAINT, data.target, data.source, data.effect, Allow()).OK() {
			continue
		}

		b.add("faint", b.ident(data.target))
		side := b.Sides[data.target.Side]
		side.PokemonLeft = max(side.PokemonLeft-1, 0)

		b.RunEvent(EVENT_FAINT, data.target, data.source, data.effect, Allow())
		if ability := b.Dex.Ability(p.Ability); ability != nil {
			b.SingleEvent(EVENT_END, ability, p.AbilityState, data.target, NoPokemon, nil, Allow())
		}
		if item := b.Dex.Item(p.Item); item != nil {
			b.SingleEvent(EVENT_END, item, p.ItemState, data.target, NoPokemon, nil, Allow())
		}

		b.Queue.CancelAction(data.target)
		p.clearVolatiles()
		p.Fainted = true
		p.FaintQueued = false
		p.IsActive = false
		p.Terastallized = ""
		p.Status = ""
		if p.StatusState != nil {
			p.StatusState.removed = true
			p.StatusState = nil
		}
		side.FaintedThisTurn = true
		battleLogger().V(1).Info("pokemon fainted", "pokemon", p.Name, "side", side.ID, "left", side.PokemonLeft)
	}

	return b.checkWin(last)
}

func (b *Battle) checkWin(last faintData) bool {
	if b.Sides[SIDE_P1].Lost() && b.Sides[SIDE_P2].Lost() {
		if last.target.Valid() {
			b.win(last.target.Side)
		} else {
			b.win(-1)
		}
		return true
	}
	for _, side := range b.Sides {
		if b.Sides[side.Foe()].Lost() {
			b.win(side.Index)
			return true
		}
	}
	return false
}

// AddSideCondition starts a side condition, or stacks another layer onto it.
func (b *Battle) AddSideCondition(side int, id ID, source PokemonRef, sourceEffect *Effect) bool {
	condition := b.Dex.Condition(id)
	if condition == nil {
		panic(invariantError{"unknown side condition " + string(id)})
	}
	s := b.Sides[side]
	holder := PokemonRef{Side: side, Slot: -1}

	if state := s.Condition(id); state != nil {
		if condition.MaxLayers > 0 && state.Layers >= condition.MaxLayers {
			return false
		}
		if !condition.HasHandler(EVENT_SIDE_RESTART, SCOPE_SELF) {
			return false
		}
		if !b.SingleEvent(EVENT_SIDE_RESTART, condition, state, NoPokemon, source, sourceEffect, Allow()).OK() {
			return false
		}
		state.Layers++
		return true
	}

	state := b.initEffectState(id, holder, source, sourceEffect)
	state.Layers = 1
	state.Duration = b.effectDuration(condition, NoPokemon, source, sourceEffect)
	s.Conditions = append(s.Conditions, state)

	if !b.SingleEvent(EVENT_SIDE_START, condition, state, NoPokemon, source, sourceEffect, Allow()).OK() {
		state.removed = true
		s.Conditions = slices.DeleteFunc(s.Conditions, func(c *EffectState) bool { return c == state })
		return false
	}

	b.RunEvent(EVENT_SIDE_COND_ADD, source, source, condition, Allow())
	return true
}

func (b *Battle) RemoveSideCondition(side int, id ID) bool {
	s := b.Sides[side]
	state := s.Condition(id)
	if state == nil {
		return false
	}

	state.removed = true
	s.Conditions = slices.DeleteFunc(s.Conditions, func(c *EffectState) bool { return c == state })
	b.SingleEvent(EVENT_SIDE_END, b.Dex.Condition(id), state, NoPokemon, NoPokemon, nil, Allow())
	return true
}

// AddSlotCondition attaches a condition to an active position rather than to its occupant.
func (b *Battle) AddSlotCondition(side, position int, id ID, source PokemonRef, sourceEffect *Effect) bool {
	condition := b.Dex.Condition(id)
	if condition == nil {
		panic(invariantError{"unknown slot condition " + string(id)})
	}
	s := b.Sides[side]
	occupant := NoPokemon
	if p := s.ActivePokemon(position); p != nil {
		occupant = p.Ref
	}

	if state := s.SlotCondition(position, id); state != nil {
		if !condition.HasHandler(EVENT_RESTART, SCOPE_SELF) {
			return false
		}
		return b.SingleEvent(EVENT_RESTART, condition, state, occupant, source, sourceEffect, Allow()).OK()
	}

	state := b.initEffectState(id, PokemonRef{Side: side, Slot: -1}, source, sourceEffect)
	state.Duration = b.effectDuration(condition, occupant, source, sourceEffect)
	s.SlotConditions[position] = append(s.SlotConditions[position], state)

	if !b.SingleEvent(EVENT_START, condition, state, occupant, source, sourceEffect, Allow()).OK() {
		b.dropSlotCondition(side, position, state)
		return false
	}
	return true
}

func (b *Battle) dropSlotCondition(side, position int, state *EffectState) {
	state.removed = true
	s := b.Sides[side]
	s.SlotConditions[position] = slices.DeleteFunc(s.SlotConditions[position], func(c *EffectState) bool {
		return c == state
	})
}

func (b *Battle) RemoveSlotCondition(side, position int, id ID) bool {
	s := b.Sides[side]
	state := s.SlotCondition(position, id)
	if state == nil {
		return false
	}

	b.dropSlotCondition(side, position, state)
	occupant := NoPokemon
	if p := s.ActivePokemon(position); p != nil {
		occupant = p.Ref
	}
	b.SingleEvent(EVENT_END, b.Dex.Condition(id), state, occupant, NoPokemon, nil, Allow())
	return true
}

// SetWeather replaces the current weather. Setting the weather that is already up fails.
func (b *Battle) SetWeather(id ID, source PokemonRef, sourceEffect *Effect) bool {
	weather := b.Dex.Condition(id)
	if weather == nil {
		panic(invariantError{"unknown weather " + string(id)})
	}
	if b.Field.Weather == id {
		return false
	}

	if source.Valid() && !b.RunEvent(EVENT_SET_WEATHER, source, source, weather, Allow()).OK() {
		return false
	}

	prev, prevState := b.Field.Weather, b.Field.WeatherState
	b.Field.Weather = id
	b.Field.WeatherState = b.initEffectState(id, NoPokemon, source, sourceEffect)
	b.Field.WeatherState.Duration = b.effectDuration(weather, NoPokemon, source, sourceEffect)

	if !b.SingleEvent(EVENT_FIELD_START, weather, b.Field.WeatherState, NoPokemon, source, sourceEffect, Allow()).OK() {
		b.Field.Weather, b.Field.WeatherState = prev, prevState
		return false
	}
	if prevState != nil {
		prevState.removed = true
	}
	return true
}

func (b *Battle) ClearWeather() bool {
	if b.Field.Weather == "" {
		return false
	}
	weather := b.Dex.Condition(b.Field.Weather)
	state := b.Field.WeatherState
	state.removed = true
	b.SingleEvent(EVENT_FIELD_END, weather, state, NoPokemon, NoPokemon, nil, Allow())
	b.Field.Weather = ""
	b.Field.WeatherState = nil
	return true
}

func (b *Battle) SetTerrain(id ID, source PokemonRef, sourceEffect *Effect) bool {
	terrain := b.Dex.Condition(id)
	if terrain == nil {
		panic(invariantError{"unknown terrain " + string(id)})
	}
	if b.Field.Terrain == id {
		return false
	}

	prev, prevState := b.Field.Terrain, b.Field.TerrainState
	b.Field.Terrain = id
	b.Field.TerrainState = b.initEffectState(id, NoPokemon, source, sourceEffect)
	b.Field.TerrainState.Duration = b.effectDuration(terrain, NoPokemon, source, sourceEffect)

	if !b.SingleEvent(EVENT_FIELD_START, terrain, b.Field.TerrainState, NoPokemon, source, sourceEffect, Allow()).OK() {
		b.Field.Terrain, b.Field.TerrainState = prev, prevState
		return false
	}
	if prevState != nil {
		prevState.removed = true
	}
	return true
}

func (b *Battle) ClearTerrain() bool {
	if b.Field.Terrain == "" {
		return false
	}
	terrain := b.Dex.Condition(b.Field.Terrain)
	state := b.Field.TerrainState
	state.removed = true
	b.SingleEvent(EVENT_FIELD_END, terrain, state, NoPokemon, NoPokemon, nil, Allow())
	b.Field.Terrain = ""
	b.Field.TerrainState = nil
	return true
}

// AddPseudoWeather starts a room style field effect. Restarting one runs its FieldRestart handler,
// which for rooms ends them.
func (b *Battle) AddPseudoWeather(id ID, source PokemonRef, sourceEffect *Effect) bool {
	condition := b.Dex.Condition(id)
	if condition == nil {
		panic(invariantError{"unknown pseudo weather " + string(id)})
	}

	if state := b.Field.PseudoWeatherState(id); state != nil {
		if !condition.HasHandler(EVENT_FIELD_RESTART, SCOPE_SELF) {
			return false
		}
		return b.SingleEvent(EVENT_FIELD_RESTART, condition, state, NoPokemon, source, sourceEffect, Allow()).OK()
	}

	state := b.initEffectState(id, NoPokemon, source, sourceEffect)
	state.Duration = b.effectDuration(condition, NoPokemon, source, sourceEffect)
	b.Field.PseudoWeather = append(b.Field.PseudoWeather, state)

	if !b.SingleEvent(EVENT_FIELD_START, condition, state, NoPokemon, source, sourceEffect, Allow()).OK() {
		b.dropPseudoWeather(state)
		return false
	}

	b.RunEvent(EVENT_PSEUDO_START, source, source, condition, Allow())
	return true
}

func (b *Battle) dropPseudoWeather(state *EffectState) {
	state.removed = true
	b.Field.PseudoWeather = slices.DeleteFunc(b.Field.PseudoWeather, func(s *EffectState) bool {
		return s == state
	})
}

func (b *Battle) RemovePseudoWeather(id ID) bool {
	state := b.Field.PseudoWeatherState(id)
	if state == nil {
		return false
	}
	b.dropPseudoWeather(state)
	b.SingleEvent(EVENT_FIELD_END, b.Dex.Condition(id), state, NoPokemon, NoPokemon, nil, Allow())
	return true
}

// Terastallize changes a Pokemon's type to its tera type for the rest of the battle.
func (b *Battle) Terastallize(ref PokemonRef) bool {
	p := b.Pokemon(ref)
	side := b.Sides[ref.Side]
	if p.TeraType == "" || p.Terastallized != "" || side.TeraUsed {
		return false
	}

	b.add("-terastallize", b.ident(ref), p.TeraType)
	p.Terastallized = p.TeraType
	side.TeraUsed = true
	p.resetTypes()

	b.RunEvent(EVENT_TERASTALLIZE, ref, NoPokemon, nil, Allow())
	return true
}

// MegaEvolve changes a Pokemon holding its mega stone into its mega forme.
func (b *Battle) MegaEvolve(ref PokemonRef) bool {
	p := b.Pokemon(ref)
	side := b.Sides[ref.Side]
	mega := b.canMegaEvo(p)
	if mega == nil {
		return false
	}
	item := b.Dex.Item(p.Item)

	p.Species = mega
	p.calcStats(true)
	p.resetTypes()
	b.add("detailschange", b.ident(ref), details(p))
	b.add("-mega", b.ident(ref), p.BaseSpecies.Name, item.Name)
	side.MegaUsed = true

	if len(mega.Abilities) > 0 {
		b.setAbility(ref, ToID(mega.Abilities[0]))
	}

	b.RunEvent(EVENT_MEGA_EVOLVE, ref, NoPokemon, nil, Allow())
	return true
}

func (b *Battle) canMegaEvo(p *Pokemon) *Species {
	if !b.Format.CanMegaEvo || b.Sides[p.Ref.Side].MegaUsed || p.Species != p.BaseSpecies {
		return nil
	}
	item := b.Dex.Item(p.Item)
	if item == nil || item.MegaStone == "" || ToID(item.MegaEvolves) != p.Species.ID {
		return nil
	}
	return b.Dex.Species(ToID(item.MegaStone))
}

// setAbility swaps the active ability, ending the old one and starting the new one.
func (b *Battle) setAbility(ref PokemonRef, id ID) {
	p := b.Pokemon(ref)
	if p.Ability == id {
		return
	}
	if old := b.Dex.Ability(p.Ability); old != nil {
		b.SingleEvent(EVENT_END, old, p.AbilityState, ref, NoPokemon, nil, Allow())
	}
	if p.AbilityState != nil {
		p.AbilityState.removed = true
	}

	p.Ability = id
	p.AbilityState = b.initEffectState(id, ref, NoPokemon, nil)
	if ability := b.Dex.Ability(id); ability != nil {
		b.SingleEvent(EVENT_START, ability, p.AbilityState, ref, NoPokemon, nil, Allow())
	}
}
