package golurk

import (
	"math"
	"strings"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
)

var attackEventLogger = func() logr.Logger {
	return internalLogger.WithName("attack_event")
}

type hitData struct {
	crit    bool
	typeMod int
	damage  int
}

// ActiveMove is a copy of a move's data that lives while the move executes. Handlers may change
// it freely (type, power, flags) without touching the dex.
type ActiveMove struct {
	MoveData

	User         PokemonRef
	SourceEffect *Effect

	PranksterBoosted bool
	TotalDamage      int

	spreadHit   bool
	selfDropped bool
	hits        map[PokemonRef]*hitData
}

func newActiveMove(data *MoveData, user PokemonRef) *ActiveMove {
	move := &ActiveMove{
		MoveData: *data,
		User:     user,
		hits:     map[PokemonRef]*hitData{},
	}
	move.Secondaries = append([]SecondaryEffect(nil), data.Secondaries...)
	if move.Effect == nil {
		move.Effect = NewEffect(data.ID, data.Name, KIND_MOVE)
	}
	return move
}

func (m *ActiveMove) hit(target PokemonRef) *hitData {
	h, ok := m.hits[target]
	if !ok {
		h = &hitData{}
		m.hits[target] = h
	}
	return h
}

// Crit reports whether the move landed a critical hit on target.
func (m *ActiveMove) Crit(target PokemonRef) bool {
	h, ok := m.hits[target]
	return ok && h.crit
}

// TypeMod is the summed effectiveness against target: +1 per super effective type, -1 per resisting type.
func (m *ActiveMove) TypeMod(target PokemonRef) int {
	h, ok := m.hits[target]
	if !ok {
		return 0
	}
	return h.typeMod
}

func (m *ActiveMove) IsStatus() bool {
	return m.Category == CATEGORY_STATUS
}

// targetsSideOrField is true for moves that act on a side or the whole field rather than on Pokemon
func (m *ActiveMove) targetsSideOrField() bool {
	switch m.Target {
	case TARGET_ALL, TARGET_ALLY_SIDE, TARGET_FOE_SIDE:
		return true
	}
	return false
}

func (b *Battle) setActiveMove(move *ActiveMove, user PokemonRef) {
	move.User = user
	b.activeMove = move
}

func (b *Battle) clearActiveMove() {
	b.activeMove = nil
}

// attrLastMove appends attributes to the last |move| line
func (b *Battle) attrLastMove(attrs ...string) {
	if b.lastMoveLine < 0 || b.lastMoveLine >= len(b.log) {
		return
	}
	b.log[b.lastMoveLine] += "|" + strings.Join(attrs, "|")
}

// targetLocOf is the target location of ref as seen from user: foes are positive, allies negative.
func (b *Battle) targetLocOf(user, ref PokemonRef) int {
	position := b.Pokemon(ref).Position + 1
	if user.Side == ref.Side {
		return -position
	}
	return position
}

// atLoc resolves a target location chosen by user
func (b *Battle) atLoc(user PokemonRef, loc int) *Pokemon {
	side := b.Sides[user.Side]
	if loc > 0 {
		return b.Sides[side.Foe()].ActivePokemon(loc - 1)
	}
	return side.ActivePokemon(-loc - 1)
}

// validTargetLoc reports whether loc is a legal choice for a move with the given target kind.
func (b *Battle) validTargetLoc(loc int, user PokemonRef, targetKind string) bool {
	if loc == 0 {
		return true
	}
	slots := b.Format.ActivePerSide
	if absInt(loc) > slots {
		return false
	}

	sourceLoc := -(b.Pokemon(user).Position + 1)
	isSelf := sourceLoc == loc
	isFoe := loc > 0
	acrossFromTarget := -(slots + 1 - loc)
	var isAdjacent bool
	if isFoe {
		isAdjacent = absInt(acrossFromTarget-sourceLoc) <= 1
	} else {
		isAdjacent = absInt(loc-sourceLoc) == 1
	}

	switch targetKind {
	case TARGET_NORMAL, TARGET_RANDOM_NORMAL:
		return isAdjacent
	case TARGET_ADJACENT_ALLY:
		return isAdjacent && !isFoe
	case TARGET_ADJACENT_FOE:
		return isAdjacent && isFoe
	case TARGET_ANY:
		return !isSelf
	}
	return false
}

// targetRequired reports whether a target location must be chosen for a move in this format.
func (b *Battle) targetRequired(targetKind string) bool {
	if b.Format.ActivePerSide < 2 {
		return false
	}
	switch targetKind {
	case TARGET_NORMAL, TARGET_ANY, TARGET_ADJACENT_FOE, TARGET_ADJACENT_ALLY:
		return true
	}
	return false
}

func (b *Battle) adjacentFoes(user PokemonRef) []*Pokemon {
	p := b.Pokemon(user)
	foes := b.Sides[b.Sides[user.Side].Foe()]
	return lo.Filter(foes.AllActive(), func(foe *Pokemon, _ int) bool {
		across := len(foes.Active) - 1 - foe.Position
		return absInt(across-p.Position) <= 1
	})
}

func (b *Battle) adjacentAllies(user PokemonRef) []*Pokemon {
	p := b.Pokemon(user)
	return lo.Filter(b.Sides[user.Side].AllActive(), func(ally *Pokemon, _ int) bool {
		return ally.Ref != user && absInt(ally.Position-p.Position) == 1
	})
}

func (b *Battle) randomTarget(user PokemonRef, move *ActiveMove) PokemonRef {
	switch move.Target {
	case TARGET_SELF, TARGET_ALL, TARGET_ALLY_SIDE:
		return user
	case TARGET_ADJACENT_ALLY:
		allies := b.adjacentAllies(user)
		if len(allies) == 0 {
			return NoPokemon
		}
		return Sample(b.prng, allies).Ref
	}

	foeSide := b.Sides[b.Sides[user.Side].Foe()]
	if b.Format.ActivePerSide == 1 {
		if foe := foeSide.ActivePokemon(0); foe != nil {
			return foe.Ref
		}
		return NoPokemon
	}
	if foes := b.adjacentFoes(user); len(foes) > 0 {
		return Sample(b.prng, foes).Ref
	}
	if foe := foeSide.ActivePokemon(len(foeSide.Active) - 1 - b.Pokemon(user).Position); foe != nil {
		return foe.Ref
	}
	return NoPokemon
}

// resolveTarget turns the chosen location into a Pokemon, retargeting when the choice is gone.
func (b *Battle) resolveTarget(user PokemonRef, move *ActiveMove, loc int) PokemonRef {
	if move.Target != TARGET_RANDOM_NORMAL && loc != 0 && b.validTargetLoc(loc, user, move.Target) {
		target := b.atLoc(user, loc)
		if target != nil && target.Fainted && target.Ref.Side == user.Side {
			return target.Ref
		}
		if target != nil && !target.Fainted {
			return target.Ref
		}
	}
	return b.randomTarget(user, move)
}

// moveTargets expands the selected target into every Pokemon the move hits.
func (b *Battle) moveTargets(move *ActiveMove, user, target PokemonRef) []PokemonRef {
	refs := func(ps []*Pokemon) []PokemonRef {
		return lo.Map(ps, func(p *Pokemon, _ int) PokemonRef { return p.Ref })
	}

	switch move.Target {
	case TARGET_SELF, TARGET_ALL, TARGET_ALLY_SIDE:
		return []PokemonRef{user}
	case TARGET_FOE_SIDE:
		foes := b.Sides[b.Sides[user.Side].Foe()].AllActive()
		if len(foes) == 0 {
			return nil
		}
		return []PokemonRef{foes[0].Ref}
	case TARGET_ALL_ADJACENT:
		return append(refs(b.adjacentAllies(user)), refs(b.adjacentFoes(user))...)
	case TARGET_ALL_ADJACENT_FOES:
		return refs(b.adjacentFoes(user))
	}

	if !target.Valid() || (b.Pokemon(target).Fainted && target.Side != user.Side) {
		target = b.randomTarget(user, move)
		if !target.Valid() {
			return nil
		}
	}
	if b.Pokemon(target).Fainted {
		return nil
	}
	return []PokemonRef{target}
}

// runMove is a Pokemon's move action: BeforeMove checks, PP, then the move itself.
func (b *Battle) runMove(action *Action) {
	user := action.Pokemon
	p := b.Pokemon(user)
	p.ActiveMoveActions++

	move := action.activeMove
	if move == nil {
		data := b.Dex.Move(action.Move)
		if data == nil {
			panic(invariantError{"unknown move " + string(action.Move)})
		}
		move = newActiveMove(data, user)
	}
	target := b.resolveTarget(user, move, action.TargetLoc)
	b.setActiveMove(move, user)
	defer b.clearActiveMove()

	attackEventLogger().V(1).Info("running move", "pokemon", p.Name, "move", move.ID, "target", target)

	if !b.runEventWithMove(EVENT_BEFORE_MOVE, user, target, move, Allow()).OK() {
		b.runEventWithMove(EVENT_MOVE_ABORTED, user, target, move, Allow())
		p.MoveThisTurnResult = false
		return
	}

	if move.ID != STRUGGLE {
		slot := p.MoveSlot(move.ID)
		if slot == nil || slot.PP <= 0 {
			b.add("cant", b.ident(user), "nopp", move.Name)
			return
		}
		slot.PP--
		slot.Used = true
	}
	p.LastMove = move.ID
	p.MoveThisTurn = move.ID

	p.MoveThisTurnResult = b.useMove(move, user, target)

	b.SingleEvent(EVENT_AFTER_MOVE, move.Effect, nil, user, target, move.Effect, Allow())
	b.runEventWithMove(EVENT_AFTER_MOVE, user, target, move, Allow())
	b.FaintMessages()
}

// useMove logs the move and resolves it against its targets. It reports whether the move did anything.
func (b *Battle) useMove(move *ActiveMove, user, target PokemonRef) bool {
	b.SingleEvent(EVENT_MODIFY_TYPE, move.Effect, nil, user, target, move.Effect, Allow())
	b.runEventWithMove(EVENT_MODIFY_TYPE, user, target, move, Allow())
	b.SingleEvent(EVENT_MODIFY_MOVE, move.Effect, nil, user, target, move.Effect, Allow())
	b.runEventWithMove(EVENT_MODIFY_MOVE, user, target, move, Allow())

	targets := b.moveTargets(move, user, target)
	if len(targets) > 0 && !lo.Contains(targets, target) {
		target = targets[len(targets)-1]
	}

	line := []string{"move", b.ident(user), move.Name, ""}
	if target.Valid() && len(targets) > 0 {
		line[3] = b.ident(target)
	}
	if move.SourceEffect != nil {
		line = append(line, from(move.SourceEffect))
	}
	b.add(line...)
	b.lastMoveLine = len(b.log) - 1

	if len(targets) == 0 {
		b.attrLastMove("[notarget]")
		b.add("-fail", b.ident(user))
		return false
	}

	tryMove := b.SingleEvent(EVENT_TRY_MOVE, move.Effect, nil, user, target, move.Effect, Allow())
	if tryMove.OK() {
		tryMove = b.runEventWithMove(EVENT_TRY_MOVE, user, target, move, Allow())
	}
	if !tryMove.OK() {
		b.runEventWithMove(EVENT_MOVE_ABORTED, user, target, move, Allow())
		return false
	}

	return b.trySpreadMoveHit(targets, user, move)
}

// trySpreadMoveHit runs the hit steps that can filter targets out, then hits whatever is left.
func (b *Battle) trySpreadMoveHit(targets []PokemonRef, user PokemonRef, move *ActiveMove) bool {
	if len(targets) > 1 && !move.targetsSideOrField() {
		move.spreadHit = true
	}

	prepare := b.SingleEvent(EVENT_TRY, move.Effect, nil, user, targets[0], move.Effect, Allow())
	if prepare.OK() {
		prepare = b.SingleEvent(EVENT_PREPARE_HIT, move.Effect, nil, user, targets[0], move.Effect, Allow())
	}
	if prepare.OK() {
		prepare = b.runEventWithMove(EVENT_PREPARE_HIT, user, targets[0], move, Allow())
	}
	if !prepare.OK() {
		if !prepare.Aborted {
			b.add("-fail", b.ident(user))
			b.attrLastMove("[still]")
		}
		return false
	}

	if !move.targetsSideOrField() {
		steps := []func([]PokemonRef, PokemonRef, *ActiveMove) []PokemonRef{
			b.hitStepTryHit,
			b.hitStepTypeImmunity,
			b.hitStepTryImmunity,
			b.hitStepAccuracy,
		}
		for _, step := range steps {
			targets = step(targets, user, move)
			if len(targets) == 0 {
				return false
			}
		}
	}

	if move.spreadHit {
		b.attrLastMove("[spread] " + strings.Join(lo.Map(targets, func(t PokemonRef, _ int) string {
			return b.slot(t)
		}), ","))
	}

	success := b.spreadMoveHit(targets, user, move)
	b.afterMoveHits(targets, user, move)
	return success
}

func (b *Battle) hitStepTryHit(targets []PokemonRef, user PokemonRef, move *ActiveMove) []PokemonRef {
	return lo.Filter(targets, func(target PokemonRef, _ int) bool {
		return b.runMoveEvent(EVENT_TRY_HIT, target, user, move, Allow()).OK()
	})
}

func (b *Battle) hitStepTypeImmunity(targets []PokemonRef, user PokemonRef, move *ActiveMove) []PokemonRef {
	if move.IsStatus() && !move.TypeImmunity {
		return targets
	}
	return lo.Filter(targets, func(target PokemonRef, _ int) bool {
		if target == user {
			return true
		}
		immune, levitate := b.typeImmunity(target, move.Type)
		if !immune {
			return true
		}
		if levitate {
			b.add("-immune", b.ident(target), "[from] ability: Levitate")
		} else {
			b.add("-immune", b.ident(target))
		}
		return false
	})
}

func (b *Battle) hitStepTryImmunity(targets []PokemonRef, user PokemonRef, move *ActiveMove) []PokemonRef {
	return lo.Filter(targets, func(target PokemonRef, _ int) bool {
		if !b.SingleEvent(EVENT_TRY_IMMUNITY, move.Effect, nil, target, user, move.Effect, Allow()).OK() {
			b.add("-immune", b.ident(target))
			return false
		}
		if move.PranksterBoosted && b.Pokemon(user).HasAbility("prankster") && target.Side != user.Side &&
			b.Pokemon(target).HasType(TYPENAME_DARK) {
			b.add("-immune", b.ident(target))
			return false
		}
		return true
	})
}

func (b *Battle) hitStepAccuracy(targets []PokemonRef, user PokemonRef, move *ActiveMove) []PokemonRef {
	p := b.Pokemon(user)
	return lo.Filter(targets, func(target PokemonRef, _ int) bool {
		if move.Accuracy == 0 {
			return true
		}
		if move.Target == TARGET_SELF && move.IsStatus() {
			return true
		}
		if move.ID == "toxic" && p.HasType(TYPENAME_POISON) {
			return true
		}

		accuracy := b.runEventWithMove(EVENT_MODIFY_ACC, target, user, move, Val(move.Accuracy)).Value
		boost := clampInt(p.Boosts[BOOST_ACCURACY]-b.Pokemon(target).Boosts[BOOST_EVASION], MIN_STAGE, MAX_STAGE)
		if boost > 0 {
			accuracy = accuracy * accuracyStageNumerators[boost] / 3
		} else if boost < 0 {
			accuracy = accuracy * 3 / accuracyStageNumerators[-boost]
		}
		accuracy = b.runEventWithMove(EVENT_ACCURACY, target, user, move, Val(accuracy)).Value

		if b.prng.RandomChance(accuracy, 100) {
			return true
		}
		if !move.spreadHit {
			b.attrLastMove("[miss]")
		}
		b.add("-miss", b.ident(user), b.ident(target))
		return false
	})
}

// spreadMoveHit applies the move to every remaining target in lockstep: damage for all, then
// effects for all, then secondaries. It reports whether the move accomplished anything.
func (b *Battle) spreadMoveHit(targets []PokemonRef, user PokemonRef, move *ActiveMove) bool {
	damaged := make([]int, len(targets))

	if !move.IsStatus() {
		for i, target := range targets {
			damaged[i] = b.getDamage(user, target, move)
		}
		for i, target := range targets {
			if damaged[i] <= 0 {
				continue
			}
			damaged[i] = b.Damage(damaged[i], target, user, move.Effect)
			move.hit(target).damage = damaged[i]
			move.TotalDamage += damaged[i]
			b.Pokemon(target).TimesAttacked++
		}
	}

	success := !move.IsStatus()
	for _, target := range targets {
		if b.runMoveEffects(target, user, move, primaryEffects(move), false, false) {
			success = true
		}
	}
	if !success {
		b.add("-fail", b.ident(user))
		b.attrLastMove("[still]")
		return false
	}

	b.selfDrops(user, move)

	for _, target := range targets {
		for _, secondary := range move.Secondaries {
			chance := secondary.Chance
			if chance == 0 {
				chance = 100
			}
			if b.prng.Random(100) >= chance {
				continue
			}
			if secondary.SelfBoosts != nil {
				b.Boost(*secondary.SelfBoosts, user, user, move.Effect, true, true)
			}
			b.runMoveEffects(target, user, move, moveEffects{
				status:         secondary.Status,
				volatileStatus: secondary.VolatileStatus,
				boosts:         secondary.Boosts,
			}, true, false)
		}
	}

	if move.ForceSwitch {
		for _, target := range targets {
			t := b.Pokemon(target)
			if t.Hp <= 0 || b.Pokemon(user).Hp <= 0 || !b.Sides[target.Side].CanSwitch() {
				continue
			}
			if b.runEventWithMove(EVENT_DRAG_OUT, target, user, move, Allow()).OK() {
				t.ForceSwitchFlag = true
			}
		}
	}

	for i, target := range targets {
		if damaged[i] > 0 {
			b.runEventWithMove(EVENT_DAMAGING_HIT, target, user, move, Val(damaged[i]))
		}
		b.SingleEvent(EVENT_AFTER_HIT, move.Effect, nil, target, user, move.Effect, Allow())
	}

	if move.SelfSwitch && b.Pokemon(user).Hp > 0 && b.Sides[user.Side].CanSwitch() {
		b.Pokemon(user).SwitchFlag = true
	}
	return true
}

// afterMoveHits runs recoil and the after secondary events once every target has been hit.
func (b *Battle) afterMoveHits(targets []PokemonRef, user PokemonRef, move *ActiveMove) {
	p := b.Pokemon(user)

	if move.Recoil[1] > 0 && move.TotalDamage > 0 && p.Hp > 0 {
		recoil := int(math.Round(float64(move.TotalDamage*move.Recoil[0]) / float64(move.Recoil[1])))
		b.Damage(max(recoil, 1), user, user, effectRecoil)
	}
	if move.StruggleRecoil && p.Hp > 0 {
		b.DirectDamage(max(int(math.Round(float64(p.MaxHp)/4)), 1), user, effectStruggleRecoil)
	}

	for _, target := range targets {
		b.runEventWithMove(EVENT_AFTER_SECOND, target, user, move, Allow())
	}
	b.SingleEvent(EVENT_AFTER_SELF, move.Effect, nil, user, targets[0], move.Effect, Allow())
	b.runEventWithMove(EVENT_AFTER_SELF, user, targets[0], move, Allow())
}

// moveEffects is the subset of a move that runMoveEffects applies, shared by the primary
// effect and secondaries.
type moveEffects struct {
	boosts         *BoostTable
	heal           [2]int
	status         ID
	volatileStatus ID
	sideCondition  ID
	slotCondition  ID
	weather        ID
	terrain        ID
	pseudoWeather  ID
	forceSwitch    bool
	selfSwitch     bool
	primary        bool
}

func primaryEffects(move *ActiveMove) moveEffects {
	return moveEffects{
		boosts:         move.Boosts,
		heal:           move.Heal,
		status:         move.Status,
		volatileStatus: move.VolatileStatus,
		sideCondition:  move.SideCondition,
		slotCondition:  move.SlotCondition,
		weather:        move.Weather,
		terrain:        move.Terrain,
		pseudoWeather:  move.PseudoWeather,
		forceSwitch:    move.ForceSwitch,
		selfSwitch:     move.SelfSwitch,
		primary:        true,
	}
}

// runMoveEffects applies the non damage parts of a move to one target and reports whether any
// of them took hold.
func (b *Battle) runMoveEffects(target, user PokemonRef, move *ActiveMove, effects moveEffects, isSecondary, isSelf bool) bool {
	t := b.Pokemon(target)
	did := false

	if effects.boosts != nil && t.Hp > 0 {
		applied := b.Boost(*effects.boosts, target, user, move.Effect, isSecondary, isSelf)
		did = did || !applied.IsZero()
	}

	if effects.heal[1] > 0 && t.Hp > 0 {
		if t.Hp >= t.MaxHp {
			b.add("-fail", b.ident(target), "heal")
		} else {
			amount := int(math.Round(float64(t.MaxHp*effects.heal[0]) / float64(effects.heal[1])))
			did = b.Heal(amount, target, user, move.Effect) > 0 || did
		}
	}

	if effects.status != "" {
		did = b.TrySetStatus(target, effects.status, user, move.Effect) || did
	}
	if effects.volatileStatus != "" {
		did = b.AddVolatile(target, effects.volatileStatus, user, move.Effect) || did
	}
	if effects.sideCondition != "" {
		did = b.AddSideCondition(target.Side, effects.sideCondition, user, move.Effect) || did
	}
	if effects.slotCondition != "" {
		did = b.AddSlotCondition(target.Side, t.Position, effects.slotCondition, user, move.Effect) || did
	}
	if effects.weather != "" {
		did = b.SetWeather(effects.weather, user, move.Effect) || did
	}
	if effects.terrain != "" {
		did = b.SetTerrain(effects.terrain, user, move.Effect) || did
	}
	if effects.pseudoWeather != "" {
		did = b.AddPseudoWeather(effects.pseudoWeather, user, move.Effect) || did
	}
	if effects.forceSwitch {
		did = b.Sides[target.Side].CanSwitch() || did
	}
	if effects.selfSwitch {
		did = b.Sides[user.Side].CanSwitch() || did
	}

	if effects.primary {
		if move.Effect.HasHandler(EVENT_HIT, SCOPE_SELF) {
			did = b.SingleEvent(EVENT_HIT, move.Effect, nil, target, user, move.Effect, Allow()).OK() || did
		}
		b.runEventWithMove(EVENT_HIT, target, user, move, Allow())
	}

	return did
}

// selfDrops applies the user's own stat changes once per move. The roll is always made.
func (b *Battle) selfDrops(user PokemonRef, move *ActiveMove) {
	if move.SelfBoosts == nil || move.selfDropped {
		return
	}
	b.prng.Random(100)
	b.Boost(*move.SelfBoosts, user, user, move.Effect, false, true)
	move.selfDropped = true
}

// useConfusionHit is the self inflicted hit of a confused Pokemon.
func (b *Battle) useConfusionHit(ref PokemonRef) {
	b.DirectDamage(b.confusionDamage(ref), ref, effectConfused)
}
