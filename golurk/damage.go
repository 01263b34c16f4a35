package golurk

import "slices"

const CONFUSION_BASE_POWER = 40

// attackStats returns the attacking and defending stat a move uses
func attackStats(category string) (StatID, StatID) {
	if category == CATEGORY_SPECIAL {
		return STAT_SPA, STAT_SPD
	}
	return STAT_ATK, STAT_DEF
}

var modifyStatEvents = map[StatID]EventID{
	STAT_ATK: EVENT_MODIFY_ATK,
	STAT_DEF: EVENT_MODIFY_DEF,
	STAT_SPA: EVENT_MODIFY_SPA,
	STAT_SPD: EVENT_MODIFY_SPD,
}

// getDamage calculates the damage move would do from source to target. Crit and
// effectiveness are recorded on the move's hit data for target.
func (b *Battle) getDamage(source, target PokemonRef, move *ActiveMove) int {
	attacker := b.Pokemon(source)
	defender := b.Pokemon(target)
	hit := move.hit(target)

	critRatio := b.runMoveEvent(EVENT_CRIT_RATIO, source, target, move, Val(max(move.CritRatio, 1))).Value
	critRatio = clampInt(critRatio, 0, len(critMultipliers)-1)
	hit.crit = move.WillCrit
	if !hit.crit && critRatio > 0 {
		hit.crit = b.prng.RandomChance(1, critMultipliers[critRatio])
	}

	basePower := b.runMoveEvent(EVENT_BASE_POWER, source, target, move, Val(move.BasePower)).Value
	if basePower <= 0 {
		return 0
	}

	atkStat, defStat := attackStats(move.Category)
	atkBoost := attacker.Boosts[boostOf(atkStat)]
	defBoost := defender.Boosts[boostOf(defStat)]
	if hit.crit {
		atkBoost = max(atkBoost, 0)
		defBoost = min(defBoost, 0)
	}

	attack := boostedStat(attacker.StoredStats[atkStat], atkBoost)
	defense := boostedStat(defender.StoredStats[defStat], defBoost)
	attack = b.runEventWithMove(modifyStatEvents[atkStat], source, target, move, Val(attack)).Value
	defense = b.runEventWithMove(modifyStatEvents[defStat], target, source, move, Val(defense)).Value
	defense = max(defense, 1)

	baseDamage := (2*attacker.Level/5 + 2) * basePower * attack / defense / 50

	damageLogger().V(2).Info("base damage", "attacker", attacker.Name, "defender", defender.Name,
		"move", move.ID, "power", basePower, "attack", attack, "defense", defense, "base", baseDamage)

	return b.modifyDamage(baseDamage, source, target, move)
}

// modifyDamage applies the final multipliers in their fixed order.
func (b *Battle) modifyDamage(baseDamage int, source, target PokemonRef, move *ActiveMove) int {
	attacker := b.Pokemon(source)
	defender := b.Pokemon(target)
	hit := move.hit(target)

	baseDamage += 2

	if move.spreadHit {
		baseDamage = modify(baseDamage, 3, 4)
	}

	baseDamage = b.runEventWithMove(EVENT_WEATHER_DAMAGE, source, target, move, Val(baseDamage)).Value

	if hit.crit {
		baseDamage = baseDamage * 3 / 2
	}

	baseDamage = baseDamage * (100 - b.prng.Random(16)) / 100

	if move.Type != TYPELESS {
		stab := 4096
		originalTypes := attacker.Species.Types
		if attacker.HasType(move.Type) || slices.Contains(originalTypes, move.Type) {
			stab = 6144
		}
		if attacker.Terastallized == move.Type && slices.Contains(originalTypes, move.Type) {
			stab = 8192
		}
		baseDamage = applyModifier(baseDamage, stab)
	}

	hit.typeMod = 0
	for _, t := range defender.Types {
		hit.typeMod += typeEffectiveness(move.Type, t)
	}
	if hit.typeMod > 0 {
		b.add("-supereffective", b.ident(target))
		for range hit.typeMod {
			baseDamage *= 2
		}
	}
	if hit.typeMod < 0 {
		b.add("-resisted", b.ident(target))
		for range -hit.typeMod {
			baseDamage /= 2
		}
	}

	if hit.crit {
		b.add("-crit", b.ident(target))
	}

	if attacker.Status == STATUS_BURN && move.Category == CATEGORY_PHYSICAL && !attacker.HasAbility("guts") {
		baseDamage = modify(baseDamage, 1, 2)
	}

	baseDamage = b.runEventWithMove(EVENT_MODIFY_DAMAGE, source, target, move, Val(baseDamage)).Value

	return max(baseDamage, 1)
}

// confusionDamage is the typeless 40 power physical hit a confused Pokemon deals to itself.
func (b *Battle) confusionDamage(ref PokemonRef) int {
	p := b.Pokemon(ref)
	attack := boostedStat(p.StoredStats[STAT_ATK], p.Boosts[BOOST_ATK])
	defense := max(boostedStat(p.StoredStats[STAT_DEF], p.Boosts[BOOST_DEF]), 1)

	damage := (2*p.Level/5+2)*CONFUSION_BASE_POWER*attack/defense/50 + 2
	damage = damage * (100 - b.prng.Random(16)) / 100
	return max(damage, 1)
}

// typeImmunity reports whether target takes no damage from moveType at all.
func (b *Battle) typeImmunity(target PokemonRef, moveType string) (immune, levitate bool) {
	p := b.Pokemon(target)
	if moveType == TYPELESS {
		return false, false
	}
	if moveType == TYPENAME_GROUND {
		grounded, lev := b.isGrounded(target)
		return !grounded, lev
	}
	for _, t := range p.Types {
		if typeImmune(moveType, t) {
			return true, false
		}
	}
	return false, false
}

// isGrounded reports whether ground based effects reach a Pokemon. levitate is set when the
// ability is the reason it is not grounded.
func (b *Battle) isGrounded(ref PokemonRef) (grounded, levitate bool) {
	p := b.Pokemon(ref)
	if p.HasVolatile(VOLATILE_SMACK_DOWN) {
		return true, false
	}
	if p.HasType(TYPENAME_FLYING) {
		return false, false
	}
	if p.HasAbility("levitate") {
		return false, true
	}
	if p.HasItem("airballoon") {
		return false, false
	}
	return true, false
}
