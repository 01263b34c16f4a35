package golurk

import (
	"slices"

	"github.com/samber/lo"
)

// PokemonRef is a handle to one combatant: side index and party index.
// Party indexes never change during a battle.
type PokemonRef struct {
	Side int
	Slot int
}

var NoPokemon = PokemonRef{Side: -1, Slot: -1}

func (r PokemonRef) Valid() bool {
	return r.Side >= 0 && r.Slot >= 0
}

type MoveSlot struct {
	ID       ID
	Name     string
	PP       int
	MaxPP    int
	Disabled bool
	Used     bool
}

// Pokemon is one team member as it exists in a battle. Fainted Pokemon stay on the team.
type Pokemon struct {
	Ref PokemonRef

	Name        string
	Species     *Species
	BaseSpecies *Species
	Level       int
	Gender      string
	Nature      Nature
	Evs         StatsTable
	Ivs         StatsTable

	Ability      ID
	BaseAbility  ID
	AbilityState *EffectState
	Item         ID
	ItemState    *EffectState
	LastItem     ID

	Hp    int
	MaxHp int

	Status      ID
	StatusState *EffectState
	// Volatiles keeps insertion order so listener discovery is stable
	Volatiles []*EffectState

	Boosts      BoostTable
	StoredStats StatsTable
	Moves       []MoveSlot
	Types       []string

	TeraType      string
	Terastallized string

	IsActive bool
	// Position is the active slot index, only meaningful while IsActive
	Position int

	Fainted         bool
	FaintQueued     bool
	SwitchFlag      bool
	ForceSwitchFlag bool
	Trapped         bool
	NewlySwitched   bool

	ActiveTurns         int
	ActiveMoveActions   int
	LastMove            ID
	MoveThisTurn        ID
	MoveThisTurnResult  bool
	LastDamage          int
	TimesAttacked       int
	HurtThisTurn        bool
	StatsRaisedThisTurn bool

	// Speed is the action speed computed by the last speed update
	Speed int
}

func (p *Pokemon) Alive() bool {
	return p.Hp > 0 && !p.Fainted
}

func (p *Pokemon) Volatile(id ID) *EffectState {
	state, _ := lo.Find(p.Volatiles, func(s *EffectState) bool {
		return s.ID == id
	})
	return state
}

func (p *Pokemon) HasVolatile(id ID) bool {
	return p.Volatile(id) != nil
}

func (p *Pokemon) HasType(t string) bool {
	return slices.Contains(p.Types, t)
}

func (p *Pokemon) HasAbility(ids ...ID) bool {
	return slices.Contains(ids, p.Ability)
}

func (p *Pokemon) HasItem(ids ...ID) bool {
	return p.Item != "" && slices.Contains(ids, p.Item)
}

func (p *Pokemon) MoveSlot(id ID) *MoveSlot {
	for i := range p.Moves {
		if p.Moves[i].ID == id {
			return &p.Moves[i]
		}
	}
	return nil
}

func (p *Pokemon) HasMove(id ID) bool {
	return p.MoveSlot(id) != nil
}

// DisableMove marks a move slot unusable until the next request is built.
func (p *Pokemon) DisableMove(id ID) {
	if slot := p.MoveSlot(id); slot != nil {
		slot.Disabled = true
	}
}

// UsableMoves lists moves that can be chosen right now.
func (p *Pokemon) UsableMoves() []MoveSlot {
	return lo.Filter(p.Moves, func(m MoveSlot, _ int) bool {
		return !m.Disabled && m.PP > 0
	})
}

// calcStats recomputes stored stats from species, level, EVs, IVs and nature. HP is left alone
// when keepHp is set (mega evolution keeps current and max HP).
func (p *Pokemon) calcStats(keepHp bool) {
	base := p.Species.BaseStats

	if !keepHp {
		if base[STAT_HP] == 1 {
			p.MaxHp = 1
		} else {
			p.MaxHp = (2*base[STAT_HP]+p.Ivs[STAT_HP]+p.Evs[STAT_HP]/4+100)*p.Level/100 + 10
		}
		p.StoredStats[STAT_HP] = p.MaxHp
	}

	for stat := STAT_ATK; stat < statCount; stat++ {
		value := (2*base[stat]+p.Ivs[stat]+p.Evs[stat]/4)*p.Level/100 + 5
		if p.Nature.Plus != p.Nature.Minus {
			if p.Nature.Plus == stat {
				value = value * 110 / 100
			}
			if p.Nature.Minus == stat {
				value = value * 90 / 100
			}
		}
		p.StoredStats[stat] = value
	}
}

// boostedStat applies a stat stage to a raw stat value.
func boostedStat(value, stage int) int {
	stage = clampInt(stage, MIN_STAGE, MAX_STAGE)
	if stage >= 0 {
		return value * statStageNumerators[stage] / 2
	}
	return value * 2 / statStageNumerators[-stage]
}

// cappedBoost returns how far the stage can actually move toward change.
func (p *Pokemon) cappedBoost(boost BoostID, change int) int {
	current := p.Boosts[boost]
	return clampInt(current+change, MIN_STAGE, MAX_STAGE) - current
}

func (p *Pokemon) clearVolatiles() {
	for _, v := range p.Volatiles {
		v.removed = true
	}
	p.Volatiles = nil
	p.Boosts = BoostTable{}
	p.Trapped = false
}

// resetTypes restores types from species, respecting terastallization
func (p *Pokemon) resetTypes() {
	if p.Terastallized != "" && p.Terastallized != TYPENAME_STELLAR {
		p.Types = []string{p.Terastallized}
		return
	}
	p.Types = slices.Clone(p.Species.Types)
}
