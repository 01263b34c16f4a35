package golurk

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	SIDE_P1 = iota
	SIDE_P2
)

// Side is one player's half of the battle.
type Side struct {
	Index  int
	ID     string
	Name   string
	Avatar string

	Team []Pokemon
	// Lineup is the order chosen at team preview, party indexes. Leads come from the front.
	Lineup []int
	// Active maps each active position to a party index, -1 when empty
	Active []int

	Conditions     []*EffectState
	SlotConditions [][]*EffectState

	PokemonLeft int

	MegaUsed bool
	TeraUsed bool

	FaintedThisTurn bool
	FaintedLastTurn bool

	choice  *Choice
	request *Request
}

func newSide(index int, activePerSide int) *Side {
	side := &Side{
		Index:          index,
		ID:             fmt.Sprintf("p%d", index+1),
		Active:         make([]int, activePerSide),
		SlotConditions: make([][]*EffectState, activePerSide),
	}
	for i := range side.Active {
		side.Active[i] = -1
	}

	return side
}

// Foe returns the index of the opposing side.
func (s *Side) Foe() int {
	return 1 - s.Index
}

// ActivePokemon returns the Pokemon at an active position, nil when the position is empty.
func (s *Side) ActivePokemon(position int) *Pokemon {
	if position < 0 || position >= len(s.Active) || s.Active[position] < 0 {
		return nil
	}
	return &s.Team[s.Active[position]]
}

// AllActive returns the non-fainted Pokemon currently in battle.
func (s *Side) AllActive() []*Pokemon {
	active := make([]*Pokemon, 0, len(s.Active))
	for pos := range s.Active {
		if p := s.ActivePokemon(pos); p != nil && !p.Fainted {
			active = append(active, p)
		}
	}
	return active
}

// CanSwitch reports whether any benched Pokemon is able to come in.
func (s *Side) CanSwitch() bool {
	return len(s.SwitchTargets()) > 0
}

func (s *Side) SwitchTargets() []int {
	targets := make([]int, 0, len(s.Team))
	for i := range s.Team {
		if !s.Team[i].IsActive && !s.Team[i].Fainted {
			targets = append(targets, i)
		}
	}
	return targets
}

func (s *Side) Condition(id ID) *EffectState {
	state, _ := lo.Find(s.Conditions, func(c *EffectState) bool {
		return c.ID == id
	})
	return state
}

func (s *Side) HasCondition(id ID) bool {
	return s.Condition(id) != nil
}

func (s *Side) SlotCondition(position int, id ID) *EffectState {
	if position < 0 || position >= len(s.SlotConditions) {
		return nil
	}
	state, _ := lo.Find(s.SlotConditions[position], func(c *EffectState) bool {
		return c.ID == id
	})
	return state
}

// Lost reports whether every Pokemon on this side has fainted.
func (s *Side) Lost() bool {
	return s.PokemonLeft <= 0
}

// removeConditionSilently drops a side condition without running its end handler.
func (s *Side) removeConditionSilently(id ID) {
	state := s.Condition(id)
	if state == nil {
		return
	}
	state.removed = true
	s.Conditions = lo.Without(s.Conditions, state)
}
