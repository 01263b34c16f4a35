package golurk

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	GAMETYPE_SINGLES = "singles"
	GAMETYPE_DOUBLES = "doubles"
)

// Format is a rule set a battle is played under.
type Format struct {
	ID       ID
	Name     string
	Gen      int
	GameType string

	ActivePerSide int
	TeamPreview   bool
	MaxTeamSize   int

	CanMegaEvo      bool
	CanTerastallize bool
	// TurnLimit ends the battle in a tie once reached, 0 disables it
	TurnLimit int

	// Rules are format wide effects taking part in every dispatch
	Rules []*Effect
}

func (f *Format) HasRule(id ID) bool {
	return lo.ContainsBy(f.Rules, func(r *Effect) bool {
		return r.ID == id
	})
}

const DEFAULT_TURN_LIMIT = 1000

var sleepClause = NewEffect("sleepclausemod", "Sleep Clause Mod", KIND_FORMAT).
	On(EVENT_SET_STATUS, func(b *Battle, e *Event, r Relay) Relay {
		if e.Effect == nil || e.Effect.ID != STATUS_SLEEP || !e.Source.Valid() || e.Source.Side == e.Target.Side {
			return r
		}
		// only sleep inflicted by the opponent counts
		for _, p := range b.Sides[e.Target.Side].Team {
			if p.Status == STATUS_SLEEP && p.StatusState != nil && p.StatusState.Source.Valid() &&
				p.StatusState.Source.Side != e.Target.Side && !p.Fainted {
				b.add("-message", "Sleep Clause Mod activated.")
				return Abort()
			}
		}
		return r
	})

func newFormat(id ID, name string, gen int, gameType string) *Format {
	f := &Format{
		ID:            id,
		Name:          name,
		Gen:           gen,
		GameType:      gameType,
		ActivePerSide: 1,
		MaxTeamSize:   6,
		TurnLimit:     DEFAULT_TURN_LIMIT,
	}
	if gameType == GAMETYPE_DOUBLES {
		f.ActivePerSide = 2
	}
	return f
}

var builtinFormats = map[ID]*Format{}

func registerFormat(f *Format) {
	if _, ok := builtinFormats[f.ID]; ok {
		panic(fmt.Sprintf("format %s registered twice", f.ID))
	}
	builtinFormats[f.ID] = f
}

func init() {
	singles := newFormat("gen9customgame", "[Gen 9] Custom Game", 9, GAMETYPE_SINGLES)
	singles.CanTerastallize = true
	registerFormat(singles)

	doubles := newFormat("gen9doublescustomgame", "[Gen 9] Doubles Custom Game", 9, GAMETYPE_DOUBLES)
	doubles.CanTerastallize = true
	registerFormat(doubles)

	ou := newFormat("gen9ou", "[Gen 9] OU", 9, GAMETYPE_SINGLES)
	ou.CanTerastallize = true
	ou.TeamPreview = true
	ou.Rules = append(ou.Rules, sleepClause)
	registerFormat(ou)

	gen7 := newFormat("gen7customgame", "[Gen 7] Custom Game", 7, GAMETYPE_SINGLES)
	gen7.CanMegaEvo = true
	registerFormat(gen7)
}
