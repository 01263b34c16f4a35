package golurk

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type BattleState int

const (
	StateNotStarted BattleState = iota + 1
	StateTeamPreview
	StateAwaitingChoice
	StateResolving
	StateEnded
)

func (s BattleState) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateTeamPreview:
		return "TeamPreview"
	case StateAwaitingChoice:
		return "AwaitingChoice"
	case StateResolving:
		return "Resolving"
	case StateEnded:
		return "Ended"
	}
	return "Unknown"
}

type RequestKind string

const (
	REQUEST_NONE   RequestKind = ""
	REQUEST_TEAM   RequestKind = "teampreview"
	REQUEST_MOVE   RequestKind = "move"
	REQUEST_SWITCH RequestKind = "switch"
	REQUEST_WAIT   RequestKind = "wait"
)

var (
	ErrBattleEnded = errors.New("battle has ended")
	ErrInvariant   = errors.New("battle invariant violated")
	ErrNotStarted  = errors.New("battle has not started")
)

// invariantError is raised with panic when the engine reaches a state that should be impossible.
// It is recovered at the public entry points of Battle.
type invariantError struct {
	msg string
}

func (e invariantError) Error() string {
	return e.msg
}

type BattleOptions struct {
	// Format defaults to gen9customgame
	Format ID
	// Seed defaults to a fresh seed of SeedFamily
	Seed       Seed
	SeedFamily string
	// Dex defaults to DefaultDex()
	Dex Dex
}

type PlayerOptions struct {
	Name   string       `json:"name"`
	Avatar string       `json:"avatar,omitempty"`
	Team   []PokemonSet `json:"team"`
}

// Battle is one simulated battle. It is not safe for concurrent use.
type Battle struct {
	ID     string
	Dex    Dex
	Format *Format

	Sides [2]*Side
	Field *Field
	Queue *ActionQueue

	Turn         int
	State        BattleState
	RequestState RequestKind
	MidTurn      bool
	Winner       string
	// Crashed is set when the battle ended because of an invariant violation
	Crashed bool

	prng *PRNG

	log      []string
	inputLog []string

	activeMove   *ActiveMove
	lastMoveLine int
	eventDepth   int
	effectOrder  int
	rqid         int
	faintQueue   []faintData

	metrics *battleMetrics
}

func NewBattle(opts BattleOptions) (*Battle, error) {
	dex := opts.Dex
	if dex == nil {
		dex = DefaultDex()
	}

	formatID := opts.Format
	if formatID == "" {
		formatID = "gen9customgame"
	}
	format := dex.Format(formatID)
	if format == nil {
		return nil, fmt.Errorf("format %s: %w", formatID, ErrNotFound)
	}

	seed := opts.Seed
	if seed == "" {
		seed = NewRandomSeed(opts.SeedFamily)
	}
	prng, err := NewPRNG(seed)
	if err != nil {
		return nil, err
	}

	b := &Battle{
		ID:           uuid.NewString(),
		Dex:          dex,
		Format:       format,
		Field:        &Field{},
		State:        StateNotStarted,
		prng:         prng,
		lastMoveLine: -1,
		metrics:      newBattleMetrics(format.ID),
	}
	b.Queue = newActionQueue(b)
	for i := range b.Sides {
		b.Sides[i] = newSide(i, format.ActivePerSide)
	}

	startOptions, _ := json.Marshal(map[string]string{"formatid": string(format.ID), "seed": string(prng.StartingSeed())})
	b.inputLog = append(b.inputLog, ">start "+string(startOptions))

	battleLogger().Info("created battle", "id", b.ID, "format", format.ID, "seed", prng.StartingSeed())
	return b, nil
}

// guard converts an invariant panic into an error and ends the battle.
func (b *Battle) guard(err *error) {
	r := recover()
	if r == nil {
		return
	}
	violation, ok := r.(invariantError)
	if !ok {
		panic(r)
	}

	battleLogger().Error(violation, "battle crashed", "id", b.ID, "turn", b.Turn)
	b.Crashed = true
	b.State = StateEnded
	b.RequestState = REQUEST_NONE
	b.metrics.battleEnded("crash")
	*err = fmt.Errorf("%w: %s", ErrInvariant, violation.msg)
}

// Seed is the seed the battle was started with.
func (b *Battle) Seed() Seed {
	return b.prng.StartingSeed()
}

func (b *Battle) PRNG() *PRNG {
	return b.prng
}

// Pokemon resolves a handle. An invalid handle is an invariant violation.
func (b *Battle) Pokemon(ref PokemonRef) *Pokemon {
	if !ref.Valid() || ref.Side > 1 || ref.Slot >= len(b.Sides[ref.Side].Team) {
		panic(invariantError{fmt.Sprintf("invalid pokemon handle %v", ref)})
	}
	return &b.Sides[ref.Side].Team[ref.Slot]
}

func (b *Battle) allActive() []*Pokemon {
	return append(b.Sides[SIDE_P1].AllActive(), b.Sides[SIDE_P2].AllActive()...)
}

// SetPlayer fills a side with a player and team. The battle starts once both sides are filled.
func (b *Battle) SetPlayer(side int, opts PlayerOptions) (err error) {
	defer b.guard(&err)

	if side < 0 || side > 1 {
		return fmt.Errorf("invalid side %d", side)
	}
	if b.State != StateNotStarted {
		return fmt.Errorf("cannot set player %s: battle already started", b.Sides[side].ID)
	}
	if len(opts.Team) == 0 {
		return fmt.Errorf("player %s has an empty team", b.Sides[side].ID)
	}
	if len(opts.Team) > b.Format.MaxTeamSize {
		return fmt.Errorf("player %s team has %d pokemon, format allows %d", b.Sides[side].ID, len(opts.Team), b.Format.MaxTeamSize)
	}

	s := b.Sides[side]
	team := make([]Pokemon, len(opts.Team))
	for i, set := range opts.Team {
		p, err := BuildFromSet(b.Dex, set)
		if err != nil {
			return fmt.Errorf("player %s, pokemon %d: %w", s.ID, i+1, err)
		}
		p.Ref = PokemonRef{Side: side, Slot: i}
		team[i] = p
	}

	s.Name = opts.Name
	if s.Name == "" {
		s.Name = "Player " + strconv.Itoa(side+1)
	}
	s.Avatar = opts.Avatar
	s.Team = team
	s.PokemonLeft = len(team)
	s.Lineup = lo.Range(len(team))

	playerOptions, _ := json.Marshal(opts)
	b.inputLog = append(b.inputLog, fmt.Sprintf(">player %s %s", s.ID, playerOptions))
	b.add("player", s.ID, s.Name, s.Avatar, "")

	if b.Sides[SIDE_P1].Team != nil && b.Sides[SIDE_P2].Team != nil {
		b.start()
	}
	return nil
}

func (b *Battle) start() {
	b.metrics.battleStarted()

	b.add("gametype", b.Format.GameType)
	for _, side := range b.Sides {
		b.add("teamsize", side.ID, strconv.Itoa(len(side.Team)))
	}
	b.add("gen", strconv.Itoa(b.Format.Gen))
	b.add("tier", b.Format.Name)
	for _, rule := range b.Format.Rules {
		b.add("rule", rule.Name)
	}

	b.Queue.AddChoice(fieldAction(ACTION_START))
	b.MidTurn = true

	if b.Format.TeamPreview {
		b.add("clearpoke")
		for _, side := range b.Sides {
			for i := range side.Team {
				item := ""
				if side.Team[i].Item != "" {
					item = "item"
				}
				b.add("poke", side.ID, details(&side.Team[i]), item)
			}
		}
		b.add("teampreview")
		b.makeRequest(REQUEST_TEAM)
		return
	}

	b.turnLoop()
}

// runStart sends out the leads.
func (b *Battle) runStart() {
	b.add("start")
	for _, side := range b.Sides {
		for position := range side.Active {
			if position >= len(side.Lineup) {
				break
			}
			b.SwitchIn(side.Index, position, side.Lineup[position], nil, false)
		}
	}
}

func (b *Battle) turnLoop() {
	b.add("")
	b.State = StateResolving
	b.RequestState = REQUEST_NONE

	if !b.MidTurn {
		b.Queue.InsertChoice(fieldAction(ACTION_BEFORE_TURN))
		b.Queue.AddChoice(fieldAction(ACTION_RESIDUAL))
		b.MidTurn = true
	}

	for action := b.Queue.Shift(); action != nil; action = b.Queue.Shift() {
		b.runAction(action)
		if b.RequestState != REQUEST_NONE || b.State == StateEnded {
			return
		}
	}

	b.endTurn()
	b.MidTurn = false
	b.Queue.Clear()
}

// runAction resolves one action and then handles what it left behind: forced switches, faints
// and pending switch requests.
func (b *Battle) runAction(action *Action) {
	battleLogger().V(1).Info("running action", "kind", action.Kind.String(), "pokemon", action.Pokemon, "turn", b.Turn)

	switch action.Kind {
	case ACTION_START:
		b.runStart()
	case ACTION_TEAM:
		b.Sides[action.Side].Lineup = action.TeamOrder
	case ACTION_BEFORE_TURN:
		b.EachEvent(EVENT_BEFORE_TURN, nil)
	case ACTION_MOVE:
		b.runMove(action)
	case ACTION_MEGA_EVO:
		b.MegaEvolve(action.Pokemon)
	case ACTION_TERASTALLIZE:
		b.Terastallize(action.Pokemon)
	case ACTION_RUN_SWITCH:
		b.runSwitch(action.Pokemon)
	case ACTION_SWITCH, ACTION_INSTASWITCH:
		p := b.Pokemon(action.Pokemon)
		b.SwitchIn(action.Pokemon.Side, p.Position, action.Target.Slot, nil, false)
	case ACTION_RESIDUAL:
		b.add("")
		b.clearActiveMove()
		b.ResidualEvent()
		if b.State != StateEnded {
			b.add("upkeep")
		}
	case ACTION_PASS:
	}

	for _, p := range b.allActive() {
		if p.ForceSwitchFlag {
			p.ForceSwitchFlag = false
			if p.Hp > 0 {
				b.DragIn(p.Ref.Side, p.Position)
			}
		}
	}

	b.clearActiveMove()
	if b.FaintMessages() {
		return
	}

	if b.Queue.Len() == 0 {
		b.checkFainted()
	}

	needsSwitch := false
	for _, side := range b.Sides {
		flagged := lo.ContainsBy(side.Active, func(slot int) bool {
			return slot >= 0 && side.Team[slot].SwitchFlag
		})
		if !flagged {
			continue
		}
		if !side.CanSwitch() {
			for _, slot := range side.Active {
				if slot >= 0 {
					side.Team[slot].SwitchFlag = false
				}
			}
			continue
		}
		needsSwitch = true
	}
	if needsSwitch {
		b.makeRequest(REQUEST_SWITCH)
		return
	}

	if next := b.Queue.Peek(); next != nil && next.Kind == ACTION_MOVE {
		b.Queue.Sort()
	}
}

// checkFainted flags every fainted active Pokemon for replacement.
func (b *Battle) checkFainted() {
	for _, side := range b.Sides {
		for _, slot := range side.Active {
			if slot >= 0 && side.Team[slot].Fainted {
				side.Team[slot].SwitchFlag = true
			}
		}
	}
}

func (b *Battle) endTurn() {
	b.Turn++
	b.metrics.turnEnded()

	for _, p := range b.allActive() {
		p.ActiveTurns++
		p.MoveThisTurn = ""
		p.HurtThisTurn = false
		p.StatsRaisedThisTurn = false
		p.NewlySwitched = false
		for i := range p.Moves {
			p.Moves[i].Disabled = false
		}
		b.RunEvent(EVENT_DISABLE_MOVE, p.Ref, NoPokemon, nil, Allow())

		p.Trapped = false
		b.RunEvent(EVENT_TRAP_POKEMON, p.Ref, NoPokemon, nil, Allow())
	}

	for _, side := range b.Sides {
		side.FaintedLastTurn = side.FaintedThisTurn
		side.FaintedThisTurn = false
	}

	if b.Format.TurnLimit > 0 && b.Turn >= b.Format.TurnLimit {
		b.add("message", fmt.Sprintf("It is turn %d. You have hit the turn limit!", b.Turn))
		b.Tie()
		return
	}

	b.add("turn", strconv.Itoa(b.Turn))
	b.makeRequest(REQUEST_MOVE)
}

func (b *Battle) win(side int) {
	if b.State == StateEnded {
		return
	}

	b.add("")
	if side < 0 {
		b.add("tie")
		b.metrics.battleEnded("tie")
	} else {
		b.Winner = b.Sides[side].Name
		b.add("win", b.Winner)
		b.metrics.battleEnded("win")
	}

	b.State = StateEnded
	b.RequestState = REQUEST_NONE
	for _, s := range b.Sides {
		s.request = nil
		s.choice = nil
	}
	battleLogger().Info("battle ended", "id", b.ID, "winner", b.Winner, "turn", b.Turn)
}

// Tie ends the battle without a winner.
func (b *Battle) Tie() {
	b.win(-1)
}

func (b *Battle) Ended() bool {
	return b.State == StateEnded
}

// ForceWin ends the battle with side as the winner.
func (b *Battle) ForceWin(side int) (err error) {
	defer b.guard(&err)
	if b.State == StateEnded {
		return ErrBattleEnded
	}
	if side < 0 || side > 1 {
		return fmt.Errorf("invalid side %d", side)
	}
	b.inputLog = append(b.inputLog, ">forcewin "+b.Sides[side].ID)
	b.win(side)
	return nil
}

// Tiebreak ends the battle by comparing Pokemon left, then remaining HP percentage, then total HP.
func (b *Battle) Tiebreak() (err error) {
	defer b.guard(&err)
	if b.State == StateEnded {
		return ErrBattleEnded
	}
	b.inputLog = append(b.inputLog, ">tiebreak")
	b.add("message", "Time's up! Going to tiebreaker...")

	tied := []*Side{b.Sides[SIDE_P1], b.Sides[SIDE_P2]}
	keys := []struct {
		value  func(s *Side) float64
		format func(s *Side, v float64) string
	}{
		{
			value: func(s *Side) float64 {
				return float64(lo.CountBy(s.Team, func(p Pokemon) bool { return !p.Fainted }))
			},
			format: func(s *Side, v float64) string { return fmt.Sprintf("%s: %d Pokemon left", s.Name, int(v)) },
		},
		{
			value: func(s *Side) float64 {
				return lo.SumBy(s.Team, func(p Pokemon) float64 { return float64(p.Hp) / float64(p.MaxHp) }) * 100 / 6
			},
			format: func(s *Side, v float64) string { return fmt.Sprintf("%s: %d%% total HP left", s.Name, int(math.Round(v))) },
		},
		{
			value: func(s *Side) float64 {
				return float64(lo.SumBy(s.Team, func(p Pokemon) int { return p.Hp }))
			},
			format: func(s *Side, v float64) string { return fmt.Sprintf("%s: %d total HP left", s.Name, int(v)) },
		},
	}

	for _, key := range keys {
		values := lo.Map(tied, func(s *Side, _ int) float64 { return key.value(s) })
		b.add("-message", strings.Join(lo.Map(tied, func(s *Side, i int) string { return key.format(s, values[i]) }), "; "))

		best := lo.Max(values)
		tied = lo.Filter(tied, func(_ *Side, i int) bool { return values[i] == best })
		if len(tied) == 1 {
			b.win(tied[0].Index)
			return nil
		}
	}

	b.Tie()
	return nil
}

// GetStat returns a stat with stages and Modify events applied as requested.
func (b *Battle) GetStat(ref PokemonRef, stat StatID, unboosted, unmodified bool) int {
	p := b.Pokemon(ref)
	if stat == STAT_HP {
		return p.MaxHp
	}

	value := p.StoredStats[stat]
	if !unboosted {
		value = boostedStat(value, p.Boosts[boostOf(stat)])
	}
	if !unmodified {
		event := EVENT_MODIFY_SPE
		if stat != STAT_SPE {
			event = modifyStatEvents[stat]
		}
		value = b.RunEvent(event, ref, NoPokemon, nil, Val(value)).Value
	}
	if stat == STAT_SPE {
		value = min(value, MAX_SPEED)
	}
	return value
}

// actionSpeed is the speed used for ordering. Trick Room turns it around so that a single
// descending comparison works everywhere.
func (b *Battle) actionSpeed(ref PokemonRef) int {
	speed := b.GetStat(ref, STAT_SPE, false, false)
	if b.Field.HasPseudoWeather(PSEUDO_TRICK_ROOM) {
		speed = MAX_SPEED - speed
	}
	return speed & 0x1FFF
}

// UpdateSpeed refreshes the cached action speed of every active Pokemon.
func (b *Battle) UpdateSpeed() {
	for _, p := range b.allActive() {
		p.Speed = b.actionSpeed(p.Ref)
	}
}

// movePriority computes the priority of a move action once, when it is queued.
func (b *Battle) movePriority(action *Action) (int, int) {
	data := b.Dex.Move(action.Move)
	if data == nil {
		panic(invariantError{"unknown move " + string(action.Move)})
	}
	move := newActiveMove(data, action.Pokemon)
	action.activeMove = move

	priority := b.SingleEvent(EVENT_MODIFY_PRIO, move.Effect, nil, action.Pokemon, NoPokemon, nil, Val(data.Priority)).Value
	priority = b.runEventWithMove(EVENT_MODIFY_PRIO, action.Pokemon, NoPokemon, move, Val(priority)).Value
	move.Priority = priority

	fractional := b.runEventWithMove(EVENT_FRACTION_PRIO, action.Pokemon, NoPokemon, move, Val(0)).Value
	return priority, fractional
}

// actionEligible reports whether a queued action may still run.
func (b *Battle) actionEligible(action *Action) bool {
	if !action.Pokemon.Valid() {
		return true
	}
	p := b.Pokemon(action.Pokemon)

	switch action.Kind {
	case ACTION_MOVE, ACTION_MEGA_EVO, ACTION_TERASTALLIZE:
		return p.IsActive && !p.Fainted
	case ACTION_SWITCH:
		target := b.Pokemon(action.Target)
		return p.IsActive && !p.Fainted && !target.IsActive && !target.Fainted
	case ACTION_INSTASWITCH:
		target := b.Pokemon(action.Target)
		return !target.IsActive && !target.Fainted
	case ACTION_RUN_SWITCH:
		return p.IsActive && p.Hp > 0
	}
	return !p.Fainted
}
