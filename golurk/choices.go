package golurk

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

var ErrInvalidChoice = errors.New("invalid choice")

// ChoiceError is a rejected player choice. The battle is left as it was.
type ChoiceError struct {
	Side    string
	Message string
}

func (e *ChoiceError) Error() string {
	return "[Invalid choice] " + e.Message
}

func (e *ChoiceError) Is(target error) bool {
	return target == ErrInvalidChoice
}

// MoveRequest is one selectable move in a request.
type MoveRequest struct {
	Move     string `json:"move"`
	ID       ID     `json:"id"`
	PP       int    `json:"pp,omitempty"`
	MaxPP    int    `json:"maxpp,omitempty"`
	Target   string `json:"target"`
	Disabled bool   `json:"disabled"`
}

type ActiveRequest struct {
	Moves           []MoveRequest `json:"moves"`
	Trapped         bool          `json:"trapped,omitempty"`
	CanMegaEvo      bool          `json:"canMegaEvo,omitempty"`
	CanTerastallize string        `json:"canTerastallize,omitempty"`
}

type PokemonRequest struct {
	Ident         string         `json:"ident"`
	Details       string         `json:"details"`
	Condition     string         `json:"condition"`
	Active        bool           `json:"active"`
	Stats         map[string]int `json:"stats"`
	Moves         []ID           `json:"moves"`
	BaseAbility   ID             `json:"baseAbility"`
	Item          ID             `json:"item"`
	Ability       ID             `json:"ability"`
	TeraType      string         `json:"teraType,omitempty"`
	Terastallized string         `json:"terastallized,omitempty"`
}

type SideRequest struct {
	Name    string           `json:"name"`
	ID      string           `json:"id"`
	Pokemon []PokemonRequest `json:"pokemon"`
}

// Request is what a side is asked to decide, sent to the player as |request|{json}.
type Request struct {
	Rqid        int             `json:"rqid"`
	Active      []ActiveRequest `json:"active,omitempty"`
	ForceSwitch []bool          `json:"forceSwitch,omitempty"`
	TeamPreview bool            `json:"teamPreview,omitempty"`
	Wait        bool            `json:"wait,omitempty"`
	NoCancel    bool            `json:"noCancel,omitempty"`
	Side        SideRequest     `json:"side"`
}

// Choice is the decision a side is building for the current request.
type Choice struct {
	Actions []*Action

	forcedSwitchesLeft int
	forcedPassesLeft   int
	switchIns          map[int]bool
	mega               bool
	terastallize       bool
}

// choosable target kinds take an explicit target location in doubles
var choosableTargets = []string{TARGET_NORMAL, TARGET_ANY, TARGET_ADJACENT_ALLY, TARGET_ADJACENT_FOE}

var targetSuffix = regexp.MustCompile(`\s[-+]?[1-3]$`)

// makeRequest asks both sides for a decision and parks the battle until they answer.
func (b *Battle) makeRequest(kind RequestKind) {
	b.RequestState = kind
	b.rqid++
	if kind == REQUEST_TEAM {
		b.State = StateTeamPreview
	} else {
		b.State = StateAwaitingChoice
	}

	for _, side := range b.Sides {
		side.choice = b.newChoice(side)
		side.request = b.buildRequest(side, kind)
	}

	battleLogger().V(1).Info("requesting choices", "kind", string(kind), "rqid", b.rqid, "turn", b.Turn)
}

func (b *Battle) newChoice(side *Side) *Choice {
	choice := &Choice{switchIns: map[int]bool{}}
	if b.RequestState == REQUEST_SWITCH {
		switchOut := lo.CountBy(side.Active, func(slot int) bool {
			return slot >= 0 && side.Team[slot].SwitchFlag
		})
		switchIn := len(side.SwitchTargets())
		choice.forcedSwitchesLeft = min(switchOut, switchIn)
		choice.forcedPassesLeft = switchOut - choice.forcedSwitchesLeft
	}
	return choice
}

func (b *Battle) buildRequest(side *Side, kind RequestKind) *Request {
	req := &Request{Rqid: b.rqid, Side: b.sideRequest(side)}

	switch kind {
	case REQUEST_TEAM:
		req.TeamPreview = true
	case REQUEST_SWITCH:
		flags := lo.Map(side.Active, func(slot int, _ int) bool {
			return slot >= 0 && side.Team[slot].SwitchFlag
		})
		if lo.Contains(flags, true) {
			req.ForceSwitch = flags
		} else {
			req.Wait = true
		}
	case REQUEST_MOVE:
		for position := range side.Active {
			p := side.ActivePokemon(position)
			if p == nil {
				req.Active = append(req.Active, ActiveRequest{})
				continue
			}
			req.Active = append(req.Active, b.activeRequest(p))
		}
	}
	return req
}

func (b *Battle) activeRequest(p *Pokemon) ActiveRequest {
	active := ActiveRequest{Trapped: p.Trapped}
	if len(p.UsableMoves()) == 0 {
		active.Moves = []MoveRequest{{Move: "Struggle", ID: STRUGGLE, Target: TARGET_RANDOM_NORMAL}}
	} else {
		for _, slot := range p.Moves {
			target := TARGET_NORMAL
			if data := b.Dex.Move(slot.ID); data != nil {
				target = data.Target
			}
			active.Moves = append(active.Moves, MoveRequest{
				Move:     slot.Name,
				ID:       slot.ID,
				PP:       slot.PP,
				MaxPP:    slot.MaxPP,
				Target:   target,
				Disabled: slot.Disabled || slot.PP <= 0,
			})
		}
	}
	if b.canMegaEvo(p) != nil {
		active.CanMegaEvo = true
	}
	if b.Format.CanTerastallize && !b.Sides[p.Ref.Side].TeraUsed && p.TeraType != "" && p.Terastallized == "" {
		active.CanTerastallize = p.TeraType
	}
	return active
}

func (b *Battle) sideRequest(side *Side) SideRequest {
	req := SideRequest{Name: side.Name, ID: side.ID}
	for i := range side.Team {
		p := &side.Team[i]
		stats := map[string]int{}
		for stat := STAT_ATK; stat < statCount; stat++ {
			stats[stat.String()] = p.StoredStats[stat]
		}
		req.Pokemon = append(req.Pokemon, PokemonRequest{
			Ident:         fmt.Sprintf("%s: %s", side.ID, p.Name),
			Details:       details(p),
			Condition:     health(p),
			Active:        p.IsActive,
			Stats:         stats,
			Moves:         lo.Map(p.Moves, func(m MoveSlot, _ int) ID { return m.ID }),
			BaseAbility:   p.BaseAbility,
			Item:          p.Item,
			Ability:       p.Ability,
			TeraType:      p.TeraType,
			Terastallized: p.Terastallized,
		})
	}
	return req
}

// Request returns the pending request of a side, nil when it has nothing to decide.
func (b *Battle) Request(side int) *Request {
	if side < 0 || side > 1 {
		return nil
	}
	return b.Sides[side].request
}

// RequestJSON is Request encoded the way it is sent to players.
func (b *Battle) RequestJSON(side int) string {
	req := b.Request(side)
	if req == nil {
		return ""
	}
	data, _ := json.Marshal(req)
	return string(data)
}

// Choose submits a side's decision for the pending request, like "move 1, switch 3".
// Once both sides have decided the battle resolves until the next request.
func (b *Battle) Choose(side int, input string) (err error) {
	defer b.guard(&err)

	if side < 0 || side > 1 {
		return fmt.Errorf("invalid side %d", side)
	}
	if b.State == StateEnded {
		return ErrBattleEnded
	}
	if b.State == StateNotStarted {
		return ErrNotStarted
	}

	s := b.Sides[side]
	prev := s.choice
	if err := b.parseChoice(s, input); err != nil {
		// a rejected choice keeps whatever the side had already decided
		s.choice = prev
		b.metrics.choiceRejected()
		battleLogger().V(1).Info("rejected choice", "side", s.ID, "input", input, "reason", err.Error())
		return err
	}

	if lo.EveryBy(b.Sides[:], b.choiceDone) {
		b.commitChoices()
	}
	return nil
}

func (b *Battle) choiceError(side *Side, format string, args ...any) error {
	return &ChoiceError{Side: side.ID, Message: fmt.Sprintf(format, args...)}
}

func (b *Battle) parseChoice(s *Side, input string) error {
	if b.RequestState == REQUEST_NONE || s.request == nil {
		return b.choiceError(s, "Can't do anything: It's not your turn")
	}
	if s.request.Wait {
		return b.choiceError(s, "Can't do anything: It's not your turn")
	}

	s.choice = b.newChoice(s)

	parts := []string{input}
	if !strings.HasPrefix(strings.TrimSpace(input), "team ") {
		parts = strings.Split(input, ",")
	}
	if len(parts) > len(s.Active) && b.RequestState != REQUEST_TEAM {
		return b.choiceError(s, "Can't make choices: You sent choices for %d Pokémon, but this is a %s game!",
			len(parts), b.Format.GameType)
	}

	for _, part := range parts {
		verb, data, _ := strings.Cut(strings.TrimSpace(part), " ")
		data = strings.TrimSpace(data)

		var err error
		switch verb {
		case "move":
			err = b.parseMove(s, data)
		case "switch":
			err = b.chooseSwitch(s, data)
		case "team":
			err = b.chooseTeam(s, data)
		case "pass", "skip":
			if data != "" {
				err = b.choiceError(s, "Unrecognized data after \"pass\": %s", data)
			} else {
				err = b.choosePass(s)
			}
		case "default", "auto":
			err = b.autoChoose(s)
		default:
			err = b.choiceError(s, "Unrecognized choice: %s", part)
		}
		if err != nil {
			return err
		}
	}

	if !b.choiceDone(s) {
		return b.choiceError(s, "Incomplete choice: %s - missing other pokemon", input)
	}
	return nil
}

// parseMove splits the trailing target location and mechanic keyword off a move choice.
func (b *Battle) parseMove(s *Side, data string) error {
	original := data
	targetLoc := 0
	hasTarget := false
	event := ""

	for {
		switch {
		case targetSuffix.MatchString(data):
			if hasTarget {
				return b.choiceError(s, "Conflicting arguments for \"move\": %s", original)
			}
			loc, _ := strconv.Atoi(strings.TrimSpace(data[len(data)-2:]))
			targetLoc, hasTarget = loc, true
			data = strings.TrimSpace(data[:len(data)-2])
			continue
		}

		keyword := ""
		for _, k := range []string{"mega", "zmove", "ultra", "dynamax", "gigantamax", "max", "terastallize"} {
			if strings.HasSuffix(data, " "+k) {
				keyword = k
				break
			}
		}
		if keyword == "" {
			break
		}
		if event != "" {
			return b.choiceError(s, "Conflicting arguments for \"move\": %s", original)
		}
		event = keyword
		data = strings.TrimSpace(strings.TrimSuffix(data, " "+keyword))
	}

	return b.chooseMove(s, data, targetLoc, event)
}

// choiceIndex is the active position the next part of the choice is for. Positions that have
// nothing to decide are passed automatically.
func (b *Battle) choiceIndex(s *Side, isPass bool) int {
	index := len(s.choice.Actions)
	if isPass {
		return index
	}
	for index < len(s.Active) {
		p := s.ActivePokemon(index)
		skip := false
		switch b.RequestState {
		case REQUEST_MOVE:
			skip = p == nil || p.Fainted
		case REQUEST_SWITCH:
			skip = p == nil || !p.SwitchFlag
		}
		if !skip {
			break
		}
		b.choosePass(s)
		index++
	}
	return index
}

func (b *Battle) chooseMove(s *Side, moveText string, targetLoc int, event string) error {
	if b.RequestState != REQUEST_MOVE {
		return b.choiceError(s, "Can't move: You need a %s response", b.RequestState)
	}
	index := b.choiceIndex(s, false)
	if index >= len(s.Active) {
		return b.choiceError(s, "Can't move: You sent more choices than unfainted Pokémon.")
	}
	p := s.ActivePokemon(index)
	request := s.request.Active[index]

	var moveID ID
	targetKind := ""
	if n, err := strconv.Atoi(moveText); err == nil {
		if n < 1 || n > len(request.Moves) {
			return b.choiceError(s, "Can't move: Your %s doesn't have a move %d", p.Name, n)
		}
		moveID = request.Moves[n-1].ID
		targetKind = request.Moves[n-1].Target
	} else {
		moveID = ToID(moveText)
		for _, m := range request.Moves {
			if m.ID == moveID {
				targetKind = m.Target
				break
			}
		}
		if targetKind == "" {
			return b.choiceError(s, "Can't move: Your %s doesn't have a move matching %s", p.Name, moveID)
		}
	}

	move := b.Dex.Move(moveID)
	if move == nil {
		return b.choiceError(s, "Can't move: Your %s doesn't have a move matching %s", p.Name, moveID)
	}

	switch event {
	case "zmove":
		return b.choiceError(s, "Can't move: %s can't use %s as a Z-move", p.Name, move.Name)
	case "dynamax", "gigantamax", "max":
		return b.choiceError(s, "Can't move: %s can't Dynamax now.", p.Name)
	case "ultra":
		return b.choiceError(s, "Can't move: %s can't ultra burst", p.Name)
	}

	if slices.Contains(choosableTargets, targetKind) {
		if targetLoc == 0 && b.targetRequired(targetKind) {
			return b.choiceError(s, "Can't move: %s needs a target", move.Name)
		}
		if !b.validTargetLoc(targetLoc, p.Ref, targetKind) {
			return b.choiceError(s, "Can't move: Invalid target for %s", move.Name)
		}
	} else if targetLoc != 0 {
		return b.choiceError(s, "Can't move: You can't choose a target for %s", move.Name)
	}

	if len(p.UsableMoves()) == 0 {
		moveID = STRUGGLE
	} else if moveID != STRUGGLE {
		slot := p.MoveSlot(moveID)
		if slot == nil || slot.Disabled || slot.PP <= 0 {
			return b.choiceError(s, "Can't move: Your %s's %s is disabled", p.Name, move.Name)
		}
	}

	if event == "mega" {
		if b.canMegaEvo(p) == nil {
			return b.choiceError(s, "Can't move: %s can't mega evolve", p.Name)
		}
		if s.choice.mega {
			return b.choiceError(s, "Can't move: You can only mega-evolve once per battle")
		}
	}
	if event == "terastallize" {
		if request.CanTerastallize == "" {
			return b.choiceError(s, "Can't move: %s can't Terastallize.", p.Name)
		}
		if s.choice.terastallize {
			return b.choiceError(s, "Can't move: You can only Terastallize once per battle.")
		}
	}

	s.choice.Actions = append(s.choice.Actions, &Action{
		Kind:         ACTION_MOVE,
		Pokemon:      p.Ref,
		Target:       NoPokemon,
		Move:         moveID,
		TargetLoc:    targetLoc,
		Mega:         event == "mega",
		Terastallize: event == "terastallize",
	})
	s.choice.mega = s.choice.mega || event == "mega"
	s.choice.terastallize = s.choice.terastallize || event == "terastallize"
	return nil
}

func (b *Battle) chooseSwitch(s *Side, slotText string) error {
	if b.RequestState != REQUEST_MOVE && b.RequestState != REQUEST_SWITCH {
		return b.choiceError(s, "Can't switch: You need a %s response", b.RequestState)
	}
	index := b.choiceIndex(s, false)
	if index >= len(s.Active) {
		if b.RequestState == REQUEST_SWITCH {
			return b.choiceError(s, "Can't switch: You sent more switches than Pokémon that need to switch")
		}
		return b.choiceError(s, "Can't switch: You sent more choices than unfainted Pokémon")
	}
	p := s.ActivePokemon(index)

	slot := -1
	if slotText == "" {
		if b.RequestState != REQUEST_SWITCH {
			return b.choiceError(s, "Can't switch: You need to select a Pokémon to switch in")
		}
		if s.choice.forcedSwitchesLeft == 0 {
			return b.choosePass(s)
		}
		slot = lo.FindOrElse(s.SwitchTargets(), -1, func(i int) bool { return !s.choice.switchIns[i] })
	} else if n, err := strconv.Atoi(slotText); err == nil {
		slot = n - 1
	} else {
		for i := range s.Team {
			if strings.EqualFold(slotText, s.Team[i].Name) || ToID(slotText) == s.Team[i].Species.ID {
				slot = i
				break
			}
		}
		if slot < 0 {
			return b.choiceError(s, "Can't switch: You do not have a Pokémon named \"%s\" to switch to", slotText)
		}
	}

	if slot < 0 || slot >= len(s.Team) {
		return b.choiceError(s, "Can't switch: You do not have a Pokémon in slot %d to switch to", slot+1)
	}
	target := &s.Team[slot]
	if target.IsActive {
		return b.choiceError(s, "Can't switch: You can't switch to an active Pokémon")
	}
	if s.choice.switchIns[slot] {
		return b.choiceError(s, "Can't switch: The Pokémon in slot %d can only switch in once", slot+1)
	}
	if target.Fainted {
		return b.choiceError(s, "Can't switch: You can't switch to a fainted Pokémon")
	}

	kind := ACTION_SWITCH
	if b.RequestState == REQUEST_MOVE {
		if p.Trapped {
			return b.choiceError(s, "Can't switch: The active Pokémon is trapped")
		}
	} else {
		if s.choice.forcedSwitchesLeft == 0 {
			panic(invariantError{"side " + s.ID + " switched more Pokemon than were forced out"})
		}
		s.choice.forcedSwitchesLeft--
		kind = ACTION_INSTASWITCH
	}

	s.choice.switchIns[slot] = true
	s.choice.Actions = append(s.choice.Actions, &Action{Kind: kind, Pokemon: p.Ref, Target: target.Ref})
	return nil
}

func (b *Battle) choosePass(s *Side) error {
	index := b.choiceIndex(s, true)
	if index >= len(s.Active) {
		return b.choiceError(s, "Can't pass: You sent more choices than active Pokémon")
	}
	p := s.ActivePokemon(index)

	switch b.RequestState {
	case REQUEST_SWITCH:
		if p != nil && p.SwitchFlag {
			if s.choice.forcedPassesLeft == 0 {
				return b.choiceError(s, "Can't pass: You need to switch in a Pokémon to replace %s", p.Name)
			}
			s.choice.forcedPassesLeft--
		}
	case REQUEST_MOVE:
		if p != nil && !p.Fainted {
			return b.choiceError(s, "Can't pass: Your %s must make a move (or switch)", p.Name)
		}
	default:
		return b.choiceError(s, "Can't pass: Not a move or switch request")
	}

	ref := NoPokemon
	if p != nil {
		ref = p.Ref
	}
	s.choice.Actions = append(s.choice.Actions, &Action{Kind: ACTION_PASS, Pokemon: ref, Target: NoPokemon})
	return nil
}

func (b *Battle) chooseTeam(s *Side, data string) error {
	if b.RequestState != REQUEST_TEAM {
		return b.choiceError(s, "Can't choose for Team Preview: You're not in a Team Preview phase")
	}

	var raw []string
	if strings.Contains(data, ",") {
		raw = strings.Split(data, ",")
	} else {
		raw = strings.Split(data, "")
	}

	positions := make([]int, 0, len(s.Team))
	for _, r := range raw {
		if len(positions) == len(s.Team) {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(r))
		if err != nil {
			return b.choiceError(s, "Can't choose for Team Preview: You do not have a Pokémon in slot %s", strings.TrimSpace(r))
		}
		positions = append(positions, n-1)
	}
	for i := 0; len(positions) < len(s.Team) && i < len(s.Team); i++ {
		if !slices.Contains(positions, i) {
			positions = append(positions, i)
		}
	}

	for index, pos := range positions {
		if pos < 0 || pos >= len(s.Team) {
			return b.choiceError(s, "Can't choose for Team Preview: You do not have a Pokémon in slot %d", pos+1)
		}
		if slices.Index(positions, pos) != index {
			return b.choiceError(s, "Can't choose for Team Preview: The Pokémon in slot %d can only switch in once", pos+1)
		}
	}

	for _, pos := range positions {
		s.choice.switchIns[pos] = true
	}
	s.choice.Actions = append(s.choice.Actions, &Action{
		Kind:      ACTION_TEAM,
		Pokemon:   NoPokemon,
		Target:    NoPokemon,
		Side:      s.Index,
		TeamOrder: positions,
	})
	return nil
}

// autoChoose fills the rest of the choice with the first legal option for each position.
func (b *Battle) autoChoose(s *Side) error {
	switch b.RequestState {
	case REQUEST_TEAM:
		return b.chooseTeam(s, "")
	case REQUEST_SWITCH:
		for !b.choiceDone(s) {
			if err := b.chooseSwitch(s, ""); err != nil {
				return err
			}
		}
	case REQUEST_MOVE:
		for !b.choiceDone(s) {
			index := b.choiceIndex(s, false)
			if index >= len(s.Active) {
				break
			}
			active := s.request.Active[index]
			n := max(0, slices.IndexFunc(active.Moves, func(m MoveRequest) bool { return !m.Disabled }))
			loc := 0
			if n < len(active.Moves) {
				loc = b.autoTarget(s.ActivePokemon(index), active.Moves[n].Target)
			}
			if err := b.chooseMove(s, strconv.Itoa(n+1), loc, ""); err != nil {
				return err
			}
		}
	}
	return nil
}

// autoTarget picks the first living foe, then ally, for moves that need a chosen target.
func (b *Battle) autoTarget(p *Pokemon, targetKind string) int {
	if p == nil || !b.targetRequired(targetKind) {
		return 0
	}
	for _, loc := range []int{1, 2, 3, -1, -2, -3} {
		if !b.validTargetLoc(loc, p.Ref, targetKind) {
			continue
		}
		if target := b.atLoc(p.Ref, loc); target != nil && !target.Fainted && target != p {
			return loc
		}
	}
	return 0
}

// choiceDone reports whether a side has decided everything its request needs.
func (b *Battle) choiceDone(s *Side) bool {
	if s.choice == nil || b.RequestState == REQUEST_NONE {
		return true
	}
	if s.choice.forcedSwitchesLeft > 0 {
		return false
	}
	if b.RequestState == REQUEST_TEAM {
		return len(s.choice.Actions) > 0
	}
	b.choiceIndex(s, false)
	return len(s.choice.Actions) >= len(s.Active)
}

// canonicalChoice is the choice as recorded in the input log.
func (b *Battle) canonicalChoice(s *Side) string {
	parts := lo.Map(s.choice.Actions, func(a *Action, _ int) string {
		switch a.Kind {
		case ACTION_TEAM:
			return "team " + strings.Join(lo.Map(a.TeamOrder, func(pos int, _ int) string {
				return strconv.Itoa(pos + 1)
			}), ", ")
		case ACTION_MOVE:
			line := "move " + string(a.Move)
			if a.TargetLoc != 0 && len(s.Active) > 1 {
				if a.TargetLoc > 0 {
					line += " +" + strconv.Itoa(a.TargetLoc)
				} else {
					line += " " + strconv.Itoa(a.TargetLoc)
				}
			}
			if a.Mega {
				line += " mega"
			}
			if a.Terastallize {
				line += " terastallize"
			}
			return line
		case ACTION_SWITCH, ACTION_INSTASWITCH:
			return "switch " + strconv.Itoa(a.Target.Slot+1)
		}
		return a.Kind.String()
	})
	return strings.Join(parts, ", ")
}

// commitChoices turns both sides' choices into queued actions and resumes resolution. Actions
// still pending from an interrupted turn run after the new ones.
func (b *Battle) commitChoices() {
	b.UpdateSpeed()

	oldQueue := b.Queue.List()
	b.Queue.Clear()

	for _, side := range b.Sides {
		if len(side.choice.Actions) == 0 {
			continue
		}
		if lo.EveryBy(side.choice.Actions, func(a *Action) bool { return a.Kind == ACTION_PASS }) && side.request.Wait {
			continue
		}
		b.inputLog = append(b.inputLog, fmt.Sprintf(">%s %s", side.ID, b.canonicalChoice(side)))
	}

	var actions []*Action
	for _, side := range b.Sides {
		for _, a := range side.choice.Actions {
			switch a.Kind {
			case ACTION_PASS:
				continue
			case ACTION_MOVE:
				if a.Mega {
					actions = append(actions, &Action{Kind: ACTION_MEGA_EVO, Pokemon: a.Pokemon, Target: NoPokemon})
				}
				if a.Terastallize {
					actions = append(actions, &Action{Kind: ACTION_TERASTALLIZE, Pokemon: a.Pokemon, Target: NoPokemon})
				}
			}
			actions = append(actions, a)
		}
	}

	for _, side := range b.Sides {
		side.request = nil
		side.choice = nil
	}

	b.Queue.AddChoice(actions...)
	b.Queue.Sort()
	b.Queue.list = append(b.Queue.list, oldQueue...)

	b.turnLoop()
}
