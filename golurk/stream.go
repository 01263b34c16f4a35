package golurk

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPlayer = errors.New("unknown player slot")

// Command is one parsed input line.
type Command struct {
	// Kind is start, player, choose, forcewin or tiebreak. Empty for ignored lines.
	Kind string
	Side int
	Data string
}

func sideIndex(id string) (int, bool) {
	switch id {
	case "p1":
		return SIDE_P1, true
	case "p2":
		return SIDE_P2, true
	}
	return 0, false
}

// ParseCommand splits an input line. Blank lines, comments and unknown commands parse to a Command
// with an empty Kind.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), ">"))
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}, nil
	}

	head, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch head {
	case "start", "tiebreak":
		return Command{Kind: head, Data: rest}, nil
	case "player":
		slot, data, _ := strings.Cut(rest, " ")
		side, ok := sideIndex(slot)
		if !ok {
			return Command{}, fmt.Errorf("player %q: %w", slot, ErrUnknownPlayer)
		}
		return Command{Kind: "player", Side: side, Data: strings.TrimSpace(data)}, nil
	case "forcewin":
		side, ok := sideIndex(rest)
		if !ok {
			return Command{}, fmt.Errorf("forcewin %q: %w", rest, ErrUnknownPlayer)
		}
		return Command{Kind: "forcewin", Side: side}, nil
	}

	if side, ok := sideIndex(head); ok {
		return Command{Kind: "choose", Side: side, Data: rest}, nil
	}
	return Command{}, nil
}

type startOptions struct {
	FormatID ID     `json:"formatid"`
	Seed     Seed   `json:"seed"`
	Family   string `json:"seedFamily,omitempty"`
}

// Stream drives a battle from text commands and collects its output in chunks:
// "update\n<log lines>" for the shared log and "sideupdate\np1\n<line>" for one player.
type Stream struct {
	dex    Dex
	battle *Battle

	out       []string
	logSent   int
	rqidsSent [2]int
}

func NewStream(dex Dex) *Stream {
	if dex == nil {
		dex = DefaultDex()
	}
	return &Stream{dex: dex}
}

// Battle is nil until a start command has been written.
func (s *Stream) Battle() *Battle {
	return s.battle
}

// Write runs one command line. Choice errors are both returned and queued for the side that made them.
func (s *Stream) Write(line string) (err error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	if cmd.Kind == "" {
		return nil
	}
	if cmd.Kind != "start" && s.battle == nil {
		return fmt.Errorf("%s: %w", cmd.Kind, ErrNotStarted)
	}

	switch cmd.Kind {
	case "start":
		if s.battle != nil {
			return errors.New("start: battle already started")
		}
		var opts startOptions
		if cmd.Data != "" {
			if err := json.Unmarshal([]byte(cmd.Data), &opts); err != nil {
				return fmt.Errorf("start options: %w", err)
			}
		}
		battle, err := NewBattle(BattleOptions{Format: opts.FormatID, Seed: opts.Seed, SeedFamily: opts.Family, Dex: s.dex})
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		s.battle = battle
	case "player":
		var opts PlayerOptions
		if err := json.Unmarshal([]byte(cmd.Data), &opts); err != nil {
			return fmt.Errorf("player options: %w", err)
		}
		err = s.battle.SetPlayer(cmd.Side, opts)
	case "choose":
		err = s.battle.Choose(cmd.Side, cmd.Data)
		var choiceErr *ChoiceError
		if errors.As(err, &choiceErr) {
			s.out = append(s.out, fmt.Sprintf("sideupdate\n%s\n|error|%s", choiceErr.Side, choiceErr.Error()))
		}
	case "forcewin":
		err = s.battle.ForceWin(cmd.Side)
	case "tiebreak":
		err = s.battle.Tiebreak()
	}

	s.flush()
	return err
}

// flush queues new log lines, then any request that has not been sent yet.
func (s *Stream) flush() {
	log := s.battle.Log()
	if len(log) > s.logSent {
		s.out = append(s.out, "update\n"+strings.Join(log[s.logSent:], "\n"))
		s.logSent = len(log)
	}

	for i, side := range s.battle.Sides {
		req := s.battle.Request(i)
		if req == nil || req.Rqid == s.rqidsSent[i] {
			continue
		}
		s.rqidsSent[i] = req.Rqid
		s.out = append(s.out, fmt.Sprintf("sideupdate\n%s\n|request|%s", side.ID, s.battle.RequestJSON(i)))
	}
}

// Read drains the queued output chunks.
func (s *Stream) Read() []string {
	out := s.out
	s.out = nil
	return out
}

// Replay rebuilds a battle from an input log. Every line must be accepted again.
func Replay(dex Dex, inputLog []string) (*Battle, error) {
	stream := NewStream(dex)
	for i, line := range inputLog {
		if err := stream.Write(line); err != nil {
			return stream.Battle(), fmt.Errorf("replay line %d %q: %w", i+1, line, err)
		}
	}
	if stream.Battle() == nil {
		return nil, fmt.Errorf("replay: %w", ErrNotStarted)
	}
	return stream.Battle(), nil
}
