package golurk

import (
	"fmt"
)

// PendingChoice reports whether side has a request it still has to answer.
func (b *Battle) PendingChoice(side int) bool {
	if b.Ended() {
		return false
	}
	req := b.Request(side)
	return req != nil && !req.Wait && !b.choiceDone(b.Sides[side])
}

// AutoPlay answers every request with the default choice until the battle ends. After turnLimit
// turns the battle goes to a tiebreak. It is meant for self play and replay tests, not as an
// opponent.
func AutoPlay(b *Battle, turnLimit int) error {
	for !b.Ended() {
		if turnLimit > 0 && b.Turn >= turnLimit && b.RequestState == REQUEST_MOVE {
			return b.Tiebreak()
		}

		decided := false
		for side := range b.Sides {
			if !b.PendingChoice(side) {
				continue
			}
			if err := b.Choose(side, "default"); err != nil {
				return fmt.Errorf("side %d default choice: %w", side+1, err)
			}
			decided = true
		}
		if !decided {
			return fmt.Errorf("turn %d: no side has a choice to make: %w", b.Turn, ErrInvariant)
		}
	}
	return nil
}
