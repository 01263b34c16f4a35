package golurk

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ID is a normalized identifier: lowercase ascii letters and digits only.
type ID string

var (
	// cases.Caser is not safe for concurrent use
	caserMu    sync.Mutex
	idFolder   = cases.Fold()
	titleCaser = cases.Title(language.English)
)

// ToID normalizes a display name ("Thunder Wave", "Mr. Mime") into an ID ("thunderwave", "mrmime").
func ToID(name string) ID {
	caserMu.Lock()
	folded := idFolder.String(name)
	caserMu.Unlock()

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return ID(b.String())
}

// displayName gives a best effort name for an id that has no data entry
func displayName(id ID) string {
	caserMu.Lock()
	defer caserMu.Unlock()
	return titleCaser.String(string(id))
}

// Must returns the value passed in if there is no error, otherwise it will panic
func Must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}

	return value
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clampInt(n, low, high int) int {
	return max(low, min(high, n))
}

// modify scales value by numerator/denominator using 4096 fixed point, rounding half down.
func modify(value, numerator, denominator int) int {
	modifier := numerator * 4096 / denominator
	return applyModifier(value, modifier)
}

func applyModifier(value, modifier int) int {
	return (value*modifier + 2048 - 1) / 4096
}

// chainModifier folds another numerator/denominator into a 4096 based modifier
func chainModifier(previous, numerator, denominator int) int {
	next := numerator * 4096 / denominator
	return (previous*next + 2048) >> 12
}
