package golurk

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToID(t *testing.T) {
	tests := map[string]ID{
		"Thunder Wave":   "thunderwave",
		"Mr. Mime":       "mrmime",
		"Porygon-Z":      "porygonz",
		"Farfetch’d":     "farfetchd",
		"  U-turn ":      "uturn",
		"Hidden Power 2": "hiddenpower2",
		"":               "",
	}
	for name, want := range tests {
		assert.Equal(t, want, ToID(name), name)
	}
}

func TestModify(t *testing.T) {
	assert.Equal(t, 150, modify(100, 3, 2))
	// halves round down
	assert.Equal(t, 28, modify(57, 1, 2))
	assert.Equal(t, 75, modify(100, 3, 4))

	chained := chainModifier(4096, 3, 2)
	assert.Equal(t, 6144, chained)
	assert.Equal(t, 9216, chainModifier(chained, 3, 2))
	assert.Equal(t, 225, applyModifier(100, 9216))
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must(3, nil))
	assert.Panics(t, func() { Must(0, errors.New("boom")) })
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Mysteryitem", displayName("mysteryitem"))
}
