package golurk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyPRNG(t *testing.T) {
	prng, err := NewPRNG("gen5,0001000200030004")
	require.NoError(t, err)

	expected := []uint32{0x79068476, 0xe22232e8, 0xa9fa2546, 0x22414360, 0xd7d2f437}
	for _, want := range expected {
		assert.Equal(t, want, prng.Next())
	}
	assert.Equal(t, Seed("gen5,d7d2f437cef2a67b"), prng.Seed())
	assert.Equal(t, Seed("gen5,0001000200030004"), prng.StartingSeed())
}

func TestLegacyWordSeed(t *testing.T) {
	words, err := NewPRNG("1,2,3,4")
	require.NoError(t, err)
	hexSeed, err := NewPRNG("gen5,0001000200030004")
	require.NoError(t, err)

	assert.Equal(t, hexSeed.Seed(), words.Seed())
	assert.Equal(t, hexSeed.Next(), words.Next())
}

func TestModernPRNG(t *testing.T) {
	prng, err := NewPRNG("sodium,01")
	require.NoError(t, err)
	assert.Equal(t, Seed("sodium,01"+strings.Repeat("0", 62)), prng.StartingSeed())

	expected := []uint32{0x29eb63d0, 0xc1f4e71a, 0x7a03816d}
	for _, want := range expected {
		assert.Equal(t, want, prng.Next())
	}
	assert.Equal(t, Seed("sodium,1bc42a598c1191abf3e165bce87d92780751fc9fc89fffe072c8d5a8ca9261e8"), prng.Seed())
}

func TestRandom(t *testing.T) {
	prng := Must(NewPRNG("gen5,0001000200030004"))

	got := make([]int, 5)
	for i := range got {
		got[i] = prng.Random(100)
	}
	assert.Equal(t, []int{47, 88, 66, 13, 84}, got)
}

func TestSeedRoundTrip(t *testing.T) {
	for _, family := range []string{SEED_LEGACY, SEED_MODERN} {
		t.Run(family, func(t *testing.T) {
			prng := Must(NewPRNG(NewRandomSeed(family)))
			for range 10 {
				prng.Next()
			}

			restored := Must(NewPRNG(prng.Seed()))
			for range 20 {
				require.Equal(t, prng.Next(), restored.Next())
			}
		})
	}
}

func TestClone(t *testing.T) {
	prng := Must(NewPRNG("sodium,abcdef"))
	clone := prng.Clone()

	first := clone.Next()
	clone.Next()

	assert.Equal(t, first, prng.Next())
}

func TestSetSeed(t *testing.T) {
	prng := Must(NewPRNG("gen5,0001000200030004"))
	saved := prng.Seed()
	want := prng.Random(1000)

	require.NoError(t, prng.SetSeed(saved))
	assert.Equal(t, want, prng.Random(1000))
	assert.ErrorIs(t, prng.SetSeed("gen5,12"), ErrInvalidSeed)
}

func TestInvalidSeeds(t *testing.T) {
	for _, seed := range []Seed{
		"",
		"gen5",
		"gen5,123",
		"gen5,zzzzzzzzzzzzzzzz",
		Seed("sodium," + strings.Repeat("a", 65)),
		"sodium,xy",
		"1,2,3",
		"1,2,3,70000",
		"pcg,1234",
	} {
		_, err := NewPRNG(seed)
		assert.ErrorIs(t, err, ErrInvalidSeed, string(seed))
	}
}

func TestRanges(t *testing.T) {
	prng := Must(NewPRNG("sodium,feed"))
	for range 500 {
		n := prng.RandomRange(85, 101)
		require.GreaterOrEqual(t, n, 85)
		require.Less(t, n, 101)

		f := prng.RandomFloat()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)
	}
	assert.PanicsWithValue(t, invariantError{"random draw from an empty range 0"}, func() { prng.Random(0) })
	assert.Panics(t, func() { prng.RandomRange(5, 5) })
	assert.True(t, prng.RandomChance(1, 1))
	assert.False(t, prng.RandomChance(0, 5))
}

func TestSampling(t *testing.T) {
	prng := Must(NewPRNG("gen5,00000000deadbeef"))
	items := []int{1, 2, 3, 4, 5}

	assert.Contains(t, items, Sample(prng, items))
	assert.Panics(t, func() { Sample(prng, []int{}) })

	picked := SampleN(prng, items, 10, false)
	assert.ElementsMatch(t, items, picked)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, items)

	assert.Len(t, SampleN(prng, items, 10, true), 10)
	assert.Nil(t, SampleN(prng, items, 0, false))

	shuffled := []int{1, 2, 3, 4, 5}
	Shuffle(prng, shuffled, 1, 4)
	assert.Equal(t, 1, shuffled[0])
	assert.Equal(t, 5, shuffled[4])
	assert.ElementsMatch(t, []int{2, 3, 4}, shuffled[1:4])
}

func TestCreateRng(t *testing.T) {
	a := Must(NewPRNG("sodium,42")).CreateRng()
	b := Must(NewPRNG("sodium,42")).CreateRng()

	for range 5 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
