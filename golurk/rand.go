package golurk

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"golang.org/x/crypto/chacha20"
)

// Seed is the serialized state of a PRNG.
//
// Two families are understood:
//
//	gen5,<16 hex digits>     legacy 64 bit linear congruential generator
//	sodium,<64 hex digits>   ChaCha20 keystream generator
//
// A bare "a,b,c,d" list of four 16 bit words is accepted as a legacy seed.
type Seed string

const (
	SEED_LEGACY = "gen5"
	SEED_MODERN = "sodium"
)

var ErrInvalidSeed = errors.New("invalid seed")

type rngSource interface {
	next() uint32
	seed() Seed
	clone() rngSource
}

// PRNG is the only source of randomness a battle is allowed to use.
// Two PRNGs built from the same seed return the same values for the same calls.
type PRNG struct {
	startingSeed Seed
	source       rngSource
}

func NewPRNG(seed Seed) (*PRNG, error) {
	source, err := parseSeed(seed)
	if err != nil {
		return nil, err
	}

	return &PRNG{startingSeed: source.seed(), source: source}, nil
}

// NewRandomSeed draws a fresh seed of the given family from the OS.
func NewRandomSeed(family string) Seed {
	switch family {
	case SEED_LEGACY:
		var randBytes [8]byte
		// crypto/rand.Read never returns an error on supported platforms
		_, _ = cryptoRand.Read(randBytes[:])
		return legacySeed(binary.BigEndian.Uint64(randBytes[:]))
	default:
		var randBytes [32]byte
		_, _ = cryptoRand.Read(randBytes[:])
		return Seed(SEED_MODERN + "," + hex.EncodeToString(randBytes[:]))
	}
}

func parseSeed(seed Seed) (rngSource, error) {
	family, body, found := strings.Cut(string(seed), ",")
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeed, seed)
	}

	switch family {
	case SEED_LEGACY:
		if len(body) != 16 {
			return nil, fmt.Errorf("%w: legacy seed needs 16 hex digits, got %q", ErrInvalidSeed, body)
		}
		state, err := strconv.ParseUint(body, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
		}
		return &lcgSource{state: state}, nil
	case SEED_MODERN:
		if len(body) > 64 {
			return nil, fmt.Errorf("%w: modern seed longer than 64 hex digits", ErrInvalidSeed)
		}
		// short seeds are padded with zeros
		key, err := hex.DecodeString(body + strings.Repeat("0", 64-len(body)))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
		}
		source := &chachaSource{}
		copy(source.key[:], key)
		return source, nil
	}

	// a,b,c,d
	words := strings.Split(string(seed), ",")
	if len(words) != 4 {
		return nil, fmt.Errorf("%w: unknown seed family %q", ErrInvalidSeed, family)
	}
	var state uint64
	for _, word := range words {
		n, err := strconv.ParseUint(strings.TrimSpace(word), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSeed, err)
		}
		state = state<<16 | n
	}

	return &lcgSource{state: state}, nil
}

func legacySeed(state uint64) Seed {
	return Seed(fmt.Sprintf("%s,%016x", SEED_LEGACY, state))
}

type lcgSource struct {
	state uint64
}

func (s *lcgSource) next() uint32 {
	s.state = s.state*0x5D588B656C078965 + 0x269EC3
	return uint32(s.state >> 32)
}

func (s *lcgSource) seed() Seed {
	return legacySeed(s.state)
}

func (s *lcgSource) clone() rngSource {
	c := *s
	return &c
}

type chachaSource struct {
	key [32]byte
}

func (s *chachaSource) next() uint32 {
	var buf [36]byte
	var nonce [chacha20.NonceSize]byte

	cipher, err := chacha20.NewUnauthenticatedCipher(s.key[:], nonce[:])
	if err != nil {
		// key and nonce sizes are fixed
		panic(err)
	}
	cipher.XORKeyStream(buf[:], buf[:])

	copy(s.key[:], buf[:32])
	return binary.BigEndian.Uint32(buf[32:])
}

func (s *chachaSource) seed() Seed {
	return Seed(SEED_MODERN + "," + hex.EncodeToString(s.key[:]))
}

func (s *chachaSource) clone() rngSource {
	c := *s
	return &c
}

// Seed returns the current state. Restoring it with SetSeed continues the exact same stream.
func (p *PRNG) Seed() Seed {
	return p.source.seed()
}

func (p *PRNG) StartingSeed() Seed {
	return p.startingSeed
}

func (p *PRNG) SetSeed(seed Seed) error {
	source, err := parseSeed(seed)
	if err != nil {
		return err
	}

	p.source = source
	return nil
}

// Clone creates a copy of this PRNG such that calls to the copy do not advance the original
func (p *PRNG) Clone() *PRNG {
	return &PRNG{startingSeed: p.startingSeed, source: p.source.clone()}
}

// Next returns the raw 32 bit output of the generator.
func (p *PRNG) Next() uint32 {
	return p.source.next()
}

// Random returns an int in [0, n). n must be positive.
func (p *PRNG) Random(n int) int {
	if n <= 0 {
		panic(invariantError{fmt.Sprintf("random draw from an empty range %d", n)})
	}
	return int((uint64(p.source.next()) * uint64(n)) >> 32)
}

// RandomRange returns an int in [from, to).
func (p *PRNG) RandomRange(from, to int) int {
	return p.Random(to-from) + from
}

// RandomFloat returns a float in [0, 1).
func (p *PRNG) RandomFloat() float64 {
	return float64(p.source.next()) / (1 << 32)
}

// RandomChance returns true numerator/denominator of the time.
func (p *PRNG) RandomChance(numerator, denominator int) bool {
	return p.Random(denominator) < numerator
}

// Uint64 lets a PRNG act as a math/rand/v2 Source, which the team builder uses.
func (p *PRNG) Uint64() uint64 {
	return uint64(p.source.next())<<32 | uint64(p.source.next())
}

func (p *PRNG) CreateRng() *rand.Rand {
	return rand.New(p)
}

// Sample picks one element uniformly. It panics on an empty slice.
func Sample[T any](p *PRNG, items []T) T {
	if len(items) == 0 {
		panic("golurk: cannot sample an empty slice")
	}
	return items[p.Random(len(items))]
}

// SampleN picks n elements. Without replacement, n is capped at len(items) and the input is left untouched.
func SampleN[T any](p *PRNG, items []T, n int, replace bool) []T {
	if len(items) == 0 || n <= 0 {
		return nil
	}

	if replace {
		samples := make([]T, n)
		for i := range samples {
			samples[i] = items[p.Random(len(items))]
		}
		return samples
	}

	pool := append([]T(nil), items...)
	n = min(n, len(pool))
	for i := range n {
		j := p.RandomRange(i, len(pool))
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}

// Shuffle shuffles items[start:end] in place.
func Shuffle[T any](p *PRNG, items []T, start, end int) {
	for start < end-1 {
		next := p.RandomRange(start, end)
		if start != next {
			items[start], items[next] = items[next], items[start]
		}
		start++
	}
}
