package golurk

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

var builderLogger = func() *zerolog.Logger {
	logger := log.With().Str("location", "pokemon-builder").Logger()
	return &logger
}

// PokemonSet is the player supplied description of one team member, in the JSON shape used
// by the player command.
type PokemonSet struct {
	Name    string   `json:"name,omitempty"`
	Species string   `json:"species"`
	Item    string   `json:"item,omitempty"`
	Ability string   `json:"ability,omitempty"`
	Moves   []string `json:"moves"`
	Nature  string   `json:"nature,omitempty"`
	Gender  string   `json:"gender,omitempty"`
	// Evs and Ivs are keyed by stat name (hp, atk, def, spa, spd, spe). Missing EVs are 0,
	// missing IVs are 31.
	Evs      map[string]int `json:"evs,omitempty"`
	Ivs      map[string]int `json:"ivs,omitempty"`
	Level    int            `json:"level,omitempty"`
	TeraType string         `json:"teraType,omitempty"`
}

func statSpread(values map[string]int, fallback, limit int) (StatsTable, error) {
	var table StatsTable
	for i := range table {
		table[i] = fallback
	}
	for name, v := range values {
		stat := slices.Index(statNames[:], strings.ToLower(name))
		if stat < 0 {
			return table, fmt.Errorf("unknown stat %q", name)
		}
		if v < 0 || v > limit {
			return table, fmt.Errorf("%s of %d is outside 0-%d", name, v, limit)
		}
		table[stat] = v
	}
	return table, nil
}

// BuildFromSet validates set against dex and creates the battle Pokemon for it.
func BuildFromSet(dex Dex, set PokemonSet) (Pokemon, error) {
	species := dex.Species(ToID(set.Species))
	if species == nil {
		return Pokemon{}, fmt.Errorf("species %q: %w", set.Species, ErrNotFound)
	}

	name := strings.TrimSpace(strings.NewReplacer("|", "", "\n", "").Replace(set.Name))
	if name == "" {
		name = species.Name
	}

	level := set.Level
	if level == 0 {
		level = MAX_LEVEL
	}
	if level < 1 || level > MAX_LEVEL {
		return Pokemon{}, fmt.Errorf("%s: level %d is outside 1-%d", name, level, MAX_LEVEL)
	}

	nature := NATURES["hardy"]
	if set.Nature != "" {
		n, ok := NATURES[ToID(set.Nature)]
		if !ok {
			return Pokemon{}, fmt.Errorf("%s: unknown nature %q", name, set.Nature)
		}
		nature = n
	}

	evs, err := statSpread(set.Evs, 0, MAX_EV)
	if err != nil {
		return Pokemon{}, fmt.Errorf("%s evs: %w", name, err)
	}
	if total := lo.Sum(evs[:]); total > MAX_TOTAL_EV {
		return Pokemon{}, fmt.Errorf("%s: %d total EVs, at most %d allowed", name, total, MAX_TOTAL_EV)
	}
	ivs, err := statSpread(set.Ivs, MAX_IV, MAX_IV)
	if err != nil {
		return Pokemon{}, fmt.Errorf("%s ivs: %w", name, err)
	}

	if len(set.Moves) == 0 || len(set.Moves) > 4 {
		return Pokemon{}, fmt.Errorf("%s: needs 1 to 4 moves, has %d", name, len(set.Moves))
	}
	moves := make([]MoveSlot, 0, len(set.Moves))
	for _, moveName := range set.Moves {
		data := dex.Move(ToID(moveName))
		if data == nil {
			return Pokemon{}, fmt.Errorf("%s: move %q: %w", name, moveName, ErrNotFound)
		}
		if lo.ContainsBy(moves, func(m MoveSlot) bool { return m.ID == data.ID }) {
			return Pokemon{}, fmt.Errorf("%s: move %s listed twice", name, data.Name)
		}
		// every move carries full PP ups
		pp := data.PP * 8 / 5
		if data.PP == 1 {
			pp = 1
		}
		moves = append(moves, MoveSlot{ID: data.ID, Name: data.Name, PP: pp, MaxPP: pp})
	}

	abilityID := ToID(set.Ability)
	if abilityID == "" && len(species.Abilities) > 0 {
		abilityID = ToID(species.Abilities[0])
	}
	if abilityID != "" && dex.Ability(abilityID) == nil {
		builderLogger().Warn().Str("ability", string(abilityID)).Str("pokemon", name).Msg("Ability has no effect data")
	}

	itemID := ToID(set.Item)
	if itemID != "" && dex.Item(itemID) == nil {
		builderLogger().Warn().Str("item", string(itemID)).Str("pokemon", name).Msg("Item has no effect data")
	}

	gender := species.Gender
	if gender == "" {
		switch g := strings.ToUpper(set.Gender); g {
		case "", "M", "F":
			gender = g
		case "N":
		default:
			return Pokemon{}, fmt.Errorf("%s: unknown gender %q", name, set.Gender)
		}
	}
	if gender == "N" {
		gender = ""
	}

	teraType := species.Types[0]
	if set.TeraType != "" {
		if !IsValidType(set.TeraType) {
			return Pokemon{}, fmt.Errorf("%s: unknown tera type %q", name, set.TeraType)
		}
		teraType = set.TeraType
	}

	p := Pokemon{
		Name:        name,
		Species:     species,
		BaseSpecies: species,
		Level:       level,
		Gender:      gender,
		Nature:      nature,
		Evs:         evs,
		Ivs:         ivs,
		Ability:     abilityID,
		BaseAbility: abilityID,
		Item:        itemID,
		Moves:       moves,
		Types:       slices.Clone(species.Types),
		TeraType:    teraType,
	}
	p.calcStats(false)
	p.Hp = p.MaxHp

	builderLogger().Debug().
		Str("pokemon", name).
		Int("level", level).
		Ints("stats", p.StoredStats[:]).
		Msg("Built pokemon")

	return p, nil
}

// PokemonBuilder assembles a PokemonSet step by step, mostly for generated teams.
type PokemonBuilder struct {
	set PokemonSet
	rng *rand.Rand
}

func NewPokeBuilder(species *Species, rng *rand.Rand) *PokemonBuilder {
	set := PokemonSet{
		Species: species.Name,
		Level:   MAX_LEVEL,
		Nature:  "Hardy",
	}
	if len(species.Abilities) > 0 {
		set.Ability = species.Abilities[0]
	}
	return &PokemonBuilder{set: set, rng: rng}
}

func (pb *PokemonBuilder) SetEvs(evs StatsTable) *PokemonBuilder {
	pb.set.Evs = spreadMap(evs)

	builderLogger().Debug().
		Int("HP", evs[STAT_HP]).
		Int("ATTACK", evs[STAT_ATK]).
		Int("DEF", evs[STAT_DEF]).
		Int("SPATTACK", evs[STAT_SPA]).
		Int("SPDEF", evs[STAT_SPD]).
		Int("SPEED", evs[STAT_SPE]).Msg("Setting EVs")

	return pb
}

func (pb *PokemonBuilder) SetIvs(ivs StatsTable) *PokemonBuilder {
	pb.set.Ivs = spreadMap(ivs)

	builderLogger().Debug().
		Int("HP", ivs[STAT_HP]).
		Int("ATTACK", ivs[STAT_ATK]).
		Int("DEF", ivs[STAT_DEF]).
		Int("SPATTACK", ivs[STAT_SPA]).
		Int("SPDEF", ivs[STAT_SPD]).
		Int("SPEED", ivs[STAT_SPE]).Msg("Setting IVs")

	return pb
}

func (pb *PokemonBuilder) SetPerfectIvs() *PokemonBuilder {
	pb.set.Ivs = nil
	builderLogger().Debug().Msg("Setting Perfect IVS")
	return pb
}

func (pb *PokemonBuilder) SetRandomIvs() *PokemonBuilder {
	var ivs StatsTable
	for i := range ivs {
		ivs[i] = pb.rng.IntN(MAX_IV + 1)
	}

	builderLogger().Debug().Msg("Setting Random IVs")
	return pb.SetIvs(ivs)
}

// SetRandomEvs hands out the full EV pool in 4 point steps, never over the per stat cap.
func (pb *PokemonBuilder) SetRandomEvs() *PokemonBuilder {
	var evs StatsTable
	pool := MAX_TOTAL_EV - MAX_TOTAL_EV%4

	for pool > 0 {
		open := lo.Filter(lo.Range(int(statCount)), func(i int, _ int) bool {
			return evs[i] < MAX_EV
		})
		if len(open) == 0 {
			break
		}
		stat := open[pb.rng.IntN(len(open))]
		step := min(4*(pb.rng.IntN(16)+1), MAX_EV-evs[stat], pool)
		evs[stat] += step
		pool -= step
	}

	builderLogger().Debug().Msgf("EV Total: %d", lo.Sum(evs[:]))
	return pb.SetEvs(evs)
}

func (pb *PokemonBuilder) SetLevel(level int) *PokemonBuilder {
	pb.set.Level = level
	return pb
}

func (pb *PokemonBuilder) SetRandomLevel(low int, high int) *PokemonBuilder {
	pb.set.Level = pb.rng.IntN(high-low+1) + low
	return pb
}

func (pb *PokemonBuilder) SetNature(nature Nature) *PokemonBuilder {
	pb.set.Nature = nature.Name
	return pb
}

func (pb *PokemonBuilder) SetRandomNature() *PokemonBuilder {
	names := lo.Keys(NATURES)
	slices.Sort(names)
	pb.set.Nature = NATURES[names[pb.rng.IntN(len(names))]].Name
	return pb
}

func (pb *PokemonBuilder) SetItem(item string) *PokemonBuilder {
	pb.set.Item = item
	return pb
}

// SetRandomMoves picks up to four distinct moves.
func (pb *PokemonBuilder) SetRandomMoves(possibleMoves []*MoveData) *PokemonBuilder {
	if len(possibleMoves) == 0 {
		builderLogger().Warn().Msg("This Pokemon was given no available moves to randomize with!")
		return pb
	}

	picked := slices.Clone(possibleMoves)
	pb.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	picked = picked[:min(4, len(picked))]

	pb.set.Moves = lo.Map(picked, func(m *MoveData, _ int) string {
		return m.Name
	})
	builderLogger().Debug().Strs("Moves", pb.set.Moves).Msg("Setting Random Moves")

	return pb
}

func (pb *PokemonBuilder) SetRandomAbility(possibleAbilities []string) *PokemonBuilder {
	if len(possibleAbilities) == 0 {
		builderLogger().Warn().Msg("This Pokemon was given no available abilities to randomize with!")
		return pb
	}
	pb.set.Ability = possibleAbilities[pb.rng.IntN(len(possibleAbilities))]
	return pb
}

func (pb *PokemonBuilder) Build() PokemonSet {
	builderLogger().Debug().Str("species", pb.set.Species).Msg("Building pokemon set")
	return pb.set
}

func spreadMap(table StatsTable) map[string]int {
	spread := make(map[string]int, len(table))
	for i, v := range table {
		spread[statNames[i]] = v
	}
	return spread
}
