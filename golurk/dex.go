package golurk

import (
	"bytes"
	"cmp"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var ErrNotFound = errors.New("not found")

// Dex is the read only game data a battle consumes. Implementations must be safe for
// concurrent reads from many battles.
type Dex interface {
	Species(id ID) *Species
	Move(id ID) *MoveData
	Ability(id ID) *Effect
	Item(id ID) *Effect
	Condition(id ID) *Effect
	Format(id ID) *Format
}

type Species struct {
	ID        ID         `json:"id"`
	Num       int        `json:"num"`
	Name      string     `json:"name"`
	Types     []string   `json:"types"`
	BaseStats StatsTable `json:"baseStats"`
	Abilities []string   `json:"abilities"`
	// Gender is M, F or N for fixed genders, empty for either
	Gender string `json:"gender,omitempty"`

	BaseSpecies  string `json:"baseSpecies,omitempty"`
	Forme        string `json:"forme,omitempty"`
	RequiredItem string `json:"requiredItem,omitempty"`
}

type MoveFlags struct {
	Contact bool `json:"contact,omitempty"`
	Protect bool `json:"protect,omitempty"`
	Sound   bool `json:"sound,omitempty"`
	Punch   bool `json:"punch,omitempty"`
	Powder  bool `json:"powder,omitempty"`
	// Defrost moves thaw a frozen user
	Defrost bool `json:"defrost,omitempty"`
}

type SecondaryEffect struct {
	Chance         int         `json:"chance"`
	Status         ID          `json:"status,omitempty"`
	VolatileStatus ID          `json:"volatileStatus,omitempty"`
	Boosts         *BoostTable `json:"boosts,omitempty"`
	SelfBoosts     *BoostTable `json:"selfBoosts,omitempty"`
}

// MoveData is the numeric and behavioral descriptor of a move.
type MoveData struct {
	ID        ID        `json:"id"`
	Num       int       `json:"num"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	BasePower int       `json:"basePower"`
	// Accuracy 0 means the move never misses
	Accuracy int       `json:"accuracy"`
	PP       int       `json:"pp"`
	Priority int       `json:"priority"`
	Target   string    `json:"target"`
	Flags    MoveFlags `json:"flags"`

	CritRatio int  `json:"critRatio,omitempty"`
	WillCrit  bool `json:"willCrit,omitempty"`

	Status         ID          `json:"status,omitempty"`
	VolatileStatus ID          `json:"volatileStatus,omitempty"`
	SideCondition  ID          `json:"sideCondition,omitempty"`
	SlotCondition  ID          `json:"slotCondition,omitempty"`
	Weather        ID          `json:"weather,omitempty"`
	Terrain        ID          `json:"terrain,omitempty"`
	PseudoWeather  ID          `json:"pseudoWeather,omitempty"`
	Boosts         *BoostTable `json:"boosts,omitempty"`
	SelfBoosts     *BoostTable `json:"selfBoosts,omitempty"`

	Secondaries []SecondaryEffect `json:"secondaries,omitempty"`

	Heal   [2]int `json:"heal,omitempty"`
	Drain  [2]int `json:"drain,omitempty"`
	Recoil [2]int `json:"recoil,omitempty"`

	SelfSwitch  bool `json:"selfSwitch,omitempty"`
	ForceSwitch bool `json:"forceSwitch,omitempty"`
	Stalling    bool `json:"stallingMove,omitempty"`
	// TypeImmunity makes a status move respect the type chart, like Thunder Wave
	TypeImmunity bool `json:"typeImmunity,omitempty"`
	// StruggleRecoil is a quarter of the user's max HP, dealt directly
	StruggleRecoil bool `json:"struggleRecoil,omitempty"`

	// Effect holds the move's own event handlers
	Effect *Effect `json:"-"`
}

// MarshalJSON writes only the non zero stages, keyed by stat name.
func (b BoostTable) MarshalJSON() ([]byte, error) {
	out := map[string]int{}
	for i, v := range b {
		if v != 0 {
			out[boostNames[i]] = v
		}
	}
	return json.Marshal(out)
}

func (b *BoostTable) UnmarshalJSON(data []byte) error {
	raw := map[string]int{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*b = BoostTable{}
	for name, v := range raw {
		id, ok := boostIDFromName(name)
		if !ok {
			return fmt.Errorf("unknown boost %q", name)
		}
		b[id] = v
	}
	return nil
}

// MemoryDex is a Dex backed by maps. It is never mutated after construction.
type MemoryDex struct {
	species    map[ID]*Species
	moves      map[ID]*MoveData
	abilities  map[ID]*Effect
	items      map[ID]*Effect
	conditions map[ID]*Effect
	formats    map[ID]*Format
}

var (
	defaultDex     *MemoryDex
	defaultDexOnce sync.Once
)

// DefaultDex returns the built in data set.
func DefaultDex() *MemoryDex {
	defaultDexOnce.Do(func() {
		defaultDex = &MemoryDex{
			species:    builtinSpecies,
			moves:      builtinMoves,
			abilities:  builtinAbilities,
			items:      builtinItems,
			conditions: builtinConditions,
			formats:    builtinFormats,
		}
		dexLogger().V(1).Info("built default dex", "species", len(builtinSpecies), "moves", len(builtinMoves))
	})
	return defaultDex
}

func (d *MemoryDex) Species(id ID) *Species {
	return d.species[id]
}

func (d *MemoryDex) Move(id ID) *MoveData {
	return d.moves[id]
}

func (d *MemoryDex) Ability(id ID) *Effect {
	return d.abilities[id]
}

func (d *MemoryDex) Item(id ID) *Effect {
	return d.items[id]
}

func (d *MemoryDex) Condition(id ID) *Effect {
	return d.conditions[id]
}

func (d *MemoryDex) Format(id ID) *Format {
	return d.formats[id]
}

// Extend returns a new dex with extra species and moves layered over this one.
// Moves that share an id with an existing move keep the existing move's handlers.
func (d *MemoryDex) Extend(species []Species, moves []MoveData) *MemoryDex {
	extended := &MemoryDex{
		species:    maps.Clone(d.species),
		moves:      maps.Clone(d.moves),
		abilities:  d.abilities,
		items:      d.items,
		conditions: d.conditions,
		formats:    d.formats,
	}

	for i := range species {
		s := species[i]
		if s.ID == "" {
			s.ID = ToID(s.Name)
		}
		extended.species[s.ID] = &s
	}

	for i := range moves {
		m := moves[i]
		if m.ID == "" {
			m.ID = ToID(m.Name)
		}
		if existing, ok := d.moves[m.ID]; ok {
			m.Effect = existing.Effect
		}
		if m.Effect == nil {
			m.Effect = NewEffect(m.ID, m.Name, KIND_MOVE)
		}
		extended.moves[m.ID] = &m
	}

	return extended
}

// LoadSpecies takes in the bytes of a csv file with the following columns:
// Num, Name, Type1, Type2, HP, Attack, Defense, SpecialAttack, SpecialDefense, Speed, Abilities
// in that order. Type2 may be empty, Abilities is a '/' separated list.
func LoadSpecies(fileBytes []byte) ([]Species, error) {
	csvReader := csv.NewReader(bytes.NewBuffer(fileBytes))
	// header
	if _, err := csvReader.Read(); err != nil {
		return nil, fmt.Errorf("reading species header: %w", err)
	}

	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid species csv: %w", err)
	}

	species := make([]Species, 0, len(rows))
	for line, row := range rows {
		if len(row) < 11 {
			return nil, fmt.Errorf("species row %d: expected 11 columns, got %d", line+2, len(row))
		}

		num, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("species row %d: %w", line+2, err)
		}

		s := Species{
			ID:        ToID(row[1]),
			Num:       num,
			Name:      row[1],
			Types:     []string{row[2]},
			Abilities: strings.Split(row[10], "/"),
		}
		if row[3] != "" {
			s.Types = append(s.Types, row[3])
		}

		for stat := STAT_HP; stat < statCount; stat++ {
			value, err := strconv.Atoi(row[4+int(stat)])
			if err != nil {
				return nil, fmt.Errorf("species row %d, %s: %w", line+2, stat, err)
			}
			s.BaseStats[stat] = value
		}

		species = append(species, s)
	}

	return species, nil
}

// LoadMoves reads a JSON array of move descriptors.
func LoadMoves(fileBytes []byte) ([]MoveData, error) {
	var moves []MoveData
	if err := json.Unmarshal(fileBytes, &moves); err != nil {
		return nil, fmt.Errorf("invalid move json: %w", err)
	}

	for i, m := range moves {
		if m.Name == "" {
			return nil, fmt.Errorf("move %d has no name", i)
		}
		if m.Category == "" {
			moves[i].Category = CATEGORY_STATUS
		}
		if m.Target == "" {
			moves[i].Target = TARGET_NORMAL
		}
	}

	return moves, nil
}

// DefaultLoader builds a dex from species.csv and moves.json under dir in files, layered over the
// built in data. Missing files are skipped.
func DefaultLoader(files fs.FS, dir string) (*MemoryDex, error) {
	var (
		g       errgroup.Group
		species []Species
		moves   []MoveData
	)

	g.Go(func() (err error) {
		species, err = loadOptional(files, path.Join(dir, "species.csv"), LoadSpecies)
		return err
	})
	g.Go(func() (err error) {
		moves, err = loadOptional(files, path.Join(dir, "moves.json"), LoadMoves)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	dexLogger().Info("loaded dex overrides", "species", len(species), "moves", len(moves))
	return DefaultDex().Extend(species, moves), nil
}

func loadOptional[T any](files fs.FS, name string, load func([]byte) ([]T, error)) ([]T, error) {
	data, err := fs.ReadFile(files, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	loaded, err := load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return loaded, nil
}

// AllSpecies lists every species ordered by dex number, then id.
func (d *MemoryDex) AllSpecies() []*Species {
	species := lo.Values(d.species)
	slices.SortFunc(species, func(a, b *Species) int {
		return cmp.Or(cmp.Compare(a.Num, b.Num), cmp.Compare(a.ID, b.ID))
	})
	return species
}

// AllMoves lists every move ordered by id.
func (d *MemoryDex) AllMoves() []*MoveData {
	moves := lo.Values(d.moves)
	slices.SortFunc(moves, func(a, b *MoveData) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return moves
}
