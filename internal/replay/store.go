// Package replay persists finished battles to sqlite and re-runs them to check they still
// play out the same.
package replay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	ErrNotFound = errors.New("replay not found")
	ErrMismatch = errors.New("replay output differs")
)

// Replay is one stored battle. The logs are newline joined.
type Replay struct {
	ID        uuid.UUID `gorm:"type:text;primaryKey"`
	BattleID  string    `gorm:"index"`
	Format    string    `gorm:"index"`
	Seed      string
	Winner    string
	Turns     int
	Crashed   bool
	InputLog  string
	OutputLog string
	// Sides is a JSON list of SideSummary
	Sides     datatypes.JSON `gorm:"default:'[]'"`
	CreatedAt time.Time
}

// SideSummary is how one side finished.
type SideSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	PokemonLeft int      `json:"pokemonLeft"`
	Team        []string `json:"team"`
}

func (r Replay) SideSummaries() ([]SideSummary, error) {
	if len(r.Sides) == 0 {
		return nil, nil
	}
	var sides []SideSummary
	if err := json.Unmarshal(r.Sides, &sides); err != nil {
		return nil, fmt.Errorf("replay %s sides: %w", r.ID, err)
	}
	return sides, nil
}

func (r Replay) InputLines() []string {
	return splitLines(r.InputLog)
}

func (r Replay) OutputLines() []string {
	return splitLines(r.OutputLog)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

type Store struct {
	DB     *gorm.DB
	Logger zerolog.Logger
}

// Dialector picks the gorm driver for a replay database. sqlite takes a file path, empty for an
// in-memory database; postgres takes a DSN.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", "sqlite":
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		return sqlite.Open(dsn), nil
	case "postgres":
		if dsn == "" {
			return nil, errors.New("postgres replay store needs a dsn")
		}
		return postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), nil
	}
	return nil, fmt.Errorf("unknown replay driver %q", driver)
}

// Open connects to the sqlite file at path and migrates the schema. An empty path opens an
// in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	return OpenDriver("sqlite", path, log)
}

func OpenDriver(driver, dsn string, log zerolog.Logger) (*Store, error) {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s replay db: %w", dialector.Name(), err)
	}
	if err := db.AutoMigrate(&Replay{}); err != nil {
		return nil, fmt.Errorf("migrating replay db: %w", err)
	}

	log.Debug().Str("driver", dialector.Name()).Msg("Opened replay store")
	return &Store{DB: db, Logger: log}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save records a battle under a new replay id.
func (s *Store) Save(ctx context.Context, b *golurk.Battle) (Replay, error) {
	sides, err := json.Marshal(lo.Map(b.Sides[:], func(side *golurk.Side, _ int) SideSummary {
		return SideSummary{
			ID:          side.ID,
			Name:        side.Name,
			PokemonLeft: side.PokemonLeft,
			Team: lo.Map(side.Team, func(p golurk.Pokemon, _ int) string {
				return p.BaseSpecies.Name
			}),
		}
	}))
	if err != nil {
		return Replay{}, err
	}

	r := Replay{
		ID:        uuid.New(),
		BattleID:  b.ID,
		Format:    string(b.Format.ID),
		Seed:      string(b.Seed()),
		Winner:    b.Winner,
		Turns:     b.Turn,
		Crashed:   b.Crashed,
		InputLog:  strings.Join(b.InputLog(), "\n"),
		OutputLog: strings.Join(b.Log(), "\n"),
		Sides:     datatypes.JSON(sides),
	}
	if err := s.DB.WithContext(ctx).Create(&r).Error; err != nil {
		return Replay{}, fmt.Errorf("saving replay of %s: %w", b.ID, err)
	}

	s.Logger.Info().Str("replay", r.ID.String()).Str("battle", b.ID).Int("turns", r.Turns).Msg("Saved replay")
	return r, nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (Replay, error) {
	var r Replay
	err := s.DB.WithContext(ctx).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Replay{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return r, err
}

// List returns the newest replays first. A limit of 0 returns all of them.
func (s *Store) List(ctx context.Context, limit int) ([]Replay, error) {
	var replays []Replay
	query := s.DB.WithContext(ctx).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&replays).Error; err != nil {
		return nil, err
	}
	return replays, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.DB.WithContext(ctx).Delete(&Replay{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

// Verify replays the input log of r and compares the output with the stored log.
func Verify(dex golurk.Dex, r Replay) error {
	b, err := golurk.Replay(dex, r.InputLines())
	if err != nil {
		return err
	}

	want := r.OutputLines()
	got := b.Log()
	for i := range min(len(want), len(got)) {
		if want[i] != got[i] {
			return fmt.Errorf("%w at line %d: stored %q, replayed %q", ErrMismatch, i+1, want[i], got[i])
		}
	}
	if len(want) != len(got) {
		return fmt.Errorf("%w: stored %d lines, replayed %d", ErrMismatch, len(want), len(got))
	}
	return nil
}

// VerifyAll checks every stored replay, running up to workers battles at a time. The result maps
// failing replay ids to their error.
func (s *Store) VerifyAll(ctx context.Context, dex golurk.Dex, workers int) (map[uuid.UUID]error, error) {
	replays, err := s.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	failures := make(map[uuid.UUID]error)
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(workers, 1))
	for _, r := range replays {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := Verify(dex, r); err != nil {
				s.Logger.Warn().Err(err).Str("replay", r.ID.String()).Msg("Replay failed verification")
				mu.Lock()
				failures[r.ID] = err
				mu.Unlock()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return failures, err
	}

	s.Logger.Info().Int("replays", len(replays)).Int("failed", len(failures)).Msg("Verified replays")
	return failures, nil
}
