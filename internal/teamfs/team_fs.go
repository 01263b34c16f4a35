// Package teamfs saves named teams of Pokemon sets to a JSON file.
package teamfs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/nathanieltooley/gokemon-sim/golurk"
	"github.com/samber/lo"
)

var ErrNoSuchTeam = errors.New("no such team exists")

type SavedTeams map[string][]golurk.PokemonSet

// SaveTeam stores team under name, replacing a team with the same name. Sets without a
// species are skipped.
func SaveTeam(filePath string, name string, team []golurk.PokemonSet) error {
	teams, err := LoadTeamMap(filePath)
	if err != nil {
		return err
	}

	teams[name] = lo.Filter(team, func(set golurk.PokemonSet, _ int) bool {
		return set.Species != ""
	})

	teamsJson, err := json.MarshalIndent(teams, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return err
	}
	return os.WriteFile(filePath, teamsJson, 0o644)
}

func LoadTeam(filePath string, name string) ([]golurk.PokemonSet, error) {
	teams, err := LoadTeamMap(filePath)
	if err != nil {
		return nil, err
	}

	team, ok := teams[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNoSuchTeam)
	}
	return team, nil
}

// LoadTeamMap reads every saved team. A missing file is an empty map.
func LoadTeamMap(filePath string) (SavedTeams, error) {
	contents, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return SavedTeams{}, nil
	}
	if err != nil {
		return nil, err
	}

	teams := make(SavedTeams)
	if len(contents) == 0 {
		return teams, nil
	}
	if err := json.Unmarshal(contents, &teams); err != nil {
		return nil, fmt.Errorf("reading teams from %s: %w", filePath, err)
	}
	return teams, nil
}

func TeamNames(filePath string) ([]string, error) {
	teams, err := LoadTeamMap(filePath)
	if err != nil {
		return nil, err
	}
	names := lo.Keys(teams)
	slices.Sort(names)
	return names, nil
}
