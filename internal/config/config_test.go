package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "golurk", cfg.Log.File)
	assert.True(t, cfg.Replay.Enabled)
	assert.Equal(t, "gen9customgame", cfg.Battle.Format)
	assert.Equal(t, "sodium", cfg.Battle.SeedFamily)
	assert.Equal(t, "replays.db", filepath.Base(cfg.Replay.Path))
	assert.Equal(t, "sqlite", cfg.Replay.Driver)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golurk.json")
	contents := `{"log": {"level": "debug", "console": false}, "battle": {"format": "gen9doublescustomgame"}}`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	t.Setenv("GOLURK_BATTLE_SEEDFAMILY", "gen5")
	t.Setenv("GOLURK_REPLAY_DRIVER", "postgres")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.False(t, cfg.Log.Console)
	assert.Equal(t, "gen9doublescustomgame", cfg.Battle.Format)
	assert.Equal(t, "gen5", cfg.Battle.SeedFamily)
	assert.Equal(t, "postgres", cfg.Replay.Driver)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.Error(t, err)
}

func TestFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "golurk.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"log": {"level": "debug"}}`), 0o644))

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log.level", "info", "")
	flags.String("battle.format", "gen9customgame", "")
	require.NoError(t, flags.Parse([]string{"--log.level=warn"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "gen9customgame", cfg.Battle.Format)
	assert.Equal(t, 30*time.Second, cfg.Metrics.Interval)
}
