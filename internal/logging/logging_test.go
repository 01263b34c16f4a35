package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathanieltooley/gokemon-sim/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingWriterRolls(t *testing.T) {
	dir := t.TempDir()
	w, err := NewRollingFileWriter(dir, "test")
	require.NoError(t, err)
	w.MaxSize = 10
	w.MaxLogs = 3

	for _, line := range []string{"first line\n", "second line\n", "third line\n", "fourth line\n"} {
		_, err := w.Write([]byte(line))
		require.NoError(t, err)
	}

	main, err := os.ReadFile(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	assert.Equal(t, "fourth line\n", string(main))

	newest, err := os.ReadFile(filepath.Join(dir, "test-1.log"))
	require.NoError(t, err)
	assert.Equal(t, "third line\n", string(newest))

	oldest, err := os.ReadFile(filepath.Join(dir, "test-2.log"))
	require.NoError(t, err)
	assert.Equal(t, "second line\n", string(oldest))

	assert.NoFileExists(t, filepath.Join(dir, "test-3.log"))
}

func TestRollingWriterAppendsUnderLimit(t *testing.T) {
	dir := t.TempDir()
	w, err := NewRollingFileWriter(dir, "small")
	require.NoError(t, err)

	_, err = w.Write([]byte("a\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("b\n"))
	require.NoError(t, err)

	contents, err := os.ReadFile(filepath.Join(dir, "small.log"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(contents))
}

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(config.LogConfig{Level: "debug", Dir: dir, File: "golurk"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	logger.Info().Str("battle", "abc").Msg("created battle")

	contents, err := os.ReadFile(filepath.Join(dir, "golurk.log"))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(contents), "created battle"))
}

func TestNewWithGraylog(t *testing.T) {
	logger, err := New(config.LogConfig{Level: "info", Graylog: "127.0.0.1:12201"})
	require.NoError(t, err)
	logger.Info().Msg("sent over udp")

	_, err = New(config.LogConfig{Graylog: "not an address"})
	assert.ErrorContains(t, err, "graylog writer")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
