package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray .env is loaded.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("WORDLE_CONFIG", "")
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.WordLength)
	assert.Equal(t, 6, cfg.MaxTurns)
	assert.True(t, cfg.StrictGuesses)
	assert.Equal(t, "dev_secret_change_me", cfg.Secret())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "wordle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\nmax_turns: 8\nstrict_guesses: false\ndaily_salt: fromfile\n"), 0o644))
	t.Setenv("WORDLE_CONFIG", path)
	t.Setenv("WORDLE_MAX_TURNS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 4, cfg.MaxTurns, "env overrides file")
	assert.False(t, cfg.StrictGuesses)
	assert.Equal(t, "fromfile", cfg.DailySalt)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DAILY_SALT=dotenv_salt\n"), 0o644))
	t.Setenv("DAILY_SALT", "")
	os.Unsetenv("DAILY_SALT")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv_salt", cfg.DailySalt)
}

func TestLoad_BadValues(t *testing.T) {
	isolate(t)
	t.Setenv("WORDLE_MAX_TURNS", "many")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("WORDLE_MAX_TURNS", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "max_turns")

	t.Setenv("WORDLE_MAX_TURNS", "6")
	t.Setenv("WORDLE_STRICT", "maybe")
	_, err = Load()
	assert.Error(t, err)
}
