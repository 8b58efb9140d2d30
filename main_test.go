package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

func TestParseHistory(t *testing.T) {
	hist, err := parseHistory([]string{"SLATE=xyyxg", "maple=01222"}, 5)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, "slate", hist[0].Guess.String())
	assert.Equal(t, "XYYXG", hist[0].Feedback.String())
	assert.Equal(t, "XYGGG", hist[1].Feedback.String())

	_, err = parseHistory([]string{"slate"}, 5)
	assert.Error(t, err)
	_, err = parseHistory([]string{"slate=XYYX"}, 5)
	assert.ErrorIs(t, err, game.ErrLengthMismatch)
	_, err = parseHistory([]string{"sl4te=XYYXG"}, 5)
	assert.ErrorIs(t, err, game.ErrNotAlphabetic)
}

func TestPlayLoop(t *testing.T) {
	g := game.NewSession(game.MustWord("apple"), game.WithMaxTurns(3))
	in := strings.NewReader("slate\n\nxx\napple\n")
	var out strings.Builder

	require.NoError(t, playLoop(in, &out, g))
	assert.True(t, g.Solved())
	assert.Equal(t, 2, g.Turns())
	assert.Contains(t, out.String(), "slate  XYYXG")
	assert.Contains(t, out.String(), "Solved in 2.")
}

func TestPlayLoop_Exhausted(t *testing.T) {
	g := game.NewSession(game.MustWord("apple"), game.WithMaxTurns(1))
	var out strings.Builder

	require.NoError(t, playLoop(strings.NewReader("crane\n"), &out, g))
	assert.Equal(t, game.StateExhausted, g.State())
	assert.Contains(t, out.String(), "The word was apple.")
}

func TestPlayLoop_EOF(t *testing.T) {
	g := game.NewSession(game.MustWord("apple"))
	var out strings.Builder
	require.NoError(t, playLoop(strings.NewReader(""), &out, g))
	assert.Equal(t, game.StateInProgress, g.State())
}
