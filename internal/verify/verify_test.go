package verify

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

func TestRun_EmbeddedCatalogIsConsistent(t *testing.T) {
	cat, err := words.Load(words.Source{})
	require.NoError(t, err)
	sols := cat.Solutions().Words()
	guesses := cat.Allowed().Words()

	var done atomic.Int32
	rep, err := Run(context.Background(), Options{
		Guesses:   guesses,
		Solutions: sols,
		Reference: true,
		Workers:   4,
		Progress:  func() { done.Add(1) },
	})
	require.NoError(t, err)
	assert.True(t, rep.OK(), "violations: %v", rep.Violations)
	assert.Equal(t, int64(len(guesses)*len(sols)), rep.Pairs)
	assert.Equal(t, int64(len(guesses)*len(sols)*len(sols)), rep.Checks)
	assert.Equal(t, int32(len(guesses)), done.Load())
}

func TestRun_DefaultSkipsReference(t *testing.T) {
	cat, err := words.Load(words.Source{})
	require.NoError(t, err)
	sols := cat.Solutions().Words()

	rep, err := Run(context.Background(), Options{Guesses: sols[:3], Solutions: sols})
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Equal(t, int64(3*len(sols)), rep.Pairs)
	assert.Zero(t, rep.Checks)
}

func TestRun_Cancelled(t *testing.T) {
	cat, err := words.Load(words.Source{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = Run(ctx, Options{Guesses: cat.Allowed().Words(), Solutions: cat.Solutions().Words(), Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)
}
