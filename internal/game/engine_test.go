package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setDict map[string]bool

func (d setDict) IsAllowed(w Word) bool { return d[w.String()] }

func TestSession_SolvedOnFullMatch(t *testing.T) {
	s := NewSession(MustWord("apple"))
	rec, err := s.Submit("APPLE")
	require.NoError(t, err)
	assert.Equal(t, "GGGGG", rec.Feedback.String())
	assert.Equal(t, StateSolved, s.State())
	assert.True(t, s.Solved())
	assert.True(t, s.Over())

	_, err = s.Submit("slate")
	assert.ErrorIs(t, err, ErrSessionOver)
	assert.Equal(t, 1, s.Turns())
}

func TestSession_ExhaustedAfterMaxTurns(t *testing.T) {
	s := NewSession(MustWord("apple"))
	for i := 0; i < 6; i++ {
		assert.Equal(t, StateInProgress, s.State())
		_, err := s.Submit("slate")
		require.NoError(t, err)
	}
	assert.Equal(t, StateExhausted, s.State())
	assert.False(t, s.Solved())

	_, err := s.Submit("apple")
	assert.ErrorIs(t, err, ErrSessionOver)
	assert.Len(t, s.History(), 6)
}

func TestSession_SolvedOnLastTurnIsNotExhausted(t *testing.T) {
	s := NewSession(MustWord("apple"), WithMaxTurns(2))
	_, err := s.Submit("slate")
	require.NoError(t, err)
	_, err = s.Submit("apple")
	require.NoError(t, err)
	assert.Equal(t, StateSolved, s.State())
}

func TestSession_ValidationLeavesStateUnchanged(t *testing.T) {
	s := NewSession(MustWord("apple"), WithDictionary(setDict{"slate": true, "apple": true}))

	_, err := s.Submit("appl")
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = s.Submit("app1e")
	assert.ErrorIs(t, err, ErrNotAlphabetic)

	_, err = s.Submit("zzzzz")
	assert.ErrorIs(t, err, ErrNotInWordList)

	assert.Equal(t, 0, s.Turns())
	assert.Equal(t, StateInProgress, s.State())

	_, err = s.Submit("slate")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Turns())
}

func TestSession_Snapshot(t *testing.T) {
	s := NewSession(MustWord("apple"), WithMaxTurns(1), WithID("g1"))
	snap := s.Snapshot()
	assert.Equal(t, "g1", snap.ID)
	assert.Empty(t, snap.Solution)
	assert.Equal(t, 5, snap.WordLength)

	_, err := s.Submit("slate")
	require.NoError(t, err)
	snap = s.Snapshot()
	assert.Equal(t, StateExhausted, snap.State)
	assert.Equal(t, "apple", snap.Solution)
	assert.Equal(t, []string{"XYYXG"}, snap.Codes)
}

func TestSession_ConcurrentSubmitRespectsTurnLimit(t *testing.T) {
	s := NewSession(MustWord("apple"))
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Submit("slate"); err == nil {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 6, accepted)
	assert.Equal(t, StateExhausted, s.State())
}

func TestSession_OutcomeCarriesTransition(t *testing.T) {
	s := NewSession(MustWord("apple"), WithMaxTurns(2))
	out, err := s.Submit("slate")
	require.NoError(t, err)
	assert.Equal(t, "XYYXG", out.Feedback.String())
	assert.Equal(t, StateInProgress, out.State)
	assert.Equal(t, 1, out.Turn)

	out, err = s.Submit("crane")
	require.NoError(t, err)
	assert.Equal(t, StateExhausted, out.State)
	assert.Equal(t, 2, out.Turn)
}

func TestSession_ConcurrentOutcomesMatchFeedback(t *testing.T) {
	for round := 0; round < 50; round++ {
		s := NewSession(MustWord("apple"), WithMaxTurns(20))
		outs := make(chan Outcome, 20)
		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			for _, g := range []string{"slate", "apple"} {
				wg.Add(1)
				go func(g string) {
					defer wg.Done()
					if out, err := s.Submit(g); err == nil {
						outs <- out
					}
				}(g)
			}
		}
		wg.Wait()
		close(outs)

		solved := 0
		turns := map[int]bool{}
		for out := range outs {
			assert.Equal(t, out.Feedback.Solved(), out.State == StateSolved, "turn %d %s", out.Turn, out.Feedback)
			assert.False(t, turns[out.Turn], "turn %d reported twice", out.Turn)
			turns[out.Turn] = true
			if out.State == StateSolved {
				solved++
			}
		}
		assert.Equal(t, 1, solved)
		assert.Equal(t, s.Turns(), len(turns))
	}
}
