// internal/solver/constraint.go
//
// Constraint compiled from one GuessRecord.
//
// A word W satisfies the constraint iff Generate(guess, W) == feedback. The
// compiled form answers that without rescoring:
//
//   - Correct at i pins letter guess[i] at position i.
//   - Any other mark at i forbids guess[i] at position i.
//   - Per letter c, with k correct marks and p present marks:
//       no absent mark for c  → W has at least k+p copies of c
//       some absent mark      → W has exactly k+p copies of c
//   - Pass 2 of the engine hands out Present marks left to right, so among
//     the non-correct positions of a letter every Present must precede every
//     Absent. Feedback violating that order matches nothing.

package solver

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Constraint is the compiled, reusable form of one GuessRecord.
type Constraint struct {
	length        int
	pinned        []byte      // 0 when the position is not pinned
	forbidden     [][26]bool  // per position
	minCount      [26]int
	exact         [26]bool
	unsatisfiable bool
}

// Compile builds the constraint for a guess and the feedback it received.
func Compile(guess game.Word, fb game.Feedback) (*Constraint, error) {
	n := guess.Len()
	if len(fb) != n {
		return nil, fmt.Errorf("%w: %d marks for %q", game.ErrLengthMismatch, len(fb), guess)
	}
	c := &Constraint{
		length:    n,
		pinned:    make([]byte, n),
		forbidden: make([][26]bool, n),
	}
	var sawAbsent [26]bool
	for i, m := range fb {
		l := guess.At(i) - 'a'
		switch m {
		case game.MarkCorrect:
			c.pinned[i] = guess.At(i)
			c.minCount[l]++
		case game.MarkPresent:
			if sawAbsent[l] {
				c.unsatisfiable = true
			}
			c.forbidden[i][l] = true
			c.minCount[l]++
		case game.MarkAbsent:
			sawAbsent[l] = true
			c.forbidden[i][l] = true
			c.exact[l] = true
		default:
			return nil, fmt.Errorf("%w: mark %d at position %d", game.ErrInvalidFeedbackChar, uint8(m), i)
		}
	}
	return c, nil
}

// Matches reports whether w could be the solution given this evidence.
func (c *Constraint) Matches(w game.Word) bool {
	if c.unsatisfiable || w.Len() != c.length {
		return false
	}
	var counts [26]int
	for i := 0; i < c.length; i++ {
		ch := w.At(i)
		if p := c.pinned[i]; p != 0 {
			if ch != p {
				return false
			}
		} else if c.forbidden[i][ch-'a'] {
			return false
		}
		counts[ch-'a']++
	}
	for l := 0; l < 26; l++ {
		if counts[l] < c.minCount[l] {
			return false
		}
		if c.exact[l] && counts[l] != c.minCount[l] {
			return false
		}
	}
	return true
}

// Consistent is the reference semantics: w survives iff scoring guess
// against w reproduces fb exactly.
func Consistent(guess game.Word, fb game.Feedback, w game.Word) bool {
	got, err := game.Generate(guess, w)
	if err != nil {
		return false
	}
	return got.Equal(fb)
}
