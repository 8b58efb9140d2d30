// internal/game/feedback.go
//
// Feedback engine: scores a guess against a solution.
//
// Generate is pure and safe for concurrent use.

package game

import "fmt"

// Generate implements the standard Wordle two‑pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count remaining (non‑correct) solution letters by letter index.
//
// Pass 2:
//   - Left to right, for each non‑correct guess letter: if there is remaining
//     count for that letter, mark Present and decrement the count; otherwise
//     mark Absent.
//
// A letter occurring k times in the solution is credited at most k times, and
// an exact match is never starved by an earlier displaced one.
func Generate(guess, solution Word) (Feedback, error) {
	n := guess.Len()
	if n != solution.Len() {
		return nil, fmt.Errorf("%w: guess %q vs solution of %d letters", ErrLengthMismatch, guess, solution.Len())
	}
	res := make(Feedback, n)

	var counts [26]int

	for i := 0; i < n; i++ {
		if guess.At(i) == solution.At(i) {
			res[i] = MarkCorrect
		} else {
			counts[solution.At(i)-'a']++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		j := guess.At(i) - 'a'
		if counts[j] > 0 {
			res[i] = MarkPresent
			counts[j]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res, nil
}
