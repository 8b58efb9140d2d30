// internal/words/words.go
//
// Word catalog: the immutable universe of solutions and allowed guesses.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the
//     embedded defaults in package assets.
//   - Keep sorted, deduplicated lists plus sets for quick lookups
//     (answers only, answers∪guesses).
//   - Supply RandomSolution, IsAllowed, IsSolution and Stats.
//
// Loading behavior (Load):
//   1. answers file and allowed file set → load each.
//   2. only one file set → use it for both lists.
//   3. neither set → embedded defaults.
//
// File format: one word per line, case-insensitive. Lines that are not
// exactly `length` letters a–z after trimming (including "#" comments and
// blanks) are skipped.
//
// A Catalog never changes after construction; share it freely.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
	"github.com/robalobadob/wordle/apps/go-solver/internal/solver"
)

// ErrEmpty is returned when the solution list ends up empty.
var ErrEmpty = errors.New("words: answers list is empty")

// Source names where the lists come from.
type Source struct {
	AnswersFile string
	AllowedFile string
	Length      int // defaults to game.DefaultWordLength
}

// Catalog holds the immutable solution and allowed-guess lists.
type Catalog struct {
	length     int
	solutions  *solver.Universe
	allowed    *solver.Universe
	answersSet map[game.Word]struct{}
	allowedSet map[game.Word]struct{}
}

// Load builds a catalog following the rules in the file header.
func Load(src Source) (*Catalog, error) {
	n := src.Length
	if n <= 0 {
		n = game.DefaultWordLength
	}

	var ans, allow []game.Word
	var err error
	switch {
	case src.AnswersFile != "" && src.AllowedFile != "":
		if ans, err = readWordFile(src.AnswersFile, n); err != nil {
			return nil, err
		}
		if allow, err = readWordFile(src.AllowedFile, n); err != nil {
			return nil, err
		}
	case src.AllowedFile != "":
		if allow, err = readWordFile(src.AllowedFile, n); err != nil {
			return nil, err
		}
		ans = allow
	case src.AnswersFile != "":
		if ans, err = readWordFile(src.AnswersFile, n); err != nil {
			return nil, err
		}
		allow = ans
	default:
		if ans, err = readEmbedded(assets.Answers, n); err != nil {
			return nil, err
		}
		if allow, err = readEmbedded(assets.Allowed, n); err != nil {
			return nil, err
		}
	}
	return New(ans, allow, n)
}

// New builds a catalog from in-memory lists. Allowed guesses always
// include the solutions.
func New(solutions, allowed []game.Word, length int) (*Catalog, error) {
	c := &Catalog{
		length:     length,
		answersSet: toSet(solutions),
	}
	c.allowedSet = toSet(solutions)
	for _, w := range allowed {
		c.allowedSet[w] = struct{}{}
	}
	c.solutions = solver.NewUniverse(solutions)
	c.allowed = solver.NewUniverse(setWords(c.allowedSet))
	if c.solutions.Len() == 0 {
		return nil, ErrEmpty
	}
	return c, nil
}

// ReadWords parses one word per line, keeping only valid words of length n.
func ReadWords(r io.Reader, n int) ([]game.Word, error) {
	var out []game.Word
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w, err := game.ParseWord(sc.Text(), n)
		if err != nil {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}

// readWordFile loads a word file from disk.
func readWordFile(path string, n int) ([]game.Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	return ReadWords(f, n)
}

func readEmbedded(open func() (io.Reader, error), n int) ([]game.Word, error) {
	r, err := open()
	if err != nil {
		return nil, fmt.Errorf("embedded word list: %w", err)
	}
	return ReadWords(r, n)
}

// toSet converts a list of words into a lookup set.
func toSet(list []game.Word) map[game.Word]struct{} {
	m := make(map[game.Word]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

func setWords(m map[game.Word]struct{}) []game.Word {
	out := make([]game.Word, 0, len(m))
	for w := range m {
		out = append(out, w)
	}
	return out
}

// WordLength is the fixed length of every catalog word.
func (c *Catalog) WordLength() int { return c.length }

// Solutions is the shared sorted solution universe.
func (c *Catalog) Solutions() *solver.Universe { return c.solutions }

// Allowed is the shared sorted universe of every allowed guess.
func (c *Catalog) Allowed() *solver.Universe { return c.allowed }

// RandomSolution returns a cryptographically random solution.
func (c *Catalog) RandomSolution() game.Word {
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(c.solutions.Len())))
	return c.solutions.At(int(nBig.Int64()))
}

// SolutionAt returns the i-th solution in sorted order (i is taken modulo
// the list length).
func (c *Catalog) SolutionAt(i int) game.Word {
	if i < 0 {
		i = -i
	}
	return c.solutions.At(i % c.solutions.Len())
}

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func (c *Catalog) IsAllowed(w game.Word) bool {
	_, ok := c.allowedSet[w]
	return ok
}

// IsSolution reports whether w is an answer word.
func (c *Catalog) IsSolution(w game.Word) bool {
	_, ok := c.answersSet[w]
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func (c *Catalog) Stats() (answersCount int, allowedCount int) {
	return c.solutions.Len(), c.allowed.Len()
}
