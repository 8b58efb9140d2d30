// internal/solver/pruner.go
//
// Candidate pruning.
// Responsibilities:
//   - Universe: the immutable, sorted, deduplicated word list shared by many pruners.
//   - Pruner: per-session candidate set (a bitset over the universe index)
//     narrowed by each applied GuessRecord and restorable with Reset.
//
// Concurrency:
//   - A Universe is read-only after construction and may be shared freely.
//   - A Pruner guards its own state, but it is meant to belong to one solving
//     session; callers allocate one per user/game.

package solver

import (
	"slices"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// Universe is an immutable, lexicographically sorted word list.
type Universe struct {
	words []game.Word
}

// NewUniverse copies, sorts and deduplicates words.
func NewUniverse(words []game.Word) *Universe {
	ws := make([]game.Word, 0, len(words))
	for _, w := range words {
		if !w.IsZero() {
			ws = append(ws, w)
		}
	}
	slices.SortFunc(ws, game.Word.Compare)
	ws = slices.Compact(ws)
	return &Universe{words: ws}
}

// Len is the number of words in the universe.
func (u *Universe) Len() int { return len(u.words) }

// At returns the i-th word in sorted order.
func (u *Universe) At(i int) game.Word { return u.words[i] }

// Words returns a copy of the sorted word list.
func (u *Universe) Words() []game.Word { return slices.Clone(u.words) }

// NewPruner returns a pruner whose candidate set is the whole universe.
func (u *Universe) NewPruner() *Pruner {
	p := &Pruner{universe: u}
	p.live = u.full()
	return p
}

func (u *Universe) full() *bitset.BitSet {
	b := bitset.New(uint(len(u.words)))
	for i := range u.words {
		b.Set(uint(i))
	}
	return b
}

// Pruner maintains the candidates still consistent with every applied record.
type Pruner struct {
	mu       sync.Mutex
	universe *Universe
	live     *bitset.BitSet
	applied  []game.GuessRecord
}

// New is a convenience for NewUniverse(words).NewPruner().
func New(words []game.Word) *Pruner {
	return NewUniverse(words).NewPruner()
}

// Reset restores the full initial candidate set and forgets applied records.
func (p *Pruner) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.live = p.universe.full()
	p.applied = nil
}

// Apply intersects the candidate set with the words consistent with
// (guess, fb) and returns the new sorted candidates. On error the set is
// left untouched.
func (p *Pruner) Apply(guess game.Word, fb game.Feedback) ([]game.Word, error) {
	c, err := Compile(guess, fb)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	next := bitset.New(uint(len(p.universe.words)))
	for i, ok := p.live.NextSet(0); ok; i, ok = p.live.NextSet(i + 1) {
		if c.Matches(p.universe.words[i]) {
			next.Set(i)
		}
	}
	p.live = next
	p.applied = append(p.applied, game.GuessRecord{Guess: guess, Feedback: slices.Clone(fb)})
	return p.collect(), nil
}

// Candidates returns the current candidates in lexicographic order.
func (p *Pruner) Candidates() []game.Word {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.collect()
}

// Len is the number of remaining candidates.
func (p *Pruner) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return int(p.live.Count())
}

// Contains reports whether w is still a candidate.
func (p *Pruner) Contains(w game.Word) bool {
	i, found := slices.BinarySearchFunc(p.universe.words, w, game.Word.Compare)
	if !found {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live.Test(uint(i))
}

// Applied returns the records applied since construction or the last Reset.
func (p *Pruner) Applied() []game.GuessRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.applied)
}

// collect walks the live bitset in index order; the universe is sorted, so
// the result is too. Caller holds p.mu.
func (p *Pruner) collect() []game.Word {
	out := make([]game.Word, 0, p.live.Count())
	for i, ok := p.live.NextSet(0); ok; i, ok = p.live.NextSet(i + 1) {
		out = append(out, p.universe.words[i])
	}
	return out
}
