// internal/game/engine.go
//
// Puzzle session state machine.
// Responsibilities:
//   - Create sessions against a fixed solution (default 6 turns).
//   - Validate guesses at the boundary (length, alphabetic, optional dictionary).
//   - Score guesses with Generate and record the history.
//   - Track state transitions: in_progress → solved | exhausted.
//
// Notes:
//   - The solution is chosen by the caller (catalog, daily index, CLI flag).
//   - Terminal states are sticky; further guesses fail with ErrSessionOver.
//   - Session methods are safe for concurrent use; one session per player.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

const defaultMaxTurns = 6

// State is the coarse lifecycle of a session.
type State uint8

const (
	StateInProgress State = iota
	StateSolved
	StateExhausted
)

// String reports the JSON/log representation of the state.
func (s State) String() string {
	switch s {
	case StateSolved:
		return "solved"
	case StateExhausted:
		return "exhausted"
	default:
		return "in_progress"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool { return s != StateInProgress }

// MarshalText encodes the state name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Dictionary is the optional guess-membership policy.
type Dictionary interface {
	IsAllowed(w Word) bool
}

// Option configures a Session.
type Option func(*Session)

// WithMaxTurns overrides the turn limit (values < 1 are ignored).
func WithMaxTurns(n int) Option {
	return func(s *Session) {
		if n >= 1 {
			s.maxTurns = n
		}
	}
}

// WithDictionary rejects guesses the dictionary does not allow.
func WithDictionary(d Dictionary) Option {
	return func(s *Session) { s.dict = d }
}

// WithID sets an explicit session identifier.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// Session holds the state of a single puzzle.
type Session struct {
	mu       sync.Mutex
	id       string
	solution Word
	maxTurns int
	dict     Dictionary
	history  []GuessRecord
	state    State
}

// NewSession constructs a session for solution.
func NewSession(solution Word, opts ...Option) *Session {
	s := &Session{
		id:       randomID(),
		solution: solution,
		maxTurns: defaultMaxTurns,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submit validates and scores a guess, mutating the session state.
//
// Validation order:
//   - length must equal the solution length (ErrInvalidLength)
//   - letters a–z only, after lowercasing (ErrNotAlphabetic)
//   - session must not be terminal (ErrSessionOver)
//   - if a dictionary is configured, guess must be in it (ErrNotInWordList)
//
// State transitions:
//   - all marks Correct → solved
//   - else if the turn count reaches the limit → exhausted
//
// On error the session is unchanged. The returned Outcome is captured
// under the same lock as the transition.
func (s *Session) Submit(raw string) (Outcome, error) {
	guess, err := ParseWord(raw, s.solution.Len())
	if err != nil {
		return Outcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return Outcome{}, fmt.Errorf("%w: %s after %d guesses", ErrSessionOver, s.state, len(s.history))
	}
	if s.dict != nil && !s.dict.IsAllowed(guess) {
		return Outcome{}, fmt.Errorf("%w: %q", ErrNotInWordList, guess)
	}

	fb, err := Generate(guess, s.solution)
	if err != nil {
		return Outcome{}, err
	}
	rec := GuessRecord{Guess: guess, Feedback: fb}
	s.history = append(s.history, rec)

	if fb.Solved() {
		s.state = StateSolved
	} else if len(s.history) >= s.maxTurns {
		s.state = StateExhausted
	}
	return Outcome{GuessRecord: rec, State: s.state, Turn: len(s.history)}, nil
}

// Outcome is an accepted guess together with the session state it produced.
// Read it instead of State/Turns when other goroutines share the session.
type Outcome struct {
	GuessRecord
	State State
	Turn  int // 1-based index of this guess
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Solution returns the fixed solution.
func (s *Session) Solution() Word { return s.solution }

// WordLength is the solution length.
func (s *Session) WordLength() int { return s.solution.Len() }

// MaxTurns is the configured turn limit.
func (s *Session) MaxTurns() int { return s.maxTurns }

// State reports the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Solved reports whether the session ended with a full match.
func (s *Session) Solved() bool { return s.State() == StateSolved }

// Over reports whether the session is in a terminal state.
func (s *Session) Over() bool { return s.State().Terminal() }

// Turns is the number of accepted guesses.
func (s *Session) Turns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// History returns a copy of the accepted guesses in order.
func (s *Session) History() []GuessRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]GuessRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot is a transport view of a session.
// Solution is only populated once the session is over.
type Snapshot struct {
	ID         string        `json:"gameId"`
	WordLength int           `json:"wordLength"`
	MaxTurns   int           `json:"maxTurns"`
	State      State         `json:"state"`
	Guesses    []GuessRecord `json:"guesses"`
	Codes      []string      `json:"codes"`
	Solution   string        `json:"solution,omitempty"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:         s.id,
		WordLength: s.solution.Len(),
		MaxTurns:   s.maxTurns,
		State:      s.state,
		Guesses:    make([]GuessRecord, len(s.history)),
		Codes:      make([]string, len(s.history)),
	}
	copy(snap.Guesses, s.history)
	for i, r := range s.history {
		snap.Codes[i] = r.Feedback.String()
	}
	if s.state.Terminal() {
		snap.Solution = s.solution.String()
	}
	return snap
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
