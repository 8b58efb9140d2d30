// internal/game/types.go
//
// Core type definitions for the Wordle engine.
// Defines:
//   - Word: validated, immutable, fixed-length lowercase letter sequence.
//   - Mark: per-letter result of a guess (absent/present/correct).
//   - Feedback: one Mark per guess position, with the X/Y/G wire code.
//   - GuessRecord: one turn's evidence (guess + feedback).
//   - Error kinds shared by the feedback engine, the session and the solver.

package game

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultWordLength is the canonical puzzle width.
const DefaultWordLength = 5

var (
	// ErrLengthMismatch: guess/solution or guess/feedback lengths disagree.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrInvalidLength: a raw guess does not have the expected word length.
	ErrInvalidLength = errors.New("invalid length")
	// ErrNotAlphabetic: a raw guess contains something other than a–z.
	ErrNotAlphabetic = errors.New("not alphabetic")
	// ErrInvalidFeedbackChar: an encoded feedback string has an unknown symbol.
	ErrInvalidFeedbackChar = errors.New("invalid feedback character")
	// ErrSessionOver: a guess was submitted after the session reached a terminal state.
	ErrSessionOver = errors.New("session over")
	// ErrNotInWordList: a guess failed the optional dictionary policy.
	ErrNotInWordList = errors.New("not in word list")
)

// Word is a fixed-length sequence of lowercase ASCII letters.
// The zero Word is empty; construct real words with ParseWord.
type Word struct {
	letters string
}

// ParseWord normalizes raw (trim + lowercase) and validates it.
// length <= 0 accepts any non-empty length.
//
// Length is counted in characters, so "héllo" is five letters and fails the
// alphabet check. Only ASCII A–Z is folded to lowercase; other characters
// (the Kelvin sign included) stay as they are and are rejected.
func ParseWord(raw string, length int) (Word, error) {
	s := strings.Map(asciiLower, strings.TrimSpace(raw))
	n := utf8.RuneCountInString(s)
	if n == 0 || (length > 0 && n != length) {
		return Word{}, fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidLength, raw, n, length)
	}
	if !isAlpha(s) {
		return Word{}, fmt.Errorf("%w: %q", ErrNotAlphabetic, raw)
	}
	return Word{letters: s}, nil
}

// MustWord is ParseWord for literals; it panics on invalid input.
func MustWord(raw string) Word {
	w, err := ParseWord(raw, 0)
	if err != nil {
		panic(err)
	}
	return w
}

// String returns the lowercase letters.
func (w Word) String() string { return w.letters }

// Len is the number of letters.
func (w Word) Len() int { return len(w.letters) }

// At returns the letter at position i.
func (w Word) At(i int) byte { return w.letters[i] }

// IsZero reports whether w was never parsed.
func (w Word) IsZero() bool { return w.letters == "" }

// Compare orders words lexicographically by letter sequence.
func (w Word) Compare(o Word) int { return strings.Compare(w.letters, o.letters) }

// MarshalText encodes the word as its letters.
func (w Word) MarshalText() ([]byte, error) { return []byte(w.letters), nil }

// Mark is the evaluation result for a single letter of a guess.
// The ordinal values are part of the external numeric encoding.
type Mark uint8

const (
	MarkAbsent  Mark = 0 // letter not (or no longer) available in the solution
	MarkPresent Mark = 1 // letter in the solution, different position
	MarkCorrect Mark = 2 // letter in the correct position
)

// Code returns the single-letter wire code (X/Y/G).
func (m Mark) Code() byte {
	switch m {
	case MarkAbsent:
		return 'X'
	case MarkPresent:
		return 'Y'
	case MarkCorrect:
		return 'G'
	}
	return '?'
}

// String returns the lowercase name used in JSON.
func (m Mark) String() string {
	switch m {
	case MarkAbsent:
		return "absent"
	case MarkPresent:
		return "present"
	case MarkCorrect:
		return "correct"
	}
	return fmt.Sprintf("mark(%d)", uint8(m))
}

// Valid reports whether m is one of the three defined marks.
func (m Mark) Valid() bool { return m <= MarkCorrect }

// MarshalText encodes m as its name.
func (m Mark) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid mark %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText accepts the mark name or any single-char code (X/Y/G, 0/1/2).
func (m *Mark) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "absent", "x", "0":
		*m = MarkAbsent
	case "present", "y", "1":
		*m = MarkPresent
	case "correct", "g", "2":
		*m = MarkCorrect
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFeedbackChar, string(b))
	}
	return nil
}

// Feedback is the ordered per-position result of one guess.
type Feedback []Mark

// ParseFeedback decodes an X/Y/G or 0/1/2 code (case-insensitive; the two
// alphabets may be mixed). length <= 0 skips the length check.
func ParseFeedback(code string, length int) (Feedback, error) {
	code = strings.TrimSpace(code)
	fb := make(Feedback, 0, len(code))
	for i := 0; i < len(code); i++ {
		switch code[i] {
		case 'x', 'X', '0':
			fb = append(fb, MarkAbsent)
		case 'y', 'Y', '1':
			fb = append(fb, MarkPresent)
		case 'g', 'G', '2':
			fb = append(fb, MarkCorrect)
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidFeedbackChar, code[i], i)
		}
	}
	if length > 0 && len(fb) != length {
		return nil, fmt.Errorf("%w: feedback has %d marks, want %d", ErrLengthMismatch, len(fb), length)
	}
	return fb, nil
}

// String returns the X/Y/G code.
func (f Feedback) String() string {
	b := make([]byte, len(f))
	for i, m := range f {
		b[i] = m.Code()
	}
	return string(b)
}

// Numeric returns the 0/1/2 code.
func (f Feedback) Numeric() string {
	b := make([]byte, len(f))
	for i, m := range f {
		b[i] = '0' + byte(m)
	}
	return string(b)
}

// Solved reports whether every mark is MarkCorrect.
func (f Feedback) Solved() bool {
	if len(f) == 0 {
		return false
	}
	for _, m := range f {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

// Equal compares two feedbacks mark by mark.
func (f Feedback) Equal(o Feedback) bool {
	if len(f) != len(o) {
		return false
	}
	for i := range f {
		if f[i] != o[i] {
			return false
		}
	}
	return true
}

// GuessRecord is one turn's evidence.
type GuessRecord struct {
	Guess    Word     `json:"guess"`
	Feedback Feedback `json:"marks"`
}

func asciiLower(r rune) rune {
	if 'A' <= r && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// isAlpha checks that a string consists only of lowercase a–z.
func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}
