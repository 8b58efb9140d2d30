package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	cases := []struct {
		name     string
		guess    string
		solution string
		want     string
	}{
		{"exact", "apple", "apple", "GGGGG"},
		{"slate against apple", "slate", "apple", "XYYXG"},
		{"repeated guess letter credited once", "eerie", "abbey", "YXXXX"},
		{"second e starved", "speed", "abide", "XXYXY"},
		{"both l present", "llama", "hello", "YYXXX"},
		{"exact match beats earlier displaced", "lolly", "hello", "XYGGX"},
		{"no overlap", "fjord", "piano", "XXYXX"},
		{"all present", "ehllo", "hello", "YYGGG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb, err := Generate(MustWord(tc.guess), MustWord(tc.solution))
			require.NoError(t, err)
			assert.Equal(t, tc.want, fb.String())
			assert.Len(t, fb, len(tc.guess))
		})
	}
}

func TestGenerate_LengthMismatch(t *testing.T) {
	_, err := Generate(MustWord("appl"), MustWord("apple"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestGenerate_FullMatchIsAllCorrect(t *testing.T) {
	for _, s := range []string{"abbey", "eerie", "mummy", "aaaaa", "crane"} {
		fb, err := Generate(MustWord(s), MustWord(s))
		require.NoError(t, err)
		assert.True(t, fb.Solved(), s)
	}
}

// TestGenerate_CreditNeverExceedsSolutionCount checks every letter's
// correct+present tally against its occurrences in the solution.
func TestGenerate_CreditNeverExceedsSolutionCount(t *testing.T) {
	words := []string{"abbey", "eerie", "geese", "mummy", "sassy", "apple", "llama", "hello", "kayak", "array"}
	for _, g := range words {
		for _, s := range words {
			fb, err := Generate(MustWord(g), MustWord(s))
			require.NoError(t, err)
			credited := map[byte]int{}
			for i, m := range fb {
				if m != MarkAbsent {
					credited[g[i]]++
				}
			}
			for c, n := range credited {
				assert.LessOrEqual(t, n, strings.Count(s, string(c)), "%s vs %s letter %c", g, s, c)
				assert.LessOrEqual(t, n, strings.Count(g, string(c)), "%s vs %s letter %c", g, s, c)
			}
		}
	}
}

func TestParseFeedback(t *testing.T) {
	fb, err := ParseFeedback("xYg", 3)
	require.NoError(t, err)
	assert.Equal(t, Feedback{MarkAbsent, MarkPresent, MarkCorrect}, fb)

	fb, err = ParseFeedback("01220", 5)
	require.NoError(t, err)
	assert.Equal(t, "XYGGX", fb.String())
	assert.Equal(t, "01220", fb.Numeric())
}

func TestParseFeedback_InvalidChar(t *testing.T) {
	_, err := ParseFeedback("GGXYZ", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFeedbackChar)
	assert.Contains(t, err.Error(), "'Z'")
}

func TestParseFeedback_WrongLength(t *testing.T) {
	_, err := ParseFeedback("GGX", 5)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestMarkText(t *testing.T) {
	b, err := MarkPresent.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "present", string(b))

	var m Mark
	require.NoError(t, m.UnmarshalText([]byte("G")))
	assert.Equal(t, MarkCorrect, m)
	assert.ErrorIs(t, m.UnmarshalText([]byte("blue")), ErrInvalidFeedbackChar)

	_, err = Mark(7).MarshalText()
	assert.Error(t, err)
}

func TestParseWord(t *testing.T) {
	w, err := ParseWord("  CRANE ", 5)
	require.NoError(t, err)
	assert.Equal(t, "crane", w.String())

	_, err = ParseWord("cran", 5)
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = ParseWord("cr4ne", 5)
	assert.ErrorIs(t, err, ErrNotAlphabetic)

	for _, raw := range []string{"héllo", "hellö", "\u212Aayak"} {
		_, err = ParseWord(raw, 5)
		assert.ErrorIs(t, err, ErrNotAlphabetic, raw)
	}
	_, err = ParseWord("héllos", 5)
	assert.ErrorIs(t, err, ErrInvalidLength)

	assert.Equal(t, -1, MustWord("abbey").Compare(MustWord("abbot")))
}
