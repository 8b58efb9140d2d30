package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

func writeList(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestReadWords_SkipsInvalidLines(t *testing.T) {
	ws, err := ReadWords(strings.NewReader("Crane\n# comment\n\nab\nsl4te\n  PIANO  \nlonger\n"), 5)
	require.NoError(t, err)
	require.Len(t, ws, 2)
	assert.Equal(t, "crane", ws[0].String())
	assert.Equal(t, "piano", ws[1].String())
}

func TestLoad_Embedded(t *testing.T) {
	c, err := Load(Source{})
	require.NoError(t, err)
	a, g := c.Stats()
	assert.Greater(t, a, 0)
	assert.Greater(t, g, a)
	assert.Equal(t, 5, c.WordLength())

	assert.True(t, c.IsSolution(game.MustWord("apple")))
	assert.True(t, c.IsAllowed(game.MustWord("apple")), "answers are always allowed")
	assert.True(t, c.IsAllowed(game.MustWord("slate")))
	assert.False(t, c.IsSolution(game.MustWord("slate")))
	assert.False(t, c.IsAllowed(game.MustWord("qqqqq")))
}

func TestLoad_BothFiles(t *testing.T) {
	ans := writeList(t, "answers.txt", "apple\nCRANE\napple\n")
	all := writeList(t, "allowed.txt", "slate\nxyzzy\n")
	c, err := Load(Source{AnswersFile: ans, AllowedFile: all})
	require.NoError(t, err)

	a, g := c.Stats()
	assert.Equal(t, 2, a, "duplicates collapse")
	assert.Equal(t, 4, g)
	assert.Equal(t, "apple", c.Solutions().At(0).String())
}

func TestLoad_AllowedOnly(t *testing.T) {
	all := writeList(t, "allowed.txt", "slate\ncrane\n")
	c, err := Load(Source{AllowedFile: all})
	require.NoError(t, err)
	assert.True(t, c.IsSolution(game.MustWord("slate")))
}

func TestLoad_AnswersOnly(t *testing.T) {
	ans := writeList(t, "answers.txt", "zesty\nquirk\n")
	c, err := Load(Source{AnswersFile: ans})
	require.NoError(t, err)
	a, g := c.Stats()
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, g)
	assert.True(t, c.IsSolution(game.MustWord("zesty")))
	assert.False(t, c.IsAllowed(game.MustWord("apple")), "embedded lists are not mixed in")
}

func TestLoad_EmptyAnswers(t *testing.T) {
	ans := writeList(t, "answers.txt", "# nothing\n")
	all := writeList(t, "allowed.txt", "slate\n")
	_, err := Load(Source{AnswersFile: ans, AllowedFile: all})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(Source{AllowedFile: filepath.Join(t.TempDir(), "nope.txt")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRandomSolutionAndSolutionAt(t *testing.T) {
	c, err := New([]game.Word{game.MustWord("crane"), game.MustWord("apple")}, nil, 5)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		assert.True(t, c.IsSolution(c.RandomSolution()))
	}
	assert.Equal(t, "apple", c.SolutionAt(0).String())
	assert.Equal(t, "crane", c.SolutionAt(3).String())
	assert.Equal(t, "crane", c.SolutionAt(-1).String())
}
