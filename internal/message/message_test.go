package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanStripsSvnIDLines(t *testing.T) {
	raw := "fix bug\n\ngit-svn-id: http://example.com/repo@42 abc-def"
	assert.Equal(t, "fix bug\n", Clean(raw))
}

func TestCleanLeavesOrdinaryMessagesAlone(t *testing.T) {
	raw := "fix bug\nanother line"
	assert.Equal(t, raw, Clean(raw))
}

func TestIsEmptyAfterCleanup(t *testing.T) {
	assert.True(t, IsEmpty("   \n  \n"))
	assert.False(t, IsEmpty("fix bug"))
}

func TestTokensDiscardsSingleCharacterTokens(t *testing.T) {
	tokens := Tokens("fix a bug, ok?")
	assert.Equal(t, []string{"fix", "bug", "ok"}, tokens)
}

func TestTokensStripsIgnorePatterns(t *testing.T) {
	tokens := Tokens("Signed-off-by: Jane Doe <jane@example.com>")
	assert.Empty(t, tokens)
}

func TestIndexCountsTermsBigramsTrigramsPerLine(t *testing.T) {
	idx := New()
	idx.Index("A", "fix bug\nanother line")

	assert.Equal(t, 1, idx.Global.Term["fix"])
	assert.Equal(t, 1, idx.Global.Term["bug"])
	assert.Equal(t, 1, idx.Global.Bigram[Bigram{"fix", "bug"}])
	assert.Equal(t, 1, idx.Global.Bigram[Bigram{"another", "line"}])

	// bigrams must not span line boundaries
	assert.Equal(t, 0, idx.Global.Bigram[Bigram{"bug", "another"}])

	authorStats := idx.Author["A"]
	assert.Equal(t, 1, authorStats.Term["fix"])
}

func TestIndexScenario6FromSpec(t *testing.T) {
	idx := New()
	cleaned := Clean("fix bug\n\ngit-svn-id: http://...@42")
	assert.True(t, !IsEmpty(cleaned))
	idx.Index("A", cleaned)

	assert.Equal(t, 1, idx.Global.Term["fix"])
	assert.Equal(t, 1, idx.Global.Term["bug"])
}
