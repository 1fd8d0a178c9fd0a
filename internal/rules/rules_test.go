package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpulse/classpulse/internal/textnorm"
)

func loadSet(t *testing.T, table string) *Set {
	t.Helper()
	set, err := Load(strings.NewReader(table), textnorm.New())
	require.NoError(t, err)
	return set
}

func TestLoad_SkipsShortRows(t *testing.T) {
	table := `1,hello,unigram,greeting
2,short row
3,lesson plan,bigram,academic
`
	set := loadSet(t, table)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, "hello", set.Rules()[0].Phrase)
	assert.Equal(t, "lesson plan", set.Rules()[1].Phrase)
}

func TestLoad_SkipsBrokenQuotedRows(t *testing.T) {
	// A bare quote inside a quoted field breaks CSV parsing for that row;
	// the row is dropped and the surrounding rules still load.
	table := `1,algebra,unigram,math
2,"bad "quote,unigram,oops
3,painting,unigram,art
`
	set := loadSet(t, table)
	require.Equal(t, 2, set.Len())
	assert.Equal(t, "algebra", set.Rules()[0].Phrase)
	assert.Equal(t, "painting", set.Rules()[1].Phrase)
}

func TestLoad_NormalizesPhrases(t *testing.T) {
	set := loadSet(t, "1,Running Dogs,bigram,animals\n")
	require.Equal(t, 1, set.Len())
	assert.Equal(t, "run dog", set.Rules()[0].Normalized)
}

func TestCategorize_EmptyRuleSet(t *testing.T) {
	set := loadSet(t, "")
	assert.Equal(t, Uncategorized, set.Categorize("anything at all"))
}

func TestCategorize_NoMatch(t *testing.T) {
	set := loadSet(t, "1,photosynthesis,unigram,biology\n")
	assert.Equal(t, Uncategorized, set.Categorize("let's talk about algebra"))
}

func TestCategorize_SingleMatch(t *testing.T) {
	set := loadSet(t, "1,algebra,unigram,math\n")
	assert.Equal(t, "math", set.Categorize("today we cover Algebra basics"))
}

func TestCategorize_StemmedMatch(t *testing.T) {
	// Rule and message stem to the same token.
	set := loadSet(t, "1,question,unigram,engagement\n")
	assert.Equal(t, "engagement", set.Categorize("any questions?"))
}

func TestCategorize_WholeWordBoundary(t *testing.T) {
	set := loadSet(t, "1,art,unigram,humanities\n")
	// "art" must not match inside "startup" ("startup" stems with "art" embedded).
	assert.Equal(t, Uncategorized, set.Categorize("the startup culture"))
	assert.Equal(t, "humanities", set.Categorize("art history"))
}

func TestCategorize_MultiWordPhrase(t *testing.T) {
	set := loadSet(t, "1,lesson plan,bigram,academic\n")
	assert.Equal(t, "academic", set.Categorize("check the lesson plans please"))
	// Tokens injected between the phrase words must not match.
	assert.Equal(t, Uncategorized, set.Categorize("the lesson has a plan"))
}

func TestCategorize_TieJoinedInLoadOrder(t *testing.T) {
	table := `1,algebra,unigram,math
2,painting,unigram,art
`
	set := loadSet(t, table)
	assert.Equal(t, "math, art", set.Categorize("algebra and painting today"))
}

func TestCategorize_MajorityWins(t *testing.T) {
	table := `1,algebra,unigram,math
2,geometry,unigram,math
3,painting,unigram,art
`
	set := loadSet(t, table)
	assert.Equal(t, "math", set.Categorize("algebra, geometry and painting"))
}

func TestCategorize_OneIncrementPerRule(t *testing.T) {
	// A rule matching many times in one message still counts once, so a
	// two-rule category outvotes a repeated single-rule category.
	table := `1,algebra,unigram,math
2,painting,unigram,art
3,sculpture,unigram,art
`
	set := loadSet(t, table)
	got := set.Categorize("algebra algebra algebra with painting and sculpture")
	assert.Equal(t, "art", got)
}
