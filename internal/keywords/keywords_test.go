package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_RanksFrequentTerms(t *testing.T) {
	text := `Photosynthesis converts light into energy.
Plants use photosynthesis to grow.
Photosynthesis requires sunlight and water.`

	got := Extract(text, 3)
	assert.Len(t, got, 3)
	assert.Equal(t, "photosynthesis", got[0])
}

func TestExtract_FiltersStopwords(t *testing.T) {
	got := Extract("the cat and the dog and the cat", 10)
	assert.NotContains(t, got, "the")
	assert.NotContains(t, got, "and")
	assert.Contains(t, got, "cat")
	assert.Contains(t, got, "dog")
}

func TestExtract_LimitsToN(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta"
	got := Extract(text, 2)
	assert.Len(t, got, 2)
}

func TestExtract_Deterministic(t *testing.T) {
	text := "math science history art music geography"
	first := Extract(text, 6)
	second := Extract(text, 6)
	assert.Equal(t, first, second)
}

func TestExtract_Empty(t *testing.T) {
	assert.Nil(t, Extract("", 5))
	assert.Nil(t, Extract("the of and", 5))
	assert.Nil(t, Extract("words here", 0))
}
