package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster(t *testing.T) {
	got, err := Roster(strings.NewReader("Alice\n\nBob\nAlice\n  Carol  \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, got)
}

func TestRoster_Empty(t *testing.T) {
	got, err := Roster(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
