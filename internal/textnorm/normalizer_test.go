package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "HELLO", "hello"},
		{"stems plurals", "cats and dogs", "cat and dog"},
		{"stems suffixes", "running quickly", "run quick"},
		{"strips punctuation", "well, this is it!", "well this is it"},
		{"collapses whitespace", "one   two\tthree", "one two three"},
		{"keeps digits", "chapter 12", "chapter 12"},
		{"keeps accented letters whole", "café", "café"},
		{"empty", "", ""},
		{"punctuation only", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := New()

	inputs := []string{
		"The students discussed the lesson plan",
		"Alice: can you see my screen?",
		"numbers 123 mixed with words",
	}

	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		assert.Equal(t, once, twice, "normalization of %q should be idempotent", in)
	}
}
