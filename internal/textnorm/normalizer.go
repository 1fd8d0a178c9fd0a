// Package textnorm reduces utterance text to a canonical, stemmed,
// lowercase token sequence for rule matching.
package textnorm

import (
	"regexp"
	"strings"

	"github.com/kljensen/snowball/english"
)

// Word tokens are Unicode-aware: accented letters stay part of their token
// instead of splitting it (Go's \w is ASCII-only).
var wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Normalizer produces the canonical matching form of a text: lowercase,
// word tokens only, each token Porter-stemmed, rejoined with single spaces.
// The zero cost of construction keeps it an explicit dependency rather than
// package-level state; a single instance is safe for concurrent use.
type Normalizer struct{}

// New creates a Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Normalize returns the canonical form of text. It is idempotent: applying
// it to already-normalized text returns the same string.
func (n *Normalizer) Normalize(text string) string {
	words := wordRegex.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return ""
	}

	stemmed := make([]string, len(words))
	for i, word := range words {
		stemmed[i] = english.Stem(word, true)
	}

	return strings.Join(stemmed, " ")
}
