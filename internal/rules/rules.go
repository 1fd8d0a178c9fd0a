// Package rules loads the phrase-to-category rule table and assigns
// categories to utterance text by whole-phrase matching over normalized text.
package rules

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/classpulse/classpulse/internal/textnorm"
)

// Uncategorized is the sentinel returned when no rule matches.
const Uncategorized = "uncategorized"

// Rule is one normalized matching unit from the rule table.
type Rule struct {
	Phrase     string // Original phrase, kept for display/audit
	PhraseType string // unigram/bigram/trigram tag, descriptive only
	Category   string // The label this rule votes for
	Normalized string // Phrase after text normalization

	matcher *regexp.Regexp
}

// Matches reports whether the rule's normalized phrase occurs as a
// whole-word-bounded span of the already-normalized text.
func (r *Rule) Matches(normalizedText string) bool {
	return r.matcher.MatchString(normalizedText)
}

// Set is an immutable, ordered rule collection. Rule order is the table's
// file order; that order is part of the categorization tie-break contract,
// so rules are always iterated as a slice.
type Set struct {
	rules      []Rule
	normalizer *textnorm.Normalizer
}

// Load reads rule rows (id, phrase, phraseType, category) from CSV. Malformed
// rows never abort the load: rows with fewer than four columns and rows the
// CSV reader cannot parse (broken quoting) are skipped. Each surviving phrase
// is normalized with the same normalizer used for utterances and compiled into
// a word-boundary-anchored matcher.
func Load(r io.Reader, normalizer *textnorm.Normalizer) (*Set, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Tolerate ragged rows; short ones are skipped below.

	var ruleList []Rule
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read rule table: %w", err)
		}
		if len(row) < 4 {
			continue
		}

		// First column is an id, ignored at read time.
		phrase := strings.TrimSpace(row[1])
		phraseType := strings.TrimSpace(row[2])
		category := strings.TrimSpace(row[3])

		normalized := normalizer.Normalize(phrase)
		matcher, err := regexp.Compile(`\b` + regexp.QuoteMeta(normalized) + `\b`)
		if err != nil {
			return nil, fmt.Errorf("compile matcher for %q: %w", phrase, err)
		}

		ruleList = append(ruleList, Rule{
			Phrase:     phrase,
			PhraseType: phraseType,
			Category:   category,
			Normalized: normalized,
			matcher:    matcher,
		})
	}

	return &Set{rules: ruleList, normalizer: normalizer}, nil
}

// Len returns the number of loaded rules.
func (s *Set) Len() int {
	return len(s.rules)
}

// Rules returns the rules in load order.
func (s *Set) Rules() []Rule {
	return s.rules
}

// Categorize normalizes text once and counts category hits: each matching
// rule contributes one increment to its category, at most once per message.
// The result is the category (or categories, comma-separated in
// first-encounter order on a tie) with the highest count, or Uncategorized
// when nothing matched.
func (s *Set) Categorize(text string) string {
	normalized := s.normalizer.Normalize(text)

	counts := make(map[string]int)
	var order []string
	for i := range s.rules {
		rule := &s.rules[i]
		if !rule.Matches(normalized) {
			continue
		}
		if _, seen := counts[rule.Category]; !seen {
			order = append(order, rule.Category)
		}
		counts[rule.Category]++
	}

	if len(counts) == 0 {
		return Uncategorized
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	var winners []string
	for _, cat := range order {
		if counts[cat] == maxCount {
			winners = append(winners, cat)
		}
	}

	return strings.Join(winners, ", ")
}
