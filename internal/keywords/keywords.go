// Package keywords extracts the most important terms from a document using
// TF-IDF ranking. It is an independent preprocessing utility, not part of the
// per-utterance pipeline.
package keywords

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var tokenRegex = regexp.MustCompile(`[a-z0-9]+`)

// english stopwords filtered out before ranking
var stopwords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"against": true, "all": true, "am": true, "an": true, "and": true,
	"any": true, "are": true, "as": true, "at": true, "be": true,
	"because": true, "been": true, "before": true, "being": true, "below": true,
	"between": true, "both": true, "but": true, "by": true, "can": true,
	"did": true, "do": true, "does": true, "doing": true, "down": true,
	"during": true, "each": true, "few": true, "for": true, "from": true,
	"further": true, "had": true, "has": true, "have": true, "having": true,
	"he": true, "her": true, "here": true, "hers": true, "him": true,
	"his": true, "how": true, "i": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "just": true,
	"me": true, "more": true, "most": true, "my": true, "no": true,
	"nor": true, "not": true, "now": true, "of": true, "off": true,
	"on": true, "once": true, "only": true, "or": true, "other": true,
	"our": true, "ours": true, "out": true, "over": true, "own": true,
	"same": true, "she": true, "should": true, "so": true, "some": true,
	"such": true, "than": true, "that": true, "the": true, "their": true,
	"theirs": true, "them": true, "then": true, "there": true, "these": true,
	"they": true, "this": true, "those": true, "through": true, "to": true,
	"too": true, "under": true, "until": true, "up": true, "very": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"where": true, "which": true, "while": true, "who": true, "whom": true,
	"why": true, "will": true, "with": true, "you": true, "your": true,
	"yours": true,
}

// Extract returns up to n terms from text ranked by TF-IDF weight, where
// sentences of the document form the corpus for inverse document frequency.
// Stopwords and non-alphanumeric tokens are filtered before ranking; ties
// break alphabetically so output is deterministic.
func Extract(text string, n int) []string {
	if n <= 0 {
		return nil
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	// Term frequency over the whole document, document frequency per sentence.
	tf := make(map[string]int)
	df := make(map[string]int)
	total := 0

	for _, sentence := range sentences {
		seen := make(map[string]bool)
		for _, tok := range tokenize(sentence) {
			if stopwords[tok] {
				continue
			}
			tf[tok]++
			total++
			if !seen[tok] {
				seen[tok] = true
				df[tok]++
			}
		}
	}

	if total == 0 {
		return nil
	}

	type scored struct {
		term   string
		weight float64
	}

	terms := make([]scored, 0, len(tf))
	for term, count := range tf {
		idf := math.Log(float64(1+len(sentences))/float64(1+df[term])) + 1
		terms = append(terms, scored{
			term:   term,
			weight: float64(count) / float64(total) * idf,
		})
	}

	sort.Slice(terms, func(i, j int) bool {
		if terms[i].weight != terms[j].weight {
			return terms[i].weight > terms[j].weight
		}
		return terms[i].term < terms[j].term
	})

	if n > len(terms) {
		n = len(terms)
	}

	result := make([]string, n)
	for i := 0; i < n; i++ {
		result[i] = terms[i].term
	}
	return result
}

func tokenize(text string) []string {
	return tokenRegex.FindAllString(strings.ToLower(text), -1)
}

// splitSentences splits text into sentences (simple heuristic)
func splitSentences(text string) []string {
	parts := regexp.MustCompile(`[.!?\n]+`).Split(text, -1)
	var sentences []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}
