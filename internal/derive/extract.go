package derive

import (
	"regexp"
	"sort"
	"strings"
)

// Extraction is the output of text analysis: ordered, deduplicated
// feature labels and discrete requirement statements. Empty containers
// mean "nothing recognized" — never an error; the assembler applies its
// documented defaults.
type Extraction struct {
	Features     []string
	Requirements []string
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// cleanText collapses whitespace runs and trims the input.
func cleanText(text string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(text), " ")
}

// Extract scans free text for feature keywords and requirement
// statements. Feature order follows first occurrence in the text,
// duplicates collapsed; requirements preserve sentence order.
func Extract(text string, vocab Vocabulary) Extraction {
	text = cleanText(text)
	if text == "" {
		return Extraction{}
	}
	return Extraction{
		Features:     extractFeatures(text, vocab),
		Requirements: extractRequirements(text, vocab),
	}
}

// extractFeatures matches the vocabulary's keywords case-insensitively
// against the text, returning labels ordered by first keyword occurrence.
func extractFeatures(text string, vocab Vocabulary) []string {
	lower := strings.ToLower(text)

	type hit struct {
		pos   int
		label string
	}
	var hits []hit
	for _, fk := range vocab.Features {
		if pos := strings.Index(lower, fk.Keyword); pos >= 0 {
			hits = append(hits, hit{pos: pos, label: fk.Label})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := make(map[string]bool)
	var features []string
	for _, h := range hits {
		if seen[h.label] {
			continue
		}
		seen[h.label] = true
		features = append(features, h.label)
	}
	return features
}

// sentenceSplitRE breaks text into sentences at terminal punctuation.
var sentenceSplitRE = regexp.MustCompile(`[.!?]+`)

// extractRequirements retains sentences containing a requirement verb,
// then splits conjunctions so "a login page and password reset" yields
// two discrete statements — the verb distributes across the conjunction.
func extractRequirements(text string, vocab Vocabulary) []string {
	var requirements []string
	for _, sentence := range sentenceSplitRE.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || !containsVerb(sentence, vocab.RequirementVerbs) {
			continue
		}
		for _, clause := range splitClauses(sentence) {
			requirements = append(requirements, clause)
		}
	}
	return requirements
}

func containsVerb(sentence string, verbs []string) bool {
	lower := strings.ToLower(sentence)
	for _, verb := range verbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

// splitClauses divides a requirement sentence at coordinating
// conjunctions and commas. Fragments shorter than three characters are
// discarded as punctuation noise.
func splitClauses(sentence string) []string {
	parts := []string{sentence}
	for _, sep := range []string{" and ", ", "} {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}

	var clauses []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) >= 3 {
			clauses = append(clauses, p)
		}
	}
	return clauses
}
