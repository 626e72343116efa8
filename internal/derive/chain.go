package derive

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Chain describes a sequential dependency workflow detected in text
// (the "[Database] → [Website] → [Frontend]" pattern from workflow
// diagrams). When IsChain is set, assembly collapses to ONE epic for the
// workflow root with one task per step, preserving order.
type Chain struct {
	IsChain     bool
	RootConcept string
	Steps       []string
}

// chainPatterns match explicit three-step sequences. The word-based
// forms mirror how people transcribe diagram arrows into prose.
var chainPatterns = []*regexp.Regexp{
	regexp.MustCompile(`([a-z][a-z ]+?)\s*→\s*([a-z][a-z ]+?)\s*→\s*([a-z][a-z ]+)`),
	regexp.MustCompile(`([a-z][a-z ]+?)\s*->\s*([a-z][a-z ]+?)\s*->\s*([a-z][a-z ]+)`),
	regexp.MustCompile(`([a-z][a-z ]+?)\s+then\s+([a-z][a-z ]+?)\s+then\s+([a-z][a-z ]+)`),
	regexp.MustCompile(`([a-z][a-z ]+?)\s+leads to\s+([a-z][a-z ]+?)\s+leads to\s+([a-z][a-z ]+)`),
}

// DetectChain checks whether text describes a dependency chain workflow.
// It first looks for explicit arrow/sequence patterns, then falls back to
// ordering known workflow terms when two or more are present.
func DetectChain(text string, vocab Vocabulary) Chain {
	lower := strings.ToLower(cleanText(text))
	if lower == "" {
		return Chain{}
	}

	for _, re := range chainPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		steps := make([]string, 0, len(m)-1)
		for _, s := range m[1:] {
			steps = append(steps, titleCase(strings.TrimSpace(s)))
		}
		return Chain{
			IsChain:     true,
			RootConcept: fmt.Sprintf("%s to %s Workflow", steps[0], steps[len(steps)-1]),
			Steps:       steps,
		}
	}

	// Fallback: multiple workflow components imply a dependency chain in
	// canonical order (database before api before frontend, etc.).
	var ordered []string
	for _, term := range vocab.WorkflowTerms {
		if strings.Contains(lower, term) {
			ordered = append(ordered, titleCase(term))
		}
	}
	if len(ordered) >= 2 {
		return Chain{
			IsChain:     true,
			RootConcept: fmt.Sprintf("%s to %s System", ordered[0], ordered[len(ordered)-1]),
			Steps:       ordered,
		}
	}

	return Chain{}
}

// titleCase upper-cases the first letter of each word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
