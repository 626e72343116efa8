// Package derive implements the text-to-work-item derivation engine:
// feature/requirement extraction, priority classification, dependency
// chain detection, and instruction assembly.
//
// All heuristic tables live in the Vocabulary value rather than inline
// literals so tests and configuration can substitute fixtures without
// touching logic. Every function here is pure and deterministic over its
// inputs — the engine shares no mutable state across calls.
package derive

import (
	"sort"
	"strings"

	"github.com/omarsolutions/ado-instructions/internal/workitem"
)

// FeatureKeyword maps a text keyword to the feature label it signals.
type FeatureKeyword struct {
	Keyword string
	Label   string
}

// PriorityKeyword assigns a weight to a priority bucket when the keyword
// appears in the input text.
type PriorityKeyword struct {
	Keyword  string
	Priority workitem.Priority
	Weight   int
}

// Vocabulary holds the heuristic tables driving extraction and
// classification. Treat as immutable once constructed.
type Vocabulary struct {
	// Features is the curated keyword → label table, matched
	// case-insensitively as substrings.
	Features []FeatureKeyword

	// RequirementVerbs mark a sentence as a requirement statement.
	RequirementVerbs []string

	// PriorityWeights drive the weighted bucket scoring in Classify.
	PriorityWeights []PriorityKeyword

	// WorkflowTerms, in canonical dependency order, feed the chain
	// detector's fallback when no explicit arrow pattern is present.
	WorkflowTerms []string
}

// OrganizationContext is the static metadata about the consuming
// organization used to template generated output. Built once at process
// start and passed explicitly into every assembly call.
type OrganizationContext struct {
	Name       string
	FocusAreas []string
	Platform   string
	Scale      string
}

// WithOverrides returns a copy of v extended with additional feature
// keywords and requirement verbs. An extra keyword matching a built-in
// entry replaces its label; new keywords are appended in sorted order so
// the result is deterministic.
func (v Vocabulary) WithOverrides(extraFeatures map[string]string, extraVerbs []string) Vocabulary {
	if len(extraFeatures) == 0 && len(extraVerbs) == 0 {
		return v
	}

	out := v
	out.Features = make([]FeatureKeyword, len(v.Features))
	copy(out.Features, v.Features)

	remaining := make(map[string]string, len(extraFeatures))
	for kw, label := range extraFeatures {
		remaining[strings.ToLower(kw)] = label
	}
	for i, fk := range out.Features {
		if label, ok := remaining[fk.Keyword]; ok {
			out.Features[i].Label = label
			delete(remaining, fk.Keyword)
		}
	}
	added := make([]string, 0, len(remaining))
	for kw := range remaining {
		added = append(added, kw)
	}
	sort.Strings(added)
	for _, kw := range added {
		out.Features = append(out.Features, FeatureKeyword{Keyword: kw, Label: remaining[kw]})
	}

	out.RequirementVerbs = make([]string, len(v.RequirementVerbs), len(v.RequirementVerbs)+len(extraVerbs))
	copy(out.RequirementVerbs, v.RequirementVerbs)
	for _, verb := range extraVerbs {
		verb = strings.ToLower(strings.TrimSpace(verb))
		if verb != "" && !containsString(out.RequirementVerbs, verb) {
			out.RequirementVerbs = append(out.RequirementVerbs, verb)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// DefaultOrganization returns the built-in organization context.
func DefaultOrganization() OrganizationContext {
	return OrganizationContext{
		Name:       "Omar Solutions",
		FocusAreas: []string{"Data Engineering", "Data Visualization", "Analytics"},
		Platform:   "Azure Cloud Platform",
		Scale:      "Large scale solutions",
	}
}

// DefaultVocabulary returns the built-in heuristic tables.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Features: []FeatureKeyword{
			{Keyword: "dashboard", Label: "Dashboard"},
			{Keyword: "report", Label: "Reporting"},
			{Keyword: "analytics", Label: "Analytics"},
			{Keyword: "data pipeline", Label: "Data Pipeline"},
			{Keyword: "visualization", Label: "Data Visualization"},
			{Keyword: "api", Label: "API Development"},
			{Keyword: "integration", Label: "System Integration"},
			{Keyword: "authentication", Label: "Authentication"},
			{Keyword: "login", Label: "Authentication"},
			{Keyword: "password", Label: "Authentication"},
			{Keyword: "database", Label: "Database"},
			{Keyword: "etl", Label: "ETL Pipeline"},
			{Keyword: "export", Label: "Data Export"},
			{Keyword: "chatbot", Label: "Chatbot Development"},
			{Keyword: "chat", Label: "Chat System"},
			{Keyword: "machine learning", Label: "Machine Learning"},
			{Keyword: "llm", Label: "LLM Integration"},
			{Keyword: "website", Label: "Website Development"},
			{Keyword: "web app", Label: "Web Application"},
			{Keyword: "mobile app", Label: "Mobile Application"},
		},
		RequirementVerbs: []string{
			"need", "must", "should", "require", "shall",
			"build", "implement", "add", "support", "create", "develop",
		},
		PriorityWeights: []PriorityKeyword{
			{Keyword: "critical", Priority: workitem.PriorityCritical, Weight: 3},
			{Keyword: "urgent", Priority: workitem.PriorityCritical, Weight: 3},
			{Keyword: "asap", Priority: workitem.PriorityCritical, Weight: 3},
			{Keyword: "blocker", Priority: workitem.PriorityCritical, Weight: 3},
			{Keyword: "immediately", Priority: workitem.PriorityCritical, Weight: 2},
			{Keyword: "disaster recovery", Priority: workitem.PriorityCritical, Weight: 2},
			{Keyword: "high priority", Priority: workitem.PriorityHigh, Weight: 3},
			{Keyword: "important", Priority: workitem.PriorityHigh, Weight: 2},
			{Keyword: "security", Priority: workitem.PriorityHigh, Weight: 2},
			{Keyword: "authentication", Priority: workitem.PriorityHigh, Weight: 1},
			{Keyword: "data loss", Priority: workitem.PriorityHigh, Weight: 2},
			{Keyword: "nice to have", Priority: workitem.PriorityLow, Weight: 3},
			{Keyword: "eventually", Priority: workitem.PriorityLow, Weight: 2},
			{Keyword: "low priority", Priority: workitem.PriorityLow, Weight: 3},
			{Keyword: "someday", Priority: workitem.PriorityLow, Weight: 2},
			{Keyword: "when possible", Priority: workitem.PriorityLow, Weight: 2},
		},
		WorkflowTerms: []string{
			"database", "api", "server", "backend", "frontend", "website",
		},
	}
}
