// Package workitem defines the Azure DevOps work item model produced by
// the derivation pipeline, plus structural validation and summary
// formatting over it.
//
// The JSON shape of InstructionSet is the wire contract consumed by the
// downstream ADO import tooling — field names and types must stay stable
// across versions.
package workitem

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// --- Work item type enum ---

// Type categorizes a work item in the ADO hierarchy.
type Type string

const (
	TypeEpic      Type = "Epic"
	TypeTask      Type = "Task"
	TypeUserStory Type = "User Story"
	TypeBug       Type = "Bug"
)

// validTypes is the set of allowed work item types.
var validTypes = map[Type]bool{
	TypeEpic:      true,
	TypeTask:      true,
	TypeUserStory: true,
	TypeBug:       true,
}

// ValidateType returns an error if the type is not recognized.
func ValidateType(t Type) error {
	if !validTypes[t] {
		return fmt.Errorf("invalid work item type %q: must be one of: Epic, Task, User Story, Bug", t)
	}
	return nil
}

// --- Priority enum ---

// Priority is the ordinal urgency label of a work item.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// priorityRank orders priorities for comparisons. Higher is more urgent.
var priorityRank = map[Priority]int{
	PriorityLow:      1,
	PriorityMedium:   2,
	PriorityHigh:     3,
	PriorityCritical: 4,
}

// Rank returns the ordinal position of a priority (Low=1 .. Critical=4),
// or 0 for an unrecognized value.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Valid reports whether p is one of the four recognized labels.
func (p Priority) Valid() bool {
	return priorityRank[p] != 0
}

// ParsePriority parses a priority label case-insensitively.
// Returns false for anything outside the four valid labels.
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, true
	case "medium":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "critical":
		return PriorityCritical, true
	}
	return "", false
}

// CoercePriority converts an externally produced priority value into a
// Priority. It accepts the four labels (case-insensitive) and the numeric
// encoding 1–4 that the vision collaborator sometimes emits.
func CoercePriority(v any) (Priority, bool) {
	switch val := v.(type) {
	case string:
		return ParsePriority(val)
	case float64:
		return numericPriority(int(val))
	case int:
		return numericPriority(val)
	}
	return "", false
}

func numericPriority(n int) (Priority, bool) {
	for p, rank := range priorityRank {
		if rank == n {
			return p, true
		}
	}
	return "", false
}

// --- Core data structures ---

// WorkItem is a single node in the Epic → Task hierarchy. Only Epic-typed
// items own tasks; Task-typed items are leaves. Items are immutable once
// assembled — the validator and formatter are read-only consumers.
type WorkItem struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	WorkItemType       Type       `json:"work_item_type"`
	Priority           Priority   `json:"priority"`
	EstimatedEffort    string     `json:"estimated_effort,omitempty"`
	AcceptanceCriteria []string   `json:"acceptance_criteria,omitempty"`
	BusinessValue      string     `json:"business_value,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	Tasks              []WorkItem `json:"tasks,omitempty"`
}

// InstructionSet is the complete generated project structure. It
// exclusively owns its work item tree — no sharing between sets.
type InstructionSet struct {
	ProjectName         string     `json:"project_name"`
	FeatureSummary      string     `json:"feature_summary"`
	Epics               []WorkItem `json:"epics"`
	OrganizationContext string     `json:"organization_context"`
}

// TaskCount returns the total number of tasks across all epics.
func (s InstructionSet) TaskCount() int {
	n := 0
	for _, e := range s.Epics {
		n += len(e.Tasks)
	}
	return n
}

// NewID returns a fresh work item identifier.
func NewID() string {
	return uuid.NewString()
}
