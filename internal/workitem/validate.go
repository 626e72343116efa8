package workitem

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// --- Severity enum ---

// Severity classifies how serious a validation issue is. Only
// error-severity issues make a document invalid; warnings are advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single validation finding, addressed by a JSON field path.
type Issue struct {
	FieldPath string   `json:"field_path"`
	Message   string   `json:"message"`
	Severity  Severity `json:"severity"`
}

// ValidationReport is the outcome of a structure validation. It is created
// fresh per call and never persisted. Validation always returns a report —
// malformed input becomes an issue, not a Go error.
type ValidationReport struct {
	IsValid bool    `json:"is_valid"`
	Issues  []Issue `json:"issues"`
}

// instructionSchema is the JSON Schema for the top-level InstructionSet
// shape. Per-epic and per-task semantics are checked separately so every
// issue carries a precise field path.
const instructionSchema = `{
	"type": "object",
	"required": ["project_name", "epics"],
	"properties": {
		"project_name": {"type": "string", "minLength": 1},
		"feature_summary": {"type": "string"},
		"epics": {"type": "array", "minItems": 1, "items": {"type": "object"}}
	}
}`

var compiledSchema = gojsonschema.NewStringLoader(instructionSchema)

// Validate checks an in-memory InstructionSet. It routes through the same
// JSON path as ValidateJSON so both entry points enforce identical rules.
func Validate(set InstructionSet) ValidationReport {
	data, err := json.Marshal(set)
	if err != nil {
		// Marshaling our own struct cannot realistically fail; report it
		// rather than panic to honor the never-throws contract.
		return ValidationReport{
			IsValid: false,
			Issues: []Issue{{
				FieldPath: "$",
				Message:   fmt.Sprintf("encoding instruction set: %v", err),
				Severity:  SeverityError,
			}},
		}
	}
	return ValidateJSON(string(data))
}

// ValidateJSON checks a raw JSON document against the InstructionSet
// contract, accumulating all issues instead of stopping at the first.
// Externally shaped documents (from the image pipeline or other
// collaborators) are accepted and coerced where possible.
func ValidateJSON(raw string) ValidationReport {
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return ValidationReport{
			IsValid: false,
			Issues: []Issue{{
				FieldPath: "$",
				Message:   fmt.Sprintf("invalid JSON: %v", err),
				Severity:  SeverityError,
			}},
		}
	}

	var issues []Issue
	issues = append(issues, schemaIssues(raw)...)
	issues = append(issues, epicIssues(doc)...)

	return ValidationReport{
		IsValid: !hasErrors(issues),
		Issues:  issues,
	}
}

// schemaIssues runs the top-level JSON Schema check.
func schemaIssues(raw string) []Issue {
	result, err := gojsonschema.Validate(compiledSchema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return []Issue{{
			FieldPath: "$",
			Message:   fmt.Sprintf("schema validation: %v", err),
			Severity:  SeverityError,
		}}
	}

	var issues []Issue
	for _, e := range result.Errors() {
		path := e.Field()
		// Required-property errors report the parent as the field; use the
		// missing property's own name instead.
		if e.Type() == "required" {
			if prop, ok := e.Details()["property"].(string); ok {
				path = prop
			}
		}
		issues = append(issues, Issue{
			FieldPath: path,
			Message:   e.Description(),
			Severity:  SeverityError,
		})
	}
	return issues
}

// epicIssues checks per-epic and per-task semantics. It tolerates partial
// documents — anything the schema pass already flagged is simply skipped.
func epicIssues(doc map[string]any) []Issue {
	epics, ok := doc["epics"].([]any)
	if !ok {
		return nil
	}

	var issues []Issue
	for i, raw := range epics {
		epic, ok := raw.(map[string]any)
		if !ok {
			continue // schema pass already reported the type mismatch
		}
		path := fmt.Sprintf("epics[%d]", i)

		if !hasNonEmptyString(epic, "title") {
			issues = append(issues, Issue{
				FieldPath: path + ".title",
				Message:   "epic title must be a non-empty string",
				Severity:  SeverityError,
			})
		}
		if wit, _ := epic["work_item_type"].(string); wit != string(TypeEpic) {
			issues = append(issues, Issue{
				FieldPath: path + ".work_item_type",
				Message:   fmt.Sprintf("work_item_type must be %q, got %q", TypeEpic, wit),
				Severity:  SeverityError,
			})
		}
		if prio, present := epic["priority"]; present {
			if _, ok := CoercePriority(prio); !ok {
				issues = append(issues, Issue{
					FieldPath: path + ".priority",
					Message:   fmt.Sprintf("priority %v is not one of Low, Medium, High, Critical", prio),
					Severity:  SeverityError,
				})
			}
		}

		tasks, _ := epic["tasks"].([]any)
		if len(tasks) == 0 {
			// An epic with zero tasks is suspicious but not fatal — the
			// assembler never produces one, but external documents may.
			issues = append(issues, Issue{
				FieldPath: path + ".tasks",
				Message:   "epic has no tasks",
				Severity:  SeverityWarning,
			})
		}
		for j, rawTask := range tasks {
			task, ok := rawTask.(map[string]any)
			if !ok {
				issues = append(issues, Issue{
					FieldPath: fmt.Sprintf("%s.tasks[%d]", path, j),
					Message:   "task must be an object",
					Severity:  SeverityError,
				})
				continue
			}
			taskPath := fmt.Sprintf("%s.tasks[%d]", path, j)
			if !hasNonEmptyString(task, "title") {
				issues = append(issues, Issue{
					FieldPath: taskPath + ".title",
					Message:   "task title must be a non-empty string",
					Severity:  SeverityError,
				})
			}
			if wit, _ := task["work_item_type"].(string); wit != string(TypeTask) {
				issues = append(issues, Issue{
					FieldPath: taskPath + ".work_item_type",
					Message:   fmt.Sprintf("work_item_type must be %q, got %q", TypeTask, wit),
					Severity:  SeverityError,
				})
			}
		}
	}
	return issues
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && s != ""
}

func hasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
