// Package vision bridges image analysis output into the work item
// pipeline. The analysis itself is produced by an external vision model;
// this package owns the request boundary, the response shape, and the
// conversion into an instruction set.
package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/omarsolutions/ado-instructions/internal/derive"
	"github.com/omarsolutions/ado-instructions/internal/workitem"
)

// ErrNotConfigured is returned when no vision backend is available.
var ErrNotConfigured = errors.New("vision analysis is not configured: set AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY")

// Analyzer produces a structured analysis for an image. Implementations
// wrap a vision model; the Disabled analyzer stands in when none is
// configured.
type Analyzer interface {
	Analyze(ctx context.Context, img Image, description string) (Analysis, error)
}

// Disabled is the Analyzer used when vision is not configured. Every
// call fails with ErrNotConfigured, which callers turn into the
// text-pipeline fallback.
type Disabled struct{}

func (Disabled) Analyze(context.Context, Image, string) (Analysis, error) {
	return Analysis{}, ErrNotConfigured
}

// Analysis is the structured result of analyzing a workflow diagram or
// project visual.
type Analysis struct {
	ProjectName      string           `json:"project_name"`
	WorkflowAnalysis WorkflowAnalysis `json:"workflow_analysis"`
	Features         []Feature        `json:"features"`
	AnalysisNotes    string           `json:"analysis_notes"`
}

// WorkflowAnalysis captures the dependency-arrow reading of a diagram.
type WorkflowAnalysis struct {
	ArrowsDetected     bool     `json:"arrows_detected"`
	MainWorkflowStart  string   `json:"main_workflow_start"`
	DependencySequence []string `json:"dependency_sequence"`
	FlowDirection      string   `json:"flow_direction"`
}

// Feature is one identified capability; the main epic candidate carries
// IsMainEpic.
type Feature struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Priority     string        `json:"priority"`
	IsMainEpic   bool          `json:"is_main_epic"`
	Requirements []Requirement `json:"requirements"`
}

// Requirement is one actionable step under a feature.
type Requirement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DependsOn   string `json:"depends_on"`
}

// ParseAnalysis extracts an Analysis from raw model output. Models wrap
// JSON in prose or code fences, so the parser takes the outermost brace
// pair. It never fails: unparseable content degrades to a single-feature
// analysis carrying the text, matching the rest of the pipeline's
// always-produce-something contract.
func ParseAnalysis(content string) Analysis {
	if raw, ok := extractJSONObject(content); ok {
		var a Analysis
		if err := json.Unmarshal([]byte(raw), &a); err == nil && len(a.Features) > 0 {
			return a
		}
	}

	text := strings.TrimSpace(content)
	if len(text) > 500 {
		text = text[:500] + "..."
	}
	return Analysis{
		ProjectName: "Image Analysis Project",
		Features: []Feature{{
			Name:        "Visual Requirements",
			Description: text,
			Priority:    string(workitem.PriorityMedium),
			Requirements: []Requirement{{
				Title:       "Implement visual requirements",
				Description: "Based on image analysis",
				Priority:    string(workitem.PriorityMedium),
			}},
		}},
		AnalysisNotes: fmt.Sprintf("analysis was not structured JSON; response length %d characters", len(content)),
	}
}

// extractJSONObject returns the substring from the first '{' to the last
// '}' inclusive.
func extractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// BuildInstructions converts an analysis into an instruction set: ONE
// epic from the main workflow feature, one task per requirement in
// sequence order. Task priorities marked Medium by the model are
// re-scored against the task description.
func BuildInstructions(a Analysis, vocab derive.Vocabulary, org derive.OrganizationContext) (derive.Result, error) {
	if len(a.Features) == 0 {
		return derive.Result{}, errors.New("no features could be extracted from the image")
	}

	var notices []string
	main := a.Features[0]
	for _, f := range a.Features {
		if f.IsMainEpic {
			main = f
			break
		}
	}
	if len(a.Features) > 1 {
		notices = append(notices, fmt.Sprintf("collapsed %d features into the main workflow epic %q", len(a.Features), main.Name))
	}

	epic := workitem.WorkItem{
		ID:           workitem.NewID(),
		Title:        titleOrDefault(main.Name, "Workflow Implementation"),
		Description:  epicDescription(main, a.WorkflowAnalysis),
		WorkItemType: workitem.TypeEpic,
		Priority:     parsePriorityOrDefault(main.Priority, workitem.PriorityHigh),
		Tags:         []string{"workflow", "dependency-chain", "epic"},
	}

	seq := a.WorkflowAnalysis.DependencySequence
	for i, req := range main.Requirements {
		desc := req.Description
		if req.DependsOn != "" {
			desc += fmt.Sprintf("\nDepends on completion of %q", req.DependsOn)
		}
		if i < len(seq) {
			desc += fmt.Sprintf("\nWorkflow step %d of %d: %s", i+1, len(seq), seq[i])
		}

		priority := parsePriorityOrDefault(req.Priority, workitem.PriorityMedium)
		if priority == workitem.PriorityMedium {
			priority = derive.Classify(req.Description, "", vocab, nil)
		}

		epic.Tasks = append(epic.Tasks, workitem.WorkItem{
			ID:              workitem.NewID(),
			Title:           titleOrDefault(req.Title, fmt.Sprintf("Workflow Step %d", i+1)),
			Description:     desc,
			WorkItemType:    workitem.TypeTask,
			Priority:        priority,
			EstimatedEffort: "4-8 hours",
			Tags:            []string{"workflow-step", "dependency-task", fmt.Sprintf("step-%d", i+1)},
		})
	}
	if len(epic.Tasks) == 0 {
		notices = append(notices, fmt.Sprintf("analysis listed no requirements for %q; epic has no tasks", main.Name))
	}

	return derive.Result{
		Instructions: workitem.InstructionSet{
			ProjectName:         titleOrDefault(a.ProjectName, "Workflow Analysis Project"),
			FeatureSummary:      analysisSummary(a, main),
			Epics:               []workitem.WorkItem{epic},
			OrganizationContext: org.Name,
		},
		Notices: notices,
	}, nil
}

func titleOrDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}

func parsePriorityOrDefault(s string, fallback workitem.Priority) workitem.Priority {
	if p, ok := workitem.ParsePriority(s); ok {
		return p
	}
	return fallback
}

func epicDescription(main Feature, wf WorkflowAnalysis) string {
	if strings.TrimSpace(main.Description) != "" {
		return main.Description
	}
	flow := wf.FlowDirection
	if flow == "" {
		flow = "sequential"
	}
	return fmt.Sprintf("Main workflow implementation based on dependency analysis. Flow detected: %s.", flow)
}

func analysisSummary(a Analysis, main Feature) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Derived from image analysis: %s", main.Name)
	if a.WorkflowAnalysis.ArrowsDetected && len(a.WorkflowAnalysis.DependencySequence) > 0 {
		fmt.Fprintf(&sb, ". Workflow sequence: %s",
			strings.Join(a.WorkflowAnalysis.DependencySequence, " → "))
	}
	if a.AnalysisNotes != "" {
		fmt.Fprintf(&sb, ". Notes: %s", a.AnalysisNotes)
	}
	return sb.String()
}
