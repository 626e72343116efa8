package derive

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/omarsolutions/ado-instructions/internal/workitem"
)

// DefaultFeature is the generic feature label used when extraction finds
// nothing — the pipeline always produces a structurally valid set.
const DefaultFeature = "Core Functionality"

// maxEpics caps how many features become epics in a single set.
const maxEpics = 5

// effort estimates are a fixed lookup by task kind, not computed.
const (
	effortDesign    = "2-4 hours"
	effortImplement = "4-8 hours"
	effortTest      = "2-4 hours"
)

// Input carries everything the assembler needs. Features and
// Requirements typically come from Extract, but the image pipeline feeds
// the vision collaborator's structured output through the same shape.
type Input struct {
	Features     []string
	Requirements []string
	Priority     workitem.Priority
	ProjectName  string
	Chain        Chain
}

// Result is an assembled instruction set plus the fallback notices taken
// to produce it, so callers can tell "confidently extracted" apart from
// "defaulted" without error-based control flow.
type Result struct {
	Instructions workitem.InstructionSet
	Notices      []string
}

// Assemble synthesizes an instruction set: one epic per feature in
// extraction order, requirements distributed by keyword overlap, and a
// default task set wherever an epic would otherwise be empty. The output
// always satisfies the structural invariants the validator checks.
func Assemble(in Input, vocab Vocabulary, org OrganizationContext) Result {
	var notices []string

	if in.Priority == "" {
		in.Priority = workitem.PriorityMedium
	}

	if in.Chain.IsChain {
		return assembleChain(in, org)
	}

	features := in.Features
	if len(features) == 0 {
		features = []string{DefaultFeature}
		notices = append(notices, fmt.Sprintf("no features recognized; defaulted to %q", DefaultFeature))
	}
	if len(features) > maxEpics {
		notices = append(notices, fmt.Sprintf("capped %d features to %d epics", len(features), maxEpics))
		features = features[:maxEpics]
	}

	assignments, distNotices := distributeRequirements(in.Requirements, features, vocab)
	notices = append(notices, distNotices...)

	epics := make([]workitem.WorkItem, 0, len(features))
	for i, feature := range features {
		epic := newEpic(feature, in.Priority, org)
		reqs := assignments[i]
		if len(reqs) == 0 {
			epic.Tasks = defaultTasks(feature, in.Priority)
			notices = append(notices, fmt.Sprintf("no requirements matched %q; synthesized default tasks", feature))
		} else {
			for _, req := range reqs {
				epic.Tasks = append(epic.Tasks, newRequirementTask(req, feature, in.Priority))
			}
		}
		epics = append(epics, epic)
	}

	projectName := in.ProjectName
	if projectName == "" {
		projectName = fmt.Sprintf("%s %s Implementation", org.Name, features[0])
		notices = append(notices, fmt.Sprintf("project name defaulted to %q", projectName))
	}

	return Result{
		Instructions: workitem.InstructionSet{
			ProjectName:         projectName,
			FeatureSummary:      featureSummary(features, in.Requirements, org),
			Epics:               epics,
			OrganizationContext: org.Name,
		},
		Notices: notices,
	}
}

// DeriveFromText runs the full text pipeline: extract, classify, detect
// dependency chains, and assemble. This is the single entry point the
// transcript, generate, and image-fallback tools share. The logger may
// be nil.
func DeriveFromText(text, projectName, priorityOverride string, vocab Vocabulary, org OrganizationContext, log *zap.Logger) Result {
	ex := Extract(text, vocab)
	return Assemble(Input{
		Features:     ex.Features,
		Requirements: ex.Requirements,
		Priority:     Classify(text, priorityOverride, vocab, log),
		ProjectName:  projectName,
		Chain:        DetectChain(text, vocab),
	}, vocab, org)
}

// assembleChain collapses a detected dependency workflow into ONE epic
// with sequential step tasks, preserving the order the arrows showed.
func assembleChain(in Input, org OrganizationContext) Result {
	epic := newEpic(in.Chain.RootConcept, in.Priority, org)
	epic.Title = in.Chain.RootConcept
	epic.Description = fmt.Sprintf("Deliver the %s workflow end to end for %s", in.Chain.RootConcept, org.Name)
	epic.Tags = []string{"workflow", "dependency-chain", "epic"}

	for i, step := range in.Chain.Steps {
		epic.Tasks = append(epic.Tasks, workitem.WorkItem{
			ID:              workitem.NewID(),
			Title:           fmt.Sprintf("Implement %s Component", step),
			Description:     fmt.Sprintf("Workflow step %d of %d in the %s sequence", i+1, len(in.Chain.Steps), in.Chain.RootConcept),
			WorkItemType:    workitem.TypeTask,
			Priority:        in.Priority,
			EstimatedEffort: effortImplement,
			Tags:            []string{"workflow-step", fmt.Sprintf("step-%d", i+1)},
		})
	}

	projectName := in.ProjectName
	var notices []string
	if projectName == "" {
		projectName = fmt.Sprintf("%s %s", org.Name, in.Chain.RootConcept)
		notices = append(notices, fmt.Sprintf("project name defaulted to %q", projectName))
	}

	return Result{
		Instructions: workitem.InstructionSet{
			ProjectName: projectName,
			FeatureSummary: fmt.Sprintf("Dependency chain workflow with %d sequential steps: %s",
				len(in.Chain.Steps), strings.Join(in.Chain.Steps, " → ")),
			Epics:               []workitem.WorkItem{epic},
			OrganizationContext: org.Name,
		},
		Notices: notices,
	}
}

// distributeRequirements assigns each requirement to the feature with the
// strongest keyword overlap. A requirement matching no feature attaches
// to the first epic — a documented compatibility rule, surfaced as a
// notice rather than silently dropped.
func distributeRequirements(requirements, features []string, vocab Vocabulary) (map[int][]string, []string) {
	assignments := make(map[int][]string)
	var notices []string

	for _, req := range requirements {
		best, bestScore := 0, 0
		for i, feature := range features {
			if score := overlapScore(req, feature, vocab); score > bestScore {
				best, bestScore = i, score
			}
		}
		if bestScore == 0 && len(features) > 1 {
			notices = append(notices, fmt.Sprintf("requirement %q matched no feature; attached to %q", req, features[0]))
		}
		assignments[best] = append(assignments[best], req)
	}
	return assignments, notices
}

// overlapScore measures how strongly a requirement relates to a feature:
// shared words with the label plus hits on the vocabulary keywords that
// map to that label.
func overlapScore(requirement, feature string, vocab Vocabulary) int {
	reqLower := strings.ToLower(requirement)
	score := 0

	for _, word := range strings.Fields(strings.ToLower(feature)) {
		if strings.Contains(reqLower, word) {
			score++
		}
	}
	for _, fk := range vocab.Features {
		if fk.Label == feature && strings.Contains(reqLower, fk.Keyword) {
			score++
		}
	}
	return score
}

func newEpic(feature string, priority workitem.Priority, org OrganizationContext) workitem.WorkItem {
	title := fmt.Sprintf("Implement %s Functionality", feature)
	if strings.HasSuffix(feature, "Functionality") {
		title = fmt.Sprintf("Implement %s", feature)
	}
	return workitem.WorkItem{
		ID:           workitem.NewID(),
		Title:        title,
		Description:  fmt.Sprintf("Develop and deploy %s capability for the %s platform", feature, org.Name),
		WorkItemType: workitem.TypeEpic,
		Priority:     priority,
		AcceptanceCriteria: []string{
			fmt.Sprintf("%s functionality is implemented according to specifications", feature),
			fmt.Sprintf("%s passes all unit and integration tests", feature),
			fmt.Sprintf("%s is deployed successfully to the %s", feature, org.Platform),
			fmt.Sprintf("%s documentation is complete and accessible", feature),
		},
		BusinessValue: fmt.Sprintf("Enhances %s platform capabilities in %s, supporting our focus on %s at scale",
			org.Name, strings.ToLower(feature), strings.Join(org.FocusAreas, ", ")),
		Tags: []string{"epic", "feature"},
	}
}

func newRequirementTask(requirement, feature string, priority workitem.Priority) workitem.WorkItem {
	return workitem.WorkItem{
		ID:              workitem.NewID(),
		Title:           requirement,
		Description:     fmt.Sprintf("Implementation task for %s: %s", feature, requirement),
		WorkItemType:    workitem.TypeTask,
		Priority:        priority,
		EstimatedEffort: effortImplement,
		Tags:            []string{"task", "requirement"},
	}
}

// defaultTasks synthesizes the minimal task trio guaranteeing every epic
// has at least one task.
func defaultTasks(feature string, priority workitem.Priority) []workitem.WorkItem {
	mk := func(title, effort string) workitem.WorkItem {
		return workitem.WorkItem{
			ID:              workitem.NewID(),
			Title:           title,
			Description:     fmt.Sprintf("Default implementation task for %s", feature),
			WorkItemType:    workitem.TypeTask,
			Priority:        priority,
			EstimatedEffort: effort,
			Tags:            []string{"task", "default"},
		}
	}
	return []workitem.WorkItem{
		mk(fmt.Sprintf("Design %s architecture", feature), effortDesign),
		mk(fmt.Sprintf("Implement %s", feature), effortImplement),
		mk(fmt.Sprintf("Test %s", feature), effortTest),
	}
}

// featureSummary renders the one-line project overview.
func featureSummary(features, requirements []string, org OrganizationContext) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "This project implements %d main feature(s) for the %s platform: ", len(features), org.Name)

	shown := features
	if len(shown) > 3 {
		shown = shown[:3]
	}
	sb.WriteString(strings.Join(shown, ", "))
	if extra := len(features) - len(shown); extra > 0 {
		fmt.Fprintf(&sb, " and %d additional feature(s)", extra)
	}

	if len(requirements) > 0 {
		shownReqs := requirements
		if len(shownReqs) > 2 {
			shownReqs = shownReqs[:2]
		}
		fmt.Fprintf(&sb, ". Key requirements include: %s", strings.Join(shownReqs, "; "))
	}
	return sb.String()
}
