package derive

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarsolutions/ado-instructions/internal/workitem"
)

func TestAssembleEmptyInput(t *testing.T) {
	res := Assemble(Input{}, DefaultVocabulary(), DefaultOrganization())

	require.Len(t, res.Instructions.Epics, 1)
	epic := res.Instructions.Epics[0]
	assert.Equal(t, "Implement Core Functionality", epic.Title)
	assert.Equal(t, workitem.TypeEpic, epic.WorkItemType)
	assert.Equal(t, workitem.PriorityMedium, epic.Priority)
	require.Len(t, epic.Tasks, 3)
	for _, task := range epic.Tasks {
		assert.Equal(t, workitem.TypeTask, task.WorkItemType)
		assert.NotEmpty(t, task.ID)
		assert.NotEmpty(t, task.EstimatedEffort)
	}

	assert.Equal(t, "Omar Solutions Core Functionality Implementation", res.Instructions.ProjectName)
	assert.NotEmpty(t, res.Notices, "defaults taken should surface as notices")
}

func TestAssembleOutputAlwaysValidates(t *testing.T) {
	vocab := DefaultVocabulary()
	org := DefaultOrganization()

	inputs := []Input{
		{},
		{Features: []string{"Dashboard"}},
		{Features: []string{"Dashboard", "Reporting"}, Requirements: []string{"dashboard must refresh hourly"}},
		{Requirements: []string{"support single sign on"}},
		{Chain: Chain{IsChain: true, RootConcept: "Database to Frontend Workflow", Steps: []string{"Database", "Api", "Frontend"}}},
	}

	for _, in := range inputs {
		res := Assemble(in, vocab, org)
		report := workitem.Validate(res.Instructions)
		assert.True(t, report.IsValid, "issues: %+v", report.Issues)
	}
}

func TestAssembleDistributesRequirementsByOverlap(t *testing.T) {
	res := Assemble(Input{
		Features:     []string{"Authentication", "Dashboard"},
		Requirements: []string{"We need a login page", "the dashboard must refresh hourly"},
		ProjectName:  "Portal Revamp",
	}, DefaultVocabulary(), DefaultOrganization())

	require.Len(t, res.Instructions.Epics, 2)
	auth, dash := res.Instructions.Epics[0], res.Instructions.Epics[1]

	require.Len(t, auth.Tasks, 1)
	assert.Equal(t, "We need a login page", auth.Tasks[0].Title)
	require.Len(t, dash.Tasks, 1)
	assert.Equal(t, "the dashboard must refresh hourly", dash.Tasks[0].Title)

	assert.Equal(t, "Portal Revamp", res.Instructions.ProjectName)
	assert.Empty(t, res.Notices)
}

func TestAssembleUnmatchedRequirementAttachesToFirstEpic(t *testing.T) {
	res := Assemble(Input{
		Features:     []string{"Dashboard", "Reporting"},
		Requirements: []string{"single sign on for everyone"},
		ProjectName:  "p",
	}, DefaultVocabulary(), DefaultOrganization())

	require.Len(t, res.Instructions.Epics, 2)
	assert.Len(t, res.Instructions.Epics[0].Tasks, 1)

	matched := false
	for _, n := range res.Notices {
		if strings.Contains(n, "matched no feature") {
			matched = true
		}
	}
	assert.True(t, matched, "expected an attachment notice, got %v", res.Notices)
}

func TestAssembleCapsEpicCount(t *testing.T) {
	features := []string{"A", "B", "C", "D", "E", "F", "G"}
	res := Assemble(Input{Features: features, ProjectName: "p"}, DefaultVocabulary(), DefaultOrganization())

	assert.Len(t, res.Instructions.Epics, maxEpics)

	capped := false
	for _, n := range res.Notices {
		if strings.Contains(n, "capped") {
			capped = true
		}
	}
	assert.True(t, capped)
}

func TestAssembleChainCollapsesToSingleEpic(t *testing.T) {
	res := Assemble(Input{
		Priority: workitem.PriorityHigh,
		Chain: Chain{
			IsChain:     true,
			RootConcept: "Database to Frontend Workflow",
			Steps:       []string{"Database", "Api", "Frontend"},
		},
	}, DefaultVocabulary(), DefaultOrganization())

	require.Len(t, res.Instructions.Epics, 1)
	epic := res.Instructions.Epics[0]
	assert.Equal(t, "Database to Frontend Workflow", epic.Title)
	assert.Contains(t, epic.Tags, "dependency-chain")

	require.Len(t, epic.Tasks, 3)
	assert.Equal(t, "Implement Database Component", epic.Tasks[0].Title)
	assert.Equal(t, "Implement Api Component", epic.Tasks[1].Title)
	assert.Equal(t, "Implement Frontend Component", epic.Tasks[2].Title)
	for _, task := range epic.Tasks {
		assert.Equal(t, workitem.PriorityHigh, task.Priority)
		assert.Contains(t, task.Tags, "workflow-step")
		assert.Contains(t, task.Description, "Workflow step")
	}
}

func TestDeriveFromTextEndToEnd(t *testing.T) {
	text := "We need a login page and password reset. High priority."
	res := DeriveFromText(text, "", "", DefaultVocabulary(), DefaultOrganization(), nil)

	require.Len(t, res.Instructions.Epics, 1)
	epic := res.Instructions.Epics[0]
	assert.Equal(t, "Implement Authentication Functionality", epic.Title)
	assert.Equal(t, workitem.PriorityHigh, epic.Priority)

	require.Len(t, epic.Tasks, 2)
	assert.Contains(t, strings.ToLower(epic.Tasks[0].Title), "login")
	assert.Contains(t, strings.ToLower(epic.Tasks[1].Title), "password")

	assert.Equal(t, "Omar Solutions Authentication Implementation", res.Instructions.ProjectName)
	assert.True(t, workitem.Validate(res.Instructions).IsValid)
}

func TestDeriveFromTextChainInput(t *testing.T) {
	res := DeriveFromText("database → website → frontend", "Flow", "", DefaultVocabulary(), DefaultOrganization(), nil)

	require.Len(t, res.Instructions.Epics, 1)
	assert.Len(t, res.Instructions.Epics[0].Tasks, 3)
	assert.Equal(t, "Flow", res.Instructions.ProjectName)
	assert.Contains(t, res.Instructions.FeatureSummary, "Dependency chain")
}
