package vision

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarsolutions/ado-instructions/internal/derive"
	"github.com/omarsolutions/ado-instructions/internal/workitem"
)

const sampleAnalysis = `{
  "project_name": "Website Development Workflow",
  "workflow_analysis": {
    "arrows_detected": true,
    "main_workflow_start": "Database",
    "dependency_sequence": ["Build database", "Develop frontend"],
    "flow_direction": "left-to-right"
  },
  "features": [
    {
      "name": "Build a website",
      "description": "End to end website delivery",
      "priority": "High",
      "is_main_epic": true,
      "requirements": [
        {"title": "Build database", "description": "Schema and migrations", "priority": "High"},
        {"title": "Develop frontend", "description": "User facing pages", "priority": "Medium"}
      ]
    }
  ],
  "analysis_notes": "clear dependency chain"
}`

func TestParseAnalysisStructuredJSON(t *testing.T) {
	a := ParseAnalysis(sampleAnalysis)

	assert.Equal(t, "Website Development Workflow", a.ProjectName)
	assert.True(t, a.WorkflowAnalysis.ArrowsDetected)
	require.Len(t, a.Features, 1)
	assert.True(t, a.Features[0].IsMainEpic)
	assert.Len(t, a.Features[0].Requirements, 2)
}

func TestParseAnalysisJSONInsideProse(t *testing.T) {
	content := "Here is the analysis you asked for:\n```json\n" + sampleAnalysis + "\n```\nLet me know if you need more."
	a := ParseAnalysis(content)

	assert.Equal(t, "Website Development Workflow", a.ProjectName)
	require.Len(t, a.Features, 1)
}

func TestParseAnalysisFallsBackOnPlainText(t *testing.T) {
	a := ParseAnalysis("The diagram shows a login form with two buttons.")

	assert.Equal(t, "Image Analysis Project", a.ProjectName)
	require.Len(t, a.Features, 1)
	assert.Contains(t, a.Features[0].Description, "login form")
	require.Len(t, a.Features[0].Requirements, 1)
}

func TestParseAnalysisFallsBackOnBrokenJSON(t *testing.T) {
	a := ParseAnalysis(`{"project_name": "x", "features": [`)

	require.Len(t, a.Features, 1)
	assert.NotEmpty(t, a.Features[0].Requirements)
}

func TestBuildInstructionsSingleEpicHierarchy(t *testing.T) {
	a := ParseAnalysis(sampleAnalysis)
	res, err := BuildInstructions(a, derive.DefaultVocabulary(), derive.DefaultOrganization())
	require.NoError(t, err)

	set := res.Instructions
	assert.Equal(t, "Website Development Workflow", set.ProjectName)
	require.Len(t, set.Epics, 1)

	epic := set.Epics[0]
	assert.Equal(t, "Build a website", epic.Title)
	assert.Equal(t, workitem.PriorityHigh, epic.Priority)
	assert.Contains(t, epic.Tags, "dependency-chain")

	require.Len(t, epic.Tasks, 2)
	assert.Equal(t, "Build database", epic.Tasks[0].Title)
	assert.Contains(t, epic.Tasks[0].Description, "Workflow step 1 of 2")
	assert.Contains(t, epic.Tasks[0].Tags, "step-1")
	assert.Contains(t, epic.Tasks[1].Tags, "step-2")

	assert.True(t, workitem.Validate(set).IsValid)
}

func TestBuildInstructionsPicksMainEpic(t *testing.T) {
	a := Analysis{
		ProjectName: "Multi",
		Features: []Feature{
			{Name: "Side quest", Requirements: []Requirement{{Title: "t"}}},
			{Name: "Main flow", IsMainEpic: true, Requirements: []Requirement{{Title: "u"}}},
		},
	}
	res, err := BuildInstructions(a, derive.DefaultVocabulary(), derive.DefaultOrganization())
	require.NoError(t, err)

	require.Len(t, res.Instructions.Epics, 1)
	assert.Equal(t, "Main flow", res.Instructions.Epics[0].Title)
	assert.NotEmpty(t, res.Notices)
}

func TestBuildInstructionsRescoresMediumTasks(t *testing.T) {
	a := Analysis{
		Features: []Feature{{
			Name: "Security",
			Requirements: []Requirement{
				{Title: "Fix auth bypass", Description: "urgent security hole, fix asap", Priority: "Medium"},
			},
		}},
	}
	res, err := BuildInstructions(a, derive.DefaultVocabulary(), derive.DefaultOrganization())
	require.NoError(t, err)

	require.Len(t, res.Instructions.Epics[0].Tasks, 1)
	assert.Equal(t, workitem.PriorityCritical, res.Instructions.Epics[0].Tasks[0].Priority)
}

func TestBuildInstructionsNoFeatures(t *testing.T) {
	_, err := BuildInstructions(Analysis{}, derive.DefaultVocabulary(), derive.DefaultOrganization())
	assert.Error(t, err)
}

func TestDisabledAnalyzer(t *testing.T) {
	_, err := Disabled{}.Analyze(context.Background(), Image{}, "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
