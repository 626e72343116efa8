package workitem

import (
	"fmt"
	"strings"
)

// FormatSummary renders an InstructionSet into a human-readable digest for
// user review: project name, per-epic breakdown with task lines, and
// totals. Pure projection — no derivation, no mutation of the input.
func FormatSummary(set InstructionSet) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("ADO WORK ITEMS SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "Project: %s\n", set.ProjectName)
	if set.OrganizationContext != "" {
		fmt.Fprintf(&sb, "Organization: %s\n", set.OrganizationContext)
	}
	if set.FeatureSummary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n", set.FeatureSummary)
	}
	sb.WriteString("\n")

	if len(set.Epics) == 0 {
		sb.WriteString("No work items were generated for this input.\n")
		sb.WriteString(strings.Repeat("=", 60) + "\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "Structure: %d Epic(s), %d Task(s)\n\n", len(set.Epics), set.TaskCount())

	for i, epic := range set.Epics {
		fmt.Fprintf(&sb, "Epic %d: %s\n", i+1, epic.Title)
		fmt.Fprintf(&sb, "   Priority: %s | Tasks: %d\n", epic.Priority, len(epic.Tasks))
		if desc := truncate(epic.Description, 80); desc != "" {
			fmt.Fprintf(&sb, "   Description: %s\n", desc)
		}
		for j, task := range epic.Tasks {
			connector := "├──"
			if j == len(epic.Tasks)-1 {
				connector = "└──"
			}
			fmt.Fprintf(&sb, "   %s %d. %s [%s]\n", connector, j+1, task.Title, task.Priority)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("Please review the work items above.\n")
	sb.WriteString("   - Are these instructions correct?\n")
	sb.WriteString("   - Should any priorities be adjusted?\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	return sb.String()
}

// truncate shortens s to at most maxLen runes, appending an ellipsis
// marker when content was cut. Cutting on a rune boundary keeps
// multi-byte input valid UTF-8.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
