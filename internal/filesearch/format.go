package filesearch

import (
	"fmt"
	"strings"
)

// displayCap limits how many files of each kind the formatted view
// lists.
const displayCap = 10

// FormatResults renders a search result for display in a chat client.
func FormatResults(res Result) string {
	if res.Summary.TotalFound == 0 {
		return strings.Join([]string{
			"No files found matching your criteria.",
			"",
			"Suggestions:",
			"  - try a broader search pattern",
			"  - check that files are in the searched locations",
			`  - use "all" for file_types or search_locations to widen the search`,
		}, "\n")
	}

	var sb strings.Builder
	sb.WriteString("FILE SEARCH RESULTS\n")
	sb.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&sb, "Pattern:   %q (empty matches all files)\n", res.Summary.Pattern)
	fmt.Fprintf(&sb, "Locations: %s\n", strings.Join(res.Summary.LocationsSearched, ", "))
	fmt.Fprintf(&sb, "Types:     %s\n", strings.Join(res.Summary.FileTypes, ", "))
	fmt.Fprintf(&sb, "Found:     %d file(s)\n", res.Summary.TotalFound)

	writeSection(&sb, "IMAGES", res.Images)
	writeSection(&sb, "TEXT FILES", res.TextFiles)

	sb.WriteString("\nNext steps:\n")
	sb.WriteString("  1. copy the full path of the file to process\n")
	sb.WriteString("  2. images: load_image_from_file, then process_feature_image\n")
	sb.WriteString("  3. text: read the file and call process_meeting_transcript\n")
	return sb.String()
}

func writeSection(sb *strings.Builder, title string, files []FileInfo) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s (%d):\n", title, len(files))

	shown := files
	if len(shown) > displayCap {
		shown = shown[:displayCap]
	}
	for _, f := range shown {
		fmt.Fprintf(sb, "  - %s (%.2f MB) in %s\n      %s\n", f.Name, f.SizeMB, f.Location, f.Path)
	}
	if extra := len(files) - len(shown); extra > 0 {
		fmt.Fprintf(sb, "  ... and %d more\n", extra)
	}
}
