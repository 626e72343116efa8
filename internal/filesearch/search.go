// Package filesearch locates image and text files in common user
// directories so callers can feed them to the processing tools without
// knowing exact paths.
package filesearch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// maxResults bounds a single search so a walk over a huge home
// directory cannot produce an unbounded response.
const maxResults = 500

var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".bmp": true, ".webp": true, ".tiff": true, ".svg": true,
}

var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".doc": true, ".docx": true,
	".pdf": true, ".rtf": true, ".csv": true,
}

// FileInfo describes one matched file.
type FileInfo struct {
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	Location  string  `json:"location"`
	SizeMB    float64 `json:"size_mb"`
	Extension string  `json:"extension"`
}

// Summary echoes the search parameters and the hit count.
type Summary struct {
	Pattern           string   `json:"pattern"`
	LocationsSearched []string `json:"locations_searched"`
	FileTypes         []string `json:"file_types"`
	TotalFound        int      `json:"total_found"`
}

// Result holds matched files categorized by kind.
type Result struct {
	Images    []FileInfo `json:"images"`
	TextFiles []FileInfo `json:"text_files"`
	Summary   Summary    `json:"search_summary"`
}

// Searcher resolves location names to directories. The map is
// injectable so tests can point the well-known names at fixtures.
type Searcher struct {
	Locations map[string]string
}

// NewSearcher builds a searcher over the user's common directories.
func NewSearcher() *Searcher {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return &Searcher{Locations: map[string]string{
		"desktop":   filepath.Join(home, "Desktop"),
		"documents": filepath.Join(home, "Documents"),
		"downloads": filepath.Join(home, "Downloads"),
		"pictures":  filepath.Join(home, "Pictures"),
		"current":   cwd,
	}}
}

// Search walks the requested locations for files matching the pattern
// and file types. It never fails: unreadable directories and files are
// skipped, and an empty result carries the summary of what was tried.
//
// pattern may be empty (all files), a glob like "*.png", or a plain
// substring matched case-insensitively against file names. fileTypes
// and locations are comma-separated lists; "all" expands either.
func (s *Searcher) Search(pattern, fileTypes, locations string) Result {
	wantImages, wantText, typeList := parseFileTypes(fileTypes)
	locs := s.resolveLocations(locations)

	res := Result{Summary: Summary{
		Pattern:           pattern,
		LocationsSearched: locationNames(locs),
		FileTypes:         typeList,
	}}

	total := 0
	for _, loc := range locs {
		filepath.WalkDir(loc.dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if total >= maxResults {
				return filepath.SkipAll
			}

			ext := strings.ToLower(filepath.Ext(path))
			isImage := imageExtensions[ext]
			isText := textExtensions[ext]
			if (!isImage || !wantImages) && (!isText || !wantText) {
				return nil
			}
			if !matchesPattern(d.Name(), pattern) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				return nil
			}
			fi := FileInfo{
				Name:      d.Name(),
				Path:      path,
				Location:  loc.name,
				SizeMB:    float64(info.Size()) / (1024 * 1024),
				Extension: ext,
			}
			if isImage {
				res.Images = append(res.Images, fi)
			} else {
				res.TextFiles = append(res.TextFiles, fi)
			}
			total++
			return nil
		})
	}

	sortByName(res.Images)
	sortByName(res.TextFiles)
	res.Summary.TotalFound = len(res.Images) + len(res.TextFiles)
	return res
}

type location struct {
	name string
	dir  string
}

func (s *Searcher) resolveLocations(locations string) []location {
	if locations == "" {
		locations = "desktop,documents,downloads"
	}
	names := splitList(locations)

	if contains(names, "all") {
		names = []string{"desktop", "documents", "downloads", "pictures", "current"}
	}

	var out []location
	for _, name := range names {
		dir, ok := s.Locations[name]
		if !ok {
			continue
		}
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		out = append(out, location{name: name, dir: dir})
	}
	return out
}

func parseFileTypes(fileTypes string) (images, text bool, list []string) {
	if fileTypes == "" {
		fileTypes = "images,text"
	}
	list = splitList(fileTypes)
	if contains(list, "all") {
		return true, true, list
	}
	return contains(list, "images"), contains(list, "text"), list
}

// matchesPattern applies glob matching when the pattern has wildcards,
// otherwise a case-insensitive substring check on the file name.
func matchesPattern(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	if strings.ContainsAny(pattern, "*?") {
		ok, err := filepath.Match(strings.ToLower(pattern), strings.ToLower(name))
		return err == nil && ok
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func locationNames(locs []location) []string {
	names := make([]string, 0, len(locs))
	for _, l := range locs {
		names = append(names, l.name)
	}
	return names
}

func sortByName(files []FileInfo) {
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
	})
}
