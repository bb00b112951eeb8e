// Package catalog discovers candidate ROM component files for a region and
// classifies selected files into display categories.
package catalog

import (
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
)

// Source describes where and what to look for when filling one region
type Source struct {
	Region   int
	Roots    []string // searched recursively, in order
	Keywords []string // lower-case substrings matched against the base filename
}

// Candidate is an enumerated file together with the root it was found under
type Candidate struct {
	Path string
	Root string
}

// Name returns the base filename
func (c Candidate) Name() string {
	return filepath.Base(c.Path)
}

// DisplayKey is the filename prefixed by its immediate parent directory when
// that parent is not the search root, e.g. "msx2/bios.rom"
func (c Candidate) DisplayKey() string {
	dir := filepath.Dir(c.Path)
	base := filepath.Base(c.Path)
	if dir == "." || filepath.Clean(dir) == filepath.Clean(c.Root) {
		return base
	}
	return filepath.Base(dir) + "/" + base
}

// DefaultSources mirrors the cartridge slot conventions
var DefaultSources = []Source{
	{Region: 0, Roots: []string{"systemroms/machines"}, Keywords: []string{"bios", "logo"}},
	{Region: 1, Roots: []string{"systemroms/machines", "extras"}, Keywords: []string{"sub", "kanji", "ext", "msxd"}},
	{Region: 2, Roots: []string{"systemroms/machines"}, Keywords: []string{"disk"}},
	{Region: 3, Roots: []string{"systemroms/machines"}, Keywords: []string{"kun", "fm", "music"}},
}

// Matches reports whether the base filename of path contains any keyword
func (s Source) Matches(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	for _, k := range s.Keywords {
		if strings.Contains(name, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// Enumerate walks every root and returns matching regular files sorted by
// path. Missing roots and unreadable directories are skipped.
func Enumerate(src Source) []Candidate {
	var out []Candidate
	for _, root := range src.Roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Printf("catalog: skipping %s: %v", path, err)
				if d != nil && d.IsDir() && path != root {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if src.Matches(path) {
				out = append(out, Candidate{Path: path, Root: root})
			}
			return nil
		})
		if err != nil {
			log.Printf("catalog: walk %s: %v", root, err)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	log.Printf("catalog: region %d: %d candidate(s)", src.Region, len(out))
	return out
}

// SourceFor picks the source configured for region, nil when none
func SourceFor(sources []Source, region int) *Source {
	for i := range sources {
		if sources[i].Region == region {
			return &sources[i]
		}
	}
	return nil
}
