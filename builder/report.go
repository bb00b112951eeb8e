package builder

import (
	"fmt"
	"log"
)

// IssueKind classifies a non-fatal build problem
type IssueKind uint8

const (
	IssueRead      IssueKind = iota // source file could not be opened or read
	IssueTruncated                  // source file larger than the blocks available to it
	IssueShadowed                   // selection hidden by an earlier file's span
	IssuePatch                      // patch skipped
)

var issueNames = [...]string{
	IssueRead:      "read",
	IssueTruncated: "truncated",
	IssueShadowed:  "shadowed",
	IssuePatch:     "patch",
}

func (k IssueKind) String() string {
	if int(k) < len(issueNames) {
		return issueNames[k]
	}
	return fmt.Sprintf("issue(%d)", k)
}

// Issue is one operator-visible build message
type Issue struct {
	Kind  IssueKind
	Block int // -1 for patches
	Path  string
	Err   error
}

func (i Issue) String() string {
	if i.Block < 0 {
		return fmt.Sprintf("%s: %s: %v", i.Kind, i.Path, i.Err)
	}
	return fmt.Sprintf("%s: block %02d: %s: %v", i.Kind, i.Block+1, i.Path, i.Err)
}

// Report collects everything that happened during a build
type Report struct {
	Issues  []Issue
	Applied []AppliedPatch
}

// AppliedPatch records a patch written into the image
type AppliedPatch struct {
	Name   string
	Offset int
	Length int
}

func (a AppliedPatch) String() string {
	return fmt.Sprintf("Applied %s (%d bytes) at offset %d", a.Name, a.Length, a.Offset)
}

func (r *Report) add(kind IssueKind, block int, path string, err error) {
	is := Issue{Kind: kind, Block: block, Path: path, Err: err}
	r.Issues = append(r.Issues, is)
	log.Printf("builder: %s", is)
}

// HasKind reports whether any issue of kind was recorded
func (r *Report) HasKind(kind IssueKind) bool {
	for _, is := range r.Issues {
		if is.Kind == kind {
			return true
		}
	}
	return false
}
