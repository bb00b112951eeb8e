package selection

import "github.com/lixenwraith/omega-builder/layout"

// Resolution describes how the file at a block maps onto the grid
type Resolution struct {
	Index     int
	Span      int   // blocks occupied, always >= 1
	Needed    int   // blocks the file would fill without the region limit
	Size      int64 // file size in bytes, 0 when unreadable
	Truncated bool  // file did not fit and only Span blocks of it are used
}

// Resolve returns how many contiguous blocks starting at i are consumed by
// the file assigned there. Empty and unreadable slots resolve to 1.
func Resolve(s *Store, i int) int {
	return Describe(s, i).Span
}

// Describe resolves block i and reports whether the file was truncated
func Describe(s *Store, i int) Resolution {
	if !s.Live(i) {
		return Resolution{Index: i, Span: 1, Needed: 1}
	}
	size := s.Size(i)
	needed := layout.BlocksNeeded(size)
	span := layout.SpanFor(i, size)
	return Resolution{
		Index:     i,
		Span:      span,
		Needed:    needed,
		Size:      size,
		Truncated: needed > span,
	}
}

// Group is one run of blocks on the grid: a file with its span, or a single
// empty block
type Group struct {
	Resolution
	Selection FileSelection
}

// Live reports whether the group holds a file
func (g Group) Live() bool {
	return !g.Selection.Empty()
}

// Contains reports whether block i falls inside the group
func (g Group) Contains(i int) bool {
	return i >= g.Index && i < g.Index+g.Span
}

// Walk partitions the 16 blocks into groups in block order, advancing by each
// file's span. Live entries inside an earlier span are skipped; see Shadowed.
func Walk(s *Store) []Group {
	groups := make([]Group, 0, layout.BlockCount)
	for i := 0; i < layout.BlockCount; {
		r := Describe(s, i)
		groups = append(groups, Group{Resolution: r, Selection: s.Get(i)})
		i += r.Span
	}
	return groups
}

// Owner returns the group covering block i
func Owner(groups []Group, i int) (Group, bool) {
	for _, g := range groups {
		if g.Contains(i) {
			return g, true
		}
	}
	return Group{}, false
}

// Shadowed lists blocks that hold a selection but are covered by the span of
// an earlier file. Such selections are ignored by rendering and assembly.
func Shadowed(s *Store) []int {
	var out []int
	for _, g := range Walk(s) {
		for j := g.Index + 1; j < g.Index+g.Span; j++ {
			if s.Live(j) {
				out = append(out, j)
			}
		}
	}
	return out
}

// TotalKB sums the KiB occupied by all live groups
func TotalKB(s *Store) int {
	total := 0
	for _, g := range Walk(s) {
		if g.Live() {
			total += g.Span * layout.BlockSize / 1024
		}
	}
	return total
}
