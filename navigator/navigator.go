// Package navigator moves the block cursor over the region grid.
//
// Regions are columns left to right; inside a region the local offset grows
// upward, so offset 0 (lowest address) is drawn at the bottom. There is no
// wraparound in any direction.
package navigator

import (
	"github.com/lixenwraith/omega-builder/layout"
	"github.com/lixenwraith/omega-builder/selection"
)

// Command is an operator action on the grid
type Command uint8

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdSelect
	CmdClear
	CmdTogglePatch1
	CmdTogglePatch2
	CmdExit
)

// Navigator tracks the cursor block
type Navigator struct {
	cursor int
}

// New creates a navigator with the cursor on block 0
func New() *Navigator {
	return &Navigator{}
}

// Cursor returns the global block index under the cursor
func (n *Navigator) Cursor() int {
	return n.cursor
}

// Region returns the region ordinal under the cursor
func (n *Navigator) Region() int {
	return layout.RegionOf(n.cursor)
}

// Local returns the local block offset under the cursor
func (n *Navigator) Local() int {
	return layout.LocalOffset(n.cursor)
}

// MoveTo places the cursor on block i, clamped to the grid
func (n *Navigator) MoveTo(i int) {
	n.cursor = max(0, min(i, layout.BlockCount-1))
}

// Up moves to the next higher block in the region
func (n *Navigator) Up() {
	if n.Local() < layout.BlocksPerRegion-1 {
		n.cursor++
	}
}

// Down moves to the next lower block in the region
func (n *Navigator) Down() {
	if n.Local() > 0 {
		n.cursor--
	}
}

// Left moves to the same offset in the previous region
func (n *Navigator) Left() {
	if n.Region() > 0 {
		n.cursor -= layout.BlocksPerRegion
	}
}

// Right moves to the same offset in the next region
func (n *Navigator) Right() {
	if n.Region() < layout.RegionCount-1 {
		n.cursor += layout.BlocksPerRegion
	}
}

// Move applies a movement command, reporting whether cmd was a movement
func (n *Navigator) Move(cmd Command) bool {
	switch cmd {
	case CmdUp:
		n.Up()
	case CmdDown:
		n.Down()
	case CmdLeft:
		n.Left()
	case CmdRight:
		n.Right()
	default:
		return false
	}
	return true
}

// Clear empties the store entry under the cursor, freeing its span if it is
// a span head
func (n *Navigator) Clear(s *selection.Store) error {
	return s.Clear(n.cursor)
}
