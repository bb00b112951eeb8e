package ui

import (
	"fmt"
	"path/filepath"

	"github.com/lixenwraith/omega-builder/catalog"
	"github.com/lixenwraith/omega-builder/draw"
	"github.com/lixenwraith/omega-builder/layout"
	"github.com/lixenwraith/omega-builder/selection"
)

// Screen geometry
const (
	gridX      = 2
	gridY      = 2
	addrW      = 12
	cellTextW  = 10
	cellW      = cellTextW + 4 // "[ text ]"
	colStride  = 16
	patchesY   = gridY + layout.BlocksPerRegion + 1
	listY      = patchesY + 4
	slotLabelW = 8
	listLeftW  = 22
	listNameW  = 28
	totalW     = 60
)

const helpLine = "Arrows move  Enter select  Del clear  F2/F3 patches  Esc save and exit"

// draw paints the whole session without clearing or showing the screen
func (s *Session) draw() {
	full := draw.Full(s.screen)
	full.Text(0, 0, "Omega MSX ROM Builder", draw.StyleTitle)

	groups := selection.Walk(s.store)
	s.drawGrid(full, groups)
	s.drawPatches(full)
	y := s.drawList(full, groups)
	s.drawWarnings(full, y+1)

	full.Text(0, full.H-1, draw.Truncate(helpLine, full.W), draw.StyleDim)
}

func columnX(region int) int {
	return gridX + addrW + region*colStride
}

func rowY(local int) int {
	return gridY + (layout.BlocksPerRegion - 1 - local)
}

// drawGrid renders the four region columns, lowest address at the bottom.
// Every block covered by a file shows the file's category.
func (s *Session) drawGrid(r draw.Region, groups []selection.Group) {
	for local, label := range layout.AddrLabels {
		r.Text(gridX, rowY(local), label, draw.StyleDefault)
	}
	for _, reg := range layout.Regions {
		x := columnX(reg.Ordinal) + (cellW-len(reg.Name))/2
		r.Text(x, gridY-1, reg.Name, draw.StyleDim)
	}

	for _, g := range groups {
		text, style := "", draw.StyleDefault
		if g.Live() {
			cat := catalog.Classify(layout.RegionOf(g.Index), g.Selection.Name, g.Selection.Path)
			text, style = cat.Label, draw.KindStyle(cat.Kind)
		}
		for i := g.Index; i < g.Index+g.Span; i++ {
			cellStyle := style
			if i == s.nav.Cursor() {
				cellStyle = draw.StyleHighlight
			}
			x, y := columnX(layout.RegionOf(i)), rowY(layout.LocalOffset(i))
			r.Text(x, y, "[", draw.StyleDefault)
			r.Text(x+1, y, " "+draw.Center(text, cellTextW)+" ", cellStyle)
			r.Text(x+cellW-1, y, "]", draw.StyleDefault)
		}
	}
}

func patchLine(name string, enabled bool, key string) string {
	mark := " "
	if enabled {
		mark = "X"
	}
	return fmt.Sprintf("[%s] %s [%s]", mark, name, key)
}

func (s *Session) drawPatches(r draw.Region) {
	r.Text(0, patchesY, "Available patches:", draw.StyleTitle)
	keys := []string{"F2", "F3"}
	for i, p := range s.opts.Patches {
		if i >= len(keys) {
			break
		}
		r.Text(2, patchesY+1+i, patchLine(p.Name, p.Enabled, keys[i]), draw.StyleDefault)
	}
}

// ListLabel is the parent directory and filename of a selection, or the bare
// filename when the file sits in the working directory
func ListLabel(sel selection.FileSelection) string {
	dir := filepath.Base(filepath.Dir(sel.Path))
	if dir == "" || dir == "." || dir == string(filepath.Separator) {
		return sel.Name
	}
	return dir + "/" + sel.Name
}

// drawList renders the selected files and the total line, returning the row
// after the last line drawn
func (s *Session) drawList(r draw.Region, groups []selection.Group) int {
	r.Text(0, listY, fmt.Sprintf("Selected files (%d):", s.store.Count()), draw.StyleTitle)
	y := listY + 1
	for _, g := range groups {
		if !g.Live() {
			continue
		}
		region := layout.RegionFor(g.Index)
		cat := catalog.Classify(region.Ordinal, g.Selection.Name, g.Selection.Path)
		style := draw.KindStyle(cat.Kind)

		left := fmt.Sprintf("%-*s %-9s:", slotLabelW, region.Name, layout.BlockLabel(g.Index, g.Span))
		x := r.Text(2, y, draw.Pad(left, listLeftW), style)
		x = r.Text(x, y, " "+draw.Pad(ListLabel(g.Selection), listNameW), style)
		r.Text(x, y, fmt.Sprintf("  (%d KB)", g.Size/1024), style)
		y++
	}

	total := fmt.Sprintf("%d KB ", selection.TotalKB(s.store))
	r.Text(2, y, draw.Pad("Total size        :", totalW-len(total))+total, draw.StyleTotal)
	return y + 1
}

// drawWarnings lists selections hidden by an earlier file's span
func (s *Session) drawWarnings(r draw.Region, y int) {
	for _, i := range selection.Shadowed(s.store) {
		if y >= r.H-1 {
			return
		}
		msg := fmt.Sprintf("Block %02d ignored: %s is covered by an earlier file", i+1, s.store.Get(i).Name)
		r.Text(2, y, draw.Truncate(msg, r.W-2), draw.StyleWarning)
		y++
	}
}
