package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/lixenwraith/omega-builder/builder"
	"github.com/lixenwraith/omega-builder/catalog"
	"github.com/lixenwraith/omega-builder/draw"
	"github.com/lixenwraith/omega-builder/layout"
	"github.com/lixenwraith/omega-builder/selection"
)

const ansiReset = "\x1b[0m"

// ColorEnabled reports whether f is a terminal that should get ANSI colours
func ColorEnabled(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// BlockRange formats the 1-based global blocks of a group, "Block 01" or "Block 1-2"
func BlockRange(g selection.Group) string {
	if g.Span <= 1 {
		return fmt.Sprintf("Block %02d", g.Index+1)
	}
	return fmt.Sprintf("Block %d-%d", g.Index+1, g.Index+g.Span)
}

// SummaryLines returns one line per group of the final mapping
func SummaryLines(s *selection.Store, color bool) []string {
	var lines []string
	for _, g := range selection.Walk(s) {
		block := fmt.Sprintf("%-9s", BlockRange(g))
		if !g.Live() {
			lines = append(lines, block+" : [None]")
			continue
		}
		line := fmt.Sprintf("%s : %s (%d KB)", block, ListLabel(g.Selection), g.Size/1024)
		if color {
			cat := catalog.Classify(layout.RegionOf(g.Index), g.Selection.Name, g.Selection.Path)
			if idx := draw.KindPalette(cat.Kind); idx >= 0 {
				line = fmt.Sprintf("\x1b[38;5;231m\x1b[48;5;%dm%s%s", idx, line, ansiReset)
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// WriteSummary prints the mapping, build issues, applied patches and the
// image fingerprint
func WriteSummary(w io.Writer, s *selection.Store, img builder.Image, r *builder.Report, output string, color bool) {
	fmt.Fprintln(w, "\nSelected files:")
	for _, line := range SummaryLines(s, color) {
		fmt.Fprintln(w, line)
	}

	if r != nil {
		if len(r.Issues) > 0 {
			fmt.Fprintln(w)
		}
		for _, is := range r.Issues {
			if color {
				fmt.Fprintf(w, "\x1b[38;5;214m%s%s\n", is, ansiReset)
			} else {
				fmt.Fprintln(w, is)
			}
		}
		for _, a := range r.Applied {
			fmt.Fprintln(w, a)
		}
	}

	fmt.Fprintf(w, "SHA-1 %s\n", img.SHA1())
	fmt.Fprintf(w, "ROM image written to %s\n", output)
}
