// Package draw provides clipped drawing regions and the colour theme on top of
// a tcell screen.
package draw

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Region is a rectangular area of a screen.
// All coordinates passed to its methods are relative to the region origin.
type Region struct {
	Screen tcell.Screen
	X, Y   int
	W, H   int
}

// Full returns a region covering the whole screen
func Full(s tcell.Screen) Region {
	w, h := s.Size()
	return Region{Screen: s, W: w, H: h}
}

// Sub returns a nested region clipped to the parent bounds
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	w = max(0, min(w, r.W-x))
	h = max(0, min(h, r.H-y))
	return Region{Screen: r.Screen, X: r.X + x, Y: r.Y + y, W: w, H: h}
}

// Centered returns a w*h sub-region centered in r, shrunk to fit
func (r Region) Centered(w, h int) Region {
	w, h = min(w, r.W), min(h, r.H)
	return r.Sub((r.W-w)/2, (r.H-h)/2, w, h)
}

// Inset returns a region shrunk by n cells on all sides
func (r Region) Inset(n int) Region {
	return r.Sub(n, n, r.W-2*n, r.H-2*n)
}

// Cell sets a single cell with bounds checking
func (r Region) Cell(x, y int, ch rune, style tcell.Style) {
	if x < 0 || x >= r.W || y < 0 || y >= r.H {
		return
	}
	r.Screen.SetContent(r.X+x, r.Y+y, ch, nil, style)
}

// Fill paints the whole region with spaces in style
func (r Region) Fill(style tcell.Style) {
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			r.Cell(x, y, ' ', style)
		}
	}
}

// Text renders s at (x, y), clipped at the region edge.
// Returns the column after the last cell written.
func (r Region) Text(x, y int, s string, style tcell.Style) int {
	if y < 0 || y >= r.H {
		return x
	}
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > r.W {
			break
		}
		r.Cell(x, y, ch, style)
		x += w
	}
	return x
}

// TextCenter renders s centered on row y
func (r Region) TextCenter(y int, s string, style tcell.Style) {
	r.Text((r.W-runewidth.StringWidth(s))/2, y, s, style)
}

// LineType specifies box drawing character style
type LineType uint8

const (
	LineSingle  LineType = iota // ┌─┐│└┘
	LineDouble                  // ╔═╗║╚╝
	LineRounded                 // ╭─╮│╰╯
)

var boxChars = [...][6]rune{
	LineSingle:  {'┌', '─', '┐', '│', '└', '┘'},
	LineDouble:  {'╔', '═', '╗', '║', '╚', '╝'},
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
}

const (
	boxTL = iota
	boxH
	boxTR
	boxV
	boxBL
	boxBR
)

// Box draws a border around the region edge
func (r Region) Box(line LineType, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	if int(line) >= len(boxChars) {
		line = LineSingle
	}
	chars := boxChars[line]

	r.Cell(0, 0, chars[boxTL], style)
	r.Cell(r.W-1, 0, chars[boxTR], style)
	r.Cell(0, r.H-1, chars[boxBL], style)
	r.Cell(r.W-1, r.H-1, chars[boxBR], style)
	for x := 1; x < r.W-1; x++ {
		r.Cell(x, 0, chars[boxH], style)
		r.Cell(x, r.H-1, chars[boxH], style)
	}
	for y := 1; y < r.H-1; y++ {
		r.Cell(0, y, chars[boxV], style)
		r.Cell(r.W-1, y, chars[boxV], style)
	}
}

// Card clears the region, draws a titled border and returns the inner region
func (r Region) Card(title string, line LineType, style tcell.Style) Region {
	r.Fill(style)
	r.Box(line, style)
	if title != "" && r.W > 4 {
		t := " " + Truncate(title, r.W-6) + " "
		r.Text((r.W-runewidth.StringWidth(t))/2, 0, t, style.Bold(true))
	}
	return r.Inset(1)
}

// Truncate shortens s to at most w cells, marking the cut with …
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

// Pad truncates or right-pads s to exactly w cells
func Pad(s string, w int) string {
	return runewidth.FillRight(Truncate(s, w), w)
}

// PadLeft truncates or left-pads s to exactly w cells
func PadLeft(s string, w int) string {
	return runewidth.FillLeft(Truncate(s, w), w)
}

// Center pads s on both sides to exactly w cells
func Center(s string, w int) string {
	s = Truncate(s, w)
	left := (w - runewidth.StringWidth(s)) / 2
	return runewidth.FillRight(runewidth.FillLeft(s, left+runewidth.StringWidth(s)), w)
}
