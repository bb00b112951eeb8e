package draw

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/omega-builder/catalog"
)

// Palette colours from the xterm 256-colour cube
var (
	ColorWhite     = tcell.PaletteColor(231)
	ColorHighlight = tcell.PaletteColor(196)
)

// Styles
var (
	StyleDefault   = tcell.StyleDefault
	StyleTitle     = tcell.StyleDefault.Bold(true)
	StyleDim       = tcell.StyleDefault.Dim(true)
	StyleHighlight = tcell.StyleDefault.Foreground(ColorWhite).Background(ColorHighlight)
	StyleTotal     = StyleHighlight.Bold(true)
	StyleWarning   = tcell.StyleDefault.Foreground(tcell.PaletteColor(214))
)

// kindPalette maps a category kind to its 256-colour background index
var kindPalette = map[catalog.Kind]int{
	catalog.KindBIOS:   17,
	catalog.KindLogo:   18,
	catalog.KindSubROM: 19,
	catalog.KindKanji:  20,
	catalog.KindDisk:   21,
	catalog.KindMusic:  39,
	catalog.KindExtras: 33,
}

// KindStyle returns the fill style for a category kind
func KindStyle(k catalog.Kind) tcell.Style {
	idx, ok := kindPalette[k]
	if !ok {
		return StyleDefault
	}
	return tcell.StyleDefault.Foreground(ColorWhite).Background(tcell.PaletteColor(idx))
}

// KindPalette returns the 256-colour background index of a kind, -1 if none
func KindPalette(k catalog.Kind) int {
	idx, ok := kindPalette[k]
	if !ok {
		return -1
	}
	return idx
}
