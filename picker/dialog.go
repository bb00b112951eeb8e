package picker

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/omega-builder/catalog"
	"github.com/lixenwraith/omega-builder/draw"
	"github.com/lixenwraith/omega-builder/selection"
)

// Dialog geometry
const (
	dialogMaxW = 60
	dialogMaxH = 20
	sizeColW   = 10
)

// Dialog draws a picker on a screen and runs it until commit or cancel
type Dialog struct {
	screen tcell.Screen
	title  string
	size   selection.SizeFunc

	// backdrop redraws whatever is behind the dialog, may be nil
	backdrop func()
}

// NewDialog creates a dialog titled title. size reports file sizes for the
// size column; nil uses os.Stat.
func NewDialog(screen tcell.Screen, title string, size selection.SizeFunc) *Dialog {
	if size == nil {
		size = selection.StatSize
	}
	return &Dialog{screen: screen, title: title, size: size}
}

// WithBackdrop sets a redraw callback invoked before the dialog is drawn
func (d *Dialog) WithBackdrop(fn func()) *Dialog {
	d.backdrop = fn
	return d
}

// Run blocks on terminal events until the operator commits or cancels
func (d *Dialog) Run(items []catalog.Candidate) Outcome {
	state := NewState(items, d.listHeight())
	for {
		state.SetVisible(d.listHeight())
		d.render(state)

		ev := d.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// Screen finalized
			return Outcome{}
		case *tcell.EventResize:
			d.screen.Sync()
		case *tcell.EventKey:
			out, done := state.Handle(TranslateKey(ev))
			if done {
				return out
			}
		}
	}
}

// TranslateKey maps a tcell key event to a picker key stamped with the event time
func TranslateKey(ev *tcell.EventKey) Key {
	k := Key{Kind: KeyOther, When: ev.When()}
	if k.When.IsZero() {
		k.When = time.Now()
	}
	switch ev.Key() {
	case tcell.KeyRune:
		k.Kind, k.Rune = KeyRune, ev.Rune()
	case tcell.KeyUp:
		k.Kind = KeyUp
	case tcell.KeyDown:
		k.Kind = KeyDown
	case tcell.KeyPgUp:
		k.Kind = KeyPageUp
	case tcell.KeyPgDn:
		k.Kind = KeyPageDown
	case tcell.KeyHome:
		k.Kind = KeyHome
	case tcell.KeyEnd:
		k.Kind = KeyEnd
	case tcell.KeyEnter:
		k.Kind = KeyEnter
	case tcell.KeyEscape:
		k.Kind = KeyEscape
	}
	return k
}

// frame returns the dialog box region for the current screen size
func (d *Dialog) frame() draw.Region {
	full := draw.Full(d.screen)
	return full.Centered(min(dialogMaxW, full.W-4), min(dialogMaxH, full.H-4))
}

// listHeight is the number of candidate rows that fit in the dialog
func (d *Dialog) listHeight() int {
	return max(1, d.frame().H-4)
}

func (d *Dialog) render(s *State) {
	d.screen.Clear()
	if d.backdrop != nil {
		d.backdrop()
	}

	inner := d.frame().Card("Select "+d.title, draw.LineSingle, draw.StyleDefault)
	if inner.W <= 0 || inner.H <= 0 {
		d.screen.Show()
		return
	}

	if s.Search() != "" {
		inner.Text(1, 0, "Search: "+s.Search(), draw.StyleDim)
	}

	items := s.Items()
	if len(items) == 0 {
		inner.Text(1, 1, "No matching files", draw.StyleDim)
		d.screen.Show()
		return
	}

	nameW := max(1, inner.W-sizeColW-4)
	list := inner.Sub(1, 1, inner.W-2, inner.H-2)
	for row := 0; row < list.H; row++ {
		idx := s.Offset() + row
		if idx >= len(items) {
			break
		}
		c := items[idx]
		kb := int64(0)
		if n, err := d.size(c.Path); err == nil {
			kb = n / 1024
		}
		line := draw.Pad(c.DisplayKey(), nameW) + "  " + draw.PadLeft(fmt.Sprintf("%d KB", kb), sizeColW)

		style := draw.StyleDefault
		if idx == s.Cursor() {
			style = draw.StyleHighlight
		}
		list.Text(0, row, draw.Pad(line, list.W), style)
	}

	d.screen.Show()
}
