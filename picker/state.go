// Package picker implements the type-ahead file chooser used to fill a block.
//
// State holds the pure selection logic and is driven by Key values with
// explicit timestamps; Dialog draws a State on a tcell screen and feeds it
// terminal events.
package picker

import (
	"strings"
	"time"
	"unicode"

	"github.com/lixenwraith/omega-builder/catalog"
)

// Search buffer limits
const (
	SearchTimeout  = time.Second
	MaxSearchRunes = 5
)

// KeyKind classifies an input key for the picker
type KeyKind uint8

const (
	KeyOther KeyKind = iota
	KeyRune
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyEnter
	KeyEscape
)

// Key is one keystroke fed to the picker
type Key struct {
	Kind KeyKind
	Rune rune
	When time.Time
}

// Outcome is the result of a finished picker dialogue
type Outcome struct {
	Candidate catalog.Candidate
	Chosen    bool // false on cancel: the caller keeps the prior selection
}

// State is the picker cursor, scroll window and search buffer
type State struct {
	items     []catalog.Candidate
	keys      []string // lower-cased display keys, parallel to items
	cursor    int
	offset    int
	visible   int
	search    []rune
	lastInput time.Time
}

// NewState creates picker state over items with a viewport of visible rows
func NewState(items []catalog.Candidate, visible int) *State {
	keys := make([]string, len(items))
	for i, c := range items {
		keys[i] = strings.ToLower(c.DisplayKey())
	}
	return &State{
		items:   items,
		keys:    keys,
		visible: max(1, visible),
	}
}

// Items returns the candidate list
func (s *State) Items() []catalog.Candidate {
	return s.items
}

// Cursor returns the index of the highlighted candidate
func (s *State) Cursor() int {
	return s.cursor
}

// Offset returns the first visible row
func (s *State) Offset() int {
	return s.offset
}

// Search returns the current search buffer
func (s *State) Search() string {
	return string(s.search)
}

// SetVisible updates the viewport height and keeps the cursor on screen
func (s *State) SetVisible(visible int) {
	s.visible = max(1, visible)
	s.ensureVisible()
}

// Handle applies one keystroke. done is true when the dialogue is finished,
// in which case out holds the result.
func (s *State) Handle(k Key) (out Outcome, done bool) {
	if len(s.search) > 0 && k.When.Sub(s.lastInput) > SearchTimeout {
		s.search = s.search[:0]
	}
	s.lastInput = k.When

	switch k.Kind {
	case KeyUp:
		s.moveTo(s.cursor - 1)
	case KeyDown:
		s.moveTo(s.cursor + 1)
	case KeyEnter:
		if len(s.items) == 0 {
			return Outcome{}, true
		}
		return Outcome{Candidate: s.items[s.cursor], Chosen: true}, true
	case KeyEscape:
		return Outcome{}, true
	case KeyRune:
		if unicode.IsPrint(k.Rune) {
			s.typeRune(k.Rune)
			break
		}
		s.search = s.search[:0]
	default:
		s.search = s.search[:0]
		switch k.Kind {
		case KeyPageUp:
			s.moveTo(s.cursor - s.visible)
		case KeyPageDown:
			s.moveTo(s.cursor + s.visible)
		case KeyHome:
			s.moveTo(0)
		case KeyEnd:
			s.moveTo(len(s.items) - 1)
		}
	}
	return Outcome{}, false
}

// typeRune appends r to the ring buffer and jumps to the first match
func (s *State) typeRune(r rune) {
	r = unicode.ToLower(r)
	if len(s.search) >= MaxSearchRunes {
		s.search = append(s.search[:0], s.search[len(s.search)-MaxSearchRunes+1:]...)
	}
	s.search = append(s.search, r)

	if i := s.find(string(s.search)); i >= 0 {
		s.moveTo(i)
		return
	}
	if i := s.find(string(r)); i >= 0 {
		s.moveTo(i)
	}
}

// find returns the first item whose display key starts with prefix, or -1
func (s *State) find(prefix string) int {
	for i, k := range s.keys {
		if strings.HasPrefix(k, prefix) {
			return i
		}
	}
	return -1
}

// moveTo clamps i into the list and scrolls it into view
func (s *State) moveTo(i int) {
	if len(s.items) == 0 {
		s.cursor, s.offset = 0, 0
		return
	}
	s.cursor = max(0, min(i, len(s.items)-1))
	s.ensureVisible()
}

func (s *State) ensureVisible() {
	if s.cursor < s.offset {
		s.offset = s.cursor
	} else if s.cursor >= s.offset+s.visible {
		s.offset = s.cursor - s.visible + 1
	}
	s.offset = max(0, min(s.offset, max(0, len(s.items)-s.visible)))
}
