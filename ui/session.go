// Package ui runs the interactive block grid on a tcell screen and prints the
// post-build summary.
package ui

import (
	"fmt"
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/omega-builder/builder"
	"github.com/lixenwraith/omega-builder/catalog"
	"github.com/lixenwraith/omega-builder/layout"
	"github.com/lixenwraith/omega-builder/navigator"
	"github.com/lixenwraith/omega-builder/picker"
	"github.com/lixenwraith/omega-builder/selection"
)

// Options wires a session to its collaborators
type Options struct {
	Sources []catalog.Source
	Patches []builder.Patch    // toggled in place by F2/F3
	Manager *selection.Manager // saves the store on exit, may be nil
	Size    selection.SizeFunc // nil uses os.Stat
}

// Session is the interactive grid editor
type Session struct {
	screen tcell.Screen
	store  *selection.Store
	nav    *navigator.Navigator
	opts   Options
}

// New creates a session editing store on screen
func New(screen tcell.Screen, store *selection.Store, opts Options) *Session {
	if opts.Size == nil {
		opts.Size = selection.StatSize
	}
	if opts.Sources == nil {
		opts.Sources = catalog.DefaultSources
	}
	return &Session{
		screen: screen,
		store:  store,
		nav:    navigator.New(),
		opts:   opts,
	}
}

// Cursor returns the block under the cursor
func (s *Session) Cursor() int {
	return s.nav.Cursor()
}

// Patches returns the patch list with the operator's toggles applied
func (s *Session) Patches() []builder.Patch {
	return s.opts.Patches
}

// Run processes events until the operator exits, then saves the store.
// The returned error is a save failure; the store itself is always usable.
func (s *Session) Run() error {
	for {
		s.render()

		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return s.save()
		case *tcell.EventResize:
			s.screen.Sync()
		case *tcell.EventKey:
			if !s.handle(CommandFor(ev)) {
				return s.save()
			}
		}
	}
}

// handle applies one command, returning false on exit
func (s *Session) handle(cmd navigator.Command) bool {
	switch cmd {
	case navigator.CmdNone:
	case navigator.CmdUp, navigator.CmdDown, navigator.CmdLeft, navigator.CmdRight:
		before := s.nav.Cursor()
		s.nav.Move(cmd)
		if s.nav.Cursor() == before {
			s.screen.Beep()
		}
	case navigator.CmdSelect:
		s.pick()
	case navigator.CmdClear:
		if err := s.nav.Clear(s.store); err != nil {
			log.Printf("ui: clear block %d: %v", s.nav.Cursor(), err)
		}
	case navigator.CmdTogglePatch1:
		builder.Toggle(s.opts.Patches, 0)
	case navigator.CmdTogglePatch2:
		builder.Toggle(s.opts.Patches, 1)
	case navigator.CmdExit:
		return false
	}
	return true
}

// pick opens the file dialog for the cursor block and stores the choice
func (s *Session) pick() {
	i := s.nav.Cursor()
	region := layout.RegionFor(i)

	var items []catalog.Candidate
	if src := catalog.SourceFor(s.opts.Sources, region.Ordinal); src != nil {
		items = catalog.Enumerate(*src)
	}

	title := fmt.Sprintf("Block %d (%s)", layout.LocalOffset(i)+1, region.Name)
	out := picker.NewDialog(s.screen, title, s.opts.Size).
		WithBackdrop(s.draw).
		Run(items)
	if !out.Chosen {
		return
	}

	sel := selection.FileSelection{Name: out.Candidate.Name(), Path: out.Candidate.Path}
	if err := s.store.Set(i, sel); err != nil {
		log.Printf("ui: set block %d: %v", i, err)
		return
	}
	log.Printf("ui: block %d <- %s", i, sel.Path)
}

func (s *Session) save() error {
	if s.opts.Manager == nil {
		return nil
	}
	if err := s.opts.Manager.Save(s.store); err != nil {
		log.Printf("ui: save selections: %v", err)
		return err
	}
	return nil
}

func (s *Session) render() {
	s.screen.Clear()
	s.draw()
	s.screen.Show()
}
