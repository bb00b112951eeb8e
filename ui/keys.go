package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/omega-builder/navigator"
)

// keyCommands binds special keys to grid commands
var keyCommands = map[tcell.Key]navigator.Command{
	tcell.KeyUp:         navigator.CmdUp,
	tcell.KeyDown:       navigator.CmdDown,
	tcell.KeyLeft:       navigator.CmdLeft,
	tcell.KeyRight:      navigator.CmdRight,
	tcell.KeyEnter:      navigator.CmdSelect,
	tcell.KeyDelete:     navigator.CmdClear,
	tcell.KeyBackspace:  navigator.CmdClear,
	tcell.KeyBackspace2: navigator.CmdClear,
	tcell.KeyF2:         navigator.CmdTogglePatch1,
	tcell.KeyF3:         navigator.CmdTogglePatch2,
	tcell.KeyEscape:     navigator.CmdExit,
	tcell.KeyCtrlC:      navigator.CmdExit,
}

// CommandFor maps a key event to a grid command, CmdNone when unbound
func CommandFor(ev *tcell.EventKey) navigator.Command {
	if cmd, ok := keyCommands[ev.Key()]; ok {
		return cmd
	}
	return navigator.CmdNone
}
