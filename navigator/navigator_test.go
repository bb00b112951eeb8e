package navigator

import (
	"testing"

	"github.com/lixenwraith/omega-builder/selection"
)

func TestMovement(t *testing.T) {
	tests := []struct {
		name     string
		start    int
		cmds     []Command
		expected int
	}{
		{"Up within region", 0, []Command{CmdUp, CmdUp}, 2},
		{"Up stops at top", 2, []Command{CmdUp, CmdUp, CmdUp}, 3},
		{"Down stops at bottom", 5, []Command{CmdDown, CmdDown}, 4},
		{"Right keeps offset", 1, []Command{CmdRight, CmdRight}, 9},
		{"Right stops at last region", 13, []Command{CmdRight}, 13},
		{"Left stops at first region", 3, []Command{CmdLeft}, 3},
		{"Left keeps offset", 14, []Command{CmdLeft}, 10},
		{"No wrap from top of region", 7, []Command{CmdUp}, 7},
		{"Mixed", 0, []Command{CmdRight, CmdUp, CmdUp, CmdRight, CmdDown}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New()
			n.MoveTo(tt.start)
			for _, c := range tt.cmds {
				if !n.Move(c) {
					t.Fatalf("Expected %d to be a movement", c)
				}
			}
			if n.Cursor() != tt.expected {
				t.Errorf("Expected cursor %d, got %d", tt.expected, n.Cursor())
			}
		})
	}
}

func TestCursorStaysOnGrid(t *testing.T) {
	n := New()
	cmds := []Command{CmdUp, CmdRight, CmdDown, CmdLeft}
	for i := 0; i < 200; i++ {
		n.Move(cmds[(i*7+i/3)%len(cmds)])
		if n.Cursor() < 0 || n.Cursor() > 15 {
			t.Fatalf("Cursor left the grid: %d", n.Cursor())
		}
	}

	n.MoveTo(99)
	if n.Cursor() != 15 {
		t.Errorf("Expected MoveTo to clamp to 15, got %d", n.Cursor())
	}
	if n.Move(CmdSelect) {
		t.Error("Expected CmdSelect not to be a movement")
	}
}

func TestClear(t *testing.T) {
	s := selection.NewStoreWithSize(func(string) (int64, error) { return 40 * 1024, nil })
	s.Set(4, selection.FileSelection{Name: "sub.rom", Path: "sub.rom"})

	n := New()
	n.MoveTo(4)
	if selection.Resolve(s, 4) != 3 {
		t.Fatalf("Expected span 3 before clear, got %d", selection.Resolve(s, 4))
	}
	if err := n.Clear(s); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if s.Live(4) {
		t.Error("Expected block 4 to be empty")
	}
	for _, g := range selection.Walk(s)[4:7] {
		if g.Live() || g.Span != 1 {
			t.Errorf("Expected freed single empty blocks, got %+v", g)
		}
	}
}
