package draw

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(s tcell.Screen, y, w int) string {
	out := make([]rune, 0, w)
	for x := 0; x < w; x++ {
		ch, _, _, _ := s.GetContent(x, y)
		out = append(out, ch)
	}
	return string(out)
}

func TestRegionTextClipping(t *testing.T) {
	screen := newScreen(t, 20, 5)
	r := Full(screen).Sub(2, 1, 5, 2)

	end := r.Text(0, 0, "abcdefgh", StyleDefault)
	if end != 5 {
		t.Errorf("Expected text to stop at column 5, got %d", end)
	}
	r.Text(0, 5, "hidden", StyleDefault)

	if got := rowText(screen, 1, 10); got != "  abcde   " {
		t.Errorf("Expected clipped row, got %q", got)
	}
}

func TestRegionCard(t *testing.T) {
	screen := newScreen(t, 20, 6)
	inner := Full(screen).Centered(10, 4).Card("T", LineSingle, StyleDefault)

	if inner.W != 8 || inner.H != 2 {
		t.Errorf("Expected 8x2 inner region, got %dx%d", inner.W, inner.H)
	}
	ch, _, _, _ := screen.GetContent(5, 1)
	if ch != '┌' {
		t.Errorf("Expected top-left corner at (5,1), got %q", ch)
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(string, int) string
		in       string
		w        int
		expected string
	}{
		{"Pad short", Pad, "ab", 4, "ab  "},
		{"Pad long", Pad, "abcdef", 4, "abc…"},
		{"PadLeft", PadLeft, "ab", 4, "  ab"},
		{"Center", Center, "BIOS", 8, "  BIOS  "},
		{"Center odd", Center, "DISK", 7, " DISK  "},
		{"Truncate zero", Truncate, "abc", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in, tt.w); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
