package selection

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/omega-builder/layout"
)

// fixedSizes returns a SizeFunc backed by a map; unknown paths fail
func fixedSizes(sizes map[string]int64) SizeFunc {
	return func(path string) (int64, error) {
		n, ok := sizes[path]
		if !ok {
			return 0, os.ErrNotExist
		}
		return n, nil
	}
}

func TestStoreSetClear(t *testing.T) {
	s := NewStore()
	if s.Count() != 0 {
		t.Fatalf("Expected empty store, got %d entries", s.Count())
	}

	if err := s.Set(3, FileSelection{Name: "a.rom", Path: "roms/a.rom"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !s.Live(3) || s.Get(3).Name != "a.rom" {
		t.Errorf("Expected block 3 to hold a.rom, got %+v", s.Get(3))
	}

	// Half-empty selections are normalized to empty
	s.Set(4, FileSelection{Name: "b.rom"})
	if s.Live(4) || s.Get(4) != (FileSelection{}) {
		t.Errorf("Expected block 4 to stay empty, got %+v", s.Get(4))
	}

	s.Clear(3)
	if s.Live(3) {
		t.Error("Expected block 3 to be empty after Clear")
	}

	if err := s.Set(16, FileSelection{Name: "x", Path: "x"}); !errors.Is(err, ErrBlockOutOfRange) {
		t.Errorf("Expected ErrBlockOutOfRange, got %v", err)
	}
	if err := s.Clear(-1); !errors.Is(err, ErrBlockOutOfRange) {
		t.Errorf("Expected ErrBlockOutOfRange, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	s := NewStoreWithSize(fixedSizes(map[string]int64{
		"bios.rom":  32 * 1024,
		"sub.rom":   18 * 1024,
		"empty.rom": 0,
		"huge.rom":  layout.RegionSize * 2,
		"exact.rom": layout.BlockSize * 3,
	}))

	s.Set(0, FileSelection{Name: "bios.rom", Path: "bios.rom"})
	s.Set(4, FileSelection{Name: "sub.rom", Path: "sub.rom"})
	s.Set(7, FileSelection{Name: "empty.rom", Path: "empty.rom"})
	s.Set(9, FileSelection{Name: "huge.rom", Path: "huge.rom"})
	s.Set(12, FileSelection{Name: "exact.rom", Path: "exact.rom"})
	s.Set(15, FileSelection{Name: "gone.rom", Path: "gone.rom"})

	tests := []struct {
		index     int
		span      int
		truncated bool
	}{
		{0, 2, false},
		{1, 1, false},
		{4, 2, false},
		{7, 1, false},
		{9, 3, true},
		{12, 3, false},
		{15, 1, false},
	}

	for _, tt := range tests {
		r := Describe(s, tt.index)
		if r.Span != tt.span {
			t.Errorf("Block %d: expected span %d, got %d", tt.index, tt.span, r.Span)
		}
		if r.Truncated != tt.truncated {
			t.Errorf("Block %d: expected truncated=%v, got %v", tt.index, tt.truncated, r.Truncated)
		}
		// Idempotent
		if Resolve(s, tt.index) != r.Span {
			t.Errorf("Block %d: Resolve is not idempotent", tt.index)
		}
	}
}

func TestWalkAndShadowed(t *testing.T) {
	s := NewStoreWithSize(fixedSizes(map[string]int64{
		"big.rom":   3 * layout.BlockSize,
		"small.rom": 100,
	}))
	s.Set(0, FileSelection{Name: "big.rom", Path: "big.rom"})
	s.Set(2, FileSelection{Name: "small.rom", Path: "small.rom"})
	s.Set(3, FileSelection{Name: "small.rom", Path: "small.rom"})

	groups := Walk(s)

	covered := 0
	for _, g := range groups {
		covered += g.Span
	}
	if covered != layout.BlockCount {
		t.Errorf("Expected groups to cover %d blocks, got %d", layout.BlockCount, covered)
	}

	if groups[0].Index != 0 || groups[0].Span != 3 || !groups[0].Live() {
		t.Errorf("Expected first group to be block 0 span 3, got %+v", groups[0])
	}
	if groups[1].Index != 3 || !groups[1].Live() {
		t.Errorf("Expected second group at block 3, got %+v", groups[1])
	}

	owner, ok := Owner(groups, 2)
	if !ok || owner.Index != 0 {
		t.Errorf("Expected block 2 to be owned by block 0, got %+v", owner)
	}

	shadowed := Shadowed(s)
	if len(shadowed) != 1 || shadowed[0] != 2 {
		t.Errorf("Expected block 2 shadowed, got %v", shadowed)
	}

	// big = 48 KiB, small = 16 KiB
	if kb := TotalKB(s); kb != 64 {
		t.Errorf("Expected 64 KB total, got %d", kb)
	}
}

func TestManagerRoundTrip(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(filepath.Join(dir, "state", DefaultStateFile))

	s := NewStore()
	s.Set(0, FileSelection{Name: "bios.rom", Path: "systemroms/machines/msx2/bios.rom"})
	s.Set(5, FileSelection{Name: "kanji.rom", Path: "/abs/path/kanji.rom"})
	s.Set(15, FileSelection{Name: "fm \"quoted\".rom", Path: "systemroms/fm \"quoted\".rom"})

	if err := m.Save(s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !m.Exists() {
		t.Fatal("Expected state file to exist after Save")
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Equal(s) {
		for i := range layout.BlockCount {
			if loaded.Get(i) != s.Get(i) {
				t.Errorf("Block %d: expected %+v, got %+v", i, s.Get(i), loaded.Get(i))
			}
		}
	}
}

func TestManagerLoadFallback(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		write   bool
	}{
		{name: "Missing file", write: false},
		{name: "Malformed", content: "block_files = [", write: true},
		{name: "Wrong length", content: "block_files = [\"a\"]\nblock_paths = [\"b\"]\n", write: true},
		{name: "Wrong type", content: "block_files = 3\n", write: true},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			if tt.write {
				if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
					t.Fatalf("Failed to write fixture %d: %v", i, err)
				}
			}

			s, err := NewManager(path).Load()
			if err == nil {
				t.Error("Expected a descriptive error")
			}
			if s == nil {
				t.Fatal("Expected a usable empty store")
			}
			if s.Count() != 0 {
				t.Errorf("Expected empty store, got %d entries", s.Count())
			}
		})
	}
}

func TestStateDTOToStore(t *testing.T) {
	full := func() StateDTO {
		return StateDTO{
			BlockFiles: make([]string, layout.BlockCount),
			BlockPaths: make([]string, layout.BlockCount),
		}
	}

	dto := full()
	dto.BlockFiles[3], dto.BlockPaths[3] = "game.rom", "roms/game.rom"
	dto.BlockFiles[7] = "orphan.rom"

	s, err := dto.ToStore(StatSize)
	if err != nil {
		t.Fatalf("ToStore failed: %v", err)
	}
	if s.Get(3).Path != "roms/game.rom" {
		t.Errorf("Expected block 3 path roms/game.rom, got %q", s.Get(3).Path)
	}
	if s.Live(7) {
		t.Error("Expected half-empty pair to load as an empty slot")
	}
	if s.Count() != 1 {
		t.Errorf("Expected 1 live slot, got %d", s.Count())
	}

	short := full()
	short.BlockPaths = short.BlockPaths[:4]
	s, err = short.ToStore(StatSize)
	if err == nil {
		t.Error("Expected error for mismatched lengths")
	}
	if s == nil || s.Count() != 0 {
		t.Error("Expected empty store alongside the error")
	}
}
