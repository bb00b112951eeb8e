package builder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/omega-builder/layout"
)

// DefaultPatchDir holds the raw patch binaries
const DefaultPatchDir = "patches"

// Patch is a raw byte sequence written at a fixed absolute image offset
type Patch struct {
	Name    string
	File    string // relative to the patch directory unless absolute
	Offset  int
	Enabled bool
}

// DefaultPatches are the patches known to the main BIOS layout
func DefaultPatches() []Patch {
	return []Patch{
		{Name: "International Keyboard", File: "int_keys_patch.bin", Offset: 3529, Enabled: true},
		{Name: "Backslash Yen", File: "backslash_patch.bin", Offset: 7839, Enabled: true},
	}
}

// ErrEmptyPatch is returned for zero-length patch files
var ErrEmptyPatch = errors.New("patch file is empty")

// PatchBoundsError indicates a patch that does not fit inside the image
type PatchBoundsError struct {
	Offset int
	Length int
}

func (e *PatchBoundsError) Error() string {
	return fmt.Sprintf("patch of %d bytes at offset %d exceeds image size %d",
		e.Length, e.Offset, layout.ImageSize)
}

// Path resolves the patch file against dir
func (p Patch) Path(dir string) string {
	if filepath.IsAbs(p.File) || dir == "" {
		return p.File
	}
	return filepath.Join(dir, p.File)
}

// Load reads the patch bytes and validates that they fit the image
func (p Patch) Load(dir string) ([]byte, error) {
	data, err := os.ReadFile(p.Path(dir))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrEmptyPatch
	}
	if p.Offset < 0 || p.Offset+len(data) > layout.ImageSize {
		return nil, &PatchBoundsError{Offset: p.Offset, Length: len(data)}
	}
	return data, nil
}

// Toggle flips the enabled state of the patch at index i
func Toggle(patches []Patch, i int) {
	if i >= 0 && i < len(patches) {
		patches[i].Enabled = !patches[i].Enabled
	}
}

// applyPatches overwrites img with every enabled patch in declaration order
func applyPatches(img []byte, patches []Patch, dir string, r *Report) {
	for _, p := range patches {
		if !p.Enabled {
			continue
		}
		data, err := p.Load(dir)
		if err != nil {
			r.add(IssuePatch, -1, p.Name, fmt.Errorf("could not apply %s: %w", p.File, err))
			continue
		}
		copy(img[p.Offset:], data)
		r.Applied = append(r.Applied, AppliedPatch{Name: p.File, Offset: p.Offset, Length: len(data)})
	}
}
