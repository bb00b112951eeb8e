// Package selection holds the block-to-file mapping shared by the picker UI and
// the image builder, its TOML persistence, and the span resolver that derives
// which blocks each file occupies.
package selection

import (
	"errors"
	"fmt"
	"os"

	"github.com/lixenwraith/omega-builder/layout"
)

// ErrBlockOutOfRange is returned for block indices outside [0, BlockCount)
var ErrBlockOutOfRange = errors.New("block index out of range")

// FileSelection is a file chosen for a block
type FileSelection struct {
	Name string // base filename shown to the operator
	Path string // path as enumerated, relative or absolute
}

// Empty reports whether the selection carries no file
func (f FileSelection) Empty() bool {
	return f.Name == "" || f.Path == ""
}

// SizeFunc reports the byte size of the file at path
type SizeFunc func(path string) (int64, error)

// StatSize is the default SizeFunc backed by os.Stat
func StatSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Store maps each of the 16 blocks to an optional FileSelection.
// Slots are never omitted; an empty slot is the zero FileSelection.
type Store struct {
	slots [layout.BlockCount]FileSelection
	size  SizeFunc
}

// NewStore creates an empty store using os.Stat for file sizes
func NewStore() *Store {
	return &Store{size: StatSize}
}

// NewStoreWithSize creates an empty store with a custom size function
func NewStoreWithSize(size SizeFunc) *Store {
	if size == nil {
		size = StatSize
	}
	return &Store{size: size}
}

// Get returns the selection at block i, zero value when empty or out of range
func (s *Store) Get(i int) FileSelection {
	if !layout.Valid(i) {
		return FileSelection{}
	}
	return s.slots[i]
}

// Live reports whether block i holds a selection
func (s *Store) Live(i int) bool {
	return layout.Valid(i) && !s.slots[i].Empty()
}

// Set assigns sel to block i. An empty sel is equivalent to Clear.
func (s *Store) Set(i int, sel FileSelection) error {
	if !layout.Valid(i) {
		return fmt.Errorf("set block %d: %w", i, ErrBlockOutOfRange)
	}
	if sel.Empty() {
		sel = FileSelection{}
	}
	s.slots[i] = sel
	return nil
}

// Clear empties block i. Clearing a span head frees its whole span.
func (s *Store) Clear(i int) error {
	if !layout.Valid(i) {
		return fmt.Errorf("clear block %d: %w", i, ErrBlockOutOfRange)
	}
	s.slots[i] = FileSelection{}
	return nil
}

// Count returns the number of live slots, shadowed ones included
func (s *Store) Count() int {
	n := 0
	for _, sel := range s.slots {
		if !sel.Empty() {
			n++
		}
	}
	return n
}

// Size returns the byte size of the file at block i.
// Empty slots and unreadable files report 0.
func (s *Store) Size(i int) int64 {
	if !s.Live(i) {
		return 0
	}
	n, err := s.size(s.slots[i].Path)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Equal reports whether both stores hold the same mapping
func (s *Store) Equal(o *Store) bool {
	return s.slots == o.slots
}
