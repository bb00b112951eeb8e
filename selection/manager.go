package selection

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/omega-builder/layout"
)

// DefaultStateFile is the selection state file in the working directory
const DefaultStateFile = "omega_rom_selections.toml"

// StateDTO is the serializable selection state: two parallel arrays of
// BlockCount entries, empty string marking an empty block
type StateDTO struct {
	BlockFiles []string `toml:"block_files"`
	BlockPaths []string `toml:"block_paths"`
}

// FromStore converts a store to its DTO
func FromStore(s *Store) StateDTO {
	dto := StateDTO{
		BlockFiles: make([]string, layout.BlockCount),
		BlockPaths: make([]string, layout.BlockCount),
	}
	for i := range layout.BlockCount {
		sel := s.Get(i)
		dto.BlockFiles[i] = sel.Name
		dto.BlockPaths[i] = sel.Path
	}
	return dto
}

// Validate checks the DTO shape
func (dto StateDTO) Validate() error {
	if len(dto.BlockFiles) != layout.BlockCount || len(dto.BlockPaths) != layout.BlockCount {
		return fmt.Errorf("expected %d entries, got %d files and %d paths",
			layout.BlockCount, len(dto.BlockFiles), len(dto.BlockPaths))
	}
	return nil
}

// ToStore fills a store from the DTO. Half-empty pairs become empty slots.
// On error the returned store is empty and usable.
func (dto StateDTO) ToStore(size SizeFunc) (*Store, error) {
	s := NewStoreWithSize(size)
	if err := dto.Validate(); err != nil {
		return s, err
	}
	for i := range layout.BlockCount {
		if err := s.Set(i, FileSelection{Name: dto.BlockFiles[i], Path: dto.BlockPaths[i]}); err != nil {
			return NewStoreWithSize(size), err
		}
	}
	return s, nil
}

// Manager handles save/load of the selection state file
type Manager struct {
	path string
	size SizeFunc
}

// NewManager creates a manager for the state file at path
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultStateFile
	}
	return &Manager{path: path, size: StatSize}
}

// WithSize sets the size function used by loaded stores
func (m *Manager) WithSize(size SizeFunc) *Manager {
	m.size = size
	return m
}

// FilePath returns the state file path
func (m *Manager) FilePath() string {
	return m.path
}

// Exists checks if a state file exists
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.path)
	return err == nil
}

// Save writes the store to disk
func (m *Manager) Save(s *Store) error {
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("save selections: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(FromStore(s)); err != nil {
		return fmt.Errorf("encode selections: %w", err)
	}

	if err := os.WriteFile(m.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("save selections: %w", err)
	}
	return nil
}

// Load reads the store from disk. The returned store is always usable: a
// missing, malformed or mis-sized state file yields an empty store together
// with the error describing why, so callers can log it and carry on.
func (m *Manager) Load() (*Store, error) {
	empty := NewStoreWithSize(m.size)

	data, err := os.ReadFile(m.path)
	if err != nil {
		return empty, fmt.Errorf("read selections: %w", err)
	}

	var dto StateDTO
	if _, err := toml.Decode(string(data), &dto); err != nil {
		return empty, fmt.Errorf("decode selections %s: %w", m.path, err)
	}

	s, err := dto.ToStore(m.size)
	if err != nil {
		return empty, fmt.Errorf("selections %s: %w", m.path, err)
	}
	return s, nil
}
