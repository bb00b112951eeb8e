// Package config loads omega.toml and merges it over the built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/omega-builder/builder"
	"github.com/lixenwraith/omega-builder/catalog"
	"github.com/lixenwraith/omega-builder/layout"
	"github.com/lixenwraith/omega-builder/selection"
)

// DefaultFile is read when no --config flag is given
const DefaultFile = "omega.toml"

// Config is the resolved runtime configuration
type Config struct {
	Output    string
	StateFile string
	PatchDir  string
	Patches   []builder.Patch
	Sources   []catalog.Source
}

// fileDTO mirrors omega.toml; pointer fields distinguish absent from zero
type fileDTO struct {
	Output    *string     `toml:"output"`
	StateFile *string     `toml:"state_file"`
	PatchDir  *string     `toml:"patch_dir"`
	Patches   []patchDTO  `toml:"patch"`
	Sources   []sourceDTO `toml:"source"`
}

type patchDTO struct {
	Name    string `toml:"name"`
	File    string `toml:"file"`
	Offset  int    `toml:"offset"`
	Enabled *bool  `toml:"enabled"`
}

type sourceDTO struct {
	Region   int      `toml:"region"`
	Roots    []string `toml:"roots"`
	Keywords []string `toml:"keywords"`
}

// Default returns the built-in configuration
func Default() *Config {
	sources := make([]catalog.Source, len(catalog.DefaultSources))
	for i, s := range catalog.DefaultSources {
		sources[i] = catalog.Source{
			Region:   s.Region,
			Roots:    append([]string(nil), s.Roots...),
			Keywords: append([]string(nil), s.Keywords...),
		}
	}
	return &Config{
		Output:    builder.DefaultOutput,
		StateFile: selection.DefaultStateFile,
		PatchDir:  builder.DefaultPatchDir,
		Patches:   builder.DefaultPatches(),
		Sources:   sources,
	}
}

// Load reads path over the defaults. A missing file is only an error when
// the operator named it explicitly.
func Load(path string, explicit bool) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Merge(data); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies TOML data on top of the current values. A [[patch]] list
// replaces the default patches; [[source]] entries replace the matching
// region only.
func (c *Config) Merge(data []byte) error {
	var dto fileDTO
	md, err := toml.Decode(string(data), &dto)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	if dto.Output != nil {
		c.Output = *dto.Output
	}
	if dto.StateFile != nil {
		c.StateFile = *dto.StateFile
	}
	if dto.PatchDir != nil {
		c.PatchDir = *dto.PatchDir
	}

	if dto.Patches != nil {
		patches := make([]builder.Patch, 0, len(dto.Patches))
		for i, p := range dto.Patches {
			if p.File == "" {
				return fmt.Errorf("patch %d: file is required", i+1)
			}
			if p.Offset < 0 || p.Offset >= layout.ImageSize {
				return fmt.Errorf("patch %d: offset %d outside image", i+1, p.Offset)
			}
			name := p.Name
			if name == "" {
				name = p.File
			}
			patches = append(patches, builder.Patch{
				Name:    name,
				File:    p.File,
				Offset:  p.Offset,
				Enabled: p.Enabled == nil || *p.Enabled,
			})
		}
		c.Patches = patches
	}

	for _, s := range dto.Sources {
		if s.Region < 0 || s.Region >= layout.RegionCount {
			return fmt.Errorf("source region %d out of range", s.Region)
		}
		src := catalog.SourceFor(c.Sources, s.Region)
		if src == nil {
			c.Sources = append(c.Sources, catalog.Source{Region: s.Region})
			src = &c.Sources[len(c.Sources)-1]
		}
		if s.Roots != nil {
			src.Roots = s.Roots
		}
		if s.Keywords != nil {
			src.Keywords = s.Keywords
		}
	}
	return nil
}

// BuildOptions returns the assembler options for this configuration
func (c *Config) BuildOptions() builder.Options {
	return builder.Options{
		PatchDir: c.PatchDir,
		Patches:  append([]builder.Patch(nil), c.Patches...),
	}
}
