// Package builder assembles the 256 KiB flash image from a selection store,
// applies fixed-offset patches and writes the result.
package builder

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/omega-builder/layout"
	"github.com/lixenwraith/omega-builder/selection"
)

// Erased flash reads as 0xFF
const fillByte = 0xFF

// DefaultOutput is the image file written in the working directory
const DefaultOutput = "omega_output.bin"

// Options configures a build. Patch toggles live here, not in globals.
type Options struct {
	PatchDir string
	Patches  []Patch
}

// DefaultOptions enables the default patches from DefaultPatchDir
func DefaultOptions() Options {
	return Options{PatchDir: DefaultPatchDir, Patches: DefaultPatches()}
}

// Image is an assembled flash image of exactly layout.ImageSize bytes
type Image []byte

// SHA1 returns the hex fingerprint of the image
func (img Image) SHA1() string {
	sum := sha1.Sum(img)
	return hex.EncodeToString(sum[:])
}

// Block returns the bytes of block i
func (img Image) Block(i int) []byte {
	return img[layout.Offset(i) : layout.Offset(i)+layout.BlockSize]
}

// Erased reports whether block i is entirely 0xFF
func (img Image) Erased(i int) bool {
	return bytes.Count(img.Block(i), []byte{fillByte}) == layout.BlockSize
}

// Assemble builds the image. It never fails: unreadable sources and patches
// are recorded in the report and leave their bytes erased.
//
// Blocks are consumed left to right. A file that opens claims its full span;
// a file that cannot be opened claims only its own block, so the next
// selection is still placed.
func Assemble(s *selection.Store, opts Options) (Image, *Report) {
	r := &Report{}
	img := make(Image, layout.ImageSize)
	for i := range img {
		img[i] = fillByte
	}

	for i := 0; i < layout.BlockCount; {
		if !s.Live(i) {
			i++
			continue
		}
		res := selection.Describe(s, i)
		sel := s.Get(i)
		if !readBlocks(img, i, res.Span, sel.Path, r) {
			i++
			continue
		}
		if res.Truncated {
			r.add(IssueTruncated, i, sel.Path,
				fmt.Errorf("needs %d blocks, only %d available in %s", res.Needed, res.Span, layout.RegionFor(i).Name))
		}
		for j := i + 1; j < i+res.Span; j++ {
			if s.Live(j) {
				r.add(IssueShadowed, j, s.Get(j).Path, errors.New("covered by an earlier file, ignored"))
			}
		}
		i += res.Span
	}

	applyPatches(img, opts.Patches, opts.PatchDir, r)
	return img, r
}

// readBlocks copies at most span blocks of the file at path into place,
// starting at block i. A short file leaves the tail of its span erased.
// It returns false when the file could not be opened.
func readBlocks(img Image, i, span int, path string, r *Report) bool {
	f, err := os.Open(path)
	if err != nil {
		r.add(IssueRead, i, path, err)
		return false
	}
	defer f.Close()

	off := layout.Offset(i)
	dst := img[off : off+span*layout.BlockSize]
	n, err := io.ReadFull(f, dst)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		r.add(IssueRead, i, path, fmt.Errorf("read stopped after %d bytes: %w", n, err))
	}
	// ReadFull may leave partial garbage past n on error; restore erase state
	for j := off + n; j < off+len(dst); j++ {
		img[j] = fillByte
	}
	return true
}
