package builder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/marcinbor85/gohex"
)

// WriteFile writes the image to path through a temporary file in the same
// directory, so an interrupted write never leaves a partial image behind.
func WriteFile(img Image, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(img); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}

// hexLineWidth is the data byte count per Intel HEX record
const hexLineWidth = 16

// EncodeHex writes the image as Intel HEX starting at address 0
func EncodeHex(img Image, w io.Writer) error {
	mem := gohex.NewMemory()
	if err := mem.AddBinary(0, img); err != nil {
		return fmt.Errorf("hex segment: %w", err)
	}
	return mem.DumpIntelHex(w, hexLineWidth)
}

// WriteHex writes the Intel HEX rendition of the image to path
func WriteHex(img Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeHex(img, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
