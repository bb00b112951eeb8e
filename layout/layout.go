// Package layout describes the fixed block grid of the cartridge flash image.
//
// The image is 16 blocks of 16 KiB, grouped into 4 regions of 4 blocks each.
// Every region maps to one 64 KiB slot window; inside a region the local block
// offset selects the 16 KiB page within the Z80 address space.
package layout

import "fmt"

// Geometry
const (
	BlockSize       = 16 * 1024
	BlocksPerRegion = 4
	RegionCount     = 4
	BlockCount      = BlocksPerRegion * RegionCount
	RegionSize      = BlocksPerRegion * BlockSize
	ImageSize       = BlockCount * BlockSize
)

// Region is one 64 KiB memory window of the image
type Region struct {
	Ordinal int
	Name    string
}

// Regions in image order
var Regions = [RegionCount]Region{
	{Ordinal: 0, Name: "SLOT 0"},
	{Ordinal: 1, Name: "SLOT 3-0"},
	{Ordinal: 2, Name: "SLOT 3-1"},
	{Ordinal: 3, Name: "SLOT 3-3"},
}

// AddrLabels are indexed by local block offset and repeat for every region
var AddrLabels = [BlocksPerRegion]string{
	"0000H~3FFFH",
	"4000H~7FFFH",
	"8000H~BFFFH",
	"C000H~FFFFH",
}

// Valid reports whether i is a block index
func Valid(i int) bool {
	return i >= 0 && i < BlockCount
}

// RegionOf returns the region ordinal owning block i
func RegionOf(i int) int {
	return i / BlocksPerRegion
}

// LocalOffset returns the position of block i inside its region
func LocalOffset(i int) int {
	return i % BlocksPerRegion
}

// Index composes a global block index from region ordinal and local offset
func Index(region, local int) int {
	return region*BlocksPerRegion + local
}

// RegionFor returns the region record owning block i
func RegionFor(i int) Region {
	return Regions[RegionOf(i)]
}

// Offset returns the byte offset of block i in the image
func Offset(i int) int {
	return i * BlockSize
}

// RegionEnd returns the exclusive byte offset where the region of block i ends
func RegionEnd(i int) int {
	return (RegionOf(i) + 1) * RegionSize
}

// SpanLimit is the largest span a file starting at block i may occupy.
// It stops at the region boundary and at the end of the image.
func SpanLimit(i int) int {
	return min(BlockCount-i, BlocksPerRegion-LocalOffset(i))
}

// BlocksNeeded returns how many blocks a file of size bytes would fill if
// nothing limited it. Empty files still claim one block.
func BlocksNeeded(size int64) int {
	if size <= 0 {
		return 1
	}
	return int((size + BlockSize - 1) / BlockSize)
}

// SpanFor returns the clamped span of a file of size bytes starting at block i
func SpanFor(i int, size int64) int {
	return max(1, min(BlocksNeeded(size), SpanLimit(i)))
}

// BlockLabel formats the 1-based position of block i inside its region,
// e.g. "block 2" or "block 1-3" for a span
func BlockLabel(i, span int) string {
	start := LocalOffset(i) + 1
	if span <= 1 {
		return fmt.Sprintf("block %d", start)
	}
	return fmt.Sprintf("block %d-%d", start, start+span-1)
}
