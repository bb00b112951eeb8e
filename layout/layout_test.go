package layout

import "testing"

func TestGeometry(t *testing.T) {
	if ImageSize != 262144 {
		t.Errorf("Expected image size 262144, got %d", ImageSize)
	}
	if BlockCount != 16 {
		t.Errorf("Expected 16 blocks, got %d", BlockCount)
	}
	if RegionSize != 64*1024 {
		t.Errorf("Expected region size 65536, got %d", RegionSize)
	}
}

func TestIndexDecomposition(t *testing.T) {
	for i := 0; i < BlockCount; i++ {
		r, l := RegionOf(i), LocalOffset(i)
		if Index(r, l) != i {
			t.Errorf("Index(%d, %d) = %d, expected %d", r, l, Index(r, l), i)
		}
		if RegionFor(i).Ordinal != r {
			t.Errorf("Block %d: expected region %d, got %d", i, r, RegionFor(i).Ordinal)
		}
	}
	if Regions[3].Name != "SLOT 3-3" {
		t.Errorf("Expected last region SLOT 3-3, got %q", Regions[3].Name)
	}
}

// TestSpanBounds checks every block index against a spread of file sizes
func TestSpanBounds(t *testing.T) {
	sizes := []int64{0, 1, BlockSize - 1, BlockSize, BlockSize + 1, 18 * 1024,
		2 * BlockSize, 3*BlockSize + 7, RegionSize, RegionSize + 1, ImageSize, 10 * ImageSize}

	for i := 0; i < BlockCount; i++ {
		limit := min(16-i, 4-(i%4))
		if SpanLimit(i) != limit {
			t.Errorf("SpanLimit(%d) = %d, expected %d", i, SpanLimit(i), limit)
		}
		for _, s := range sizes {
			span := SpanFor(i, s)
			if span < 1 || span > limit {
				t.Errorf("SpanFor(%d, %d) = %d, outside [1, %d]", i, s, span, limit)
			}
			if s == 0 && span != 1 {
				t.Errorf("SpanFor(%d, 0) = %d, expected 1", i, span)
			}
			// Written bytes never cross the region end
			if Offset(i)+span*BlockSize > RegionEnd(i) {
				t.Errorf("Block %d span %d crosses region end %d", i, span, RegionEnd(i))
			}
		}
	}
}

func TestSpanFor(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		size     int64
		expected int
	}{
		{"Empty file", 0, 0, 1},
		{"One byte", 5, 1, 1},
		{"Exactly one block", 0, BlockSize, 1},
		{"Exactly two blocks", 0, 2 * BlockSize, 2},
		{"18 KiB", 0, 18 * 1024, 2},
		{"Full region at head", 4, RegionSize, 4},
		{"Truncated at region end", 2, RegionSize, 2},
		{"Last block", 15, RegionSize, 1},
		{"Negative size", 3, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpanFor(tt.index, tt.size); got != tt.expected {
				t.Errorf("Expected span %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestBlockLabel(t *testing.T) {
	if got := BlockLabel(6, 1); got != "block 3" {
		t.Errorf("Expected \"block 3\", got %q", got)
	}
	if got := BlockLabel(8, 3); got != "block 1-3" {
		t.Errorf("Expected \"block 1-3\", got %q", got)
	}
}
