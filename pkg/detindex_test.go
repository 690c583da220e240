package vetoana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectorPairIndexCoversRange(t *testing.T) {
	tops := [][2]Panel{{18, 21}, {22, 21}, {19, 21}, {19, 22}}
	seen := make(map[int]bool)
	for _, top := range tops {
		for x := Panel(1); x <= 6; x++ {
			for y := Panel(7); y <= 12; y++ {
				idx := DetectorPairIndex(top[0], top[1], x, y)
				assert.True(t, ValidDetectorPair(idx), "index %d", idx)
				assert.False(t, seen[idx], "index %d produced twice", idx)
				seen[idx] = true
			}
		}
	}
	assert.Len(t, seen, NumDetectorPairs)
}

func TestDetectorPairIndexSymmetry(t *testing.T) {
	tops := []Panel{18, 19, 21, 22}
	for _, t1 := range tops {
		for _, t2 := range tops {
			for x := Panel(1); x <= 6; x++ {
				for y := Panel(7); y <= 12; y++ {
					idx := DetectorPairIndex(t1, t2, x, y)
					assert.Equal(t, idx, DetectorPairIndex(t2, t1, x, y), "tops %d,%d bottoms %d,%d", t1, t2, x, y)
					assert.Equal(t, idx, DetectorPairIndex(t1, t2, y, x), "tops %d,%d bottoms %d,%d", t1, t2, x, y)
					assert.Equal(t, idx, DetectorPairIndex(t2, t1, y, x), "tops %d,%d bottoms %d,%d", t1, t2, x, y)
					assert.True(t, ValidDetectorPair(idx), "tops %d,%d bottoms %d,%d", t1, t2, x, y)
				}
			}
		}
	}
}

func TestDetectorPairIndexValues(t *testing.T) {
	assert.Equal(t, 1, DetectorPairIndex(18, 21, 1, 7))
	assert.Equal(t, 36, DetectorPairIndex(18, 21, 6, 12))
	assert.Equal(t, 73, DetectorPairIndex(18, 19, 1, 7))
	assert.Equal(t, 72, DetectorPairIndex(21, 22, 6, 12))
	assert.Equal(t, 144, DetectorPairIndex(19, 22, 6, 12))
}

func TestDetectorPairIndexFoldsTops(t *testing.T) {
	// 18 and 21 are not told apart
	assert.Equal(t, DetectorPairIndex(18, 19, 2, 8), DetectorPairIndex(21, 19, 2, 8))
	assert.Equal(t, DetectorPairIndex(18, 22, 2, 8), DetectorPairIndex(21, 22, 2, 8))
}

func TestDetectorPairIndexSentinel(t *testing.T) {
	idx := DetectorPairIndex(Unmapped, Unmapped, 1, 2)
	assert.Equal(t, -29, idx)
	assert.False(t, ValidDetectorPair(idx))

	idx = DetectorPairIndex(Unmapped, Unmapped, Unmapped, Unmapped)
	assert.False(t, ValidDetectorPair(idx))
	assert.False(t, ValidDetectorPair(0))
	assert.False(t, ValidDetectorPair(NumDetectorPairs+1))
}
