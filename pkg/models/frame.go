package models

import "fmt"

// MaxBitDepth is the largest sample container this engine supports.
const MaxBitDepth = 16

// SampleGrid is an immutable 2-D grid of intensity samples at a declared
// nominal bit depth. Samples are stored row-major; all values must lie in
// [0, 2^BitDepth-1]. Values outside that range are a loader defect and are
// rejected at construction.
type SampleGrid struct {
	Width    int
	Height   int
	BitDepth int
	Pix      []uint16
}

// NewSampleGrid validates dimensions, bit depth and sample range and returns
// a grid owning the provided slice.
func NewSampleGrid(width, height, bitDepth int, pix []uint16) (*SampleGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", width, height)
	}
	if bitDepth < 1 || bitDepth > MaxBitDepth {
		return nil, fmt.Errorf("bit depth %d out of range [1,%d]", bitDepth, MaxBitDepth)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("sample count %d does not match %dx%d grid", len(pix), width, height)
	}
	maxVal := MaxSampleValue(bitDepth)
	for i, v := range pix {
		if uint32(v) > maxVal {
			return nil, fmt.Errorf("sample %d at index %d exceeds %d-bit range", v, i, bitDepth)
		}
	}
	return &SampleGrid{Width: width, Height: height, BitDepth: bitDepth, Pix: pix}, nil
}

// MaxSampleValue returns 2^bitDepth - 1.
func MaxSampleValue(bitDepth int) uint32 {
	return (uint32(1) << uint(bitDepth)) - 1
}

// BitDepthBuckets are the sensor bit depths observed maxima round up to.
var BitDepthBuckets = []int{8, 10, 12, 14, 16}

// EffectiveBitDepth rounds the maximum observed sample up to the nearest
// power-of-two-minus-one bucket (max 4095 -> 12-bit, 16383 -> 14-bit).
func EffectiveBitDepth(maxSample uint16) int {
	for _, bits := range BitDepthBuckets {
		if uint32(maxSample) <= MaxSampleValue(bits) {
			return bits
		}
	}
	return MaxBitDepth
}

func bitDepthBucketIndex(bitDepth int) int {
	for i, bits := range BitDepthBuckets {
		if bitDepth <= bits {
			return i
		}
	}
	return len(BitDepthBuckets) - 1
}

// BitDepthBucketDistance returns how many buckets apart two bit depths are,
// the unit in which declared-vs-observed disagreement is measured.
func BitDepthBucketDistance(a, b int) int {
	d := bitDepthBucketIndex(a) - bitDepthBucketIndex(b)
	if d < 0 {
		d = -d
	}
	return d
}

// At returns the sample at the given row and column in row-major order.
func (g *SampleGrid) At(row, col int) uint16 {
	return g.Pix[row*g.Width+col]
}

// TotalPixels returns width*height.
func (g *SampleGrid) TotalPixels() int {
	return g.Width * g.Height
}

// MaxValue returns the maximum representable sample for the declared bit depth.
func (g *SampleGrid) MaxValue() uint32 {
	return MaxSampleValue(g.BitDepth)
}

// PixelCoord identifies a sample within a grid. Row-major scan order is the
// only ordering contract attached to it.
type PixelCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
