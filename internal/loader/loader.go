// Package loader decodes image containers into sample grids. It is the only
// place in the system that knows about pixel encodings; everything past it
// operates on plain numeric grids.
package loader

import (
	"bytes"
	"image"
	_ "image/png"
	"io"

	_ "golang.org/x/image/tiff"

	apperrors "go-darkframe-inspector/internal/errors"
	"go-darkframe-inspector/pkg/models"
)

// DecodeFrame decodes a 16-bit TIFF or 8/16-bit PNG stream into a sample
// grid. Color inputs are reduced to grayscale; the declared bit depth is the
// container's sample width (8 or 16).
func DecodeFrame(r io.Reader) (*models.SampleGrid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewLoadFailure("unreadable frame stream", err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.NewLoadFailure("unsupported or corrupt frame", err)
	}
	grid, err := gridFromImage(img)
	if err != nil {
		return nil, apperrors.NewLoadFailure("cannot convert "+format+" frame to sample grid", err)
	}
	return grid, nil
}

// gridFromImage extracts row-major samples. Gray8 keeps its native 8-bit
// container; everything else goes through the 16-bit path.
func gridFromImage(img image.Image) (*models.SampleGrid, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		pix := make([]uint16, width*height)
		for y := 0; y < height; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+width]
			for x, v := range row {
				pix[y*width+x] = uint16(v)
			}
		}
		return models.NewSampleGrid(width, height, 8, pix)
	}

	pix := make([]uint16, width*height)
	if gray16, ok := img.(*image.Gray16); ok {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				off := y*gray16.Stride + x*2
				pix[y*width+x] = uint16(gray16.Pix[off])<<8 | uint16(gray16.Pix[off+1])
			}
		}
		return models.NewSampleGrid(width, height, 16, pix)
	}

	// Color input: reduce to 16-bit luminance. Dark frames should already
	// be single-channel; this keeps odd exports analyzable.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum := (299*uint32(r) + 587*uint32(g) + 114*uint32(b)) / 1000
			pix[y*width+x] = uint16(lum)
		}
	}
	return models.NewSampleGrid(width, height, 16, pix)
}
