package loader

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/tiff"

	apperrors "go-darkframe-inspector/internal/errors"
)

func encodeGray16TIFF(t *testing.T, width, height int, samples []uint16) *bytes.Buffer {
	t.Helper()
	img := image.NewGray16(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := samples[y*width+x]
			off := y*img.Stride + x*2
			img.Pix[off] = byte(v >> 8)
			img.Pix[off+1] = byte(v)
		}
	}
	var buf bytes.Buffer
	if err := tiff.Encode(&buf, img, nil); err != nil {
		t.Fatalf("tiff.Encode failed: %v", err)
	}
	return &buf
}

func TestDecodeFrameGray16TIFF(t *testing.T) {
	samples := []uint16{0, 1000, 40000, 65535, 12, 300}
	buf := encodeGray16TIFF(t, 3, 2, samples)

	grid, err := DecodeFrame(buf)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if grid.Width != 3 || grid.Height != 2 {
		t.Errorf("dimensions = %dx%d, want 3x2", grid.Width, grid.Height)
	}
	if grid.BitDepth != 16 {
		t.Errorf("bit depth = %d, want 16", grid.BitDepth)
	}
	for i, want := range samples {
		if grid.Pix[i] != want {
			t.Errorf("sample %d = %d, want %d", i, grid.Pix[i], want)
		}
	}
}

func TestDecodeFrameGray8PNG(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	copy(img.Pix, []byte{0, 10, 200, 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	grid, err := DecodeFrame(&buf)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if grid.BitDepth != 8 {
		t.Errorf("bit depth = %d, want 8", grid.BitDepth)
	}
	want := []uint16{0, 10, 200, 255}
	for i, w := range want {
		if grid.Pix[i] != w {
			t.Errorf("sample %d = %d, want %d", i, grid.Pix[i], w)
		}
	}
}

func TestDecodeFrameColorInputReducesToLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3] = 255, 255, 255, 255

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}

	grid, err := DecodeFrame(&buf)
	if err != nil {
		t.Fatalf("DecodeFrame failed: %v", err)
	}
	if grid.BitDepth != 16 {
		t.Errorf("bit depth = %d, want 16 for the color path", grid.BitDepth)
	}
	// Full white must stay at full scale through the luminance weights.
	if grid.Pix[0] != 65535 {
		t.Errorf("white pixel = %d, want 65535", grid.Pix[0])
	}
}

func TestDecodeFrameCorruptStream(t *testing.T) {
	_, err := DecodeFrame(strings.NewReader("not an image at all"))
	if err == nil {
		t.Fatal("expected error for corrupt stream")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeLoadFailure) {
		t.Errorf("error type = %v, want load_failure", err)
	}
}

func TestConverterRegistry(t *testing.T) {
	registry := DefaultConverterRegistry("rawconv")

	tests := []struct {
		path       string
		wantFamily string
		wantFound  bool
	}{
		{"frames/IMG_0001.CR2", "canon", true},
		{"frames/capture.nef", "nikon", true},
		{"frames/capture.arw", "sony", true},
		{"frames/capture.dng", "adobe", true},
		{"frames/dark.tif", "", false},
	}
	for _, tt := range tests {
		conv, ok := registry.Resolve(tt.path)
		if ok != tt.wantFound {
			t.Errorf("Resolve(%q) found = %v, want %v", tt.path, ok, tt.wantFound)
			continue
		}
		if ok && conv.Family() != tt.wantFamily {
			t.Errorf("Resolve(%q) family = %q, want %q", tt.path, conv.Family(), tt.wantFamily)
		}
	}

	if !registry.IsRawExtension(".CR3") {
		t.Error("IsRawExtension(.CR3) = false, want true")
	}
	if registry.IsRawExtension(".png") {
		t.Error("IsRawExtension(.png) = true, want false")
	}
}

func TestEmptyConverterRegistry(t *testing.T) {
	registry := DefaultConverterRegistry("")
	if _, ok := registry.Resolve("a.cr2"); ok {
		t.Error("empty registry resolved a converter")
	}
}
