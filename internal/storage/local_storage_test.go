package storage

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/image/tiff"

	apperrors "go-darkframe-inspector/internal/errors"
	"go-darkframe-inspector/internal/loader"
)

// encodeTestTIFF renders samples into a 16-bit grayscale TIFF byte stream.
func encodeTestTIFF(t *testing.T, samples []uint16, width, height int) []byte {
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
	return buf.Bytes()
}

func writeTestTIFF(t *testing.T, path string, samples []uint16, width, height int) {
	t.Helper()
	if err := os.WriteFile(path, encodeTestTIFF(t, samples, width, height), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("touching %s: %v", path, err)
	}
}

func TestNewLocalStorageValidatesRoot(t *testing.T) {
	if _, err := NewLocalStorage(filepath.Join(t.TempDir(), "absent"), nil); err == nil {
		t.Error("missing root accepted")
	}

	file := filepath.Join(t.TempDir(), "file")
	touch(t, file)
	if _, err := NewLocalStorage(file, nil); err == nil {
		t.Error("non-directory root accepted")
	}
}

func TestListFramesLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "z_dark.png"))
	touch(t, filepath.Join(dir, "a_dark.tiff"))
	touch(t, filepath.Join(dir, "m_dark.TIF"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "capture.cr2"))
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	store, err := NewLocalStorage(dir, loader.DefaultConverterRegistry("rawconv"))
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	names, err := store.ListFrames(context.Background())
	if err != nil {
		t.Fatalf("ListFrames failed: %v", err)
	}

	want := []string{"a_dark.tiff", "capture.cr2", "m_dark.TIF", "z_dark.png"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ListFrames = %v, want %v", names, want)
	}
}

func TestListFramesWithoutRawSupport(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.tif"))
	touch(t, filepath.Join(dir, "capture.cr2"))

	store, err := NewLocalStorage(dir, nil)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	names, err := store.ListFrames(context.Background())
	if err != nil {
		t.Fatalf("ListFrames failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"a.tif"}) {
		t.Errorf("ListFrames = %v, want [a.tif] (RAW disabled)", names)
	}
}

func TestFetchFrameDecodesTIFF(t *testing.T) {
	dir := t.TempDir()
	samples := []uint16{10, 20, 30, 40}
	writeTestTIFF(t, filepath.Join(dir, "dark.tif"), samples, 2, 2)

	store, err := NewLocalStorage(dir, nil)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	grid, err := store.FetchFrame(context.Background(), "dark.tif")
	if err != nil {
		t.Fatalf("FetchFrame failed: %v", err)
	}
	if grid.Width != 2 || grid.Height != 2 || grid.BitDepth != 16 {
		t.Errorf("grid = %dx%d %d-bit, want 2x2 16-bit", grid.Width, grid.Height, grid.BitDepth)
	}
	if !reflect.DeepEqual(grid.Pix, samples) {
		t.Errorf("samples = %v, want %v", grid.Pix, samples)
	}
}

func TestFetchFrameUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "frame.bmp"))

	store, err := NewLocalStorage(dir, nil)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	_, err = store.FetchFrame(context.Background(), "frame.bmp")
	if err == nil {
		t.Fatal("unsupported format accepted")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeLoadFailure) {
		t.Errorf("error type = %v, want load_failure", err)
	}
}

func TestFetchFrameMissingFile(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}
	if _, err := store.FetchFrame(context.Background(), "absent.tif"); err == nil {
		t.Error("missing file accepted")
	}
}
