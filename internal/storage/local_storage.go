package storage

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "go-darkframe-inspector/internal/errors"
	"go-darkframe-inspector/internal/loader"
	"go-darkframe-inspector/pkg/models"
)

// frameExtensions are the directly decodable container formats.
var frameExtensions = map[string]bool{
	".tif":  true,
	".tiff": true,
	".png":  true,
}

// LocalStorage reads frames from a directory tree rooted at a configured
// folder. RAW files are converted through the registry resolved once at
// construction, never inside the analysis pipeline.
type LocalStorage struct {
	root       string
	converters *loader.ConverterRegistry
}

// NewLocalStorage creates a local frame source rooted at dir.
func NewLocalStorage(dir string, converters *loader.ConverterRegistry) (*LocalStorage, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, apperrors.NewNotFoundError("frame folder not accessible", err)
	}
	if !info.IsDir() {
		return nil, apperrors.NewValidationError("frame root is not a directory", nil)
	}
	if converters == nil {
		converters = loader.NewConverterRegistry()
	}
	return &LocalStorage{root: dir, converters: converters}, nil
}

// ListFrames returns the analyzable files directly under the root in
// lexical order. Lexical order is the batch's reproducible discovery order.
func (s *LocalStorage) ListFrames(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, apperrors.NewNotFoundError("cannot read frame folder", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if frameExtensions[ext] || s.converters.IsRawExtension(ext) {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// FetchFrame opens and decodes one frame. RAW sources are first converted
// to TIFF by the external decoder.
func (s *LocalStorage) FetchFrame(ctx context.Context, source string) (*models.SampleGrid, error) {
	path := filepath.Join(s.root, filepath.FromSlash(source))

	if converter, ok := s.converters.Resolve(path); ok {
		tiffPath, err := converter.Convert(ctx, path)
		if err != nil {
			return nil, err
		}
		path = tiffPath
	} else if ext := strings.ToLower(filepath.Ext(path)); !frameExtensions[ext] {
		return nil, apperrors.NewLoadFailure("unsupported frame format "+ext, nil)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewLoadFailure("cannot open frame file", err)
	}
	defer f.Close()

	return loader.DecodeFrame(f)
}
