package loader

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	apperrors "go-darkframe-inspector/internal/errors"
)

// RawConverter converts a vendor RAW file into a 16-bit linear TIFF. The
// converter is a black box; the engine never inspects RAW bytes itself.
type RawConverter interface {
	// Family names the RAW family this converter handles (canon, nikon, ...).
	Family() string

	// Supports reports whether the converter handles the given extension.
	Supports(ext string) bool

	// Convert produces a TIFF next to the RAW file and returns its path.
	Convert(ctx context.Context, rawPath string) (string, error)
}

// ConverterRegistry resolves a RAW converter from a file path once, at the
// collaborator boundary. Resolution never happens inside the statistics
// core.
type ConverterRegistry struct {
	converters []RawConverter
}

// NewConverterRegistry creates a registry over the given converters.
func NewConverterRegistry(converters ...RawConverter) *ConverterRegistry {
	return &ConverterRegistry{converters: converters}
}

// DefaultConverterRegistry wires the supported RAW families to one external
// converter command. An empty command yields an empty registry: RAW inputs
// are then reported as unsupported load failures.
func DefaultConverterRegistry(command string) *ConverterRegistry {
	if command == "" {
		return NewConverterRegistry()
	}
	return NewConverterRegistry(
		newExternalConverter("canon", []string{".cr2", ".cr3"}, command),
		newExternalConverter("nikon", []string{".nef", ".nrw"}, command),
		newExternalConverter("sony", []string{".arw"}, command),
		newExternalConverter("adobe", []string{".dng"}, command),
	)
}

// Resolve returns the converter for the path's extension, if any.
func (r *ConverterRegistry) Resolve(path string) (RawConverter, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range r.converters {
		if c.Supports(ext) {
			return c, true
		}
	}
	return nil, false
}

// IsRawExtension reports whether any registered converter claims the
// extension.
func (r *ConverterRegistry) IsRawExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, c := range r.converters {
		if c.Supports(ext) {
			return true
		}
	}
	return false
}

// externalConverter shells out to a RAW decoder that writes a 16-bit TIFF
// beside the input file.
type externalConverter struct {
	family     string
	extensions []string
	command    string
}

func newExternalConverter(family string, extensions []string, command string) RawConverter {
	return &externalConverter{family: family, extensions: extensions, command: command}
}

func (c *externalConverter) Family() string { return c.family }

func (c *externalConverter) Supports(ext string) bool {
	for _, e := range c.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

func (c *externalConverter) Convert(ctx context.Context, rawPath string) (string, error) {
	outPath := strings.TrimSuffix(rawPath, filepath.Ext(rawPath)) + ".tif"
	cmd := exec.CommandContext(ctx, c.command, "-o", outPath, rawPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", apperrors.NewLoadFailure(
			fmt.Sprintf("%s RAW conversion failed: %s", c.family, strings.TrimSpace(string(out))), err)
	}
	return outPath, nil
}
