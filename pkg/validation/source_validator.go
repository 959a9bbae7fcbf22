package validation

import (
	"net/url"
	"path/filepath"
	"strings"
)

// SourceValidator checks frame source strings before any fetch happens.
// A source is either an http(s) URL or a path relative to the configured
// frame root.
type SourceValidator struct {
	allowedSchemes []string
}

// NewSourceValidator creates a source validator accepting http and https
// URLs alongside relative paths.
func NewSourceValidator() *SourceValidator {
	return &SourceValidator{allowedSchemes: []string{"http", "https"}}
}

// ValidateSource reports whether the source string is acceptable.
func (v *SourceValidator) ValidateSource(source string) error {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return ErrEmptySource
	}
	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		if !v.isSchemeAllowed(parsed.Scheme) {
			return ErrSchemeNotAllowed
		}
		return nil
	}
	// Treated as a path: it must stay inside the frame root.
	clean := filepath.ToSlash(filepath.Clean(trimmed))
	if strings.HasPrefix(clean, "../") || clean == ".." {
		return ErrPathEscapesRoot
	}
	return nil
}

func (v *SourceValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}
