package validation

import "errors"

var (
	// ErrEmptySource indicates an empty frame source string.
	ErrEmptySource = errors.New("frame source is empty")

	// ErrSchemeNotAllowed indicates a URL scheme outside the allowed set.
	ErrSchemeNotAllowed = errors.New("source URL scheme not allowed")

	// ErrPathEscapesRoot indicates a path source that climbs out of the
	// configured frame root.
	ErrPathEscapesRoot = errors.New("source path escapes frame root")
)
