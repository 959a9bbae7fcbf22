package repository

import "errors"

var (
	// ErrInvalidFrameSource indicates an unacceptable frame source string
	ErrInvalidFrameSource = errors.New("invalid frame source")

	// ErrFrameNotFound indicates the frame was not found
	ErrFrameNotFound = errors.New("frame not found")

	// ErrListingUnsupported indicates the backing store cannot enumerate frames
	ErrListingUnsupported = errors.New("frame listing not supported by this backend")

	// ErrRepositoryUnavailable indicates the repository is unavailable
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)
