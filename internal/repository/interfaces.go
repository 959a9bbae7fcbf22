package repository

import (
	"context"

	"go-darkframe-inspector/pkg/models"
)

// FrameRepository defines the data access boundary for dark frames. The
// analysis pipeline only ever sees decoded sample grids; where they come
// from (disk, HTTP, blob storage) is the repository's concern.
type FrameRepository interface {
	// ListFrames enumerates analyzable frame sources in discovery order.
	ListFrames(ctx context.Context) ([]string, error)

	// FetchFrame retrieves and decodes one frame by source string.
	FetchFrame(ctx context.Context, source string) (*models.SampleGrid, error)

	// ValidateSource checks that the source string is acceptable before any
	// fetch is attempted.
	ValidateSource(source string) error
}
