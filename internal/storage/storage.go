package storage

import (
	"context"

	"go-darkframe-inspector/pkg/models"
)

// FrameFetcher retrieves one dark frame by source string and decodes it into
// a sample grid. The source format depends on the backend: a relative path
// for local and blob storage, a URL for HTTP.
type FrameFetcher interface {
	FetchFrame(ctx context.Context, source string) (*models.SampleGrid, error)
}

// FrameLister enumerates frames in discovery order. Backends that address a
// single resource at a time (HTTP) do not implement it.
type FrameLister interface {
	ListFrames(ctx context.Context) ([]string, error)
}
