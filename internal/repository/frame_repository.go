package repository

import (
	"context"
	"fmt"

	"go-darkframe-inspector/internal/storage"
	"go-darkframe-inspector/pkg/models"
	"go-darkframe-inspector/pkg/validation"
)

// frameRepository binds a storage backend to source validation. If the
// backend cannot enumerate frames (HTTP), ListFrames reports
// ErrListingUnsupported and the caller must supply explicit sources.
type frameRepository struct {
	fetcher   storage.FrameFetcher
	validator *validation.SourceValidator
}

// NewFrameRepository creates a repository over the given storage backend.
func NewFrameRepository(fetcher storage.FrameFetcher, validator *validation.SourceValidator) FrameRepository {
	return &frameRepository{
		fetcher:   fetcher,
		validator: validator,
	}
}

func (r *frameRepository) ListFrames(ctx context.Context) ([]string, error) {
	lister, ok := r.fetcher.(storage.FrameLister)
	if !ok {
		return nil, ErrListingUnsupported
	}
	return lister.ListFrames(ctx)
}

func (r *frameRepository) FetchFrame(ctx context.Context, source string) (*models.SampleGrid, error) {
	if err := r.ValidateSource(source); err != nil {
		return nil, err
	}
	return r.fetcher.FetchFrame(ctx, source)
}

func (r *frameRepository) ValidateSource(source string) error {
	if err := r.validator.ValidateSource(source); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFrameSource, err)
	}
	return nil
}
