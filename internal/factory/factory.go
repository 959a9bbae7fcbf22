package factory

import (
	"fmt"

	"go-darkframe-inspector/internal/config"
	"go-darkframe-inspector/internal/loader"
	"go-darkframe-inspector/internal/storage"
)

// StorageType represents different types of frame source backends
type StorageType string

const (
	// HTTPStorage for HTTP-based frame fetching
	HTTPStorage StorageType = "http"
	// AzureStorage for Azure blob storage
	AzureStorage StorageType = "azure"
	// LocalStorage for local file system
	LocalStorage StorageType = "local"
)

// StorageFactory creates frame source implementations
type StorageFactory interface {
	CreateFetcher(cfg *config.Config) (storage.FrameFetcher, error)
}

// storageFactory implements StorageFactory
type storageFactory struct{}

// NewStorageFactory creates a new storage factory
func NewStorageFactory() StorageFactory {
	return &storageFactory{}
}

// CreateFetcher resolves the backend once from configuration. The rest of
// the pipeline only ever sees the FrameFetcher interface.
func (f *storageFactory) CreateFetcher(cfg *config.Config) (storage.FrameFetcher, error) {
	switch StorageType(cfg.SourceType) {
	case HTTPStorage:
		return storage.NewHTTPFrameFetcher(), nil
	case AzureStorage:
		return storage.NewAzureStorage(cfg.AzureAccountName, cfg.AzureAccountKey, cfg.AzureContainer)
	case LocalStorage:
		converters := loader.DefaultConverterRegistry(cfg.RawConverterCommand)
		return storage.NewLocalStorage(cfg.SourceRoot, converters)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.SourceType)
	}
}
