package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	apperrors "go-darkframe-inspector/internal/errors"
	"go-darkframe-inspector/internal/loader"
	"go-darkframe-inspector/pkg/models"
)

// AzureStorage reads frames from an Azure Blob container, for QA farms that
// upload capture output to blob storage. Sources are blob names within the
// configured container.
type AzureStorage struct {
	client    *azblob.Client
	container string
}

// NewAzureStorage creates a blob-backed frame source.
func NewAzureStorage(accountName, accountKey, container string) (*AzureStorage, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, apperrors.NewConfigurationError("invalid azure credentials", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s.blob.core.windows.net", accountName),
		credential,
		nil,
	)
	if err != nil {
		return nil, apperrors.NewConfigurationError("cannot create azure client", err)
	}

	return &AzureStorage{client: client, container: container}, nil
}

// ListFrames enumerates analyzable blobs in the container. The pager yields
// blobs in lexical order, which doubles as the discovery order.
func (s *AzureStorage) ListFrames(ctx context.Context) ([]string, error) {
	var names []string
	pager := s.client.NewListBlobsFlatPager(s.container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, apperrors.NewNetworkError("cannot list frame container", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			name := *item.Name
			dot := strings.LastIndex(name, ".")
			if dot < 0 {
				continue
			}
			if frameExtensions[strings.ToLower(name[dot:])] {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// FetchFrame downloads and decodes one blob.
func (s *AzureStorage) FetchFrame(ctx context.Context, source string) (*models.SampleGrid, error) {
	downloadResponse, err := s.client.DownloadStream(ctx, s.container, source, nil)
	if err != nil {
		return nil, apperrors.NewLoadFailure("blob download failed", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	return loader.DecodeFrame(retryReader)
}
