package storage

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	apperrors "go-darkframe-inspector/internal/errors"
	"go-darkframe-inspector/internal/loader"
	"go-darkframe-inspector/pkg/models"
)

// HTTPFrameFetcher downloads frames over HTTP for QA stations that expose
// capture output through a web endpoint.
type HTTPFrameFetcher struct {
	client *http.Client
}

// NewHTTPFrameFetcher creates an HTTP frame fetcher with connection pooling
// tuned for one-at-a-time frame downloads.
func NewHTTPFrameFetcher() *HTTPFrameFetcher {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		DisableCompression:     false,
		MaxResponseHeaderBytes: 4096,

		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true,
		},
	}

	return &HTTPFrameFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
	}
}

// FetchFrame downloads and decodes one frame. Transient failures (network
// errors, 5xx) are retried up to three times; 4xx responses are not.
func (h *HTTPFrameFetcher) FetchFrame(ctx context.Context, source string) (*models.SampleGrid, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", source, nil)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid frame URL", err)
	}

	req.Header.Set("Accept", "image/tiff, image/png, */*")
	req.Header.Set("User-Agent", "Darkframe-Inspector/1.0")

	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		resp, err = h.client.Do(req)
		if err != nil {
			lastErr = err
		}
		if err == nil && resp != nil && resp.StatusCode == http.StatusOK {
			break
		}

		if err == nil && resp != nil {
			resp.Body.Close()
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				lastErr = fmt.Errorf("client error: status code %d", resp.StatusCode)
				resp = nil
				break
			}
			if resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
			}
			resp = nil
		}

		if attempt < 2 {
			select {
			case <-ctx.Done():
				return nil, apperrors.NewTimeoutError("frame fetch canceled", ctx.Err())
			case <-time.After(time.Duration(attempt+1) * time.Second):
			}
		}
	}

	if resp == nil {
		if lastErr == nil {
			lastErr = fmt.Errorf("unknown error")
		}
		return nil, apperrors.NewNetworkError("failed to fetch frame after 3 attempts", lastErr)
	}
	defer resp.Body.Close()

	return loader.DecodeFrame(resp.Body)
}
