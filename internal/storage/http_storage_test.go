package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	apperrors "go-darkframe-inspector/internal/errors"
)

func frameServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPFetchFrame(t *testing.T) {
	samples := []uint16{5, 10, 15, 20}
	srv := frameServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/tiff")
		buf := encodeTestTIFF(t, samples, 2, 2)
		w.Write(buf)
	})

	grid, err := NewHTTPFrameFetcher().FetchFrame(context.Background(), srv.URL+"/dark.tif")
	if err != nil {
		t.Fatalf("FetchFrame failed: %v", err)
	}
	if grid.Width != 2 || grid.Height != 2 {
		t.Errorf("grid = %dx%d, want 2x2", grid.Width, grid.Height)
	}
	for i, want := range samples {
		if grid.Pix[i] != want {
			t.Errorf("sample %d = %d, want %d", i, grid.Pix[i], want)
		}
	}
}

func TestHTTPFetchFrameClientErrorDoesNotRetry(t *testing.T) {
	var attempts int32
	srv := frameServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		http.Error(w, "gone", http.StatusNotFound)
	})

	_, err := NewHTTPFrameFetcher().FetchFrame(context.Background(), srv.URL+"/absent.tif")
	if err == nil {
		t.Fatal("404 response accepted")
	}
	if got := atomic.LoadInt32(&attempts); got != 1 {
		t.Errorf("attempts = %d, want 1 (4xx must not retry)", got)
	}
}

func TestHTTPFetchFrameRetriesServerErrors(t *testing.T) {
	var attempts int32
	samples := []uint16{1, 2, 3, 4}
	srv := frameServer(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.Write(encodeTestTIFF(t, samples, 2, 2))
	})

	grid, err := NewHTTPFrameFetcher().FetchFrame(context.Background(), srv.URL+"/dark.tif")
	if err != nil {
		t.Fatalf("FetchFrame failed after retries: %v", err)
	}
	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
	if grid.Pix[0] != 1 {
		t.Errorf("sample 0 = %d, want 1", grid.Pix[0])
	}
}

func TestHTTPFetchFrameCorruptBody(t *testing.T) {
	srv := frameServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not a frame"))
	})

	_, err := NewHTTPFrameFetcher().FetchFrame(context.Background(), srv.URL+"/bad.tif")
	if err == nil {
		t.Fatal("corrupt body accepted")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeLoadFailure) {
		t.Errorf("error type = %v, want load_failure", err)
	}
}

func TestHTTPFetchFrameInvalidURL(t *testing.T) {
	_, err := NewHTTPFrameFetcher().FetchFrame(context.Background(), "http://bad url/frame.tif")
	if err == nil {
		t.Fatal("invalid URL accepted")
	}
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("error type = %v, want validation", err)
	}
}
