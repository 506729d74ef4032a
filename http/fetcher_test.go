package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mlapinski/offprint"
	ophttp "github.com/mlapinski/offprint/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure ByteFetcher implements offprint.ByteFetcher at compile time.
var _ offprint.ByteFetcher = (*ophttp.ByteFetcher)(nil)

func TestByteFetcher_FetchBytes(t *testing.T) {
	t.Parallel()

	t.Run("returns image bytes", func(t *testing.T) {
		t.Parallel()

		payload := []byte("\x89PNG\r\n\x1a\nimagedata")
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(payload)
		}))
		defer srv.Close()

		got, err := ophttp.NewByteFetcher().FetchBytes(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := ophttp.NewByteFetcher().FetchBytes(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("non-image content type is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		_, err := ophttp.NewByteFetcher().FetchBytes(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "content type")
	})

	t.Run("oversized payload is an error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write(make([]byte, 64))
		}))
		defer srv.Close()

		f := ophttp.NewByteFetcher(ophttp.WithMaxBytes(16))
		_, err := f.FetchBytes(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds")
	})

	t.Run("context cancellation aborts the request", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := ophttp.NewByteFetcher().FetchBytes(ctx, srv.URL)
		require.Error(t, err)
	})
}
