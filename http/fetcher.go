// Package http provides the HTTP-based implementation of
// offprint.ByteFetcher used for image payloads. Pages go through the
// browser session; images are plain GETs with the session's user agent.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mlapinski/offprint"
)

// DefaultFetchTimeout is the default timeout for image requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBytes caps an image download at 10MB.
const DefaultMaxBytes = 10 << 20

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Ensure ByteFetcher implements offprint.ByteFetcher at compile time.
var _ offprint.ByteFetcher = (*ByteFetcher)(nil)

// ByteFetcher retrieves image bytes over HTTP with a size cap and a
// content-type check.
type ByteFetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	userAgent string
}

// Option configures a ByteFetcher.
type Option func(*ByteFetcher)

// WithTimeout sets the timeout for image requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *ByteFetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets the download size cap.
func WithMaxBytes(n int64) Option {
	return func(f *ByteFetcher) {
		f.maxBytes = n
	}
}

// WithUserAgent overrides the request user agent.
func WithUserAgent(ua string) Option {
	return func(f *ByteFetcher) {
		f.userAgent = ua
	}
}

// NewByteFetcher creates a new HTTP-based ByteFetcher.
func NewByteFetcher(opts ...Option) *ByteFetcher {
	f := &ByteFetcher{
		timeout:   DefaultFetchTimeout,
		maxBytes:  DefaultMaxBytes,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// FetchBytes retrieves the bytes at url. Non-image content types and
// oversized payloads are errors: the caller treats them as image loss,
// never as article loss.
func (f *ByteFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("non-image content type %q for %s", ct, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes: %s", f.maxBytes, url)
	}

	return body, nil
}
