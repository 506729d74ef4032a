// Package slog provides logging decorators for the fetcher interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/mlapinski/offprint"
)

// Ensure Fetcher implements offprint.Fetcher at compile time.
var _ offprint.Fetcher = (*Fetcher)(nil)

// Fetcher wraps an offprint.Fetcher with structured request logging.
type Fetcher struct {
	next   offprint.Fetcher
	logger *slog.Logger
}

// NewFetcher creates a new logging Fetcher.
func NewFetcher(next offprint.Fetcher, logger *slog.Logger) *Fetcher {
	return &Fetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("page fetch failed",
			"url", url,
			"duration", time.Since(begin),
			"error", err,
		)
		return "", err
	}
	f.logger.Info("page fetched",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}

// Ensure ByteFetcher implements offprint.ByteFetcher at compile time.
var _ offprint.ByteFetcher = (*ByteFetcher)(nil)

// ByteFetcher wraps an offprint.ByteFetcher with structured request logging.
type ByteFetcher struct {
	next   offprint.ByteFetcher
	logger *slog.Logger
}

// NewByteFetcher creates a new logging ByteFetcher.
func NewByteFetcher(next offprint.ByteFetcher, logger *slog.Logger) *ByteFetcher {
	return &ByteFetcher{next: next, logger: logger}
}

// FetchBytes delegates to the wrapped fetcher and logs the outcome.
func (f *ByteFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	begin := time.Now()
	data, err := f.next.FetchBytes(ctx, url)
	if err != nil {
		f.logger.Warn("image fetch failed",
			"url", url,
			"duration", time.Since(begin),
			"error", err,
		)
		return nil, err
	}
	f.logger.Debug("image fetched",
		"url", url,
		"bytes", len(data),
		"duration", time.Since(begin),
	)
	return data, nil
}
