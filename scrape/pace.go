package scrape

import (
	"context"
	"time"

	"github.com/mlapinski/offprint"
	"golang.org/x/time/rate"
)

// DefaultInterval is the mandatory delay between successive requests.
// Deliberately conservative: the source rate-limits and bot-detects, and a
// detected session dies for the whole run.
const DefaultInterval = 2 * time.Second

// Pacer enforces the inter-request delay shared by page and image fetches.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer with the given minimum interval between
// requests. Non-positive intervals fall back to DefaultInterval.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next request is allowed.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// Ensure PacedByteFetcher implements offprint.ByteFetcher at compile time.
var _ offprint.ByteFetcher = (*PacedByteFetcher)(nil)

// PacedByteFetcher runs every image request through the shared pacer, so
// image fetches and page fetches count against the same budget.
type PacedByteFetcher struct {
	next  offprint.ByteFetcher
	pacer *Pacer
}

// NewPacedByteFetcher wraps a ByteFetcher with the pacer.
func NewPacedByteFetcher(next offprint.ByteFetcher, pacer *Pacer) *PacedByteFetcher {
	return &PacedByteFetcher{next: next, pacer: pacer}
}

// FetchBytes waits for the pacer, then delegates.
func (f *PacedByteFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	if err := f.pacer.Wait(ctx); err != nil {
		return nil, err
	}
	return f.next.FetchBytes(ctx, url)
}
