package assets

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/mlapinski/offprint"
)

// Ensure Resolver implements offprint.ImageResolver at compile time.
var _ offprint.ImageResolver = (*Resolver)(nil)

// Resolver resolves image references against the edition registry:
// best-quality candidate selection, cover classification, fetch caching
// and content-fingerprint deduplication.
type Resolver struct {
	fetcher  offprint.ByteFetcher
	registry *Registry
	rules    offprint.Rules
}

// NewResolver creates a Resolver with a fresh registry.
func NewResolver(rules offprint.Rules, fetcher offprint.ByteFetcher) *Resolver {
	return &Resolver{
		fetcher:  fetcher,
		registry: NewRegistry(),
		rules:    rules,
	}
}

// Registry exposes the owned registry, mainly for assembly and tests.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve maps a reference to the single deduplicated asset for its image.
// Cover art and tracking pixels return (nil, nil): the caller drops them
// from the body. Fetch problems return an *offprint.ImageFailure; image
// loss is non-fatal.
func (r *Resolver) Resolve(ctx context.Context, ref *offprint.ImageRef) (*offprint.ImageAsset, error) {
	raw := BestCandidate(ref.Candidates)
	if raw == "" {
		return nil, &offprint.ImageFailure{Cause: offprint.ImageDecodeError}
	}

	absolute := r.absolute(raw)
	if isSkipped(absolute, r.rules.ImageSkipPatterns) {
		return nil, nil
	}

	if isCover(absolute, r.rules.CoverMarkers) {
		// A cover fetch failure leaves the edition coverless; the
		// packaging writer substitutes a generated one.
		_ = r.ResolveCover(ctx, absolute)
		return nil, nil
	}

	fetchURL := HighResURL(absolute, r.rules)
	canonical := NormalizeURL(fetchURL)

	if asset, failure := r.registry.Ref(canonical); asset != nil {
		ref.Fingerprint = asset.Fingerprint
		return asset, nil
	} else if failure != nil {
		return nil, failure
	}

	data, err := r.fetch(ctx, canonical, fetchURL)
	if err != nil {
		return nil, err
	}

	asset := r.registry.Register(canonical, data)
	ref.Fingerprint = asset.Fingerprint
	return asset, nil
}

// ResolveCover seeds the edition cover from an explicit URL. The first
// cover wins; later calls and cover-classified references are ignored.
// A URL whose fetch already failed replays the recorded failure instead of
// requesting it again.
func (r *Resolver) ResolveCover(ctx context.Context, coverURL string) error {
	if r.registry.Cover() != nil {
		return nil
	}
	absolute := r.absolute(coverURL)
	canonical := NormalizeURL(absolute)
	if _, failure := r.registry.Lookup(canonical); failure != nil {
		return failure
	}
	data, failure := r.fetch(ctx, canonical, absolute)
	if failure != nil {
		return failure
	}
	r.registry.SetCover(&offprint.ImageAsset{
		CanonicalURL: canonical,
		Fingerprint:  Fingerprint(data),
		Data:         data,
		RefCount:     1,
	})
	return nil
}

// Cover returns the edition-level cover asset, if one was seen.
func (r *Resolver) Cover() *offprint.ImageAsset {
	return r.registry.Cover()
}

// Assets returns all registered article assets in first-seen order.
func (r *Resolver) Assets() []*offprint.ImageAsset {
	return r.registry.Assets()
}

// fetch retrieves image bytes, validating that they decode as an image,
// and records failures so the URL is not re-requested.
func (r *Resolver) fetch(ctx context.Context, canonical, fetchURL string) ([]byte, *offprint.ImageFailure) {
	data, err := r.fetcher.FetchBytes(ctx, fetchURL)
	if err != nil {
		failure := &offprint.ImageFailure{URL: fetchURL, Cause: offprint.ImageFetchError, Err: err}
		r.registry.RecordFailure(canonical, failure)
		return nil, failure
	}

	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		failure := &offprint.ImageFailure{URL: fetchURL, Cause: offprint.ImageDecodeError}
		r.registry.RecordFailure(canonical, failure)
		return nil, failure
	}

	return data, nil
}

// absolute resolves site-relative image paths against the base URL.
func (r *Resolver) absolute(imgURL string) string {
	if strings.HasPrefix(imgURL, "http://") || strings.HasPrefix(imgURL, "https://") {
		return imgURL
	}
	base, err := url.Parse(r.rules.BaseURL)
	if err != nil {
		return imgURL
	}
	ref, err := url.Parse(imgURL)
	if err != nil {
		return imgURL
	}
	return base.ResolveReference(ref).String()
}
