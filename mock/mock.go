// Package mock provides function-field mock implementations of the domain
// interfaces for tests.
package mock

import (
	"context"

	"github.com/mlapinski/offprint"
)

var _ offprint.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of offprint.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ offprint.ByteFetcher = (*ByteFetcher)(nil)

// ByteFetcher is a mock implementation of offprint.ByteFetcher.
type ByteFetcher struct {
	FetchBytesFn func(ctx context.Context, url string) ([]byte, error)
}

func (f *ByteFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return f.FetchBytesFn(ctx, url)
}

var _ offprint.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of offprint.Extractor.
type Extractor struct {
	ExtractFn func(html, url string) (*offprint.Article, error)
}

func (e *Extractor) Extract(html, url string) (*offprint.Article, error) {
	return e.ExtractFn(html, url)
}

var _ offprint.BodyStrategy = (*BodyStrategy)(nil)

// BodyStrategy is a mock implementation of offprint.BodyStrategy.
type BodyStrategy struct {
	NameFn      func() string
	FragmentsFn func(html string) ([]offprint.Fragment, error)
}

func (s *BodyStrategy) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}

func (s *BodyStrategy) Fragments(html string) ([]offprint.Fragment, error) {
	return s.FragmentsFn(html)
}

var _ offprint.ImageResolver = (*ImageResolver)(nil)

// ImageResolver is a mock implementation of offprint.ImageResolver.
type ImageResolver struct {
	ResolveFn      func(ctx context.Context, ref *offprint.ImageRef) (*offprint.ImageAsset, error)
	ResolveCoverFn func(ctx context.Context, url string) error
	CoverFn        func() *offprint.ImageAsset
	AssetsFn       func() []*offprint.ImageAsset
}

func (r *ImageResolver) Resolve(ctx context.Context, ref *offprint.ImageRef) (*offprint.ImageAsset, error) {
	return r.ResolveFn(ctx, ref)
}

func (r *ImageResolver) ResolveCover(ctx context.Context, url string) error {
	if r.ResolveCoverFn == nil {
		return nil
	}
	return r.ResolveCoverFn(ctx, url)
}

func (r *ImageResolver) Cover() *offprint.ImageAsset {
	if r.CoverFn == nil {
		return nil
	}
	return r.CoverFn()
}

func (r *ImageResolver) Assets() []*offprint.ImageAsset {
	if r.AssetsFn == nil {
		return nil
	}
	return r.AssetsFn()
}

var _ offprint.IndexReader = (*IndexReader)(nil)

// IndexReader is a mock implementation of offprint.IndexReader.
type IndexReader struct {
	ArticleLinksFn func(html, baseURL string) ([]offprint.ArticleLink, error)
	CoverURLFn     func(html string) string
}

func (i *IndexReader) ArticleLinks(html, baseURL string) ([]offprint.ArticleLink, error) {
	return i.ArticleLinksFn(html, baseURL)
}

func (i *IndexReader) CoverURL(html string) string {
	if i.CoverURLFn == nil {
		return ""
	}
	return i.CoverURLFn(html)
}

var _ offprint.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of offprint.Sanitizer.
type Sanitizer struct {
	SanitizeInlineFn func(html string) string
}

func (s *Sanitizer) SanitizeInline(html string) string {
	if s.SanitizeInlineFn == nil {
		return html
	}
	return s.SanitizeInlineFn(html)
}
