// Package scrape orchestrates one edition run: index discovery, paced
// per-article extraction, image resolution, and edition assembly. The
// pipeline is deliberately sequential: parallel fetching is what trips
// the source site's rate limiting and bot detection.
package scrape

import (
	"context"
	"log/slog"

	"github.com/mlapinski/offprint"
)

// maxConsecutiveFetchFailures is the point at which page-fetch errors stop
// looking like flaky pages and start looking like a dead browser session
// (authentication lost). Retrying a dead session cannot succeed, so the
// run aborts and surfaces to the operator instead.
const maxConsecutiveFetchFailures = 3

// Progress reports per-article pipeline progress.
type Progress struct {
	URL       string
	Title     string
	Completed int
	Total     int
	Err       error
}

// ProgressFunc is called once per processed article.
type ProgressFunc func(Progress)

// Scraper drives the content-normalization pipeline for one edition.
type Scraper struct {
	Fetcher   offprint.Fetcher
	Index     offprint.IndexReader
	Extractor offprint.Extractor
	Resolver  offprint.ImageResolver
	Rules     offprint.Rules
	Pacer     *Pacer
	Logger    *slog.Logger

	// Limit caps the number of articles processed; zero means all.
	Limit int
}

// Run processes the edition behind indexURL and returns the assembled
// Edition plus the failure report. Per-article and per-image failures are
// recovered locally; only a collaborator-level failure (the session cannot
// retrieve pages at all) aborts the run.
func (s *Scraper) Run(ctx context.Context, indexURL string, progress ProgressFunc) (*offprint.Edition, *Report, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pacer := s.Pacer
	if pacer == nil {
		pacer = NewPacer(0)
	}
	report := newReport()

	indexHTML, err := s.Fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return nil, report, offprint.Errorf(offprint.EUNAVAILABLE,
			"edition index unreachable, browser session may need login: %v", err)
	}

	coverURL := s.Index.CoverURL(indexHTML)
	date := ""
	if coverURL != "" {
		date = offprint.DateFromCoverURL(coverURL)
	}
	if date == "" {
		date = offprint.DateFromText(indexHTML)
	}
	if coverURL != "" {
		if err := s.Resolver.ResolveCover(ctx, coverURL); err != nil {
			logger.Warn("cover fetch failed", "url", coverURL, "error", err)
			if failure, ok := err.(*offprint.ImageFailure); ok {
				report.addImageFailure(failure)
			}
		}
	}

	links, err := s.Index.ArticleLinks(indexHTML, s.Rules.BaseURL)
	if err != nil {
		return nil, report, err
	}
	if len(links) == 0 {
		return nil, report, offprint.Errorf(offprint.ENOTFOUND,
			"no article links found on %s", indexURL)
	}
	if s.Limit > 0 && len(links) > s.Limit {
		links = links[:s.Limit]
	}
	report.ArticlesFound = len(links)
	logger.Info("edition discovered", "date", date, "articles", len(links))

	var articles []*offprint.Article
	consecutiveFetchFailures := 0

	for i, link := range links {
		if err := pacer.Wait(ctx); err != nil {
			return nil, report, err
		}

		article, err := s.processArticle(ctx, link, report)
		if err != nil {
			consecutiveFetchFailures++
			if consecutiveFetchFailures >= maxConsecutiveFetchFailures {
				return nil, report, offprint.Errorf(offprint.EUNAVAILABLE,
					"%d consecutive page fetches failed, browser session looks dead: %v",
					consecutiveFetchFailures, err)
			}
		} else {
			consecutiveFetchFailures = 0
		}

		if article != nil {
			articles = append(articles, article)
		}
		if progress != nil {
			progress(Progress{
				URL:       link.URL,
				Title:     link.Title,
				Completed: i + 1,
				Total:     len(links),
				Err:       err,
			})
		}
	}
	report.ArticlesExtracted = len(articles)

	meta := offprint.EditionMetadata(s.Rules.PublicationName, date)
	edition := offprint.AssembleEdition(meta, articles, s.Rules.CharsPerPage)
	edition.Cover = s.Resolver.Cover()
	edition.Assets = s.Resolver.Assets()
	edition.Counters.Images = len(edition.Assets)

	return edition, report, nil
}

// processArticle fetches, extracts and image-resolves one article. The
// returned error is non-nil only for page-fetch failures, which feed the
// dead-session detector; extraction failures are recorded and swallowed.
func (s *Scraper) processArticle(ctx context.Context, link offprint.ArticleLink, report *Report) (*offprint.Article, error) {
	html, err := s.Fetcher.Fetch(ctx, link.URL)
	if err != nil {
		report.addExtractionFailure(&offprint.ExtractionFailure{
			URL:    link.URL,
			Reason: offprint.ReasonPageFetch,
			Err:    err,
		})
		return nil, err
	}

	article, err := s.Extractor.Extract(html, link.URL)
	if err != nil {
		if failure, ok := err.(*offprint.ExtractionFailure); ok {
			report.addExtractionFailure(failure)
		} else {
			report.addExtractionFailure(&offprint.ExtractionFailure{
				URL:    link.URL,
				Reason: offprint.ReasonNoContent,
				Err:    err,
			})
		}
		return nil, nil
	}

	if article.Title == "" {
		article.Title = link.Title
	}
	if article.Section == offprint.SectionUncategorized && link.Section != "" {
		article.Section = link.Section
	}

	article.Blocks = s.resolveImages(ctx, article.Blocks, report)
	return article, nil
}

// resolveImages runs every image block through the resolver. Cover art and
// tracking pixels drop out of the sequence; failed images keep their block
// with the image omitted so captions survive.
func (s *Scraper) resolveImages(ctx context.Context, blocks []offprint.ContentBlock, report *Report) []offprint.ContentBlock {
	out := blocks[:0]
	for _, block := range blocks {
		if block.Type != offprint.BlockImage {
			out = append(out, block)
			continue
		}

		asset, err := s.Resolver.Resolve(ctx, block.Image)
		if err != nil {
			if failure, ok := err.(*offprint.ImageFailure); ok {
				report.addImageFailure(failure)
			}
			if block.Image.Caption != "" || block.Image.Credit != "" {
				out = append(out, block)
			}
			continue
		}
		if asset == nil {
			// Cover art or tracking pixel.
			continue
		}
		out = append(out, block)
	}
	return out
}

