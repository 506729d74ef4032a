package scrape_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mlapinski/offprint"
	"github.com/mlapinski/offprint/mock"
	"github.com/mlapinski/offprint/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testLinks() []offprint.ArticleLink {
	return []offprint.ArticleLink{
		{Title: "First leader", URL: "https://www.economist.com/leaders/2026/03/05/a", Section: "Leaders"},
		{Title: "A business story", URL: "https://www.economist.com/business/2026/03/05/b", Section: "Business"},
		{Title: "Second leader", URL: "https://www.economist.com/leaders/2026/03/05/c", Section: "Leaders"},
	}
}

// bodyFor fabricates the article the mock extractor returns for a URL.
func bodyFor(url, title, section string) *offprint.Article {
	a := &offprint.Article{Title: title, Section: section, SourceURL: url}
	a.AddParagraph("The first paragraph of the extracted article body.", nil)
	a.AddParagraph("The second paragraph of the extracted article body.", nil)
	a.AddParagraph("The third paragraph of the extracted article body.", nil)
	return a
}

// newScraper wires a Scraper whose collaborators all succeed; tests
// override individual mocks.
func newScraper(links []offprint.ArticleLink) *scrape.Scraper {
	byURL := make(map[string]offprint.ArticleLink, len(links))
	for _, l := range links {
		byURL[l.URL] = l
	}
	return &scrape.Scraper{
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>" + url + "</html>", nil
			},
		},
		Index: &mock.IndexReader{
			ArticleLinksFn: func(_, _ string) ([]offprint.ArticleLink, error) {
				return links, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(_, url string) (*offprint.Article, error) {
				link := byURL[url]
				return bodyFor(url, link.Title, link.Section), nil
			},
		},
		Resolver: &mock.ImageResolver{
			ResolveFn: func(_ context.Context, ref *offprint.ImageRef) (*offprint.ImageAsset, error) {
				return &offprint.ImageAsset{Fingerprint: "fp"}, nil
			},
		},
		Rules:  offprint.DefaultRules(),
		Pacer:  scrape.NewPacer(time.Millisecond),
		Logger: discardLogger(),
	}
}

func TestScraper_Run(t *testing.T) {
	t.Parallel()

	t.Run("assembles sections in first-seen order", func(t *testing.T) {
		t.Parallel()

		s := newScraper(testLinks())

		var seen []scrape.Progress
		edition, report, err := s.Run(context.Background(), "https://www.economist.com/weeklyedition", func(p scrape.Progress) {
			seen = append(seen, p)
		})
		require.NoError(t, err)

		require.Len(t, edition.Sections, 2)
		assert.Equal(t, "Leaders", edition.Sections[0].Name)
		assert.Equal(t, "Business", edition.Sections[1].Name)
		assert.Len(t, edition.Sections[0].Articles, 2)

		assert.Equal(t, 3, report.ArticlesFound)
		assert.Equal(t, 3, report.ArticlesExtracted)
		assert.Empty(t, report.ExtractionFailures)

		require.Len(t, seen, 3)
		assert.Equal(t, 1, seen[0].Completed)
		assert.Equal(t, 3, seen[0].Total)
		assert.Equal(t, "First leader", seen[0].Title)
	})

	t.Run("seeds the cover and dates the edition from it", func(t *testing.T) {
		t.Parallel()

		s := newScraper(testLinks())
		s.Index = &mock.IndexReader{
			ArticleLinksFn: func(_, _ string) ([]offprint.ArticleLink, error) {
				return testLinks(), nil
			},
			CoverURLFn: func(_ string) string {
				return "https://cdn.example.com/content-assets/20260305_DE_US.jpg"
			},
		}
		cover := &offprint.ImageAsset{Fingerprint: "cover", Class: offprint.ClassCover}
		var seeded string
		s.Resolver = &mock.ImageResolver{
			ResolveFn: func(_ context.Context, _ *offprint.ImageRef) (*offprint.ImageAsset, error) {
				return nil, nil
			},
			ResolveCoverFn: func(_ context.Context, url string) error {
				seeded = url
				return nil
			},
			CoverFn: func() *offprint.ImageAsset { return cover },
		}

		edition, _, err := s.Run(context.Background(), "https://www.economist.com/weeklyedition", nil)
		require.NoError(t, err)

		assert.Equal(t, "https://cdn.example.com/content-assets/20260305_DE_US.jpg", seeded)
		assert.Same(t, cover, edition.Cover)
		assert.Equal(t, "The Economist - March 5, 2026", edition.Metadata.Title)
		assert.Equal(t, "2026-03-05", edition.Metadata.Date)
	})

	t.Run("failed cover seed lands in the report", func(t *testing.T) {
		t.Parallel()

		coverURL := "https://cdn.example.com/content-assets/20260305_DE_US.jpg"
		s := newScraper(testLinks())
		s.Index = &mock.IndexReader{
			ArticleLinksFn: func(_, _ string) ([]offprint.ArticleLink, error) {
				return testLinks(), nil
			},
			CoverURLFn: func(_ string) string { return coverURL },
		}
		s.Resolver = &mock.ImageResolver{
			ResolveFn: func(_ context.Context, _ *offprint.ImageRef) (*offprint.ImageAsset, error) {
				return nil, nil
			},
			ResolveCoverFn: func(_ context.Context, url string) error {
				return &offprint.ImageFailure{URL: url, Cause: offprint.ImageFetchError, Err: errors.New("HTTP 403")}
			},
		}

		edition, report, err := s.Run(context.Background(), "https://www.economist.com/weeklyedition", nil)
		require.NoError(t, err)

		assert.Nil(t, edition.Cover)
		require.Len(t, report.ImageFailures, 1)
		assert.Equal(t, coverURL, report.ImageFailures[0].URL)
		assert.Equal(t, offprint.ImageFetchError, report.ImageFailures[0].Cause)
	})

	t.Run("index fetch failure aborts with session hint", func(t *testing.T) {
		t.Parallel()

		s := newScraper(testLinks())
		s.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "", errors.New("net::ERR_CONNECTION_CLOSED")
			},
		}

		_, _, err := s.Run(context.Background(), "https://www.economist.com/weeklyedition", nil)
		require.Error(t, err)
		assert.Equal(t, offprint.EUNAVAILABLE, offprint.ErrorCode(err))
	})

	t.Run("empty index is not found", func(t *testing.T) {
		t.Parallel()

		s := newScraper(nil)

		_, _, err := s.Run(context.Background(), "https://www.economist.com/weeklyedition", nil)
		require.Error(t, err)
		assert.Equal(t, offprint.ENOTFOUND, offprint.ErrorCode(err))
	})

	t.Run("extraction failure skips the article and continues", func(t *testing.T) {
		t.Parallel()

		links := testLinks()
		s := newScraper(links)
		s.Extractor = &mock.Extractor{
			ExtractFn: func(_, url string) (*offprint.Article, error) {
				if url == links[1].URL {
					return nil, &offprint.ExtractionFailure{URL: url, Reason: offprint.ReasonTooFewParagraphs}
				}
				return bodyFor(url, "t", "Leaders"), nil
			},
		}

		edition, report, err := s.Run(context.Background(), "https://www.economist.com/weeklyedition", nil)
		require.NoError(t, err)

		assert.Equal(t, 3, report.ArticlesFound)
		assert.Equal(t, 2, report.ArticlesExtracted)
		require.Len(t, report.ExtractionFailures, 1)
		assert.Equal(t, offprint.ReasonTooFewParagraphs, report.ExtractionFailures[0].Reason)
		assert.Equal(t, 2, edition.Counters.Articles)
	})

	t.Run("consecutive page fetch failures abort as a dead session", func(t *testing.T) {
		t.Parallel()

		s := newScraper(testLinks())
		calls := 0
		s.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				calls++
				if calls == 1 {
					return "<html>index</html>", nil
				}
				return "", errors.New("tab crashed")
			},
		}

		_, report, err := s.Run(context.Background(), "https://www.economist.com/weeklyedition", nil)
		require.Error(t, err)
		assert.Equal(t, offprint.EUNAVAILABLE, offprint.ErrorCode(err))
		require.Len(t, report.ExtractionFailures, 3)
		for _, f := range report.ExtractionFailures {
			assert.Equal(t, offprint.ReasonPageFetch, f.Reason)
		}
	})

	t.Run("limit caps the processed articles", func(t *testing.T) {
		t.Parallel()

		s := newScraper(testLinks())
		s.Limit = 1

		edition, report, err := s.Run(context.Background(), "https://www.economist.com/weeklyedition", nil)
		require.NoError(t, err)

		assert.Equal(t, 1, report.ArticlesFound)
		assert.Equal(t, 1, edition.Counters.Articles)
	})
}

func TestScraper_Run_ImageHandling(t *testing.T) {
	t.Parallel()

	links := testLinks()[:1]
	withImages := func(a *offprint.Article) *offprint.Article {
		a.AddImage(&offprint.ImageRef{
			Candidates: []offprint.ImageCandidate{{URL: "https://cdn.example.com/keep.jpg"}},
		})
		a.AddImage(&offprint.ImageRef{
			Candidates: []offprint.ImageCandidate{{URL: "https://cdn.example.com/broken.jpg"}},
			Caption:    "A caption worth keeping",
		})
		a.AddImage(&offprint.ImageRef{
			Candidates: []offprint.ImageCandidate{{URL: "https://cdn.example.com/broken-bare.jpg"}},
		})
		a.AddImage(&offprint.ImageRef{
			Candidates: []offprint.ImageCandidate{{URL: "https://cdn.example.com/pixel.gif"}},
		})
		return a
	}

	s := newScraper(links)
	s.Extractor = &mock.Extractor{
		ExtractFn: func(_, url string) (*offprint.Article, error) {
			return withImages(bodyFor(url, "t", "Leaders")), nil
		},
	}
	kept := &offprint.ImageAsset{Fingerprint: "kept"}
	s.Resolver = &mock.ImageResolver{
		ResolveFn: func(_ context.Context, ref *offprint.ImageRef) (*offprint.ImageAsset, error) {
			switch ref.Candidates[0].URL {
			case "https://cdn.example.com/keep.jpg":
				ref.Fingerprint = "kept"
				return kept, nil
			case "https://cdn.example.com/pixel.gif":
				return nil, nil
			default:
				return nil, &offprint.ImageFailure{
					URL:   ref.Candidates[0].URL,
					Cause: offprint.ImageFetchError,
				}
			}
		},
		AssetsFn: func() []*offprint.ImageAsset { return []*offprint.ImageAsset{kept} },
	}

	edition, report, err := s.Run(context.Background(), "https://www.economist.com/weeklyedition", nil)
	require.NoError(t, err)

	article := edition.Articles()[0]
	// keep.jpg stays, the captioned failure stays without bytes, the bare
	// failure and the pixel disappear.
	assert.Equal(t, 2, article.ImageCount())
	require.Len(t, report.ImageFailures, 2)
	assert.Equal(t, 1, edition.Counters.Images)
}

func TestScraper_Run_ImageFailureDeduplicated(t *testing.T) {
	t.Parallel()

	// The same broken image embedded in two articles shows up once in the
	// report.
	links := testLinks()[:2]
	s := newScraper(links)
	s.Extractor = &mock.Extractor{
		ExtractFn: func(_, url string) (*offprint.Article, error) {
			a := bodyFor(url, "t", "Leaders")
			a.AddImage(&offprint.ImageRef{
				Candidates: []offprint.ImageCandidate{{URL: "https://cdn.example.com/broken.jpg"}},
			})
			return a, nil
		},
	}
	s.Resolver = &mock.ImageResolver{
		ResolveFn: func(_ context.Context, ref *offprint.ImageRef) (*offprint.ImageAsset, error) {
			return nil, &offprint.ImageFailure{
				URL:   "https://cdn.example.com/broken.jpg",
				Cause: offprint.ImageFetchError,
				Err:   fmt.Errorf("HTTP 500"),
			}
		},
	}

	_, report, err := s.Run(context.Background(), "https://www.economist.com/weeklyedition", nil)
	require.NoError(t, err)

	assert.Len(t, report.ImageFailures, 1)
}
