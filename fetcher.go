package offprint

import "context"

// Fetcher retrieves rendered HTML from URLs through the authenticated
// browser session. The session is human-assisted: a person completes the
// login once, after which the core only asks for pages.
type Fetcher interface {
	// Fetch navigates to the URL, waits for the page to render, and
	// returns the rendered HTML. The context controls timeout and
	// cancellation; a timeout is treated as a fetch failure, not retried.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// ByteFetcher retrieves raw bytes (image payloads) from URLs.
type ByteFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ArticleLink is one article discovered on the edition index page.
type ArticleLink struct {
	Title   string
	URL     string
	Section string
}

// IndexReader parses the edition index page: the article links in
// editorial order, the cover image URL, and the publication date.
type IndexReader interface {
	// ArticleLinks returns the edition's articles in page order,
	// deduplicated by URL.
	ArticleLinks(html, baseURL string) ([]ArticleLink, error)

	// CoverURL returns the cover image URL, or "" if none was found.
	CoverURL(html string) string
}
