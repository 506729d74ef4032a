package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mlapinski/offprint"
)

// Ensure Index implements offprint.IndexReader at compile time.
var _ offprint.IndexReader = (*Index)(nil)

// Index reads the edition index page: the ordered article links and the
// cover image URL.
type Index struct {
	rules offprint.Rules
}

// NewIndex creates a new Index.
func NewIndex(rules offprint.Rules) *Index {
	return &Index{rules: rules}
}

// ArticleLinks returns the edition's articles in page order, deduplicated
// by URL. Section names come from the URL path.
func (i *Index) ArticleLinks(rawHTML, baseURL string) ([]offprint.ArticleLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, offprint.Errorf(offprint.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, offprint.Errorf(offprint.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []offprint.ArticleLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := offprint.NormalizeText(sel.Text())

		if !i.rules.IsArticleURL(href, text) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, offprint.ArticleLink{
			Title:   text,
			URL:     resolved,
			Section: i.rules.SectionFor(resolved),
		})
	})

	return links, nil
}

// CoverURL returns the first image whose URL carries a cover marker, or ""
// when the page shows no cover.
func (i *Index) CoverURL(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var cover string
	doc.Find("img[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		src, _ := sel.Attr("src")
		for _, marker := range i.rules.CoverMarkers {
			if strings.Contains(src, marker) ||
				strings.Contains(strings.ToLower(src), strings.ToLower(marker)) {
				cover = src
				return false
			}
		}
		return true
	})
	return cover
}

// resolveURL resolves a relative URL against the base URL, stripping the
// fragment for deduplication.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	return resolved.String()
}
