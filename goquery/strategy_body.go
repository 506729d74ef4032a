package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mlapinski/offprint"
)

var _ offprint.BodyStrategy = (*BodyMarkerStrategy)(nil)

// bodyContainers are the article-body container patterns, tried in order.
// The first matching container wins.
var bodyContainers = []string{
	"[" + roleAttr + "=article-body]",
	"[itemprop=articleBody]",
	"section[class*=article-body]",
	"main[role=main] article",
	"main[role=main]",
}

// BodyMarkerStrategy locates the article-body container by its marker
// attribute and walks the typed elements inside it. Used when individual
// fragments carry no role markers but the body wrapper still does.
type BodyMarkerStrategy struct{}

// NewBodyMarkerStrategy creates a new BodyMarkerStrategy.
func NewBodyMarkerStrategy() *BodyMarkerStrategy {
	return &BodyMarkerStrategy{}
}

// Name returns the strategy's identifier.
func (s *BodyMarkerStrategy) Name() string {
	return "body-marker"
}

// Fragments returns the typed elements inside the first matching
// article-body container, in document order.
func (s *BodyMarkerStrategy) Fragments(html string) ([]offprint.Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, offprint.Errorf(offprint.EINVALID, "failed to parse HTML: %v", err)
	}

	var container *goquery.Selection
	for _, selector := range bodyContainers {
		if match := doc.Find(selector).First(); match.Length() > 0 {
			container = match
			break
		}
	}
	if container == nil {
		return nil, nil
	}

	var frags []offprint.Fragment
	container.Find("p, h2, h3, h4, blockquote, figure").Each(func(_ int, sel *goquery.Selection) {
		// Skip elements nested inside a blockquote or figure already
		// captured as a single fragment.
		if sel.ParentsFiltered("blockquote, figure").Length() > 0 {
			return
		}
		frags = append(frags, fragmentFromSelection(sel))
	})
	return frags, nil
}
