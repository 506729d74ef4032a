// Package readability provides the last-resort body strategy backed by a
// generic boilerplate-removal library. It carries no site knowledge, so it
// ranks below the marker-driven strategies, but it keeps extraction alive
// when the site reshapes itself faster than the selector rules.
package readability

import (
	"strings"

	pq "github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/mlapinski/offprint"
)

// Ensure Strategy implements offprint.BodyStrategy at compile time.
var _ offprint.BodyStrategy = (*Strategy)(nil)

// Strategy extracts body fragments from readability's cleaned content.
type Strategy struct{}

// NewStrategy creates a new Strategy.
func NewStrategy() *Strategy {
	return &Strategy{}
}

// Name returns the strategy's identifier.
func (s *Strategy) Name() string {
	return "readability"
}

// Fragments runs readability over the page and walks the typed elements of
// the cleaned content in document order. The cleaned fragments carry a
// generic role marker: readability has already vouched for them, so the
// noise filter's short-text rule should not discard them wholesale.
func (s *Strategy) Fragments(rawHTML string) ([]offprint.Fragment, error) {
	if rawHTML == "" {
		return nil, nil
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}
	if article.Content == "" {
		return nil, nil
	}

	doc, err := pq.NewDocumentFromReader(strings.NewReader(article.Content))
	if err != nil {
		return nil, offprint.Errorf(offprint.EINVALID, "failed to parse cleaned HTML: %v", err)
	}

	var frags []offprint.Fragment
	doc.Find("p, h2, h3, h4, blockquote").Each(func(_ int, sel *pq.Selection) {
		if sel.ParentsFiltered("blockquote").Length() > 0 {
			return
		}
		html, _ := sel.Html()
		frags = append(frags, offprint.Fragment{
			Tag:  pq.NodeName(sel),
			Text: offprint.NormalizeText(sel.Text()),
			HTML: html,
			Role: "readability",
		})
	})
	return frags, nil
}
