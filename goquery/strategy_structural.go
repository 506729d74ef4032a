package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mlapinski/offprint"
)

var _ offprint.BodyStrategy = (*StructuralStrategy)(nil)

// structuralMinText is the substantial-text floor for unmarked paragraphs.
// Headings, quotes and figures are kept regardless since their tags are
// markers in themselves.
const structuralMinText = 80

// StructuralStrategy is the loose last-line heuristic for pages with no
// markers at all: direct children of article/section/div elements with
// substantial inline text. It casts a wide net and leans on the noise
// filter and the scoring tiebreak to sort signal from chrome.
type StructuralStrategy struct{}

// NewStructuralStrategy creates a new StructuralStrategy.
func NewStructuralStrategy() *StructuralStrategy {
	return &StructuralStrategy{}
}

// Name returns the strategy's identifier.
func (s *StructuralStrategy) Name() string {
	return "structural"
}

// Fragments returns loosely-matched candidates in document order.
func (s *StructuralStrategy) Fragments(html string) ([]offprint.Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, offprint.Errorf(offprint.EINVALID, "failed to parse HTML: %v", err)
	}

	selector := "article > p, section > p, div > p, " +
		"article > h2, section > h2, article > h3, section > h3, " +
		"article > blockquote, section > blockquote, div > blockquote, " +
		"article > figure, section > figure, div > figure"

	var frags []offprint.Fragment
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		frag := fragmentFromSelection(sel)
		if frag.Tag == "p" && len(frag.Text) < structuralMinText {
			return
		}
		frags = append(frags, frag)
	})
	return frags, nil
}
