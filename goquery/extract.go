package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mlapinski/offprint"
)

// Ensure Extractor implements offprint.Extractor at compile time.
var _ offprint.Extractor = (*Extractor)(nil)

// Extractor runs the ranked strategy list against a page and assembles the
// winning fragment set into a typed Article. Strategies execute in priority
// order; every candidate set is scored and the highest total wins, with
// ties broken in favor of the earlier strategy.
type Extractor struct {
	strategies []offprint.BodyStrategy
	filter     *offprint.NoiseFilter
	sanitizer  offprint.Sanitizer
	rules      offprint.Rules
}

// NewExtractor creates an Extractor. When no strategies are given, the
// default ranked list is used: role markers, then the body-container
// marker, then the loose structural match.
func NewExtractor(rules offprint.Rules, sanitizer offprint.Sanitizer, strategies ...offprint.BodyStrategy) *Extractor {
	if len(strategies) == 0 {
		strategies = []offprint.BodyStrategy{
			NewRoleStrategy(),
			NewBodyMarkerStrategy(),
			NewStructuralStrategy(),
		}
	}
	return &Extractor{
		strategies: strategies,
		filter:     offprint.NewNoiseFilter(rules),
		sanitizer:  sanitizer,
		rules:      rules,
	}
}

// Extract produces an ordered, typed block sequence from the page.
func (e *Extractor) Extract(rawHTML, url string) (*offprint.Article, error) {
	if rawHTML == "" {
		return nil, &offprint.ExtractionFailure{URL: url, Reason: offprint.ReasonNoContent}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, &offprint.ExtractionFailure{URL: url, Reason: offprint.ReasonNoContent, Err: err}
	}

	frags := e.selectFragments(rawHTML)
	if frags == nil {
		return nil, &offprint.ExtractionFailure{URL: url, Reason: offprint.ReasonNoContent}
	}

	article := &offprint.Article{
		Title:     offprint.NormalizeText(doc.Find("h1").First().Text()),
		Section:   e.rules.SectionFor(url),
		SourceURL: url,
	}
	article.Subtitle = e.subtitle(doc, article.Title)

	seenImages := make(map[string]bool)
	if hero := e.heroImage(doc); hero != nil {
		article.AddImage(hero)
		seenImages[hero.Candidates[0].URL] = true
	}

	for _, frag := range frags {
		if !e.filter.IsContentFragment(frag) {
			continue
		}
		switch frag.Tag {
		case "p":
			e.addParagraph(article, frag)
		case "h2", "h3", "h4":
			article.AddHeading(int(frag.Tag[1]-'0'), frag.Text)
		case "blockquote":
			article.AddQuote(frag.Text, frag.Attribution)
		case "figure":
			if frag.Image == nil || seenImages[frag.Image.Candidates[0].URL] {
				continue
			}
			seenImages[frag.Image.Candidates[0].URL] = true
			article.AddImage(frag.Image)
		default:
			// Role-marked elements with unfamiliar tags still carry
			// paragraph text.
			e.addParagraph(article, frag)
		}
	}

	if article.ParagraphCount() < e.rules.MinParagraphsPerArticle {
		return nil, &offprint.ExtractionFailure{URL: url, Reason: offprint.ReasonTooFewParagraphs}
	}

	return article, nil
}

// selectFragments runs every strategy and returns the best-scoring
// candidate set, or nil if no strategy yields an accepted fragment.
func (e *Extractor) selectFragments(rawHTML string) []offprint.Fragment {
	var best []offprint.Fragment
	bestScore := 0.0
	found := false

	for _, strategy := range e.strategies {
		frags, err := strategy.Fragments(rawHTML)
		if err != nil || len(frags) == 0 {
			continue
		}
		score, accepted := e.scoreSet(frags)
		if accepted == 0 {
			continue
		}
		// Strict comparison keeps the earlier strategy on ties.
		if !found || score > bestScore {
			best, bestScore, found = frags, score, true
		}
	}

	if !found {
		return nil
	}
	return best
}

// scoreSet totals the quality score over a candidate fragment set.
// Noise-rejected fragments contribute nothing.
func (e *Extractor) scoreSet(frags []offprint.Fragment) (total float64, accepted int) {
	for _, f := range frags {
		if !e.filter.IsContentFragment(f) {
			continue
		}
		accepted++
		total += scoreFragment(f)
	}
	return total, accepted
}

// scoreFragment implements the per-fragment quality score: capped length
// reward, a bonus for explicit structural markers, and a bonus when the
// computed class string names the article.
func scoreFragment(f offprint.Fragment) float64 {
	score := float64(len(f.Text)) / 100
	if score > 10 {
		score = 10
	}
	if f.Role != "" {
		score += 5
	}
	if strings.Contains(strings.ToLower(f.Class), "article") {
		score += 3
	}
	return score
}

// addParagraph sanitizes the fragment's inline HTML, recovers emphasis
// spans, and appends the paragraph.
func (e *Extractor) addParagraph(article *offprint.Article, frag offprint.Fragment) {
	clean := frag.HTML
	if e.sanitizer != nil {
		clean = e.sanitizer.SanitizeInline(clean)
	}
	clean = offprint.ConvertSymbols(clean)

	text, spans := inlineTextSpans(clean)
	article.AddParagraph(text, spans)
}

// subtitleMaxLength bounds how long a tagline can plausibly be.
const subtitleMaxLength = 300

// subtitle is a best-effort pass for the short tagline between the title
// and the first content block. Absence is not an error.
func (e *Extractor) subtitle(doc *goquery.Document, title string) string {
	var found string
	doc.Find("h2, p["+roleAttr+"=subheadline]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := offprint.NormalizeText(sel.Text())
		if text == "" || text == title || len(text) > subtitleMaxLength {
			return true
		}
		// An explicitly role-marked h2 is a body crosshead, not a tagline.
		if elementRole(sel) == "heading" {
			return true
		}
		if !e.filter.IsContent(text, "subtitle", ancestorMarkers(sel)) {
			return true
		}
		found = text
		return false
	})
	return found
}

// heroImage finds the lead image from the preload hint's responsive source
// set, falling back to the page's og:image. Cover classification happens
// later in the resolver.
func (e *Extractor) heroImage(doc *goquery.Document) *offprint.ImageRef {
	if srcset, ok := doc.Find("link[rel=preload][as=image]").First().Attr("imagesrcset"); ok {
		if candidates := ParseSrcset(srcset); len(candidates) > 0 {
			return &offprint.ImageRef{Candidates: candidates, Hero: true}
		}
	}

	if content, ok := doc.Find("meta[property='og:image']").First().Attr("content"); ok && content != "" {
		if !unsafeScheme(content) {
			return &offprint.ImageRef{
				Candidates: []offprint.ImageCandidate{{URL: content}},
				Hero:       true,
			}
		}
	}

	return nil
}
