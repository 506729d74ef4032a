package offprint

// Fragment is one candidate piece of article body located by a strategy.
// Strategies emit fragments in source document order.
type Fragment struct {
	// Tag is the source element name (p, h2, blockquote, figure, ...).
	Tag string

	// Text is the whitespace-normalized text content.
	Text string

	// HTML is the raw inner HTML, used to recover inline emphasis for
	// paragraph fragments after sanitization.
	HTML string

	// Class is the element's computed class/attribute string.
	Class string

	// Role is the explicit structural marker carried by the element, when
	// present (e.g. a paragraph-role data attribute, or the structural
	// meaning implied by heading/quote/figure tags). Empty for elements
	// with no marker.
	Role string

	// Ancestors lists lowercased markers of the enclosing structural
	// regions: ancestor tag names plus their role/class tokens. The noise
	// filter uses these to reject fragments inside navigation, related
	// rails and footers.
	Ancestors []string

	// Attribution is set for quote fragments that name a speaker or source.
	Attribution string

	// Image is set for figure fragments.
	Image *ImageRef
}

// BodyStrategy is one heuristic rule set for locating article-body
// fragments in arbitrary markup. Strategies run in priority order; the
// extractor picks the strategy whose fragment set scores best, so adding
// a new structural heuristic never requires touching existing ones.
type BodyStrategy interface {
	// Name returns the strategy's identifier for logs and reports.
	Name() string

	// Fragments parses the page and returns candidate body fragments in
	// document order. An empty result is not an error.
	Fragments(html string) ([]Fragment, error)
}

// Extractor turns one article's raw page markup into an Article.
type Extractor interface {
	// Extract produces an ordered, typed block sequence from the page.
	// A structural mismatch (no strategy yields accepted content) returns
	// an *ExtractionFailure; the page likely needs a selector update, not
	// a retry.
	Extract(html, url string) (*Article, error)
}

// Extraction failure reasons.
const (
	ReasonNoContent        = "no_content_found"
	ReasonTooFewParagraphs = "too_few_paragraphs"
	ReasonPageFetch        = "page_fetch_failed"
)

// ExtractionFailure records a page the pipeline could not turn into an
// article. It is reported, not retried.
type ExtractionFailure struct {
	URL    string
	Reason string
	Err    error
}

// Error implements the error interface.
func (f *ExtractionFailure) Error() string {
	if f.Err != nil {
		return "extraction failed (" + f.Reason + ") for " + f.URL + ": " + f.Err.Error()
	}
	return "extraction failed (" + f.Reason + ") for " + f.URL
}

// Unwrap returns the underlying cause.
func (f *ExtractionFailure) Unwrap() error { return f.Err }

// Sanitizer reduces untrusted inline HTML to a safe subset before emphasis
// spans are recovered from it.
type Sanitizer interface {
	// SanitizeInline strips everything except the inline markup the block
	// model understands (emphasis tags, plain text).
	SanitizeInline(html string) string
}
