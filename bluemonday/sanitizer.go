// Package bluemonday implements inline HTML sanitization for paragraph
// content.
package bluemonday

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/mlapinski/offprint"
)

// Ensure Sanitizer implements offprint.Sanitizer at compile time.
var _ offprint.Sanitizer = (*Sanitizer)(nil)

// Sanitizer reduces untrusted paragraph HTML to the inline subset the block
// model understands. Scripts, styles, embeds and event handlers are
// stripped; emphasis tags survive so spans can be recovered; everything
// else unwraps to its text.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer with the inline allowlist policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("em", "i", "strong", "b", "span", "small")
	p.AllowAttrs("data-caps").OnElements("span")
	return &Sanitizer{policy: p}
}

// SanitizeInline strips everything except the allowed inline markup.
func (s *Sanitizer) SanitizeInline(html string) string {
	return s.policy.Sanitize(html)
}
