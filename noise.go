package offprint

import "strings"

// NoiseFilter classifies raw text fragments as article content or
// boilerplate. It is a pure predicate: deterministic, side-effect free and
// total, so the extractor can consult it per fragment without guard logic.
type NoiseFilter struct {
	minLength int
	phrases   []string // lowercased
	regions   []string // lowercased
}

// NewNoiseFilter builds a filter from the rule set.
func NewNoiseFilter(rules Rules) *NoiseFilter {
	f := &NoiseFilter{minLength: rules.MinParagraphLength}
	for _, p := range rules.SkipPhrases {
		f.phrases = append(f.phrases, strings.ToLower(p))
	}
	for _, r := range rules.NonArticleRegions {
		f.regions = append(f.regions, strings.ToLower(r))
	}
	return f
}

// IsContent reports whether a fragment belongs to the article body.
// Rules apply in order, first match decides:
//
//  1. reject short text with no structural marker (UI labels, captions)
//  2. reject boilerplate phrases from the denylist
//  3. reject fragments inside non-article structural regions
//  4. accept
func (f *NoiseFilter) IsContent(text, role string, ancestors []string) bool {
	normalized := NormalizeText(text)

	if len(normalized) < f.minLength && role == "" {
		return false
	}

	lower := strings.ToLower(normalized)
	for _, phrase := range f.phrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}

	for _, ancestor := range ancestors {
		a := strings.ToLower(ancestor)
		for _, region := range f.regions {
			if strings.Contains(a, region) {
				return false
			}
		}
	}

	return true
}

// IsContentFragment applies IsContent to a strategy fragment.
func (f *NoiseFilter) IsContentFragment(frag Fragment) bool {
	return f.IsContent(frag.Text, frag.Role, frag.Ancestors)
}
