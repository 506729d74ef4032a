package offprint

import (
	"regexp"
	"strings"
)

// NormalizeText collapses all runs of whitespace to single spaces and trims
// the ends. Every text length decision in the pipeline runs on normalized
// text.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var (
	reTrailingTM  = regexp.MustCompile(`(?:([a-zA-Z0-9])TM\b)|\(TM\)`)
	reRegistered  = regexp.MustCompile(`\(R\)`)
	reCopyrightC  = regexp.MustCompile(`(?i)Copyright \(C\)`)
	reCopyrightYr = regexp.MustCompile(`\(C\) (\d{4})`)
)

// ConvertSymbols replaces ASCII stand-ins with their proper Unicode
// characters: (TM), (R), (C) 1999 and trailing TM after a word.
func ConvertSymbols(text string) string {
	text = reTrailingTM.ReplaceAllString(text, "${1}™")
	text = reRegistered.ReplaceAllString(text, "®")
	text = reCopyrightC.ReplaceAllString(text, "Copyright ©")
	text = reCopyrightYr.ReplaceAllString(text, "© $1")
	return text
}

var reArticlePath = regexp.MustCompile(`/20\d{2}/\d{2}/\d{2}/`)

// IsArticleURL reports whether a link looks like an article page. Article
// URLs carry a /YYYY/MM/DD/ path segment; links with short anchor text are
// chrome (share buttons, section headers), not articles.
func (r Rules) IsArticleURL(href, text string) bool {
	if href == "" || len(text) <= 10 {
		return false
	}
	if !reArticlePath.MatchString(href) {
		return false
	}
	lower := strings.ToLower(href)
	for _, scheme := range []string{"javascript:", "data:", "vbscript:"} {
		if strings.Contains(lower, scheme) {
			return false
		}
	}
	for _, skip := range r.SkipLinkPatterns {
		if strings.Contains(href, skip) {
			return false
		}
	}
	return true
}
