// Package assets resolves image references to deduplicated, fetched
// assets. It owns the edition-wide registry that guarantees no two assets
// share a content fingerprint.
package assets

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/mlapinski/offprint"
)

// BestCandidate picks the URL with the maximum declared width from a
// responsive candidate list. Candidates without widths lose to any
// candidate with one; among equals the first wins.
func BestCandidate(candidates []offprint.ImageCandidate) string {
	if len(candidates) == 0 {
		return ""
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Width > best.Width {
			best = c
		}
	}
	return best.URL
}

var reContentAsset = regexp.MustCompile(`/content-assets/.*?\.(?:jpg|jpeg|png)`)

// HighResURL rewrites a CDN-served image URL to request the highest
// supported width and quality. URLs not served through the image CDN pass
// through unchanged.
func HighResURL(imgURL string, rules offprint.Rules) string {
	if !strings.Contains(imgURL, "cdn-cgi/image") {
		return imgURL
	}
	assetPath := reContentAsset.FindString(imgURL)
	if assetPath == "" {
		return imgURL
	}
	return fmt.Sprintf("%s/cdn-cgi/image/width=%d,quality=%d,format=auto%s",
		rules.BaseURL, rules.CDNWidth, rules.CDNQuality, assetPath)
}

// qualityParams are the only query parameters that affect which bytes the
// CDN serves. Everything else (cache busters, analytics tags) is stripped
// when building the canonical request-cache key.
var qualityParams = map[string]bool{"width": true, "quality": true, "format": true}

// NormalizeURL strips query parameters unrelated to quality selection,
// producing the canonical URL assets are cached under.
func NormalizeURL(imgURL string) string {
	u, err := url.Parse(imgURL)
	if err != nil {
		return imgURL
	}
	q := u.Query()
	for key := range q {
		if !qualityParams[key] {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String()
}

var reDateStamp = regexp.MustCompile(`\d{8}_`)

// isCover classifies edition cover art: a configured cover marker in a
// date-stamped path. Every article page embeds the cover redundantly, so
// cover-classified references are dropped from bodies and at most one
// cover asset survives at the edition level.
func isCover(imgURL string, markers []string) bool {
	if !reDateStamp.MatchString(imgURL) {
		return false
	}
	lower := strings.ToLower(imgURL)
	for _, marker := range markers {
		if strings.Contains(imgURL, marker) || strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// isSkipped matches tracking pixels and beacons.
func isSkipped(imgURL string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(imgURL, p) {
			return true
		}
	}
	return false
}
