package offprint

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SectionUncategorized is the bucket for articles whose URL matches no
// known section pattern. They are kept, not dropped.
const SectionUncategorized = "Uncategorized"

// SectionPattern maps a URL path marker to a section name. Order matters:
// the first matching pattern wins.
type SectionPattern struct {
	Pattern string `yaml:"pattern"`
	Name    string `yaml:"name"`
}

// Rules holds the content heuristics the pipeline runs on. The source site
// has no stable schema, so everything that encodes knowledge about it
// (boilerplate phrases, cover-art markers, section paths) is data here
// rather than logic, and can be overridden from a YAML file as the site
// drifts. The cover marker list in particular should not be assumed
// exhaustive.
type Rules struct {
	// BaseURL resolves relative links and image paths.
	BaseURL string `yaml:"baseUrl"`

	// PublicationName appears in the edition title and metadata.
	PublicationName string `yaml:"publicationName"`

	// IndexPath is the path of the current-edition index page.
	IndexPath string `yaml:"indexPath"`

	// LoginPath is the path of the login page the operator authenticates on.
	LoginPath string `yaml:"loginPath"`

	// MinParagraphLength rejects short unmarked fragments (UI labels,
	// stray captions) in the noise filter.
	MinParagraphLength int `yaml:"minParagraphLength"`

	// MinParagraphsPerArticle is the floor below which an extraction is
	// treated as failed rather than emitting a stub article.
	MinParagraphsPerArticle int `yaml:"minParagraphsPerArticle"`

	// MaxImagesPerArticle caps images per article in the output package.
	MaxImagesPerArticle int `yaml:"maxImagesPerArticle"`

	// SkipPhrases is the boilerplate denylist, matched case-insensitively
	// as substrings of fragment text.
	SkipPhrases []string `yaml:"skipPhrases"`

	// NonArticleRegions lists ancestor markers that place a fragment
	// outside the article body.
	NonArticleRegions []string `yaml:"nonArticleRegions"`

	// CoverMarkers classify an image URL as edition cover art when one of
	// them appears in a date-stamped path.
	CoverMarkers []string `yaml:"coverMarkers"`

	// ImageSkipPatterns drop tracking pixels and beacons.
	ImageSkipPatterns []string `yaml:"imageSkipPatterns"`

	// SkipLinkPatterns exclude non-article links on the index page.
	SkipLinkPatterns []string `yaml:"skipLinkPatterns"`

	// CDNWidth and CDNQuality rewrite single-URL image references to the
	// highest supported quality via the source CDN's query parameters.
	CDNWidth   int `yaml:"cdnWidth"`
	CDNQuality int `yaml:"cdnQuality"`

	// CharsPerPage divides total normalized text length for the page
	// estimate.
	CharsPerPage int `yaml:"charsPerPage"`

	// Sections maps URL path markers to section names, in editorial order.
	Sections []SectionPattern `yaml:"sections"`
}

// DefaultRules returns the rule set tuned for the current site layout.
func DefaultRules() Rules {
	return Rules{
		BaseURL:                 "https://www.economist.com",
		PublicationName:         "The Economist",
		IndexPath:               "/weeklyedition",
		LoginPath:               "/api/auth/login",
		MinParagraphLength:      40,
		MinParagraphsPerArticle: 3,
		MaxImagesPerArticle:     3,
		SkipPhrases: []string{
			"sign up",
			"subscribe",
			"newsletter",
			"download the app",
			"this article appeared",
			"from the print edition",
			"reuse this content",
			"more from",
			"also in this",
			"listen to this story",
			"enjoy more audio",
		},
		NonArticleRegions: []string{
			"nav", "footer", "header", "aside",
			"related", "recommended", "newsletter",
		},
		CoverMarkers:      []string{"_DE_", "_FH", "cover"},
		ImageSkipPatterns: []string{"pixel", "beacon", "track", ".gif"},
		SkipLinkPatterns: []string{
			"/podcasts/", "/films/", "/interactive/",
			"/graphic-detail/", "/weeklyedition", "/newsletters",
		},
		CDNWidth:     1424,
		CDNQuality:   80,
		CharsPerPage: DefaultCharsPerPage,
		Sections: []SectionPattern{
			{Pattern: "/the-world-this-week/", Name: "The world this week"},
			{Pattern: "/leaders/", Name: "Leaders"},
			{Pattern: "/letters/", Name: "Letters"},
			{Pattern: "/by-invitation/", Name: "By Invitation"},
			{Pattern: "/briefing/", Name: "Briefing"},
			{Pattern: "/united-states/", Name: "United States"},
			{Pattern: "/the-americas/", Name: "The Americas"},
			{Pattern: "/asia/", Name: "Asia"},
			{Pattern: "/china/", Name: "China"},
			{Pattern: "/middle-east-and-africa/", Name: "Middle East & Africa"},
			{Pattern: "/europe/", Name: "Europe"},
			{Pattern: "/britain/", Name: "Britain"},
			{Pattern: "/international/", Name: "International"},
			{Pattern: "/business/", Name: "Business"},
			{Pattern: "/finance-and-economics/", Name: "Finance & economics"},
			{Pattern: "/science-and-technology/", Name: "Science & technology"},
			{Pattern: "/culture/", Name: "Culture"},
			{Pattern: "/economic-and-financial-indicators/", Name: "Economic & financial indicators"},
			{Pattern: "/obituary/", Name: "Obituary"},
		},
	}
}

// LoadRules reads a YAML rules file layered over the defaults: fields the
// file omits keep their default values.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	data, err := os.ReadFile(path)
	if err != nil {
		return rules, Errorf(EINVALID, "read rules file: %v", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, Errorf(EINVALID, "parse rules file: %v", err)
	}
	return rules, nil
}

// IndexURL returns the absolute URL of the current-edition index page.
func (r Rules) IndexURL() string {
	return strings.TrimRight(r.BaseURL, "/") + r.IndexPath
}

// LoginURL returns the absolute URL of the login page.
func (r Rules) LoginURL() string {
	return strings.TrimRight(r.BaseURL, "/") + r.LoginPath
}

// SectionFor determines the section name from an article URL's path.
// Unmatched URLs go to SectionUncategorized.
func (r Rules) SectionFor(url string) string {
	for _, sp := range r.Sections {
		if strings.Contains(url, sp.Pattern) {
			return sp.Name
		}
	}
	return SectionUncategorized
}
