package offprint

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var reCoverDate = regexp.MustCompile(`/(\d{8})_`)

// DateFromCoverURL extracts the publication date from the date-stamp prefix
// cover filenames carry (.../20260305_DE_US.jpg). Returns "" when the URL
// has no stamp.
func DateFromCoverURL(url string) string {
	m := reCoverDate.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	stamp := m[1]
	return stamp[:4] + "-" + stamp[4:6] + "-" + stamp[6:8]
}

var reTextDate = regexp.MustCompile(
	`(January|February|March|April|May|June|July|August|September|October|November|December)\s+(\d{1,2})(?:st|nd|rd|th)?\s+(\d{4})`)

// DateFromText finds the first "March 5th 2026" style date in page text.
// Returns "" when none is present.
func DateFromText(html string) string {
	m := reTextDate.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	t, err := time.Parse("January 2 2006", m[1]+" "+m[2]+" "+m[3])
	if err != nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// EditionMetadata builds the metadata record for an edition dated date
// (YYYY-MM-DD). When no date could be detected the identifier falls back
// to a random UUID so two undated runs never collide.
func EditionMetadata(publication, date string) Metadata {
	meta := Metadata{
		Title:     publication,
		Date:      date,
		Publisher: publication,
		Language:  "en",
	}

	slug := strings.ToLower(strings.Join(strings.Fields(publication), "-"))
	if date == "" {
		meta.Identifier = slug + "-" + uuid.NewString()
		return meta
	}

	if t, err := time.Parse("2006-01-02", date); err == nil {
		meta.Title = fmt.Sprintf("%s - %s", publication, t.Format("January 2, 2006"))
	}
	meta.Identifier = slug + "-" + strings.ReplaceAll(date, "-", "")
	return meta
}
