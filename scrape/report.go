package scrape

import "github.com/mlapinski/offprint"

// Report enumerates everything the run skipped, so the operator can judge
// whether the output is acceptable.
type Report struct {
	ArticlesFound     int
	ArticlesExtracted int

	ExtractionFailures []*offprint.ExtractionFailure
	ImageFailures      []*offprint.ImageFailure

	seenImageFailures map[string]bool
}

func newReport() *Report {
	return &Report{seenImageFailures: make(map[string]bool)}
}

func (r *Report) addExtractionFailure(f *offprint.ExtractionFailure) {
	r.ExtractionFailures = append(r.ExtractionFailures, f)
}

// addImageFailure records an image loss once per URL; the resolver's
// request cache replays the same failure for repeated references.
func (r *Report) addImageFailure(f *offprint.ImageFailure) {
	if r.seenImageFailures[f.URL] {
		return
	}
	r.seenImageFailures[f.URL] = true
	r.ImageFailures = append(r.ImageFailures, f)
}
