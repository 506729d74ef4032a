package main

import (
	"fmt"
	"io"

	"github.com/mlapinski/offprint"
	"github.com/mlapinski/offprint/scrape"
)

// printSummary writes the end-of-run report: what made it into the package
// and what was skipped along the way.
func printSummary(w io.Writer, ed *offprint.Edition, report *scrape.Report, path string, size int64) {
	fmt.Fprintf(w, "\n%s\n", ed.Metadata.Title)
	fmt.Fprintf(w, "  Articles:        %d of %d found\n", ed.Counters.Articles, report.ArticlesFound)
	fmt.Fprintf(w, "  Sections:        %d\n", ed.Counters.Sections)
	fmt.Fprintf(w, "  Images:          %d\n", ed.Counters.Images)
	fmt.Fprintf(w, "  Estimated pages: %d\n", ed.Counters.EstimatedPages)
	fmt.Fprintf(w, "  Output:          %s (%.1f MB)\n", path, float64(size)/(1024*1024))

	if len(report.ExtractionFailures) > 0 {
		fmt.Fprintf(w, "\nSkipped articles (%d):\n", len(report.ExtractionFailures))
		for _, f := range report.ExtractionFailures {
			fmt.Fprintf(w, "  %s: %s\n", f.URL, f.Reason)
		}
	}
	if len(report.ImageFailures) > 0 {
		fmt.Fprintf(w, "\nSkipped images (%d):\n", len(report.ImageFailures))
		for _, f := range report.ImageFailures {
			fmt.Fprintf(w, "  %s: %s\n", f.URL, f.Cause)
		}
	}
}
