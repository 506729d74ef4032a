package goquery

import (
	"strconv"
	"strings"

	"github.com/mlapinski/offprint"
)

// ParseSrcset parses a responsive source set ("img@400w 400w, img@1424w
// 1424w") into URL+width candidates. Entries without a width descriptor
// get width 0; malformed entries are skipped.
func ParseSrcset(srcset string) []offprint.ImageCandidate {
	var candidates []offprint.ImageCandidate
	for _, entry := range strings.Split(srcset, ",") {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}
		u := fields[0]
		if u == "" || unsafeScheme(u) {
			continue
		}
		c := offprint.ImageCandidate{URL: u}
		if len(fields) > 1 && strings.HasSuffix(fields[1], "w") {
			if w, err := strconv.Atoi(strings.TrimSuffix(fields[1], "w")); err == nil {
				c.Width = w
			}
		}
		candidates = append(candidates, c)
	}
	return candidates
}
