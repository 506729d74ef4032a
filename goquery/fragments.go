// Package goquery implements the selector-based parts of the pipeline:
// the ranked body-extraction strategies, the article extractor built on
// them, and the edition index reader.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mlapinski/offprint"
)

// roleAttr is the explicit structural marker attribute the source site
// stamps on body elements.
const roleAttr = "data-component"

// fragmentFromSelection builds a Fragment for one matched element,
// capturing the markers the noise filter and the scorer need.
func fragmentFromSelection(sel *goquery.Selection) offprint.Fragment {
	tag := goquery.NodeName(sel)
	html, _ := sel.Html()

	frag := offprint.Fragment{
		Tag:       tag,
		Text:      offprint.NormalizeText(sel.Text()),
		HTML:      html,
		Class:     elementClass(sel),
		Role:      elementRole(sel),
		Ancestors: ancestorMarkers(sel),
	}

	switch tag {
	case "h2", "h3", "h4":
		if frag.Role == "" {
			frag.Role = "heading"
		}
	case "blockquote":
		if frag.Role == "" {
			frag.Role = "quote"
		}
		frag.Attribution = quoteAttribution(sel)
		frag.Text = offprint.NormalizeText(quoteText(sel))
	case "figure":
		if frag.Role == "" {
			frag.Role = "figure"
		}
		frag.Image = figureRef(sel)
	}

	return frag
}

// elementClass joins the class attribute with any role attribute value so
// the scorer sees one computed class/attribute string.
func elementClass(sel *goquery.Selection) string {
	class, _ := sel.Attr("class")
	if role, ok := sel.Attr(roleAttr); ok {
		class = strings.TrimSpace(class + " " + role)
	}
	if itemprop, ok := sel.Attr("itemprop"); ok {
		class = strings.TrimSpace(class + " " + itemprop)
	}
	return class
}

// elementRole returns the explicit structural marker, if any.
func elementRole(sel *goquery.Selection) string {
	if v, ok := sel.Attr(roleAttr); ok && v != "" {
		return v
	}
	if v, ok := sel.Attr("itemprop"); ok && v != "" {
		return v
	}
	return ""
}

// ancestorMarkers collects lowercased markers for every enclosing element:
// tag names plus role and class values.
func ancestorMarkers(sel *goquery.Selection) []string {
	var markers []string
	sel.Parents().Each(func(_ int, parent *goquery.Selection) {
		name := goquery.NodeName(parent)
		if name == "html" || name == "body" || name == "#document" {
			return
		}
		markers = append(markers, strings.ToLower(name))
		if v, ok := parent.Attr(roleAttr); ok && v != "" {
			markers = append(markers, strings.ToLower(v))
		}
		if v, ok := parent.Attr("class"); ok && v != "" {
			markers = append(markers, strings.ToLower(v))
		}
	})
	return markers
}

// quoteText returns the blockquote body without its cite/footer line.
func quoteText(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find("cite, footer").Remove()
	return clone.Text()
}

// quoteAttribution pulls the quoted speaker from a cite or footer child.
func quoteAttribution(sel *goquery.Selection) string {
	attribution := sel.Find("cite, footer").First().Text()
	return offprint.NormalizeText(attribution)
}

var reCreditPrefix = regexp.MustCompile(
	`(?i)((?:Illustration|Photo|Source|Chart|Credit|Image):.*?)(?:\.|$)`)

// figureRef turns a figure element into an image reference, splitting the
// figcaption into caption and credit. Returns nil when the figure carries
// no usable image source.
func figureRef(sel *goquery.Selection) *offprint.ImageRef {
	img := sel.Find("img").First()
	if img.Length() == 0 {
		return nil
	}

	var candidates []offprint.ImageCandidate
	if srcset, ok := img.Attr("srcset"); ok {
		candidates = ParseSrcset(srcset)
	}
	if src, ok := img.Attr("src"); ok && src != "" && !unsafeScheme(src) {
		candidates = append(candidates, offprint.ImageCandidate{URL: src})
	}
	if len(candidates) == 0 {
		return nil
	}

	alt, _ := img.Attr("alt")
	ref := &offprint.ImageRef{Candidates: candidates, Alt: alt}

	caption := offprint.NormalizeText(sel.Find("figcaption").First().Text())
	if caption != "" {
		if m := reCreditPrefix.FindStringSubmatch(caption); m != nil {
			ref.Credit = strings.TrimSpace(m[1])
			ref.Caption = offprint.NormalizeText(strings.Replace(caption, m[0], "", 1))
		} else {
			ref.Caption = caption
		}
	}

	return ref
}

// unsafeScheme rejects script-bearing pseudo-URLs.
func unsafeScheme(u string) bool {
	lower := strings.ToLower(strings.TrimSpace(u))
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "data:") ||
		strings.HasPrefix(lower, "vbscript:")
}
