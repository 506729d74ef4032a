package epub

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/mlapinski/offprint"
)

const xhtmlHeader = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head>
<title>%s</title>
<link rel="stylesheet" type="text/css" href="style.css"/>
</head>
<body>
`

const xhtmlFooter = "</body>\n</html>\n"

// coverPageXHTML renders the cover image page.
func coverPageXHTML(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, xhtmlHeader, html.EscapeString(title))
	b.WriteString(`<div class="cover"><img src="cover.jpg" alt="`)
	b.WriteString(html.EscapeString(title))
	b.WriteString("\"/></div>\n")
	b.WriteString(xhtmlFooter)
	return b.String()
}

// articleXHTML renders one article document. It returns the document and the
// fingerprints of the images it actually embedded, in order of appearance.
func articleXHTML(a *offprint.Article, assets map[string]*offprint.ImageAsset, maxImages int) (string, []string) {
	var b strings.Builder
	fmt.Fprintf(&b, xhtmlHeader, html.EscapeString(a.Title))

	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(a.Title))
	if a.Subtitle != "" {
		fmt.Fprintf(&b, "<p class=\"subtitle\">%s</p>\n", html.EscapeString(a.Subtitle))
	}

	var fingerprints []string
	images := 0
	for _, blk := range a.Blocks {
		switch blk.Type {
		case offprint.BlockParagraph:
			fmt.Fprintf(&b, "<p>%s</p>\n", renderSpans(blk.Text, blk.Emphasis))
		case offprint.BlockHeading:
			level := blk.Level
			if level < 2 || level > 4 {
				level = 2
			}
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", level, html.EscapeString(blk.Text), level)
		case offprint.BlockQuote:
			b.WriteString("<blockquote>\n<p>")
			b.WriteString(renderSpans(blk.Text, blk.Emphasis))
			b.WriteString("</p>\n")
			if blk.Attribution != "" {
				fmt.Fprintf(&b, "<footer>%s</footer>\n", html.EscapeString(blk.Attribution))
			}
			b.WriteString("</blockquote>\n")
		case offprint.BlockImage:
			if blk.Image == nil {
				continue
			}
			asset := assets[blk.Image.Fingerprint]
			embed := asset != nil && (maxImages <= 0 || images < maxImages)
			if !embed && blk.Image.Caption == "" && blk.Image.Credit == "" {
				continue
			}
			b.WriteString("<figure>\n")
			if embed {
				images++
				fingerprints = append(fingerprints, asset.Fingerprint)
				fmt.Fprintf(&b, "<img src=\"%s\" alt=\"%s\"/>\n",
					imageFile(asset), html.EscapeString(blk.Image.Alt))
			}
			if blk.Image.Caption != "" || blk.Image.Credit != "" {
				b.WriteString("<figcaption>")
				b.WriteString(html.EscapeString(blk.Image.Caption))
				if blk.Image.Credit != "" {
					if blk.Image.Caption != "" {
						b.WriteString(" ")
					}
					fmt.Fprintf(&b, "<span class=\"credit\">%s</span>", html.EscapeString(blk.Image.Credit))
				}
				b.WriteString("</figcaption>\n")
			}
			b.WriteString("</figure>\n")
		}
	}

	b.WriteString(xhtmlFooter)
	return b.String(), fingerprints
}

// renderSpans escapes text and wraps emphasis ranges in em/strong tags.
// Spans are byte offsets into the unescaped text; overlapping spans keep the
// earlier one.
func renderSpans(text string, spans []offprint.EmphasisSpan) string {
	if len(spans) == 0 {
		return html.EscapeString(text)
	}

	sorted := make([]offprint.EmphasisSpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	pos := 0
	for _, sp := range sorted {
		if sp.Start < pos || sp.End > len(text) || sp.Start >= sp.End {
			continue
		}
		b.WriteString(html.EscapeString(text[pos:sp.Start]))
		tag := "em"
		if sp.Kind == offprint.EmphasisBold {
			tag = "strong"
		}
		b.WriteString("<" + tag + ">")
		b.WriteString(html.EscapeString(text[sp.Start:sp.End]))
		b.WriteString("</" + tag + ">")
		pos = sp.End
	}
	b.WriteString(html.EscapeString(text[pos:]))
	return b.String()
}
