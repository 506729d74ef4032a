package goquery

import (
	"strings"
	"unicode"

	"github.com/mlapinski/offprint"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inlineTextSpans flattens sanitized inline HTML into normalized text plus
// emphasis spans. Whitespace runs collapse to single spaces, so span
// offsets are computed against the collapsed text. Small-caps runs are
// uppercased, matching how the source renders them.
func inlineTextSpans(fragment string) (string, []offprint.EmphasisSpan) {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), bodyContext())
	if err != nil {
		return offprint.NormalizeText(stripTags(fragment)), nil
	}

	w := &inlineWalker{}
	for _, n := range nodes {
		w.walk(n)
	}
	return w.result()
}

// bodyContext returns a body element node for fragment parsing.
func bodyContext() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
}

type inlineWalker struct {
	b     strings.Builder
	spans []offprint.EmphasisSpan
}

func (w *inlineWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.writeText(n.Data)
	case html.ElementNode:
		switch n.Data {
		case "em", "i":
			w.span(n, offprint.EmphasisItalic)
			return
		case "strong", "b":
			w.span(n, offprint.EmphasisBold)
			return
		case "small":
			w.writeText(strings.ToUpper(nodeText(n)))
			return
		case "script", "style":
			return
		}
		w.children(n)
	default:
		w.children(n)
	}
}

func (w *inlineWalker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

// span records an emphasis range around the element's flattened text.
func (w *inlineWalker) span(n *html.Node, kind offprint.EmphasisKind) {
	start := w.b.Len()
	w.children(n)
	end := w.b.Len()

	// A collapsing space may have been written at the span boundary.
	text := w.b.String()
	for start < end && text[start] == ' ' {
		start++
	}
	if start < end {
		w.spans = append(w.spans, offprint.EmphasisSpan{Start: start, End: end, Kind: kind})
	}
}

// writeText appends text with whitespace runs collapsed to single spaces.
// Leading whitespace never produces a space at position zero.
func (w *inlineWalker) writeText(s string) {
	for _, r := range s {
		if unicode.IsSpace(r) {
			cur := w.b.String()
			if len(cur) > 0 && !strings.HasSuffix(cur, " ") {
				w.b.WriteByte(' ')
			}
			continue
		}
		w.b.WriteRune(r)
	}
}

// result trims the trailing space and clamps spans to the final length.
func (w *inlineWalker) result() (string, []offprint.EmphasisSpan) {
	text := strings.TrimRight(w.b.String(), " ")
	var spans []offprint.EmphasisSpan
	for _, s := range w.spans {
		if s.End > len(text) {
			s.End = len(text)
		}
		if s.Start < s.End {
			spans = append(spans, s)
		}
	}
	return text, spans
}

// nodeText returns the concatenated text of a node's subtree.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// stripTags is the fallback when fragment parsing fails outright.
func stripTags(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
