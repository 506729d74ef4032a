package epub

import (
	"fmt"
	"strings"

	"github.com/mlapinski/offprint"
)

// stylesheet renders the edition's typographic profile as CSS. An empty
// profile falls back to the default serif profile.
func stylesheet(style offprint.StyleProfile) string {
	if style.BodyFontFamily == "" {
		style = offprint.DefaultStyle()
	}

	var b strings.Builder
	fmt.Fprintf(&b, `body {
  font-family: %s;
  line-height: %s;
  max-width: %s;
  margin: 0 auto;
  padding: 1em;
}
`, style.BodyFontFamily, style.LineHeight, style.MaxMeasure)

	b.WriteString(`h1 {
  font-size: 1.5em;
  line-height: 1.2;
  margin: 1em 0 0.25em;
}
h2, h3, h4 {
  line-height: 1.3;
  margin: 1.25em 0 0.25em;
}
p {
  margin: 0 0 0.75em;
  text-align: justify;
}
p.subtitle {
  font-style: italic;
  color: #555555;
  margin-bottom: 1.5em;
}
blockquote {
  margin: 1em 2em;
  font-style: italic;
}
blockquote footer {
  font-style: normal;
  font-size: 0.9em;
  text-align: right;
}
figure {
  margin: 1em 0;
  text-align: center;
}
figure img {
  max-width: 100%;
}
figcaption {
  font-size: 0.85em;
  color: #555555;
  text-align: left;
}
figcaption .credit {
  font-size: 0.9em;
  color: #888888;
}
div.cover {
  text-align: center;
  margin: 0;
  padding: 0;
}
div.cover img {
  max-width: 100%;
  max-height: 100%;
}
nav ol {
  list-style: none;
  padding-left: 1em;
}
`)
	return b.String()
}
