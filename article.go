package offprint

import "strings"

// BlockType identifies the kind of content a ContentBlock carries.
type BlockType string

// Block type constants for ContentBlock.Type.
const (
	BlockParagraph BlockType = "paragraph"
	BlockHeading   BlockType = "heading"
	BlockQuote     BlockType = "quote"
	BlockImage     BlockType = "image"
)

// EmphasisKind identifies an inline emphasis style.
type EmphasisKind string

// Emphasis kinds for EmphasisSpan.Kind.
const (
	EmphasisItalic EmphasisKind = "italic"
	EmphasisBold   EmphasisKind = "bold"
)

// EmphasisSpan marks an emphasized sub-range of a paragraph's text.
// Start and End are byte offsets into ContentBlock.Text, half-open.
type EmphasisSpan struct {
	Start int          `json:"start"`
	End   int          `json:"end"`
	Kind  EmphasisKind `json:"kind"`
}

// ImageCandidate is one URL+width pair from a responsive source set.
// Width is 0 when the source did not declare one.
type ImageCandidate struct {
	URL   string `json:"url"`
	Width int    `json:"width"`
}

// ImageRef is an unresolved reference to an article image. Multiple
// candidates may point at the same physical image at different widths;
// the image resolver picks the best one and deduplicates across the
// whole edition.
type ImageRef struct {
	Candidates []ImageCandidate `json:"candidates"`
	Alt        string           `json:"alt,omitempty"`
	Caption    string           `json:"caption,omitempty"`
	Credit     string           `json:"credit,omitempty"`
	Hero       bool             `json:"hero,omitempty"`

	// Fingerprint is set by the image resolver once the reference has been
	// resolved to a registered asset. Empty means unresolved (the image
	// failed to fetch, or was dropped as cover art or a tracking pixel).
	Fingerprint string `json:"fingerprint,omitempty"`
}

// ContentBlock is one typed unit of article body content. Exactly one of
// the variant field groups is meaningful, selected by Type.
type ContentBlock struct {
	Type BlockType `json:"type"`

	// Text is the normalized text for paragraph, heading and quote blocks.
	Text string `json:"text,omitempty"`

	// Emphasis holds inline bold/italic sub-ranges of Text (paragraphs only).
	Emphasis []EmphasisSpan `json:"emphasis,omitempty"`

	// Level is the heading level (headings only).
	Level int `json:"level,omitempty"`

	// Attribution names the quoted speaker or source (quotes only).
	Attribution string `json:"attribution,omitempty"`

	// Image is the image reference (image blocks only).
	Image *ImageRef `json:"image,omitempty"`
}

// Article is one extracted article. The block sequence preserves the
// left-to-right, top-to-bottom order of the source markup. An Article is
// immutable once the pipeline hands it to the edition assembler.
type Article struct {
	Title     string         `json:"title"`
	Subtitle  string         `json:"subtitle,omitempty"`
	Section   string         `json:"section"`
	SourceURL string         `json:"sourceUrl"`
	Blocks    []ContentBlock `json:"blocks"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.SourceURL == "" {
		return Errorf(EINVALID, "article source URL required")
	}
	if len(a.Blocks) == 0 {
		return Errorf(EINVALID, "article has no content blocks")
	}
	return nil
}

// AddParagraph appends a paragraph block, dropping empty text.
func (a *Article) AddParagraph(text string, emphasis []EmphasisSpan) {
	if strings.TrimSpace(text) == "" {
		return
	}
	a.Blocks = append(a.Blocks, ContentBlock{
		Type:     BlockParagraph,
		Text:     text,
		Emphasis: emphasis,
	})
}

// AddHeading appends a heading block.
func (a *Article) AddHeading(level int, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	a.Blocks = append(a.Blocks, ContentBlock{Type: BlockHeading, Level: level, Text: text})
}

// AddQuote appends a quote block.
func (a *Article) AddQuote(text, attribution string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	a.Blocks = append(a.Blocks, ContentBlock{Type: BlockQuote, Text: text, Attribution: attribution})
}

// AddImage appends an image block.
func (a *Article) AddImage(ref *ImageRef) {
	if ref == nil || len(ref.Candidates) == 0 {
		return
	}
	a.Blocks = append(a.Blocks, ContentBlock{Type: BlockImage, Image: ref})
}

// ParagraphCount returns the number of paragraph blocks.
func (a *Article) ParagraphCount() int {
	n := 0
	for _, b := range a.Blocks {
		if b.Type == BlockParagraph {
			n++
		}
	}
	return n
}

// ImageCount returns the number of image blocks.
func (a *Article) ImageCount() int {
	n := 0
	for _, b := range a.Blocks {
		if b.Type == BlockImage {
			n++
		}
	}
	return n
}

// TextLength returns the total normalized text length of the article body,
// used for the edition's estimated page count.
func (a *Article) TextLength() int {
	n := 0
	for _, b := range a.Blocks {
		n += len(b.Text)
	}
	return n
}
