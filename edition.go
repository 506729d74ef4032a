package offprint

// Section is an editorial grouping of articles (e.g. "Business").
type Section struct {
	Name     string     `json:"name"`
	Articles []*Article `json:"articles"`
}

// Counters holds the edition's aggregate numbers for the final report.
type Counters struct {
	Articles       int `json:"articles"`
	Sections       int `json:"sections"`
	Images         int `json:"images"`
	EstimatedPages int `json:"estimatedPages"`
}

// Metadata is the record the packaging writer stamps into the output.
type Metadata struct {
	Title      string `json:"title"`
	Identifier string `json:"identifier"`
	Date       string `json:"date"` // YYYY-MM-DD
	Publisher  string `json:"publisher"`
	Language   string `json:"language"`
}

// TOCEntry is one node of the hierarchical table of contents. Top-level
// entries are sections; their children are articles in extraction order.
type TOCEntry struct {
	Title    string     `json:"title"`
	Children []TOCEntry `json:"children,omitempty"`
}

// Edition is the root aggregate of one run: ordered sections, the image
// registry's output, and aggregate counters. It lives in memory only and
// is handed to the packaging writer once assembly completes.
type Edition struct {
	Metadata Metadata     `json:"metadata"`
	Sections []*Section   `json:"sections"`
	Cover    *ImageAsset  `json:"-"`
	Assets   []*ImageAsset `json:"-"`
	Counters Counters     `json:"counters"`
	Style    StyleProfile `json:"-"`
}

// DefaultCharsPerPage is the normalized-text length assumed to fill one
// rendered page when estimating the edition's page count.
const DefaultCharsPerPage = 2200

// AssembleEdition groups articles into sections in first-seen order and
// computes the edition counters. charsPerPage <= 0 selects
// DefaultCharsPerPage. Image-related fields are attached by the caller
// from the resolver's registry.
func AssembleEdition(meta Metadata, articles []*Article, charsPerPage int) *Edition {
	if charsPerPage <= 0 {
		charsPerPage = DefaultCharsPerPage
	}

	index := make(map[string]*Section)
	var sections []*Section
	textLen := 0

	for _, a := range articles {
		name := a.Section
		if name == "" {
			name = SectionUncategorized
		}
		sec, ok := index[name]
		if !ok {
			sec = &Section{Name: name}
			index[name] = sec
			sections = append(sections, sec)
		}
		sec.Articles = append(sec.Articles, a)
		textLen += a.TextLength()
	}

	pages := textLen / charsPerPage
	if len(articles) > 0 && pages == 0 {
		pages = 1
	}

	return &Edition{
		Metadata: meta,
		Sections: sections,
		Counters: Counters{
			Articles:       len(articles),
			Sections:       len(sections),
			EstimatedPages: pages,
		},
		Style: DefaultStyle(),
	}
}

// TOC builds the two-level table of contents from the section ordering.
func (e *Edition) TOC() []TOCEntry {
	toc := make([]TOCEntry, 0, len(e.Sections))
	for _, sec := range e.Sections {
		entry := TOCEntry{Title: sec.Name}
		for _, a := range sec.Articles {
			entry.Children = append(entry.Children, TOCEntry{Title: a.Title})
		}
		toc = append(toc, entry)
	}
	return toc
}

// Articles returns every article in section order.
func (e *Edition) Articles() []*Article {
	var out []*Article
	for _, sec := range e.Sections {
		out = append(out, sec.Articles...)
	}
	return out
}

// StyleProfile is the fixed typographic profile applied uniformly to all
// articles in the output package.
type StyleProfile struct {
	BodyFontFamily string
	LineHeight     string
	MaxMeasure     string
}

// DefaultStyle returns the serif profile used for all editions.
func DefaultStyle() StyleProfile {
	return StyleProfile{
		BodyFontFamily: "Georgia, serif",
		LineHeight:     "1.6",
		MaxMeasure:     "40em",
	}
}
