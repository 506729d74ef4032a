// Package epub writes an assembled Edition as an EPUB3 package (with EPUB2
// NCX fallback). It is the packaging side of the boundary: everything it
// needs comes from the Edition aggregate.
package epub

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mlapinski/offprint"
)

// mimetype must be the first zip entry, stored uncompressed.
const mimetype = "application/epub+zip"

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

// Writer renders an Edition into an EPUB container.
type Writer struct {
	// MaxImagesPerArticle caps images rendered per article; zero means
	// no cap.
	MaxImagesPerArticle int
}

// NewWriter creates a Writer with the given per-article image cap.
func NewWriter(maxImagesPerArticle int) *Writer {
	return &Writer{MaxImagesPerArticle: maxImagesPerArticle}
}

// WriteFile writes the edition to path and returns the output size.
func (w *Writer) WriteFile(path string, ed *offprint.Edition) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := w.Write(f, ed); err != nil {
		f.Close()
		os.Remove(path)
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Write renders the edition as an EPUB to out.
func (w *Writer) Write(out io.Writer, ed *offprint.Edition) error {
	if len(ed.Sections) == 0 {
		return offprint.Errorf(offprint.EINVALID, "edition has no sections")
	}

	zw := zip.NewWriter(out)

	// The mimetype entry must come first and be stored, not deflated.
	mt, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return err
	}
	if _, err := mt.Write([]byte(mimetype)); err != nil {
		return err
	}

	if err := writeEntry(zw, "META-INF/container.xml", []byte(containerXML)); err != nil {
		return err
	}

	coverData := defaultCover()
	if ed.Cover != nil && len(ed.Cover.Data) > 0 {
		coverData = ed.Cover.Data
	}

	content := w.render(ed)

	if err := writeEntry(zw, "OEBPS/style.css", []byte(stylesheet(ed.Style))); err != nil {
		return err
	}
	if err := writeEntry(zw, "OEBPS/cover.jpg", coverData); err != nil {
		return err
	}
	if err := writeEntry(zw, "OEBPS/cover.xhtml", []byte(coverPageXHTML(ed.Metadata.Title))); err != nil {
		return err
	}

	opf, err := buildOPF(ed, content)
	if err != nil {
		return err
	}
	if err := writeEntry(zw, "OEBPS/content.opf", opf); err != nil {
		return err
	}

	nav, err := buildNav(ed, content)
	if err != nil {
		return err
	}
	if err := writeEntry(zw, "OEBPS/nav.xhtml", nav); err != nil {
		return err
	}

	ncx, err := buildNCX(ed, content)
	if err != nil {
		return err
	}
	if err := writeEntry(zw, "OEBPS/toc.ncx", ncx); err != nil {
		return err
	}

	for _, ch := range content.chapters {
		if err := writeEntry(zw, "OEBPS/"+ch.file, []byte(ch.xhtml)); err != nil {
			return err
		}
	}
	for _, img := range content.images {
		if err := writeEntry(zw, "OEBPS/"+img.file, img.data); err != nil {
			return err
		}
	}

	return zw.Close()
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

// chapter is one rendered article document.
type chapter struct {
	file    string
	article *offprint.Article
	xhtml   string
}

// embeddedImage is one image file included in the package.
type embeddedImage struct {
	file      string
	mediaType string
	data      []byte
}

// rendered holds the package content derived from the edition.
type rendered struct {
	chapters []chapter
	images   []embeddedImage
}

// render produces chapter documents and the set of images they actually
// reference. Assets the rendered output never uses (e.g. truncated by the
// per-article cap) are not embedded.
func (w *Writer) render(ed *offprint.Edition) *rendered {
	byPrint := make(map[string]*offprint.ImageAsset, len(ed.Assets))
	for _, a := range ed.Assets {
		byPrint[a.Fingerprint] = a
	}

	r := &rendered{}
	used := make(map[string]bool)
	index := 0

	for _, sec := range ed.Sections {
		for _, a := range sec.Articles {
			index++
			file := fmt.Sprintf("article_%03d.xhtml", index)
			xhtml, fingerprints := articleXHTML(a, byPrint, w.MaxImagesPerArticle)
			r.chapters = append(r.chapters, chapter{
				file:    file,
				article: a,
				xhtml:   xhtml,
			})
			for _, fp := range fingerprints {
				if used[fp] {
					continue
				}
				used[fp] = true
				asset := byPrint[fp]
				r.images = append(r.images, embeddedImage{
					file:      imageFile(asset),
					mediaType: http.DetectContentType(asset.Data),
					data:      asset.Data,
				})
			}
		}
	}
	return r
}

// imageFile names an embedded image by its fingerprint prefix, with the
// extension matching the sniffed content type.
func imageFile(asset *offprint.ImageAsset) string {
	ext := ".jpg"
	if http.DetectContentType(asset.Data) == "image/png" {
		ext = ".png"
	}
	return "images/" + asset.Fingerprint[:16] + ext
}
