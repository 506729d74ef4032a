package epub

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/mlapinski/offprint"
)

// buildOPF renders the package document: metadata, manifest and spine.
func buildOPF(ed *offprint.Edition, content *rendered) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("version", "3.0")
	pkg.CreateAttr("unique-identifier", "pub-id")

	meta := pkg.CreateElement("metadata")
	meta.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")

	id := meta.CreateElement("dc:identifier")
	id.CreateAttr("id", "pub-id")
	id.SetText(ed.Metadata.Identifier)
	meta.CreateElement("dc:title").SetText(ed.Metadata.Title)
	meta.CreateElement("dc:language").SetText(ed.Metadata.Language)
	meta.CreateElement("dc:publisher").SetText(ed.Metadata.Publisher)
	if ed.Metadata.Date != "" {
		meta.CreateElement("dc:date").SetText(ed.Metadata.Date)
	}
	modified := meta.CreateElement("meta")
	modified.CreateAttr("property", "dcterms:modified")
	modified.SetText(time.Now().UTC().Format("2006-01-02T15:04:05Z"))
	coverMeta := meta.CreateElement("meta")
	coverMeta.CreateAttr("name", "cover")
	coverMeta.CreateAttr("content", "cover-image")

	manifest := pkg.CreateElement("manifest")
	addItem(manifest, "style", "style.css", "text/css", "")
	addItem(manifest, "cover-image", "cover.jpg", "image/jpeg", "cover-image")
	addItem(manifest, "cover", "cover.xhtml", "application/xhtml+xml", "")
	addItem(manifest, "nav", "nav.xhtml", "application/xhtml+xml", "nav")
	addItem(manifest, "ncx", "toc.ncx", "application/x-dtbncx+xml", "")
	for i, ch := range content.chapters {
		addItem(manifest, fmt.Sprintf("article-%03d", i+1), ch.file, "application/xhtml+xml", "")
	}
	for i, img := range content.images {
		addItem(manifest, fmt.Sprintf("img-%03d", i+1), img.file, img.mediaType, "")
	}

	spine := pkg.CreateElement("spine")
	spine.CreateAttr("toc", "ncx")
	addItemref(spine, "cover")
	addItemref(spine, "nav")
	for i := range content.chapters {
		addItemref(spine, fmt.Sprintf("article-%03d", i+1))
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func addItem(manifest *etree.Element, id, href, mediaType, properties string) {
	item := manifest.CreateElement("item")
	item.CreateAttr("id", id)
	item.CreateAttr("href", href)
	item.CreateAttr("media-type", mediaType)
	if properties != "" {
		item.CreateAttr("properties", properties)
	}
}

func addItemref(spine *etree.Element, idref string) {
	ref := spine.CreateElement("itemref")
	ref.CreateAttr("idref", idref)
}
