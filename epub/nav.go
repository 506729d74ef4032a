package epub

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/mlapinski/offprint"
)

// buildNav renders the EPUB3 navigation document with the two-level table of
// contents: sections at the top level, articles nested beneath them.
func buildNav(ed *offprint.Edition, content *rendered) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(`DOCTYPE html`)

	htmlEl := doc.CreateElement("html")
	htmlEl.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	htmlEl.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")

	head := htmlEl.CreateElement("head")
	head.CreateElement("title").SetText(ed.Metadata.Title)
	link := head.CreateElement("link")
	link.CreateAttr("rel", "stylesheet")
	link.CreateAttr("type", "text/css")
	link.CreateAttr("href", "style.css")

	body := htmlEl.CreateElement("body")
	nav := body.CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateElement("h1").SetText("Contents")

	fileFor := chapterFiles(content)

	ol := nav.CreateElement("ol")
	for _, sec := range ed.Sections {
		li := ol.CreateElement("li")
		if len(sec.Articles) == 0 {
			li.CreateElement("span").SetText(sec.Name)
			continue
		}
		first := fileFor[sec.Articles[0]]
		a := li.CreateElement("a")
		a.CreateAttr("href", first)
		a.SetText(sec.Name)
		inner := li.CreateElement("ol")
		for _, art := range sec.Articles {
			ili := inner.CreateElement("li")
			ia := ili.CreateElement("a")
			ia.CreateAttr("href", fileFor[art])
			ia.SetText(art.Title)
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

// buildNCX renders the EPUB2 NCX fallback with the same two-level structure.
func buildNCX(ed *offprint.Edition, content *rendered) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", "http://www.daisy.org/z3986/2005/ncx/")
	ncx.CreateAttr("version", "2005-1")

	head := ncx.CreateElement("head")
	addNCXMeta(head, "dtb:uid", ed.Metadata.Identifier)
	addNCXMeta(head, "dtb:depth", "2")
	addNCXMeta(head, "dtb:totalPageCount", "0")
	addNCXMeta(head, "dtb:maxPageNumber", "0")

	title := ncx.CreateElement("docTitle")
	title.CreateElement("text").SetText(ed.Metadata.Title)

	fileFor := chapterFiles(content)

	navMap := ncx.CreateElement("navMap")
	order := 0
	for _, sec := range ed.Sections {
		if len(sec.Articles) == 0 {
			continue
		}
		order++
		secPoint := addNavPoint(navMap, order, sec.Name, fileFor[sec.Articles[0]])
		for _, art := range sec.Articles {
			order++
			addNavPoint(secPoint, order, art.Title, fileFor[art])
		}
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func addNCXMeta(head *etree.Element, name, content string) {
	m := head.CreateElement("meta")
	m.CreateAttr("name", name)
	m.CreateAttr("content", content)
}

func addNavPoint(parent *etree.Element, order int, label, src string) *etree.Element {
	np := parent.CreateElement("navPoint")
	np.CreateAttr("id", fmt.Sprintf("nav-%d", order))
	np.CreateAttr("playOrder", fmt.Sprintf("%d", order))
	lbl := np.CreateElement("navLabel")
	lbl.CreateElement("text").SetText(label)
	c := np.CreateElement("content")
	c.CreateAttr("src", src)
	return np
}

// chapterFiles maps each article to its rendered file name.
func chapterFiles(content *rendered) map[*offprint.Article]string {
	files := make(map[*offprint.Article]string, len(content.chapters))
	for _, ch := range content.chapters {
		files[ch.article] = ch.file
	}
	return files
}
