package epub

import (
	"fmt"

	"github.com/beevik/etree"
)

// buildNavDocument creates the EPUB 3 navigation document. Every TOC entry
// must point at a page already present in the manifest.
func buildNavDocument(cx *buildContext) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")
	html.CreateAttr("xml:lang", cx.book.Metadata.Language)

	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "UTF-8")
	head.CreateElement("title").SetText("Navigation")

	body := html.CreateElement("body")
	nav := body.CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateAttr("id", "toc")

	h1 := nav.CreateElement("h1")
	h1.SetText("Navigation")

	ol := nav.CreateElement("ol")
	for _, entry := range cx.toc {
		target, ok := cx.ids[entry.idref]
		if !ok {
			return nil, fmt.Errorf("internal error: navigation references unknown manifest id %s", entry.idref)
		}
		li := ol.CreateElement("li")
		a := li.CreateElement("a")
		a.CreateAttr("href", target.href)
		a.SetText(entry.caption)
	}

	doc.Indent(2)
	return doc, nil
}
