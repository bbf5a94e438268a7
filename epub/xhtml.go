package epub

import (
	"fmt"

	"github.com/beevik/etree"
)

// buildPageDocument creates a fixed layout content document wrapping a single
// page image in an SVG viewport.
func buildPageDocument(cx *buildContext, imageHref string, width, height int, cover bool) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")
	html.CreateAttr("xml:lang", cx.book.Metadata.Language)

	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "UTF-8")
	head.CreateElement("title").SetText(cx.title)
	for _, style := range cx.styles {
		link := head.CreateElement("link")
		link.CreateAttr("rel", "stylesheet")
		link.CreateAttr("type", "text/css")
		link.CreateAttr("href", "../"+style.href)
	}
	viewport := head.CreateElement("meta")
	viewport.CreateAttr("name", "viewport")
	viewport.CreateAttr("content", fmt.Sprintf("width=%d, height=%d", width, height))

	body := html.CreateElement("body")
	if cover {
		body.CreateAttr("epub:type", "cover")
	}

	main := body.CreateElement("div")
	main.CreateAttr("class", "main")

	svg := main.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("xmlns:xlink", "http://www.w3.org/1999/xlink")
	svg.CreateAttr("version", "1.1")
	svg.CreateAttr("width", "100%")
	svg.CreateAttr("height", "100%")
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", width, height))

	image := svg.CreateElement("image")
	image.CreateAttr("width", fmt.Sprintf("%d", width))
	image.CreateAttr("height", fmt.Sprintf("%d", height))
	image.CreateAttr("xlink:href", "../"+imageHref)

	doc.Indent(2)
	return doc
}
