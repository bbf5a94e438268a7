package epub

import (
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"tsugumi/book"
)

const (
	// packaging follows the ebpaj fixed layout guide
	ebpajGuideVersion = "1.1.3"

	uniqueIDRef = "unique-id"
)

func refine(metadata *etree.Element, id, property, scheme, value string) {
	meta := metadata.CreateElement("meta")
	meta.CreateAttr("refines", "#"+id)
	meta.CreateAttr("property", property)
	if scheme != "" {
		meta.CreateAttr("scheme", scheme)
	}
	meta.SetText(value)
}

func writeTitles(metadata *etree.Element, titles []book.Title) {
	for idx, t := range titles {
		id := fmt.Sprintf("title%d", idx+1)
		dcTitle := metadata.CreateElement("dc:title")
		dcTitle.CreateAttr("id", id)
		dcTitle.SetText(t.Name)

		refine(metadata, id, "title-type", "", t.Type.String())
		if t.AlternateScript != "" {
			refine(metadata, id, "alternate-script", "", t.AlternateScript)
		}
		if t.FileAs != "" {
			refine(metadata, id, "file-as", "", t.FileAs)
		}
		refine(metadata, id, "display-seq", "", strconv.Itoa(idx+1))
	}
}

// writeCreators serializes authors and contributors, both as dc:creator
// elements distinguished by their role refinement. A single id sequence
// covers both so that refinement targets stay unique within the package.
func writeCreators(metadata *etree.Element, m *book.Metadata) {
	seq := 0
	write := func(c book.Creator) {
		seq++
		id := fmt.Sprintf("creator%d", seq)
		dcCreator := metadata.CreateElement("dc:creator")
		dcCreator.CreateAttr("id", id)
		dcCreator.SetText(c.Name)

		if c.Role != "" {
			refine(metadata, id, "role", "marc:relators", c.Role)
		}
		if c.AlternateScript != "" {
			refine(metadata, id, "alternate-script", "", c.AlternateScript)
		}
		if c.FileAs != "" {
			refine(metadata, id, "file-as", "", c.FileAs)
		}
		refine(metadata, id, "display-seq", "", strconv.Itoa(seq))
	}
	for _, c := range m.Creator {
		write(c)
	}
	for _, c := range m.Contributor {
		write(c)
	}
}

func writeCollections(metadata *etree.Element, collections []book.Collection) {
	for idx, c := range collections {
		id := fmt.Sprintf("collection%d", idx+1)
		meta := metadata.CreateElement("meta")
		meta.CreateAttr("id", id)
		meta.CreateAttr("property", "belongs-to-collection")
		meta.SetText(c.Name)

		refine(metadata, id, "collection-type", "", c.Type.String())
		if c.Position != nil {
			refine(metadata, id, "group-position", "", strconv.Itoa(*c.Position))
		}
	}
}

// buildPackageDocument creates the OPF package document, the manifest lists
// the navigation document first and then every item in insertion order.
func buildPackageDocument(cx *buildContext, modified time.Time) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("version", "3.0")
	pkg.CreateAttr("xml:lang", cx.book.Metadata.Language)
	pkg.CreateAttr("unique-identifier", uniqueIDRef)
	pkg.CreateAttr("prefix", "ebpaj: http://www.ebpaj.jp/")

	metadata := pkg.CreateElement("metadata")
	metadata.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")

	writeTitles(metadata, cx.book.Metadata.Title)
	writeCreators(metadata, &cx.book.Metadata)
	writeCollections(metadata, cx.book.Metadata.Collection)

	dcLang := metadata.CreateElement("dc:language")
	dcLang.SetText(cx.book.Metadata.Language)

	dcIdentifier := metadata.CreateElement("dc:identifier")
	dcIdentifier.CreateAttr("id", uniqueIDRef)
	dcIdentifier.SetText(cx.book.Metadata.Identifier)

	mod := metadata.CreateElement("meta")
	mod.CreateAttr("property", "dcterms:modified")
	mod.SetText(modified.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z"))

	layout := metadata.CreateElement("meta")
	layout.CreateAttr("property", "rendition:layout")
	layout.SetText(cx.book.Rendition.Layout.String())

	orientation := metadata.CreateElement("meta")
	orientation.CreateAttr("property", "rendition:orientation")
	orientation.SetText(cx.book.Rendition.Orientation.String())

	spread := metadata.CreateElement("meta")
	spread.CreateAttr("property", "rendition:spread")
	spread.SetText(cx.book.Rendition.Spread.String())

	guide := metadata.CreateElement("meta")
	guide.CreateAttr("property", "ebpaj:guide-version")
	guide.SetText(ebpajGuideVersion)

	manifest := pkg.CreateElement("manifest")

	nav := manifest.CreateElement("item")
	nav.CreateAttr("id", "toc")
	nav.CreateAttr("href", navName)
	nav.CreateAttr("media-type", "application/xhtml+xml")
	nav.CreateAttr("properties", "nav")

	for _, it := range cx.items {
		entry := manifest.CreateElement("item")
		entry.CreateAttr("id", it.id)
		entry.CreateAttr("href", it.href)
		entry.CreateAttr("media-type", it.mediaType)
		if it.properties != "" {
			entry.CreateAttr("properties", it.properties)
		}
	}

	spine := pkg.CreateElement("spine")
	spine.CreateAttr("page-progression-direction", cx.book.Rendition.Direction.String())
	for _, ref := range cx.spine {
		itemref := spine.CreateElement("itemref")
		itemref.CreateAttr("linear", "yes")
		itemref.CreateAttr("idref", ref.idref)
		if ref.properties != "" {
			itemref.CreateAttr("properties", ref.properties)
		}
	}

	doc.Indent(2)
	return doc
}
