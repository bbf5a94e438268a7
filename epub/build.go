package epub

import (
	"fmt"

	"tsugumi/book"
)

// item is a single manifest entry. Content always comes from a file on disk,
// either a project asset or a generated document staged in the work
// directory. Staged files are removed once copied into the archive.
type item struct {
	id         string
	href       string // relative to the container content directory
	mediaType  string
	properties string
	path       string
	staged     bool
}

type spineRef struct {
	idref      string
	properties string
}

type tocEntry struct {
	idref   string
	caption string
}

// buildContext accumulates container layout while chapters are processed.
// Manifest order is insertion order, identifier counters are scoped to a
// single build.
type buildContext struct {
	book    *book.Book
	title   string
	workDir string // staging area for generated documents

	items []*item
	ids   map[string]*item
	hrefs map[string]string

	spine  []spineRef
	styles []*item // linked stylesheets in declaration order
	toc    []tocEntry

	styleCount int
	imageCount int
	pageCount  int
}

func newBuildContext(b *book.Book) *buildContext {
	return &buildContext{
		book:  b,
		title: b.Metadata.PrimaryTitle(),
		ids:   make(map[string]*item),
		hrefs: make(map[string]string),
	}
}

func (cx *buildContext) add(it *item) error {
	if prev, ok := cx.ids[it.id]; ok {
		return fmt.Errorf("internal error: manifest id %s used for both %s and %s", it.id, prev.href, it.href)
	}
	if prevID, ok := cx.hrefs[it.href]; ok {
		return fmt.Errorf("internal error: container path %s claimed by both %s and %s", it.href, prevID, it.id)
	}
	cx.items = append(cx.items, it)
	cx.ids[it.id] = it
	cx.hrefs[it.href] = it.id
	return nil
}

func (cx *buildContext) nextStyleID() string {
	cx.styleCount++
	return fmt.Sprintf("s-%04d", cx.styleCount)
}

func (cx *buildContext) nextImageID() string {
	cx.imageCount++
	return fmt.Sprintf("i-%04d", cx.imageCount)
}

func (cx *buildContext) nextPageID() string {
	cx.pageCount++
	return fmt.Sprintf("p-%04d", cx.pageCount)
}

func (cx *buildContext) addSpine(idref, properties string) {
	cx.spine = append(cx.spine, spineRef{idref: idref, properties: properties})
}

func (cx *buildContext) addTOC(idref, caption string) {
	cx.toc = append(cx.toc, tocEntry{idref: idref, caption: caption})
}

// spreadProperties implements page placement on a synthetic spread. Cover
// page is centered with the rendition-prefixed property, content pages
// alternate sides carrying the core vocabulary tokens starting from the left.
func spreadProperties(cover bool, index int) string {
	if cover {
		return "rendition:page-spread-center"
	}
	if index%2 == 0 {
		return "page-spread-left"
	}
	return "page-spread-right"
}
