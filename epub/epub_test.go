package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"tsugumi/book"
)

const testStyle = "html, body { margin: 0; padding: 0; }\ndiv.main { width: 100%; height: 100%; }\n"

func setupTestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
}

func writeTestPNG(t *testing.T, path string, width, height int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("unable to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("unable to encode test image: %v", err)
	}
}

func writeTestJPEG(t *testing.T, path string, width, height int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("unable to create test image: %v", err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, image.NewRGBA(image.Rect(0, 0, width, height)), nil); err != nil {
		t.Fatalf("unable to encode test image: %v", err)
	}
}

// setupTestProject creates project directory with a cover and a few content
// pages and returns matching description.
func setupTestProject(t *testing.T, pages int) (*book.Book, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "images"), 0755); err != nil {
		t.Fatal(err)
	}

	writeTestJPEG(t, filepath.Join(dir, "images", "cover.jpg"), 800, 1200)
	chapter := book.Chapter{Name: "本編"}
	for i := 1; i <= pages; i++ {
		name := fmt.Sprintf("p%03d.png", i)
		writeTestPNG(t, filepath.Join(dir, "images", name), 800, 1200)
		chapter.Page = append(chapter.Page, "images/"+name)
	}

	b := &book.Book{
		Metadata: book.Metadata{
			Title:      book.List[book.Title]{{Name: "吾輩は猫である"}},
			Creator:    book.List[book.Creator]{{Name: "夏目漱石", Role: "aut"}},
			Language:   "ja",
			Identifier: "urn:uuid:550e8400-e29b-41d4-a716-446655440000",
		},
		Chapters: book.List[book.Chapter]{
			{Cover: true, Page: book.List[string]{"images/cover.jpg"}},
			chapter,
		},
	}
	return b, dir
}

func intp(v int) *int { return &v }

func zipHasEntry(t *testing.T, zipPath, name string) bool {
	t.Helper()
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("unable to open archive: %v", err)
	}
	defer r.Close()
	for _, f := range r.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

func readZipEntry(t *testing.T, zipPath, name string) []byte {
	t.Helper()
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("unable to open archive: %v", err)
	}
	defer r.Close()
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open entry %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("unable to read entry %s: %v", name, err)
		}
		return data
	}
	t.Fatalf("entry %s not found in archive", name)
	return nil
}

func TestGenerate(t *testing.T) {
	b, dir := setupTestProject(t, 3)
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	g.Verify = true
	if err := g.Generate(context.Background(), b, dir, out); err != nil {
		t.Fatalf("unable to generate container: %v", err)
	}

	r, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("unable to open generated container: %v", err)
	}
	defer r.Close()

	if len(r.File) == 0 || r.File[0].Name != "mimetype" {
		t.Fatal("mimetype is not the first archive entry")
	}
	if r.File[0].Method != zip.Store {
		t.Error("mimetype entry is compressed")
	}
	if data := readZipEntry(t, out, "mimetype"); string(data) != "application/epub+zip" {
		t.Errorf("bad mimetype content: %s", data)
	}

	want := []string{
		"mimetype",
		"META-INF/container.xml",
		"item/standard.opf",
		"item/navigation-documents.xhtml",
		"item/style/default.css",
		"item/image/cover.jpg",
		"item/xhtml/p-cover.xhtml",
		"item/image/i-0001.png",
		"item/xhtml/p-0001.xhtml",
		"item/image/i-0002.png",
		"item/xhtml/p-0002.xhtml",
		"item/image/i-0003.png",
		"item/xhtml/p-0003.xhtml",
	}
	if len(r.File) != len(want) {
		t.Fatalf("archive has %d entries, want %d", len(r.File), len(want))
	}
	for i, f := range r.File {
		if f.Name != want[i] {
			t.Errorf("entry %d is %s, want %s", i, f.Name, want[i])
		}
	}

	if data := readZipEntry(t, out, "item/style/default.css"); string(data) != testStyle {
		t.Error("default stylesheet content does not match")
	}
}

func TestGenerateOPF(t *testing.T) {
	b, dir := setupTestProject(t, 2)
	b.Metadata.Title = append(b.Metadata.Title, book.Title{Name: "下巻", Type: book.TitleCollection, FileAs: "げかん"})
	b.Metadata.Contributor = book.List[book.Creator]{{Name: "橋口五葉", Role: "ill"}}
	b.Metadata.Collection = book.List[book.Collection]{
		{Name: "夏目漱石全集", Type: book.CollectionSeries, Position: intp(2)},
		{Name: "新潮文庫", Type: book.CollectionSet},
	}
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	if err := g.Generate(context.Background(), b, dir, out); err != nil {
		t.Fatalf("unable to generate container: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(readZipEntry(t, out, "item/standard.opf")); err != nil {
		t.Fatalf("unable to parse package document: %v", err)
	}

	pkg := doc.SelectElement("package")
	if pkg == nil {
		t.Fatal("no package element")
	}
	if v := pkg.SelectAttrValue("version", ""); v != "3.0" {
		t.Errorf("bad package version: %s", v)
	}
	if v := pkg.SelectAttrValue("unique-identifier", ""); v != "unique-id" {
		t.Errorf("bad unique-identifier: %s", v)
	}
	if v := pkg.SelectAttrValue("prefix", ""); !strings.Contains(v, "ebpaj:") {
		t.Errorf("bad prefix: %s", v)
	}

	metadata := pkg.SelectElement("metadata")
	if metadata == nil {
		t.Fatal("no metadata element")
	}

	titles := metadata.SelectElements("dc:title")
	if len(titles) != 2 {
		t.Fatalf("wrong number of titles: %d", len(titles))
	}
	if id := titles[0].SelectAttrValue("id", ""); id != "title1" {
		t.Errorf("bad first title id: %s", id)
	}

	refines := make(map[string][]string)
	for _, meta := range metadata.SelectElements("meta") {
		if ref := meta.SelectAttrValue("refines", ""); ref != "" {
			refines[ref] = append(refines[ref], meta.SelectAttrValue("property", "")+"="+meta.Text())
		}
	}
	wantRefines := map[string][]string{
		"#title1":      {"title-type=main", "display-seq=1"},
		"#title2":      {"title-type=collection", "file-as=げかん", "display-seq=2"},
		"#creator1":    {"role=aut", "display-seq=1"},
		"#creator2":    {"role=ill", "display-seq=2"},
		"#collection1": {"collection-type=series", "group-position=2"},
		// collection without a position gets no group-position refinement
		"#collection2": {"collection-type=set"},
	}
	for id, want := range wantRefines {
		got := refines[id]
		if len(got) != len(want) {
			t.Errorf("refines for %s = %v, want %v", id, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("refine %d for %s = %s, want %s", i, id, got[i], want[i])
			}
		}
	}

	// contributors serialize as dc:creator too, continuing the id sequence
	creators := metadata.SelectElements("dc:creator")
	if len(creators) != 2 ||
		creators[0].SelectAttrValue("id", "") != "creator1" ||
		creators[1].SelectAttrValue("id", "") != "creator2" ||
		creators[1].Text() != "橋口五葉" {
		t.Errorf("bad creator serialization: %v", creators)
	}
	if contributors := metadata.SelectElements("dc:contributor"); len(contributors) != 0 {
		t.Errorf("contributors must not serialize as dc:contributor: %v", contributors)
	}

	ids := metadata.SelectElements("dc:identifier")
	if len(ids) != 1 || ids[0].SelectAttrValue("id", "") != "unique-id" || ids[0].Text() != b.Metadata.Identifier {
		t.Error("bad identifier serialization")
	}

	var modified string
	for _, meta := range metadata.SelectElements("meta") {
		if meta.SelectAttrValue("property", "") == "dcterms:modified" {
			modified = meta.Text()
		}
	}
	if len(modified) != len("2006-01-02T15:04:05Z") || !strings.HasSuffix(modified, "Z") {
		t.Errorf("bad dcterms:modified value: %s", modified)
	}

	manifest := pkg.SelectElement("manifest")
	items := manifest.SelectElements("item")
	if len(items) == 0 {
		t.Fatal("empty manifest")
	}
	first := items[0]
	if first.SelectAttrValue("id", "") != "toc" ||
		first.SelectAttrValue("href", "") != "navigation-documents.xhtml" ||
		first.SelectAttrValue("properties", "") != "nav" {
		t.Error("navigation document is not the first manifest item")
	}
	byID := make(map[string]*etree.Element)
	for _, it := range items {
		byID[it.SelectAttrValue("id", "")] = it
	}
	if cover, ok := byID["cover"]; !ok {
		t.Error("no cover image in manifest")
	} else {
		if cover.SelectAttrValue("properties", "") != "cover-image" {
			t.Error("cover image has no cover-image property")
		}
		if cover.SelectAttrValue("href", "") != "image/cover.jpg" {
			t.Errorf("bad cover href: %s", cover.SelectAttrValue("href", ""))
		}
	}
	if page, ok := byID["p-0001"]; !ok {
		t.Error("no first page in manifest")
	} else if page.SelectAttrValue("properties", "") != "svg" {
		t.Error("page item has no svg property")
	}

	spine := pkg.SelectElement("spine")
	if spine.SelectAttrValue("page-progression-direction", "") != "rtl" {
		t.Error("bad page progression direction")
	}
	refs := spine.SelectElements("itemref")
	if len(refs) != 3 {
		t.Fatalf("wrong number of spine entries: %d", len(refs))
	}
	wantProps := []string{
		"rendition:page-spread-center",
		"page-spread-left",
		"page-spread-right",
	}
	for i, ref := range refs {
		if props := ref.SelectAttrValue("properties", ""); props != wantProps[i] {
			t.Errorf("spine entry %d properties = %s, want %s", i, props, wantProps[i])
		}
		if ref.SelectAttrValue("linear", "") != "yes" {
			t.Errorf("spine entry %d is not linear", i)
		}
	}
}

func TestGeneratePageDocument(t *testing.T) {
	b, dir := setupTestProject(t, 1)
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	if err := g.Generate(context.Background(), b, dir, out); err != nil {
		t.Fatalf("unable to generate container: %v", err)
	}

	data := readZipEntry(t, out, "item/xhtml/p-cover.xhtml")
	if !bytes.Contains(data, []byte("<!DOCTYPE html>")) {
		t.Error("page document has no doctype")
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		t.Fatalf("unable to parse page document: %v", err)
	}
	html := doc.SelectElement("html")
	if html.SelectAttrValue("xml:lang", "") != "ja" {
		t.Error("page document has no language")
	}
	head := html.SelectElement("head")
	if title := head.SelectElement("title"); title == nil || title.Text() != "吾輩は猫である" {
		t.Error("bad page document title")
	}
	var viewport string
	for _, meta := range head.SelectElements("meta") {
		if meta.SelectAttrValue("name", "") == "viewport" {
			viewport = meta.SelectAttrValue("content", "")
		}
	}
	if viewport != "width=800, height=1200" {
		t.Errorf("bad viewport: %s", viewport)
	}
	links := head.SelectElements("link")
	if len(links) != 1 || links[0].SelectAttrValue("href", "") != "../style/default.css" {
		t.Error("bad stylesheet links")
	}

	body := html.SelectElement("body")
	if body.SelectAttrValue("epub:type", "") != "cover" {
		t.Error("cover page body has no cover type")
	}
	svg := body.SelectElement("div").SelectElement("svg")
	if svg.SelectAttrValue("viewBox", "") != "0 0 800 1200" {
		t.Errorf("bad viewBox: %s", svg.SelectAttrValue("viewBox", ""))
	}
	img := svg.SelectElement("image")
	if img.SelectAttrValue("xlink:href", "") != "../image/cover.jpg" {
		t.Errorf("bad image href: %s", img.SelectAttrValue("xlink:href", ""))
	}

	// content page must not carry cover markup
	doc = etree.NewDocument()
	if err := doc.ReadFromBytes(readZipEntry(t, out, "item/xhtml/p-0001.xhtml")); err != nil {
		t.Fatal(err)
	}
	if doc.SelectElement("html").SelectElement("body").SelectAttrValue("epub:type", "") != "" {
		t.Error("content page body carries cover type")
	}
}

func TestGenerateNav(t *testing.T) {
	b, dir := setupTestProject(t, 2)
	// second content chapter without a name stays out of the TOC
	b.Chapters = append(b.Chapters, book.Chapter{Page: book.List[string]{"images/p001.png"}})
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	if err := g.Generate(context.Background(), b, dir, out); err != nil {
		t.Fatalf("unable to generate container: %v", err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(readZipEntry(t, out, "item/navigation-documents.xhtml")); err != nil {
		t.Fatalf("unable to parse navigation document: %v", err)
	}
	nav := doc.SelectElement("html").SelectElement("body").SelectElement("nav")
	if nav.SelectAttrValue("epub:type", "") != "toc" {
		t.Error("navigation has no toc type")
	}
	entries := nav.SelectElement("ol").SelectElements("li")
	if len(entries) != 1 {
		t.Fatalf("wrong number of TOC entries: %d", len(entries))
	}
	a := entries[0].SelectElement("a")
	if a.Text() != "本編" || a.SelectAttrValue("href", "") != "xhtml/p-0001.xhtml" {
		t.Errorf("bad TOC entry: %s -> %s", a.Text(), a.SelectAttrValue("href", ""))
	}
}

func TestGenerateUnlinkedStyle(t *testing.T) {
	b, dir := setupTestProject(t, 1)
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "styles", "extra.css"), []byte("p { margin: 0; }"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "styles", "print.css"), []byte("p { margin: 1em; }"), 0644); err != nil {
		t.Fatal(err)
	}
	b.Rendition.Style = book.List[book.Style]{
		{Name: "extra.css", Src: "styles/extra.css", Link: true},
		{Name: "print.css", Src: "styles/print.css", Link: false},
	}
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	if err := g.Generate(context.Background(), b, dir, out); err != nil {
		t.Fatalf("unable to generate container: %v", err)
	}

	// both styles are packaged, declared styles replace the built-in default
	readZipEntry(t, out, "item/style/extra.css")
	readZipEntry(t, out, "item/style/print.css")
	if zipHasEntry(t, out, "item/style/default.css") {
		t.Error("default stylesheet packaged alongside declared styles")
	}

	// only linked styles are referenced from content documents
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(readZipEntry(t, out, "item/xhtml/p-cover.xhtml")); err != nil {
		t.Fatal(err)
	}
	var hrefs []string
	for _, link := range doc.SelectElement("html").SelectElement("head").SelectElements("link") {
		hrefs = append(hrefs, link.SelectAttrValue("href", ""))
	}
	if len(hrefs) != 1 || hrefs[0] != "../style/extra.css" {
		t.Errorf("bad stylesheet links: %v", hrefs)
	}
}

func TestGenerateDeclaredStylesReplaceDefault(t *testing.T) {
	b, dir := setupTestProject(t, 1)
	if err := os.WriteFile(filepath.Join(dir, "custom.css"), []byte("div.main { margin: 0; }"), 0644); err != nil {
		t.Fatal(err)
	}
	b.Rendition.Style = book.List[book.Style]{{Name: "custom.css", Src: "custom.css", Link: true}}
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	if err := g.Generate(context.Background(), b, dir, out); err != nil {
		t.Fatalf("unable to generate container: %v", err)
	}

	if zipHasEntry(t, out, "item/style/default.css") {
		t.Error("default stylesheet packaged even though rendition declares styles")
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(readZipEntry(t, out, "item/standard.opf")); err != nil {
		t.Fatal(err)
	}
	for _, it := range doc.SelectElement("package").SelectElement("manifest").SelectElements("item") {
		if it.SelectAttrValue("id", "") == "s-default" {
			t.Error("manifest contains the synthesized default style item")
		}
	}
}

func TestGenerateValidatesUpFront(t *testing.T) {
	b, dir := setupTestProject(t, 1)
	b.Metadata.Identifier = ""
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	if err := g.Generate(context.Background(), b, dir, out); err == nil {
		t.Fatal("bad description did not fail generation")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output file exists after failed generation")
	}
}

func TestGenerateMissingAsset(t *testing.T) {
	b, dir := setupTestProject(t, 1)
	b.Chapters[1].Page = append(b.Chapters[1].Page, "images/missing.png")
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	err := g.Generate(context.Background(), b, dir, out)
	if err == nil {
		t.Fatal("missing asset did not fail generation")
	}
	if !strings.Contains(err.Error(), "missing.png") {
		t.Errorf("error does not name the missing asset: %v", err)
	}
}

func TestGenerateRejectsNonImage(t *testing.T) {
	b, dir := setupTestProject(t, 1)
	if err := os.WriteFile(filepath.Join(dir, "images", "notes.txt"), []byte("just text, no image magic"), 0644); err != nil {
		t.Fatal(err)
	}
	b.Chapters[1].Page = append(b.Chapters[1].Page, "images/notes.txt")
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	if err := g.Generate(context.Background(), b, dir, out); err == nil {
		t.Fatal("non-image page did not fail generation")
	}
}

func TestGenerateEscapingAsset(t *testing.T) {
	b, dir := setupTestProject(t, 1)
	b.Chapters[1].Page = append(b.Chapters[1].Page, "../outside.png")
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	if err := g.Generate(context.Background(), b, dir, out); err == nil {
		t.Fatal("asset escaping the project directory did not fail generation")
	}
}

func TestGenerateOverwriteGuard(t *testing.T) {
	b, dir := setupTestProject(t, 1)
	out := filepath.Join(t.TempDir(), "out.epub")
	if err := os.WriteFile(out, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	if err := g.Generate(context.Background(), b, dir, out); err == nil {
		t.Fatal("existing output did not fail generation")
	}

	g.Overwrite = true
	if err := g.Generate(context.Background(), b, dir, out); err != nil {
		t.Fatalf("overwrite did not replace existing output: %v", err)
	}
}

func TestGenerateFixZip(t *testing.T) {
	b, dir := setupTestProject(t, 2)
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	g.FixZip = true
	g.Verify = true
	if err := g.Generate(context.Background(), b, dir, out); err != nil {
		t.Fatalf("unable to generate container: %v", err)
	}

	r, err := zip.OpenReader(out)
	if err != nil {
		t.Fatalf("unable to open generated container: %v", err)
	}
	defer r.Close()
	for _, f := range r.File {
		if f.Flags&0x8 != 0 {
			t.Errorf("entry %s still has data descriptor flag", f.Name)
		}
	}
}

func TestGenerateReleasesStagedFiles(t *testing.T) {
	b, dir := setupTestProject(t, 2)
	out := filepath.Join(t.TempDir(), "out.epub")

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	g.WorkDir = t.TempDir()
	if err := g.Generate(context.Background(), b, dir, out); err != nil {
		t.Fatalf("unable to generate container: %v", err)
	}

	entries, err := os.ReadDir(g.WorkDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("work directory is not empty after generation: %v", entries)
	}

	// failure halfway through must not leave staged documents behind either
	b.Chapters[1].Page = append(b.Chapters[1].Page, "images/missing.png")
	if err := g.Generate(context.Background(), b, dir, filepath.Join(t.TempDir(), "bad.epub")); err == nil {
		t.Fatal("missing asset did not fail generation")
	}
	entries, err = os.ReadDir(g.WorkDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("work directory is not empty after failed generation: %v", entries)
	}
}

func TestGenerateCanceledContext(t *testing.T) {
	b, dir := setupTestProject(t, 1)
	out := filepath.Join(t.TempDir(), "out.epub")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGenerator(setupTestLogger(t))
	g.DefaultStyle = []byte(testStyle)
	if err := g.Generate(ctx, b, dir, out); err == nil {
		t.Fatal("canceled context did not fail generation")
	}
}

func TestSpreadProperties(t *testing.T) {
	if spreadProperties(true, 0) != "rendition:page-spread-center" {
		t.Error("cover page is not centered")
	}
	want := []string{
		"page-spread-left",
		"page-spread-right",
		"page-spread-left",
		"page-spread-right",
		"page-spread-left",
	}
	for i, props := range want {
		if got := spreadProperties(false, i); got != props {
			t.Errorf("page %d properties = %s, want %s", i, got, props)
		}
	}
}

func TestBuildContextIDs(t *testing.T) {
	cx := newBuildContext(&book.Book{})
	if cx.nextStyleID() != "s-0001" || cx.nextStyleID() != "s-0002" {
		t.Error("bad style id sequence")
	}
	if cx.nextImageID() != "i-0001" {
		t.Error("bad image id sequence")
	}
	if cx.nextPageID() != "p-0001" {
		t.Error("bad page id sequence")
	}

	if err := cx.add(&item{id: "a", href: "xhtml/a.xhtml"}); err != nil {
		t.Fatal(err)
	}
	if err := cx.add(&item{id: "a", href: "xhtml/b.xhtml"}); err == nil {
		t.Error("duplicate id was not rejected")
	}
	if err := cx.add(&item{id: "b", href: "xhtml/a.xhtml"}); err == nil {
		t.Error("duplicate href was not rejected")
	}
}
