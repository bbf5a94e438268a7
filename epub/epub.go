// Package epub assembles fixed layout EPUB 3 containers following the ebpaj
// packaging guide.
package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"tsugumi/archive"
	"tsugumi/book"
	"tsugumi/css"
)

// Generator drives container assembly for a single project.
type Generator struct {
	log    *zap.Logger
	linter *css.Linter

	// DefaultStyle is the stylesheet packaged with every publication.
	DefaultStyle []byte
	// WorkDir keeps intermediate files, system temporary directory when empty.
	WorkDir string
	// FixZip rewrites the finished archive without data descriptor records.
	FixZip bool
	// Verify re-reads the finished archive checking container structure.
	Verify bool
	// Overwrite allows replacing an existing output file.
	Overwrite bool
}

// NewGenerator creates EPUB generator.
func NewGenerator(log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log, linter: css.NewLinter(log)}
}

// Generate assembles the publication described by bk with assets resolved
// against projectDir and writes the container to outputPath. Nothing is
// written until the description and every referenced asset check out.
func (g *Generator) Generate(ctx context.Context, bk *book.Book, projectDir, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := bk.Validate(); err != nil {
		return fmt.Errorf("bad project description: %w", err)
	}
	if !g.Overwrite {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("output file %s already exists, use overwrite to replace it", outputPath)
		}
	}
	if _, err := language.Parse(bk.Metadata.Language); err != nil {
		g.log.Warn("Publication language is not a well-formed BCP 47 tag",
			zap.String("language", bk.Metadata.Language), zap.Error(err))
	}

	cx := newBuildContext(bk)
	cx.workDir = g.WorkDir
	if cx.workDir == "" {
		cx.workDir = os.TempDir()
	}
	// release staged documents on every exit path, success or not
	defer func() {
		for _, it := range cx.items {
			if it.staged {
				os.Remove(it.path)
			}
		}
	}()
	a := assets{root: projectDir}

	g.log.Info("Generating EPUB", zap.String("title", cx.title), zap.String("output", outputPath))

	if err := g.addStyles(cx, a); err != nil {
		return err
	}
	for i, ch := range bk.Chapters {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.addChapter(cx, a, ch); err != nil {
			return fmt.Errorf("unable to process chapter %d: %w", i+1, err)
		}
	}

	tmpName := filepath.Join(cx.workDir, filepath.Base(outputPath))
	// clean temporary file even when archive write fails halfway
	defer os.Remove(tmpName)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := writeArchive(tmpName, cx, time.Now()); err != nil {
		return err
	}

	var err error
	if g.FixZip {
		err = copyZipWithoutDataDescriptors(tmpName, outputPath)
	} else {
		err = copyFile(tmpName, outputPath)
	}
	if err != nil {
		return err
	}

	if g.Verify {
		if err := verifyArchive(outputPath, cx); err != nil {
			return fmt.Errorf("verification of %s failed: %w", outputPath, err)
		}
		g.log.Debug("Verified output container", zap.String("output", outputPath))
	}

	g.log.Info("Generated EPUB", zap.String("output", outputPath),
		zap.Int("pages", len(cx.spine)), zap.Int("items", len(cx.items)))
	return nil
}

// stage writes a generated document into the work directory so the archive
// writer can stream it later like any other asset.
func stage(cx *buildContext, name string, data []byte) (string, error) {
	full := filepath.Join(cx.workDir, name)
	if err := os.WriteFile(full, data, 0600); err != nil {
		return "", fmt.Errorf("unable to stage %s: %w", name, err)
	}
	return full, nil
}

// addStyles packages stylesheets. A book declaring no styles gets the
// built-in default stylesheet, declared styles replace it completely. Styles
// with link disabled are packaged but no content document points at them.
func (g *Generator) addStyles(cx *buildContext, a assets) error {
	if len(cx.book.Rendition.Style) == 0 {
		staged, err := stage(cx, "default.css", g.DefaultStyle)
		if err != nil {
			return err
		}
		def := &item{id: "s-default", href: "style/default.css", mediaType: "text/css", path: staged, staged: true}
		if err := cx.add(def); err != nil {
			return err
		}
		cx.styles = append(cx.styles, def)
		return nil
	}

	for _, style := range cx.book.Rendition.Style {
		full, err := a.path(style.Src)
		if err != nil {
			return fmt.Errorf("unable to resolve stylesheet %s: %w", style.Name, err)
		}
		data, err := os.ReadFile(full)
		if err != nil {
			return fmt.Errorf("unable to read stylesheet %s: %w", style.Name, err)
		}
		for _, problem := range g.linter.Check(data, style.Src) {
			g.log.Warn("Stylesheet problem", zap.String("problem", problem))
		}

		it := &item{id: cx.nextStyleID(), href: "style/" + style.Name, mediaType: "text/css", path: full}
		if err := cx.add(it); err != nil {
			return err
		}
		if style.Link {
			cx.styles = append(cx.styles, it)
		}
	}
	return nil
}

// addChapter packages chapter pages. First page of a named chapter lands in
// the TOC, pages after the cover alternate spread sides starting from the
// left.
func (g *Generator) addChapter(cx *buildContext, a assets, ch book.Chapter) error {
	content := 0
	for idx, src := range ch.Page {
		cover := ch.Cover && idx == 0
		pageID, err := g.addPage(cx, a, src, cover, content)
		if err != nil {
			return err
		}
		if !cover {
			content++
		}
		if idx == 0 && ch.Name != "" {
			cx.addTOC(pageID, ch.Name)
		}
	}
	return nil
}

func (g *Generator) addPage(cx *buildContext, a assets, src string, cover bool, contentIndex int) (string, error) {
	full, err := a.path(src)
	if err != nil {
		return "", err
	}
	mediaType, err := a.detectType(full)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("page %s has unsupported media type %s", src, mediaType)
	}
	width, height, err := a.imageSize(full)
	if err != nil {
		return "", err
	}
	g.checkOrientation(cx.book.Rendition.Orientation, src, width, height)

	imgID, pageID := "", ""
	if cover {
		if _, ok := cx.ids["cover"]; ok {
			return "", fmt.Errorf("page %s: project describes more than one cover page", src)
		}
		imgID, pageID = "cover", "p-cover"
	} else {
		imgID, pageID = cx.nextImageID(), cx.nextPageID()
	}

	img := &item{
		id:        imgID,
		href:      path.Join("image", imgID+strings.ToLower(filepath.Ext(src))),
		mediaType: mediaType,
		path:      full,
	}
	if cover {
		img.properties = "cover-image"
	}
	if err := cx.add(img); err != nil {
		return "", err
	}

	doc := buildPageDocument(cx, img.href, width, height, cover)
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return "", fmt.Errorf("unable to serialize page document for %s: %w", src, err)
	}
	staged, err := stage(cx, pageID+".xhtml", buf.Bytes())
	if err != nil {
		return "", err
	}
	page := &item{
		id:         pageID,
		href:       path.Join("xhtml", pageID+".xhtml"),
		mediaType:  "application/xhtml+xml",
		properties: "svg",
		path:       staged,
		staged:     true,
	}
	if err := cx.add(page); err != nil {
		return "", err
	}

	cx.addSpine(pageID, spreadProperties(cover, contentIndex))
	return pageID, nil
}

// checkOrientation warns when page image proportions fight the declared
// rendition orientation, readers will letterbox such pages.
func (g *Generator) checkOrientation(declared book.Orientation, src string, width, height int) {
	switch {
	case declared == book.OrientationPortrait && width > height:
		g.log.Warn("Landscape page in a portrait publication",
			zap.String("page", src), zap.Int("width", width), zap.Int("height", height))
	case declared == book.OrientationLandscape && height > width:
		g.log.Warn("Portrait page in a landscape publication",
			zap.String("page", src), zap.Int("width", width), zap.Int("height", height))
	}
}

// verifyArchive re-reads the finished container and checks its structure
// against the build layout.
func verifyArchive(name string, cx *buildContext) error {
	seen := make(map[string]bool)
	idx := 0
	err := archive.Walk(name, "", func(f *zip.File) error {
		if idx == 0 {
			if f.Name != "mimetype" {
				return fmt.Errorf("first entry is %s, not mimetype", f.Name)
			}
			if f.Method != zip.Store {
				return fmt.Errorf("mimetype entry is compressed")
			}
			if f.UncompressedSize64 != uint64(len(mimetypeContent)) {
				return fmt.Errorf("mimetype entry has wrong size %d", f.UncompressedSize64)
			}
		}
		seen[f.Name] = true
		idx++
		return nil
	})
	if err != nil {
		return err
	}
	if idx == 0 {
		return fmt.Errorf("archive is empty")
	}

	required := []string{"META-INF/container.xml", path.Join(contentDir, opfName), path.Join(contentDir, navName)}
	for _, it := range cx.items {
		required = append(required, path.Join(contentDir, it.href))
	}
	for _, name := range required {
		if !seen[name] {
			return fmt.Errorf("entry %s is missing", name)
		}
	}
	return nil
}
