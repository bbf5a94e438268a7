package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"tsugumi/book"
	"tsugumi/state"
)

var pageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff"}

// collectPages lists page image files in dir in natural order, so that
// "page2" sorts before "page10".
func collectPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("unable to read directory %s: %w", dir, err)
	}

	var pages []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if slices.Contains(pageExtensions, strings.ToLower(filepath.Ext(e.Name()))) {
			pages = append(pages, e.Name())
		}
	}
	slices.SortFunc(pages, func(a, b string) int {
		if a == b {
			return 0
		}
		if natural.Less(a, b) {
			return -1
		}
		return 1
	})
	return pages, nil
}

// defaultLanguage derives publication language from the environment, Japanese
// fixed layout books being the primary use case.
func defaultLanguage() string {
	lang := os.Getenv("LANG")
	if lang == "" {
		return "ja"
	}
	lang, _, _ = strings.Cut(lang, ".")
	lang, _, _ = strings.Cut(lang, "_")
	if lang == "" || lang == "C" || lang == "POSIX" {
		return "ja"
	}
	return strings.ToLower(lang)
}

// New scaffolds a project description for a directory of page images. First
// image becomes the cover, the rest land in a single content chapter.
func New(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	dir := cmd.Args().Get(0)
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	pages, err := collectPages(abs)
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		return fmt.Errorf("no page images found in %s", abs)
	}

	title := cmd.String("title")
	if title == "" {
		title = filepath.Base(abs)
	}
	identifier := cmd.String("identifier")
	if identifier == "" {
		identifier = "urn:uuid:" + uuid.NewString()
	}

	bk := &book.Book{
		Metadata: book.Metadata{
			Title:      book.List[book.Title]{{Name: title}},
			Language:   defaultLanguage(),
			Identifier: identifier,
		},
		Rendition: book.Rendition{
			Orientation: book.OrientationPortrait,
		},
		Chapters: book.List[book.Chapter]{
			{Name: "表紙", Cover: true, Page: book.List[string]{pages[0]}},
		},
	}
	if author := cmd.String("author"); author != "" {
		bk.Metadata.Creator = book.List[book.Creator]{{Name: author, Role: "aut"}}
	}
	if len(pages) > 1 {
		bk.Chapters = append(bk.Chapters, book.Chapter{Name: title, Page: pages[1:]})
	}

	name := filepath.Join(abs, book.ProjectFile)
	if err := bk.Save(name); err != nil {
		return err
	}

	env.Log.Info("Created project description", zap.String("project", name),
		zap.String("title", title), zap.Int("pages", len(pages)))
	return nil
}
