package epub

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"

	// decoders for formats imaging does not register itself
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	_ "image/gif"
)

// assets resolves references from the project description against the
// project directory.
type assets struct {
	root string
}

// path turns reference from the project description into a filesystem path.
// References pointing outside of the project directory are rejected.
func (a assets) path(src string) (string, error) {
	if filepath.IsAbs(src) {
		return "", fmt.Errorf("asset reference %s must be relative to the project directory", src)
	}
	full := filepath.Join(a.root, filepath.FromSlash(src))
	rel, err := filepath.Rel(a.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("asset reference %s escapes the project directory", src)
	}
	if fi, err := os.Stat(full); err != nil {
		return "", fmt.Errorf("unable to access asset %s: %w", src, err)
	} else if !fi.Mode().IsRegular() {
		return "", fmt.Errorf("asset %s is not a regular file", src)
	}
	return full, nil
}

// detectType sniffs media type from file content. Unrecognized content fails
// rather than being shipped as application/octet-stream.
func (a assets) detectType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, 261)
	n, err := f.Read(head)
	if err != nil && n == 0 {
		return "", fmt.Errorf("unable to read asset %s: %w", path, err)
	}
	t, err := filetype.Match(head[:n])
	if err != nil {
		return "", fmt.Errorf("unable to detect media type of %s: %w", path, err)
	}
	if t == filetype.Unknown {
		return "", fmt.Errorf("unable to detect media type of %s", path)
	}
	return t.MIME.Value, nil
}

// imageSize decodes the image to get its pixel dimensions. Full decode honors
// EXIF orientation, so rotated photos report dimensions as displayed.
func (a assets) imageSize(path string) (width, height int, err error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, fmt.Errorf("unable to decode image %s: %w", path, err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy(), nil
}
