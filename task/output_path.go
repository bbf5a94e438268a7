package task

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"tsugumi/book"
	"tsugumi/config"
	"tsugumi/state"
)

// buildOutputPath returns constructed output file path/name. When dst names
// an epub file it is used as is, otherwise dst is treated as a directory and
// the file name comes either from the publication title or from user-defined
// template. Cleans up path and if requested transliterates it.
func buildOutputPath(bk *book.Book, dst string, env *state.LocalEnv) string {
	if strings.EqualFold(filepath.Ext(dst), ".epub") {
		return dst
	}

	outDir := dst
	if outDir == "" {
		outDir = "."
	}

	if env.Cfg.Document.OutputNameTemplate == "" {
		return filepath.Join(outDir, buildDefaultFileName(bk, env))
	}

	expandedName := expandOutputNameTemplate(bk, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(outDir, buildDefaultFileName(bk, env))
	}

	return assemblePathWithSubdirs(outDir, expandedName, env)
}

func buildDefaultFileName(bk *book.Book, env *state.LocalEnv) string {
	baseName := bk.Metadata.PrimaryTitle()
	if env.Cfg.Document.FileNameTransliterate {
		baseName = slug.Make(baseName)
	}
	return config.CleanFileName(baseName) + ".epub"
}

func expandOutputNameTemplate(bk *book.Book, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(bk, config.OutputNameTemplateFieldName, env.Cfg.Document.OutputNameTemplate)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return filepath.FromSlash(expandedName)
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning and transliterating segments as needed
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	pathSegments := splitAndCleanPath(expandedName)

	if len(pathSegments) == 0 {
		return outDir
	}

	fileName := cleanPathSegment(pathSegments[len(pathSegments)-1], env) + ".epub"
	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)

	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}

	dirParts = append(dirParts, fileName)
	return filepath.Join(dirParts...)
}

func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); tail != ""; head, tail = filepath.Split(head) {
		segments = slices.Insert(segments, 0, tail)
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
		path = head
	}

	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Document.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
