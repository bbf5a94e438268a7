package epub

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/beevik/etree"
	fixzip "github.com/hidez8891/zip"
)

const (
	mimetypeContent = "application/epub+zip"
	contentDir      = "item"
	opfName         = "standard.opf"
	navName         = "navigation-documents.xhtml"
)

// writeMimetype has to be the first entry and must be stored uncompressed so
// the container stays recognizable by magic bytes at a fixed offset.
func writeMimetype(zw *zip.Writer) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, mimetypeContent)
	return err
}

func writeContainer(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")

	rootfile := container.CreateElement("rootfiles").CreateElement("rootfile")
	rootfile.CreateAttr("full-path", path.Join(contentDir, opfName))
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")

	doc.Indent(2)
	return writeXMLToZip(zw, "META-INF/container.xml", doc)
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	return writeDataToZip(zw, name, buf.Bytes())
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeFileToZip(zw *zip.Writer, name, src string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, f)
	return err
}

// writeArchive serializes the whole container to name. Entry order is fixed:
// mimetype, container descriptor, package document, navigation document and
// then manifest items in insertion order.
func writeArchive(name string, cx *buildContext, modified time.Time) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	if err := writeMimetype(zw); err != nil {
		return fmt.Errorf("unable to write mimetype: %w", err)
	}
	if err := writeContainer(zw); err != nil {
		return fmt.Errorf("unable to write container descriptor: %w", err)
	}
	if err := writeXMLToZip(zw, path.Join(contentDir, opfName), buildPackageDocument(cx, modified)); err != nil {
		return fmt.Errorf("unable to write package document: %w", err)
	}

	nav, err := buildNavDocument(cx)
	if err != nil {
		return err
	}
	if err := writeXMLToZip(zw, path.Join(contentDir, navName), nav); err != nil {
		return fmt.Errorf("unable to write navigation document: %w", err)
	}

	for _, it := range cx.items {
		if err := writeFileToZip(zw, path.Join(contentDir, it.href), it.path); err != nil {
			return fmt.Errorf("unable to write item %s: %w", it.id, err)
		}
		// staged documents are not needed once copied into the archive
		if it.staged {
			os.Remove(it.path)
		}
	}

	// make sure buffers are flushed before continuing
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	return f.Close()
}

// copyZipWithoutDataDescriptors rewrites the archive dropping data descriptor
// records, some legacy reading systems choke on them.
func copyZipWithoutDataDescriptors(from, to string) error {
	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open source file: %w", err)
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}
	defer destinationFile.Close()

	if _, err = io.Copy(destinationFile, sourceFile); err != nil {
		return fmt.Errorf("unable to copy file contents: %w", err)
	}

	if err = destinationFile.Close(); err != nil {
		return fmt.Errorf("unable to close destination file: %w", err)
	}
	return nil
}
