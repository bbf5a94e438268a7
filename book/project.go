package book

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the name of the project description looked up by commands
// when no explicit path is given.
const ProjectFile = "tsugumi.yaml"

// FindProject looks for the project description starting at dir and walking up
// the directory tree. Returns absolute path of the found file.
func FindProject(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("unable to resolve project directory: %w", err)
	}
	for {
		name := filepath.Join(abs, ProjectFile)
		if fi, err := os.Stat(name); err == nil && fi.Mode().IsRegular() {
			return name, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no %s found in %s or any parent directory", ProjectFile, dir)
		}
		abs = parent
	}
}

// Parse reads project description rejecting YAML fields it does not know about.
func Parse(r io.Reader) (*Book, error) {
	var b Book
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("project description is empty")
		}
		return nil, err
	}
	return &b, nil
}

// Load reads and validates project description from path.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open project description: %w", err)
	}
	defer f.Close()

	b, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", path, err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("bad project description %s: %w", path, err)
	}
	return b, nil
}

// Save writes project description to path, used when scaffolding new projects.
func (b *Book) Save(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("unable to create project description: %w", err)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		f.Close()
		return fmt.Errorf("unable to serialize project description: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
