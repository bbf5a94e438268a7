// Package book implements project description model for fixed layout publications.
package book

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// List accepts either a single YAML value or a sequence of values. Single value
// is marshaled back without the enclosing sequence.
type List[T any] []T

func (l *List[T]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var many []T
		if err := node.Decode(&many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	var one T
	if err := node.Decode(&one); err != nil {
		return err
	}
	*l = List[T]{one}
	return nil
}

func (l List[T]) MarshalYAML() (interface{}, error) {
	if len(l) == 1 {
		return l[0], nil
	}
	return []T(l), nil
}

// checkKeys rejects mapping keys we do not know about. Types with custom
// unmarshalers lose decoder KnownFields strictness, this puts it back.
func checkKeys(node *yaml.Node, allowed ...string) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping node", node.Line)
	}
	for i := 0; i < len(node.Content); i += 2 {
		if key := node.Content[i].Value; !slices.Contains(allowed, key) {
			return fmt.Errorf("line %d: field %s not found", node.Content[i].Line, key)
		}
	}
	return nil
}

// Title is a single dc:title entry. In YAML it could be a plain string or a
// mapping with name, type, alternateScript and fileAs keys.
type Title struct {
	Name            string    `yaml:"name"`
	Type            TitleType `yaml:"type,omitempty"`
	AlternateScript string    `yaml:"alternateScript,omitempty"`
	FileAs          string    `yaml:"fileAs,omitempty"`
}

func (t *Title) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&t.Name)
	}
	if err := checkKeys(node, "name", "type", "alternateScript", "fileAs"); err != nil {
		return err
	}
	type raw Title
	return node.Decode((*raw)(t))
}

func (t Title) MarshalYAML() (interface{}, error) {
	if t.Type == TitleMain && t.AlternateScript == "" && t.FileAs == "" {
		return t.Name, nil
	}
	type raw Title
	return raw(t), nil
}

// Creator is a dc:creator or dc:contributor entry. In YAML it could be a plain
// string or a mapping, role holds marc:relators code.
type Creator struct {
	Name            string `yaml:"name"`
	Role            string `yaml:"role,omitempty"`
	AlternateScript string `yaml:"alternateScript,omitempty"`
	FileAs          string `yaml:"fileAs,omitempty"`
}

func (c *Creator) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&c.Name)
	}
	if err := checkKeys(node, "name", "role", "alternateScript", "fileAs"); err != nil {
		return err
	}
	type raw Creator
	return node.Decode((*raw)(c))
}

func (c Creator) MarshalYAML() (interface{}, error) {
	if c.Role == "" && c.AlternateScript == "" && c.FileAs == "" {
		return c.Name, nil
	}
	type raw Creator
	return raw(c), nil
}

// Collection places the publication in a series or a set. Position is
// optional, nil means the publication has no defined place in the group.
type Collection struct {
	Name     string         `yaml:"name"`
	Type     CollectionType `yaml:"type,omitempty"`
	Position *int           `yaml:"position,omitempty"`
}

func (c *Collection) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "name", "type", "position"); err != nil {
		return err
	}
	type raw Collection
	return node.Decode((*raw)(c))
}

// Metadata describes the publication. Title, language and identifier are
// always required.
type Metadata struct {
	Title       List[Title]      `yaml:"title"`
	Creator     List[Creator]    `yaml:"creator,omitempty"`
	Contributor List[Creator]    `yaml:"contributor,omitempty"`
	Collection  List[Collection] `yaml:"collection,omitempty"`
	Language    string           `yaml:"language"`
	Identifier  string           `yaml:"identifier"`
}

// PrimaryTitle returns name of the first title with main type, falling back to
// the first title in document order.
func (m *Metadata) PrimaryTitle() string {
	for _, t := range m.Title {
		if t.Type == TitleMain {
			return t.Name
		}
	}
	if len(m.Title) > 0 {
		return m.Title[0].Name
	}
	return ""
}

// Style references a stylesheet to package. Unlinked styles are still stored
// in the container but no content document points at them.
type Style struct {
	Name string `yaml:"name"`
	Src  string `yaml:"src"`
	Link bool   `yaml:"link"`
}

func (s *Style) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "name", "src", "link"); err != nil {
		return err
	}
	s.Link = true
	type raw Style
	return node.Decode((*raw)(s))
}

// Rendition holds fixed layout properties and stylesheets. Zero value renders
// right to left pre-paginated book without orientation or spread constraints.
type Rendition struct {
	Direction   Direction   `yaml:"direction,omitempty"`
	Layout      Layout      `yaml:"layout,omitempty"`
	Orientation Orientation `yaml:"orientation,omitempty"`
	Spread      Spread      `yaml:"spread,omitempty"`
	Style       List[Style] `yaml:"style,omitempty"`
}

// Chapter groups pages, first page of a named chapter lands in the navigation
// document. Chapter without a name stays out of the TOC.
type Chapter struct {
	Name  string       `yaml:"name,omitempty"`
	Cover bool         `yaml:"cover,omitempty"`
	Page  List[string] `yaml:"page"`
}

func (c *Chapter) UnmarshalYAML(node *yaml.Node) error {
	if err := checkKeys(node, "name", "cover", "page"); err != nil {
		return err
	}
	type raw Chapter
	return node.Decode((*raw)(c))
}

// Book is the root of the project description.
type Book struct {
	Metadata  Metadata      `yaml:"metadata"`
	Rendition Rendition     `yaml:"rendition,omitempty"`
	Chapters  List[Chapter] `yaml:"chapter"`
}

// Validate checks that description has everything needed to assemble the
// container, collecting all problems at once.
func (b *Book) Validate() error {
	var err error
	if len(b.Metadata.Title) == 0 {
		err = multierr.Append(err, errors.New("metadata must have at least one title"))
	}
	for i, t := range b.Metadata.Title {
		if t.Name == "" {
			err = multierr.Append(err, fmt.Errorf("title %d has empty name", i+1))
		}
	}
	for i, c := range b.Metadata.Creator {
		if c.Name == "" {
			err = multierr.Append(err, fmt.Errorf("creator %d has empty name", i+1))
		}
	}
	for i, c := range b.Metadata.Contributor {
		if c.Name == "" {
			err = multierr.Append(err, fmt.Errorf("contributor %d has empty name", i+1))
		}
	}
	for i, c := range b.Metadata.Collection {
		if c.Name == "" {
			err = multierr.Append(err, fmt.Errorf("collection %d has empty name", i+1))
		}
	}
	if b.Metadata.Language == "" {
		err = multierr.Append(err, errors.New("metadata must have language"))
	}
	if b.Metadata.Identifier == "" {
		err = multierr.Append(err, errors.New("metadata must have identifier"))
	}
	for i, s := range b.Rendition.Style {
		if s.Name == "" {
			err = multierr.Append(err, fmt.Errorf("style %d has empty name", i+1))
		}
		if s.Src == "" {
			err = multierr.Append(err, fmt.Errorf("style %d has empty src", i+1))
		}
	}
	if len(b.Chapters) == 0 {
		err = multierr.Append(err, errors.New("book must have at least one chapter"))
	}
	for i, c := range b.Chapters {
		if len(c.Page) == 0 {
			err = multierr.Append(err, fmt.Errorf("chapter %d has no pages", i+1))
		}
		for j, p := range c.Page {
			if p == "" {
				err = multierr.Append(err, fmt.Errorf("chapter %d page %d has empty src", i+1, j+1))
			}
		}
	}
	return err
}
