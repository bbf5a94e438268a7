// Package task implements subcommand actions.
package task

import (
	"bytes"
	"fmt"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"tsugumi/book"
	"tsugumi/config"
)

type CollectionDefinition struct {
	Name     string
	Type     string
	Position int
}

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context     string
	Title       string
	Language    string
	Identifier  string
	Creators    []string
	Collections []CollectionDefinition
}

func buildCollections(collections []book.Collection) []CollectionDefinition {
	result := make([]CollectionDefinition, 0, len(collections))
	for _, c := range collections {
		if c.Name == "" {
			continue
		}
		position := 0
		if c.Position != nil {
			position = *c.Position
		}
		result = append(result, CollectionDefinition{
			Name:     c.Name,
			Type:     c.Type.String(),
			Position: position,
		})
	}
	return result
}

func buildCreators(creators []book.Creator) []string {
	result := make([]string, 0, len(creators))
	for _, c := range creators {
		result = append(result, c.Name)
	}
	return result
}

func expandTemplate(bk *book.Book, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:     string(name),
		Title:       bk.Metadata.PrimaryTitle(),
		Language:    bk.Metadata.Language,
		Identifier:  bk.Metadata.Identifier,
		Creators:    buildCreators(bk.Metadata.Creator),
		Collections: buildCollections(bk.Metadata.Collection),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
