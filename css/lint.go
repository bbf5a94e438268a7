// Package css checks stylesheets packaged into the container.
package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Linter runs a syntax pass over stylesheets before they are packaged.
// Problems do not stop the build, readers are lenient about CSS, but they
// usually mean a typo in the source.
type Linter struct {
	log *zap.Logger
}

// NewLinter creates a new stylesheet checker.
func NewLinter(log *zap.Logger) *Linter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Linter{log: log.Named("css-lint")}
}

// Check tokenizes the stylesheet and reports grammar problems found. The
// source parameter identifies what is being checked in log messages.
func (l *Linter) Check(data []byte, source string) []string {
	var problems []string

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	var rules, declarations int
	for {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			err := parser.Err()
			if err != nil && !errors.Is(err, io.EOF) {
				// parse errors carry line and column in their message
				problems = append(problems, fmt.Sprintf("%s: %s", source, err.Error()))
				l.log.Debug("Stylesheet problem", zap.String("source", source), zap.Error(err))
			}
			l.log.Debug("Checked stylesheet", zap.String("source", source),
				zap.Int("rules", rules), zap.Int("declarations", declarations), zap.Int("problems", len(problems)))
			return problems
		case css.BeginRulesetGrammar, css.BeginAtRuleGrammar:
			rules++
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			declarations++
		}
	}
}
