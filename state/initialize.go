package state

import (
	_ "embed"
	"time"
)

// defaultStyle is packaged into every publication, project stylesheets are
// added on top of it.
//
//go:embed default.css
var defaultStyle []byte

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:        time.Now(),
		DefaultStyle: defaultStyle,
	}
}
