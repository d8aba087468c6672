package changelog

import (
	_ "embed"
)

//go:embed changelog-template.md
var defaultTemplate string

// DefaultTemplate returns the built-in changelog template. It is written to
// the configured template path by `dailyrelease init`; runs always read the
// template from disk.
func DefaultTemplate() string {
	return defaultTemplate
}
