package changelog

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"strings"

	"github.com/ariel-frischer/dailyrelease/internal/forge"
)

// ErrTemplateNotFound is returned when the template file does not exist.
var ErrTemplateNotFound = errors.New("changelog template not found")

// TemplateData is the value passed to the changelog template.
type TemplateData struct {
	// GroupedPulls maps section names ("Changed", "Fixed", "Documentation",
	// "Updated") to their pull requests.
	GroupedPulls map[string][]forge.PullRequest
}

// LoadTemplate reads and parses the template at path. Interpolated values
// are HTML-escaped so pull request titles cannot inject markup.
func LoadTemplate(path string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}
	return ParseTemplate(path, string(data))
}

// ParseTemplate parses template text under the given name.
func ParseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	return tmpl, nil
}

// Render executes the template with the grouped pull requests.
func Render(tmpl *template.Template, grouped GroupedPulls) (string, error) {
	var b strings.Builder
	data := TemplateData{GroupedPulls: grouped.Sections()}
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering template %s: %w", tmpl.Name(), err)
	}
	return b.String(), nil
}

// RenderFile loads the template at path and renders grouped with it.
func RenderFile(path string, grouped GroupedPulls) (string, error) {
	tmpl, err := LoadTemplate(path)
	if err != nil {
		return "", err
	}
	return Render(tmpl, grouped)
}
