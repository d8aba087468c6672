package changelog

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML converts a rendered summary to HTML, as the hosting service
// would display it in the release body.
func RenderHTML(summary string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(summary), &buf); err != nil {
		return "", fmt.Errorf("converting summary to HTML: %w", err)
	}
	return buf.String(), nil
}
