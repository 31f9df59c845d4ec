package main

import (
	"github.com/charmbracelet/glamour"

	"github.com/arthur-debert/stencil/pkg/prompt"
)

// renderMarkdown turns a template description into styled terminal
// output. Plain text is returned unchanged when the terminal cannot
// display styles or rendering fails.
func renderMarkdown(content string) string {
	if !prompt.ColorEnabled() {
		return content
	}

	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
