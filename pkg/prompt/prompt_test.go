package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/stencil/pkg/templates"
	"github.com/arthur-debert/stencil/pkg/types"
)

func TestVariantOptions(t *testing.T) {
	tmpl := &types.Template{
		ID: "web-app",
		Variants: []types.Variant{
			{ID: "base", Name: "Base", Required: true},
			{ID: "eslint", Name: "ESLint"},
			{ID: "jest", Name: "Jest"},
		},
	}

	labels, byLabel := variantOptions(tmpl)

	assert.Equal(t, []string{"ESLint (eslint)", "Jest (jest)"}, labels)
	assert.Equal(t, "eslint", byLabel["ESLint (eslint)"])
	assert.Equal(t, "jest", byLabel["Jest (jest)"])
}

func TestVariantOptionsAllRequired(t *testing.T) {
	tmpl := &types.Template{
		ID: "cli",
		Variants: []types.Variant{
			{ID: "base", Name: "Base", Required: true},
		},
	}

	labels, byLabel := variantOptions(tmpl)
	assert.Empty(t, labels)
	assert.Empty(t, byLabel)
}

func TestTemplateOptions(t *testing.T) {
	lib := &templates.Library{
		Order: []string{"cli", "web-app"},
		Templates: map[string]*templates.LoadedTemplate{
			"cli":     {Template: types.Template{ID: "cli", Name: "CLI Tool"}},
			"web-app": {Template: types.Template{ID: "web-app", Name: "Web App"}},
		},
	}

	labels, byLabel := templateOptions(lib)

	assert.Equal(t, []string{"CLI Tool (cli)", "Web App (web-app)"}, labels)
	assert.Equal(t, "cli", byLabel["CLI Tool (cli)"])
	assert.Equal(t, "web-app", byLabel["Web App (web-app)"])
}
