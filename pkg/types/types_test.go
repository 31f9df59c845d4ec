package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTemplate() Template {
	return Template{
		ID:   "web-app",
		Name: "Web App",
		Variants: []Variant{
			{ID: "base", Name: "Base", Required: true, Files: []string{"package.json"}},
			{ID: "lint", Name: "Linting", Files: []string{".eslintrc.json"}},
		},
	}
}

func TestTemplateVariant(t *testing.T) {
	tmpl := testTemplate()

	v, ok := tmpl.Variant("lint")
	assert.True(t, ok)
	assert.Equal(t, "Linting", v.Name)

	_, ok = tmpl.Variant("missing")
	assert.False(t, ok)
}

func TestTemplateVariantIDs(t *testing.T) {
	tmpl := testTemplate()
	assert.Equal(t, []string{"base", "lint"}, tmpl.VariantIDs())
}
