package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stencilerrors "github.com/arthur-debert/stencil/pkg/errors"
)

const webAppDefinition = `name = "Web App"
description = "A web application"

[[variant]]
id = "base"
name = "Base"
required = true
files = ["package.json", "src/index.ts"]

[[variant]]
id = "lint"
name = "Linting"
scripts = ["lint"]
files = ["package.json", ".eslintrc.json"]

[merge."package.json"]
mergeMethod = "json"
`

// writeTemplate lays a complete template fixture down on disk.
func writeTemplate(t *testing.T, root, id, definition string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0755))
	if definition != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dir, DefinitionFileTOML), []byte(definition), 0644))
	}
	for rel, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
}

func webAppFiles() map[string]string {
	return map[string]string{
		"base/package.json":   `{"scripts":{"build":"tsc"}}`,
		"base/src/index.ts":   "export {};\n",
		"lint/package.json":   `{"devDependencies":{"eslint":"^9.0.0"}}`,
		"lint/.eslintrc.json": `{"root":true}`,
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "web-app", webAppDefinition, webAppFiles())

	lib, err := Load(root)
	require.NoError(t, err)
	require.Equal(t, []string{"web-app"}, lib.Order)

	loaded, err := lib.Get("web-app")
	require.NoError(t, err)

	tmpl := loaded.Template
	assert.Equal(t, "Web App", tmpl.Name)
	assert.Equal(t, []string{"base", "lint"}, tmpl.VariantIDs())

	base, ok := tmpl.Variant("base")
	require.True(t, ok)
	assert.True(t, base.Required)

	// file contents are materialized eagerly
	assert.Equal(t, "export {};\n", loaded.Files["base"]["src/index.ts"])
	assert.Equal(t, `{"root":true}`, loaded.Files["lint"][".eslintrc.json"])

	// merge strategies are resolved at load time
	require.Contains(t, loaded.Strategies, "package.json")
	assert.Equal(t, "json", loaded.Strategies["package.json"].Name())
}

func TestLoadYAMLDefinition(t *testing.T) {
	root := t.TempDir()
	definition := `name: Minimal
variant:
  - id: base
    name: Base
    files:
      - README.md
`
	dir := filepath.Join(root, "minimal")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "base"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefinitionFileYAML), []byte(definition), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base", "README.md"), []byte("# hi\n"), 0644))

	lib, err := Load(root)
	require.NoError(t, err)

	loaded, err := lib.Get("minimal")
	require.NoError(t, err)
	assert.Equal(t, "Minimal", loaded.Template.Name)
	assert.Equal(t, "# hi\n", loaded.Files["base"]["README.md"])
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, root string)
		wantCode stencilerrors.ErrorCode
	}{
		{
			name: "missing definition file",
			setup: func(t *testing.T, root string) {
				require.NoError(t, os.MkdirAll(filepath.Join(root, "broken"), 0755))
			},
			wantCode: stencilerrors.ErrTemplateInvalid,
		},
		{
			name: "schema violation",
			setup: func(t *testing.T, root string) {
				writeTemplate(t, root, "broken", "name = \"Broken\"\n", nil)
			},
			wantCode: stencilerrors.ErrTemplateInvalid,
		},
		{
			name: "declared file missing on disk",
			setup: func(t *testing.T, root string) {
				files := webAppFiles()
				delete(files, "lint/.eslintrc.json")
				writeTemplate(t, root, "web-app", webAppDefinition, files)
			},
			wantCode: stencilerrors.ErrFileNotFound,
		},
		{
			name: "variant directory missing",
			setup: func(t *testing.T, root string) {
				files := webAppFiles()
				delete(files, "lint/package.json")
				delete(files, "lint/.eslintrc.json")
				writeTemplate(t, root, "web-app", webAppDefinition, files)
			},
			wantCode: stencilerrors.ErrVariantInvalid,
		},
		{
			name: "duplicate display names across templates",
			setup: func(t *testing.T, root string) {
				writeTemplate(t, root, "web-app", webAppDefinition, webAppFiles())
				other := webAppDefinition
				writeTemplate(t, root, "web-app-two", other, webAppFiles())
			},
			wantCode: stencilerrors.ErrTemplateInvalid,
		},
		{
			name: "duplicate variant display names within a template",
			setup: func(t *testing.T, root string) {
				definition := `name = "Dup"

[[variant]]
id = "a"
name = "Same"
files = ["f.txt"]

[[variant]]
id = "b"
name = "Same"
files = ["g.txt"]
`
				writeTemplate(t, root, "dup", definition, map[string]string{
					"a/f.txt": "x", "b/g.txt": "y",
				})
			},
			wantCode: stencilerrors.ErrTemplateInvalid,
		},
		{
			name: "custom merger missing at load time",
			setup: func(t *testing.T, root string) {
				definition := webAppDefinition + "\n[merge.\"README.md\"]\nmergeMethod = \"custom:mergers/readme\"\n"
				writeTemplate(t, root, "web-app", definition, webAppFiles())
			},
			wantCode: stencilerrors.ErrMergerInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			tt.setup(t, root)

			_, err := Load(root)
			require.Error(t, err)
			assert.True(t, stencilerrors.IsErrorCode(err, tt.wantCode),
				"want code %s, got: %v", tt.wantCode, err)
		})
	}
}

func TestLoadMissingRoot(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, stencilerrors.IsErrorCode(err, stencilerrors.ErrNotFound))
}

func TestGetUnknownTemplate(t *testing.T) {
	root := t.TempDir()
	writeTemplate(t, root, "web-app", webAppDefinition, webAppFiles())

	lib, err := Load(root)
	require.NoError(t, err)

	_, err = lib.Get("nope")
	require.Error(t, err)
	assert.True(t, stencilerrors.IsErrorCode(err, stencilerrors.ErrTemplateNotFound))
}
