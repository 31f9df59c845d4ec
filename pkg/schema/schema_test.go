package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefinition() map[string]any {
	return map[string]any{
		"name":        "Web App",
		"description": "A web application",
		"variant": []any{
			map[string]any{
				"id":       "base",
				"name":     "Base",
				"required": true,
				"files":    []any{"package.json", "src/index.ts"},
			},
			map[string]any{
				"id":      "lint",
				"name":    "Linting",
				"files":   []any{"package.json", ".eslintrc.json"},
				"scripts": []any{"lint"},
			},
		},
		"merge": map[string]any{
			"package.json": map[string]any{"mergeMethod": "json"},
		},
	}
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(def map[string]any)
		wantErr bool
	}{
		{
			name:    "valid definition",
			mutate:  func(def map[string]any) {},
			wantErr: false,
		},
		{
			name:    "missing name",
			mutate:  func(def map[string]any) { delete(def, "name") },
			wantErr: true,
		},
		{
			name:    "no variants",
			mutate:  func(def map[string]any) { def["variant"] = []any{} },
			wantErr: true,
		},
		{
			name: "variant without files",
			mutate: func(def map[string]any) {
				def["variant"] = []any{
					map[string]any{"id": "base", "name": "Base", "files": []any{}},
				}
			},
			wantErr: true,
		},
		{
			name: "unknown merge method",
			mutate: func(def map[string]any) {
				def["merge"] = map[string]any{
					"package.json": map[string]any{"mergeMethod": "concat"},
				}
			},
			wantErr: true,
		},
		{
			name: "custom merge method accepted",
			mutate: func(def map[string]any) {
				def["merge"] = map[string]any{
					"README.md": map[string]any{"mergeMethod": "custom:mergers/readme"},
				}
			},
			wantErr: false,
		},
		{
			name:    "unexpected top-level key",
			mutate:  func(def map[string]any) { def["extra"] = true },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDefinition()
			tt.mutate(def)
			err := ValidateTemplate(def)
			if tt.wantErr {
				require.Error(t, err)
				assert.NotEmpty(t, Violations(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateMergerResult(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		wantErr bool
	}{
		{
			name:    "bare string",
			value:   "merged text",
			wantErr: false,
		},
		{
			name: "object with sourceText and contributingVariants",
			value: map[string]any{
				"sourceText":           "merged text",
				"contributingVariants": []any{"base"},
			},
			wantErr: false,
		},
		{
			name:    "object missing contributingVariants",
			value:   map[string]any{"sourceText": "merged text"},
			wantErr: true,
		},
		{
			name:    "number is rejected",
			value:   float64(42),
			wantErr: true,
		},
		{
			name: "non-string variant entries rejected",
			value: map[string]any{
				"sourceText":           "x",
				"contributingVariants": []any{float64(1)},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMergerResult(tt.value)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestViolationsListsEveryFailure(t *testing.T) {
	def := validDefinition()
	delete(def, "name")
	def["variant"] = []any{
		map[string]any{"id": "base", "files": []any{}},
	}

	err := ValidateTemplate(def)
	require.Error(t, err)

	violations := Violations(err)
	// missing name, missing variant name and empty files all reported
	assert.GreaterOrEqual(t, len(violations), 2)
}
