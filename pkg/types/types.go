// Package types defines the core data model shared across stencil:
// templates, variants, merge rules and the ephemeral values produced
// during a single scaffolding run.
package types

// Template is a named scaffold definition composed of variants. It is
// loaded once per run from a definition file and never mutated.
type Template struct {
	// ID is the template identifier, derived from its directory name.
	ID string

	// Name is the display name, unique across all templates.
	Name string

	// Description is an optional free-form description (markdown).
	Description string

	// Path is the absolute path to the template directory.
	Path string

	// Variants lists the template's variants in declaration order.
	// The order is significant: contributions are collected by
	// enumerating variants in this order.
	Variants []Variant

	// MergeRules maps an output path to its declared merge method
	// (raw form, e.g. "json" or "custom:mergers/readme").
	MergeRules map[string]string
}

// Variant returns the variant with the given ID, if declared.
func (t *Template) Variant(id string) (Variant, bool) {
	for _, v := range t.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

// VariantIDs returns all variant IDs in declaration order.
func (t *Template) VariantIDs() []string {
	ids := make([]string, len(t.Variants))
	for i, v := range t.Variants {
		ids[i] = v.ID
	}
	return ids
}

// Variant is an optional or mandatory slice of a template contributing
// specific files.
type Variant struct {
	// ID is unique within the template and names the variant's
	// source directory under the template directory.
	ID string

	// Name is the display name, unique within the template.
	Name string

	// Description is an optional free-form description.
	Description string

	// Required marks a variant that is always active and cannot be
	// deselected.
	Required bool

	// Scripts lists script names this variant contributes.
	Scripts []string

	// Files lists the relative paths this variant supplies, in
	// declaration order. Never empty for a valid variant.
	Files []string
}

// Contribution is one variant's raw text for a specific output path
// before merging. Ordering across contributions is significant.
type Contribution struct {
	Variant    string
	SourceText string
}

// MergedFile is the result of merging all contributions for one path.
type MergedFile struct {
	// Path is the output path relative to the destination directory.
	Path string

	// Text is the final file content.
	Text string

	// Contributors lists the variant IDs credited with the final
	// text, in contribution order.
	Contributors []string
}
