// Package schema validates stencil's two fixed structural contracts:
// the template definition and the custom-merger result. Both are
// expressed as embedded JSON Schema documents and compiled once.
package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schemas/template.schema.json
var templateSchemaRaw []byte

//go:embed schemas/merger-result.schema.json
var mergerResultSchemaRaw []byte

var (
	templateSchema     = mustCompile("template.schema.json", templateSchemaRaw)
	mergerResultSchema = mustCompile("merger-result.schema.json", mergerResultSchemaRaw)

	printer = message.NewPrinter(language.English)
)

func mustCompile(name string, raw []byte) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("schema: invalid embedded schema %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("schema: cannot register schema %s: %v", name, err))
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("schema: cannot compile schema %s: %v", name, err))
	}
	return compiled
}

// ValidateTemplate checks a parsed template definition against the
// template contract. The returned error carries every violation.
func ValidateTemplate(value any) error {
	return templateSchema.Validate(value)
}

// ValidateMergerResult checks a custom merger's returned value against
// the result contract: a bare string, or an object with sourceText and
// contributingVariants.
func ValidateMergerResult(value any) error {
	return mergerResultSchema.Validate(value)
}

// Violations flattens a validation error into one human-readable
// message per violation. For non-validation errors it returns the
// error text as a single entry.
func Violations(err error) []string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	var out []string
	collectViolations(ve, &out)
	return out
}

func collectViolations(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		location := "/" + strings.Join(ve.InstanceLocation, "/")
		*out = append(*out, fmt.Sprintf("at %q: %s", location, ve.ErrorKind.LocalizedString(printer)))
		return
	}
	for _, cause := range ve.Causes {
		collectViolations(cause, out)
	}
}
