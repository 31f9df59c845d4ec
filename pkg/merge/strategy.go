// Package merge implements stencil's file merge engine: it collects
// per-path contributions from active variants and reconciles multiple
// contributions to one output path according to the path's declared
// merge method.
package merge

import (
	"strings"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/oj"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/types"
)

// Merge method names as they appear in template definitions.
const (
	MethodJSON        = "json"
	MethodJSONShallow = "json-shallow"
	MethodLast        = "last"

	customPrefix = "custom:"
)

// Strategy reconciles two or more ordered contributions to a single
// output path.
type Strategy interface {
	// Name returns the declared method name.
	Name() string

	// Merge produces the merged file for path from the ordered
	// contributions.
	Merge(path string, contribs []types.Contribution) (types.MergedFile, error)
}

// ParseStrategy resolves a raw merge method string into a Strategy.
// Custom references are resolved relative to templateDir immediately,
// so a broken reference fails at template-load time rather than at
// merge time.
func ParseStrategy(raw, templateDir string) (Strategy, error) {
	switch {
	case raw == MethodJSON:
		return structuralStrategy{}, nil
	case raw == MethodJSONShallow:
		return shallowStrategy{}, nil
	case raw == MethodLast:
		return lastStrategy{}, nil
	case strings.HasPrefix(raw, customPrefix):
		ref := strings.TrimPrefix(raw, customPrefix)
		if ref == "" {
			return nil, errors.New(errors.ErrMergeMethodUnknown, "custom merge method is missing a reference")
		}
		return newCustomStrategy(ref, templateDir)
	default:
		return nil, errors.Newf(errors.ErrMergeMethodUnknown, "unknown merge method: %q", raw)
	}
}

var jsonWriteOptions = ojg.Options{Sort: true, Indent: 2}

// parseJSON parses one contribution's text, attributing failures to
// the path and variant that produced it.
func parseJSON(path string, c types.Contribution) (any, error) {
	value, err := oj.Parse([]byte(c.SourceText))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMergeParse,
			"invalid JSON in %q from variant %q", path, c.Variant)
	}
	return value, nil
}

// writeJSON serializes a merged value with stable 2-space indentation
// and sorted keys, so output does not depend on map iteration order.
func writeJSON(value any) string {
	text := oj.JSON(value, &jsonWriteOptions)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}

func contributors(contribs []types.Contribution) []string {
	ids := make([]string, len(contribs))
	for i, c := range contribs {
		ids[i] = c.Variant
	}
	return ids
}
