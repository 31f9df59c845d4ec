package merge

import (
	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/types"
)

// shallowStrategy implements the "json-shallow" merge method: the
// result is a single object holding the union of all top-level keys,
// later contributions overriding earlier ones wholesale. Nested
// values are never merged.
type shallowStrategy struct{}

func (shallowStrategy) Name() string { return MethodJSONShallow }

func (shallowStrategy) Merge(path string, contribs []types.Contribution) (types.MergedFile, error) {
	out := make(map[string]any)
	for _, c := range contribs {
		value, err := parseJSON(path, c)
		if err != nil {
			return types.MergedFile{}, err
		}
		object, ok := value.(map[string]any)
		if !ok {
			return types.MergedFile{}, errors.Newf(errors.ErrMergeParse,
				"json-shallow merge of %q requires a top-level object from variant %q", path, c.Variant)
		}
		for k, v := range object {
			out[k] = v
		}
	}

	return types.MergedFile{
		Path:         path,
		Text:         writeJSON(out),
		Contributors: contributors(contribs),
	}, nil
}
