package merge

import (
	"github.com/arthur-debert/stencil/pkg/types"
)

// structuralStrategy implements the "json" merge method: contributions
// are parsed and deep-merged in order. Conflicting keys that both hold
// objects recurse; any other conflict is won by the later source.
// Arrays are replaced wholesale, never concatenated.
type structuralStrategy struct{}

func (structuralStrategy) Name() string { return MethodJSON }

func (structuralStrategy) Merge(path string, contribs []types.Contribution) (types.MergedFile, error) {
	var merged any
	for i, c := range contribs {
		value, err := parseJSON(path, c)
		if err != nil {
			return types.MergedFile{}, err
		}
		if i == 0 {
			merged = value
			continue
		}
		merged = deepMerge(merged, value)
	}

	return types.MergedFile{
		Path:         path,
		Text:         writeJSON(merged),
		Contributors: contributors(contribs),
	}, nil
}

// deepMerge merges overlay onto base. Only object/object conflicts
// recurse; everything else resolves to overlay.
func deepMerge(base, overlay any) any {
	baseMap, baseOK := base.(map[string]any)
	overlayMap, overlayOK := overlay.(map[string]any)
	if !baseOK || !overlayOK {
		return overlay
	}

	out := make(map[string]any, len(baseMap)+len(overlayMap))
	for k, v := range baseMap {
		out[k] = v
	}
	for k, v := range overlayMap {
		if existing, ok := out[k]; ok {
			out[k] = deepMerge(existing, v)
		} else {
			out[k] = v
		}
	}
	return out
}
