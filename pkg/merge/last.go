package merge

import (
	"github.com/arthur-debert/stencil/pkg/types"
)

// lastStrategy implements the "last" merge method: the final
// contribution in order passes through unchanged and is the only
// credited variant.
type lastStrategy struct{}

func (lastStrategy) Name() string { return MethodLast }

func (lastStrategy) Merge(path string, contribs []types.Contribution) (types.MergedFile, error) {
	final := contribs[len(contribs)-1]
	return types.MergedFile{
		Path:         path,
		Text:         final.SourceText,
		Contributors: []string{final.Variant},
	}, nil
}
