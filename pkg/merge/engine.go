package merge

import (
	"github.com/ohler55/ojg/oj"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/types"
)

const (
	// PackageJSONPath is the output path that always receives a
	// synthetic first contribution.
	PackageJSONPath = "package.json"

	// SyntheticVariant is the ID credited for the internally
	// injected package.json base contribution.
	SyntheticVariant = "stencil"

	// InitialVersion is the version written into the synthetic
	// package.json contribution.
	InitialVersion = "0.1.0"
)

// Options carries the per-run inputs the engine needs beyond the
// template itself.
type Options struct {
	// PackageName is the user-supplied project name.
	PackageName string

	// Scope is an optional prefix for the generated package name,
	// e.g. "@acme".
	Scope string
}

// Contributions is the immutable index built by Collect: for each
// output path, the ordered list of contributing sources. Paths keep
// first-contribution order.
type Contributions struct {
	order  []string
	byPath map[string][]types.Contribution
}

// Paths returns all contributed output paths in collection order.
func (c *Contributions) Paths() []string {
	return c.order
}

// For returns the ordered contributions for one path.
func (c *Contributions) For(path string) []types.Contribution {
	return c.byPath[path]
}

// Collect folds the active variants' file sets into a per-path
// contribution index. Variants are enumerated in template-declared
// order regardless of selection order. package.json unconditionally
// receives a synthetic first contribution so downstream merges always
// see a base object, even when no variant supplies one.
func Collect(tmpl *types.Template, catalog map[string]map[string]string, active []string, opts Options) *Contributions {
	activeSet := make(map[string]bool, len(active))
	for _, id := range active {
		activeSet[id] = true
	}

	c := &Contributions{byPath: make(map[string][]types.Contribution)}
	c.add(PackageJSONPath, types.Contribution{
		Variant:    SyntheticVariant,
		SourceText: syntheticPackageJSON(opts),
	})

	for _, v := range tmpl.Variants {
		if !activeSet[v.ID] {
			continue
		}
		for _, path := range v.Files {
			c.add(path, types.Contribution{
				Variant:    v.ID,
				SourceText: catalog[v.ID][path],
			})
		}
	}

	return c
}

func (c *Contributions) add(path string, contrib types.Contribution) {
	if _, ok := c.byPath[path]; !ok {
		c.order = append(c.order, path)
	}
	c.byPath[path] = append(c.byPath[path], contrib)
}

func syntheticPackageJSON(opts Options) string {
	name := opts.PackageName
	if opts.Scope != "" {
		name = opts.Scope + "/" + name
	}
	return writeJSON(map[string]any{
		"name":    name,
		"version": InitialVersion,
	})
}

// Engine merges collected contributions using the strategies declared
// per output path.
type Engine struct {
	logger     zerolog.Logger
	strategies map[string]Strategy
}

// NewEngine creates an Engine with the template's resolved per-path
// strategies.
func NewEngine(strategies map[string]Strategy) *Engine {
	return &Engine{
		logger:     logging.GetLogger("merge.engine"),
		strategies: strategies,
	}
}

// Merge produces the final output file set. Single-contribution paths
// pass through verbatim without any method lookup; paths with two or
// more contributions require a declared merge method, except
// package.json which defaults to the structural "json" merge because
// the engine itself injects its second contributor.
func (e *Engine) Merge(contribs *Contributions) ([]types.MergedFile, error) {
	files := make([]types.MergedFile, 0, len(contribs.Paths()))

	for _, path := range contribs.Paths() {
		sources := contribs.For(path)

		switch {
		case len(sources) == 0:
			return nil, errors.Newf(errors.ErrInternal,
				"no contributions collected for %q", path)

		case len(sources) == 1:
			files = append(files, types.MergedFile{
				Path:         path,
				Text:         sources[0].SourceText,
				Contributors: []string{sources[0].Variant},
			})

		default:
			strategy := e.strategies[path]
			if strategy == nil && path == PackageJSONPath {
				strategy = structuralStrategy{}
			}
			if strategy == nil {
				return nil, errors.Newf(errors.ErrMergeMethodMissing,
					"multiple variants contribute %q but no merge method is declared for it", path)
			}

			e.logger.Debug().
				Str("path", path).
				Str("method", strategy.Name()).
				Int("contributions", len(sources)).
				Msg("Merging contributions")

			merged, err := strategy.Merge(path, sources)
			if err != nil {
				return nil, err
			}

			if path == PackageJSONPath {
				if err := normalizePackageJSON(&merged); err != nil {
					return nil, err
				}
			}

			files = append(files, merged)
		}
	}

	return files, nil
}

// normalizePackageJSON re-parses the merged manifest and re-serializes
// it with sorted keys, so the dependency-category objects (and
// everything else) stay diff-stable regardless of contribution order.
func normalizePackageJSON(file *types.MergedFile) error {
	value, err := oj.Parse([]byte(file.Text))
	if err != nil {
		return errors.Wrap(err, errors.ErrMergeParse,
			"merged package.json is not valid JSON")
	}
	file.Text = writeJSON(value)
	return nil
}
