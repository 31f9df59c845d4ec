// Package activation computes the active variant set for one run: the
// union of the user's explicit choices and every variant the template
// marks as required.
package activation

import (
	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/types"
)

// Resolve returns the authoritative active set: chosen IDs first (in
// selection order, deduplicated), then any required variants not
// already chosen, in declaration order. A required variant can never
// be excluded. Unknown chosen IDs are an error.
func Resolve(tmpl *types.Template, chosen []string) ([]string, error) {
	logger := logging.GetLogger("activation")

	seen := make(map[string]bool, len(chosen))
	active := make([]string, 0, len(chosen))

	for _, id := range chosen {
		if _, ok := tmpl.Variant(id); !ok {
			return nil, errors.Newf(errors.ErrVariantNotFound,
				"template %q has no variant %q", tmpl.ID, id).
				WithDetail("available", tmpl.VariantIDs())
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		active = append(active, id)
	}

	for _, v := range tmpl.Variants {
		if v.Required && !seen[v.ID] {
			seen[v.ID] = true
			active = append(active, v.ID)
		}
	}

	logger.Debug().
		Str("template", tmpl.ID).
		Strs("chosen", chosen).
		Strs("active", active).
		Msg("Resolved active variant set")

	return active, nil
}
