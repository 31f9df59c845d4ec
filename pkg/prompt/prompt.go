// Package prompt is the interactive UX layer: it asks the user which
// template and variants to scaffold and what to call the project. The
// core engine never prompts; callers that cannot prompt must supply
// these values as flags.
package prompt

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/templates"
	"github.com/arthur-debert/stencil/pkg/types"
)

// CanPrompt reports whether interactive prompts are possible.
func CanPrompt() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// ColorEnabled reports whether styled output should be produced.
func ColorEnabled() bool {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// SelectTemplate asks the user to pick one template from the library.
func SelectTemplate(lib *templates.Library) (string, error) {
	if len(lib.Order) == 0 {
		return "", errors.New(errors.ErrTemplateNotFound, "no templates available")
	}

	labels, byLabel := templateOptions(lib)
	selected, err := pterm.DefaultInteractiveSelect.
		WithOptions(labels).
		Show("Select a template")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "template selection failed")
	}
	return byLabel[selected], nil
}

// SelectVariants asks the user which optional variants to activate.
// Required variants are not offered; they are always active.
func SelectVariants(tmpl *types.Template) ([]string, error) {
	labels, byLabel := variantOptions(tmpl)
	if len(labels) == 0 {
		return nil, nil
	}

	selected, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(labels).
		Show("Select variants")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "variant selection failed")
	}

	ids := make([]string, 0, len(selected))
	for _, label := range selected {
		ids = append(ids, byLabel[label])
	}
	return ids, nil
}

// ProjectName asks for the target package name.
func ProjectName() (string, error) {
	name, err := pterm.DefaultInteractiveTextInput.Show("Project name")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "project name input failed")
	}
	if name == "" {
		return "", errors.New(errors.ErrInvalidInput, "project name must not be empty")
	}
	return name, nil
}

func templateOptions(lib *templates.Library) ([]string, map[string]string) {
	labels := make([]string, 0, len(lib.Order))
	byLabel := make(map[string]string, len(lib.Order))
	for _, id := range lib.Order {
		label := lib.Templates[id].Template.Name + " (" + id + ")"
		labels = append(labels, label)
		byLabel[label] = id
	}
	return labels, byLabel
}

func variantOptions(tmpl *types.Template) ([]string, map[string]string) {
	var labels []string
	byLabel := make(map[string]string)
	for _, v := range tmpl.Variants {
		if v.Required {
			continue
		}
		label := v.Name + " (" + v.ID + ")"
		labels = append(labels, label)
		byLabel[label] = v.ID
	}
	return labels, byLabel
}
