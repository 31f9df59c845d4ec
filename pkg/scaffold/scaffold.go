// Package scaffold wires the full pipeline together: load templates,
// resolve variant activation, collect and merge contributions, and
// write the result to disk. The cmd layer is a thin shell around Run.
package scaffold

import (
	"path/filepath"

	"github.com/arthur-debert/stencil/pkg/activation"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/merge"
	"github.com/arthur-debert/stencil/pkg/templates"
	"github.com/arthur-debert/stencil/pkg/tree"
	"github.com/arthur-debert/stencil/pkg/types"
	"github.com/arthur-debert/stencil/pkg/writer"
)

// Options are the fully resolved inputs for one scaffolding run. The
// caller (CLI flags or interactive prompts) is responsible for filling
// every field; Run never prompts.
type Options struct {
	// TemplatesRoot is the directory holding template definitions.
	TemplatesRoot string

	// TemplateID selects the template to scaffold.
	TemplateID string

	// Variants are the explicitly chosen variant IDs. Required
	// variants are activated on top of these.
	Variants []string

	// Name is the project name; it becomes both the destination
	// directory name and the package.json name.
	Name string

	// Scope optionally prefixes the package name, e.g. "@acme".
	Scope string

	// OutputDir is the parent directory the project is created in.
	OutputDir string

	// DryRun computes the full result without touching the disk.
	DryRun bool
}

// Result describes what a run produced (or, for a dry run, would have
// produced).
type Result struct {
	// DestDir is the absolute destination directory.
	DestDir string

	// Files are the merged output files in collection order.
	Files []types.MergedFile

	// Entries feed the tree renderer: one per output file, annotated
	// with the variants credited for it.
	Entries []tree.Entry

	// Scripts is the ordered union of script names the active
	// variants contribute.
	Scripts []string

	// ActiveVariants lists the activated variant IDs in template
	// declaration order.
	ActiveVariants []string
}

// Run loads the template library and executes one scaffolding
// pipeline end to end.
func Run(opts Options) (*Result, error) {
	lib, err := templates.Load(opts.TemplatesRoot)
	if err != nil {
		return nil, err
	}
	return RunWith(lib, opts)
}

// RunWith is Run against an already loaded library. Callers that
// prompted against the library use this to avoid a second load.
func RunWith(lib *templates.Library, opts Options) (*Result, error) {
	logger := logging.GetLogger("scaffold")

	lt, err := lib.Get(opts.TemplateID)
	if err != nil {
		return nil, err
	}

	active, err := activation.Resolve(&lt.Template, opts.Variants)
	if err != nil {
		return nil, err
	}

	contribs := merge.Collect(&lt.Template, lt.Files, active, merge.Options{
		PackageName: opts.Name,
		Scope:       opts.Scope,
	})

	files, err := merge.NewEngine(lt.Strategies).Merge(contribs)
	if err != nil {
		return nil, err
	}

	dest := filepath.Join(opts.OutputDir, opts.Name)
	if err := writer.New(opts.DryRun).WriteProject(dest, files); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(dest)
	if err != nil {
		abs = dest
	}

	result := &Result{
		DestDir:        abs,
		Files:          files,
		Entries:        treeEntries(files),
		Scripts:        scriptUnion(&lt.Template, active),
		ActiveVariants: ordered(&lt.Template, active),
	}

	logger.Info().
		Str("template", opts.TemplateID).
		Strs("variants", result.ActiveVariants).
		Str("dest", result.DestDir).
		Bool("dryRun", opts.DryRun).
		Int("files", len(result.Files)).
		Msg("Scaffolding complete")

	return result, nil
}

// treeEntries annotates each file with its contributing variants. The
// synthetic package.json credit is internal bookkeeping and never
// shown.
func treeEntries(files []types.MergedFile) []tree.Entry {
	entries := make([]tree.Entry, len(files))
	for i, f := range files {
		entries[i] = tree.Entry{Path: f.Path, Variants: annotation(f)}
	}
	return entries
}

func annotation(f types.MergedFile) []string {
	variants := make([]string, 0, len(f.Contributors))
	for _, v := range f.Contributors {
		if f.Path == merge.PackageJSONPath && v == merge.SyntheticVariant {
			continue
		}
		variants = append(variants, v)
	}
	return variants
}

// scriptUnion collects script names from the active variants, in
// variant declaration order, first mention wins.
func scriptUnion(tmpl *types.Template, active []string) []string {
	activeSet := make(map[string]bool, len(active))
	for _, id := range active {
		activeSet[id] = true
	}

	seen := make(map[string]bool)
	var scripts []string
	for _, v := range tmpl.Variants {
		if !activeSet[v.ID] {
			continue
		}
		for _, s := range v.Scripts {
			if !seen[s] {
				seen[s] = true
				scripts = append(scripts, s)
			}
		}
	}
	return scripts
}

// ordered re-sorts the active set into template declaration order.
func ordered(tmpl *types.Template, active []string) []string {
	activeSet := make(map[string]bool, len(active))
	for _, id := range active {
		activeSet[id] = true
	}

	out := make([]string, 0, len(active))
	for _, v := range tmpl.Variants {
		if activeSet[v.ID] {
			out = append(out, v.ID)
		}
	}
	return out
}
