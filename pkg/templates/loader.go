// Package templates loads template definitions from a root directory:
// each immediate subdirectory is a template, described by a definition
// file and holding one source directory per variant. Loading is
// all-or-nothing: a malformed template aborts the whole load before
// any prompt is shown.
package templates

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/merge"
	"github.com/arthur-debert/stencil/pkg/schema"
	"github.com/arthur-debert/stencil/pkg/types"
)

// Definition file names, in preference order.
const (
	DefinitionFileTOML = "template.toml"
	DefinitionFileYAML = "template.yaml"
)

// LoadedTemplate is a template plus its fully materialized file
// catalog and resolved merge strategies.
type LoadedTemplate struct {
	Template types.Template

	// Files maps variant ID to relative path to file text. Every
	// declared file is present; loading fails otherwise.
	Files map[string]map[string]string

	// Strategies maps output paths to their resolved merge
	// strategies. Custom references are resolved here, at load
	// time, so broken mergers fail early.
	Strategies map[string]merge.Strategy
}

// Library is the full set of loaded templates.
type Library struct {
	Templates map[string]*LoadedTemplate

	// Order lists template IDs sorted for stable display.
	Order []string
}

// Get returns the loaded template with the given ID.
func (l *Library) Get(id string) (*LoadedTemplate, error) {
	if t, ok := l.Templates[id]; ok {
		return t, nil
	}
	return nil, errors.Newf(errors.ErrTemplateNotFound, "template %q not found", id).
		WithDetail("available", l.Order)
}

// Load reads every template under root. Failure is always fatal for
// the whole load; no partial catalogs are returned.
func Load(root string) (*Library, error) {
	logger := logging.GetLogger("templates.loader")

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "templates root does not exist").
				WithDetail("path", root)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot access templates root").
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "templates root is not a directory").
			WithDetail("path", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read templates root").
			WithDetail("path", root)
	}

	lib := &Library{Templates: make(map[string]*LoadedTemplate)}
	// display name -> template ID, for process-wide uniqueness
	usedNames := make(map[string]string)

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		loaded, err := loadTemplate(root, name, usedNames)
		if err != nil {
			return nil, err
		}
		lib.Templates[name] = loaded
		lib.Order = append(lib.Order, name)
		logger.Trace().Str("template", name).Msg("Loaded template")
	}

	sort.Strings(lib.Order)
	logger.Info().Int("count", len(lib.Order)).Str("root", root).Msg("Loaded templates")
	return lib, nil
}

// definitionFile mirrors the on-disk template definition.
type definitionFile struct {
	Name        string              `toml:"name" yaml:"name"`
	Description string              `toml:"description" yaml:"description"`
	Variant     []variantDef        `toml:"variant" yaml:"variant"`
	Merge       map[string]mergeDef `toml:"merge" yaml:"merge"`
}

type variantDef struct {
	ID          string   `toml:"id" yaml:"id"`
	Name        string   `toml:"name" yaml:"name"`
	Description string   `toml:"description" yaml:"description"`
	Required    bool     `toml:"required" yaml:"required"`
	Scripts     []string `toml:"scripts" yaml:"scripts"`
	Files       []string `toml:"files" yaml:"files"`
}

type mergeDef struct {
	MergeMethod string `toml:"mergeMethod" yaml:"mergeMethod"`
}

func loadTemplate(root, id string, usedNames map[string]string) (*LoadedTemplate, error) {
	dir := filepath.Join(root, id)

	raw, def, err := readDefinition(dir, id)
	if err != nil {
		return nil, err
	}

	if err := schema.ValidateTemplate(raw); err != nil {
		violations := schema.Violations(err)
		return nil, errors.Newf(errors.ErrTemplateInvalid,
			"template %q failed validation:\n  - %s", id, strings.Join(violations, "\n  - "))
	}

	if owner, taken := usedNames[def.Name]; taken {
		return nil, errors.Newf(errors.ErrTemplateInvalid,
			"templates %q and %q share the display name %q", owner, id, def.Name)
	}
	usedNames[def.Name] = id

	tmpl, err := buildTemplate(dir, id, def)
	if err != nil {
		return nil, err
	}

	files, err := loadCatalog(dir, id, tmpl)
	if err != nil {
		return nil, err
	}

	strategies := make(map[string]merge.Strategy, len(tmpl.MergeRules))
	for path, method := range tmpl.MergeRules {
		strategy, err := merge.ParseStrategy(method, dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err),
				"template %q: merge method for %q", id, path)
		}
		strategies[path] = strategy
	}

	return &LoadedTemplate{
		Template:   *tmpl,
		Files:      files,
		Strategies: strategies,
	}, nil
}

// readDefinition parses the template's definition file twice: once
// into a raw map for schema validation and once into the typed form.
func readDefinition(dir, id string) (map[string]any, *definitionFile, error) {
	type parser struct {
		file      string
		unmarshal func(data []byte, v any) error
	}
	parsers := []parser{
		{DefinitionFileTOML, func(data []byte, v any) error { return toml.Unmarshal(data, v) }},
		{DefinitionFileYAML, func(data []byte, v any) error { return yaml.Unmarshal(data, v) }},
	}

	for _, p := range parsers {
		path := filepath.Join(dir, p.file)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, nil, errors.Wrapf(err, errors.ErrFileAccess,
				"cannot read definition of template %q", id)
		}

		var raw map[string]any
		if err := p.unmarshal(data, &raw); err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrConfigParse,
				"cannot parse definition of template %q", id)
		}

		var def definitionFile
		if err := p.unmarshal(data, &def); err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrConfigParse,
				"cannot parse definition of template %q", id)
		}
		return raw, &def, nil
	}

	return nil, nil, errors.Newf(errors.ErrTemplateInvalid,
		"template %q is missing a definition file (%s or %s)", id, DefinitionFileTOML, DefinitionFileYAML)
}

func buildTemplate(dir, id string, def *definitionFile) (*types.Template, error) {
	seenIDs := make(map[string]bool, len(def.Variant))
	seenNames := make(map[string]bool, len(def.Variant))
	variants := make([]types.Variant, 0, len(def.Variant))

	for _, v := range def.Variant {
		if seenIDs[v.ID] {
			return nil, errors.Newf(errors.ErrTemplateInvalid,
				"template %q declares variant %q twice", id, v.ID)
		}
		if seenNames[v.Name] {
			return nil, errors.Newf(errors.ErrTemplateInvalid,
				"template %q has two variants with the display name %q", id, v.Name)
		}
		seenIDs[v.ID] = true
		seenNames[v.Name] = true

		variants = append(variants, types.Variant{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			Required:    v.Required,
			Scripts:     v.Scripts,
			Files:       v.Files,
		})
	}

	rules := make(map[string]string, len(def.Merge))
	for path, m := range def.Merge {
		rules[path] = m.MergeMethod
	}

	return &types.Template{
		ID:          id,
		Name:        def.Name,
		Description: def.Description,
		Path:        dir,
		Variants:    variants,
		MergeRules:  rules,
	}, nil
}

// loadCatalog eagerly reads every declared file. Reads within a
// template fan out concurrently; there is no ordering dependency
// between variants.
func loadCatalog(dir, id string, tmpl *types.Template) (map[string]map[string]string, error) {
	catalog := make(map[string]map[string]string, len(tmpl.Variants))
	var mu sync.Mutex
	g := new(errgroup.Group)

	for _, v := range tmpl.Variants {
		variantDir := filepath.Join(dir, v.ID)
		info, err := os.Stat(variantDir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Newf(errors.ErrVariantInvalid,
					"variant %q of template %q has no source directory", v.ID, id)
			}
			return nil, errors.Wrapf(err, errors.ErrFileAccess,
				"cannot access variant %q of template %q", v.ID, id)
		}
		if !info.IsDir() {
			return nil, errors.Newf(errors.ErrVariantInvalid,
				"variant %q of template %q is not a directory", v.ID, id)
		}

		catalog[v.ID] = make(map[string]string, len(v.Files))
		variantID := v.ID
		for _, rel := range v.Files {
			rel := rel
			full := filepath.Join(variantDir, filepath.FromSlash(rel))
			g.Go(func() error {
				data, err := os.ReadFile(full)
				if err != nil {
					if os.IsNotExist(err) {
						return errors.Newf(errors.ErrFileNotFound,
							"variant %q of template %q declares %q but the file does not exist",
							variantID, id, rel)
					}
					return errors.Wrapf(err, errors.ErrFileAccess,
						"cannot read %q of variant %q in template %q", rel, variantID, id)
				}
				mu.Lock()
				catalog[variantID][rel] = string(data)
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return catalog, nil
}
