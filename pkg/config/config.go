// Package config loads stencil's layered settings: embedded defaults,
// then the user configuration file, then STENCIL_* environment
// variables. Command-line flags override all of these at the call site.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/paths"
)

// Settings holds the user-configurable scaffold settings.
type Settings struct {
	// Scope is an optional prefix applied to generated package names.
	Scope string

	// Output is the directory new projects are created under.
	Output string

	// Manager is the preferred package manager for install invocation.
	Manager string
}

// Load builds Settings from defaults, the user config file (if any)
// and environment variables.
func Load(p *paths.Paths) (*Settings, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	// 2. User config file, when present
	configPath := p.ConfigFile()
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to parse config file: %s", configPath)
		}
	}

	// 3. Environment: STENCIL_SCAFFOLD_SCOPE -> scaffold.scope
	if err := k.Load(env.Provider("STENCIL_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "STENCIL_")), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment settings")
	}

	return &Settings{
		Scope:   k.String("scaffold.scope"),
		Output:  k.String("scaffold.output"),
		Manager: k.String("scaffold.manager"),
	}, nil
}
