// Package paths provides centralized path handling for stencil.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/stencil/pkg/errors"
)

// Environment variable names
const (
	// EnvTemplatesRoot is the primary environment variable for the templates location
	EnvTemplatesRoot = "STENCIL_TEMPLATES_ROOT"

	// EnvConfigDir overrides the XDG config directory for stencil
	EnvConfigDir = "STENCIL_CONFIG_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for stencil-specific files
	AppDirName = "stencil"

	// TemplatesDirName is the subdirectory holding template definitions
	TemplatesDirName = "templates"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"
)

// Paths resolves and caches the directories stencil operates on.
type Paths struct {
	templatesRoot string
	configDir     string
}

// New creates a Paths instance. templatesRoot may be empty, in which
// case it is resolved from STENCIL_TEMPLATES_ROOT and then the XDG
// config directory.
func New(templatesRoot string) (*Paths, error) {
	root := templatesRoot
	if root == "" {
		root = os.Getenv(EnvTemplatesRoot)
	}

	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if root == "" {
		root = filepath.Join(configDir, TemplatesDirName)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput,
			"cannot resolve templates root: %s", root)
	}

	return &Paths{
		templatesRoot: abs,
		configDir:     configDir,
	}, nil
}

// TemplatesRoot returns the directory whose immediate subdirectories
// are template definitions.
func (p *Paths) TemplatesRoot() string {
	return p.templatesRoot
}

// ConfigDir returns the stencil configuration directory.
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// ConfigFile returns the path of the user configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.configDir, ConfigFileName)
}
