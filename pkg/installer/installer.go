// Package installer runs the package manager install step in a freshly
// scaffolded project. Detection prefers the configured manager, then
// falls back to whatever is on PATH.
package installer

import (
	"os"
	"os/exec"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/logging"
)

// candidates in fallback order.
var candidates = []string{"pnpm", "yarn", "npm"}

// Detect returns the package manager binary to use. The preferred
// manager wins when it is installed; otherwise the first candidate
// found on PATH is used.
func Detect(preferred string) (string, error) {
	if preferred != "" {
		if _, err := exec.LookPath(preferred); err == nil {
			return preferred, nil
		}
		logger := logging.GetLogger("installer")
		logger.Warn().
			Str("manager", preferred).
			Msg("configured package manager not found, falling back")
	}
	for _, name := range candidates {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", errors.New(errors.ErrNotFound, "no package manager found on PATH")
}

// Install runs "<manager> install" in dir, streaming output to the
// caller's terminal.
func Install(manager, dir string) error {
	logger := logging.GetLogger("installer")
	logger.Info().Str("manager", manager).Str("dir", dir).Msg("installing dependencies")

	cmd := exec.Command(manager, "install")
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "%s install failed", manager)
	}
	return nil
}
