package merge

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg/oj"

	"github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/logging"
	"github.com/arthur-debert/stencil/pkg/schema"
	"github.com/arthur-debert/stencil/pkg/types"
)

// customStrategy implements "custom:<reference>" merge methods. The
// reference names an executable program relative to the template
// directory. The program receives the ordered contribution list as a
// JSON array of {variant, sourceText} objects on stdin and must print
// a JSON value on stdout: either a string (the merged text, crediting
// all contributors) or an object with sourceText and
// contributingVariants.
//
// Execution is trusted and unsandboxed: no timeout, no retry. A
// failing or hanging merger aborts the run. The returned
// contributingVariants list is not checked to be a subset of the
// inputs.
type customStrategy struct {
	ref     string
	program string
}

// newCustomStrategy resolves ref relative to templateDir. The program
// must exist as a regular file when the template is loaded.
func newCustomStrategy(ref, templateDir string) (Strategy, error) {
	program := filepath.Join(templateDir, filepath.FromSlash(ref))
	info, err := os.Stat(program)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrMergerInvalid,
			"custom merger %q not found", ref).WithDetail("program", program)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrMergerInvalid,
			"custom merger %q is a directory, not an executable", ref)
	}
	return &customStrategy{ref: ref, program: program}, nil
}

func (s *customStrategy) Name() string { return customPrefix + s.ref }

func (s *customStrategy) Merge(path string, contribs []types.Contribution) (types.MergedFile, error) {
	logger := logging.GetLogger("merge.custom")

	payload := make([]any, len(contribs))
	for i, c := range contribs {
		payload[i] = map[string]any{
			"variant":    c.Variant,
			"sourceText": c.SourceText,
		}
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(s.program)
	cmd.Stdin = strings.NewReader(oj.JSON(payload))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug().
		Str("path", path).
		Str("merger", s.ref).
		Int("contributions", len(contribs)).
		Msg("Invoking custom merger")

	if err := cmd.Run(); err != nil {
		return types.MergedFile{}, errors.Wrapf(err, errors.ErrMergerExecute,
			"custom merger %q failed for %q", s.ref, path).
			WithDetail("stderr", stderr.String())
	}

	result, err := oj.Parse(stdout.Bytes())
	if err != nil {
		return types.MergedFile{}, errors.Wrapf(err, errors.ErrMergerResult,
			"custom merger %q returned malformed output for %q", s.ref, path)
	}

	if err := schema.ValidateMergerResult(result); err != nil {
		return types.MergedFile{}, errors.Newf(errors.ErrMergerResult,
			"custom merger %q returned an invalid result for %q", s.ref, path).
			WithDetail("violations", schema.Violations(err))
	}

	switch r := result.(type) {
	case string:
		return types.MergedFile{
			Path:         path,
			Text:         r,
			Contributors: contributors(contribs),
		}, nil
	case map[string]any:
		credited := r["contributingVariants"].([]any)
		ids := make([]string, len(credited))
		for i, v := range credited {
			ids[i] = v.(string)
		}
		return types.MergedFile{
			Path:         path,
			Text:         r["sourceText"].(string),
			Contributors: ids,
		}, nil
	default:
		// Unreachable: the schema admits only the two shapes above.
		return types.MergedFile{}, errors.Newf(errors.ErrInternal,
			"unexpected custom merger result type for %q", path)
	}
}
