package merge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stencilerrors "github.com/arthur-debert/stencil/pkg/errors"
	"github.com/arthur-debert/stencil/pkg/types"
)

// writeMerger drops an executable script fixture into dir.
func writeMerger(t *testing.T, dir, name, script string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
}

func customContribs() []types.Contribution {
	return []types.Contribution{
		{Variant: "base", SourceText: "one\n"},
		{Variant: "docs", SourceText: "two\n"},
	}
}

func TestCustomMergerStringResultCreditsAllContributors(t *testing.T) {
	dir := t.TempDir()
	writeMerger(t, dir, "mergers/concat", "#!/bin/sh\nprintf '\"merged text\"'\n")

	strategy, err := ParseStrategy("custom:mergers/concat", dir)
	require.NoError(t, err)

	merged, err := strategy.Merge("README.md", customContribs())
	require.NoError(t, err)

	assert.Equal(t, "merged text", merged.Text)
	assert.Equal(t, []string{"base", "docs"}, merged.Contributors)
}

func TestCustomMergerObjectResultIsTrustedVerbatim(t *testing.T) {
	dir := t.TempDir()
	writeMerger(t, dir, "mergers/pick",
		"#!/bin/sh\nprintf '{\"sourceText\":\"picked\",\"contributingVariants\":[\"docs\"]}'\n")

	strategy, err := ParseStrategy("custom:mergers/pick", dir)
	require.NoError(t, err)

	merged, err := strategy.Merge("README.md", customContribs())
	require.NoError(t, err)

	assert.Equal(t, "picked", merged.Text)
	// The declared subset is trusted, not expanded to all inputs
	assert.Equal(t, []string{"docs"}, merged.Contributors)
}

func TestCustomMergerResultShapeValidated(t *testing.T) {
	dir := t.TempDir()
	// Echo stdin back in place of the merged text
	writeMerger(t, dir, "mergers/echo",
		"#!/bin/sh\nprintf '{\"sourceText\":'\ncat\nprintf ',\"contributingVariants\":[]}'\n")

	// The script wraps the raw input array into sourceText, which is
	// not a string, so the schema must reject it. This doubles as a
	// malformed-result check with a real subprocess.
	strategy, err := ParseStrategy("custom:mergers/echo", dir)
	require.NoError(t, err)

	_, err = strategy.Merge("README.md", customContribs())
	require.Error(t, err)
	assert.True(t, stencilerrors.IsErrorCode(err, stencilerrors.ErrMergerResult))
}

func TestCustomMergerFailureAbortsRun(t *testing.T) {
	dir := t.TempDir()
	writeMerger(t, dir, "mergers/boom", "#!/bin/sh\necho 'kaput' >&2\nexit 3\n")

	strategy, err := ParseStrategy("custom:mergers/boom", dir)
	require.NoError(t, err)

	_, err = strategy.Merge("README.md", customContribs())
	require.Error(t, err)
	assert.True(t, stencilerrors.IsErrorCode(err, stencilerrors.ErrMergerExecute))
}

func TestCustomMergerMalformedOutput(t *testing.T) {
	dir := t.TempDir()
	writeMerger(t, dir, "mergers/garbage", "#!/bin/sh\nprintf 'not json at all'\n")

	strategy, err := ParseStrategy("custom:mergers/garbage", dir)
	require.NoError(t, err)

	_, err = strategy.Merge("README.md", customContribs())
	require.Error(t, err)
	assert.True(t, stencilerrors.IsErrorCode(err, stencilerrors.ErrMergerResult))
}
