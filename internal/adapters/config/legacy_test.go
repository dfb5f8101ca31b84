package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/tago/internal/core/ports"
)

// writeTestIndex creates the tests directory with its companion index file
// and the two subdirectories it names.
func writeTestIndex(t *testing.T, dir, testsDir, passName, failName string) {
	t.Helper()

	root := filepath.Join(dir, testsDir)
	require.NoError(t, os.MkdirAll(filepath.Join(root, passName), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, failName), 0o750))

	index := passName + "\n" + failName + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.TestIndexFileName), []byte(index), 0o644))
}

func TestLoad_Legacy(t *testing.T) {
	dir := t.TempDir()
	writeTestIndex(t, dir, "checks", "good", "bad")

	path := writeDescriptor(t, dir, `0.2.0
main.c
demo
0.1.5
0.2.0
checks
out
0.1.0 # first release
?0.1.5 # local rebuild
0.2.0 # current
`)

	d, err := newLoader(t).Load(path, ports.ResolveOptions{})
	require.NoError(t, err)

	assert.Equal(t, "0.2.0", d.Schema)
	assert.Equal(t, domain.KernelNative, d.Kernel)
	assert.False(t, d.Extensions)
	assert.Equal(t, "main.c", d.Source)
	assert.Equal(t, "demo", d.Binary)
	assert.Equal(t, "0.1.5", d.BuildToolMin)
	assert.Equal(t, "0.2.0", d.BootstrapMin)
	assert.Equal(t, filepath.Join(dir, "out"), d.BuildsDir)

	assert.Equal(t, []string{"0.1.0", "0.2.0"}, d.Checkout.Tags())
	assert.Equal(t, []string{"0.1.5"}, d.InPlace.Tags())

	description, ok := d.Checkout.Description("0.1.0")
	require.True(t, ok)
	assert.Equal(t, "first release", description)

	assert.True(t, d.TestsEnabled)
	assert.Equal(t, filepath.Join(dir, "checks", "good"), d.PassDir)
	assert.Equal(t, filepath.Join(dir, "checks", "bad"), d.FailDir)
}

func TestLoad_LegacyBlankOptionalLines(t *testing.T) {
	dir := t.TempDir()

	// A blank tests-dir line disables test support, a blank builds-dir
	// line falls back to the default.
	path := writeDescriptor(t, dir, `0.1.0
main.c
demo



`)

	d, err := newLoader(t).Load(path, ports.ResolveOptions{})
	require.NoError(t, err)

	assert.False(t, d.TestsEnabled)
	assert.Empty(t, d.TestsDir)
	assert.Equal(t, filepath.Join(dir, domain.DefaultBuildsDirName), d.BuildsDir)
	assert.Empty(t, d.BuildToolMin)
	assert.Empty(t, d.BootstrapMin)
}

func TestLoad_LegacyTruncated(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, "0.2.0\nmain.c\ndemo\n")

	_, err := newLoader(t).Load(path, ports.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLegacyTruncated)
}

func TestLoad_LegacySchemaMustParse(t *testing.T) {
	dir := t.TempDir()

	// Line 0 of a legacy file is always the schema; it is never defaulted.
	path := writeDescriptor(t, dir, "once upon a time\nmain.c\ndemo\n\n\n\n\n")

	_, err := newLoader(t).Load(path, ports.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

func TestLoad_LegacyWithStructuredSchema(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, "0.4.0\nmain.c\ndemo\n\n\n\n\n")

	_, err := newLoader(t).Load(path, ports.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFormatMismatch)
}

func TestLoad_LegacyDuplicateTag(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, `0.2.0
main.c
demo




0.1.0 # once
0.1.0 # twice
`)

	_, err := newLoader(t).Load(path, ports.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateTag)
}

func TestLoad_LegacyPartitionConflict(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, `0.2.0
main.c
demo




0.1.0 # checked out
?0.1.0 # in place
`)

	_, err := newLoader(t).Load(path, ports.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTagPartitionConflict)
}

func TestLoad_LegacyRecordWithoutDescription(t *testing.T) {
	dir := t.TempDir()
	path := writeDescriptor(t, dir, `0.2.0
main.c
demo




0.1.0
`)

	d, err := newLoader(t).Load(path, ports.ResolveOptions{})
	require.NoError(t, err)

	description, ok := d.Checkout.Description("0.1.0")
	require.True(t, ok)
	assert.Empty(t, description)
}

func TestLoad_LegacyTestIndexMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "checks"), 0o750))

	path := writeDescriptor(t, dir, "0.2.0\nmain.c\ndemo\n\n\nchecks\n\n")

	_, err := newLoader(t).Load(path, ports.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTestIndexMalformed)
}

func TestLoad_LegacyTestIndexTruncated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "checks"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "checks", domain.TestIndexFileName), []byte("good"), 0o644))

	path := writeDescriptor(t, dir, "0.2.0\nmain.c\ndemo\n\n\nchecks\n\n")

	_, err := newLoader(t).Load(path, ports.ResolveOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTestIndexMalformed)
}
