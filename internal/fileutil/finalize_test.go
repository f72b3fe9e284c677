package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/gost2/internal/fileutil"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestTempContextCommit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in")
	out := filepath.Join(dir, "out")

	writeFile(t, src, "source")

	tc, err := fileutil.NewTempContext(src, out)
	require.NoError(t, err)

	var opErr error
	defer tc.CleanupOnError(&opErr)

	_, err = tc.TmpFile.WriteString("payload")
	require.NoError(t, err)
	require.NoError(t, tc.Commit(out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileutil.OwnerReadWrite), info.Mode().Perm())

	_, err = os.Stat(tc.TmpName)
	assert.True(t, errors.Is(err, os.ErrNotExist), "temp file should have been renamed away")
}

func TestTempContextCleanupOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "in")

	writeFile(t, src, "source")

	tc, err := fileutil.NewTempContext(src, filepath.Join(dir, "out"))
	require.NoError(t, err)

	opErr := errors.New("boom")
	tc.CleanupOnError(&opErr)

	_, err = os.Stat(tc.TmpName)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewTempContextMissingSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := fileutil.NewTempContext(filepath.Join(dir, "missing"), filepath.Join(dir, "out"))
	require.ErrorIs(t, err, os.ErrNotExist)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp file may be created for a missing source")
}

func TestRemoveOnError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	kept := filepath.Join(dir, "kept")
	removed := filepath.Join(dir, "removed")

	writeFile(t, kept, "x")
	writeFile(t, removed, "x")

	var ok error
	fileutil.RemoveOnError(kept, &ok)

	failed := errors.New("failed")
	fileutil.RemoveOnError(removed, &failed)

	assert.FileExists(t, kept)
	assert.NoFileExists(t, removed)
}

func TestFinalizeOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "out")

	writeFile(t, out, "12345")

	modTime := time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)

	size, err := fileutil.FinalizeOutput(out, true, modTime)
	require.NoError(t, err)
	assert.Equal(t, int64(5), size)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(modTime))
}
