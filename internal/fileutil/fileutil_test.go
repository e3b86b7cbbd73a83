package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogpipe/internal/apperr"
)

func TestWriteText_Overwrites(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteText(dir, "original.md", "first")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "original.md"), path)

	_, err = WriteText(dir, "original.md", "second")
	require.NoError(t, err)

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestWriteText_MissingDir(t *testing.T) {
	_, err := WriteText(filepath.Join(t.TempDir(), "nope"), "x.md", "x")
	assert.ErrorIs(t, err, apperr.ErrIO)
}

func TestReadText_Missing(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorIs(t, err, apperr.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir), "existing directory is fine")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
