package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tago/internal/adapters/fs"
)

func TestHashFile(t *testing.T) {
	t.Run("hashes file content deterministically", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "artifact")
		require.NoError(t, os.WriteFile(path, []byte("binary content"), 0o644))

		hasher := fs.NewHasher()

		first, err := hasher.HashFile(path)
		require.NoError(t, err)
		assert.Len(t, first, 16)

		second, err := hasher.HashFile(path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("different content yields different hash", func(t *testing.T) {
		dir := t.TempDir()
		a := filepath.Join(dir, "a")
		b := filepath.Join(dir, "b")
		require.NoError(t, os.WriteFile(a, []byte("one"), 0o644))
		require.NoError(t, os.WriteFile(b, []byte("two"), 0o644))

		hasher := fs.NewHasher()

		hashA, err := hasher.HashFile(a)
		require.NoError(t, err)
		hashB, err := hasher.HashFile(b)
		require.NoError(t, err)

		assert.NotEqual(t, hashA, hashB)
	})

	t.Run("missing file returns error", func(t *testing.T) {
		hasher := fs.NewHasher()

		_, err := hasher.HashFile(filepath.Join(t.TempDir(), "absent"))
		require.Error(t, err)
	})
}
