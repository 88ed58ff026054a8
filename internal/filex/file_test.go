package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestDeclaredType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"cat.png", "image/png"},
		{"CAT.PNG", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"anim.gif", "image/gif"},
		{"noext", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeclaredType(tt.name))
		})
	}
}

func TestLoadCandidate(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "cat.png", []byte("\x89PNG data"))

	c, err := LoadCandidate(p)
	require.NoError(t, err)

	assert.Equal(t, "cat.png", c.Name)
	assert.Equal(t, "image/png", c.DeclaredType)
	assert.Equal(t, int64(9), c.Size)
	assert.Equal(t, []byte("\x89PNG data"), c.Content)
}

func TestLoadCandidate_TypeComesFromExtensionOnly(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "anim.gif", []byte("\x89PNG but named gif"))

	c, err := LoadCandidate(p)
	require.NoError(t, err)
	assert.Equal(t, "image/gif", c.DeclaredType)
}

func TestLoadCandidate_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadCandidate(filepath.Join(dir, "missing.png"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadCandidate(dir)
	require.Error(t, err)
}

func TestLoadCandidates_PreservesOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "b.png", []byte("b"))
	b := writeFile(t, dir, "a.jpg", []byte("aa"))

	got, err := LoadCandidates([]string{a, b})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b.png", got[0].Name)
	assert.Equal(t, "a.jpg", got[1].Name)

	_, err = LoadCandidates([]string{a, filepath.Join(dir, "nope.png")})
	require.Error(t, err)
}

func TestEnsureParentDir(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "state", "nested", "history.db")

	got, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "state", "nested"), got)

	fi, err := os.Stat(got)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	again, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestEnsureParentDir_FailsIfFileBlocksPath(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, tmp, "state", []byte("x"))

	_, err := EnsureParentDir(filepath.Join(tmp, "state", "history.db"))
	require.Error(t, err)
}
