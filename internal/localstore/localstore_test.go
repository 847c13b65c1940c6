package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_GetItem_TrimsWhitespace(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "authToken"), []byte("tok-123\n  \r\n"), 0o600))

	v, ok, err := Open(dir).GetItem("authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", v)
}

func TestDir_GetItem_Missing(t *testing.T) {
	v, ok, err := Open(t.TempDir()).GetItem("authToken")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestDir_GetItem_MissingDirectory(t *testing.T) {
	_, ok, err := Open(filepath.Join(t.TempDir(), "nope")).GetItem("authToken")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDir_GetItem_EmptyFileIsPresent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "authToken"), nil, 0o600))

	v, ok, err := Open(dir).GetItem("authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestDir_GetItem_InvalidKey(t *testing.T) {
	d := Open(t.TempDir())
	for _, key := range []string{"", ".", "..", "../etc/passwd", `a\b`} {
		_, _, err := d.GetItem(key)
		assert.ErrorIs(t, err, ErrInvalidKey, "key %q", key)
	}
}

func TestDir_GetItem_UnreadableIsError(t *testing.T) {
	dir := t.TempDir()
	// A directory in place of the item file cannot be read as a value.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "authToken"), 0o700))

	_, ok, err := Open(dir).GetItem("authToken")
	assert.Error(t, err)
	assert.False(t, ok)
}
