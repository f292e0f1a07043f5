package fsutil

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSFileSystem_Exists(t *testing.T) {
	fs := OSFileSystem{}

	if !fs.Exists("filesystem.go") {
		t.Error("expected filesystem.go to exist")
	}

	if fs.Exists("nonexistent_file_xyz.go") {
		t.Error("expected nonexistent file to not exist")
	}
}

func TestOSFileSystem_CreateWithParents(t *testing.T) {
	fs := OSFileSystem{}
	path := filepath.Join(t.TempDir(), "plots", "gj876", "periodogram.pdf")

	w, err := CreateWithParents(fs, path)
	require.NoError(t, err)
	_, err = w.Write([]byte("%PDF"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	f, err := fs.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(got))

	require.NoError(t, fs.WriteFile(path, []byte("over"), 0644))
	data, err = fs.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "over", string(data))
}

func TestMemoryFileSystem_WriteAndRead(t *testing.T) {
	mfs := NewMemoryFileSystem()

	require.NoError(t, mfs.WriteFile("/curve.csv", []byte("1,0.5\n"), 0644))

	data, err := mfs.ReadFile("/curve.csv")
	require.NoError(t, err)
	assert.Equal(t, "1,0.5\n", string(data))

	_, err = mfs.ReadFile("/missing.csv")
	assert.Error(t, err)
}

func TestMemoryFileSystem_CreateVisibleOnClose(t *testing.T) {
	mfs := NewMemoryFileSystem()

	w, err := CreateWithParents(mfs, "out/plots/fip.png")
	require.NoError(t, err)
	assert.True(t, mfs.Exists("out/plots"))
	assert.True(t, mfs.Exists("out"))

	_, err = w.Write([]byte("png"))
	require.NoError(t, err)

	data, err := mfs.ReadFile("out/plots/fip.png")
	require.NoError(t, err)
	assert.Empty(t, data, "contents appear only after Close")

	require.NoError(t, w.Close())
	data, err = mfs.ReadFile("out/plots/fip.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
	assert.Equal(t, []string{"out/plots/fip.png"}, mfs.Files("out/"))
}

func TestMemoryFileSystem_Open(t *testing.T) {
	mfs := NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("sig.json", []byte(`{"a":[1]}`), 0644))

	f, err := mfs.Open("./sig.json")
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "sig.json", info.Name())
	assert.Equal(t, int64(9), info.Size())
	assert.False(t, info.IsDir())

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1]}`, string(data))

	_, err = mfs.Open("absent.json")
	assert.Error(t, err)
}

func TestMemoryFileSystem_PathCleaning(t *testing.T) {
	mfs := NewMemoryFileSystem()
	require.NoError(t, mfs.WriteFile("a/../b/./c.txt", []byte("x"), 0644))

	assert.True(t, mfs.Exists("b/c.txt"))
	assert.False(t, mfs.Exists("a/b/c.txt"))
}
