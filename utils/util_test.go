package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "photo.exif", ReplaceExt("/a/b/photo.jpg", ".exif"))
	assert.Equal(t, "photo.cnt", ReplaceExt("photo", ".cnt"))
	assert.Equal(t, "my.photo.cnt", ReplaceExt("my.photo.png", ".cnt"))
}

func TestReadyDir(t *testing.T) {
	root := t.TempDir()
	name := filepath.Join(root, "x", "y", "z.txt")
	assert.NoError(t, ReadyDir(name))
	assert.True(t, IsDir(filepath.Join(root, "x", "y")))
	assert.False(t, IsRegular(name))
	assert.NoError(t, os.WriteFile(name, []byte("z"), 0644))
	assert.True(t, IsRegular(name))
	assert.True(t, filepath.IsAbs(Abs("z.txt")))
}
