package utils

import (
	"os"
	"path/filepath"
)

// ReadyDir makes sure the parent directory of filename exists
func ReadyDir(filename string) error {
	return os.MkdirAll(filepath.Dir(filename), os.FileMode(0755))
}

// IsDir ...
func IsDir(fpath string) bool {
	fi, err := os.Stat(fpath)
	return err == nil && fi.Mode().IsDir()
}

// IsRegular ...
func IsRegular(fpath string) bool {
	fi, err := os.Stat(fpath)
	return err == nil && fi.Mode().IsRegular()
}

// ReplaceExt swaps the extension of the base name of fpath
func ReplaceExt(fpath, ext string) string {
	base := filepath.Base(fpath)
	return base[:len(base)-len(filepath.Ext(base))] + ext
}

// Abs returns an absolute path, falls back to fpath on error
func Abs(fpath string) string {
	if p, err := filepath.Abs(fpath); err == nil {
		return p
	}
	return fpath
}
