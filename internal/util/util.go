package util

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || err != nil {
		return false
	}
	return info.IsDir()
}

func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// BaseNoExt returns the file name of path without directory and extension.
// "trees/VhtA.fasta.tree" -> "VhtA.fasta"
func BaseNoExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
