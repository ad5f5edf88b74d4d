package nspv

import (
	"os"
	"path/filepath"

	"github.com/stellar/go/support/errors"
)

const (
	defaultBinaryName = "nspv"
	defaultSearchRoot = "/home"
)

// FindNSPV looks for the nspv binary under /home.
func FindNSPV() (string, bool, error) {
	return FindBinary(defaultSearchRoot, defaultBinaryName)
}

// FindBinary searches root for a file named name. The files of a directory
// are checked before any of its subdirectories, which are then searched in
// lexical order. Directories that cannot be read are skipped and symlinked
// directories are not followed.
func FindBinary(root, name string) (string, bool, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false, errors.Wrapf(err, "searching %s", root)
	}
	path, ok := findIn(root, entries, name)
	return path, ok, nil
}

func findIn(dir string, entries []os.DirEntry, name string) (string, bool) {
	for _, e := range entries {
		if !e.IsDir() && e.Name() == name {
			return filepath.Join(dir, e.Name()), true
		}
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		sub := filepath.Join(dir, e.Name())
		children, err := os.ReadDir(sub)
		if err != nil {
			continue
		}
		if path, ok := findIn(sub, children, name); ok {
			return path, true
		}
	}
	return "", false
}
