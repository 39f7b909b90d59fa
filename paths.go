package goggles

import (
	"iter"
	"os"
	"path/filepath"
)

// FontKeys expands paths into font keys. A path without a supported
// extension that names a directory stands for its entries in name order,
// one level deep. Unsupported files are skipped. A collection yields one
// key per member.
//
// If the member count of a file cannot be read, FontKeys yields a key
// with that path and the error, then continues with the next path.
func FontKeys(paths []string) iter.Seq2[FontKey, error] {
	return func(yield func(FontKey, error) bool) {
		for _, path := range paths {
			if _, ok := Lookup(path); !ok {
				if fi, err := os.Stat(path); err == nil && fi.IsDir() {
					if !dirFontKeys(path, yield) {
						return
					}
					continue
				}
			}
			if !fileFontKeys(path, yield) {
				return
			}
		}
	}
}

func dirFontKeys(dir string, yield func(FontKey, error) bool) bool {
	// ReadDir sorts by file name
	entries, err := os.ReadDir(dir)
	if err != nil {
		return yield(FontKey{Path: dir}, err)
	}
	for _, e := range entries {
		if !fileFontKeys(filepath.Join(dir, e.Name()), yield) {
			return false
		}
	}
	return true
}

func fileFontKeys(path string, yield func(FontKey, error) bool) bool {
	op, ok := Lookup(path)
	if !ok {
		Logger().Debug("goggles: skipping unsupported path", "path", path)
		return true
	}
	n, err := op.Count(path)
	if err != nil {
		return yield(FontKey{Path: path}, err)
	}
	for i := range n {
		if !yield(FontKey{Path: path, Index: i}, nil) {
			return false
		}
	}
	return true
}
