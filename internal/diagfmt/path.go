package diagfmt

import (
	"path/filepath"

	"c0/internal/diag"
	"c0/internal/source"
)

func formatPath(path string, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		base := baseDir
		if base == "" {
			base = "."
		}
		absBase, err1 := filepath.Abs(base)
		absPath, err2 := filepath.Abs(path)
		if err1 == nil && err2 == nil {
			if rel, err := filepath.Rel(absBase, absPath); err == nil {
				return filepath.ToSlash(rel)
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return filepath.ToSlash(path)
}

func fileOf(fs *source.FileSet, d diag.Diagnostic) *source.File {
	if fs == nil || int(d.File) >= fs.Len() {
		return nil
	}
	return fs.Get(d.File)
}
