package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"c0/internal/source"
)

// FormatGolden renders diagnostics into a stable, single-line-per-entry
// representation suitable for golden files:
//
//	ERROR SEM3002 path/file.c0:3:9 Symbol redeclared in the same scope
//
// Lines and columns are 1-based; a missing position renders as "EOF".
func FormatGolden(b *Bag, fs *source.FileSet) string {
	if b == nil || b.Len() == 0 {
		return ""
	}
	lines := make([]string, 0, b.Len())
	for _, d := range b.Items() {
		path := "?"
		if fs != nil && int(d.File) < fs.Len() {
			path = normalizePath(fs.Get(d.File).Path)
		}
		loc := "EOF"
		if d.HasPos {
			loc = fmt.Sprintf("%d:%d", d.Pos.Line+1, d.Pos.Col+1)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s:%s %s", d.Severity, d.Code.ID(), path, loc, sanitizeMessage(d.Message)))
	}
	return strings.Join(lines, "\n")
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
