package source

import "fmt"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File captures metadata and content for a single source file.
// Lines always end with '\n', including the last one.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Lines   []string
	Hash    [32]byte
	Flags   FileFlags
}

// Pos is a 0-based (line, column) pair.
type Pos struct {
	Line uint32
	Col  uint32
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Less reports whether p comes strictly before q.
func (p Pos) Less(q Pos) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Line returns the n-th (0-based) line including its trailing '\n'.
func (f *File) Line(n uint32) string {
	if int(n) >= len(f.Lines) {
		return ""
	}
	return f.Lines[n]
}

// Slice returns the text in [start, end).
func (f *File) Slice(start, end Pos) string {
	if !start.Less(end) {
		return ""
	}
	if start.Line == end.Line {
		line := f.Line(start.Line)
		if int(end.Col) > len(line) {
			return line[start.Col:]
		}
		return line[start.Col:end.Col]
	}
	out := f.Line(start.Line)[start.Col:]
	for l := start.Line + 1; l < end.Line; l++ {
		out += f.Line(l)
	}
	last := f.Line(end.Line)
	if int(end.Col) > len(last) {
		return out + last
	}
	return out + last[:end.Col]
}
