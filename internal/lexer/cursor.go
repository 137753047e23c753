package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"c0/internal/source"
)

// Cursor reads a file one byte at a time and can step back by one.
type Cursor struct {
	File *source.File
	pos  source.Pos
	// hitEOF is set when the last Next found no input; Unread then is a no-op.
	hitEOF bool
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	return Cursor{File: f}
}

func (c *Cursor) lines() uint32 {
	n, err := safecast.Conv[uint32](len(c.File.Lines))
	if err != nil {
		panic(fmt.Errorf("line count overflow: %w", err))
	}
	return n
}

func (c *Cursor) lineLen(line uint32) uint32 {
	n, err := safecast.Conv[uint32](len(c.File.Lines[line]))
	if err != nil {
		panic(fmt.Errorf("line length overflow: %w", err))
	}
	return n
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.pos.Line >= c.lines()
}

// Pos returns the position of the next unread byte.
func (c *Cursor) Pos() source.Pos {
	return c.pos
}

// Next reads one byte; ok is false at end of input.
func (c *Cursor) Next() (b byte, ok bool) {
	if c.EOF() {
		c.hitEOF = true
		return 0, false
	}
	c.hitEOF = false
	b = c.File.Lines[c.pos.Line][c.pos.Col]
	c.pos = c.nextPos()
	return b, true
}

// Unread pushes back the byte returned by the last Next.
func (c *Cursor) Unread() {
	if c.hitEOF {
		c.hitEOF = false
		return
	}
	c.pos = c.prevPos()
}

func (c *Cursor) nextPos() source.Pos {
	if c.pos.Col+1 >= c.lineLen(c.pos.Line) {
		return source.Pos{Line: c.pos.Line + 1, Col: 0}
	}
	return source.Pos{Line: c.pos.Line, Col: c.pos.Col + 1}
}

func (c *Cursor) prevPos() source.Pos {
	if c.pos.Line == 0 && c.pos.Col == 0 {
		panic("previous position from beginning")
	}
	if c.pos.Col == 0 {
		prev := c.pos.Line - 1
		return source.Pos{Line: prev, Col: c.lineLen(prev) - 1}
	}
	return source.Pos{Line: c.pos.Line, Col: c.pos.Col - 1}
}
