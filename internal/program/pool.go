package program

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"
)

// ConstKind tags a constant pool entry.
type ConstKind byte

const (
	ConstInt    ConstKind = 'I'
	ConstString ConstKind = 'S'
)

func (k ConstKind) String() string { return string(rune(k)) }

// Constant is one pool entry. Integers keep their canonical decimal text.
type Constant struct {
	Kind ConstKind `msgpack:"k"`
	Text string    `msgpack:"t"`
}

// Pool is an ordered constant pool; equal entries share one index.
type Pool struct {
	items []Constant
	index map[Constant]int32
}

func NewPool() *Pool {
	return &Pool{index: make(map[Constant]int32)}
}

// Add returns the index of (kind, text), inserting it on first use.
func (p *Pool) Add(kind ConstKind, text string) int32 {
	c := Constant{Kind: kind, Text: text}
	if i, ok := p.index[c]; ok {
		return i
	}
	i, err := safecast.Conv[int32](len(p.items))
	if err != nil {
		panic(fmt.Errorf("constant pool overflow: %w", err))
	}
	p.items = append(p.items, c)
	p.index[c] = i
	return i
}

// AddInt stores v in canonical decimal form so 0x1A and 26 coincide.
func (p *Pool) AddInt(v int64) int32 {
	return p.Add(ConstInt, strconv.FormatInt(v, 10))
}

func (p *Pool) AddString(s string) int32 {
	return p.Add(ConstString, s)
}

func (p *Pool) Len() int { return len(p.items) }

// Items returns a copy of the entries in insertion order.
func (p *Pool) Items() []Constant {
	return append([]Constant(nil), p.items...)
}
