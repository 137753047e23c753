package program

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"c0/internal/instr"
	"c0/internal/symbols"
)

func sample() *Program {
	pool := NewPool()
	mainName := pool.AddString("main")
	one := pool.AddInt(1)
	addName := pool.AddString("add")
	return &Program{
		Constants: pool.Items(),
		Functions: []Function{
			{Name: "_start", NameIndex: -1, Return: symbols.Void},
			{Name: "main", NameIndex: mainName, ParamCount: 0, Level: 1, Return: symbols.Void},
			{Name: "add", NameIndex: addName, ParamCount: 2, Level: 1, ParamTypes: []symbols.Type{symbols.Int, symbols.Char}, Return: symbols.Int},
		},
		Code: [][]instr.Instruction{
			{{Op: instr.IPUSH, X: 0}},
			{
				{Op: instr.LOADC, X: one},
				{Op: instr.JE, X: 3},
				{Op: instr.LOADA, X: 0, Y: 0},
				{Op: instr.CALL, X: 1},
				{Op: instr.RET},
			},
			{
				{Op: instr.LOADA, X: 1, Y: 0},
				{Op: instr.ILOAD},
				{Op: instr.IRET},
			},
		},
	}
}

func TestPoolDedup(t *testing.T) {
	p := NewPool()
	a := p.AddInt(26)
	b := p.Add(ConstInt, "26")
	s := p.AddString("26")
	c := p.AddInt(0)
	if a != 0 || b != 0 {
		t.Fatalf("equal ints must share index 0, got %d %d", a, b)
	}
	if s != 1 || c != 2 {
		t.Fatalf("string and int are different entries: s=%d c=%d", s, c)
	}
	if p.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", p.Len())
	}
	items := p.Items()
	if items[1] != (Constant{Kind: ConstString, Text: "26"}) {
		t.Fatalf("unexpected entry %+v", items[1])
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sample()
	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !samePrograms(got, want) {
		t.Fatalf("round trip changed program:\n got %+v\nwant %+v", got, want)
	}
	add := got.Functions[2]
	if add.Return != symbols.Int || len(add.ParamTypes) != 2 || add.ParamTypes[1] != symbols.Char {
		t.Fatalf("signature lost in round trip: %+v", add)
	}
}

func TestDecodeRejectsSchema(t *testing.T) {
	data, err := msgpack.Marshal(&envelope{Magic: magic, Schema: SchemaVersion + 1, Program: sample()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(bytes.NewReader(data)); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}

	data, err = msgpack.Marshal(&envelope{Magic: "elf", Schema: SchemaVersion, Program: sample()})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(bytes.NewReader(data)); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected magic mismatch, got %v", err)
	}

	if _, err := Decode(strings.NewReader("not msgpack at all")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestValidate(t *testing.T) {
	if err := sample().Validate(); err != nil {
		t.Fatalf("sample must be valid: %v", err)
	}

	cases := map[string]func(p *Program){
		"stream count": func(p *Program) { p.Code = p.Code[:1] },
		"constant":     func(p *Program) { p.Code[1][0].X = 9 },
		"jump":         func(p *Program) { p.Code[1][1].X = 6 },
		"call entry":   func(p *Program) { p.Code[1][3].X = 0 },
		"level":        func(p *Program) { p.Code[1][2].X = 2 },
		"name index":   func(p *Program) { p.Functions[1].NameIndex = 7 },
		"param count":  func(p *Program) { p.Functions[2].ParamCount = 1 },
		"param type":   func(p *Program) { p.Functions[2].ParamTypes[0] = symbols.Void },
		"return type":  func(p *Program) { p.Functions[2].Return = symbols.Unit },
		"opcode":       func(p *Program) { p.Code[0][0].Op = instr.Op(200) },
	}
	for name, mutate := range cases {
		p := sample()
		mutate(p)
		if err := p.Validate(); !errors.Is(err, ErrMalformed) {
			t.Fatalf("%s: expected malformed, got %v", name, err)
		}
	}
}

func TestWriteListing(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteListing(&buf, sample()); err != nil {
		t.Fatal(err)
	}
	want := `.constants:
0 S "main"
1 I 1
2 S "add"
.start:
0 ipush 0
.functions:
1 0 0 1
2 2 2 1
.F1:
0 loadc 1
1 je 3
2 loada 0, 0
3 call 1
4 ret
.F2:
0 loada 1, 0
1 iload
2 iret
`
	if buf.String() != want {
		t.Fatalf("listing mismatch:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestFunctionIndex(t *testing.T) {
	p := sample()
	if i, ok := p.FunctionIndex("main"); !ok || i != 1 {
		t.Fatalf("main at %d ok=%v", i, ok)
	}
	if _, ok := p.FunctionIndex("_start"); ok {
		t.Fatalf("entry procedure must not be addressable")
	}
}

func samePrograms(a, b *Program) bool {
	if len(a.Constants) != len(b.Constants) || len(a.Functions) != len(b.Functions) || len(a.Code) != len(b.Code) {
		return false
	}
	for i := range a.Constants {
		if a.Constants[i] != b.Constants[i] {
			return false
		}
	}
	for i := range a.Functions {
		if !a.Functions[i].Equal(b.Functions[i]) {
			return false
		}
	}
	for i := range a.Code {
		if len(a.Code[i]) != len(b.Code[i]) {
			return false
		}
		for j := range a.Code[i] {
			if a.Code[i][j] != b.Code[i][j] {
				return false
			}
		}
	}
	return true
}
