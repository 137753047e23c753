package program

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"c0/internal/instr"
)

// WriteListing prints p in the text assembly form:
//
//	.constants:
//	0 S "main"
//	.start:
//	0 ipush 0
//	.functions:
//	1 0 0 1
//	.F1:
//	0 loadc 1
func WriteListing(w io.Writer, p *Program) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, ".constants:")
	for i, c := range p.Constants {
		text := c.Text
		if c.Kind == ConstString {
			text = strconv.Quote(text)
		}
		fmt.Fprintf(bw, "%d %s %s\n", i, c.Kind, text)
	}

	fmt.Fprintln(bw, ".start:")
	writeCode(bw, p.Entry())

	fmt.Fprintln(bw, ".functions:")
	for i := 1; i < len(p.Functions); i++ {
		fn := p.Functions[i]
		fmt.Fprintf(bw, "%d %d %d %d\n", i, fn.NameIndex, fn.ParamCount, fn.Level)
	}
	for i := 1; i < len(p.Functions) && i < len(p.Code); i++ {
		fmt.Fprintf(bw, ".F%d:\n", i)
		writeCode(bw, p.Code[i])
	}

	return bw.Flush()
}

func writeCode(w io.Writer, code []instr.Instruction) {
	for i, in := range code {
		fmt.Fprintf(w, "%d %s\n", i, in)
	}
}
