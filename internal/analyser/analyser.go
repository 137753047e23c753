package analyser

import (
	"errors"
	"fmt"
	"slices"

	"c0/internal/diag"
	"c0/internal/instr"
	"c0/internal/program"
	"c0/internal/source"
	"c0/internal/symbols"
	"c0/internal/token"
	"c0/internal/trace"
)

// EntryFunction is the name the program must define.
const EntryFunction = "main"

type Options struct {
	Tracer trace.Tracer // может быть nil
	Name   string       // file name for trace events
}

type analyser struct {
	tokens []token.Token
	pos    int

	table *symbols.Table
	pool  *program.Pool
	code  []*instr.Stream // indexed like the function table

	fn    *funcCtx
	loops []*loopCtx

	tracer trace.Tracer
}

// funcCtx describes the function whose body is being translated.
type funcCtx struct {
	index int
	decl  symbols.Function
	name  token.Token
}

// loopCtx collects the jumps of break and continue statements inside one
// loop; they are patched when the loop's targets are known.
type loopCtx struct {
	breaks    []int
	continues []int
}

// Analyse translates a complete token sequence into a Program. On failure
// it returns nil and a *diag.Error.
func Analyse(tokens []token.Token, opts Options) (*program.Program, error) {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	span := trace.Begin(tracer, trace.ScopePass, "analyse", 0)
	if opts.Name != "" {
		span.WithExtra("file", opts.Name)
	}

	a := &analyser{
		tokens: tokens,
		table:  symbols.NewTable(),
		pool:   program.NewPool(),
		code:   []*instr.Stream{instr.NewStream()},
		tracer: tracer,
	}

	if err := a.program(); err != nil {
		span.End(err.Error())
		return nil, err
	}
	prog := a.result()
	span.WithExtra("functions", fmt.Sprint(len(prog.Functions)-1)).End("ok")
	return prog, nil
}

func (a *analyser) result() *program.Program {
	fns := a.table.Functions()
	prog := &program.Program{
		Constants: a.pool.Items(),
		Functions: make([]program.Function, len(fns)),
		Code:      make([][]instr.Instruction, len(a.code)),
	}
	for i, fn := range fns {
		prog.Functions[i] = program.Function{
			Name:       fn.Name,
			NameIndex:  fn.NameIndex,
			ParamCount: instr.MustOperand(len(fn.Params)),
			Level:      fn.Level,
			ParamTypes: slices.Clone(fn.Params),
			Return:     fn.Return,
		}
	}
	for i, s := range a.code {
		prog.Code[i] = s.Instructions()
	}
	return prog
}

// program ::= {variable-declaration} {function-definition}
func (a *analyser) program() error {
	entry := a.code[0]
	for a.atGlobalDeclaration() {
		if err := a.variableDeclaration(entry); err != nil {
			return err
		}
	}
	for !a.done() {
		if err := a.functionDefinition(); err != nil {
			return err
		}
	}
	if _, _, err := a.table.ResolveFunction(EntryFunction); err != nil {
		return diag.NewNoPos(diag.SemaMissingMain)
	}
	return nil
}

// atGlobalDeclaration decides between a variable declaration and a function
// definition: "type ident (" starts a function.
func (a *analyser) atGlobalDeclaration() bool {
	tok, ok := a.peek()
	if !ok {
		return false
	}
	if tok.Kind == token.KwConst {
		return true
	}
	if !tok.IsType() {
		return false
	}
	third, ok := a.peekAt(2)
	return !ok || third.Kind != token.LParen
}

// at positions a table error, which carries no position of its own.
func at(err error, tok token.Token) error {
	var de *diag.Error
	if errors.As(err, &de) {
		return de.At(tok.Start)
	}
	return err
}

func errAt(code diag.Code, pos source.Pos) error {
	return diag.New(code, pos)
}
